package repository

import "errors"

var (
	// ErrDuplicateKey is returned when a write collides with a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnsupportedMedia is returned by media storage for files of the wrong kind.
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
