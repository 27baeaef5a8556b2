package http

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidtube/domain/apperror"
	"vidtube/infrastructure/logger"
)

// UploadConfig says where multipart files are staged before they reach media storage.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// uploads tracks the temp files of one request. cleanup removes whatever media storage did not.
type uploads struct {
	c     *gin.Context
	cfg   UploadConfig
	paths []string
}

func newUploads(c *gin.Context, cfg UploadConfig) *uploads {
	return &uploads{c: c, cfg: cfg}
}

// save stages file on local disk. A nil file yields an empty path.
func (u *uploads) save(field string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", nil
	}
	if u.cfg.MaxBytes > 0 && file.Size > u.cfg.MaxBytes {
		return "", apperror.Validation(fmt.Sprintf("%s is too large", field)).
			WithDetail(fmt.Sprintf("maximum size is %d bytes", u.cfg.MaxBytes))
	}
	dir := u.cfg.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.Upstream("Failed to stage upload", err)
	}
	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := u.c.SaveUploadedFile(file, path); err != nil {
		return "", apperror.Upstream("Failed to stage upload", err)
	}
	u.paths = append(u.paths, path)
	return path, nil
}

func (u *uploads) cleanup() {
	for _, path := range u.paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.FromContext(u.c.Request.Context()).WithField("error", err).WithField("path", path).Warn("Failed to remove temp file")
		}
	}
}
