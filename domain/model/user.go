package model

import (
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is both an account and a channel. Password and RefreshToken never leave the process.
type User struct {
	ID           bson.ObjectID   `json:"_id"          bson:"_id,omitempty"`
	Username     string          `json:"username"     bson:"username"`
	Email        string          `json:"email"        bson:"email"`
	FullName     string          `json:"fullName"     bson:"fullName"`
	Avatar       string          `json:"avatar"       bson:"avatar"`
	CoverImage   string          `json:"coverImage"   bson:"coverImage"`
	WatchHistory []bson.ObjectID `json:"watchHistory" bson:"watchHistory"`
	Password     string          `json:"-"            bson:"password"`
	RefreshToken string          `json:"-"            bson:"refreshToken,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"    bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"    bson:"updatedAt"`
}

// UserClaims is the payload of both access and refresh tokens.
type UserClaims struct {
	UserID   string `json:"_id"`
	UserName string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.StandardClaims
}

// OwnerSummary is the public projection of a user embedded in feed items.
type OwnerSummary struct {
	ID       bson.ObjectID `json:"_id"      bson:"_id"`
	Username string        `json:"username" bson:"username"`
	FullName string        `json:"fullName" bson:"fullName"`
	Avatar   string        `json:"avatar"   bson:"avatar"`
}
