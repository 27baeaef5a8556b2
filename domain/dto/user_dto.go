package dto

import (
	"mime/multipart"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/model"
)

type RegisterRequest struct {
	Username   string                `form:"username" binding:"required"`
	Email      string                `form:"email" binding:"required,email"`
	FullName   string                `form:"fullName" binding:"required"`
	Password   string                `form:"password" binding:"required"`
	Avatar     *multipart.FileHeader `form:"avatar"`
	CoverImage *multipart.FileHeader `form:"coverImage"`
}

// LoginRequest accepts either username or email.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// RegisterInput is what the user usecase needs once uploads are on local disk.
type RegisterInput struct {
	Username       string
	Email          string
	FullName       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type LoginResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChannelProfile is the public view of a channel.
type ChannelProfile struct {
	ID                        bson.ObjectID `json:"_id" bson:"_id"`
	Username                  string        `json:"username" bson:"username"`
	FullName                  string        `json:"fullName" bson:"fullName"`
	Email                     string        `json:"email" bson:"email"`
	Avatar                    string        `json:"avatar" bson:"avatar"`
	CoverImage                string        `json:"coverImage" bson:"coverImage"`
	SubscribersCount          int64         `json:"subscribersCount" bson:"subscribersCount"`
	ChannelsSubscribedToCount int64         `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool          `json:"isSubscribed" bson:"isSubscribed"`
}
