package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"vidtube/domain/apperror"
	"vidtube/domain/dto"
	"vidtube/domain/model"
	"vidtube/domain/repository"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/utils"
)

type IUserUsecase interface {
	Register(ctx context.Context, in dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, actorID string) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ChangePassword(ctx context.Context, actorID string, req dto.ChangePasswordRequest) error
	CurrentUser(ctx context.Context, actorID string) (*model.User, error)
	UpdateAccount(ctx context.Context, actorID string, req dto.UpdateAccountRequest) (*model.User, error)
	UpdateAvatar(ctx context.Context, actorID, localPath string) (*model.User, error)
	UpdateCoverImage(ctx context.Context, actorID, localPath string) (*model.User, error)
	ChannelProfile(ctx context.Context, actorID, username string) (*dto.ChannelProfile, error)
	WatchHistory(ctx context.Context, actorID string) ([]dto.VideoFeedItem, error)
	// Authenticate resolves an access token to its user.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type UserUsecase struct {
	users  repository.IUser
	media  repository.IMediaStorage
	events repository.IEventPublisher
	tokens *utils.TokenIssuer
}

func NewUserUsecase(users repository.IUser, media repository.IMediaStorage, events repository.IEventPublisher, tokens *utils.TokenIssuer) IUserUsecase {
	return &UserUsecase{users: users, media: media, events: events, tokens: tokens}
}

func (u *UserUsecase) Register(ctx context.Context, in dto.RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	fullName := strings.TrimSpace(in.FullName)
	if username == "" || email == "" || fullName == "" || in.Password == "" {
		return nil, apperror.Validation("All fields are required")
	}

	existing, err := u.users.FindByLogin(ctx, username, email)
	if err != nil {
		return nil, upstream(ctx, "Failed to look up user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("User with email or username already exists")
	}
	if in.AvatarPath == "" {
		return nil, apperror.Validation("Avatar file is required")
	}

	avatar, err := u.media.Upload(ctx, in.AvatarPath, model.MediaKindImage)
	if err != nil {
		return nil, mediaError(ctx, "avatar", err)
	}
	var coverURL string
	if in.CoverImagePath != "" {
		cover, err := u.media.Upload(ctx, in.CoverImagePath, model.MediaKindImage)
		if err != nil {
			deleteMedia(ctx, u.media, avatar.URL)
			return nil, mediaError(ctx, "cover image", err)
		}
		coverURL = cover.URL
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		deleteMedia(ctx, u.media, avatar.URL, coverURL)
		return nil, upstream(ctx, "Failed to hash password", err)
	}
	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Avatar:     avatar.URL,
		CoverImage: coverURL,
		Password:   hash,
	}
	if err := u.users.Create(ctx, user); err != nil {
		deleteMedia(ctx, u.media, avatar.URL, coverURL)
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Conflict("User with email or username already exists")
		}
		return nil, upstream(ctx, "Something went wrong while registering the user", err)
	}
	publishEvent(ctx, u.events, model.EventUserRegistered, user.ID, user.ID)
	return user, nil
}

func (u *UserUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, apperror.Validation("username or email is required")
	}
	user, err := u.users.FindByLogin(ctx, username, email)
	if err != nil {
		return nil, upstream(ctx, "Failed to look up user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("User does not exist")
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, apperror.Unauthorized("Invalid user credentials")
	}

	pair, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	user.RefreshToken = pair.RefreshToken
	return &dto.LoginResponse{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (u *UserUsecase) issueTokens(ctx context.Context, user *model.User) (*dto.TokenPair, error) {
	access, err := u.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, upstream(ctx, "Something went wrong while generating access token", err)
	}
	refresh, err := u.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, upstream(ctx, "Something went wrong while generating refresh token", err)
	}
	if err := u.users.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, upstream(ctx, "Failed to store refresh token", err)
	}
	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (u *UserUsecase) Logout(ctx context.Context, actorID string) error {
	actor, err := requireActor(actorID)
	if err != nil {
		return err
	}
	if err := u.users.SetRefreshToken(ctx, actor, ""); err != nil {
		return upstream(ctx, "Failed to log out", err)
	}
	return nil
}

func (u *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.Unauthorized("Unauthorized request")
	}
	claims, err := u.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}
	user, err := u.findActor(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, apperror.Unauthorized("Refresh token is expired or used")
	}
	return u.issueTokens(ctx, user)
}

func (u *UserUsecase) ChangePassword(ctx context.Context, actorID string, req dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperror.Validation("Old and new password are required")
	}
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.NewPassword {
		return apperror.Validation("New password and confirm password do not match")
	}
	user, err := u.findActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(user.Password, req.OldPassword) {
		return apperror.Validation("Invalid old password")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return upstream(ctx, "Failed to hash password", err)
	}
	if err := u.users.SetPassword(ctx, user.ID, hash); err != nil {
		return upstream(ctx, "Failed to change password", err)
	}
	return nil
}

func (u *UserUsecase) CurrentUser(ctx context.Context, actorID string) (*model.User, error) {
	return u.findActor(ctx, actorID)
}

func (u *UserUsecase) UpdateAccount(ctx context.Context, actorID string, req dto.UpdateAccountRequest) (*model.User, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if fullName == "" || email == "" {
		return nil, apperror.Validation("All fields are required")
	}
	user, err := u.users.UpdateAccount(ctx, actor, fullName, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Conflict("Email is already in use")
		}
		return nil, upstream(ctx, "Failed to update account details", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid access token")
	}
	return user, nil
}

func (u *UserUsecase) UpdateAvatar(ctx context.Context, actorID, localPath string) (*model.User, error) {
	return u.replaceImage(ctx, actorID, localPath, "avatar", func(user *model.User) string { return user.Avatar }, u.users.SetAvatar)
}

func (u *UserUsecase) UpdateCoverImage(ctx context.Context, actorID, localPath string) (*model.User, error) {
	return u.replaceImage(ctx, actorID, localPath, "cover image", func(user *model.User) string { return user.CoverImage }, u.users.SetCoverImage)
}

// replaceImage uploads the new file first and only deletes the previous one once the user points at the new URL.
func (u *UserUsecase) replaceImage(
	ctx context.Context,
	actorID, localPath, what string,
	current func(*model.User) string,
	set func(context.Context, bson.ObjectID, string) (*model.User, error),
) (*model.User, error) {
	user, err := u.findActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if localPath == "" {
		return nil, apperror.Validation(strings.ToUpper(what[:1]) + what[1:] + " file is missing")
	}
	asset, err := u.media.Upload(ctx, localPath, model.MediaKindImage)
	if err != nil {
		return nil, mediaError(ctx, what, err)
	}
	previous := current(user)
	updated, err := set(ctx, user.ID, asset.URL)
	if err != nil {
		deleteMedia(ctx, u.media, asset.URL)
		return nil, upstream(ctx, "Failed to update "+what, err)
	}
	if updated == nil {
		deleteMedia(ctx, u.media, asset.URL)
		return nil, apperror.Unauthorized("Invalid access token")
	}
	deleteMedia(ctx, u.media, previous)
	return updated, nil
}

func (u *UserUsecase) ChannelProfile(ctx context.Context, actorID, username string) (*dto.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, apperror.Validation("username is missing")
	}
	profile, err := u.users.ChannelProfile(ctx, username, optionalActor(actorID))
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch channel", err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Channel does not exist")
	}
	return profile, nil
}

func (u *UserUsecase) WatchHistory(ctx context.Context, actorID string) ([]dto.VideoFeedItem, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	items, err := u.users.WatchHistory(ctx, actor)
	if err != nil {
		return nil, upstream(ctx, "Failed to fetch watch history", err)
	}
	return items, nil
}

func (u *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, apperror.Unauthorized("Unauthorized request")
	}
	claims, err := u.tokens.ParseAccessToken(accessToken)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Debug("Rejected access token")
		return nil, apperror.Unauthorized("Invalid access token")
	}
	return u.findActor(ctx, claims.UserID)
}

// findActor loads the authenticated user. A user that no longer exists is treated as unauthenticated.
func (u *UserUsecase) findActor(ctx context.Context, actorID string) (*model.User, error) {
	actor, err := requireActor(actorID)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(ctx, actor)
	if err != nil {
		return nil, upstream(ctx, "Failed to look up user", err)
	}
	if user == nil {
		return nil, apperror.Unauthorized("Invalid access token")
	}
	return user, nil
}
