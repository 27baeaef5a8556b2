package utils

import (
	"time"

	"github.com/golang-jwt/jwt"

	"vidtube/domain/model"
)

const (
	accessAudience  = "access"
	refreshAudience = "refresh"
)

// TokenIssuer signs and verifies the access/refresh token pair.
type TokenIssuer struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenIssuer(accessSecret string, accessTTL time.Duration, refreshSecret string, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           GetCurrentTime,
	}
}

func (t *TokenIssuer) AccessTTL() time.Duration  { return t.accessTTL }
func (t *TokenIssuer) RefreshTTL() time.Duration { return t.refreshTTL }

func (t *TokenIssuer) GenerateAccessToken(user *model.User) (string, error) {
	return GenerateToken(t.claims(user, accessAudience, t.accessTTL, true), t.accessSecret)
}

// GenerateRefreshToken carries only the user id.
func (t *TokenIssuer) GenerateRefreshToken(user *model.User) (string, error) {
	return GenerateToken(t.claims(user, refreshAudience, t.refreshTTL, false), t.refreshSecret)
}

func (t *TokenIssuer) ParseAccessToken(raw string) (*model.UserClaims, error) {
	return t.parse(raw, t.accessSecret, accessAudience)
}

func (t *TokenIssuer) ParseRefreshToken(raw string) (*model.UserClaims, error) {
	return t.parse(raw, t.refreshSecret, refreshAudience)
}

func (t *TokenIssuer) claims(user *model.User, audience string, ttl time.Duration, full bool) *model.UserClaims {
	now := t.now()
	claims := &model.UserClaims{
		UserID: user.ID.Hex(),
		StandardClaims: jwt.StandardClaims{
			Audience:  audience,
			Subject:   user.ID.Hex(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	if full {
		claims.UserName = user.Username
		claims.Email = user.Email
	}
	return claims
}

func (t *TokenIssuer) parse(raw, secret, audience string) (*model.UserClaims, error) {
	var claims model.UserClaims
	if err := ParseToken(raw, &claims, secret); err != nil {
		return nil, err
	}
	if !claims.VerifyAudience(audience, true) {
		return nil, jwt.NewValidationError("token audience mismatch", jwt.ValidationErrorAudience)
	}
	return &claims, nil
}
