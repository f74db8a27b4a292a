package service

import (
	"errors"
	"fmt"
	"go-jobs-api/common"
	"go-jobs-api/config"
	"go-jobs-api/logger"
	"go-jobs-api/model"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ITokenService defines the contract for issuing and verifying the two token
// kinds. Access and refresh tokens are signed with separate secrets, so one
// can never be presented in place of the other.
type ITokenService interface {
	GenerateAccessToken(userID, username string, role model.Role) (string, error)
	GenerateRefreshToken(userID string) (token string, jti string, err error)
	VerifyAccessToken(tokenString string) (*model.AccessClaims, *common.AppError)
	VerifyRefreshToken(tokenString string) (*model.RefreshClaims, *common.AppError)
	RemainingLifetime(tokenString string) time.Duration
}

// TokenService is stateless; it only transforms payloads under the secrets
// handed to it at construction.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpire  time.Duration
	refreshExpire time.Duration
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.JWT.AccessSecret),
		refreshSecret: []byte(cfg.JWT.RefreshSecret),
		accessExpire:  cfg.JWT.AccessExpire,
		refreshExpire: cfg.JWT.RefreshExpire,
	}
}

func (s *TokenService) GenerateAccessToken(userID, username string, role model.Role) (string, error) {
	now := time.Now()
	claims := &model.AccessClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.accessSecret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign access token")
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken mints a fresh jti and returns it alongside the signed
// token, so the caller can index the store entry.
func (s *TokenService) GenerateRefreshToken(userID string) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := &model.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.refreshSecret)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign refresh token")
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, jti, nil
}

func (s *TokenService) VerifyAccessToken(tokenString string) (*model.AccessClaims, *common.AppError) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.accessSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.NewAppError(http.StatusUnauthorized, "Access token has expired", err)
		}
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid access token", err)
	}
	if !token.Valid {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid access token", nil)
	}
	return claims, nil
}

func (s *TokenService) VerifyRefreshToken(tokenString string) (*model.RefreshClaims, *common.AppError) {
	claims := &model.RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.refreshSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.NewAppError(http.StatusUnauthorized, "Refresh token has expired", err)
		}
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", err)
	}
	if !token.Valid {
		return nil, common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
	}
	return claims, nil
}

// RemainingLifetime decodes the exp claim without verifying the signature.
// It exists purely to compute blacklist TTLs, which must stay within
// tolerance of the token's own validity window. Returns zero when the claim
// is absent or already in the past.
func (s *TokenService) RemainingLifetime(tokenString string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
