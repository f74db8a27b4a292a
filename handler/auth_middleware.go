package handler

import (
	"context"
	"database/sql"
	"go-jobs-api/common"
	"go-jobs-api/repository"
	"go-jobs-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey         contextKey = "userID"
	UsernameKey       contextKey = "username"
	UserRoleKey       contextKey = "userRole"
	AccessTokenKey    contextKey = "accessToken"
	TokenExpiresAtKey contextKey = "tokenExpiresAt"
)

// AuthMiddleware guards every private route. The checks run in a fixed
// order and the first failure terminates the request: header shape, token
// signature/expiry, blacklist, user existence, account status.
type AuthMiddleware struct {
	tokenService  service.ITokenService
	blacklistRepo repository.IBlacklistRepository
	userRepo      repository.IUserRepository
}

func NewAuthMiddleware(
	tokenService service.ITokenService,
	blacklistRepo repository.IBlacklistRepository,
	userRepo repository.IUserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService:  tokenService,
		blacklistRepo: blacklistRepo,
		userRepo:      userRepo,
	}
}

func (m *AuthMiddleware) CheckAuthorization(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			common.NewAppError(http.StatusUnauthorized, "Missing Authorization header", nil).Send(w)
			return
		}

		headerParts := strings.SplitN(authHeader, " ", 2)
		if !strings.EqualFold(headerParts[0], "bearer") {
			common.NewAppError(http.StatusUnauthorized, "Invalid authorization format", nil).Send(w)
			return
		}

		tokenString := ""
		if len(headerParts) == 2 {
			tokenString = strings.TrimSpace(headerParts[1])
		}
		if tokenString == "" {
			common.NewAppError(http.StatusUnauthorized, "Missing access token", nil).Send(w)
			return
		}

		claims, appErr := m.tokenService.VerifyAccessToken(tokenString)
		if appErr != nil {
			appErr.Send(w)
			return
		}

		blacklisted, err := m.blacklistRepo.IsBlacklisted(r.Context(), tokenString)
		if err != nil {
			common.NewInternalError(err).Send(w)
			return
		}
		if blacklisted {
			common.NewAppError(http.StatusUnauthorized, "Token already blacklisted", nil).Send(w)
			return
		}

		user, err := m.userRepo.GetUserByID(claims.Subject)
		if err != nil {
			if err == sql.ErrNoRows {
				common.NewAppError(http.StatusUnauthorized, "User not found", nil).Send(w)
				return
			}
			common.NewInternalError(err).Send(w)
			return
		}
		if user.IsBlocked() {
			common.NewAppError(http.StatusForbidden, "Account has been blocked", nil).Send(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, UsernameKey, user.Username)
		ctx = context.WithValue(ctx, UserRoleKey, user.Role)
		ctx = context.WithValue(ctx, AccessTokenKey, tokenString)
		ctx = context.WithValue(ctx, TokenExpiresAtKey, claims.ExpiresAt.Time)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
