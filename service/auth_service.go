package service

import (
	"context"
	"database/sql"
	"go-jobs-api/common"
	"go-jobs-api/config"
	"go-jobs-api/logger"
	"go-jobs-api/model"
	"go-jobs-api/repository"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthService orchestrates the session lifecycle: login issues both tokens
// and persists the refresh record, refresh reissues the access half, and
// logout revokes both halves.
type AuthService struct {
	userRepo      repository.IUserRepository
	refreshRepo   repository.IRefreshTokenRepository
	blacklistRepo repository.IBlacklistRepository
	tokenService  ITokenService
	refreshExpire time.Duration
}

func NewAuthService(
	userRepo repository.IUserRepository,
	refreshRepo repository.IRefreshTokenRepository,
	blacklistRepo repository.IBlacklistRepository,
	tokenService ITokenService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		refreshRepo:   refreshRepo,
		blacklistRepo: blacklistRepo,
		tokenService:  tokenService,
		refreshExpire: cfg.JWT.RefreshExpire,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), err
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a new user after checking that neither the username nor
// the email is already taken.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.RegisterResponse, *common.AppError) {
	count, err := s.userRepo.CountByUsername(req.Username)
	if err != nil {
		return nil, common.NewInternalError(err)
	}
	if count != 0 {
		return nil, common.NewAppError(http.StatusBadRequest, "username already exists", nil)
	}

	count, err = s.userRepo.CountByEmail(req.Email)
	if err != nil {
		return nil, common.NewInternalError(err)
	}
	if count != 0 {
		return nil, common.NewAppError(http.StatusBadRequest, "email already exists", nil)
	}

	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, common.NewInternalError(err)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, common.NewAppError(http.StatusBadRequest, "Invalid birth date", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       hashedPassword,
		FirstName:      req.FirstName,
		LastName:       sql.NullString{String: req.LastName, Valid: req.LastName != ""},
		BirthDate:      birthDate,
		Phone:          req.Phone,
		ProfilePictURL: sql.NullString{String: req.ProfilePictURL, Valid: req.ProfilePictURL != ""},
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, common.NewInternalError(err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered successfully")
	return model.ToRegisterResponse(user), nil
}

// Login authenticates by username-or-email and, on success, returns the
// access token plus the refresh token to be delivered via cookie. The
// refresh record is persisted under refresh:{userID}:{jti} with a TTL equal
// to the refresh window.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (accessToken, refreshToken string, appErr *common.AppError) {
	user, err := s.userRepo.GetUserByUsernameOrEmail(req.UsernameOrEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", common.NewAppError(http.StatusUnauthorized, "Invalid credentials", nil)
		}
		return "", "", common.NewInternalError(err)
	}

	if user.IsBlocked() {
		return "", "", common.NewAppError(http.StatusForbidden, "Account has been blocked", nil)
	}

	if !s.CheckPasswordHash(req.Password, user.Password) {
		return "", "", common.NewAppError(http.StatusUnauthorized, "Invalid credentials", nil)
	}

	accessToken, err = s.tokenService.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", common.NewInternalError(err)
	}

	refreshToken, jti, err := s.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", common.NewInternalError(err)
	}

	if err := s.refreshRepo.Save(ctx, user.ID, jti, refreshToken, s.refreshExpire); err != nil {
		return "", "", common.NewInternalError(err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in successfully")
	return accessToken, refreshToken, nil
}

// Refresh verifies the presented refresh token against the stored record and
// reissues the access half. The refresh token itself is not rotated; the
// same token keeps working until it is revoked or expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, *common.AppError) {
	if refreshToken == "" {
		return "", common.NewAppError(http.StatusUnauthorized, "Missing refresh token", nil)
	}

	claims, appErr := s.tokenService.VerifyRefreshToken(refreshToken)
	if appErr != nil {
		return "", appErr
	}

	storedToken, err := s.refreshRepo.Get(ctx, claims.Subject, claims.ID)
	if err != nil {
		return "", common.NewInternalError(err)
	}
	if storedToken == "" {
		return "", common.NewAppError(http.StatusUnauthorized, "Refresh token revoked", nil)
	}
	if storedToken != refreshToken {
		// The stored value is the single source of truth; a mismatch means a
		// stale or tampered copy was presented.
		return "", common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
	}

	user, err := s.userRepo.GetUserByID(claims.Subject)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", common.NewAppError(http.StatusUnauthorized, "User not found", nil)
		}
		return "", common.NewInternalError(err)
	}
	if user.IsBlocked() {
		return "", common.NewAppError(http.StatusForbidden, "Account has been blocked", nil)
	}

	newAccessToken, err := s.tokenService.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", common.NewInternalError(err)
	}
	return newAccessToken, nil
}

// Logout deletes the refresh record and blacklists the access token for its
// remaining lifetime. Both store operations are idempotent; a second logout
// with the same access token is rejected earlier, by the auth middleware.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) *common.AppError {
	if refreshToken == "" {
		return common.NewAppError(http.StatusUnauthorized, "Missing refresh token", nil)
	}

	claims, appErr := s.tokenService.VerifyRefreshToken(refreshToken)
	if appErr != nil {
		return appErr
	}

	if err := s.refreshRepo.Delete(ctx, claims.Subject, claims.ID); err != nil {
		return common.NewInternalError(err)
	}

	ttl := s.tokenService.RemainingLifetime(accessToken)
	if err := s.blacklistRepo.Revoke(ctx, accessToken, ttl); err != nil {
		return common.NewInternalError(err)
	}

	logger.Log.WithField("user_id", claims.Subject).Info("User logged out successfully")
	return nil
}
