package handler

import (
	"go-jobs-api/common"
	"go-jobs-api/config"
	"go-jobs-api/model"
	"go-jobs-api/service"
	"net/http"
	"strings"
)

const refreshTokenCookie = "refresh_token"

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func sameSiteFromConfig(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// setRefreshCookie delivers the refresh token as an HttpOnly cookie scoped
// to the auth endpoints; its max-age matches the refresh window, so cookie
// and store entry die together.
func setRefreshCookie(w http.ResponseWriter, token string) {
	cfg := config.AppConfig.Cookie
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    token,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSiteFromConfig(cfg.SameSite),
		Path:     cfg.Path,
		MaxAge:   int(config.AppConfig.JWT.RefreshExpire.Seconds()),
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	cfg := config.AppConfig.Cookie
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: sameSiteFromConfig(cfg.SameSite),
		Path:     cfg.Path,
		MaxAge:   -1,
	})
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "registration payload"
// @Success      201 {object} common.SuccessResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	result, appErr := h.authService.Register(&req)
	if appErr != nil {
		return appErr
	}

	common.SendSuccess(w, http.StatusCreated, "Registration successful", result)
	return nil
}

// Login godoc
// @Summary      Authenticate and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "login payload"
// @Success      200 {object} common.SuccessResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	accessToken, refreshToken, appErr := h.authService.Login(r.Context(), &req)
	if appErr != nil {
		return appErr
	}

	setRefreshCookie(w, refreshToken)
	common.SendSuccess(w, http.StatusOK, "login successful", model.LoginResponse{AccessToken: accessToken})
	return nil
}

// Refresh godoc
// @Summary      Exchange the refresh cookie for a new access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} common.SuccessResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	refreshToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	newAccessToken, appErr := h.authService.Refresh(r.Context(), refreshToken)
	if appErr != nil {
		return appErr
	}

	common.SendSuccess(w, http.StatusOK, "Successful generate new token", model.RefreshResponse{NewAccessToken: newAccessToken})
	return nil
}

// Logout godoc
// @Summary      End the session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.SuccessResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	// The middleware has already verified the access token and stashed it.
	accessToken, _ := r.Context().Value(AccessTokenKey).(string)

	refreshToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if appErr := h.authService.Logout(r.Context(), accessToken, refreshToken); appErr != nil {
		return appErr
	}

	clearRefreshCookie(w)
	common.SendSuccess(w, http.StatusOK, "Logout successful", nil)
	return nil
}
