package model

import "time"

// LoginResponse carries only the access token; the refresh token travels in
// an HttpOnly cookie and never appears in a response body.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

type RefreshResponse struct {
	NewAccessToken string `json:"newAccessToken"`
}

type RegisterResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name,omitempty"`
	BirthDate       time.Time `json:"birth_date"`
	Phone           string    `json:"phone"`
	ProfilePictURL  string    `json:"profile_pict_url,omitempty"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsPhoneVerified bool      `json:"is_phone_verified"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToRegisterResponse(user *User) *RegisterResponse {
	return &RegisterResponse{
		ID:              user.ID,
		Username:        user.Username,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName.String,
		BirthDate:       user.BirthDate,
		Phone:           user.Phone,
		ProfilePictURL:  user.ProfilePictURL.String,
		IsEmailVerified: user.IsEmailVerified,
		IsPhoneVerified: user.IsPhoneVerified,
		Status:          string(user.Status),
		CreatedAt:       user.CreatedAt,
	}
}
