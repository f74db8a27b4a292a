package model

// RegisterRequest defines the payload for creating a new user.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"omitempty,max=100"`
	BirthDate      string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Phone          string `json:"phone" validate:"required,e164"`
	ProfilePictURL string `json:"profile_pict_url" validate:"omitempty,url"`
}

// LoginRequest accepts either a username or an email in the same field.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}
