package model

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type UserStatus string

const (
	StatusActive  UserStatus = "ACTIVE"
	StatusBlocked UserStatus = "BLOCKED"
)

type User struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	Email           string         `json:"email"`
	Password        string         `json:"-"`
	FirstName       string         `json:"first_name"`
	LastName        sql.NullString `json:"-"`
	BirthDate       time.Time      `json:"birth_date"`
	Phone           string         `json:"phone"`
	ProfilePictURL  sql.NullString `json:"-"`
	IsEmailVerified bool           `json:"is_email_verified"`
	IsPhoneVerified bool           `json:"is_phone_verified"`
	Status          UserStatus     `json:"status"`
	Role            Role           `json:"role"`
	CreatedAt       time.Time      `json:"created_at"`
}

// IsBlocked reports whether the account may no longer authenticate.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}
