package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleAdmin   = "admin"
	RoleEditor  = "editor"
	RoleCitizen = "citizen"
)

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name" validate:"required,min=2,max=120"`
	Phone        string     `json:"phone" validate:"required,e164"`
	Email        string     `json:"email,omitempty" validate:"omitempty,email,max=190"`
	Role         string     `json:"role" validate:"required,oneof=admin editor citizen"`
	Password     string     `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email" validate:"omitempty,email,max=190"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type SignInRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Tokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID int64
	Role   string
}

func (i Identity) IsStaff() bool {
	return i.Role == RoleAdmin || i.Role == RoleEditor
}

type UserFilter struct {
	Role  string
	Query string
	Page  Page
}
