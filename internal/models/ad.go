package models

import "time"

const (
	AdStatusPending  = "pending"
	AdStatusApproved = "approved"
	AdStatusRejected = "rejected"
	AdStatusExpired  = "expired"
)

// Ad is a classified listing submitted by a citizen or entered by staff.
type Ad struct {
	ID           int64      `json:"id"`
	UserID       *int64     `json:"user_id,omitempty"`
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Description  string     `json:"description" validate:"required,max=5000"`
	Category     string     `json:"category" validate:"required,max=60"`
	Price        *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	ContactName  string     `json:"contact_name" validate:"required,max=120"`
	ContactPhone string     `json:"contact_phone" validate:"required,max=32"`
	ImageURL     string     `json:"image_url,omitempty" validate:"omitempty,url"`
	Status       string     `json:"status" validate:"omitempty,oneof=pending approved rejected expired"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type AdFilter struct {
	Status   string
	Category string
	UserID   int64
	Query    string
	Page     Page
}

type AdStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
