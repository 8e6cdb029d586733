package models

import "time"

type Campaign struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Description  string     `json:"description" validate:"required,max=5000"`
	BusinessName string     `json:"business_name" validate:"required,max=160"`
	ImageURL     string     `json:"image_url,omitempty" validate:"omitempty,url"`
	StartsAt     time.Time  `json:"starts_at" validate:"required"`
	EndsAt       time.Time  `json:"ends_at" validate:"required"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type CampaignFilter struct {
	Query string
	Page  Page
}
