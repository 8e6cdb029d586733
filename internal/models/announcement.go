package models

import "time"

type Announcement struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Content     string     `json:"content" validate:"required"`
	ImageURL    string     `json:"image_url,omitempty" validate:"omitempty,url"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	Notify      bool       `json:"notify,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type AnnouncementFilter struct {
	Query string
	Page  Page
}
