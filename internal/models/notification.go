package models

import "time"

const (
	NotificationTargetAll  = "all"
	NotificationTargetUser = "user"
)

type Notification struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required,max=120"`
	Body        string    `json:"body" validate:"required,max=1000"`
	Link        string    `json:"link,omitempty" validate:"max=300"`
	Target      string    `json:"target" validate:"required,oneof=all user"`
	UserID      *int64    `json:"user_id,omitempty" validate:"required_if=Target user"`
	SentCount   int       `json:"sent_count"`
	FailedCount int       `json:"failed_count"`
	CreatedBy   int64     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type DeviceToken struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Token     string    `json:"token" validate:"required,max=512"`
	Platform  string    `json:"platform" validate:"required,oneof=android ios web"`
	CreatedAt time.Time `json:"created_at"`
}
