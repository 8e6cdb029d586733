package models

import "time"

type Neighborhood struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name" validate:"required,min=2,max=120"`
	HeadmanName  string     `json:"headman_name,omitempty" validate:"max=120"`
	HeadmanPhone string     `json:"headman_phone,omitempty" validate:"omitempty,max=32"`
	Population   int        `json:"population" validate:"gte=0"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
