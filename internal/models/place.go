package models

import "time"

type PlaceCategory struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name" validate:"required,min=2,max=120"`
	Icon       string     `json:"icon,omitempty" validate:"max=200"`
	Position   int        `json:"position"`
	PlaceCount int        `json:"place_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// Place is a city-guide entry: a museum, park, public office and so on.
type Place struct {
	ID           int64      `json:"id"`
	CategoryID   int64      `json:"category_id" validate:"required,gt=0"`
	Name         string     `json:"name" validate:"required,min=2,max=160"`
	Description  string     `json:"description,omitempty" validate:"max=5000"`
	Address      string     `json:"address,omitempty" validate:"max=300"`
	Phone        string     `json:"phone,omitempty" validate:"max=32"`
	Website      string     `json:"website,omitempty" validate:"omitempty,url"`
	Latitude     *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ImageURL     string     `json:"image_url,omitempty" validate:"omitempty,url"`
	WorkingHours string     `json:"working_hours,omitempty" validate:"max=200"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

type PlaceFilter struct {
	CategoryID int64
	Query      string
	Page       Page
}
