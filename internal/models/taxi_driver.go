package models

import "time"

type TaxiDriver struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name" validate:"required,min=2,max=160"`
	Phone          string     `json:"phone" validate:"required,max=32"`
	Plate          string     `json:"plate" validate:"required,min=4,max=16"`
	StandName      string     `json:"stand_name,omitempty" validate:"max=120"`
	NeighborhoodID *int64     `json:"neighborhood_id,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty" validate:"omitempty,url"`
	IsActive       bool       `json:"is_active"`
	CallCount      int64      `json:"call_count"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type TaxiFilter struct {
	NeighborhoodID int64
	Stand          string
	Query          string
	OnlyActive     bool
	Page           Page
}

// TaxiCall is returned when a citizen taps "call" on a driver.
type TaxiCall struct {
	DriverID  int64  `json:"driver_id"`
	Phone     string `json:"phone"`
	CallCount int64  `json:"call_count"`
}
