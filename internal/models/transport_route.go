package models

import "time"

type TransportRoute struct {
	ID             int64       `json:"id"`
	Code           string      `json:"code" validate:"required,max=20"`
	Name           string      `json:"name" validate:"required,min=2,max=160"`
	Description    string      `json:"description,omitempty" validate:"max=2000"`
	RouteType      string      `json:"route_type" validate:"required,oneof=bus minibus"`
	Fare           *float64    `json:"fare,omitempty" validate:"omitempty,gte=0"`
	DepartureTimes []string    `json:"departure_times" validate:"dive,datetime=15:04"`
	IsActive       bool        `json:"is_active"`
	Stops          []RouteStop `json:"stops" validate:"dive"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}

type RouteStop struct {
	ID        int64    `json:"id"`
	RouteID   int64    `json:"route_id"`
	Name      string   `json:"name" validate:"required,max=160"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Position  int      `json:"position"`
}

type RouteFilter struct {
	RouteType  string
	OnlyActive bool
	Query      string
	Page       Page
}
