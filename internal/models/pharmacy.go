package models

import "time"

type Pharmacy struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name" validate:"required,min=2,max=160"`
	Pharmacist     string     `json:"pharmacist,omitempty" validate:"max=120"`
	Phone          string     `json:"phone" validate:"required,max=32"`
	Address        string     `json:"address" validate:"required,max=300"`
	Latitude       *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude      *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
	NeighborhoodID *int64     `json:"neighborhood_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// PharmacyDuty is one night/holiday duty of a pharmacy on a calendar date.
type PharmacyDuty struct {
	ID         int64      `json:"id"`
	PharmacyID int64      `json:"pharmacy_id" validate:"required,gt=0"`
	DutyDate   string     `json:"duty_date" validate:"required,datetime=2006-01-02"`
	StartsAt   string     `json:"starts_at" validate:"omitempty,datetime=15:04"`
	EndsAt     string     `json:"ends_at" validate:"omitempty,datetime=15:04"`
	Note       string     `json:"note,omitempty" validate:"max=300"`
	Pharmacy   *Pharmacy  `json:"pharmacy,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type PharmacyFilter struct {
	NeighborhoodID int64
	Query          string
	Page           Page
}

type DutyFilter struct {
	From       string
	To         string
	PharmacyID int64
	Page       Page
}

type BulkDutyRequest struct {
	Duties []PharmacyDuty `json:"duties" validate:"required,min=1,max=400,dive"`
}
