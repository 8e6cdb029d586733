package models

import "time"

type DeathNotice struct {
	ID             int64      `json:"id"`
	FullName       string     `json:"full_name" validate:"required,min=2,max=160"`
	FatherName     string     `json:"father_name,omitempty" validate:"max=120"`
	MotherName     string     `json:"mother_name,omitempty" validate:"max=120"`
	Age            *int       `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	DiedAt         time.Time  `json:"died_at" validate:"required"`
	FuneralAt      *time.Time `json:"funeral_at,omitempty"`
	FuneralPlace   string     `json:"funeral_place,omitempty" validate:"max=200"`
	BurialPlace    string     `json:"burial_place,omitempty" validate:"max=200"`
	NeighborhoodID *int64     `json:"neighborhood_id,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty" validate:"omitempty,url"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

type DeathNoticeFilter struct {
	NeighborhoodID int64
	Query          string
	Page           Page
}
