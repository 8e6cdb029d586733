package models

import "time"

const (
	ComplaintStatusNew      = "new"
	ComplaintStatusInReview = "in_review"
	ComplaintStatusResolved = "resolved"
	ComplaintStatusRejected = "rejected"
)

var complaintTransitions = map[string][]string{
	ComplaintStatusNew:      {ComplaintStatusInReview, ComplaintStatusRejected},
	ComplaintStatusInReview: {ComplaintStatusResolved, ComplaintStatusRejected},
}

// CanTransition reports whether a complaint may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range complaintTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Complaint struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	TrackingCode   string         `json:"tracking_code"`
	Category       string         `json:"category" validate:"required,max=60"`
	Description    string         `json:"description" validate:"required,min=10,max=5000"`
	Address        string         `json:"address,omitempty" validate:"max=300"`
	Latitude       *float64       `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude      *float64       `json:"longitude,omitempty" validate:"omitempty,longitude"`
	PhotoURL       string         `json:"photo_url,omitempty" validate:"omitempty,url"`
	NeighborhoodID *int64         `json:"neighborhood_id,omitempty"`
	Status         string         `json:"status"`
	AdminNote      string         `json:"admin_note,omitempty"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	User           *ComplaintUser `json:"user,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

type ComplaintUser struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ComplaintFilter struct {
	Status         string
	Category       string
	NeighborhoodID int64
	UserID         int64
	Query          string
	Page           Page
}

type ComplaintReview struct {
	Status    string `json:"status" validate:"required,oneof=in_review resolved rejected"`
	AdminNote string `json:"admin_note" validate:"max=2000"`
}

// ComplaintTrack is the public, anonymous view of a complaint.
type ComplaintTrack struct {
	TrackingCode string     `json:"tracking_code"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	AdminNote    string     `json:"admin_note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
