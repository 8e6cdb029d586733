package models

import "time"

type File struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"owner_id"`
	OriginalName string    `json:"original_name"`
	StoredKey    string    `json:"stored_key"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

type FileFilter struct {
	OwnerID int64
	Page    Page
}
