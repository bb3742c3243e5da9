package db

import "time"

// Document is the metadata row kept for an uploaded tender document.
type Document struct {
	ID        string
	UserID    string
	FileName  string
	FileSize  int64
	FileType  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
