package app

import "time"

// Status is the processing state of an uploaded document.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// MaxFileSize is the largest accepted document, in bytes.
const MaxFileSize = 10 * 1024 * 1024

// CreateDocumentRequest is the metadata recorded for a newly uploaded file.
type CreateDocumentRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileSize int64  `json:"file_size" validate:"gt=0,lte=10485760"`
	FileType string `json:"file_type" validate:"required,oneof=application/pdf application/msword application/vnd.openxmlformats-officedocument.wordprocessingml.document image/jpeg image/png image/jpg"`
}

// UpdateStatusRequest moves a document along its processing lifecycle.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=processing completed failed"`
}

// Document is the caller-facing document record.
type Document struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	FileSize  int64     `json:"file_size"`
	FileType  string    `json:"file_type"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// transitions lists the statuses each status may move to.
var transitions = map[Status][]Status{
	StatusUploaded:   {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
}

func canTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
