package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file uploaded alongside a request (a photo of the damage,
// a prescription). The object itself lives in MinIO under ObjectKey.
type Attachment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RequestID   uuid.UUID `json:"request_id" db:"request_id"`
	ObjectKey   string    `json:"-" db:"object_key"`
	FileName    string    `json:"file_name" db:"file_name"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes" db:"size_bytes"`
	UploadedBy  uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	URL         string    `json:"url" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
