package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog records request metadata only. Uploaded content, extracted text
// and model output are never stored.
type RequestLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestID    string    `gorm:"type:text;index" json:"request_id"`
	Method       string    `gorm:"type:text" json:"method"`
	Path         string    `gorm:"type:text" json:"path"`
	StatusCode   int       `gorm:"not null" json:"status_code"`
	DurationMs   int64     `gorm:"not null" json:"duration_ms"`
	FileExt      string    `gorm:"type:text" json:"file_ext,omitempty"`
	FileSize     int64     `json:"file_size,omitempty"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RequestLog) TableName() string {
	return "request_logs"
}
