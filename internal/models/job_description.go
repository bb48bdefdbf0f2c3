package models

import (
	"time"

	"github.com/google/uuid"
)

type IndexStatus string

const (
	IndexPending    IndexStatus = "pending"
	IndexProcessing IndexStatus = "processing"
	IndexIndexed    IndexStatus = "indexed"
	IndexFailed     IndexStatus = "failed"
)

// JobDescription is a stored job posting that résumés can be analyzed against
// by id and that semantic search ranks for a résumé.
type JobDescription struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string      `gorm:"type:text;not null" json:"title"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	IndexStatus IndexStatus `gorm:"type:text;not null;default:'pending';index" json:"index_status"`
	IndexError  *string     `gorm:"type:text" json:"index_error,omitempty"`
	CreatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
