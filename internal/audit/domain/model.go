package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a domain action.
type AuditLog struct {
	ID         snowflake.ID   `json:"id" gorm:"primaryKey"`
	Actor      string         `json:"actor" gorm:"type:text"`
	Action     string         `json:"action" gorm:"type:text;not null;index"`
	TargetType string         `json:"target_type" gorm:"type:text;not null"`
	TargetID   string         `json:"target_id" gorm:"type:text;index"`
	Metadata   datatypes.JSON `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_log" }

// Entry is a single audit event to record.
type Entry struct {
	Actor      string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
}

// Service records audit entries. Recording is best-effort: failures are
// logged, never propagated to the calling operation.
type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, action string, limit int) ([]AuditLog, error)
}
