package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DialogueEventLog is the persisted audit trail: one row per event consumed
// from the bus.
type DialogueEventLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EventType  string         `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Sender     string         `gorm:"type:varchar(100);index" json:"sender"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
	CreatedAt  time.Time      `gorm:"default:now();not null" json:"created_at"`
}

func (DialogueEventLog) TableName() string {
	return "dialogue_event_logs"
}
