package model

import "time"

// ProtocolStatusRecord holds the inspection status shown to citizens who
// track a protocol. Rows are maintained by the fiscalization back office.
type ProtocolStatusRecord struct {
	Protocol  string    `gorm:"type:varchar(20);primaryKey" json:"protocol"`
	Status    string    `gorm:"type:varchar(100);not null" json:"status"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"default:now();not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now();not null" json:"updated_at"`
}

func (ProtocolStatusRecord) TableName() string {
	return "protocol_status_records"
}
