package implementation

import (
	"context"

	"gorm.io/gorm"

	"aurora-fiscalizacao-be/internal/model"
	"aurora-fiscalizacao-be/internal/repository/contract"
)

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) contract.IAuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) Append(ctx context.Context, record *model.DialogueEventLog) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *AuditRepositoryImpl) Recent(ctx context.Context, limit int) ([]*model.DialogueEventLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var records []*model.DialogueEventLog
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
