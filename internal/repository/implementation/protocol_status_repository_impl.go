package implementation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/internal/model"
	"aurora-fiscalizacao-be/internal/repository/contract"
)

type ProtocolStatusRepositoryImpl struct {
	db *gorm.DB
}

func NewProtocolStatusRepository(db *gorm.DB) contract.IProtocolStatusRepository {
	return &ProtocolStatusRepositoryImpl{db: db}
}

func (r *ProtocolStatusRepositoryImpl) Find(ctx context.Context, protocol string) (*entity.ProtocolStatus, bool, error) {
	var m model.ProtocolStatusRecord
	if err := r.db.WithContext(ctx).First(&m, "protocol = ?", protocol).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &entity.ProtocolStatus{Status: m.Status, Details: m.Details}, true, nil
}

func (r *ProtocolStatusRepositoryImpl) Upsert(ctx context.Context, protocol, status, details string) error {
	record := model.ProtocolStatusRecord{
		Protocol:  protocol,
		Status:    status,
		Details:   details,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "protocol"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "details", "updated_at"}),
	}).Create(&record).Error
}
