package contract

import (
	"context"

	"aurora-fiscalizacao-be/internal/model"
)

// IAuditRepository persists consumed audit-trail events.
type IAuditRepository interface {
	Append(ctx context.Context, record *model.DialogueEventLog) error
	Recent(ctx context.Context, limit int) ([]*model.DialogueEventLog, error)
}
