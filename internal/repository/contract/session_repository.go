package contract

import (
	"context"

	"aurora-fiscalizacao-be/internal/entity"
)

// ISessionRepository stores one dialogue session per citizen, keyed by the
// WhatsApp sender id. A missing session means the citizen is at rest.
type ISessionRepository interface {
	Get(ctx context.Context, sender string) (*entity.Session, error)
	Save(ctx context.Context, sender string, session *entity.Session) error
	Clear(ctx context.Context, sender string) error
}
