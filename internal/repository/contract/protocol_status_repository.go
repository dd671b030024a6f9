package contract

import (
	"context"

	"aurora-fiscalizacao-be/internal/entity"
)

// IProtocolStatusRepository looks up the inspection status for a protocol
// identifier. Find reports found=false when no record exists; the caller
// substitutes the default status text.
type IProtocolStatusRepository interface {
	Find(ctx context.Context, protocol string) (*entity.ProtocolStatus, bool, error)
	Upsert(ctx context.Context, protocol, status, details string) error
}
