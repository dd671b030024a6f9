package dialogue

import (
	"context"

	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/pkg/webhook"
)

// Effect is an outbound action requested by the engine. The engine itself
// touches no network, file or bus: it returns the next session plus the
// effects to perform, and the service layer executes them in order.
type Effect interface {
	isEffect()
}

// SendText delivers one chat message to the citizen.
type SendText struct {
	To   string
	Text string
}

// SendDocument asks the transport layer to deliver the bundled RCA document.
// The executor resolves the configured file path and falls back to an apology
// text when the file is missing.
type SendDocument struct {
	To string
}

// Dispatch forwards a structured event to the notification sinks.
type Dispatch struct {
	Title  string
	Fields []webhook.Field
	Color  string
}

func (SendText) isEffect()     {}
func (SendDocument) isEffect() {}
func (Dispatch) isEffect()     {}

// ProtocolIssuer is the engine's port to the protocol generator.
type ProtocolIssuer interface {
	Generate(typeKey string) string
}

// StatusFinder resolves a protocol identifier to its status record.
// The second return is false when no record exists; the engine then answers
// with the default "under review" status.
type StatusFinder interface {
	Find(ctx context.Context, protocol string) (*entity.ProtocolStatus, bool)
}
