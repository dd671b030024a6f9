package protocol

import (
	"fmt"
	"sync"
	"time"

	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/internal/pkg/logger"
)

// fallbackTypeCode is issued for any request type outside the fixed mapping.
// The menu only offers three complaint types today, but the identifier format
// reserves code 9 for everything else instead of rejecting the request.
const fallbackTypeCode = 9

var requestTypeCodes = map[string]int{
	entity.ComplaintTypeDirtyLot:   1,
	entity.ComplaintTypeCompany:    2,
	entity.ComplaintTypeOccupation: 3,
}

// Generator issues protocol identifiers of the form YYYY.MM.DD.T.NNNN.
// The increment-and-persist step is a critical section: two concurrent
// issuances must never observe the same sequence value.
type Generator struct {
	mu    sync.Mutex
	last  int
	store SequenceStore
	log   logger.ILogger
	now   func() time.Time
}

func NewGenerator(store SequenceStore, log logger.ILogger) *Generator {
	g := &Generator{
		store: store,
		log:   log,
		now:   time.Now,
	}

	value, err := store.Load()
	if err != nil {
		g.log.Warn("ProtocolGenerator", "Failed to load sequence, starting from 0", map[string]interface{}{"error": err.Error()})
		value = 0
	}
	g.last = value
	g.log.Info("ProtocolGenerator", "Sequence loaded", map[string]interface{}{"last": value})

	return g
}

// Generate resolves the request type, advances the sequence, persists it and
// formats the identifier. The in-memory counter advances even when the save
// fails, so an identifier is never reused within a process lifetime; a restart
// after a failed save may replay numbers (single-writer, best-effort
// durability).
func (g *Generator) Generate(typeKey string) string {
	code, ok := requestTypeCodes[typeKey]
	if !ok {
		code = fallbackTypeCode
	}

	g.mu.Lock()
	g.last++
	sequence := g.last
	if err := g.store.Save(sequence); err != nil {
		g.log.Error("ProtocolGenerator", "Failed to persist sequence", map[string]interface{}{"error": err.Error(), "sequence": sequence})
	}
	g.mu.Unlock()

	now := g.now()
	// %04d widens past four digits instead of wrapping once the counter
	// crosses 9999.
	return fmt.Sprintf("%d.%02d.%02d.%d.%04d", now.Year(), int(now.Month()), now.Day(), code, sequence)
}
