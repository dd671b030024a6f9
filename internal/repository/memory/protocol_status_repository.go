package memory

import (
	"context"
	"sync"

	"aurora-fiscalizacao-be/internal/entity"
)

// ProtocolStatusRepository is the in-process status store used when no
// database is configured. It ships with a handful of known protocols so the
// tracking flow is exercisable out of the box.
type ProtocolStatusRepository struct {
	mu      sync.RWMutex
	records map[string]entity.ProtocolStatus
}

func NewProtocolStatusRepository() *ProtocolStatusRepository {
	return &ProtocolStatusRepository{
		records: map[string]entity.ProtocolStatus{
			"2025.12.01.1.0001": {
				Status:  "Vistoria realizada",
				Details: "O fiscal esteve no local em 05/12. Notificação emitida ao proprietário do lote.",
			},
			"2025.12.05.2.0002": {
				Status:  "Em análise pelo Setor de Posturas",
				Details: "A denúncia foi encaminhada ao fiscal responsável pela região.",
			},
			"2025.12.08.1.0001": {
				Status:  "Aguardando vistoria",
				Details: "Protocolo registrado e em fila de análise. Prazo estimado: 5 dias úteis.",
			},
		},
	}
}

func (r *ProtocolStatusRepository) Find(_ context.Context, protocol string) (*entity.ProtocolStatus, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if record, ok := r.records[protocol]; ok {
		return &record, true, nil
	}
	return nil, false, nil
}

func (r *ProtocolStatusRepository) Upsert(_ context.Context, protocol, status, details string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[protocol] = entity.ProtocolStatus{Status: status, Details: details}
	return nil
}
