package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"aurora-fiscalizacao-be/internal/model"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/repository/contract"
	"aurora-fiscalizacao-be/internal/websocket"
	"aurora-fiscalizacao-be/pkg/events"
	pkgnats "aurora-fiscalizacao-be/pkg/nats"
)

type IAuditService interface {
	Start() error
	Recent(ctx context.Context, limit int) ([]*model.DialogueEventLog, error)
}

// auditService consumes the dialogue event stream, writes each event to the
// database and pushes it to the operator consoles.
type auditService struct {
	natsSub *pkgnats.Subscriber
	repo    contract.IAuditRepository
	hub     *websocket.Hub
	log     logger.ILogger
}

func NewAuditService(
	natsSub *pkgnats.Subscriber,
	repo contract.IAuditRepository,
	hub *websocket.Hub,
	log logger.ILogger,
) IAuditService {
	return &auditService{
		natsSub: natsSub,
		repo:    repo,
		hub:     hub,
		log:     log,
	}
}

func (s *auditService) Start() error {
	return s.natsSub.Subscribe("dialogue.>", "audit-writer", s.handle)
}

func (s *auditService) Recent(ctx context.Context, limit int) ([]*model.DialogueEventLog, error) {
	if s.repo == nil {
		return []*model.DialogueEventLog{}, nil
	}
	return s.repo.Recent(ctx, limit)
}

func (s *auditService) handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}

	sender, _ := event.Payload()["sender"].(string)
	record := &model.DialogueEventLog{
		EventType:  event.EventType(),
		Sender:     sender,
		Payload:    datatypes.JSON(payload),
		OccurredAt: event.Timestamp(),
	}

	if s.repo != nil {
		if err := s.repo.Append(ctx, record); err != nil {
			s.log.Error("audit", "failed to persist event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
			return err
		}
	}

	if s.hub != nil {
		s.hub.Broadcast(event)
	}
	return nil
}
