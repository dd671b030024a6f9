package service

import (
	"context"

	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

// IProtocolService serves the back-office status endpoints and doubles as the
// engine's read-only status lookup.
type IProtocolService interface {
	Find(ctx context.Context, protocol string) (*entity.ProtocolStatus, bool)
	Show(ctx context.Context, protocol string) (*dto.ProtocolStatusResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertProtocolStatusRequest) error
}

type protocolService struct {
	repo contract.IProtocolStatusRepository
	log  logger.ILogger
}

func NewProtocolService(repo contract.IProtocolStatusRepository, log logger.ILogger) IProtocolService {
	return &protocolService{repo: repo, log: log}
}

// Find satisfies the engine's lookup port. Repository errors degrade to "not
// found" so a database hiccup never breaks the conversation; the citizen gets
// the default status text instead.
func (s *protocolService) Find(ctx context.Context, protocol string) (*entity.ProtocolStatus, bool) {
	record, found, err := s.repo.Find(ctx, protocol)
	if err != nil {
		s.log.Warn("protocol", "status lookup failed", map[string]interface{}{
			"protocol": protocol,
			"error":    err.Error(),
		})
		return nil, false
	}
	return record, found
}

func (s *protocolService) Show(ctx context.Context, protocol string) (*dto.ProtocolStatusResponse, error) {
	record, found, err := s.repo.Find(ctx, protocol)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "protocol not found")
	}
	return &dto.ProtocolStatusResponse{
		Protocol: protocol,
		Status:   record.Status,
		Details:  record.Details,
	}, nil
}

func (s *protocolService) Upsert(ctx context.Context, req *dto.UpsertProtocolStatusRequest) error {
	return s.repo.Upsert(ctx, req.Protocol, req.Status, req.Details)
}
