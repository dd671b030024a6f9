package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"aurora-fiscalizacao-be/internal/constant"
	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/pkg/mailer"
	"aurora-fiscalizacao-be/internal/repository/contract"
	"aurora-fiscalizacao-be/pkg/dialogue"
	"aurora-fiscalizacao-be/pkg/events"
	pkgnats "aurora-fiscalizacao-be/pkg/nats"
	"aurora-fiscalizacao-be/pkg/transport"
	"aurora-fiscalizacao-be/pkg/webhook"
)

type IDialogueService interface {
	HandleMessage(ctx context.Context, req *dto.InboundMessageRequest) error
	HandleCall(ctx context.Context, req *dto.InboundCallRequest) error
}

type dialogueService struct {
	engine       *dialogue.Engine
	sessions     contract.ISessionRepository
	sender       transport.Sender
	dispatcher   *webhook.Dispatcher
	natsPub      *pkgnats.Publisher
	emailService mailer.IEmailService
	documentPath string
	log          logger.ILogger
}

// NewDialogueService wires the engine to its surroundings. natsPub and
// emailService may be nil when the corresponding infrastructure is not
// configured; the conversation itself never depends on them.
func NewDialogueService(
	engine *dialogue.Engine,
	sessions contract.ISessionRepository,
	sender transport.Sender,
	dispatcher *webhook.Dispatcher,
	natsPub *pkgnats.Publisher,
	emailService mailer.IEmailService,
	documentPath string,
	log logger.ILogger,
) IDialogueService {
	return &dialogueService{
		engine:       engine,
		sessions:     sessions,
		sender:       sender,
		dispatcher:   dispatcher,
		natsPub:      natsPub,
		emailService: emailService,
		documentPath: documentPath,
		log:          log,
	}
}

func (s *dialogueService) HandleMessage(ctx context.Context, req *dto.InboundMessageRequest) error {
	if req.IsGroup {
		// The bot only serves direct conversations.
		return nil
	}

	normalized, numeric := dialogue.Normalize(req.Body)
	in := dialogue.Input{
		Sender:      req.SenderId,
		DisplayName: req.NotifyName,
		Normalized:  normalized,
		Numeric:     numeric,
	}

	sess, err := s.sessions.Get(ctx, req.SenderId)
	if err != nil {
		s.log.Warn("dialogue", "failed to load session, starting fresh", map[string]interface{}{
			"sender": req.SenderId,
			"error":  err.Error(),
		})
		sess = nil
	}

	prevState := entity.StateIdle
	if sess != nil {
		prevState = sess.State
	}

	next, effects := s.engine.Handle(ctx, sess, in)

	if err := s.storeSession(ctx, req.SenderId, next); err != nil {
		s.log.Error("dialogue", "failed to persist session", map[string]interface{}{
			"sender": req.SenderId,
			"error":  err.Error(),
		})
	}

	for _, effect := range effects {
		s.execute(ctx, effect, in)
	}

	s.publishAudit(ctx, events.NewDialogueStep(req.SenderId, string(prevState), string(next.State), len(effects)))
	return nil
}

// HandleCall rejects a voice call with a text notice, re-offers the main menu
// and resets the caller's session. The gateway already declined the call
// itself; a citizen who was mid-flow restarts from the menu.
func (s *dialogueService) HandleCall(ctx context.Context, req *dto.InboundCallRequest) error {
	s.reply(ctx, req.From, fmt.Sprintf(constant.CallNoticeFmt, constant.DefaultCitizenName))
	s.reply(ctx, req.From, fmt.Sprintf(constant.GreetingFmt, constant.DefaultCitizenName))
	s.reply(ctx, req.From, constant.MenuOptions)

	if err := s.sessions.Clear(ctx, req.From); err != nil {
		s.log.Warn("dialogue", "failed to reset session after call", map[string]interface{}{
			"sender": req.From,
			"error":  err.Error(),
		})
	}
	return nil
}

// storeSession clears resting sessions instead of persisting them. A session
// holding fallback strikes is not resting, so the counter survives restarts
// of the conversation but a completed flow leaves nothing behind.
func (s *dialogueService) storeSession(ctx context.Context, sender string, next *entity.Session) error {
	if next.Idle() {
		return s.sessions.Clear(ctx, sender)
	}
	return s.sessions.Save(ctx, sender, next)
}

func (s *dialogueService) execute(ctx context.Context, effect dialogue.Effect, in dialogue.Input) {
	switch ef := effect.(type) {
	case dialogue.SendText:
		if err := s.sender.SendText(ctx, ef.To, ef.Text); err != nil {
			s.log.Warn("dialogue", "failed to deliver text", map[string]interface{}{
				"to":    ef.To,
				"error": err.Error(),
			})
		}

	case dialogue.SendDocument:
		s.sendDocument(ctx, ef.To)

	case dialogue.Dispatch:
		s.dispatcher.Dispatch(ctx, ef.Title, ef.Fields, ef.Color)
		s.auditDispatch(ctx, ef, in)
	}
}

func (s *dialogueService) sendDocument(ctx context.Context, to string) {
	if s.documentPath == "" {
		s.reply(ctx, to, constant.ReplyDocumentMissing)
		return
	}
	if _, err := os.Stat(s.documentPath); err != nil {
		s.log.Warn("dialogue", "document file unavailable", map[string]interface{}{
			"path":  s.documentPath,
			"error": err.Error(),
		})
		s.reply(ctx, to, constant.ReplyDocumentMissing)
		return
	}

	if err := s.sender.SendMedia(ctx, to, s.documentPath, constant.CaptionDocumentRCA); err != nil {
		s.log.Warn("dialogue", "failed to deliver document", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
		s.reply(ctx, to, constant.ReplyDocumentMissing)
		return
	}
	s.reply(ctx, to, constant.ReplyDocumentSent)
}

func (s *dialogueService) reply(ctx context.Context, to, text string) {
	if err := s.sender.SendText(ctx, to, text); err != nil {
		s.log.Warn("dialogue", "failed to deliver text", map[string]interface{}{
			"to":    to,
			"error": err.Error(),
		})
	}
}

// auditDispatch derives audit-trail events from the outgoing notification and
// triggers the operator e-mail on handoffs.
func (s *dialogueService) auditDispatch(ctx context.Context, d dialogue.Dispatch, in dialogue.Input) {
	switch d.Title {
	case constant.TitleHandoffRequested, constant.TitleHandoffAutomatic:
		automatic := d.Title == constant.TitleHandoffAutomatic
		reason := fieldValue(d.Fields, "Instrução")
		if automatic {
			reason = fieldValue(d.Fields, "Motivo")
		}
		s.publishAudit(ctx, events.NewHandoffRequested(in.Sender, in.DisplayName, reason, automatic))

		if s.emailService != nil {
			if err := s.emailService.SendHandoffAlert(in.DisplayName, in.Sender, reason); err != nil {
				s.log.Warn("dialogue", "failed to send handoff e-mail", map[string]interface{}{
					"sender": in.Sender,
					"error":  err.Error(),
				})
			}
		}

	case constant.TitleSatisfactionSurvey:
		s.publishAudit(ctx, events.BaseEvent{
			Type: events.TypeSurveySubmitted,
			Data: map[string]interface{}{
				"sender":    in.Sender,
				"rating":    fieldValue(d.Fields, "Nota Atribuída"),
				"flow_type": fieldValue(d.Fields, "Tipo de Fluxo"),
				"protocol":  fieldValue(d.Fields, "Protocolo Relacionado"),
			},
			OccurredAt: time.Now(),
		})

	default:
		protocol := fieldValue(d.Fields, "Protocolo")
		if protocol == "" {
			return
		}
		typeLabel := fieldValue(d.Fields, "Tipo")
		s.publishAudit(ctx, events.NewProtocolIssued(protocol, typeLabel, in.Sender))
		s.publishAudit(ctx, events.NewComplaintRegistered(protocol, typeLabel, fieldValue(d.Fields, "Endereço"), in.Sender))
	}
}

func (s *dialogueService) publishAudit(ctx context.Context, event events.Event) {
	if s.natsPub == nil {
		return
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.log.Warn("dialogue", "failed to publish audit event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

func fieldValue(fields []webhook.Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}
