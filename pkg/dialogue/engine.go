package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"aurora-fiscalizacao-be/internal/constant"
	"aurora-fiscalizacao-be/internal/entity"
	"aurora-fiscalizacao-be/pkg/webhook"
)

// globalCommands reset the dialogue to the main menu from any state. They are
// checked before any state-specific rule so a citizen can abandon a flow at
// any point.
var globalCommands = map[string]bool{
	"oi":        true,
	"olá":       true,
	"ola":       true,
	"menu":      true,
	"bom dia":   true,
	"boa tarde": true,
	"boa noite": true,
	"denunciar": true,
	"lote":      true,
	"vizinho":   true,
}

var protocolPattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}\.\d{1}\.\d{4}$`)

// maxUnknownAttempts is the escalation threshold: the third consecutive
// unclassified input forces a handoff to a human operator.
const maxUnknownAttempts = 3

// Input is one inbound citizen message after normalization.
type Input struct {
	Sender      string
	DisplayName string
	Normalized  string
	Numeric     string
}

// Engine is the per-user finite-state dialogue machine. Handle is a pure
// transition function over (session, input); all outbound work is returned as
// effects. The only injected ports are the protocol issuer and the read-only
// status lookup, both trivially faked in tests.
type Engine struct {
	issuer   ProtocolIssuer
	statuses StatusFinder
}

func NewEngine(issuer ProtocolIssuer, statuses StatusFinder) *Engine {
	return &Engine{issuer: issuer, statuses: statuses}
}

// Handle executes one dialogue step. The returned session replaces the stored
// one wholesale; effects are performed by the caller in order.
func (e *Engine) Handle(ctx context.Context, sess *entity.Session, in Input) (*entity.Session, []Effect) {
	if sess == nil {
		sess = entity.NewSession()
	}
	if in.DisplayName == "" {
		in.DisplayName = constant.DefaultCitizenName
	}

	// Empty bodies (e.g. bare media events outside the photo step) produce no
	// action and no reply.
	if in.Numeric == "" {
		return sess, nil
	}

	if globalCommands[in.Normalized] || in.Normalized == "voltar" {
		return entity.NewSession(), mainMenu(in)
	}

	// A session restored from an external store can arrive in a complaint
	// state without its draft. Restart such a conversation from the menu
	// instead of dereferencing a nil draft.
	switch sess.State {
	case entity.StateComplaintPhotoAsk, entity.StateComplaintReceivingPhotos,
		entity.StateCompanyAddress, entity.StateCompanyName, entity.StateCompanyReason:
		if sess.Complaint == nil {
			return entity.NewSession(), mainMenu(in)
		}
	}

	switch sess.State {
	case entity.StateIdle:
		return e.handleIdle(sess, in)
	case entity.StateComplaintTypeSelect:
		return e.handleComplaintTypeSelect(sess, in)
	case entity.StateComplaintAddress:
		return e.handleComplaintAddress(in)
	case entity.StateComplaintPhotoAsk:
		return e.handleComplaintPhotoAsk(sess, in)
	case entity.StateComplaintReceivingPhotos:
		return e.handleReceivingPhotos(sess, in)
	case entity.StateCompanyAddress:
		next := &entity.Session{
			State:     entity.StateCompanyName,
			Complaint: &entity.ComplaintDraft{Type: sess.Complaint.Type, Address: in.Numeric},
		}
		return next, reply(in, constant.ReplyCompanyNamePrompt)
	case entity.StateCompanyName:
		next := &entity.Session{
			State: entity.StateCompanyReason,
			Complaint: &entity.ComplaintDraft{
				Type:        sess.Complaint.Type,
				Address:     sess.Complaint.Address,
				CompanyName: in.Numeric,
			},
		}
		return next, reply(in, constant.ReplyCompanyReasonPrompt)
	case entity.StateCompanyReason:
		return e.handleCompanyReason(sess, in)
	case entity.StateTrackProtocolInput:
		return e.handleTrackProtocol(ctx, in)
	case entity.StateSatisfactionSurvey:
		return e.handleSatisfactionSurvey(sess, in)
	}

	return e.handleUnknown(sess, in)
}

func (e *Engine) handleIdle(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	// Menu digits are only honored from a clean rest state. Once the fallback
	// counter is running, every input short of a global command counts toward
	// the escalation threshold.
	if sess.UnknownAttempts > 0 {
		return e.handleUnknown(sess, in)
	}

	switch in.Numeric {
	case "1":
		return &entity.Session{State: entity.StateComplaintTypeSelect}, reply(in, constant.ReplyComplaintTypeMenu)
	case "2":
		return &entity.Session{State: entity.StateTrackProtocolInput}, reply(in, constant.ReplyTrackProtocolPrompt)
	case "3":
		return entity.NewSession(), []Effect{SendDocument{To: in.Sender}}
	case "4":
		effects := []Effect{
			Dispatch{
				Title: constant.TitleHandoffRequested,
				Fields: []webhook.Field{
					{Name: "Prioridade", Value: "**ATENDIMENTO IMEDIATO**", Inline: false},
					{Name: "Usuário", Value: in.DisplayName, Inline: true},
					{Name: "Contato WhatsApp", Value: in.Sender, Inline: true},
					{Name: "Instrução", Value: "O usuário selecionou a opção de atendimento humano.", Inline: false},
				},
				Color: constant.ColorHandoff,
			},
			SendText{To: in.Sender, Text: constant.ReplyHandoffRequested},
		}
		return entity.NewSession(), effects
	}

	return e.handleUnknown(sess, in)
}

func (e *Engine) handleComplaintTypeSelect(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	switch in.Numeric {
	case "1":
		next := &entity.Session{
			State:     entity.StateComplaintAddress,
			Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot},
		}
		text := fmt.Sprintf(constant.ReplyTypeChosenFmt, entity.ComplaintTypeLabel(entity.ComplaintTypeDirtyLot)) + constant.ReplyAddressPromptLot
		return next, reply(in, text)
	case "2":
		next := &entity.Session{
			State:     entity.StateCompanyAddress,
			Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeCompany},
		}
		text := fmt.Sprintf(constant.ReplyTypeChosenFmt, entity.ComplaintTypeLabel(entity.ComplaintTypeCompany)) + constant.ReplyAddressPromptCompany
		return next, reply(in, text)
	case "3":
		// Occupation complaints skip data collection: the protocol is issued
		// immediately and the citizen is pointed at the official form.
		protocol := e.issuer.Generate(entity.ComplaintTypeOccupation)
		label := entity.ComplaintTypeLabel(entity.ComplaintTypeOccupation)
		effects := []Effect{
			Dispatch{
				Title: constant.TitleComplaintOccupa,
				Fields: []webhook.Field{
					{Name: "Protocolo", Value: protocol, Inline: true},
					{Name: "Tipo", Value: label, Inline: true},
					{Name: "Ação", Value: "Usuário redirecionado para Formulário Oficial", Inline: false},
					{Name: "Contato", Value: in.Sender, Inline: false},
				},
				Color: constant.ColorAlert,
			},
			SendText{To: in.Sender, Text: fmt.Sprintf(constant.ReplyOccupationRegisteredFmt, protocol)},
		}
		return entity.NewSession(), effects
	}

	return sess, reply(in, constant.ReplyInvalidComplaintOption)
}

func (e *Engine) handleComplaintAddress(in Input) (*entity.Session, []Effect) {
	next := &entity.Session{
		State:     entity.StateComplaintPhotoAsk,
		Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot, Address: in.Numeric},
	}
	return next, reply(in, constant.ReplyPhotoQuestion)
}

func (e *Engine) handleComplaintPhotoAsk(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	switch in.Normalized {
	case "sim":
		next := &entity.Session{State: entity.StateComplaintReceivingPhotos, Complaint: sess.Complaint}
		return next, reply(in, constant.ReplySendPhotosNow)
	case "não", "nao":
		protocol := e.issuer.Generate(sess.Complaint.Type)
		effects := []Effect{
			Dispatch{
				Title: constant.TitleComplaintLotNoFoto,
				Fields: []webhook.Field{
					{Name: "Protocolo", Value: protocol, Inline: true},
					{Name: "Tipo", Value: "Lote Sujo", Inline: true},
					{Name: "Endereço", Value: orDefault(sess.Complaint.Address, "Não fornecido"), Inline: false},
					{Name: "Fotos", Value: "Nenhuma foto enviada", Inline: true},
					{Name: "Contato", Value: in.Sender, Inline: false},
				},
				Color: constant.ColorAlert,
			},
			SendText{To: in.Sender, Text: fmt.Sprintf(constant.ReplyLotNoPhotosFmt, protocol)},
		}
		next := &entity.Session{
			State:  entity.StateSatisfactionSurvey,
			Survey: &entity.SurveyContext{FlowType: "denuncia", Protocol: protocol},
		}
		return next, effects
	}

	return sess, reply(in, constant.ReplyInvalidYesNo)
}

func (e *Engine) handleReceivingPhotos(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	if in.Normalized != "ok" {
		// Media messages land here while the citizen uploads photos; absorb
		// them without a reply until the terminating "ok".
		return sess, nil
	}

	protocol := e.issuer.Generate(sess.Complaint.Type)
	effects := []Effect{
		Dispatch{
			Title: constant.TitleComplaintLotFotos,
			Fields: []webhook.Field{
				{Name: "Protocolo", Value: protocol, Inline: true},
				{Name: "Tipo", Value: "Lote Sujo", Inline: true},
				{Name: "Endereço", Value: orDefault(sess.Complaint.Address, "Não fornecido"), Inline: false},
				{Name: "Fotos", Value: "Recebidas via Chatbot (Verifique logs/servidor)", Inline: false},
				{Name: "Contato", Value: in.Sender, Inline: false},
			},
			Color: constant.ColorAlert,
		},
		SendText{To: in.Sender, Text: fmt.Sprintf(constant.ReplyLotWithPhotosFmt, protocol)},
	}
	next := &entity.Session{
		State:  entity.StateSatisfactionSurvey,
		Survey: &entity.SurveyContext{FlowType: "denuncia", Protocol: protocol},
	}
	return next, effects
}

func (e *Engine) handleCompanyReason(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	if in.Normalized != "ok" {
		// The citizen is still describing the complaint; the transcript itself
		// is the record, so only acknowledge and wait for the terminator.
		return sess, reply(in, constant.ReplyCompanyKeepTyping)
	}

	protocol := e.issuer.Generate(sess.Complaint.Type)
	effects := []Effect{
		Dispatch{
			Title: constant.TitleComplaintCompany,
			Fields: []webhook.Field{
				{Name: "Protocolo", Value: protocol, Inline: true},
				{Name: "Tipo", Value: "Empresa (Posturas)", Inline: true},
				{Name: "Nome Empresa", Value: orDefault(sess.Complaint.CompanyName, "Não fornecido"), Inline: false},
				{Name: "Endereço", Value: orDefault(sess.Complaint.Address, "Não fornecido"), Inline: false},
				{Name: "Motivo da Denúncia", Value: "Recebido via Chatbot (Verificar histórico de mensagens)", Inline: false},
				{Name: "Contato", Value: in.Sender, Inline: false},
			},
			Color: constant.ColorAlert,
		},
		SendText{To: in.Sender, Text: fmt.Sprintf(constant.ReplyCompanyRegisteredFmt, protocol)},
	}
	next := &entity.Session{
		State:  entity.StateSatisfactionSurvey,
		Survey: &entity.SurveyContext{FlowType: "denuncia", Protocol: protocol},
	}
	return next, effects
}

func (e *Engine) handleTrackProtocol(ctx context.Context, in Input) (*entity.Session, []Effect) {
	if !protocolPattern.MatchString(in.Numeric) {
		// Malformed identifier resets the flow; the citizen restarts from the
		// menu instead of retrying in place.
		return entity.NewSession(), reply(in, constant.ReplyTrackFormatError)
	}

	status := constant.DefaultProtocolStatus
	details := constant.DefaultProtocolDetails
	if record, found := e.statuses.Find(ctx, in.Numeric); found {
		status = record.Status
		details = record.Details
	}

	next := &entity.Session{
		State:  entity.StateSatisfactionSurvey,
		Survey: &entity.SurveyContext{FlowType: "acompanhamento", Protocol: in.Numeric},
	}
	return next, reply(in, fmt.Sprintf(constant.ReplyTrackFoundFmt, in.Numeric, status, details))
}

func (e *Engine) handleSatisfactionSurvey(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	rating, err := strconv.Atoi(in.Numeric)
	if err != nil || rating < 1 || rating > 5 {
		return sess, reply(in, constant.ReplyInvalidRating)
	}

	color := constant.ColorPositive
	if rating <= 2 {
		color = constant.ColorWarning
	}

	flowType := "Geral"
	protocol := "N/A"
	if sess.Survey != nil {
		flowType = orDefault(sess.Survey.FlowType, flowType)
		protocol = orDefault(sess.Survey.Protocol, protocol)
	}

	effects := []Effect{
		Dispatch{
			Title: constant.TitleSatisfactionSurvey,
			Fields: []webhook.Field{
				{Name: "Nota Atribuída", Value: fmt.Sprintf("**%d / 5**", rating), Inline: true},
				{Name: "Tipo de Fluxo", Value: flowType, Inline: true},
				{Name: "Protocolo Relacionado", Value: protocol, Inline: false},
				{Name: "Contato", Value: in.Sender, Inline: false},
			},
			Color: color,
		},
		SendText{To: in.Sender, Text: constant.ReplySurveyThanks},
	}
	return entity.NewSession(), effects
}

// handleUnknown is the fallback branch: unclassified input from the rest state
// increments the attempt counter and escalates to a human operator on the
// third strike.
func (e *Engine) handleUnknown(sess *entity.Session, in Input) (*entity.Session, []Effect) {
	count := sess.UnknownAttempts + 1

	if count >= maxUnknownAttempts {
		effects := []Effect{
			Dispatch{
				Title: constant.TitleHandoffAutomatic,
				Fields: []webhook.Field{
					{Name: "Prioridade", Value: "**HANDOFF AUTOMÁTICO**", Inline: false},
					{Name: "Usuário", Value: in.DisplayName, Inline: true},
					{Name: "Contato WhatsApp", Value: in.Sender, Inline: true},
					{Name: "Motivo", Value: "O usuário excedeu 3 tentativas de entrada inválida no menu principal.", Inline: false},
				},
				Color: constant.ColorHandoff,
			},
			SendText{To: in.Sender, Text: constant.ReplyHandoffAutomatic},
		}
		return entity.NewSession(), effects
	}

	next := &entity.Session{State: entity.StateIdle, UnknownAttempts: count}
	return next, reply(in, fmt.Sprintf(constant.ReplyUnknownFmt, count))
}

// mainMenu greets the citizen by name and lists the options, as two messages.
func mainMenu(in Input) []Effect {
	return []Effect{
		SendText{To: in.Sender, Text: fmt.Sprintf(constant.GreetingFmt, in.DisplayName)},
		SendText{To: in.Sender, Text: constant.MenuOptions},
	}
}

func reply(in Input, text string) []Effect {
	return []Effect{SendText{To: in.Sender, Text: text}}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
