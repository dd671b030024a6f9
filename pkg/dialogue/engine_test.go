package dialogue

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora-fiscalizacao-be/internal/constant"
	"aurora-fiscalizacao-be/internal/entity"
)

type fakeIssuer struct {
	calls []string
}

func (f *fakeIssuer) Generate(typeKey string) string {
	f.calls = append(f.calls, typeKey)
	return fmt.Sprintf("2025.12.08.1.%04d", len(f.calls))
}

type fakeStatuses map[string]entity.ProtocolStatus

func (f fakeStatuses) Find(_ context.Context, protocol string) (*entity.ProtocolStatus, bool) {
	if record, ok := f[protocol]; ok {
		return &record, true
	}
	return nil, false
}

func newTestEngine() (*Engine, *fakeIssuer) {
	issuer := &fakeIssuer{}
	statuses := fakeStatuses{
		"2025.12.08.1.0001": {Status: "Aguardando vistoria", Details: "Protocolo registrado e em fila de análise."},
	}
	return NewEngine(issuer, statuses), issuer
}

func step(t *testing.T, e *Engine, sess *entity.Session, body string) (*entity.Session, []Effect) {
	t.Helper()
	normalized, numeric := Normalize(body)
	return e.Handle(context.Background(), sess, Input{
		Sender:      "5531999990000@c.us",
		DisplayName: "Maria",
		Normalized:  normalized,
		Numeric:     numeric,
	})
}

func texts(effects []Effect) []string {
	var out []string
	for _, ef := range effects {
		if st, ok := ef.(SendText); ok {
			out = append(out, st.Text)
		}
	}
	return out
}

func dispatches(effects []Effect) []Dispatch {
	var out []Dispatch
	for _, ef := range effects {
		if d, ok := ef.(Dispatch); ok {
			out = append(out, d)
		}
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantNormalized string
		wantNumeric    string
	}{
		{name: "empty", body: "", wantNormalized: "", wantNumeric: ""},
		{name: "whitespace only", body: "   \t ", wantNormalized: "", wantNumeric: ""},
		{name: "mixed case command", body: "  MENU ", wantNormalized: "menu", wantNumeric: "MENU"},
		{name: "accented greeting", body: "Olá", wantNormalized: "olá", wantNumeric: "Olá"},
		{name: "digit", body: " 3 ", wantNormalized: "3", wantNumeric: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, numeric := Normalize(tt.body)
			assert.Equal(t, tt.wantNormalized, normalized)
			assert.Equal(t, tt.wantNumeric, numeric)
		})
	}
}

func TestEmptyBodyProducesNoActionAndNoReply(t *testing.T) {
	e, issuer := newTestEngine()
	sess := &entity.Session{State: entity.StateComplaintAddress, Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot}}

	next, effects := step(t, e, sess, "   ")

	assert.Same(t, sess, next)
	assert.Empty(t, effects)
	assert.Empty(t, issuer.calls)
}

func TestGlobalCommandResetsFromAnyState(t *testing.T) {
	states := []*entity.Session{
		entity.NewSession(),
		{State: entity.StateComplaintTypeSelect},
		{State: entity.StateComplaintAddress, Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot}},
		{State: entity.StateComplaintReceivingPhotos, Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot, Address: "Rua A"}},
		{State: entity.StateCompanyReason, Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeCompany}},
		{State: entity.StateTrackProtocolInput},
		{State: entity.StateSatisfactionSurvey, Survey: &entity.SurveyContext{FlowType: "denuncia"}},
		{State: entity.StateIdle, UnknownAttempts: 2},
	}
	commands := []string{"menu", "voltar", "oi", "Olá", "bom dia", "DENUNCIAR"}

	for _, sess := range states {
		for _, cmd := range commands {
			t.Run(string(sess.State)+"/"+cmd, func(t *testing.T) {
				e, issuer := newTestEngine()
				next, effects := step(t, e, sess, cmd)

				assert.True(t, next.Idle(), "expected idle session")
				require.Len(t, texts(effects), 2, "greeting plus menu")
				assert.Contains(t, texts(effects)[0], "AURORA")
				assert.Equal(t, constant.MenuOptions, texts(effects)[1])
				assert.Empty(t, dispatches(effects), "menu reset must not dispatch")
				assert.Empty(t, issuer.calls, "menu reset must not issue a protocol")
			})
		}
	}
}

func TestMainMenuOptionOne(t *testing.T) {
	e, _ := newTestEngine()
	next, effects := step(t, e, entity.NewSession(), "1")

	assert.Equal(t, entity.StateComplaintTypeSelect, next.State)
	require.Len(t, texts(effects), 1)
	assert.Equal(t, constant.ReplyComplaintTypeMenu, texts(effects)[0])
}

func TestMainMenuOptionTwo(t *testing.T) {
	e, _ := newTestEngine()
	next, effects := step(t, e, entity.NewSession(), "2")

	assert.Equal(t, entity.StateTrackProtocolInput, next.State)
	assert.Equal(t, []string{constant.ReplyTrackProtocolPrompt}, texts(effects))
}

func TestMainMenuOptionThreeRequestsDocument(t *testing.T) {
	e, _ := newTestEngine()
	next, effects := step(t, e, entity.NewSession(), "3")

	assert.True(t, next.Idle())
	require.Len(t, effects, 1)
	doc, ok := effects[0].(SendDocument)
	require.True(t, ok)
	assert.Equal(t, "5531999990000@c.us", doc.To)
}

func TestMainMenuOptionFourDispatchesHandoff(t *testing.T) {
	e, issuer := newTestEngine()
	next, effects := step(t, e, entity.NewSession(), "4")

	assert.True(t, next.Idle())
	ds := dispatches(effects)
	require.Len(t, ds, 1)
	assert.Equal(t, constant.TitleHandoffRequested, ds[0].Title)
	assert.Equal(t, constant.ColorHandoff, ds[0].Color)
	assert.Equal(t, []string{constant.ReplyHandoffRequested}, texts(effects))
	assert.Empty(t, issuer.calls)

	// The operator needs the citizen's name and address in the embed.
	var gotUser, gotContact bool
	for _, f := range ds[0].Fields {
		if f.Name == "Usuário" && f.Value == "Maria" {
			gotUser = true
		}
		if f.Name == "Contato WhatsApp" && f.Value == "5531999990000@c.us" {
			gotContact = true
		}
	}
	assert.True(t, gotUser)
	assert.True(t, gotContact)
}

func TestOccupationComplaintIssuesProtocolImmediately(t *testing.T) {
	e, issuer := newTestEngine()
	sess, _ := step(t, e, entity.NewSession(), "1")
	next, effects := step(t, e, sess, "3")

	assert.True(t, next.Idle())
	assert.Equal(t, []string{entity.ComplaintTypeOccupation}, issuer.calls)
	ds := dispatches(effects)
	require.Len(t, ds, 1)
	assert.Equal(t, constant.TitleComplaintOccupa, ds[0].Title)
	require.Len(t, texts(effects), 1)
	assert.Contains(t, texts(effects)[0], "2025.12.08.1.0001")
}

func TestDirtyLotFlowWithoutPhotos(t *testing.T) {
	e, issuer := newTestEngine()

	sess, _ := step(t, e, entity.NewSession(), "1")
	sess, _ = step(t, e, sess, "1")
	assert.Equal(t, entity.StateComplaintAddress, sess.State)

	sess, effects := step(t, e, sess, "Rua das Flores, 100, Centro")
	assert.Equal(t, entity.StateComplaintPhotoAsk, sess.State)
	assert.Equal(t, "Rua das Flores, 100, Centro", sess.Complaint.Address)
	assert.Equal(t, []string{constant.ReplyPhotoQuestion}, texts(effects))

	sess, effects = step(t, e, sess, "não")
	assert.Equal(t, entity.StateSatisfactionSurvey, sess.State)
	require.NotNil(t, sess.Survey)
	assert.Equal(t, "denuncia", sess.Survey.FlowType)

	require.Len(t, issuer.calls, 1, "exactly one protocol issued")
	assert.Equal(t, entity.ComplaintTypeDirtyLot, issuer.calls[0])

	ds := dispatches(effects)
	require.Len(t, ds, 1, "exactly one event dispatched")
	assert.Equal(t, constant.TitleComplaintLotNoFoto, ds[0].Title)
}

func TestDirtyLotFlowWithPhotos(t *testing.T) {
	e, issuer := newTestEngine()

	sess, _ := step(t, e, entity.NewSession(), "1")
	sess, _ = step(t, e, sess, "1")
	sess, _ = step(t, e, sess, "Av. Brasil, 42")
	sess, effects := step(t, e, sess, "SIM")
	assert.Equal(t, entity.StateComplaintReceivingPhotos, sess.State)
	assert.Equal(t, []string{constant.ReplySendPhotosNow}, texts(effects))

	// Media uploads are absorbed silently until the terminator.
	sess, effects = step(t, e, sess, "foto1.jpg")
	assert.Equal(t, entity.StateComplaintReceivingPhotos, sess.State)
	assert.Empty(t, effects)

	sess, effects = step(t, e, sess, "ok")
	assert.Equal(t, entity.StateSatisfactionSurvey, sess.State)
	require.Len(t, issuer.calls, 1)
	ds := dispatches(effects)
	require.Len(t, ds, 1)
	assert.Equal(t, constant.TitleComplaintLotFotos, ds[0].Title)
}

func TestPhotoQuestionRejectsOtherAnswers(t *testing.T) {
	e, issuer := newTestEngine()
	sess := &entity.Session{
		State:     entity.StateComplaintPhotoAsk,
		Complaint: &entity.ComplaintDraft{Type: entity.ComplaintTypeDirtyLot, Address: "Rua A"},
	}

	next, effects := step(t, e, sess, "talvez")
	assert.Same(t, sess, next)
	assert.Equal(t, []string{constant.ReplyInvalidYesNo}, texts(effects))
	assert.Empty(t, issuer.calls)
}

func TestCompanyFlow(t *testing.T) {
	e, issuer := newTestEngine()

	sess, _ := step(t, e, entity.NewSession(), "1")
	sess, effects := step(t, e, sess, "2")
	assert.Equal(t, entity.StateCompanyAddress, sess.State)
	assert.Contains(t, texts(effects)[0], "Empresa (Posturas)")

	sess, _ = step(t, e, sess, "Rua B, 77, Industrial")
	assert.Equal(t, entity.StateCompanyName, sess.State)

	sess, _ = step(t, e, sess, "Padaria Pão Quente")
	assert.Equal(t, entity.StateCompanyReason, sess.State)
	assert.Equal(t, "Padaria Pão Quente", sess.Complaint.CompanyName)

	// Free-text description keeps the flow open.
	sess, effects = step(t, e, sess, "Som alto depois das 22h")
	assert.Equal(t, entity.StateCompanyReason, sess.State)
	assert.Equal(t, []string{constant.ReplyCompanyKeepTyping}, texts(effects))
	assert.Empty(t, issuer.calls)

	sess, effects = step(t, e, sess, "OK")
	assert.Equal(t, entity.StateSatisfactionSurvey, sess.State)
	require.Len(t, issuer.calls, 1)
	assert.Equal(t, entity.ComplaintTypeCompany, issuer.calls[0])

	ds := dispatches(effects)
	require.Len(t, ds, 1)
	assert.Equal(t, constant.TitleComplaintCompany, ds[0].Title)
	var gotName bool
	for _, f := range ds[0].Fields {
		if f.Name == "Nome Empresa" && f.Value == "Padaria Pão Quente" {
			gotName = true
		}
	}
	assert.True(t, gotName)
}

func TestInvalidComplaintTypeDigit(t *testing.T) {
	e, _ := newTestEngine()
	sess := &entity.Session{State: entity.StateComplaintTypeSelect}

	next, effects := step(t, e, sess, "7")
	assert.Same(t, sess, next)
	assert.Equal(t, []string{constant.ReplyInvalidComplaintOption}, texts(effects))
}

func TestTrackProtocol(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantState    entity.SessionState
		wantContains string
	}{
		{
			name:         "known protocol returns its status",
			input:        "2025.12.08.1.0001",
			wantState:    entity.StateSatisfactionSurvey,
			wantContains: "Aguardando vistoria",
		},
		{
			name:         "well-formed unknown protocol returns default status",
			input:        "9999.99.99.9.9999",
			wantState:    entity.StateSatisfactionSurvey,
			wantContains: constant.DefaultProtocolStatus,
		},
		{
			name:         "malformed input resets to menu",
			input:        "abc",
			wantState:    entity.StateIdle,
			wantContains: "formato do protocolo está incorreto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			sess := &entity.Session{State: entity.StateTrackProtocolInput}

			next, effects := step(t, e, sess, tt.input)
			assert.Equal(t, tt.wantState, next.State)
			require.Len(t, texts(effects), 1)
			assert.Contains(t, texts(effects)[0], tt.wantContains)
		})
	}
}

func TestSatisfactionSurveyRatings(t *testing.T) {
	tests := []struct {
		name      string
		rating    string
		accepted  bool
		wantColor string
	}{
		{name: "rating 1 is a warning", rating: "1", accepted: true, wantColor: constant.ColorWarning},
		{name: "rating 2 is a warning", rating: "2", accepted: true, wantColor: constant.ColorWarning},
		{name: "rating 3 is positive", rating: "3", accepted: true, wantColor: constant.ColorPositive},
		{name: "rating 5 is positive", rating: "5", accepted: true, wantColor: constant.ColorPositive},
		{name: "rating 0 rejected", rating: "0", accepted: false},
		{name: "rating 6 rejected", rating: "6", accepted: false},
		{name: "non-numeric rejected", rating: "bom", accepted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine()
			sess := &entity.Session{
				State:  entity.StateSatisfactionSurvey,
				Survey: &entity.SurveyContext{FlowType: "denuncia", Protocol: "2025.12.08.1.0001"},
			}

			next, effects := step(t, e, sess, tt.rating)
			ds := dispatches(effects)

			if !tt.accepted {
				assert.Same(t, sess, next, "session must stay in the survey")
				assert.Equal(t, []string{constant.ReplyInvalidRating}, texts(effects))
				assert.Empty(t, ds)
				return
			}

			assert.True(t, next.Idle())
			require.Len(t, ds, 1)
			assert.Equal(t, constant.TitleSatisfactionSurvey, ds[0].Title)
			assert.Equal(t, tt.wantColor, ds[0].Color)
			assert.Equal(t, []string{constant.ReplySurveyThanks}, texts(effects))
		})
	}
}

func TestUnknownInputEscalatesOnThirdAttempt(t *testing.T) {
	e, _ := newTestEngine()

	sess, effects := step(t, e, entity.NewSession(), "quero falar sobre meu imposto")
	assert.Equal(t, 1, sess.UnknownAttempts)
	assert.Contains(t, texts(effects)[0], "Tentativa 1 de 3")
	assert.Empty(t, dispatches(effects))

	sess, effects = step(t, e, sess, "imposto!!")
	assert.Equal(t, 2, sess.UnknownAttempts)
	assert.Contains(t, texts(effects)[0], "Tentativa 2 de 3")
	assert.Empty(t, dispatches(effects), "two attempts must not escalate")

	sess, effects = step(t, e, sess, "IMPOSTO")
	assert.True(t, sess.Idle(), "escalation resets the session")
	ds := dispatches(effects)
	require.Len(t, ds, 1, "exactly one auto-handoff dispatch")
	assert.Equal(t, constant.TitleHandoffAutomatic, ds[0].Title)
	assert.Equal(t, []string{constant.ReplyHandoffAutomatic}, texts(effects))
}

func TestMenuDigitAfterStrikeCountsAsUnknown(t *testing.T) {
	e, issuer := newTestEngine()

	sess, _ := step(t, e, entity.NewSession(), "xyz")
	require.Equal(t, 1, sess.UnknownAttempts)

	// A menu digit no longer opens the flow once the counter is running.
	sess, effects := step(t, e, sess, "1")
	assert.Equal(t, 2, sess.UnknownAttempts)
	assert.Equal(t, entity.StateIdle, sess.State)
	assert.Contains(t, texts(effects)[0], "Tentativa 2 de 3")
	assert.Empty(t, issuer.calls)

	sess, effects = step(t, e, sess, "1")
	assert.True(t, sess.Idle(), "third strike resets the session")
	ds := dispatches(effects)
	require.Len(t, ds, 1)
	assert.Equal(t, constant.TitleHandoffAutomatic, ds[0].Title)
}

func TestComplaintStateWithoutDraftRestartsFromMenu(t *testing.T) {
	states := []entity.SessionState{
		entity.StateComplaintPhotoAsk,
		entity.StateComplaintReceivingPhotos,
		entity.StateCompanyAddress,
		entity.StateCompanyName,
		entity.StateCompanyReason,
	}

	for _, state := range states {
		t.Run(string(state), func(t *testing.T) {
			e, issuer := newTestEngine()
			sess := &entity.Session{State: state}

			var next *entity.Session
			var effects []Effect
			require.NotPanics(t, func() {
				next, effects = step(t, e, sess, "ok")
			})

			assert.True(t, next.Idle())
			require.Len(t, texts(effects), 2)
			assert.Equal(t, constant.MenuOptions, texts(effects)[1])
			assert.Empty(t, issuer.calls)
		})
	}
}

func TestMenuCommandClearsUnknownCounter(t *testing.T) {
	e, _ := newTestEngine()

	sess, _ := step(t, e, entity.NewSession(), "blablabla")
	sess, _ = step(t, e, sess, "menu")
	assert.True(t, sess.Idle())

	// Counter starts over after the reset.
	sess, effects := step(t, e, sess, "outra coisa")
	assert.Equal(t, 1, sess.UnknownAttempts)
	assert.Contains(t, texts(effects)[0], "Tentativa 1 de 3")
}

func TestDisplayNameFallsBackToDefault(t *testing.T) {
	e, _ := newTestEngine()
	normalized, numeric := Normalize("menu")
	_, effects := e.Handle(context.Background(), entity.NewSession(), Input{
		Sender:     "5531888880000@c.us",
		Normalized: normalized,
		Numeric:    numeric,
	})

	require.NotEmpty(t, texts(effects))
	assert.True(t, strings.Contains(texts(effects)[0], constant.DefaultCitizenName))
}
