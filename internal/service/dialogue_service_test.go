package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora-fiscalizacao-be/internal/constant"
	"aurora-fiscalizacao-be/internal/dto"
	"aurora-fiscalizacao-be/internal/pkg/logger"
	"aurora-fiscalizacao-be/internal/repository/memory"
	"aurora-fiscalizacao-be/pkg/dialogue"
	"aurora-fiscalizacao-be/pkg/protocol"
	"aurora-fiscalizacao-be/pkg/webhook"
)

type sentText struct {
	to   string
	text string
}

type recordingSender struct {
	texts []sentText
	media []string
}

func (r *recordingSender) SendText(_ context.Context, to, text string) error {
	r.texts = append(r.texts, sentText{to: to, text: text})
	return nil
}

func (r *recordingSender) SendMedia(_ context.Context, _, filePath, _ string) error {
	r.media = append(r.media, filePath)
	return nil
}

func newTestService(t *testing.T, documentPath string) (IDialogueService, *recordingSender, *memory.SessionRepository) {
	t.Helper()

	log := &logger.Noop{}
	sessions := memory.NewSessionRepository(time.Hour)
	statuses := NewProtocolService(memory.NewProtocolStatusRepository(), log)

	store := protocol.NewFileSequenceStore(filepath.Join(t.TempDir(), "seq.txt"))
	engine := dialogue.NewEngine(protocol.NewGenerator(store, log), statuses)

	sender := &recordingSender{}
	dispatcher := webhook.NewDispatcher("", "", log)

	svc := NewDialogueService(engine, sessions, sender, dispatcher, nil, nil, documentPath, log)
	return svc, sender, sessions
}

func inbound(sender, body string) *dto.InboundMessageRequest {
	return &dto.InboundMessageRequest{SenderId: sender, Body: body, NotifyName: "João"}
}

func TestHandleMessageIgnoresGroups(t *testing.T) {
	svc, sender, _ := newTestService(t, "")

	err := svc.HandleMessage(context.Background(), &dto.InboundMessageRequest{
		SenderId: "group@g.us",
		Body:     "menu",
		IsGroup:  true,
	})

	require.NoError(t, err)
	assert.Empty(t, sender.texts)
}

func TestHandleMessageSendsMenuAndClearsRestingSession(t *testing.T) {
	svc, sender, sessions := newTestService(t, "")

	err := svc.HandleMessage(context.Background(), inbound("5531@c.us", "menu"))
	require.NoError(t, err)

	require.Len(t, sender.texts, 2)
	assert.Contains(t, sender.texts[0].text, "João")
	assert.Equal(t, constant.MenuOptions, sender.texts[1].text)

	stored, err := sessions.Get(context.Background(), "5531@c.us")
	require.NoError(t, err)
	assert.Nil(t, stored, "resting sessions are not persisted")
}

func TestHandleMessagePersistsMidFlowSession(t *testing.T) {
	svc, _, sessions := newTestService(t, "")

	require.NoError(t, svc.HandleMessage(context.Background(), inbound("5531@c.us", "1")))

	stored, err := sessions.Get(context.Background(), "5531@c.us")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Idle())
}

func TestDocumentDelivery(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "RCA.pdf")
	require.NoError(t, os.WriteFile(docPath, []byte("%PDF-1.4"), 0o644))

	svc, sender, _ := newTestService(t, docPath)

	require.NoError(t, svc.HandleMessage(context.Background(), inbound("5531@c.us", "3")))

	require.Len(t, sender.media, 1)
	assert.Equal(t, docPath, sender.media[0])
	require.Len(t, sender.texts, 1)
	assert.Equal(t, constant.ReplyDocumentSent, sender.texts[0].text)
}

func TestDocumentDeliveryFallsBackWhenFileMissing(t *testing.T) {
	svc, sender, _ := newTestService(t, filepath.Join(t.TempDir(), "missing.pdf"))

	require.NoError(t, svc.HandleMessage(context.Background(), inbound("5531@c.us", "3")))

	assert.Empty(t, sender.media)
	require.Len(t, sender.texts, 1)
	assert.Equal(t, constant.ReplyDocumentMissing, sender.texts[0].text)
}

func TestHandleCallSendsNoticeAndMenuAndResetsSession(t *testing.T) {
	svc, sender, sessions := newTestService(t, "")

	// Put the caller mid-flow first.
	require.NoError(t, svc.HandleMessage(context.Background(), inbound("5531@c.us", "1")))
	stored, err := sessions.Get(context.Background(), "5531@c.us")
	require.NoError(t, err)
	require.NotNil(t, stored)
	sender.texts = nil

	err = svc.HandleCall(context.Background(), &dto.InboundCallRequest{From: "5531@c.us"})
	require.NoError(t, err)

	require.Len(t, sender.texts, 3)
	assert.Equal(t, "5531@c.us", sender.texts[0].to)
	assert.Contains(t, sender.texts[0].text, "mensagens de texto")
	assert.Contains(t, sender.texts[1].text, "AURORA")
	assert.Equal(t, constant.MenuOptions, sender.texts[2].text)

	stored, err = sessions.Get(context.Background(), "5531@c.us")
	require.NoError(t, err)
	assert.Nil(t, stored, "call resets the caller's session")
}
