package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"aurora-fiscalizacao-be/internal/pkg/logger"
)

// Sender delivers outbound messages to the citizen's messaging channel. The
// dialogue layer never talks to the gateway directly; it only emits effects
// that the service layer executes through this interface.
type Sender interface {
	SendText(ctx context.Context, to, text string) error
	SendMedia(ctx context.Context, to, filePath, caption string) error
}

type textPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type mediaPayload struct {
	To       string `json:"to"`
	FilePath string `json:"file_path"`
	Caption  string `json:"caption,omitempty"`
}

// HTTPSender posts outbound messages to a WhatsApp gateway sidecar (the
// process holding the actual device session).
type HTTPSender struct {
	baseURL string
	token   string
	client  *http.Client
	log     logger.ILogger
}

func NewHTTPSender(baseURL, token string, log logger.ILogger) *HTTPSender {
	return &HTTPSender{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (s *HTTPSender) SendText(ctx context.Context, to, text string) error {
	return s.post(ctx, "/messages/text", textPayload{To: to, Body: text})
}

func (s *HTTPSender) SendMedia(ctx context.Context, to, filePath, caption string) error {
	return s.post(ctx, "/messages/media", mediaPayload{To: to, FilePath: filePath, Caption: caption})
}

func (s *HTTPSender) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("transport: deliver %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("transport: gateway returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}

// NoopSender logs outbound messages instead of delivering them. It backs local
// development when no gateway is configured.
type NoopSender struct {
	log logger.ILogger
}

func NewNoopSender(log logger.ILogger) *NoopSender {
	return &NoopSender{log: log}
}

func (s *NoopSender) SendText(_ context.Context, to, text string) error {
	s.log.Info("transport", "outbound text (noop)", map[string]interface{}{"to": to, "body": text})
	return nil
}

func (s *NoopSender) SendMedia(_ context.Context, to, filePath, caption string) error {
	s.log.Info("transport", "outbound media (noop)", map[string]interface{}{"to": to, "file": filePath, "caption": caption})
	return nil
}
