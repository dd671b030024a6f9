package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"aurora-fiscalizacao-be/internal/constant"
	"aurora-fiscalizacao-be/internal/pkg/logger"
)

// Field is one name/value pair rendered inside an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string  `json:"title"`
	Color     string  `json:"color"`
	Timestamp string  `json:"timestamp"`
	Fields    []Field `json:"fields"`
	Footer    struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type payload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

// Dispatcher routes structured dialogue events to one of two webhook sinks:
// satisfaction-survey events go to the metrics sink, everything else to the
// alert sink. Delivery is best-effort; failures are logged and never surface
// to the dialogue flow.
type Dispatcher struct {
	alertURL   string
	metricsURL string
	username   string
	client     *http.Client
	log        logger.ILogger
}

func NewDispatcher(alertURL, metricsURL string, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		alertURL:   alertURL,
		metricsURL: metricsURL,
		username:   constant.WebhookUsername,
		client:     &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Dispatch posts one embed to the sink selected by the title. An unconfigured
// sink drops the event with a warning.
func (d *Dispatcher) Dispatch(ctx context.Context, title string, fields []Field, color string) {
	target := d.alertURL
	sink := "ALERTA"
	if strings.Contains(title, constant.SatisfactionMarker) {
		target = d.metricsURL
		sink = "MÉTRICAS"
	}

	if target == "" {
		d.log.Warn("WebhookDispatcher", "Webhook URL not configured, dropping event", map[string]interface{}{"title": title, "sink": sink})
		return
	}

	e := embed{
		Title:     title,
		Color:     color,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Fields:    fields,
	}
	e.Footer.Text = constant.WebhookFooter

	body, err := json.Marshal(payload{Username: d.username, Embeds: []embed{e}})
	if err != nil {
		d.log.Error("WebhookDispatcher", "Failed to marshal webhook payload", map[string]interface{}{"error": err.Error(), "title": title})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		d.log.Error("WebhookDispatcher", "Failed to build webhook request", map[string]interface{}{"error": err.Error()})
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.Error("WebhookDispatcher", "Failed to deliver webhook", map[string]interface{}{"error": err.Error(), "title": title, "sink": sink})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d.log.Error("WebhookDispatcher", "Webhook sink rejected event", map[string]interface{}{"status": fmt.Sprint(resp.StatusCode), "title": title, "sink": sink})
		return
	}

	d.log.Info("WebhookDispatcher", "Event delivered", map[string]interface{}{"title": title, "sink": sink})
}
