package dto

import "time"

// InboundMessageRequest is one message forwarded by the WhatsApp gateway
// sidecar.
type InboundMessageRequest struct {
	SenderId   string `json:"sender_id" validate:"required"`
	Body       string `json:"body"`
	IsGroup    bool   `json:"is_group"`
	NotifyName string `json:"notify_name,omitempty"`
	HasMedia   bool   `json:"has_media,omitempty"`
}

// InboundCallRequest is a voice-call event forwarded by the gateway. Calls are
// always rejected with a text notice.
type InboundCallRequest struct {
	From string `json:"from" validate:"required"`
}

type InboundAcceptedResponse struct {
	Accepted bool   `json:"accepted"`
	SenderId string `json:"sender_id,omitempty"`
}

type ProtocolStatusResponse struct {
	Protocol string `json:"protocol"`
	Status   string `json:"status"`
	Details  string `json:"details"`
}

type UpsertProtocolStatusRequest struct {
	Protocol string `json:"protocol" validate:"required"`
	Status   string `json:"status" validate:"required,max=100"`
	Details  string `json:"details" validate:"omitempty,max=2000"`
}

// ConsoleLoginRequest authenticates a back-office operator for the live
// console.
type ConsoleLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ConsoleLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
