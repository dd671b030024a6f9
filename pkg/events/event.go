package events

import "time"

// Event defines the contract for all audit-trail events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PROTOCOL_ISSUED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used both for publishing and for
// reconstructing events on the consuming side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes recorded to the audit trail.
const (
	TypeProtocolIssued      = "PROTOCOL_ISSUED"
	TypeComplaintRegistered = "COMPLAINT_REGISTERED"
	TypeHandoffRequested    = "HANDOFF_REQUESTED"
	TypeSurveySubmitted     = "SURVEY_SUBMITTED"
	TypeDialogueStep        = "DIALOGUE_STEP"
)

// NewProtocolIssued records the issuance of a protocol identifier.
func NewProtocolIssued(protocol, typeKey, sender string) Event {
	return BaseEvent{
		Type: TypeProtocolIssued,
		Data: map[string]interface{}{
			"protocol": protocol,
			"type":     typeKey,
			"sender":   sender,
		},
		OccurredAt: time.Now(),
	}
}

// NewComplaintRegistered records a completed complaint flow.
func NewComplaintRegistered(protocol, typeKey, address, sender string) Event {
	return BaseEvent{
		Type: TypeComplaintRegistered,
		Data: map[string]interface{}{
			"protocol": protocol,
			"type":     typeKey,
			"address":  address,
			"sender":   sender,
		},
		OccurredAt: time.Now(),
	}
}

// NewHandoffRequested records a request for a human operator, whether the
// citizen asked for it or the fallback counter forced it.
func NewHandoffRequested(sender, displayName, reason string, automatic bool) Event {
	return BaseEvent{
		Type: TypeHandoffRequested,
		Data: map[string]interface{}{
			"sender":       sender,
			"display_name": displayName,
			"reason":       reason,
			"automatic":    automatic,
		},
		OccurredAt: time.Now(),
	}
}

// NewDialogueStep records one engine transition for the operator console.
func NewDialogueStep(sender, fromState, toState string, effectCount int) Event {
	return BaseEvent{
		Type: TypeDialogueStep,
		Data: map[string]interface{}{
			"sender":       sender,
			"from_state":   fromState,
			"to_state":     toState,
			"effect_count": effectCount,
		},
		OccurredAt: time.Now(),
	}
}
