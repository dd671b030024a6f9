package entity

// SessionState enumerates every step of the dialogue tree. The engine switches
// over this value; there is no string matching against free-form state names.
type SessionState string

const (
	// StateIdle is the rest state: only the main menu digits and the global
	// text commands are meaningful here.
	StateIdle SessionState = "IDLE"

	StateComplaintTypeSelect SessionState = "COMPLAINT_TYPE_SELECT"

	// Dirty-lot flow.
	StateComplaintAddress         SessionState = "COMPLAINT_ADDRESS"
	StateComplaintPhotoAsk        SessionState = "COMPLAINT_PHOTO_ASK"
	StateComplaintReceivingPhotos SessionState = "COMPLAINT_RECEIVING_PHOTOS"

	// Company (posturas) flow.
	StateCompanyAddress SessionState = "COMPANY_ADDRESS"
	StateCompanyName    SessionState = "COMPANY_NAME"
	StateCompanyReason  SessionState = "COMPANY_REASON"

	StateTrackProtocolInput SessionState = "TRACK_PROTOCOL_INPUT"
	StateSatisfactionSurvey SessionState = "SATISFACTION_SURVEY"
)

// ComplaintType keys feed the protocol generator's request-type mapping.
const (
	ComplaintTypeDirtyLot   = "lote_sujo"
	ComplaintTypeCompany    = "empresa"
	ComplaintTypeOccupation = "ocupacao_irregular"
)

// ComplaintDraft holds the fields collected so far for an in-flight complaint.
// Only the fields relevant to the current state are populated.
type ComplaintDraft struct {
	Type        string `json:"type"`
	Address     string `json:"address,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// SurveyContext records which flow led into the satisfaction survey.
type SurveyContext struct {
	FlowType string `json:"flow_type"`
	Protocol string `json:"protocol,omitempty"`
}

// Session is the per-citizen dialogue state, keyed by the sender's channel
// address. It is replaced wholesale on every engine transition; handlers never
// mutate a stored session in place.
type Session struct {
	State           SessionState    `json:"state"`
	Complaint       *ComplaintDraft `json:"complaint,omitempty"`
	Survey          *SurveyContext  `json:"survey,omitempty"`
	UnknownAttempts int             `json:"unknown_attempts,omitempty"`
}

// NewSession returns the idle session used when no record exists for a sender.
func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Idle reports whether the session is at rest with no pending fallback counter.
func (s *Session) Idle() bool {
	return s.State == StateIdle && s.UnknownAttempts == 0
}

// ComplaintTypeLabel maps a complaint type key to the human-readable label
// used in replies and webhook fields.
func ComplaintTypeLabel(typeKey string) string {
	switch typeKey {
	case ComplaintTypeDirtyLot:
		return "Lote Sujo"
	case ComplaintTypeCompany:
		return "Empresa (Posturas)"
	case ComplaintTypeOccupation:
		return "Ocupação Irregular da Via"
	}
	return "Geral"
}
