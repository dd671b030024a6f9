package entity

// ProtocolStatus is the read-only status record a citizen can query with a
// protocol identifier. Absence of a record is not an error; callers fall back
// to the default "under review" status.
type ProtocolStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}
