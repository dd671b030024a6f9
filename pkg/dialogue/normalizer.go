package dialogue

import "strings"

// Normalize splits a raw message body into the two views the engine consumes:
// normalized (trimmed, lower-cased) for command matching and numeric (trimmed,
// original case) for collected fields and digit dispatch. Total over any
// string, including empty.
func Normalize(body string) (normalized, numeric string) {
	numeric = strings.TrimSpace(body)
	normalized = strings.ToLower(numeric)
	return normalized, numeric
}
