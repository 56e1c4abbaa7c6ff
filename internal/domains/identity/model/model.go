package model

import (
	"strings"
)

// Classification is the result of resolving an email against the identity
// provider's profile store.
type Classification string

const (
	// ClassificationNew means no profile exists for the email.
	ClassificationNew Classification = "NEW"
	// ClassificationExistingMatch means a profile exists and its display name
	// matches the provided one (or no name was provided yet).
	ClassificationExistingMatch Classification = "EXISTING_MATCH"
	// ClassificationExistingMismatch means a profile exists under a different
	// name. At submission time this is a hard stop.
	ClassificationExistingMismatch Classification = "EXISTING_MISMATCH"
)

// Normalize trims and lower-cases a value for comparison.
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
