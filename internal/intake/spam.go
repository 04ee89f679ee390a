package intake

import (
	"strings"
	"unicode/utf8"
)

// IsSpam classifies a normalized submission using local heuristics only.
// Callers must answer spam with an ordinary success response so automated
// tooling cannot tell a drop from a delivery.
func IsSpam(s *Submission) bool {
	if strings.TrimSpace(s.Honeypot) != "" {
		return true
	}
	// Upper bounds are checked here as explicit intake policy, independent
	// of the caps normalization applies.
	if utf8.RuneCountInString(s.Message) > MaxMessage {
		return true
	}
	if utf8.RuneCountInString(s.Name) > MaxName || utf8.RuneCountInString(s.Company) > MaxCompany {
		return true
	}
	// A lead with no way to reach back is useless.
	if strings.TrimSpace(s.Phone) == "" && strings.TrimSpace(s.Email) == "" {
		return true
	}
	return false
}
