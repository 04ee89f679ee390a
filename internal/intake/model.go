package intake

import "time"

// Field caps enforced during normalization.
const (
	MaxName     = 120
	MaxPhone    = 30
	MaxEmail    = 160
	MaxCompany  = 200
	MaxMessage  = 1000
	MaxSource   = 60
	MaxPage     = 140
	MaxUTMValue = 200
)

// Submission is a normalized lead submission. It is request-scoped and
// treated as read-only after normalization; channels receive it together
// with the derived Meta.
type Submission struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
	Source  string `json:"source"`
	Page    string `json:"page"`

	// UTM is nil when the client sent no utm object, and non-nil (possibly
	// empty) when it did.
	UTM map[string]string `json:"utm,omitempty"`

	// Honeypot holds the hp form field. Real browsers leave it empty.
	Honeypot string `json:"-"`
}

// Meta carries request-derived context that is not part of client input.
type Meta struct {
	Origin     string    `json:"origin"`
	UserAgent  string    `json:"user_agent"`
	ReceivedAt time.Time `json:"received_at"`
}
