package domain

// ConfirmationRequest carries the query parameters of an inbound confirmation
// link. Email comparison against the stored record is case-insensitive.
type ConfirmationRequest struct {
	Email  string `json:"email" validate:"required,email"`
	UserID string `json:"user_id" validate:"required"`
	Token  string `json:"token" validate:"required"`
}

// Outcome is the closed set of terminal classifications for a confirmation
// attempt. The string values are wire-stable: they appear verbatim in the
// failure redirect's reason parameter and must not change without coordinating
// with the hosted result pages.
type Outcome string

const (
	// OutcomeDefault covers malformed requests and unexpected faults. It
	// deliberately does not reveal which field was missing or what broke.
	OutcomeDefault Outcome = "default"
	// OutcomeNotFound means no user record exists for the presented user id.
	OutcomeNotFound Outcome = "notfound"
	// OutcomeNoMatch means the presented email or token does not match the record.
	OutcomeNoMatch Outcome = "nomatch"
	// OutcomeTampered means the stored token is absent or malformed where one
	// is expected, indicating a corrupted or invalid record.
	OutcomeTampered Outcome = "tampered"
	// OutcomeRevoked means the token was invalidated before its natural expiry.
	OutcomeRevoked Outcome = "revoked"
	// OutcomeExpired means the token's deadline has passed.
	OutcomeExpired Outcome = "expired"
	// OutcomeAlready means the account was confirmed before this attempt.
	OutcomeAlready Outcome = "already"
	// OutcomeStoreFail means the user store read or conditional write failed.
	// The wire code predates this service and is kept for the hosted pages.
	OutcomeStoreFail Outcome = "supabasefail"
	// OutcomeConfirmed is the single success terminal.
	OutcomeConfirmed Outcome = "confirmed"
)

// Success reports whether the outcome is the success terminal.
func (o Outcome) Success() bool {
	return o == OutcomeConfirmed
}

// Valid reports whether o is one of the defined outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeDefault, OutcomeNotFound, OutcomeNoMatch, OutcomeTampered,
		OutcomeRevoked, OutcomeExpired, OutcomeAlready, OutcomeStoreFail,
		OutcomeConfirmed:
		return true
	}
	return false
}

// Outcomes lists every defined outcome. Used by exhaustiveness tests so a new
// outcome cannot be added without updating the classifier.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeDefault, OutcomeNotFound, OutcomeNoMatch, OutcomeTampered,
		OutcomeRevoked, OutcomeExpired, OutcomeAlready, OutcomeStoreFail,
		OutcomeConfirmed,
	}
}

// ConfirmationAttempt is the audit record written after each confirmation
// attempt. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type ConfirmationAttempt struct {
	AttemptID string  `json:"attempt_id" dynamodbav:"attempt_id"`
	UserID    string  `json:"user_id" dynamodbav:"user_id"`
	Outcome   Outcome `json:"outcome" dynamodbav:"outcome"`
	At        string  `json:"at" dynamodbav:"at"` // RFC3339
	ExpiresAt int64   `json:"expires_at" dynamodbav:"expires_at"`
}
