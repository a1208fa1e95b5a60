package validator

import "fmt"

// Reason codes reported for rejected leads.
const (
	ReasonMissingField = "MISSING_FIELD"
	ReasonInvalidName  = "INVALID_NAME"
	ReasonInvalidPhone = "INVALID_PHONE"
	ReasonInvalidEmail = "INVALID_EMAIL"
	ReasonInvalidAge   = "INVALID_AGE"
)

// Result is either Valid or Invalid with the first failing field.
type Result struct {
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func Valid() Result {
	return Result{}
}

func Invalid(field, reason, message string) Result {
	return Result{Field: field, Reason: reason, Message: message}
}

func (r Result) Valid() bool {
	return r.Reason == ""
}

func (r Result) String() string {
	if r.Valid() {
		return "valid"
	}
	return fmt.Sprintf("%s: %s (%s)", r.Field, r.Message, r.Reason)
}

// Details renders the result as error details for the HTTP layer.
func (r Result) Details() map[string]any {
	return map[string]any{
		"field":  r.Field,
		"reason": r.Reason,
	}
}
