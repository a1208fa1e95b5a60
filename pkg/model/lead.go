package model

import "time"

// RawLead holds the submitted fields exactly as received. Age stays a string
// so form posts and JSON numbers share one path.
type RawLead struct {
	Name  string `json:"name" validate:"required,lead_name"`
	Phone string `json:"phone" validate:"required,lead_phone"`
	Email string `json:"email" validate:"required,lead_email"`
	Age   string `json:"age" validate:"required,lead_age"`
}

// RawLeadFromFields picks the lead fields out of a decoded request body.
func RawLeadFromFields(fields map[string]string) RawLead {
	return RawLead{
		Name:  fields["name"],
		Phone: fields["phone"],
		Email: fields["email"],
		Age:   fields["age"],
	}
}

// Lead is a validated, normalized submission.
type Lead struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// LeadCreatedEvent is published after the record store accepted a lead.
type LeadCreatedEvent struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	PhoneE164 string    `json:"phone_e164,omitempty"`
	Country   string    `json:"country,omitempty"`
	Timezone  string    `json:"timezone"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}
