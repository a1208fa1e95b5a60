package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"leadform/pkg/locale"
)

var reNonDigits = regexp.MustCompile(`[^0-9]+`)

// NormalizePhone keeps the ASCII digits of phone and drops everything else.
func NormalizePhone(phone string) string {
	return reNonDigits.ReplaceAllString(phone, "")
}

// PhoneE164 renders a phone number in E.164 using the first supported region
// that considers it valid. Returns "" when no region does.
func PhoneE164(phone string) string {
	digits := NormalizePhone(phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(phone), "+") {
		digits = "+" + digits
	}

	for _, region := range locale.Regions() {
		parsedNumber, err := phonenumbers.Parse(digits, region)
		if err != nil || !phonenumbers.IsValidNumber(parsedNumber) {
			continue
		}
		return phonenumbers.Format(parsedNumber, phonenumbers.E164)
	}
	return ""
}
