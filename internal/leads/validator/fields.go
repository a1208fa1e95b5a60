package validator

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"leadform/pkg/sanitizer"
)

const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
	FieldAge   = "age"
)

var (
	hebrewNameRegex = regexp.MustCompile(`^[\p{Hebrew} '\-]+$`)
	latinNameRegex  = regexp.MustCompile(`^[A-Za-z '\-]+$`)
	hebrewLetter    = regexp.MustCompile(`\p{Hebrew}`)
	latinLetter     = regexp.MustCompile(`[A-Za-z]`)
	digitRegex      = regexp.MustCompile(`[0-9]`)

	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9]+(\.[A-Za-z0-9]+)*@[A-Za-z0-9]+(\.[A-Za-z0-9]+)+$`)
)

// ValidateName accepts a non-empty, digit-free name written entirely in
// Hebrew or entirely in Latin letters. Spaces, apostrophes and hyphens alone
// do not make a name.
func ValidateName(name string) Result {
	name = sanitizer.NormalizeName(name)
	if name == "" {
		return Invalid(FieldName, ReasonMissingField, "name is required")
	}
	if digitRegex.MatchString(name) {
		return Invalid(FieldName, ReasonInvalidName, "name must not contain digits")
	}
	hebrew := hebrewNameRegex.MatchString(name) && hebrewLetter.MatchString(name)
	latin := latinNameRegex.MatchString(name) && latinLetter.MatchString(name)
	if hebrew == latin {
		return Invalid(FieldName, ReasonInvalidName, "name must use Hebrew or Latin letters only, not both")
	}
	return Valid()
}

// ValidatePhone checks the digit-only form of phone.
func ValidatePhone(phone string) Result {
	if strings.TrimSpace(phone) == "" {
		return Invalid(FieldPhone, ReasonMissingField, "phone is required")
	}
	if !phoneRegex.MatchString(sanitizer.NormalizePhone(phone)) {
		return Invalid(FieldPhone, ReasonInvalidPhone, "phone must contain exactly 10 digits")
	}
	return Valid()
}

func ValidateEmail(email string) Result {
	email = strings.TrimSpace(email)
	if email == "" {
		return Invalid(FieldEmail, ReasonMissingField, "email is required")
	}
	if !emailRegex.MatchString(email) {
		return Invalid(FieldEmail, ReasonInvalidEmail, "email must look like name@domain.tld")
	}
	return Valid()
}

func ValidateAge(age string) Result {
	if strings.TrimSpace(age) == "" {
		return Invalid(FieldAge, ReasonMissingField, "age is required")
	}
	if _, ok := ParseAge(age); !ok {
		return Invalid(FieldAge, ReasonInvalidAge, "age must be a whole number")
	}
	return Valid()
}

// ParseAge parses a finite, whole, non-negative age. JSON numbers such as
// "30" or "30.0" are accepted.
func ParseAge(age string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(age), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
