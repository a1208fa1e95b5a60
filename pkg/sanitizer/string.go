package sanitizer

import "strings"

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

// NormalizeEmail trims and lowercases the whole address.
func NormalizeEmail(email string) string {
	return Pipeline{trim, lower}.Apply(email)
}

// NormalizeName trims surrounding whitespace only. Case is preserved.
func NormalizeName(name string) string {
	return trim(name)
}
