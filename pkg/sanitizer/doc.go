// Package sanitizer provides the normalization functions applied to lead fields
// before validation and storage.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. They never fail: invalid input yields whatever remains after
// normalization (possibly an empty string), and the validator decides whether that
// value is acceptable.
//
// Normalization includes:
//   - Phone numbers: keep decimal digits only - "(052) 123-4567" becomes "0521234567"
//   - Phone numbers for events: best-effort E.164 rendering (+[country][number])
//   - Emails: trim and lowercase the whole address
//   - Names: trim leading/trailing whitespace, keep case and inner spacing
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
