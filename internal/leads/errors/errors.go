package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingConfiguration = errors.New("record store configuration missing")

	ErrDuplicateLead = errors.New("lead already exists")

	ErrLockUnavailable = errors.New("lead submission lock unavailable")
)

const (
	OpQuery  = "query"
	OpCreate = "create"
)

// UpstreamError describes a failed call to the record store. Status is zero
// when no response was received.
type UpstreamError struct {
	Op     string
	Status int
	Body   []byte
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("airtable %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("airtable %s failed with status %d", e.Op, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Responded reports whether the record store answered at all.
func (e *UpstreamError) Responded() bool {
	return e.Status != 0
}
