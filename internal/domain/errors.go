package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors translated to HTTP statuses at the API boundary.
var (
	// ErrInvalid covers bad payloads: missing required fields, empty
	// update sets, unknown field names.
	ErrInvalid = errors.New("invalid request")

	// ErrNotFound means the identifier resolved to no record.
	ErrNotFound = errors.New("not found")

	// ErrConflict is raised when a url collides with an existing record.
	ErrConflict = errors.New("url already exists")

	// ErrNotConfigured means required credentials are missing from settings.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnavailable means an upstream blocked us or changed its markup so
	// the expected pattern could not be found. Distinct from a zero count.
	ErrUnavailable = errors.New("service unavailable")
)

// Invalidf wraps ErrInvalid with a caller-facing message.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// UpstreamError carries a third-party failure through to the caller with the
// upstream status preserved. FixURL is set when the upstream error payload
// included a remediation link.
type UpstreamError struct {
	StatusCode int
	Message    string
	FixURL     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}
