package classify

import "errors"

// Input validation failures. Surfaced as zero-score records, never as hard
// failures to the caller.
var (
	ErrMissingImageURL         = errors.New("imageUrl is required and must be an http or https URL")
	ErrMissingExpectedCategory = errors.New("expectedCategory is required")
)

// ErrNotStructured marks a collaborator reply that could not be interpreted
// as structured data. Recovered locally via the per-stage fallback.
var ErrNotStructured = errors.New("reply is not structured data")
