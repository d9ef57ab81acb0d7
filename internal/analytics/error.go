package analytics

import "errors"

var (
	// ErrInvariantViolation marks a base-data contract breach (a line
	// referencing a missing order/product, negative price or quantity).
	// Reports fail loudly on it instead of silently skipping rows.
	ErrInvariantViolation = errors.New("snapshot violates data invariants")
)
