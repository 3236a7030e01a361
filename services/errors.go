package services

import "errors"

// Error taxonomy surfaced to handlers. Storage failures pass through
// unwrapped-as-is; these sentinels cover the conditions the service itself
// detects.
var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrValidation         = errors.New("validation failed")
)
