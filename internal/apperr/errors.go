package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict: an open assignment already exists
// for the order, or a sequence for it is already running.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrStale indicates an event for an assignment or attempt that is no longer
// current; callers discard it and log at low severity.
var ErrStale = errors.New("stale event")
