package analysis

import "errors"

// ErrInvalidInput marks malformed activity data (bad duration, missing
// effort). Wrapped errors carry the specifics; check with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrInsufficientData is returned by EstimateVDOT when there is no race
// result and no pace evidence. The estimator never falls back to a
// CTL-derived guess: CTL measures training quantity, not pace
// capability.
var ErrInsufficientData = errors.New("insufficient data for VDOT estimate")
