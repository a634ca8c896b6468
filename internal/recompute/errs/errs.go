// Package errs implements the error taxonomy from spec.md §7. It is split
// out from package recompute so that bootstrap, growth and assimilation can
// raise these typed errors without importing the recomputer itself.
package errs

import "fmt"

// ValidationError: bad window, inverted dates, unknown assignment, missing
// projection/model when required for bootstrap. Propagated to the caller;
// no recompute happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// MissingMasterDataError: no TGC model and no scenario reachable from the
// batch, raised by bootstrap when it needs an initial weight ladder it
// cannot complete. Propagated; the job fails fast.
type MissingMasterDataError struct {
	Assignment uint
	Reason     string
}

func (e *MissingMasterDataError) Error() string {
	return fmt.Sprintf("missing master data for assignment %d: %s", e.Assignment, e.Reason)
}

// DayComputationError is raised from within one iteration of the day loop
// (e.g. an unexpected nil). Caught by the range recomputer, recorded in
// the result's error list with the date and message; the loop continues.
type DayComputationError struct {
	Date    string
	Message string
}

func (e *DayComputationError) Error() string {
	return fmt.Sprintf("day %s: %s", e.Date, e.Message)
}

// ConflictError: two concurrent tasks on the same assignment, resolved by
// the scheduler's per-assignment lock. Not observable by the core itself —
// defined here so the scheduler package can report it uniformly.
type ConflictError struct {
	AssignmentID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("assignment %d is already being recomputed", e.AssignmentID)
}
