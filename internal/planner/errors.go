package planner

import (
	"errors"
	"fmt"
	"strings"

	"dayplan-tracker/internal/model"
)

// Sentinel errors surfaced across the repository and service layers.
var (
	// ErrNotFound means no plan exists for the requested owner and date.
	ErrNotFound = errors.New("plan not found")

	// ErrConflict means a concurrent writer committed first. The caller
	// must reload and retry with fresh state, never blind-overwrite.
	ErrConflict = errors.New("plan was modified concurrently")

	// ErrDuplicatePlan means a plan already exists for the owner and
	// date; the existing one is the single authoritative lifecycle.
	ErrDuplicatePlan = errors.New("a plan already exists for this date")
)

// ValidationError collects every input problem found in one pass so the
// caller can surface all offending fields together. Any problem blocks
// the whole save; no partially valid plan is ever persisted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// ProtocolViolation is returned when a lifecycle event is attempted
// from a state that does not allow it, or by a role that may not invoke
// it. The plan is left untouched.
type ProtocolViolation struct {
	From  model.PlanStatus
	Event Event
	Role  model.Role
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("cannot %s a plan in state %q as %s", e.Event, e.From, e.Role)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsProtocolViolation reports whether err is (or wraps) a
// ProtocolViolation.
func IsProtocolViolation(err error) bool {
	var p *ProtocolViolation
	return errors.As(err, &p)
}
