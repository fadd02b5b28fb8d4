package model

import "fmt"

// FailureKind classifies why ComputeSchedule could not produce a schedule.
type FailureKind string

const (
	// FailureInvalidShape covers negative/non-integer values and
	// out-of-range machine or dependency indices.
	FailureInvalidShape FailureKind = "invalid_shape"
	// FailureCycle means the dependency graph is cyclic.
	FailureCycle FailureKind = "cycle"
	// FailureInternal marks a debug-assertion violation: a bug in the
	// scheduler itself, not in the input.
	FailureInternal FailureKind = "internal"
)

// Failure is the single error type returned by the scheduling core and
// surfaced, as a plain string, to the CLI and HTTP layers.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

// NewInvalidShape builds a FailureInvalidShape with a formatted message.
func NewInvalidShape(format string, args ...any) *Failure {
	return &Failure{Kind: FailureInvalidShape, Message: fmt.Sprintf(format, args...)}
}

// NewCycleFailure builds a FailureCycle with a formatted message.
func NewCycleFailure(format string, args ...any) *Failure {
	return &Failure{Kind: FailureCycle, Message: fmt.Sprintf(format, args...)}
}

// NewInternalFailure builds a FailureInternal with a formatted message.
func NewInternalFailure(format string, args ...any) *Failure {
	return &Failure{Kind: FailureInternal, Message: fmt.Sprintf(format, args...)}
}
