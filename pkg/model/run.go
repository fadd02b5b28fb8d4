package model

import "time"

// Run is one persisted invocation of the scheduling core: the instance it
// was given, and either the resulting schedule or the failure message.
type Run struct {
	ID           string    `json:"id"`
	SubmittedAt  time.Time `json:"submittedAt"`
	Instance     Instance  `json:"instance"`
	Schedule     Schedule  `json:"schedule,omitempty"`
	Failure      string    `json:"failure,omitempty"`
	DurationNanos int64    `json:"durationNanos"`
}

// Succeeded reports whether the run produced a schedule.
func (r *Run) Succeeded() bool {
	return r.Failure == ""
}

// ListOptions configures paginated run listings, matching the teacher
// codebase's ListOptions idiom.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces sane bounds: a non-positive limit becomes the default 20,
// a limit over 100 becomes 100, and a negative offset becomes 0.
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}
