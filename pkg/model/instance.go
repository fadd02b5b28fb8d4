// Package model holds the data types shared across the scheduling core, the
// store, and the HTTP and CLI surfaces: instances, jobs, schedules, and the
// persisted run record.
package model

// Splitting describes how a job may be spread across machines.
type Splitting string

const (
	// SplitNone requires the job to run on a single machine, en bloc,
	// with no preemption.
	SplitNone Splitting = "NONE"
	// SplitPreemption allows the job to be interrupted and resumed later
	// on the same machine. This is the default.
	SplitPreemption Splitting = "PREEMPTION"
	// SplitMultipleMachines allows the job to run concurrently on
	// several machines, each fragment subject to the minimum-fragment
	// rule.
	SplitMultipleMachines Splitting = "MULTIPLE_MACHINES"
)

// Job is a single unit of work in an Instance.
type Job struct {
	// Size is the processing requirement in unit-machine time.
	Size int `json:"size" yaml:"size"`

	// DeliveryTime (a.k.a. wait time) is a post-processing idle duration
	// that blocks dependents but does not occupy a machine. At most one
	// of DeliveryTime and WaitTime need be set; WaitTime is an alias
	// kept for instances authored against the original field name.
	DeliveryTime int `json:"deliveryTime,omitempty" yaml:"deliveryTime,omitempty"`
	WaitTime     int `json:"waitTime,omitempty" yaml:"waitTime,omitempty"`

	// Splitting selects the execution mode. The zero value decodes to
	// SplitPreemption via Instance.Normalize.
	Splitting Splitting `json:"splitting,omitempty" yaml:"splitting,omitempty"`

	// Dependencies lists the indices of jobs that must finish (including
	// their own delivery time) before this job may start.
	Dependencies []int `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// ReleaseTime (a.k.a. EarliestStart) is the earliest moment any
	// fragment of this job may start, independent of dependencies.
	ReleaseTime   int `json:"releaseTime,omitempty" yaml:"releaseTime,omitempty"`
	EarliestStart int `json:"earliestStart,omitempty" yaml:"earliestStart,omitempty"`

	// PreAssignment pins the job to one machine. When Splitting is
	// SplitMultipleMachines it does not restrict the machines used and only
	// selects the machine the delivery fragment is recorded on. nil means
	// "no pin"; this is a pointer
	// rather than an int-with-sentinel so machine 0 can be pre-assigned
	// without colliding with the zero value.
	PreAssignment *int `json:"preAssignment,omitempty" yaml:"preAssignment,omitempty"`

	// MinFragmentSize overrides Instance.MinFragmentSize for this job
	// alone when positive.
	MinFragmentSize int `json:"minFragmentSize,omitempty" yaml:"minFragmentSize,omitempty"`

	// The *Expr fields hold optional JavaScript expressions evaluated by
	// internal/jobexpr at load time; when set, they override the plain
	// field of the same name. See SPEC_FULL.md §4.9.
	ReleaseTimeExpr     string `json:"releaseTimeExpr,omitempty" yaml:"releaseTimeExpr,omitempty"`
	DeliveryTimeExpr    string `json:"deliveryTimeExpr,omitempty" yaml:"deliveryTimeExpr,omitempty"`
	WaitTimeExpr        string `json:"waitTimeExpr,omitempty" yaml:"waitTimeExpr,omitempty"`
	MinFragmentSizeExpr string `json:"minFragmentSizeExpr,omitempty" yaml:"minFragmentSizeExpr,omitempty"`
}

// EffectiveDelivery returns the post-processing idle duration, preferring
// DeliveryTime when both DeliveryTime and WaitTime are set.
func (j *Job) EffectiveDelivery() int {
	if j.DeliveryTime != 0 {
		return j.DeliveryTime
	}
	return j.WaitTime
}

// EffectiveReleaseTime returns the earliest-start constraint, preferring
// ReleaseTime when both ReleaseTime and EarliestStart are set.
func (j *Job) EffectiveReleaseTime() int {
	if j.ReleaseTime != 0 {
		return j.ReleaseTime
	}
	return j.EarliestStart
}

// IsPreemptible reports whether the job's fragments may be interrupted and
// resumed. Only SplitNone forbids it.
func (j *Job) IsPreemptible() bool {
	return j.Splitting != SplitNone
}

// Instance is the full input to the scheduler: the machine speeds, the
// ordered list of jobs, and the default minimum fragment size.
type Instance struct {
	MachineSpeeds   []int `json:"machineSpeeds" yaml:"machineSpeeds"`
	Jobs            []Job `json:"jobs" yaml:"jobs"`
	MinFragmentSize int   `json:"minFragmentSize,omitempty" yaml:"minFragmentSize,omitempty"`
}

// Normalize fills in defaults (Splitting) on a freshly decoded Instance. It
// must run before validate.Instance; scheduler.ComputeSchedule applies it
// to its own copy of the instance.
func (inst *Instance) Normalize() {
	for i := range inst.Jobs {
		if inst.Jobs[i].Splitting == "" {
			inst.Jobs[i].Splitting = SplitPreemption
		}
	}
}

// JobMinFragmentSize resolves the effective minimum fragment size for job i:
// the job's own override if positive, else the instance default.
func (inst *Instance) JobMinFragmentSize(i int) int {
	if m := inst.Jobs[i].MinFragmentSize; m > 0 {
		return m
	}
	return inst.MinFragmentSize
}
