// Package validate checks a model.Instance for structural well-formedness
// before it reaches the scheduler. It never performs cycle detection: a
// dependency cycle is a property of the scheduling run itself, not of the
// instance's shape, and is reported by scheduler.ComputeSchedule.
package validate

import (
	"log/slog"

	"github.com/kjorgen/schedcore/pkg/model"
)

// Instance walks inst and returns the first violated invariant as a
// *model.Failure whose message contains "required", "negative", "integer"
// (a machine speed of 0), a range description, or "not a recognized mode"
// (an unknown splitting value), per SPEC_FULL.md §7. inst must already have
// Normalize and any computed-field resolution applied.
func Instance(inst *model.Instance, logger *slog.Logger) *model.Failure {
	log := logger.With("component", "validate")

	if len(inst.MachineSpeeds) == 0 {
		log.Debug("rejecting instance with no machines")
		return model.NewInvalidShape("machineSpeeds is required and must contain at least one machine")
	}

	for i, speed := range inst.MachineSpeeds {
		if speed < 0 {
			return model.NewInvalidShape("machineSpeeds[%d] must not be negative, got %d", i, speed)
		}
		if speed == 0 {
			return model.NewInvalidShape("machineSpeeds[%d] must be a positive integer, got 0", i)
		}
	}

	if inst.MinFragmentSize < 0 {
		return model.NewInvalidShape("minFragmentSize must not be negative, got %d", inst.MinFragmentSize)
	}

	n := len(inst.Jobs)
	for i, j := range inst.Jobs {
		if j.Size < 0 {
			return model.NewInvalidShape("job %d: size must not be negative, got %d", i, j.Size)
		}
		if j.DeliveryTime < 0 {
			return model.NewInvalidShape("job %d: deliveryTime must not be negative, got %d", i, j.DeliveryTime)
		}
		if j.WaitTime < 0 {
			return model.NewInvalidShape("job %d: waitTime must not be negative, got %d", i, j.WaitTime)
		}
		if j.ReleaseTime < 0 {
			return model.NewInvalidShape("job %d: releaseTime must not be negative, got %d", i, j.ReleaseTime)
		}
		if j.EarliestStart < 0 {
			return model.NewInvalidShape("job %d: earliestStart must not be negative, got %d", i, j.EarliestStart)
		}
		if j.MinFragmentSize < 0 {
			return model.NewInvalidShape("job %d: minFragmentSize must not be negative, got %d", i, j.MinFragmentSize)
		}

		switch j.Splitting {
		case model.SplitNone, model.SplitPreemption, model.SplitMultipleMachines:
		default:
			return model.NewInvalidShape("job %d: splitting %q is not a recognized mode", i, j.Splitting)
		}

		for _, d := range j.Dependencies {
			if d < 0 || d >= n {
				return model.NewInvalidShape("job %d: dependency index %d is out of range [0,%d)", i, d, n)
			}
		}

		if j.PreAssignment != nil {
			m := *j.PreAssignment
			if m < 0 || m >= len(inst.MachineSpeeds) {
				return model.NewInvalidShape("job %d: preAssignment %d is out of range [0,%d)", i, m, len(inst.MachineSpeeds))
			}
		}
	}

	log.Debug("instance validated", "jobCount", n, "machineCount", len(inst.MachineSpeeds))
	return nil
}
