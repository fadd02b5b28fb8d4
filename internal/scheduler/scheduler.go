// Package scheduler implements the driver described in SPEC_FULL.md §4.5:
// it pops ready jobs from a min-heap in dependency order, decides which
// machine(s) a job should run on (possibly via trial placements), commits
// the fragment planner's decision into each machine's gap list, and
// appends a waiting fragment for delivery/wait time.
package scheduler

import (
	"log/slog"

	"github.com/kjorgen/schedcore/internal/gaplist"
	"github.com/kjorgen/schedcore/internal/graph"
	"github.com/kjorgen/schedcore/internal/heap"
	"github.com/kjorgen/schedcore/internal/jobexpr"
	"github.com/kjorgen/schedcore/internal/planner"
	"github.com/kjorgen/schedcore/internal/validate"
	"github.com/kjorgen/schedcore/pkg/model"
)

// ComputeSchedule is the scheduling core's single entry point: a pure
// function of inst, with no I/O and no concurrency of its own (see
// SPEC_FULL.md §5). It is safe to call concurrently from multiple
// goroutines, each call owning its own graph and gap lists. The returned
// error is always a *model.Failure; callers that need the classification
// use errors.As, callers that only want the message use err.Error().
func ComputeSchedule(inst *model.Instance, logger *slog.Logger) (model.Schedule, error) {
	log := logger.With("component", "scheduler")

	working := *inst
	working.Jobs = append([]model.Job(nil), inst.Jobs...)
	working.Normalize()

	if f := resolveExpressions(&working, log); f != nil {
		return nil, f
	}
	if f := validate.Instance(&working, log); f != nil {
		return nil, f
	}

	n := len(working.Jobs)
	if n == 0 {
		log.Debug("empty instance, returning empty schedule")
		return model.Schedule{}, nil
	}

	g, f := graph.Build(working.Jobs)
	if f != nil {
		return nil, f
	}

	machines := make([]*gaplist.List, len(working.MachineSpeeds))
	for i := range machines {
		machines[i] = gaplist.New()
	}

	schedule := make(model.Schedule, n)

	tracker := g.NewTracker()
	ready := heap.New(indexItems(tracker.InitiallyReady()), byIndex)

	scheduled := 0
	for !ready.IsEmpty() {
		item, _ := ready.Pop()
		i := item.index
		scheduled++

		earliestStart := working.Jobs[i].EffectiveReleaseTime()
		for _, d := range working.Jobs[i].Dependencies {
			if end := schedule.LastFragmentEnd(d); end > earliestStart {
				earliestStart = end
			}
		}

		completion, fragments, deliveryMachine := planJob(&working, machines, i, earliestStart)
		deliveryTime := working.Jobs[i].EffectiveDelivery()
		if deliveryTime > 0 {
			fragments = append(fragments, model.JobFragment{
				Machine: deliveryMachine, Start: completion, End: completion + deliveryTime, IsWaiting: true,
			})
		}
		schedule[i] = fragments

		for _, next := range tracker.Complete(i) {
			ready.Push(indexItem{index: next})
		}
	}

	if scheduled < n {
		log.Warn("dependency cycle detected", "scheduled", scheduled, "total", n)
		return nil, model.NewCycleFailure("dependency cycle detected: only %d of %d jobs could be scheduled", scheduled, n)
	}

	return schedule, nil
}

// planJob decides the candidate machine set for job i and runs the
// fragment planner, per SPEC_FULL.md §4.5 step 2-3. It also returns the
// delivery machine: for MULTIPLE_MACHINES jobs that's preAssignment if set
// else machine 0; otherwise it is whichever single machine the job
// actually ran on (preAssigned or chosen by trial placement).
func planJob(inst *model.Instance, machines []*gaplist.List, i int, earliestStart int) (completion int, fragments []model.JobFragment, deliveryMachine int) {
	job := inst.Jobs[i]
	size := job.Size
	isPreemptible := job.IsPreemptible()
	minFrag := inst.JobMinFragmentSize(i)

	var candidateIdx []int
	switch {
	case job.Splitting == model.SplitMultipleMachines:
		candidateIdx = allMachines(len(machines))
		deliveryMachine = 0
		if job.PreAssignment != nil {
			deliveryMachine = *job.PreAssignment
		}
	case job.PreAssignment != nil:
		candidateIdx = []int{*job.PreAssignment}
		deliveryMachine = *job.PreAssignment
	default:
		chosen := bestTrialMachine(inst.MachineSpeeds, machines, size, isPreemptible, minFrag, earliestStart)
		candidateIdx = []int{chosen}
		deliveryMachine = chosen
	}

	live := make([]planner.Machine, len(candidateIdx))
	for k, idx := range candidateIdx {
		live[k] = planner.Machine{
			Index:  idx,
			Speed:  inst.MachineSpeeds[idx],
			Cursor: machines[idx].Cursor(),
		}
	}

	res := planner.Run(live, size, isPreemptible, minFrag, earliestStart, true)
	return res.CompletionTime, res.Fragments, deliveryMachine
}

// bestTrialMachine runs the fragment planner as a dry run against every
// machine in isolation and returns the index of the one with the smallest
// completion time, ties broken by ascending index (SPEC_FULL.md §4.5,
// §9's resolved open question on strict tie-breaking).
func bestTrialMachine(speeds []int, machines []*gaplist.List, size int, isPreemptible bool, minFrag int, earliestStart int) int {
	best := -1
	bestCompletion := 0

	for idx, speed := range speeds {
		trial := planner.Machine{Index: idx, Speed: speed, Cursor: machines[idx].Cursor().Clone()}
		res := planner.Run([]planner.Machine{trial}, size, isPreemptible, minFrag, earliestStart, false)
		if best == -1 || res.CompletionTime < bestCompletion {
			best = idx
			bestCompletion = res.CompletionTime
		}
	}

	return best
}

func resolveExpressions(inst *model.Instance, log *slog.Logger) *model.Failure {
	ev := jobexpr.NewEvaluator()
	for i := range inst.Jobs {
		ctx := jobexpr.Context{Index: i, JobCount: len(inst.Jobs), MachineCount: len(inst.MachineSpeeds)}
		if f := ev.Resolve(&inst.Jobs[i], ctx); f != nil {
			return f
		}
	}
	return nil
}

func allMachines(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

type indexItem struct {
	index int
}

func byIndex(a, b indexItem) bool {
	return a.index < b.index
}

func indexItems(idx []int) []indexItem {
	items := make([]indexItem, len(idx))
	for i, v := range idx {
		items[i] = indexItem{index: v}
	}
	return items
}
