// Package graph builds the job dependency DAG and tracks, as jobs complete,
// which others become ready to run. It is adapted from the teacher
// codebase's workflow-step DAG builder (internal/parser in the reference
// tree), generalized from step-ID source references to integer job
// dependency indices.
package graph

import (
	"sort"

	"github.com/kjorgen/schedcore/pkg/model"
)

// Graph is the static dependency structure over an Instance's jobs: for
// each job, which later jobs depend on it, and how many unfinished
// dependencies it starts with.
type Graph struct {
	n        int
	forward  [][]int // forward[i] = job indices that depend directly on i
	inDegree []int
}

// Build constructs a Graph from jobs' Dependencies lists, validating that
// every dependency index is in range and that the graph is acyclic.
// Self-dependencies are reported immediately, without running the full
// cycle check, mirroring the teacher's early self-loop detection.
func Build(jobs []model.Job) (*Graph, *model.Failure) {
	n := len(jobs)
	forward := make([][]int, n)
	inDegree := make([]int, n)

	for i, j := range jobs {
		seen := make(map[int]bool, len(j.Dependencies))
		for _, d := range j.Dependencies {
			if d < 0 || d >= n {
				return nil, model.NewInvalidShape("job %d depends on out-of-range job index %d", i, d)
			}
			if d == i {
				return nil, model.NewCycleFailure("job %d depends on itself", i)
			}
			if seen[d] {
				continue
			}
			seen[d] = true
			forward[d] = append(forward[d], i)
			inDegree[i]++
		}
	}

	g := &Graph{n: n, forward: forward, inDegree: inDegree}
	if f := g.checkAcyclic(); f != nil {
		return nil, f
	}
	return g, nil
}

// checkAcyclic runs Kahn's algorithm over a scratch copy of inDegree,
// independent of any runtime scheduling order, purely to confirm the
// dependency structure has no cycle.
func (g *Graph) checkAcyclic() *model.Failure {
	degree := append([]int(nil), g.inDegree...)
	var queue []int
	for i, d := range degree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	visited := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		visited++
		for _, succ := range g.forward[node] {
			degree[succ]--
			if degree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if visited != g.n {
		var stuck []int
		for i, d := range degree {
			if d > 0 {
				stuck = append(stuck, i)
			}
		}
		sort.Ints(stuck)
		return model.NewCycleFailure("dependency cycle involves job(s) %v", stuck)
	}
	return nil
}

// Successors returns the job indices that depend directly on job i.
func (g *Graph) Successors(i int) []int {
	return g.forward[i]
}

// InDegree returns the number of dependencies job i starts with.
func (g *Graph) InDegree(i int) int {
	return g.inDegree[i]
}

// Len returns the number of jobs in the graph.
func (g *Graph) Len() int {
	return g.n
}

// Tracker is a mutable view over a Graph's in-degrees, used during
// scheduling to discover which jobs become ready as others finish. A
// Tracker is single-use: create one per scheduling run with NewTracker.
type Tracker struct {
	g         *Graph
	remaining []int
}

// NewTracker returns a Tracker with every job's full starting in-degree.
func (g *Graph) NewTracker() *Tracker {
	remaining := append([]int(nil), g.inDegree...)
	return &Tracker{g: g, remaining: remaining}
}

// InitiallyReady returns the indices of jobs with no dependencies at all,
// in ascending order.
func (t *Tracker) InitiallyReady() []int {
	var ready []int
	for i, d := range t.remaining {
		if d == 0 {
			ready = append(ready, i)
		}
	}
	return ready
}

// Complete marks job i as finished and returns, in ascending order, any
// successors whose in-degree consequently dropped to zero.
func (t *Tracker) Complete(i int) []int {
	var ready []int
	for _, succ := range t.g.forward[i] {
		t.remaining[succ]--
		if t.remaining[succ] == 0 {
			ready = append(ready, succ)
		}
	}
	sort.Ints(ready)
	return ready
}
