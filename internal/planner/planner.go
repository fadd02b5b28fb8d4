// Package planner implements the fragment planner: given a job and a set
// of candidate machines, it decides where and when the job's work gets
// done, emitting JobFragments on a commit run or merely reporting a
// completion time on a dry run (trial placement). See internal/gaplist for
// the per-machine free-time structure it reads and writes.
package planner

import (
	"math"
	"sort"

	"github.com/kjorgen/schedcore/internal/assert"
	"github.com/kjorgen/schedcore/internal/gaplist"
	"github.com/kjorgen/schedcore/pkg/model"
)

// infiniteTime stands in for "no finite completion time yet known" so the
// currentSpeed==0 case never divides by zero.
const infiniteTime = math.MaxInt

// Machine is one candidate for a planning run: its global index, its
// speed, and the gap-list cursor the planner reads and writes through.
// Pass a cursor obtained via (*gaplist.Cursor).Clone for a dry run so the
// run's mutations never reach the shared list; pass the machine's live
// cursor to commit.
type Machine struct {
	Index  int
	Speed  int
	Cursor *gaplist.Cursor
}

// Result is the outcome of one planner run.
type Result struct {
	CompletionTime int
	Fragments      []model.JobFragment
}

// Run executes the event loop described in SPEC_FULL.md §4.4 over machines
// for a job of the given size. record controls only whether fragments are
// collected into the result; the cursors' provenance (shared vs. cloned)
// is what actually decides commit vs. dry run.
func Run(machines []Machine, size int, isPreemptible bool, configuredMinFragmentSize int, earliestStart int, record bool) Result {
	minFragmentSize := size
	if isPreemptible && configuredMinFragmentSize < size {
		minFragmentSize = configuredMinFragmentSize
	}

	currentSpeed := 0
	lastTimestamp := earliestStart
	remainingSize := size

	var fragments []model.JobFragment

	for remainingSize > 0 {
		eventTime := infiniteTime
		winner := -1
		for i, m := range machines {
			minWallClock := ceilDiv(minFragmentSize, m.Speed)
			t := m.Cursor.NextTimestamp(minWallClock, earliestStart)
			if t < eventTime {
				eventTime = t
				winner = i
			}
		}

		isProjectedEnd := false
		if currentSpeed > 0 {
			proj := lastTimestamp + ceilDiv(remainingSize, currentSpeed)
			if proj < eventTime {
				eventTime = proj
				isProjectedEnd = true
			}
		}

		remainingSize -= (eventTime - lastTimestamp) * currentSpeed
		assert.True(!isProjectedEnd || remainingSize <= 0, "isProjectedEnd must imply remainingSize <= 0")

		if !isProjectedEnd {
			m := machines[winner]
			if fragStart, open := m.Cursor.InFragment(); !open {
				gap := m.Cursor.CurrentGap()
				start := earliestStart
				if gap.Start > start {
					start = gap.Start
				}
				m.Cursor.BeginFragment(start)
				remainingSize -= (eventTime - start) * m.Speed
				currentSpeed += m.Speed
			} else {
				m.Cursor.AdjustGaps(fragStart, eventTime)
				if record {
					fragments = append(fragments, model.JobFragment{
						Machine: m.Index, Start: fragStart, End: eventTime,
					})
				}
				currentSpeed -= m.Speed
			}
		}

		lastTimestamp = eventTime
	}

	for _, m := range machines {
		if fragStart, open := m.Cursor.InFragment(); open {
			m.Cursor.AdjustGaps(fragStart, lastTimestamp)
			if record {
				fragments = append(fragments, model.JobFragment{
					Machine: m.Index, Start: fragStart, End: lastTimestamp,
				})
			}
		}
	}

	if record {
		sort.Slice(fragments, func(a, b int) bool {
			if fragments[a].End != fragments[b].End {
				return fragments[a].End < fragments[b].End
			}
			return fragments[a].Machine < fragments[b].Machine
		})
	}

	return Result{CompletionTime: lastTimestamp, Fragments: fragments}
}

// ceilDiv returns ceil(a/b) for a >= 0, b > 0; it returns infiniteTime for
// b <= 0 (no speed, no finite wall clock) and 0 for a <= 0 (nothing to
// wait for).
func ceilDiv(a, b int) int {
	if b <= 0 {
		return infiniteTime
	}
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
