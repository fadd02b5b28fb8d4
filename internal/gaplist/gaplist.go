// Package gaplist implements the per-machine free-time structure consumed
// by internal/planner: a sorted singly linked list of disjoint intervals,
// sentinel-bounded so walks never run off either end.
package gaplist

import "math"

// MinInt and MaxInt bound the sentinel gaps, keeping all arithmetic in
// native int range with no floating point and no wraparound.
const (
	MinInt = math.MinInt
	MaxInt = math.MaxInt
)

// Gap is one free interval, [Start, End).
type Gap struct {
	Start, End int
	next       *Gap
}

// List is the gap list for one machine: a sentinel-bounded chain of Gaps,
// [MinInt, 0] first (permanently closed) and [G, MaxInt] last (permanently
// open). A List lives for one computeSchedule call and is mutated in place
// only through a cursor's Commit-style use (see Cursor).
type List struct {
	head *Gap // the closed sentinel; head.next is the first real gap
}

// New returns a fresh gap list representing a machine idle from time 0
// onward.
func New() *List {
	open := &Gap{Start: 0, End: MaxInt}
	closed := &Gap{Start: MinInt, End: 0, next: open}
	return &List{head: closed}
}

// Cursor walks a List, tracking the gap immediately preceding its current
// position (prev) so AdjustGaps can splice without re-traversing. A cursor
// obtained directly from List.Cursor shares the list's nodes: mutating it
// mutates the list. A cursor obtained via Clone owns a private copy of the
// remaining chain: mutating it never touches the shared list. This is the
// commit/dry-run duality described in SPEC_FULL.md §4.2 — there is no
// separate boolean flag, the cursor's provenance decides it.
type Cursor struct {
	list *List
	prev *Gap
	cur  *Gap

	// currentFragmentStart is set while a fragment is open on this
	// machine; nil means idle.
	currentFragmentStart *int
}

// Cursor returns a cursor positioned at the first real (non-sentinel) gap,
// sharing the list's nodes.
func (l *List) Cursor() *Cursor {
	return &Cursor{list: l, prev: l.head, cur: l.head.next}
}

// Clone returns an independent cursor positioned identically to c, but
// owning a private deep copy of the remainder of the chain (from c.prev
// onward). Used for trial placements: the planner explores a candidate
// machine through a clone and simply discards it if that machine isn't
// chosen.
func (c *Cursor) Clone() *Cursor {
	var orig []*Gap
	for g := c.prev; g != nil; g = g.next {
		orig = append(orig, g)
	}

	cloned := make([]*Gap, len(orig))
	for i, g := range orig {
		cloned[i] = &Gap{Start: g.Start, End: g.End}
	}
	for i := 0; i < len(cloned)-1; i++ {
		cloned[i].next = cloned[i+1]
	}

	curIdx := 0
	for i, g := range orig {
		if g == c.cur {
			curIdx = i
			break
		}
	}

	var fragStart *int
	if c.currentFragmentStart != nil {
		s := *c.currentFragmentStart
		fragStart = &s
	}

	return &Cursor{
		list:                  c.list,
		prev:                  cloned[0],
		cur:                   cloned[curIdx],
		currentFragmentStart:  fragStart,
	}
}

// InFragment reports whether the cursor's machine currently has an open
// fragment, and if so its start time.
func (c *Cursor) InFragment() (start int, open bool) {
	if c.currentFragmentStart == nil {
		return 0, false
	}
	return *c.currentFragmentStart, true
}

// BeginFragment marks that a fragment has begun at start. If start is after
// the current gap's own Start (the gap's leading edge is unusable for this
// fragment, because earliestStart fell in the gap's interior), the leading
// remainder [cur.Start, start) is split off into its own gap ahead of the
// cursor and cur is narrowed to begin exactly at start. Without this split,
// a later AdjustGaps that happens to consume through to the gap's End would
// leave the cursor sitting on a stale gap whose bounds precede the
// fragment just closed, so NextTimestamp could offer a timestamp earlier
// than one already handed out.
func (c *Cursor) BeginFragment(start int) {
	if start > c.cur.Start {
		lead := &Gap{Start: c.cur.Start, End: start, next: c.cur}
		c.prev.next = lead
		c.cur.Start = start
		c.prev = lead
	}
	s := start
	c.currentFragmentStart = &s
}

// CurrentGap returns the gap the cursor is currently positioned at.
func (c *Cursor) CurrentGap() Gap {
	return *c.cur
}

// NextTimestamp locates the earliest timestamp >= earliestStart at which a
// fragment of wall-clock length minWallClock fits in the current or a later
// gap, per SPEC_FULL.md §4.2, advancing the cursor's position to that gap
// as it walks (a read-only traversal: it follows next pointers but never
// writes Start/End, so it is safe regardless of whether this cursor is
// shared or a Clone). If the machine already has an open fragment, the
// cursor does not move and the current gap's End is returned.
func (c *Cursor) NextTimestamp(minWallClock, earliestStart int) int {
	if _, open := c.InFragment(); open {
		return c.cur.End
	}

	for {
		t := earliestStart
		if c.cur.Start > t {
			t = c.cur.Start
		}
		t += minWallClock
		if t <= c.cur.End {
			return t
		}
		// The open sentinel [_, MaxInt] always admits any finite
		// minWallClock, so this is reachable only for non-sentinel
		// gaps and termination is guaranteed.
		c.prev = c.cur
		c.cur = c.cur.next
	}
}

// AdjustGaps finalises a fragment [start, end) against the gap the cursor
// is currently positioned at (the gap NextTimestamp(minWallClock,
// earliestStart) most recently selected for this same start/end pair), per
// SPEC_FULL.md §4.2's four-case transformation. After this call the
// open-fragment marker is cleared.
func (c *Cursor) AdjustGaps(start, end int) {
	gs, ge := c.cur.Start, c.cur.End

	switch {
	case start == gs && end == ge:
		c.prev.next = c.cur.next
		c.cur = c.cur.next
	case start == gs:
		c.cur.Start = end
	case end == ge:
		c.cur.End = start
	default:
		tail := &Gap{Start: end, End: ge, next: c.cur.next}
		c.cur.End = start
		c.cur.next = tail
		c.prev = c.cur
		c.cur = tail
	}

	c.currentFragmentStart = nil
}
