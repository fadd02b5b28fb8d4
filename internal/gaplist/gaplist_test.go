package gaplist

import "testing"

func TestNew_SentinelBounds(t *testing.T) {
	l := New()
	if l.head.Start != MinInt || l.head.End != 0 {
		t.Fatalf("closed sentinel = [%d,%d), want [%d,0)", l.head.Start, l.head.End, MinInt)
	}
	open := l.head.next
	if open == nil || open.Start != 0 || open.End != MaxInt {
		t.Fatalf("open sentinel = %+v, want [0,%d)", open, MaxInt)
	}
	if open.next != nil {
		t.Fatal("open sentinel should terminate the chain")
	}
}

func TestNextTimestamp_FreshMachine(t *testing.T) {
	l := New()
	c := l.Cursor()
	if got := c.NextTimestamp(5, 0); got != 5 {
		t.Errorf("NextTimestamp(5,0) = %d, want 5", got)
	}
}

func TestNextTimestamp_RespectsEarliestStart(t *testing.T) {
	l := New()
	c := l.Cursor()
	if got := c.NextTimestamp(3, 10); got != 13 {
		t.Errorf("NextTimestamp(3,10) = %d, want 13", got)
	}
}

func TestNextTimestamp_WalksPastFullGap(t *testing.T) {
	l := New()
	c := l.Cursor()

	// Occupy [0,10) entirely, leaving [10, MaxInt) open.
	c.AdjustGaps(0, 10)

	got := c.NextTimestamp(4, 0)
	if got != 14 {
		t.Errorf("NextTimestamp(4,0) after occupying [0,10) = %d, want 14", got)
	}
}

func TestNextTimestamp_SkipsTooSmallGapBetweenOccupied(t *testing.T) {
	l := New()
	c := l.Cursor()

	// Occupy [0,10). Cursor now sits on [10, MaxInt).
	c.AdjustGaps(0, 10)
	// Carve a 2-unit gap: occupy [12, MaxInt)'s prefix by splitting at [10,12) free / [12,20) occupied.
	// First occupy [12,20) leaving [10,12) and [20,MaxInt).
	c.NextTimestamp(8, 12) // position cursor at the open gap
	c.AdjustGaps(12, 20)

	// A fragment needing 5 units of wall clock does not fit in [10,12);
	// NextTimestamp should walk forward to the next gap and land at 25.
	fresh := l.Cursor()
	got := fresh.NextTimestamp(5, 0)
	if got != 25 {
		t.Errorf("NextTimestamp(5,0) = %d, want 25 (skipping the too-small [10,12) gap)", got)
	}
}

func TestAdjustGaps_ExactMatchRemovesGap(t *testing.T) {
	l := New()
	c := l.Cursor()
	// Manufacture a bounded gap [0,20) by first splitting off [20,40).
	c.NextTimestamp(20, 0)
	c.AdjustGaps(20, 40) // splits into [0,20) free, [40,MaxInt) free

	c2 := l.Cursor()
	c2.NextTimestamp(20, 0) // lands on [0,20)
	c2.AdjustGaps(0, 20)    // fills [0,20) exactly, removing it

	// The open gap should now start at 40 and be the only real gap left.
	fresh := l.Cursor()
	g := fresh.CurrentGap()
	if g.Start != 40 || g.End != MaxInt {
		t.Errorf("remaining gap = [%d,%d), want [40,%d)", g.Start, g.End, MaxInt)
	}
}

func TestAdjustGaps_TrimStart(t *testing.T) {
	l := New()
	c := l.Cursor()
	c.NextTimestamp(5, 0)
	c.AdjustGaps(0, 5)

	g := l.Cursor().CurrentGap()
	if g.Start != 5 {
		t.Errorf("gap.Start = %d, want 5", g.Start)
	}
}

func TestAdjustGaps_TrimEnd(t *testing.T) {
	l := New()
	c := l.Cursor()
	// Manufacture a bounded gap [0,20) by first splitting off [20, MaxInt).
	c.NextTimestamp(20, 0)
	c.AdjustGaps(20, 40) // splits into [0,20) free, [40,MaxInt) free

	c2 := l.Cursor()
	c2.NextTimestamp(20, 0) // lands on [0,20)
	c2.AdjustGaps(10, 20)   // trims end: [0,10) remains free

	g := l.Cursor().CurrentGap()
	if g.Start != 0 || g.End != 10 {
		t.Errorf("gap = [%d,%d), want [0,10)", g.Start, g.End)
	}
}

func TestAdjustGaps_SplitMiddle(t *testing.T) {
	l := New()
	c := l.Cursor()
	c.NextTimestamp(2, 5) // lands on the open gap, positioned there
	c.AdjustGaps(5, 7)    // strictly inside [0, MaxInt): splits into [0,5) and [7,MaxInt)

	first := l.Cursor().CurrentGap()
	if first.Start != 0 || first.End != 5 {
		t.Errorf("first remaining gap = [%d,%d), want [0,5)", first.Start, first.End)
	}
}

func TestFragmentLifecycle(t *testing.T) {
	l := New()
	c := l.Cursor()

	if _, open := c.InFragment(); open {
		t.Fatal("fresh cursor should not be in a fragment")
	}

	c.NextTimestamp(6, 0)
	c.BeginFragment(0)

	if start, open := c.InFragment(); !open || start != 0 {
		t.Fatalf("InFragment() = (%d,%v), want (0,true)", start, open)
	}
	// While in a fragment, NextTimestamp must not move the cursor and must
	// simply report the current gap's End as the hard ceiling on the
	// fragment, regardless of minWallClock or earliestStart.
	ceiling := c.CurrentGap().End
	if got := c.NextTimestamp(999, 0); got != ceiling {
		t.Errorf("NextTimestamp while in fragment = %d, want %d (current gap's End)", got, ceiling)
	}

	c.AdjustGaps(0, 6)
	if _, open := c.InFragment(); open {
		t.Error("AdjustGaps should clear the open-fragment marker")
	}
}

func TestClone_DryRunNeverMutatesSharedList(t *testing.T) {
	l := New()
	live := l.Cursor()
	live.NextTimestamp(10, 0)
	live.AdjustGaps(0, 10) // shared list now has one real gap [10, MaxInt)

	trial := l.Cursor().Clone()
	trial.NextTimestamp(50, 10)
	trial.AdjustGaps(10, 60) // mutate the clone only

	// The live, shared list must be unaffected by the trial's commit.
	fresh := l.Cursor()
	g := fresh.CurrentGap()
	if g.Start != 10 || g.End != MaxInt {
		t.Fatalf("shared list mutated by dry run: gap = [%d,%d), want [10,%d)", g.Start, g.End, MaxInt)
	}
}

func TestClone_DeepEnoughToSurviveMultiHopAdvance(t *testing.T) {
	l := New()
	c := l.Cursor()

	// Build several small real gaps so a clone must walk more than one hop:
	// occupy [0,10), then [20,30), then [40,50), leaving two free gaps in
	// between ([10,20) and [30,40)) plus the trailing open gap.
	c.NextTimestamp(10, 0)
	c.AdjustGaps(0, 10)
	c.NextTimestamp(10, 20)
	c.AdjustGaps(20, 30)
	c.NextTimestamp(10, 40)
	c.AdjustGaps(40, 50)

	trial := l.Cursor().Clone()
	// Neither [10,20) nor [30,40) fits 15 units, so the clone must walk two
	// hops to land in [50, MaxInt).
	got := trial.NextTimestamp(15, 10)
	if got != 65 {
		t.Fatalf("NextTimestamp(15,10) on clone = %d, want 65", got)
	}
	trial.AdjustGaps(50, 65)

	// Whatever the trial did, the shared list's own view (fresh cursor) must
	// still see the two original small gaps and the trailing open gap
	// untouched.
	fresh := l.Cursor()
	g1 := fresh.CurrentGap()
	if g1.Start != 10 || g1.End != 20 {
		t.Fatalf("first shared gap corrupted by clone mutation: [%d,%d), want [10,20)", g1.Start, g1.End)
	}
}
