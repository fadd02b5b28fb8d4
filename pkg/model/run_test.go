package model

import "testing"

func TestListOptions_Clamp(t *testing.T) {
	tests := []struct {
		name       string
		input      ListOptions
		wantLimit  int
		wantOffset int
	}{
		{"defaults", ListOptions{Limit: 0, Offset: 0}, 20, 0},
		{"negative limit", ListOptions{Limit: -5, Offset: 0}, 20, 0},
		{"over max", ListOptions{Limit: 200, Offset: 0}, 100, 0},
		{"negative offset", ListOptions{Limit: 10, Offset: -1}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.input
			opts.Clamp()
			if opts.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", opts.Limit, tt.wantLimit)
			}
			if opts.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", opts.Offset, tt.wantOffset)
			}
		})
	}
}

func TestRun_Succeeded(t *testing.T) {
	ok := &Run{Schedule: Schedule{}}
	if !ok.Succeeded() {
		t.Error("expected Succeeded() true when Failure is empty")
	}

	bad := &Run{Failure: "cycle detected"}
	if bad.Succeeded() {
		t.Error("expected Succeeded() false when Failure is set")
	}
}

func TestSchedule_MakespanAndLastFragmentEnd(t *testing.T) {
	sched := Schedule{
		{{Machine: 0, Start: 0, End: 3}},
		{{Machine: 1, Start: 2, End: 5}, {Machine: 1, Start: 5, End: 6, IsWaiting: true}},
		{},
	}

	if got := sched.Makespan(); got != 6 {
		t.Errorf("Makespan() = %d, want 6", got)
	}
	if got := sched.LastFragmentEnd(1); got != 6 {
		t.Errorf("LastFragmentEnd(1) = %d, want 6", got)
	}
	if got := sched.LastFragmentEnd(2); got != 0 {
		t.Errorf("LastFragmentEnd(2) = %d, want 0", got)
	}
}
