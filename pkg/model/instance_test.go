package model

import "testing"

func TestInstance_Normalize(t *testing.T) {
	m := 0
	inst := Instance{
		Jobs: []Job{
			{Size: 1},
			{Size: 2, Splitting: SplitNone},
			{Size: 3, PreAssignment: &m},
		},
	}
	inst.Normalize()

	if inst.Jobs[0].Splitting != SplitPreemption {
		t.Errorf("job 0 Splitting = %q, want %q", inst.Jobs[0].Splitting, SplitPreemption)
	}
	if inst.Jobs[1].Splitting != SplitNone {
		t.Errorf("job 1 Splitting should be left alone, got %q", inst.Jobs[1].Splitting)
	}
	if inst.Jobs[2].PreAssignment == nil || *inst.Jobs[2].PreAssignment != 0 {
		t.Error("job 2 PreAssignment should remain pinned to machine 0")
	}
}

func TestInstance_JobMinFragmentSize(t *testing.T) {
	inst := Instance{
		MinFragmentSize: 3,
		Jobs: []Job{
			{Size: 10},
			{Size: 10, MinFragmentSize: 7},
		},
	}

	if got := inst.JobMinFragmentSize(0); got != 3 {
		t.Errorf("job 0 effective min fragment size = %d, want 3 (instance default)", got)
	}
	if got := inst.JobMinFragmentSize(1); got != 7 {
		t.Errorf("job 1 effective min fragment size = %d, want 7 (job override)", got)
	}
}

func TestJob_EffectiveAccessors(t *testing.T) {
	j := Job{ReleaseTime: 0, EarliestStart: 5, DeliveryTime: 0, WaitTime: 4}
	if got := j.EffectiveReleaseTime(); got != 5 {
		t.Errorf("EffectiveReleaseTime() = %d, want 5", got)
	}
	if got := j.EffectiveDelivery(); got != 4 {
		t.Errorf("EffectiveDelivery() = %d, want 4", got)
	}

	j2 := Job{Splitting: SplitNone}
	if j2.IsPreemptible() {
		t.Error("SplitNone job should not be preemptible")
	}
	j3 := Job{Splitting: SplitPreemption}
	if !j3.IsPreemptible() {
		t.Error("SplitPreemption job should be preemptible")
	}
}
