package optimizer

import (
	"testing"

	"github.com/transitflow/depotplan/core/model"
)

func TestDetectExpiringInService(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.Fitness.ValidUntil = testNow.AddDate(0, 0, 3)
	d := NewConflictDetector(DefaultThresholds())
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{MeanMileageKm: 60000}, testNow)

	conflicts := d.Detect(ts, ev, model.CategoryInService, FleetStats{MeanMileageKm: 60000}, testNow)
	if len(conflicts) != 1 || conflicts[0].Kind != model.ConflictFitnessExpiring {
		t.Fatalf("conflicts = %v, want single FITNESS_EXPIRING", conflicts)
	}

	// The same certificate off service duty raises nothing.
	conflicts = d.Detect(ts, ev, model.CategoryStandby, FleetStats{MeanMileageKm: 60000}, testNow)
	if len(conflicts) != 0 {
		t.Fatalf("standby conflicts = %v, want none", conflicts)
	}
}

func TestDetectNotCleared(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.OperationalClearance = false
	d := NewConflictDetector(DefaultThresholds())
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{MeanMileageKm: 60000}, testNow)
	conflicts := d.Detect(ts, ev, model.CategoryInService, FleetStats{MeanMileageKm: 60000}, testNow)
	found := false
	for _, c := range conflicts {
		if c.Kind == model.ConflictNotCleared {
			found = true
		}
	}
	if !found {
		t.Fatalf("conflicts = %v, want NOT_CLEARED", conflicts)
	}
}

func TestDetectMileageImbalance(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.CurrentMileageKm = 70000
	d := NewConflictDetector(DefaultThresholds())
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{MeanMileageKm: 60000}, testNow)
	conflicts := d.Detect(ts, ev, model.CategoryStandby, FleetStats{MeanMileageKm: 60000}, testNow)
	if len(conflicts) != 1 || conflicts[0].Kind != model.ConflictMileageImbalance {
		t.Fatalf("conflicts = %v, want MILEAGE_IMBALANCE", conflicts)
	}
}

func TestFleetConflicts(t *testing.T) {
	d := NewConflictDetector(DefaultThresholds())
	out := d.FleetConflicts(AssignmentResult{ServiceShortfall: true, OverBudget: true})
	if len(out) != 2 {
		t.Fatalf("fleet conflicts = %v, want 2", out)
	}
	if out[0].Kind != model.ConflictServiceShortfall || out[1].Kind != model.ConflictShuntingBudget {
		t.Errorf("kinds = %v, %v", out[0].Kind, out[1].Kind)
	}
	if len(d.FleetConflicts(AssignmentResult{})) != 0 {
		t.Error("clean assignment must yield no fleet conflicts")
	}
}

func TestExplanationBuilder(t *testing.T) {
	c := Candidate{
		Trainset: model.Trainset{ID: "TS-001"},
		Score:    85,
		Reasons:  []string{"fitness certificate valid"},
	}
	dec := ExplanationBuilder{}.Build(c, model.CategoryInService, 0,
		model.StablingPosition{Track: model.TrackService, Bay: 2}, nil, testNow)
	if dec.Reasons[0] != "selected for revenue service (rank 1)" {
		t.Errorf("lead reason = %q", dec.Reasons[0])
	}
	if dec.Reasons[1] != "fitness certificate valid" {
		t.Errorf("second reason = %q", dec.Reasons[1])
	}
	if dec.Target.Track != model.TrackService {
		t.Errorf("target = %v", dec.Target)
	}
}
