package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
	"github.com/transitflow/depotplan/fleet"
	"github.com/transitflow/depotplan/infra/logger"
)

func newTestRunner(t *testing.T, store ResultStore) *Runner {
	t.Helper()
	engine, err := optimizer.NewEngine(optimizer.DefaultWeights(), nil, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	r, err := NewRunner(engine, DefaultPolicy(), store, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	return r
}

func TestSimulateRejectsEmptyScenario(t *testing.T) {
	r := newTestRunner(t, nil)
	baseline := fleet.FixtureFleet(25, testNow)
	for _, sc := range []model.Scenario{
		{ID: "unknown-unit", Parameters: []model.ScenarioParameter{
			{TrainsetID: "TS-999", Field: FieldStatus, Value: "ACTIVE"},
		}},
		{ID: "unsupported-field", Parameters: []model.ScenarioParameter{
			{TrainsetID: "TS-001", Field: "paint_scheme", Value: "blue"},
		}},
	} {
		_, err := r.Simulate(context.Background(), baseline, optimizer.DefaultThresholds(), sc, testNow)
		if !errors.Is(err, ErrEmptyScenario) {
			t.Fatalf("scenario %s: err = %v, want ErrEmptyScenario", sc.ID, err)
		}
	}
}

func TestSimulateEmergencyWithdrawal(t *testing.T) {
	store := NewMemoryStore()
	r := newTestRunner(t, store)
	baseline := fleet.FixtureFleet(25, testNow)

	// Withdrawing four previously healthy trainsets drops the eligible pool
	// below the 18-trainset service floor.
	sc := model.Scenario{
		ID:       "emergency-4",
		Name:     "four-unit emergency withdrawal",
		Category: "emergency",
	}
	for _, id := range []string{"TS-001", "TS-002", "TS-003", "TS-004"} {
		sc.Parameters = append(sc.Parameters, model.ScenarioParameter{
			TrainsetID: id, Field: FieldStatus, Value: "EMERGENCY_REPAIR", Type: model.ChangeOperational,
		})
	}

	res, err := r.Simulate(context.Background(), baseline, optimizer.DefaultThresholds(), sc, testNow)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Baseline.InService != 18 {
		t.Errorf("baseline in service = %d, want 18", res.Baseline.InService)
	}
	if res.Simulated.InService >= res.Baseline.InService {
		t.Errorf("simulated in service = %d, want a drop below %d",
			res.Simulated.InService, res.Baseline.InService)
	}
	if len(res.Differences) != 12 {
		t.Errorf("differences = %d, want 12", len(res.Differences))
	}
	if res.Confidence < 0.5 || res.Confidence > 1.0 {
		t.Errorf("confidence %v out of [0.5, 1.0]", res.Confidence)
	}
	if len(res.Recommendations) == 0 {
		t.Error("expected recommendations for an emergency scenario")
	}
	if res.ID == "" {
		t.Error("missing simulation id")
	}

	stored, err := store.Get(context.Background(), "emergency-4")
	if err != nil {
		t.Fatalf("result not stored: %v", err)
	}
	if stored.ID != res.ID {
		t.Errorf("stored id %s, want %s", stored.ID, res.ID)
	}
}

func TestSimulateDoesNotMutateBaseline(t *testing.T) {
	r := newTestRunner(t, nil)
	baseline := fleet.FixtureFleet(25, testNow)
	before := make([]model.Trainset, len(baseline))
	for i, ts := range baseline {
		before[i] = ts.Clone()
	}

	sc := model.Scenario{ID: "probe", Parameters: []model.ScenarioParameter{
		{TrainsetID: "TS-001", Field: FieldStatus, Value: "OUT_OF_SERVICE"},
	}}
	if _, err := r.Simulate(context.Background(), baseline, optimizer.DefaultThresholds(), sc, testNow); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i := range baseline {
		if baseline[i].Status != before[i].Status {
			t.Fatalf("baseline %s mutated", baseline[i].ID)
		}
	}
}

func TestSimulateConstraintOnlyScenario(t *testing.T) {
	r := newTestRunner(t, nil)
	baseline := fleet.FixtureFleet(25, testNow)
	sc := model.Scenario{
		ID:   "tighter-floor",
		Name: "raise the service floor",
		ConstraintChanges: []model.ConstraintChange{
			{Name: optimizer.ConstraintMinServiceTrains, NewValue: 20},
		},
	}
	res, err := r.Simulate(context.Background(), baseline, optimizer.DefaultThresholds(), sc, testNow)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if res.Simulated.InService <= res.Baseline.InService {
		t.Errorf("in service %d -> %d, want an increase from the raised floor",
			res.Baseline.InService, res.Simulated.InService)
	}
}
