package optimizer

import "testing"

func TestDefaultWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
}

func TestWeightsValidateRejectsBadSum(t *testing.T) {
	w := DefaultWeights()
	w.Fitness = 0.5
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for weights not summing to 1")
	}
}

func TestWeightsValidateRejectsNegative(t *testing.T) {
	w := Weights{Fitness: -0.1, Mileage: 0.4, Maintenance: 0.4, Branding: 0.2, Shunting: 0.1}
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestWithConstraintCopies(t *testing.T) {
	th := DefaultThresholds()
	next, ok := th.WithConstraint(ConstraintMinServiceTrains, 10)
	if !ok {
		t.Fatal("min_service_trains not recognized")
	}
	if next.MinServiceTrains != 10 {
		t.Errorf("override not applied: %d", next.MinServiceTrains)
	}
	if th.MinServiceTrains != DefaultThresholds().MinServiceTrains {
		t.Errorf("receiver mutated: %d", th.MinServiceTrains)
	}
}

func TestWithConstraintUnknownName(t *testing.T) {
	th := DefaultThresholds()
	if _, ok := th.WithConstraint("no_such_threshold", 1); ok {
		t.Fatal("unknown constraint accepted")
	}
}

func TestThresholdsValidate(t *testing.T) {
	th := DefaultThresholds()
	if err := th.Validate(); err != nil {
		t.Fatalf("default thresholds invalid: %v", err)
	}
	th.MinServiceTrains = th.TotalTrainsets + 1
	if err := th.Validate(); err == nil {
		t.Fatal("expected error for service floor above fleet size")
	}
	th = Thresholds{}
	if err := th.Validate(); err == nil {
		t.Fatal("expected error for zero thresholds")
	}
}

func TestThresholdsValidateServiceSlack(t *testing.T) {
	th := DefaultThresholds()
	th.ServiceSlackTrains = -1
	if err := th.Validate(); err == nil {
		t.Fatal("expected error for negative slack")
	}
	th.ServiceSlackTrains = th.TotalTrainsets - th.MinServiceTrains + 1
	if err := th.Validate(); err == nil {
		t.Fatal("expected error for floor plus slack above fleet size")
	}
	th.ServiceSlackTrains = 2
	if err := th.Validate(); err != nil {
		t.Fatalf("valid slack rejected: %v", err)
	}
}

func TestWithConstraintServiceSlack(t *testing.T) {
	th := DefaultThresholds()
	next, ok := th.WithConstraint(ConstraintServiceSlackTrains, 2)
	if !ok {
		t.Fatal("service_slack_trains not recognized")
	}
	if next.ServiceSlackTrains != 2 {
		t.Errorf("override not applied: %d", next.ServiceSlackTrains)
	}
}
