package optimizer

import (
	"math"
	"testing"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

var testNow = time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)

func healthyTrainset(id string) model.Trainset {
	return model.Trainset{
		ID:                   id,
		Status:               model.StatusActive,
		OperationalClearance: true,
		CurrentMileageKm:     60000,
		TotalMileageKm:       300000,
		Position:             model.StablingPosition{Track: model.TrackService, Bay: 1},
		Fitness: &model.FitnessCertificate{
			ValidFrom:  testNow.AddDate(0, -6, 0),
			ValidUntil: testNow.AddDate(0, 0, 30),
		},
		LastCleaning:   testNow,
		LastInspection: testNow,
	}
}

func TestEvaluateHealthy(t *testing.T) {
	ev := NewConstraintEvaluator(DefaultThresholds()).
		Evaluate(healthyTrainset("TS-001"), FleetStats{MeanMileageKm: 60000}, testNow)
	if !ev.Eligible {
		t.Fatal("healthy trainset must be eligible")
	}
	if ev.FitnessRisk != 0 {
		t.Errorf("fitness risk = %v, want 0", ev.FitnessRisk)
	}
	if ev.MileageScore != 1 {
		t.Errorf("mileage score = %v, want 1", ev.MileageScore)
	}
	if ev.MaintenanceUrgency != 0 {
		t.Errorf("urgency = %v, want 0", ev.MaintenanceUrgency)
	}
}

func TestEvaluateMissingFitness(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.Fitness = nil
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{}, testNow)
	if ev.Eligible {
		t.Fatal("missing fitness must disqualify")
	}
	if ev.FitnessRisk != 1 {
		t.Errorf("fitness risk = %v, want 1", ev.FitnessRisk)
	}
	if !ev.MissingData {
		t.Error("missing data flag not set")
	}
}

func TestEvaluateExpiredFitness(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.Fitness.ValidUntil = testNow.AddDate(0, 0, -1)
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{}, testNow)
	if ev.Eligible {
		t.Fatal("expired fitness must disqualify")
	}
	if ev.FitnessRisk != 1 {
		t.Errorf("fitness risk = %v, want 1", ev.FitnessRisk)
	}
}

func TestEvaluateFitnessRiskWindow(t *testing.T) {
	ts := healthyTrainset("TS-001")
	// 3.5 days to expiry with a 7-day critical window: risk 0.5.
	ts.Fitness.ValidUntil = testNow.Add(84 * time.Hour)
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{}, testNow)
	if math.Abs(ev.FitnessRisk-0.5) > 1e-9 {
		t.Errorf("fitness risk = %v, want 0.5", ev.FitnessRisk)
	}
	if !ev.Eligible {
		t.Error("expiring but valid certificate keeps eligibility")
	}
}

func TestEvaluateNoClearance(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.OperationalClearance = false
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{}, testNow)
	if ev.Eligible {
		t.Fatal("withheld clearance must disqualify")
	}
}

func TestEvaluateEmergencyRepair(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.Status = model.StatusEmergencyRepair
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{}, testNow)
	if ev.Eligible {
		t.Fatal("emergency repair must disqualify")
	}
	if ev.MaintenanceUrgency != 1 {
		t.Errorf("urgency = %v, want 1", ev.MaintenanceUrgency)
	}
}

func TestMaintenanceUrgency(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.JobCards = []model.JobCard{
		{ID: "a", Priority: model.PriorityMedium, DueDate: testNow.AddDate(0, 0, 5)},
		{ID: "b", Priority: model.PriorityCritical, Closed: true},
	}
	if got := maintenanceUrgency(ts, testNow); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("urgency = %v, want 0.3 (closed cards ignored)", got)
	}

	ts.JobCards = []model.JobCard{
		{ID: "c", Priority: model.PriorityCritical, DueDate: testNow.AddDate(0, 0, -1)},
	}
	if got := maintenanceUrgency(ts, testNow); got != 1 {
		t.Errorf("urgency = %v, want 1 (clamped)", got)
	}
}

func TestBrandingPriority(t *testing.T) {
	if got := brandingPriority(nil, testNow); got != 0 {
		t.Errorf("nil contract priority = %v, want 0", got)
	}
	met := &model.BrandingContract{Active: true, TargetHours: 100, ActualHours: 100, Deadline: testNow.AddDate(0, 0, 7)}
	if got := brandingPriority(met, testNow); got != 0 {
		t.Errorf("met contract priority = %v, want 0", got)
	}
	// Half the exposure owed with the deadline already reached: full urgency.
	urgent := &model.BrandingContract{Active: true, TargetHours: 100, ActualHours: 50, Deadline: testNow}
	if got := brandingPriority(urgent, testNow); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("urgent contract priority = %v, want 0.5", got)
	}
}

func TestCleaningInspectionDue(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ts.LastCleaning = testNow.AddDate(0, 0, -4)
	ts.LastInspection = testNow.AddDate(0, 0, -20)
	ev := NewConstraintEvaluator(DefaultThresholds()).Evaluate(ts, FleetStats{MeanMileageKm: 60000}, testNow)
	if !ev.CleaningDue {
		t.Error("cleaning overdue after 4 days on a 3-day interval")
	}
	if !ev.InspectionDue {
		t.Error("inspection overdue after 20 days on a 15-day interval")
	}
}

func TestShuntingCost(t *testing.T) {
	pos := model.StablingPosition{Track: model.TrackStorage}
	if got := shuntingCost(pos, model.TrackService); got != 1 {
		t.Errorf("cross-class cost = %v, want 1", got)
	}
	pos.Track = model.TrackService
	if got := shuntingCost(pos, model.TrackService); got != 0 {
		t.Errorf("same-class cost = %v, want 0", got)
	}
}
