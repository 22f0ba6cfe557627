package optimizer

import (
	"math"
	"testing"

	"github.com/transitflow/depotplan/core/model"
)

func TestComputeFleetStats(t *testing.T) {
	fleet := []model.Trainset{
		{ID: "a", CurrentMileageKm: 100},
		{ID: "b", CurrentMileageKm: 200},
	}
	stats := ComputeFleetStats(fleet)
	if stats.MeanMileageKm != 150 {
		t.Errorf("mean = %v, want 150", stats.MeanMileageKm)
	}
	if stats.StdDevMileageKm == 0 {
		t.Error("stddev should be non-zero for a spread fleet")
	}
	single := ComputeFleetStats(fleet[:1])
	if single.StdDevMileageKm != 0 {
		t.Errorf("single-member stddev = %v, want 0", single.StdDevMileageKm)
	}
}

func TestScoreHealthyTrainset(t *testing.T) {
	ts := healthyTrainset("TS-001")
	ev := NewConstraintEvaluator(DefaultThresholds()).
		Evaluate(ts, FleetStats{MeanMileageKm: ts.CurrentMileageKm}, testNow)
	score, reasons := NewObjectiveScorer(DefaultWeights()).Score(ts, ev)
	// fitness 0.25 + mileage 0.20 + maintenance 0.30 + shunting 0.10, no branding.
	if math.Abs(score-85) > 1e-9 {
		t.Errorf("score = %v, want 85", score)
	}
	if len(reasons) == 0 {
		t.Fatal("no reasons produced")
	}
	if reasons[0] != "fitness certificate valid" {
		t.Errorf("first reason = %q", reasons[0])
	}
}

func TestScoreBounds(t *testing.T) {
	scorer := NewObjectiveScorer(DefaultWeights())
	worst := Evaluation{FitnessRisk: 1, MaintenanceUrgency: 1, ShuntingCost: 1}
	if score, _ := scorer.Score(model.Trainset{ID: "w"}, worst); score < 0 || score > 100 {
		t.Errorf("worst-case score %v out of bounds", score)
	}
	best := Evaluation{MileageScore: 1, BrandingScore: 1}
	if score, _ := scorer.Score(model.Trainset{ID: "b"}, best); score < 0 || score > 100 {
		t.Errorf("best-case score %v out of bounds", score)
	}
}

func TestRankTieBreak(t *testing.T) {
	list := []Candidate{
		{Trainset: model.Trainset{ID: "c", CurrentMileageKm: 100}, Score: 80},
		{Trainset: model.Trainset{ID: "b", CurrentMileageKm: 100}, Score: 80},
		{Trainset: model.Trainset{ID: "a", CurrentMileageKm: 200}, Score: 80},
		{Trainset: model.Trainset{ID: "d", CurrentMileageKm: 50,
			JobCards: []model.JobCard{{ID: "jc"}}}, Score: 80},
		{Trainset: model.Trainset{ID: "e"}, Score: 90},
	}
	Rank(list)
	got := make([]string, len(list))
	for i, c := range list {
		got[i] = c.Trainset.ID
	}
	// Score first, then fewer pending cards, then lower mileage, then id.
	want := []string{"e", "b", "c", "a", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank order %v, want %v", got, want)
		}
	}
}
