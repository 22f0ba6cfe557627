package optimizer

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/transitflow/depotplan/core/model"
)

// FleetStats summarizes the mileage distribution of the whole fleet for one
// run.
type FleetStats struct {
	MeanMileageKm   float64
	StdDevMileageKm float64
}

// ComputeFleetStats derives the mileage statistics used by the mileage
// balance objective.
func ComputeFleetStats(fleet []model.Trainset) FleetStats {
	if len(fleet) == 0 {
		return FleetStats{}
	}
	km := make([]float64, len(fleet))
	for i, ts := range fleet {
		km[i] = ts.CurrentMileageKm
	}
	mean, std := stat.MeanStdDev(km, nil)
	if len(fleet) == 1 {
		std = 0
	}
	return FleetStats{MeanMileageKm: mean, StdDevMileageKm: std}
}

// Candidate pairs a trainset with its evaluation and composite score.
type Candidate struct {
	Trainset model.Trainset
	Eval     Evaluation
	Score    float64
	Reasons  []string
}

// ObjectiveScorer computes the bounded weighted score per trainset. Sub-scores
// are normalized to [0,1] before weighting; the composite is reported on
// 0-100.
type ObjectiveScorer struct {
	weights Weights
}

// NewObjectiveScorer returns a scorer for the given weights. Weights must
// already be validated.
func NewObjectiveScorer(w Weights) *ObjectiveScorer {
	return &ObjectiveScorer{weights: w}
}

// Score computes the composite score and the ordered reason list for one
// trainset. Reason order is fixed for reproducible explanations.
func (s *ObjectiveScorer) Score(ts model.Trainset, ev Evaluation) (float64, []string) {
	w := s.weights
	composite := w.Fitness*(1-ev.FitnessRisk) +
		w.Mileage*ev.MileageScore +
		w.Maintenance*(1-ev.MaintenanceUrgency) +
		w.Branding*ev.BrandingScore +
		w.Shunting*(1-ev.ShuntingCost)
	score := clamp01(composite) * 100

	var reasons []string
	if ev.FitnessRisk >= 1 {
		reasons = append(reasons, "fitness certificate invalid")
	} else if ev.FitnessRisk > 0 {
		reasons = append(reasons, fmt.Sprintf("fitness certificate nearing expiry (risk %.2f)", ev.FitnessRisk))
	} else {
		reasons = append(reasons, "fitness certificate valid")
	}
	if ev.MileageScore >= 0.8 {
		reasons = append(reasons, "mileage close to fleet average")
	} else if ev.MileageScore <= 0.2 {
		reasons = append(reasons, "mileage far from fleet average")
	}
	if ev.MaintenanceUrgency >= 0.6 {
		reasons = append(reasons, fmt.Sprintf("high maintenance urgency (%.2f)", ev.MaintenanceUrgency))
	} else if ev.MaintenanceUrgency == 0 {
		reasons = append(reasons, "no pending maintenance")
	}
	if ev.BrandingScore > 0 {
		reasons = append(reasons, fmt.Sprintf("branding exposure behind target (priority %.2f)", ev.BrandingScore))
	}
	if ev.ShuntingCost == 0 {
		reasons = append(reasons, "already stabled on a service track")
	}
	for _, n := range ev.Notes {
		reasons = append(reasons, n)
	}
	return score, reasons
}

// Rank sorts candidates by score descending with a deterministic tie-break:
// fewer pending job cards first, then lower mileage, then lexical id. The
// total order makes golden-file tests reproducible.
func Rank(list []Candidate) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if pa, pb := a.Trainset.PendingJobCards(), b.Trainset.PendingJobCards(); pa != pb {
			return pa < pb
		}
		if a.Trainset.CurrentMileageKm != b.Trainset.CurrentMileageKm {
			return a.Trainset.CurrentMileageKm < b.Trainset.CurrentMileageKm
		}
		return a.Trainset.ID < b.Trainset.ID
	})
}
