package optimizer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// ConflictDetector annotates assignments with violated or near-violated hard
// constraints. It never changes a decision, keeping assignment logic and
// diagnostics independently testable.
type ConflictDetector struct {
	thresholds Thresholds
}

// NewConflictDetector returns a detector bound to the given policy.
func NewConflictDetector(th Thresholds) *ConflictDetector {
	return &ConflictDetector{thresholds: th}
}

// Detect returns the conflicts for one trainset given its assigned category.
// The result is sorted by kind then detail so explanations are deterministic.
func (d *ConflictDetector) Detect(ts model.Trainset, ev Evaluation, cat model.DecisionCategory, stats FleetStats, now time.Time) []model.Conflict {
	var out []model.Conflict
	add := func(kind model.ConflictKind, detail string) {
		out = append(out, model.Conflict{Kind: kind, TrainsetID: ts.ID, Detail: detail})
	}

	if ev.MissingData {
		add(model.ConflictMissingData, "fitness record absent, conservative default applied")
	}
	if ts.Fitness != nil {
		days := ts.Fitness.DaysToExpiry(now)
		if ts.Fitness.Expired(now) {
			add(model.ConflictFitnessExpired, "fitness certificate expired")
		} else if cat == model.CategoryInService && days <= float64(d.thresholds.CriticalFitnessDays) {
			add(model.ConflictFitnessExpiring,
				fmt.Sprintf("in service with fitness expiring in %.0f days", math.Ceil(days)))
		}
	}
	if !ts.OperationalClearance && cat == model.CategoryInService {
		add(model.ConflictNotCleared, "in service without operational clearance")
	}
	if dev := math.Abs(ts.CurrentMileageKm - stats.MeanMileageKm); dev > d.thresholds.MaxMileageDeviationKm {
		add(model.ConflictMileageImbalance,
			fmt.Sprintf("mileage deviates %.0f km from fleet mean (limit %.0f)", dev, d.thresholds.MaxMileageDeviationKm))
	}
	if b := ts.Branding; b != nil && b.Active && b.ExposureShortfall() > 0 &&
		cat != model.CategoryInService && !b.Deadline.IsZero() &&
		b.Deadline.Sub(now) <= time.Duration(d.thresholds.CriticalFitnessDays)*24*time.Hour {
		add(model.ConflictBrandingShortfall,
			fmt.Sprintf("branding contract %.0fh short with imminent deadline, trainset not in service", b.ExposureShortfall()))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Detail < out[j].Detail
	})
	return out
}

// FleetConflicts converts fleet-level assignment findings into conflicts.
func (d *ConflictDetector) FleetConflicts(res AssignmentResult) []model.Conflict {
	var out []model.Conflict
	if res.ServiceShortfall {
		out = append(out, model.Conflict{
			Kind:   model.ConflictServiceShortfall,
			Detail: fmt.Sprintf("eligible fleet below the %d-trainset service floor", d.thresholds.MinServiceTrains),
		})
	}
	if res.OverBudget {
		out = append(out, model.Conflict{
			Kind:   model.ConflictShuntingBudget,
			Detail: fmt.Sprintf("planned moves exceed nightly budget of %d", d.thresholds.MaxShuntingMoves),
		})
	}
	return out
}
