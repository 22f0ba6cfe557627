package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// Evaluation is the structured outcome of the per-trainset constraint checks.
// All risk contributions are normalized to [0,1].
type Evaluation struct {
	TrainsetID         string
	Eligible           bool
	FitnessRisk        float64
	MaintenanceUrgency float64
	MileageScore       float64
	BrandingScore      float64
	ShuntingCost       float64
	CleaningDue        bool
	InspectionDue      bool
	MissingData        bool
	Notes              []string
}

// ConstraintEvaluator runs the hard and soft rule checks for a single
// trainset. It is pure: no shared state, no side effects.
type ConstraintEvaluator struct {
	thresholds Thresholds
}

// NewConstraintEvaluator returns an evaluator bound to the given policy.
func NewConstraintEvaluator(th Thresholds) *ConstraintEvaluator {
	return &ConstraintEvaluator{thresholds: th}
}

// Evaluate computes eligibility and risk contributions for one trainset.
// A trainset without operational clearance, with an expired or missing fitness
// certificate, or flagged for emergency repair is never eligible for revenue
// service.
func (e *ConstraintEvaluator) Evaluate(ts model.Trainset, stats FleetStats, now time.Time) Evaluation {
	ev := Evaluation{TrainsetID: ts.ID, Eligible: true}

	switch {
	case ts.Fitness == nil:
		// Missing record: conservative default, maximal risk.
		ev.FitnessRisk = 1
		ev.Eligible = false
		ev.MissingData = true
		ev.Notes = append(ev.Notes, "fitness record missing, treated as expired")
	case ts.Fitness.Expired(now):
		ev.FitnessRisk = 1
		ev.Eligible = false
		ev.Notes = append(ev.Notes, "fitness certificate expired")
	default:
		days := ts.Fitness.DaysToExpiry(now)
		ev.FitnessRisk = clamp01((float64(e.thresholds.CriticalFitnessDays) - days) / float64(e.thresholds.CriticalFitnessDays))
	}

	if !ts.OperationalClearance {
		ev.Eligible = false
		ev.Notes = append(ev.Notes, "operational clearance withheld")
	}
	if ts.Status == model.StatusEmergencyRepair || ts.Status == model.StatusOutOfService {
		ev.Eligible = false
		ev.MaintenanceUrgency = 1
		ev.Notes = append(ev.Notes, fmt.Sprintf("status %s", ts.Status))
	} else {
		ev.MaintenanceUrgency = maintenanceUrgency(ts, now)
	}

	dev := math.Abs(ts.CurrentMileageKm - stats.MeanMileageKm)
	ev.MileageScore = clamp01(1 - dev/e.thresholds.MaxMileageDeviationKm)

	ev.BrandingScore = brandingPriority(ts.Branding, now)
	ev.ShuntingCost = shuntingCost(ts.Position, model.TrackService)

	if e.thresholds.CleaningIntervalDays > 0 && !ts.LastCleaning.IsZero() {
		ev.CleaningDue = now.Sub(ts.LastCleaning) >= time.Duration(e.thresholds.CleaningIntervalDays)*24*time.Hour
	}
	if e.thresholds.InspectionIntervalDays > 0 && !ts.LastInspection.IsZero() {
		ev.InspectionDue = now.Sub(ts.LastInspection) >= time.Duration(e.thresholds.InspectionIntervalDays)*24*time.Hour
	}
	return ev
}

// maintenanceUrgency aggregates pending job cards into a [0,1] urgency.
// Priorities contribute fixed increments; overdue cards add on top.
func maintenanceUrgency(ts model.Trainset, now time.Time) float64 {
	urgency := 0.0
	for _, j := range ts.JobCards {
		if j.Closed {
			continue
		}
		switch j.Priority {
		case model.PriorityCritical:
			urgency += 1.0
		case model.PriorityHigh:
			urgency += 0.6
		case model.PriorityMedium:
			urgency += 0.3
		case model.PriorityLow:
			urgency += 0.1
		}
		if j.Overdue(now) {
			urgency += 0.15
		}
	}
	return clamp01(urgency)
}

// brandingPriority rewards active contracts behind their exposure target as
// the deadline approaches.
func brandingPriority(b *model.BrandingContract, now time.Time) float64 {
	if b == nil || !b.Active || b.TargetHours <= 0 {
		return 0
	}
	shortfall := b.ExposureShortfall() / b.TargetHours
	if shortfall == 0 {
		return 0
	}
	daysLeft := b.Deadline.Sub(now).Hours() / 24
	urgency := clamp01(1 - daysLeft/14)
	return clamp01(shortfall * (0.5 + 0.5*urgency))
}

// shuntingCost is the normalized movement cost of re-homing a trainset from
// its current track class to the target class. A cross-class move costs one
// unit; same class costs nothing.
func shuntingCost(pos model.StablingPosition, target model.TrackClass) float64 {
	if pos.Track == target {
		return 0
	}
	return 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
