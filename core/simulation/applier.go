package simulation

import (
	"strconv"
	"strings"
	"time"

	"github.com/transitflow/depotplan/core/logger"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
)

// Trainset fields accepted by scenario parameters.
const (
	FieldStatus               = "status"
	FieldOperationalClearance = "operational_clearance"
	FieldFitnessDays          = "fitness_days"
	FieldCurrentMileageKm     = "current_mileage_km"
	FieldBrandingActualHours  = "branding_actual_hours"
	FieldPunctualityPct       = "punctuality_pct"
)

// ScenarioApplier produces a modified fleet snapshot and thresholds from a
// baseline plus scenario overrides. It is a pure function: the baseline slice
// and the given thresholds are never mutated.
type ScenarioApplier struct {
	log logger.Logger
}

// NewScenarioApplier returns an applier logging skipped overrides as
// warnings.
func NewScenarioApplier(log logger.Logger) *ScenarioApplier {
	return &ScenarioApplier{log: log}
}

// Apply returns a deep-copied fleet with all recognized parameter overrides
// applied, a copied thresholds value with all recognized constraint changes
// applied, and the number of overrides that matched. Unknown trainset ids,
// fields or constraint names are skipped with a warning, not errors.
func (a *ScenarioApplier) Apply(baseline []model.Trainset, th optimizer.Thresholds, sc model.Scenario, now time.Time) ([]model.Trainset, optimizer.Thresholds, int) {
	fleet := make([]model.Trainset, len(baseline))
	index := make(map[string]int, len(baseline))
	for i, ts := range baseline {
		fleet[i] = ts.Clone()
		index[ts.ID] = i
	}

	applied := 0
	for _, p := range sc.Parameters {
		i, ok := index[p.TrainsetID]
		if !ok {
			a.log.Warnf("scenario %s: unknown trainset %s, override skipped", sc.ID, p.TrainsetID)
			continue
		}
		if a.applyField(&fleet[i], p, now) {
			applied++
		} else {
			a.log.Warnf("scenario %s: unsupported field %q on trainset %s", sc.ID, p.Field, p.TrainsetID)
		}
	}

	for _, c := range sc.ConstraintChanges {
		next, ok := th.WithConstraint(c.Name, c.NewValue)
		if !ok {
			a.log.Warnf("scenario %s: unknown constraint %q, change skipped", sc.ID, c.Name)
			continue
		}
		th = next
		applied++
	}
	return fleet, th, applied
}

func (a *ScenarioApplier) applyField(ts *model.Trainset, p model.ScenarioParameter, now time.Time) bool {
	switch p.Field {
	case FieldStatus:
		ts.Status = model.TrainsetStatus(strings.ToUpper(p.Value))
	case FieldOperationalClearance:
		v, err := strconv.ParseBool(p.Value)
		if err != nil {
			return false
		}
		ts.OperationalClearance = v
	case FieldFitnessDays:
		days, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return false
		}
		until := now.Add(time.Duration(days*24) * time.Hour)
		if ts.Fitness == nil {
			ts.Fitness = &model.FitnessCertificate{ValidFrom: now}
		}
		ts.Fitness.ValidUntil = until
	case FieldCurrentMileageKm:
		km, err := strconv.ParseFloat(p.Value, 64)
		if err != nil || km < 0 {
			return false
		}
		ts.CurrentMileageKm = km
	case FieldBrandingActualHours:
		h, err := strconv.ParseFloat(p.Value, 64)
		if err != nil || ts.Branding == nil {
			return false
		}
		ts.Branding.ActualHours = h
	case FieldPunctualityPct:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return false
		}
		ts.History.PunctualityPct = v
	default:
		return false
	}
	return true
}

// supportedField reports whether the applier understands a scenario
// parameter field name.
func supportedField(name string) bool {
	switch name {
	case FieldStatus, FieldOperationalClearance, FieldFitnessDays,
		FieldCurrentMileageKm, FieldBrandingActualHours, FieldPunctualityPct:
		return true
	}
	return false
}

// Touches reports how many parameter overrides name both a trainset present
// in the baseline and a supported field, and how many constraint changes name
// known thresholds. Used to reject empty scenarios before simulation starts.
func Touches(baseline []model.Trainset, th optimizer.Thresholds, sc model.Scenario) (params, constraints int) {
	ids := make(map[string]bool, len(baseline))
	for _, ts := range baseline {
		ids[ts.ID] = true
	}
	for _, p := range sc.Parameters {
		if ids[p.TrainsetID] && supportedField(p.Field) {
			params++
		}
	}
	for _, c := range sc.ConstraintChanges {
		if _, ok := th.WithConstraint(c.Name, c.NewValue); ok {
			constraints++
		}
	}
	return params, constraints
}
