package optimizer

import (
	"fmt"
	"math"
)

// Weights are the five objective weights. They must be non-negative and sum
// to 1 within a small tolerance.
type Weights struct {
	Fitness     float64 `json:"fitness" yaml:"fitness"`
	Mileage     float64 `json:"mileage" yaml:"mileage"`
	Maintenance float64 `json:"maintenance" yaml:"maintenance"`
	Branding    float64 `json:"branding" yaml:"branding"`
	Shunting    float64 `json:"shunting" yaml:"shunting"`
}

// DefaultWeights returns the reference configuration.
func DefaultWeights() Weights {
	return Weights{
		Fitness:     0.25,
		Mileage:     0.20,
		Maintenance: 0.30,
		Branding:    0.15,
		Shunting:    0.10,
	}
}

// Validate checks the weights are usable. Malformed weights are a
// configuration error and fail fast.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"fitness":     w.Fitness,
		"mileage":     w.Mileage,
		"maintenance": w.Maintenance,
		"branding":    w.Branding,
		"shunting":    w.Shunting,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, v)
		}
	}
	sum := w.Fitness + w.Mileage + w.Maintenance + w.Branding + w.Shunting
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// Thresholds are the scalar policy values forming the hard-constraint
// boundary. Read-only during a run; scenario overrides copy first.
type Thresholds struct {
	CriticalFitnessDays    int     `json:"critical_fitness_days" yaml:"critical_fitness_days"`
	MaxMileageDeviationKm  float64 `json:"max_mileage_deviation_km" yaml:"max_mileage_deviation_km"`
	MinServiceTrains       int     `json:"min_service_trains" yaml:"min_service_trains"`
	ServiceSlackTrains     int     `json:"service_slack_trains" yaml:"service_slack_trains"`
	MaxMaintenanceSlots    int     `json:"max_maintenance_slots" yaml:"max_maintenance_slots"`
	MaxCleaningSlots       int     `json:"max_cleaning_slots" yaml:"max_cleaning_slots"`
	MaxInspectionSlots     int     `json:"max_inspection_slots" yaml:"max_inspection_slots"`
	MaxShuntingMoves       int     `json:"max_shunting_moves" yaml:"max_shunting_moves"`
	BrandingTargetPct      float64 `json:"branding_target_pct" yaml:"branding_target_pct"`
	TotalTrainsets         int     `json:"total_trainsets" yaml:"total_trainsets"`
	CleaningIntervalDays   int     `json:"cleaning_interval_days" yaml:"cleaning_interval_days"`
	InspectionIntervalDays int     `json:"inspection_interval_days" yaml:"inspection_interval_days"`
}

// DefaultThresholds returns the reference depot policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalFitnessDays:    7,
		MaxMileageDeviationKm:  5000,
		MinServiceTrains:       18,
		MaxMaintenanceSlots:    5,
		MaxCleaningSlots:       3,
		MaxInspectionSlots:     2,
		MaxShuntingMoves:       12,
		BrandingTargetPct:      90,
		TotalTrainsets:         25,
		CleaningIntervalDays:   3,
		InspectionIntervalDays: 15,
	}
}

// SetDefaults fills zero values with the reference policy.
func (t *Thresholds) SetDefaults() {
	def := DefaultThresholds()
	if t.CriticalFitnessDays == 0 {
		t.CriticalFitnessDays = def.CriticalFitnessDays
	}
	if t.MaxMileageDeviationKm == 0 {
		t.MaxMileageDeviationKm = def.MaxMileageDeviationKm
	}
	if t.MinServiceTrains == 0 {
		t.MinServiceTrains = def.MinServiceTrains
	}
	if t.MaxMaintenanceSlots == 0 {
		t.MaxMaintenanceSlots = def.MaxMaintenanceSlots
	}
	if t.MaxCleaningSlots == 0 {
		t.MaxCleaningSlots = def.MaxCleaningSlots
	}
	if t.MaxInspectionSlots == 0 {
		t.MaxInspectionSlots = def.MaxInspectionSlots
	}
	if t.MaxShuntingMoves == 0 {
		t.MaxShuntingMoves = def.MaxShuntingMoves
	}
	if t.BrandingTargetPct == 0 {
		t.BrandingTargetPct = def.BrandingTargetPct
	}
	if t.TotalTrainsets == 0 {
		t.TotalTrainsets = def.TotalTrainsets
	}
	if t.CleaningIntervalDays == 0 {
		t.CleaningIntervalDays = def.CleaningIntervalDays
	}
	if t.InspectionIntervalDays == 0 {
		t.InspectionIntervalDays = def.InspectionIntervalDays
	}
}

// Validate checks mandatory fields.
func (t Thresholds) Validate() error {
	if t.TotalTrainsets <= 0 {
		return fmt.Errorf("total_trainsets must be positive")
	}
	if t.MinServiceTrains <= 0 || t.MinServiceTrains > t.TotalTrainsets {
		return fmt.Errorf("min_service_trains must be in 1..%d", t.TotalTrainsets)
	}
	if t.ServiceSlackTrains < 0 || t.MinServiceTrains+t.ServiceSlackTrains > t.TotalTrainsets {
		return fmt.Errorf("service_slack_trains must be in 0..%d", t.TotalTrainsets-t.MinServiceTrains)
	}
	if t.MaxMaintenanceSlots < 0 || t.MaxShuntingMoves < 0 {
		return fmt.Errorf("capacity limits must not be negative")
	}
	if t.CriticalFitnessDays <= 0 {
		return fmt.Errorf("critical_fitness_days must be positive")
	}
	if t.MaxMileageDeviationKm <= 0 {
		return fmt.Errorf("max_mileage_deviation_km must be positive")
	}
	return nil
}

// Constraint names accepted by WithConstraint. They match the wire names used
// in scenario definitions.
const (
	ConstraintMinServiceTrains    = "min_service_trains"
	ConstraintServiceSlackTrains  = "service_slack_trains"
	ConstraintMaxMaintenanceSlots = "max_maintenance_slots"
	ConstraintMaxCleaningSlots    = "max_cleaning_slots"
	ConstraintMaxInspectionSlots  = "max_inspection_slots"
	ConstraintMaxShuntingMoves    = "max_shunting_moves"
	ConstraintCriticalFitnessDays = "critical_fitness_days"
	ConstraintMaxMileageDeviation = "max_mileage_deviation_km"
	ConstraintBrandingTargetPct   = "branding_target_pct"
)

// WithConstraint returns a copy with the named threshold replaced. The second
// return value reports whether the name was recognized. The receiver is never
// modified.
func (t Thresholds) WithConstraint(name string, value float64) (Thresholds, bool) {
	switch name {
	case ConstraintMinServiceTrains:
		t.MinServiceTrains = int(value)
	case ConstraintServiceSlackTrains:
		t.ServiceSlackTrains = int(value)
	case ConstraintMaxMaintenanceSlots:
		t.MaxMaintenanceSlots = int(value)
	case ConstraintMaxCleaningSlots:
		t.MaxCleaningSlots = int(value)
	case ConstraintMaxInspectionSlots:
		t.MaxInspectionSlots = int(value)
	case ConstraintMaxShuntingMoves:
		t.MaxShuntingMoves = int(value)
	case ConstraintCriticalFitnessDays:
		t.CriticalFitnessDays = int(value)
	case ConstraintMaxMileageDeviation:
		t.MaxMileageDeviationKm = value
	case ConstraintBrandingTargetPct:
		t.BrandingTargetPct = value
	default:
		return t, false
	}
	return t, true
}

// Config groups the planner configuration loaded from file.
type Config struct {
	Weights    Weights    `json:"weights" yaml:"weights"`
	Thresholds Thresholds `json:"thresholds" yaml:"thresholds"`
}
