package model

import (
	"fmt"
	"time"
)

// DecisionCategory is the disposition assigned to a trainset for the night.
type DecisionCategory int

const (
	CategoryInService DecisionCategory = iota
	CategoryMaintenance
	CategoryCleaning
	CategoryInspection
	CategoryStandby
)

// Categories lists all dispositions in reporting order.
var Categories = []DecisionCategory{
	CategoryInService,
	CategoryMaintenance,
	CategoryCleaning,
	CategoryInspection,
	CategoryStandby,
}

func (c DecisionCategory) String() string {
	switch c {
	case CategoryInService:
		return "IN_SERVICE"
	case CategoryMaintenance:
		return "MAINTENANCE"
	case CategoryCleaning:
		return "CLEANING"
	case CategoryInspection:
		return "INSPECTION"
	case CategoryStandby:
		return "STANDBY"
	default:
		return "UNKNOWN"
	}
}

// ConflictKind is the closed set of hard-constraint findings the planner can
// attach to a decision.
type ConflictKind int

const (
	ConflictFitnessExpired ConflictKind = iota
	ConflictFitnessExpiring
	ConflictNotCleared
	ConflictMileageImbalance
	ConflictBrandingShortfall
	ConflictShuntingBudget
	ConflictServiceShortfall
	ConflictMissingData
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictFitnessExpired:
		return "FITNESS_EXPIRED"
	case ConflictFitnessExpiring:
		return "FITNESS_EXPIRING"
	case ConflictNotCleared:
		return "NOT_CLEARED"
	case ConflictMileageImbalance:
		return "MILEAGE_IMBALANCE"
	case ConflictBrandingShortfall:
		return "BRANDING_SHORTFALL"
	case ConflictShuntingBudget:
		return "SHUNTING_BUDGET"
	case ConflictServiceShortfall:
		return "SERVICE_SHORTFALL"
	case ConflictMissingData:
		return "MISSING_DATA"
	default:
		return "UNKNOWN"
	}
}

// Conflict records one violated or near-violated constraint.
type Conflict struct {
	Kind       ConflictKind `json:"kind"`
	TrainsetID string       `json:"trainset_id,omitempty"`
	Detail     string       `json:"detail"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s", c.Kind, c.Detail)
}

// AlertLevel grades fleet-wide findings.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Alert is a fleet-level finding attached to a run result.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Message string     `json:"message"`
}

// Decision is the per-trainset output of one planning run. Immutable once
// created.
type Decision struct {
	TrainsetID string           `json:"trainset_id"`
	Category   DecisionCategory `json:"category"`
	Score      float64          `json:"score"`
	Reasons    []string         `json:"reasons"`
	Conflicts  []Conflict       `json:"conflicts,omitempty"`
	Target     StablingPosition `json:"target"`
	Timestamp  time.Time        `json:"timestamp"`
}

// Summary aggregates decision counts per category.
type Summary struct {
	InService   int `json:"in_service"`
	Maintenance int `json:"maintenance"`
	Cleaning    int `json:"cleaning"`
	Inspection  int `json:"inspection"`
	Standby     int `json:"standby"`
}

// Total returns the number of trainsets covered by the summary.
func (s Summary) Total() int {
	return s.InService + s.Maintenance + s.Cleaning + s.Inspection + s.Standby
}

// Count returns the summary entry for the given category.
func (s Summary) Count(c DecisionCategory) int {
	switch c {
	case CategoryInService:
		return s.InService
	case CategoryMaintenance:
		return s.Maintenance
	case CategoryCleaning:
		return s.Cleaning
	case CategoryInspection:
		return s.Inspection
	case CategoryStandby:
		return s.Standby
	default:
		return 0
	}
}

// Result is the aggregate of one planning run. It is superseded, never
// mutated, by the next run.
type Result struct {
	RunID          string        `json:"run_id"`
	Algorithm      string        `json:"algorithm"`
	Decisions      []Decision    `json:"decisions"`
	Summary        Summary       `json:"summary"`
	ShuntingMoves  int           `json:"shunting_moves"`
	CompliancePct  float64       `json:"compliance_pct"`
	Quality        float64       `json:"quality"`
	Alerts         []Alert       `json:"alerts,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	Timestamp      time.Time     `json:"timestamp"`
}

// Decision returns the decision for the given trainset, if present.
func (r Result) Decision(id string) (Decision, bool) {
	for _, d := range r.Decisions {
		if d.TrainsetID == id {
			return d, true
		}
	}
	return Decision{}, false
}
