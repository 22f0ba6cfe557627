package model

import (
	"time"
)

// ChangeType tags what a scenario parameter touches.
type ChangeType string

const (
	ChangeMaintenance ChangeType = "MAINTENANCE"
	ChangeFitness     ChangeType = "FITNESS"
	ChangeOperational ChangeType = "OPERATIONAL"
	ChangeConstraint  ChangeType = "CONSTRAINT"
)

// ScenarioParameter overrides one field on one trainset.
type ScenarioParameter struct {
	TrainsetID string     `json:"trainset_id" yaml:"trainset_id"`
	Field      string     `json:"field" yaml:"field"`
	Value      string     `json:"value" yaml:"value"`
	Type       ChangeType `json:"type" yaml:"type"`
}

// ConstraintChange overrides one named global threshold.
type ConstraintChange struct {
	Name     string  `json:"name" yaml:"name"`
	Original float64 `json:"original" yaml:"original"`
	NewValue float64 `json:"new_value" yaml:"new_value"`
}

// Scenario is a named what-if override set. Never mutated after creation.
type Scenario struct {
	ID                string             `json:"id" yaml:"id"`
	Name              string             `json:"name" yaml:"name"`
	Category          string             `json:"category" yaml:"category"`
	Description       string             `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters        []ScenarioParameter `json:"parameters" yaml:"parameters"`
	ConstraintChanges []ConstraintChange  `json:"constraint_changes" yaml:"constraint_changes"`
	CreatedAt         time.Time          `json:"created_at" yaml:"created_at"`
}

// MetricsSnapshot flattens one run result into comparable operational metrics.
type MetricsSnapshot struct {
	InService             int     `json:"in_service"`
	Maintenance           int     `json:"maintenance"`
	Cleaning              int     `json:"cleaning"`
	Inspection            int     `json:"inspection"`
	Standby               int     `json:"standby"`
	ShuntingMoves         int     `json:"shunting_moves"`
	EnergyKWh             float64 `json:"energy_kwh"`
	OperatingCost         float64 `json:"operating_cost"`
	PunctualityPct        float64 `json:"punctuality_pct"`
	BrandingCompliancePct float64 `json:"branding_compliance_pct"`
	MaintenanceBacklog    int     `json:"maintenance_backlog"`
	FitnessRiskCount      int     `json:"fitness_risk_count"`
}

// Impact classifies a metric delta against its polarity.
type Impact string

const (
	ImpactPositive Impact = "POSITIVE"
	ImpactNegative Impact = "NEGATIVE"
	ImpactNeutral  Impact = "NEUTRAL"
)

// MetricDifference is the baseline-vs-simulated delta for one metric.
type MetricDifference struct {
	Metric        string  `json:"metric"`
	Baseline      float64 `json:"baseline"`
	Simulated     float64 `json:"simulated"`
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
	Impact        Impact  `json:"impact"`
}

// SimulationResult holds everything produced by one what-if run. Stored keyed
// by scenario id; immutable.
type SimulationResult struct {
	ID              string             `json:"id"`
	ScenarioID      string             `json:"scenario_id"`
	ScenarioName    string             `json:"scenario_name"`
	Baseline        MetricsSnapshot    `json:"baseline"`
	Simulated       MetricsSnapshot    `json:"simulated"`
	Differences     []MetricDifference `json:"differences"`
	Recommendations []string           `json:"recommendations"`
	Confidence      float64            `json:"confidence"`
	ExecutionTime   time.Duration      `json:"execution_time"`
	CreatedAt       time.Time          `json:"created_at"`
}

// AppliedRecord marks a scenario as promoted to production.
type AppliedRecord struct {
	ID                string    `json:"id"`
	ScenarioID        string    `json:"scenario_id"`
	AppliedAt         time.Time `json:"applied_at"`
	Confidence        float64   `json:"confidence"`
	RollbackAvailable bool      `json:"rollback_available"`
}
