package simulation

import (
	"math"

	"github.com/transitflow/depotplan/core/model"
)

// Metric names in canonical reporting order.
const (
	MetricInService           = "in_service"
	MetricMaintenance         = "maintenance"
	MetricCleaning            = "cleaning"
	MetricInspection          = "inspection"
	MetricStandby             = "standby"
	MetricShuntingMoves       = "shunting_moves"
	MetricEnergyKWh           = "energy_kwh"
	MetricOperatingCost       = "operating_cost"
	MetricPunctualityPct      = "punctuality_pct"
	MetricBrandingCompliance  = "branding_compliance_pct"
	MetricMaintenanceBacklog  = "maintenance_backlog"
	MetricFitnessRiskCount    = "fitness_risk_count"
)

type metricDef struct {
	name           string
	higherIsBetter bool
	value          func(model.MetricsSnapshot) float64
}

// metricTable fixes both the reporting order and the polarity of every
// metric: service, punctuality and branding improve upward; everything that
// measures cost, load or risk improves downward.
var metricTable = []metricDef{
	{MetricInService, true, func(s model.MetricsSnapshot) float64 { return float64(s.InService) }},
	{MetricMaintenance, false, func(s model.MetricsSnapshot) float64 { return float64(s.Maintenance) }},
	{MetricCleaning, false, func(s model.MetricsSnapshot) float64 { return float64(s.Cleaning) }},
	{MetricInspection, false, func(s model.MetricsSnapshot) float64 { return float64(s.Inspection) }},
	{MetricStandby, false, func(s model.MetricsSnapshot) float64 { return float64(s.Standby) }},
	{MetricShuntingMoves, false, func(s model.MetricsSnapshot) float64 { return float64(s.ShuntingMoves) }},
	{MetricEnergyKWh, false, func(s model.MetricsSnapshot) float64 { return s.EnergyKWh }},
	{MetricOperatingCost, false, func(s model.MetricsSnapshot) float64 { return s.OperatingCost }},
	{MetricPunctualityPct, true, func(s model.MetricsSnapshot) float64 { return s.PunctualityPct }},
	{MetricBrandingCompliance, true, func(s model.MetricsSnapshot) float64 { return s.BrandingCompliancePct }},
	{MetricMaintenanceBacklog, false, func(s model.MetricsSnapshot) float64 { return float64(s.MaintenanceBacklog) }},
	{MetricFitnessRiskCount, false, func(s model.MetricsSnapshot) float64 { return float64(s.FitnessRiskCount) }},
}

// MetricsDifferencer computes per-metric deltas and impact classification
// between a baseline and a simulated snapshot.
type MetricsDifferencer struct {
	epsilon float64
}

// NewMetricsDifferencer uses the policy's neutral epsilon to keep
// floating-point flutter from misclassifying equal values.
func NewMetricsDifferencer(p Policy) *MetricsDifferencer {
	return &MetricsDifferencer{epsilon: p.NeutralEpsilon}
}

// Diff returns one difference per metric in canonical order. Differencing is
// antisymmetric: swapping the inputs negates differences and flips non-neutral
// impacts.
func (d *MetricsDifferencer) Diff(baseline, simulated model.MetricsSnapshot) []model.MetricDifference {
	out := make([]model.MetricDifference, 0, len(metricTable))
	for _, def := range metricTable {
		b, s := def.value(baseline), def.value(simulated)
		diff := s - b
		md := model.MetricDifference{
			Metric:        def.name,
			Baseline:      b,
			Simulated:     s,
			Difference:    round2(diff),
			PercentChange: percentChange(b, diff, d.epsilon),
			Impact:        classify(diff, def.higherIsBetter, d.epsilon),
		}
		out = append(out, md)
	}
	return out
}

func classify(diff float64, higherIsBetter bool, eps float64) model.Impact {
	if math.Abs(diff) < eps {
		return model.ImpactNeutral
	}
	if (diff > 0) == higherIsBetter {
		return model.ImpactPositive
	}
	return model.ImpactNegative
}

// percentChange handles a zero baseline by convention: a negligible delta is
// 0%, anything else is reported as a full +/-100% swing.
func percentChange(base, diff, eps float64) float64 {
	if base == 0 {
		if math.Abs(diff) < eps {
			return 0
		}
		if diff > 0 {
			return 100
		}
		return -100
	}
	return round2(diff / math.Abs(base) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
