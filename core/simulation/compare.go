package simulation

import (
	"sort"

	"github.com/transitflow/depotplan/core/model"
)

// CompareWeights drive the composite score used to rank stored simulation
// results. Availability, punctuality and branding count positively; cost,
// energy, backlog and fitness risk count against.
type CompareWeights struct {
	Service     float64
	Punctuality float64
	Branding    float64
	Cost        float64
	Energy      float64
	Backlog     float64
	FitnessRisk float64
}

// DefaultCompareWeights returns the reference comparison policy.
func DefaultCompareWeights() CompareWeights {
	return CompareWeights{
		Service:     1.0,
		Punctuality: 0.8,
		Branding:    0.6,
		Cost:        0.7,
		Energy:      0.5,
		Backlog:     0.6,
		FitnessRisk: 0.8,
	}
}

// RankedScenario is one entry of a comparison ranking.
type RankedScenario struct {
	SimulationID string  `json:"simulation_id"`
	ScenarioID   string  `json:"scenario_id"`
	ScenarioName string  `json:"scenario_name"`
	Composite    float64 `json:"composite"`
}

// Comparison is the outcome of ranking two or more stored results.
type Comparison struct {
	Ranking       []RankedScenario  `json:"ranking"`
	BestOverall   string            `json:"best_overall"`
	BestPerMetric map[string]string `json:"best_per_metric"`
}

// ScenarioComparator ranks stored simulation results by one composite score
// for side-by-side comparison.
type ScenarioComparator struct {
	weights CompareWeights
}

// NewScenarioComparator returns a comparator with the given weights.
func NewScenarioComparator(w CompareWeights) *ScenarioComparator {
	return &ScenarioComparator{weights: w}
}

// Compare ranks the results and designates a best scenario overall and per
// metric. Fewer than two results is a usage error.
func (c *ScenarioComparator) Compare(results []model.SimulationResult) (Comparison, error) {
	if len(results) < 2 {
		return Comparison{}, ErrNotEnoughScenarios
	}

	cmp := Comparison{BestPerMetric: make(map[string]string, len(metricTable))}
	for _, r := range results {
		cmp.Ranking = append(cmp.Ranking, RankedScenario{
			SimulationID: r.ID,
			ScenarioID:   r.ScenarioID,
			ScenarioName: r.ScenarioName,
			Composite:    round2(c.composite(r.Simulated)),
		})
	}
	sort.SliceStable(cmp.Ranking, func(i, j int) bool {
		if cmp.Ranking[i].Composite != cmp.Ranking[j].Composite {
			return cmp.Ranking[i].Composite > cmp.Ranking[j].Composite
		}
		return cmp.Ranking[i].ScenarioID < cmp.Ranking[j].ScenarioID
	})
	cmp.BestOverall = cmp.Ranking[0].ScenarioID

	for _, def := range metricTable {
		best := results[0]
		for _, r := range results[1:] {
			bv, rv := def.value(best.Simulated), def.value(r.Simulated)
			if (def.higherIsBetter && rv > bv) || (!def.higherIsBetter && rv < bv) {
				best = r
			}
		}
		cmp.BestPerMetric[def.name] = best.ScenarioID
	}
	return cmp, nil
}

func (c *ScenarioComparator) composite(s model.MetricsSnapshot) float64 {
	w := c.weights
	return w.Service*float64(s.InService) +
		w.Punctuality*s.PunctualityPct/10 +
		w.Branding*s.BrandingCompliancePct/10 -
		w.Cost*s.OperatingCost/1000 -
		w.Energy*s.EnergyKWh/100 -
		w.Backlog*float64(s.MaintenanceBacklog) -
		w.FitnessRisk*float64(s.FitnessRiskCount)
}
