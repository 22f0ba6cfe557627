package simulation

import (
	"fmt"
	"strings"

	"github.com/transitflow/depotplan/core/model"
)

// RecommendationGenerator derives advisory guidance from metric deltas and
// the scenario category. Rules are evaluated in a fixed order so the output
// is deterministic.
type RecommendationGenerator struct {
	policy Policy
}

// NewRecommendationGenerator returns a generator using the given triggers.
func NewRecommendationGenerator(p Policy) *RecommendationGenerator {
	return &RecommendationGenerator{policy: p}
}

// Generate returns one advisory per triggered rule, followed by
// category-specific guidance. An empty trigger set yields a single
// "no significant impact" advisory.
func (g *RecommendationGenerator) Generate(diffs []model.MetricDifference, sc model.Scenario) []string {
	p := g.policy
	byMetric := make(map[string]model.MetricDifference, len(diffs))
	for _, d := range diffs {
		byMetric[d.Metric] = d
	}

	var out []string
	if d, ok := byMetric[MetricInService]; ok && d.Difference < -p.ServiceDropTrigger {
		out = append(out, fmt.Sprintf(
			"Service availability drops by %.0f trainsets; stage standby units for short-notice induction.", -d.Difference))
	}
	if d, ok := byMetric[MetricMaintenance]; ok && d.Difference > p.MaintenanceTrigger {
		out = append(out, fmt.Sprintf(
			"Maintenance load rises by %.0f bays; extend the night shift or defer low-priority job cards.", d.Difference))
	}
	if d, ok := byMetric[MetricEnergyKWh]; ok && d.Difference > p.EnergyTriggerKWh {
		out = append(out, fmt.Sprintf(
			"Projected energy use rises by %.0f kWh; review traction schedules before committing.", d.Difference))
	}
	if d, ok := byMetric[MetricOperatingCost]; ok && d.Difference > p.CostTrigger {
		out = append(out, fmt.Sprintf(
			"Operating cost rises by %.0f; escalate to operations control for budget sign-off.", d.Difference))
	}
	if d, ok := byMetric[MetricBrandingCompliance]; ok && d.Difference < -p.BrandingDropTrigger {
		out = append(out, fmt.Sprintf(
			"Branding compliance falls by %.0f points; prioritize branded trainsets in tomorrow's service block.", -d.Difference))
	}

	out = append(out, categoryGuidance(sc)...)
	if len(out) == 0 {
		out = append(out, "No significant operational impact projected; scenario is safe to stage.")
	}
	return out
}

func categoryGuidance(sc model.Scenario) []string {
	text := strings.ToLower(sc.Name + " " + sc.Category)
	var out []string
	if strings.Contains(text, "emergency") {
		out = append(out, "Emergency scenario: activate the emergency response protocol and notify the duty manager.")
	}
	if strings.Contains(text, "maintenance") {
		out = append(out, "Maintenance scenario: confirm bay availability and spare-part stock before applying.")
	}
	if strings.Contains(text, "fitness") {
		out = append(out, "Fitness scenario: coordinate certificate renewals with the regulatory desk.")
	}
	if strings.Contains(text, "weather") {
		out = append(out, "Weather scenario: verify depot access routes and adjust shunting crew allocation.")
	}
	return out
}
