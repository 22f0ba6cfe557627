package simulation

import (
	"strings"
	"testing"

	"github.com/transitflow/depotplan/core/model"
)

func TestGenerateNoImpact(t *testing.T) {
	g := NewRecommendationGenerator(DefaultPolicy())
	out := g.Generate(nil, model.Scenario{Name: "quiet night", Category: "routine"})
	if len(out) != 1 {
		t.Fatalf("recommendations = %v, want single no-impact advisory", out)
	}
	if !strings.Contains(out[0], "No significant operational impact") {
		t.Errorf("advisory = %q", out[0])
	}
}

func TestGenerateServiceDrop(t *testing.T) {
	g := NewRecommendationGenerator(DefaultPolicy())
	diffs := []model.MetricDifference{
		{Metric: MetricInService, Difference: -4},
	}
	out := g.Generate(diffs, model.Scenario{})
	if len(out) != 1 || !strings.Contains(out[0], "Service availability drops by 4") {
		t.Fatalf("recommendations = %v", out)
	}
}

func TestGenerateRuleOrder(t *testing.T) {
	g := NewRecommendationGenerator(DefaultPolicy())
	diffs := []model.MetricDifference{
		{Metric: MetricOperatingCost, Difference: 30000},
		{Metric: MetricInService, Difference: -5},
		{Metric: MetricMaintenance, Difference: 6},
	}
	out := g.Generate(diffs, model.Scenario{})
	if len(out) != 3 {
		t.Fatalf("recommendations = %v, want 3", out)
	}
	// Fixed rule order regardless of input order.
	if !strings.Contains(out[0], "Service availability") ||
		!strings.Contains(out[1], "Maintenance load") ||
		!strings.Contains(out[2], "Operating cost") {
		t.Errorf("rule order violated: %v", out)
	}
}

func TestGenerateCategoryGuidance(t *testing.T) {
	g := NewRecommendationGenerator(DefaultPolicy())
	out := g.Generate(nil, model.Scenario{Name: "depot flooding", Category: "emergency"})
	found := false
	for _, r := range out {
		if strings.Contains(r, "emergency response protocol") {
			found = true
		}
	}
	if !found {
		t.Errorf("emergency guidance missing: %v", out)
	}
}

func TestGenerateBelowTriggers(t *testing.T) {
	g := NewRecommendationGenerator(DefaultPolicy())
	diffs := []model.MetricDifference{
		{Metric: MetricInService, Difference: -2},
		{Metric: MetricMaintenance, Difference: 3},
		{Metric: MetricEnergyKWh, Difference: 100},
	}
	out := g.Generate(diffs, model.Scenario{})
	if len(out) != 1 || !strings.Contains(out[0], "No significant") {
		t.Fatalf("sub-trigger deltas must not recommend: %v", out)
	}
}
