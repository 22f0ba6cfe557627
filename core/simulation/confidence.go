package simulation

import (
	"math"

	"github.com/transitflow/depotplan/core/model"
)

// ConfidenceEstimator scores how trustworthy a simulated result is. Scenarios
// with many simultaneous or extreme changes are weaker extrapolations of a
// single-pass heuristic, so each widens the penalty.
type ConfidenceEstimator struct {
	policy Policy
}

// NewConfidenceEstimator returns an estimator using the given policy cutoffs.
func NewConfidenceEstimator(p Policy) *ConfidenceEstimator {
	return &ConfidenceEstimator{policy: p}
}

// Estimate returns a confidence in [floor, ceil] (reference: [0.5, 1.0]).
func (e *ConfidenceEstimator) Estimate(diffs []model.MetricDifference, sc model.Scenario) float64 {
	p := e.policy
	conf := p.BaseConfidence
	for _, d := range diffs {
		if math.Abs(d.PercentChange) > p.ExtremeChangePct {
			conf -= p.ExtremeChangePenalty
		}
	}
	if len(sc.Parameters) > p.ParameterLimit {
		conf -= p.ParameterPenalty
	}
	if len(sc.ConstraintChanges) > p.ConstraintLimit {
		conf -= p.ConstraintPenalty
	}
	if conf < p.ConfidenceFloor {
		return p.ConfidenceFloor
	}
	if conf > p.ConfidenceCeil {
		return p.ConfidenceCeil
	}
	return conf
}
