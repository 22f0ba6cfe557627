package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transitflow/depotplan/core/logger"
	coremetrics "github.com/transitflow/depotplan/core/metrics"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
)

// Runner executes what-if simulations: it re-runs the planning pipeline on a
// scenario-modified snapshot and derives deltas, recommendations and a
// confidence score against the baseline.
type Runner struct {
	engine    *optimizer.Engine
	applier   *ScenarioApplier
	differ    *MetricsDifferencer
	estimator *ConfidenceEstimator
	generator *RecommendationGenerator
	policy    Policy
	store     ResultStore
	sink      coremetrics.SimulationRecorder
	log       logger.Logger
}

// NewRunner wires the simulation subsystem. store and sink may be nil.
func NewRunner(engine *optimizer.Engine, policy Policy, store ResultStore, sink coremetrics.SimulationRecorder, log logger.Logger) (*Runner, error) {
	if engine == nil || log == nil {
		return nil, fmt.Errorf("simulation: nil parameter provided to NewRunner")
	}
	policy.SetDefaults()
	return &Runner{
		engine:    engine,
		applier:   NewScenarioApplier(log),
		differ:    NewMetricsDifferencer(policy),
		estimator: NewConfidenceEstimator(policy),
		generator: NewRecommendationGenerator(policy),
		policy:    policy,
		store:     store,
		sink:      sink,
		log:       log,
	}, nil
}

// Simulate runs the baseline and the scenario-modified fleet through the same
// pipeline and reports the delta. The scenario is validated first: one that
// touches no known trainset and no known constraint is rejected before any
// run starts.
func (r *Runner) Simulate(ctx context.Context, baseline []model.Trainset, th optimizer.Thresholds, sc model.Scenario, now time.Time) (model.SimulationResult, error) {
	start := time.Now()
	params, constraints := Touches(baseline, th, sc)
	if params == 0 && constraints == 0 {
		return model.SimulationResult{}, fmt.Errorf("scenario %s: %w", sc.ID, ErrEmptyScenario)
	}

	baseRes, err := r.engine.Run(baseline, th, now, optimizer.RunOptions{Simulated: true})
	if err != nil {
		return model.SimulationResult{}, fmt.Errorf("baseline run: %w", err)
	}
	modFleet, modTh, _ := r.applier.Apply(baseline, th, sc, now)
	simRes, err := r.engine.Run(modFleet, modTh, now, optimizer.RunOptions{Simulated: true})
	if err != nil {
		return model.SimulationResult{}, fmt.Errorf("simulated run: %w", err)
	}

	baseSnap := ExtractMetrics(baseRes, baseline, th, r.policy, now)
	simSnap := ExtractMetrics(simRes, modFleet, modTh, r.policy, now)
	diffs := r.differ.Diff(baseSnap, simSnap)

	result := model.SimulationResult{
		ID:              uuid.NewString(),
		ScenarioID:      sc.ID,
		ScenarioName:    sc.Name,
		Baseline:        baseSnap,
		Simulated:       simSnap,
		Differences:     diffs,
		Recommendations: r.generator.Generate(diffs, sc),
		Confidence:      r.estimator.Estimate(diffs, sc),
		ExecutionTime:   time.Since(start),
		CreatedAt:       now,
	}

	if r.store != nil {
		if err := r.store.Put(ctx, result); err != nil {
			return model.SimulationResult{}, fmt.Errorf("store result: %w", err)
		}
	}
	if r.sink != nil {
		if err := r.sink.RecordSimulation(coremetrics.SimulationRecord{
			SimulationID: result.ID,
			ScenarioID:   sc.ID,
			Confidence:   result.Confidence,
			Differences:  len(diffs),
			Duration:     result.ExecutionTime,
			Time:         now,
		}); err != nil {
			r.log.Errorf("simulation metrics error: %v", err)
		}
	}
	r.log.Infof("scenario %s simulated: confidence %.2f, %d recommendations",
		sc.ID, result.Confidence, len(result.Recommendations))
	return result, nil
}
