package optimizer

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/transitflow/depotplan/core/events"
	"github.com/transitflow/depotplan/core/logger"
	"github.com/transitflow/depotplan/core/metrics"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/internal/eventbus"
)

// Algorithm identifies the assignment heuristic in result metadata.
const Algorithm = "weighted-greedy-v1"

// Engine runs the full planning pipeline: constraint evaluation, objective
// scoring, capacity assignment, conflict detection and explanation building.
// Each run is a pure function over its inputs; the engine holds only
// read-only configuration and injected collaborators.
type Engine struct {
	weights Weights
	scorer  *ObjectiveScorer
	log     logger.Logger
	sink    metrics.Sink
	bus     eventbus.EventBus
	history HistoryStore
}

// NewEngine validates the weights and wires the pipeline. sink, bus and
// history may be nil.
func NewEngine(w Weights, sink metrics.Sink, bus eventbus.EventBus, history HistoryStore, log logger.Logger) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}
	if log == nil {
		return nil, fmt.Errorf("optimizer: nil logger provided to NewEngine")
	}
	return &Engine{
		weights: w,
		scorer:  NewObjectiveScorer(w),
		log:     log,
		sink:    sink,
		bus:     bus,
		history: history,
	}, nil
}

// RunOptions control one pipeline invocation.
type RunOptions struct {
	// Simulated marks the run as a what-if run: it is not stored in history
	// and is tagged in events and metrics.
	Simulated bool
}

// Run executes one planning pass over the fleet snapshot with the given
// thresholds. Thresholds are passed explicitly per run so scenario overrides
// never touch shared state. Business conditions such as expired certificates
// or capacity shortfalls are encoded in the result; only malformed input
// returns an error.
func (e *Engine) Run(fleet []model.Trainset, th Thresholds, now time.Time, opts RunOptions) (model.Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	if err := e.validateInput(fleet, th); err != nil {
		e.publish(events.RunFailedEvent{RunID: runID, Err: err})
		return model.Result{}, err
	}
	e.publish(events.RunStartedEvent{RunID: runID, Trainsets: len(fleet), Simulated: opts.Simulated, Time: now})
	e.log.Infof("planning run %s over %d trainsets", runID, len(fleet))

	stats := ComputeFleetStats(fleet)
	evaluator := NewConstraintEvaluator(th)
	detector := NewConflictDetector(th)
	assigner := NewDecisionAssigner(th)
	var builder ExplanationBuilder

	candidates := make([]Candidate, 0, len(fleet))
	for _, ts := range fleet {
		ev := evaluator.Evaluate(ts, stats, now)
		score, reasons := e.scorer.Score(ts, ev)
		candidates = append(candidates, Candidate{Trainset: ts, Eval: ev, Score: score, Reasons: reasons})
	}
	Rank(candidates)

	layout := assigner.Assign(candidates)
	fleetConflicts := detector.FleetConflicts(layout)

	res := model.Result{
		RunID:         runID,
		Algorithm:     Algorithm,
		ShuntingMoves: layout.ShuntingMoves,
		Alerts:        layout.Alerts,
		Timestamp:     now,
	}
	clean := 0
	for _, c := range candidates {
		cat := layout.Categories[c.Trainset.ID]
		conflicts := detector.Detect(c.Trainset, c.Eval, cat, stats, now)
		dec := builder.Build(c, cat, layout.Rank[c.Trainset.ID], layout.Targets[c.Trainset.ID], conflicts, now)
		res.Decisions = append(res.Decisions, dec)
		if len(conflicts) == 0 {
			clean++
		}
		switch cat {
		case model.CategoryInService:
			res.Summary.InService++
		case model.CategoryMaintenance:
			res.Summary.Maintenance++
		case model.CategoryCleaning:
			res.Summary.Cleaning++
		case model.CategoryInspection:
			res.Summary.Inspection++
		case model.CategoryStandby:
			res.Summary.Standby++
		}
	}
	// Fleet-level findings are not tied to one trainset; surface them as
	// alerts on the result.
	for _, fc := range fleetConflicts {
		res.Alerts = append(res.Alerts, model.Alert{Level: model.AlertWarning, Message: fc.String()})
	}
	if len(fleet) > 0 {
		res.CompliancePct = round2(float64(clean) / float64(len(fleet)) * 100)
	}
	res.Quality = clamp01(res.CompliancePct / 100)
	res.ProcessingTime = time.Since(start)

	e.record(res, opts, fleetConflicts)
	e.publish(events.RunCompletedEvent{
		RunID:         runID,
		Summary:       res.Summary,
		ShuntingMoves: res.ShuntingMoves,
		CompliancePct: res.CompliancePct,
		Simulated:     opts.Simulated,
		Duration:      res.ProcessingTime,
	})
	if e.history != nil && !opts.Simulated {
		e.history.Put(res)
	}
	e.log.Infof("run %s: %d in service, %d maintenance, %d moves, compliance %.1f%%",
		runID, res.Summary.InService, res.Summary.Maintenance, res.ShuntingMoves, res.CompliancePct)
	return res, nil
}

func (e *Engine) validateInput(fleet []model.Trainset, th Thresholds) error {
	if len(fleet) == 0 {
		return fmt.Errorf("optimizer: empty fleet snapshot")
	}
	if err := th.Validate(); err != nil {
		return fmt.Errorf("optimizer: %w", err)
	}
	for _, ts := range fleet {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("optimizer: %w", err)
		}
	}
	return nil
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func (e *Engine) record(res model.Result, opts RunOptions, fleetConflicts []model.Conflict) {
	runsTotal.Inc()
	runDuration.Observe(res.ProcessingTime.Seconds())
	for _, cat := range model.Categories {
		categoryCount.WithLabelValues(cat.String()).Set(float64(res.Summary.Count(cat)))
	}
	for _, d := range res.Decisions {
		for _, c := range d.Conflicts {
			conflictsTotal.WithLabelValues(c.Kind.String()).Inc()
		}
	}
	for _, c := range fleetConflicts {
		conflictsTotal.WithLabelValues(c.Kind.String()).Inc()
		if c.Kind == model.ConflictServiceShortfall {
			serviceShortage.Inc()
		}
	}
	if e.sink == nil {
		return
	}
	recs := make([]metrics.DecisionRecord, 0, len(res.Decisions))
	for _, d := range res.Decisions {
		recs = append(recs, metrics.DecisionRecord{
			RunID:      res.RunID,
			TrainsetID: d.TrainsetID,
			Category:   d.Category.String(),
			Score:      d.Score,
			Conflicts:  len(d.Conflicts),
			Time:       res.Timestamp,
		})
	}
	run := metrics.RunRecord{
		RunID:         res.RunID,
		Algorithm:     res.Algorithm,
		InService:     res.Summary.InService,
		Maintenance:   res.Summary.Maintenance,
		Cleaning:      res.Summary.Cleaning,
		Inspection:    res.Summary.Inspection,
		Standby:       res.Summary.Standby,
		ShuntingMoves: res.ShuntingMoves,
		CompliancePct: res.CompliancePct,
		Simulated:     opts.Simulated,
		Duration:      res.ProcessingTime,
		Time:          res.Timestamp,
	}
	if err := e.sink.RecordRun(run, recs); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
