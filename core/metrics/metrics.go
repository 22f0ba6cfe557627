package metrics

import (
	"time"
)

// DecisionRecord is a per-trainset planning event to be recorded.
type DecisionRecord struct {
	RunID      string
	TrainsetID string
	Category   string
	Score      float64
	Conflicts  int
	Time       time.Time
}

// RunRecord summarizes one planning run for observability sinks.
type RunRecord struct {
	RunID         string
	Algorithm     string
	InService     int
	Maintenance   int
	Cleaning      int
	Inspection    int
	Standby       int
	ShuntingMoves int
	CompliancePct float64
	Simulated     bool
	Duration      time.Duration
	Time          time.Time
}

// Sink records planning runs for observability purposes.
type Sink interface {
	RecordRun(run RunRecord, decisions []DecisionRecord) error
}

// SimulationRecord summarizes one what-if simulation.
type SimulationRecord struct {
	SimulationID string
	ScenarioID   string
	Confidence   float64
	Differences  int
	Duration     time.Duration
	Time         time.Time
}

// SimulationRecorder is implemented by sinks able to record simulations.
type SimulationRecorder interface {
	RecordSimulation(rec SimulationRecord) error
}

// NopSink implements Sink and SimulationRecorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord, []DecisionRecord) error { return nil }

func (NopSink) RecordSimulation(SimulationRecord) error { return nil }
