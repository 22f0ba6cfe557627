package events

import (
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// RunStartedEvent is published right before constraint evaluation begins.
type RunStartedEvent struct {
	RunID     string
	Trainsets int
	Simulated bool
	Time      time.Time
}

// RunCompletedEvent is published after explanations are built. It carries the
// summary only; consumers fetch the full result from the persistence layer.
type RunCompletedEvent struct {
	RunID         string
	Summary       model.Summary
	ShuntingMoves int
	CompliancePct float64
	Simulated     bool
	Duration      time.Duration
}

// RunFailedEvent is published on any unrecoverable error.
type RunFailedEvent struct {
	RunID string
	Err   error
}

// ScenarioAppliedEvent is published when a simulated scenario passes the
// apply gate and is promoted to production.
type ScenarioAppliedEvent struct {
	ScenarioID string
	RecordID   string
	Confidence float64
	Time       time.Time
}
