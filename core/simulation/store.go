package simulation

import (
	"context"

	"github.com/transitflow/depotplan/core/model"
)

// ResultStore persists simulation results and applied markers keyed by
// scenario id. Implementations must guarantee at-most-one writer per scenario
// id and safe concurrent reads; the engine itself never stores anything.
//
// Put upserts: re-simulating a scenario replaces its stored result. Applied
// markers are immutable: PutApplied writes at most once per scenario and
// returns ErrAlreadyApplied on any later attempt.
type ResultStore interface {
	Put(ctx context.Context, res model.SimulationResult) error
	Get(ctx context.Context, scenarioID string) (model.SimulationResult, error)
	List(ctx context.Context) ([]model.SimulationResult, error)
	PutApplied(ctx context.Context, rec model.AppliedRecord) error
	Applied(ctx context.Context, scenarioID string) (model.AppliedRecord, bool, error)
	Close() error
}
