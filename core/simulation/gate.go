package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/transitflow/depotplan/core/events"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/internal/eventbus"
)

// ApplyGate blocks promoting a scenario to production below the confidence
// floor. On success it records an immutable applied marker; rollback itself
// is the calling layer's responsibility.
type ApplyGate struct {
	floor float64
	store ResultStore
	bus   eventbus.EventBus
}

// NewApplyGate returns a gate over the given store. bus may be nil.
func NewApplyGate(p Policy, store ResultStore, bus eventbus.EventBus) (*ApplyGate, error) {
	if store == nil {
		return nil, fmt.Errorf("simulation: nil store provided to NewApplyGate")
	}
	return &ApplyGate{floor: p.ApplyFloor, store: store, bus: bus}, nil
}

// Apply promotes the scenario's stored result. A confidence below the floor
// rejects the request with ErrLowConfidence and leaves no partial state.
func (g *ApplyGate) Apply(ctx context.Context, scenarioID string, now time.Time) (model.AppliedRecord, error) {
	res, err := g.store.Get(ctx, scenarioID)
	if err != nil {
		return model.AppliedRecord{}, err
	}
	if res.Confidence < g.floor {
		return model.AppliedRecord{}, fmt.Errorf(
			"scenario %s: %w (%.2f < %.2f)", scenarioID, ErrLowConfidence, res.Confidence, g.floor)
	}
	rec := model.AppliedRecord{
		ID:                uuid.NewString(),
		ScenarioID:        scenarioID,
		AppliedAt:         now,
		Confidence:        res.Confidence,
		RollbackAvailable: true,
	}
	if err := g.store.PutApplied(ctx, rec); err != nil {
		return model.AppliedRecord{}, fmt.Errorf("record applied marker: %w", err)
	}
	if g.bus != nil {
		g.bus.Publish(events.ScenarioAppliedEvent{
			ScenarioID: scenarioID,
			RecordID:   rec.ID,
			Confidence: res.Confidence,
			Time:       now,
		})
	}
	return rec, nil
}
