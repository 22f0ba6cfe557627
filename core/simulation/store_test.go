package simulation

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/transitflow/depotplan/core/model"
)

func testResult(scenarioID string, confidence float64) model.SimulationResult {
	return model.SimulationResult{
		ID:           "sim-" + scenarioID,
		ScenarioID:   scenarioID,
		ScenarioName: "scenario " + scenarioID,
		Baseline:     model.MetricsSnapshot{InService: 18},
		Simulated:    model.MetricsSnapshot{InService: 16},
		Differences: []model.MetricDifference{
			{Metric: MetricInService, Baseline: 18, Simulated: 16, Difference: -2, PercentChange: -11.11, Impact: model.ImpactNegative},
		},
		Recommendations: []string{"stage standby units"},
		Confidence:      confidence,
		CreatedAt:       testNow,
	}
}

func runStoreSuite(t *testing.T, store ResultStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrUnknownScenario)

	res := testResult("night-closure", 0.85)
	require.NoError(t, store.Put(ctx, res))

	got, err := store.Get(ctx, "night-closure")
	require.NoError(t, err)
	require.Equal(t, res.ID, got.ID)
	require.Equal(t, res.Differences, got.Differences)
	require.Equal(t, res.Confidence, got.Confidence)

	// Put is an upsert keyed by scenario id.
	res2 := testResult("night-closure", 0.9)
	res2.ID = "sim-2"
	require.NoError(t, store.Put(ctx, res2))
	got, err = store.Get(ctx, "night-closure")
	require.NoError(t, err)
	require.Equal(t, "sim-2", got.ID)

	require.NoError(t, store.Put(ctx, testResult("other", 0.8)))
	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	_, ok, err := store.Applied(ctx, "night-closure")
	require.NoError(t, err)
	require.False(t, ok)

	rec := model.AppliedRecord{ID: "ap-1", ScenarioID: "night-closure", AppliedAt: testNow, Confidence: 0.9, RollbackAvailable: true}
	require.NoError(t, store.PutApplied(ctx, rec))
	stored, ok, err := store.Applied(ctx, "night-closure")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec.ID, stored.ID)
	require.True(t, stored.RollbackAvailable)

	// Applied markers are immutable: the first write wins.
	rec2 := model.AppliedRecord{ID: "ap-2", ScenarioID: "night-closure", AppliedAt: testNow, Confidence: 0.95}
	require.ErrorIs(t, store.PutApplied(ctx, rec2), ErrAlreadyApplied)
	stored, ok, err = store.Applied(ctx, "night-closure")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "ap-1", stored.ID)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()
	runStoreSuite(t, store)
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sim.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runStoreSuite(t, store)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, testResult("persisted", 0.8)))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	got, err := store.Get(ctx, "persisted")
	require.NoError(t, err)
	require.Equal(t, "sim-persisted", got.ID)

	_, err = store.Get(ctx, "gone")
	require.True(t, errors.Is(err, ErrUnknownScenario))
}
