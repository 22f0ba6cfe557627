package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/transitflow/depotplan/core/metrics"
)

func TestPromSinkRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	ps := sink.(*PromSink)

	run := coremetrics.RunRecord{
		RunID:         "run-1",
		CompliancePct: 92.5,
		ShuntingMoves: 4,
		Time:          time.Now(),
	}
	decisions := []coremetrics.DecisionRecord{
		{TrainsetID: "TS-001", Category: "IN_SERVICE"},
		{TrainsetID: "TS-002", Category: "IN_SERVICE", Conflicts: 1},
		{TrainsetID: "TS-003", Category: "MAINTENANCE"},
	}
	require.NoError(t, sink.RecordRun(run, decisions))

	require.Equal(t, 1.0, testutil.ToFloat64(ps.decisions.WithLabelValues("IN_SERVICE", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(ps.decisions.WithLabelValues("IN_SERVICE", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(ps.decisions.WithLabelValues("MAINTENANCE", "false")))
	require.Equal(t, 92.5, testutil.ToFloat64(ps.compliance))
	require.Equal(t, 4.0, testutil.ToFloat64(ps.shunting))
}

func TestPromSinkSimulatedRunSkipsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	ps := sink.(*PromSink)

	require.NoError(t, sink.RecordRun(coremetrics.RunRecord{
		RunID:         "sim-run",
		CompliancePct: 50,
		ShuntingMoves: 9,
		Simulated:     true,
	}, nil))

	require.Equal(t, 0.0, testutil.ToFloat64(ps.compliance))
	require.Equal(t, 0.0, testutil.ToFloat64(ps.shunting))
}

func TestPromSinkRecordSimulation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	rec := sink.(coremetrics.SimulationRecorder)
	require.NoError(t, rec.RecordSimulation(coremetrics.SimulationRecord{Confidence: 0.85}))
	require.NoError(t, rec.RecordSimulation(coremetrics.SimulationRecord{Confidence: 0.6}))

	count, err := testutil.GatherAndCount(reg, "simulation_confidence")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)

	// Both sinks share the registry's collectors.
	require.NoError(t, first.RecordRun(coremetrics.RunRecord{CompliancePct: 80}, nil))
	require.NoError(t, second.RecordRun(coremetrics.RunRecord{CompliancePct: 95}, nil))
	require.Equal(t, 95.0, testutil.ToFloat64(first.(*PromSink).compliance))
}

func TestMultiSinkFansOut(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	require.NoError(t, err)
	multi := NewMultiSink(prom, coremetrics.NopSink{})

	require.NoError(t, multi.RecordRun(coremetrics.RunRecord{CompliancePct: 88}, nil))
	require.Equal(t, 88.0, testutil.ToFloat64(prom.(*PromSink).compliance))

	require.NoError(t, multi.RecordSimulation(coremetrics.SimulationRecord{Confidence: 0.75}))
	count, err := testutil.GatherAndCount(reg, "simulation_confidence")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
