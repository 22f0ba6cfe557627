package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/transitflow/depotplan/core/logger"
	coremetrics "github.com/transitflow/depotplan/core/metrics"
	infralogger "github.com/transitflow/depotplan/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client. It serves as the time-series audit trail for decisions
// and simulations.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes the run summary and every decision as line protocol
// events.
func (s *InfluxSink) RecordRun(run coremetrics.RunRecord, decisions []coremetrics.DecisionRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_run").
		AddTag("run_id", run.RunID).
		AddTag("algorithm", run.Algorithm).
		AddTag("simulated", strconv.FormatBool(run.Simulated)).
		AddField("in_service", run.InService).
		AddField("maintenance", run.Maintenance).
		AddField("cleaning", run.Cleaning).
		AddField("inspection", run.Inspection).
		AddField("standby", run.Standby).
		AddField("shunting_moves", run.ShuntingMoves).
		AddField("compliance_pct", round3(run.CompliancePct)).
		AddField("duration_ms", round3(run.Duration.Seconds()*1000)).
		SetTime(run.Time)
	if err := s.writeAPI.WritePoint(ctx, p); err != nil {
		return err
	}
	for _, d := range decisions {
		p := write.NewPointWithMeasurement("plan_decision").
			AddTag("run_id", d.RunID).
			AddTag("trainset_id", d.TrainsetID).
			AddTag("category", d.Category).
			AddField("score", round3(d.Score)).
			AddField("conflicts", d.Conflicts).
			SetTime(d.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordSimulation writes one simulation summary.
func (s *InfluxSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation").
		AddTag("simulation_id", rec.SimulationID).
		AddTag("scenario_id", rec.ScenarioID).
		AddField("confidence", round3(rec.Confidence)).
		AddField("differences", rec.Differences).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
