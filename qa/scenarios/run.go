package scenarios

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/transitflow/depotplan/core/metrics"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
	"github.com/transitflow/depotplan/infra/logger"
	"github.com/transitflow/depotplan/infra/metrics"
	"github.com/transitflow/depotplan/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	optimizer.ResetMetrics(reg)
	sink, err := metrics.NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	bus := eventbus.New()
	defer bus.Close()
	engine, err := optimizer.NewEngine(optimizer.DefaultWeights(), sink, bus, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	now := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	fleet := make([]model.Trainset, len(sc.Trainsets))
	for i, d := range sc.Trainsets {
		fleet[i] = d.ToModel(now)
	}

	th := optimizer.DefaultThresholds()
	th.TotalTrainsets = len(fleet)
	for name, value := range sc.Thresholds {
		next, ok := th.WithConstraint(name, value)
		if !ok {
			t.Fatalf("scenario %s: unknown threshold %q", sc.Name, name)
		}
		th = next
	}

	res, err := engine.Run(fleet, th, now, optimizer.RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	checkCount := func(name string, want *int, got int) {
		if want != nil && got != *want {
			t.Errorf("scenario %s: expected %d %s, got %d", sc.Name, *want, name, got)
		}
	}
	checkCount("in service", sc.Expected.InService, res.Summary.InService)
	checkCount("maintenance", sc.Expected.Maintenance, res.Summary.Maintenance)
	checkCount("cleaning", sc.Expected.Cleaning, res.Summary.Cleaning)
	checkCount("inspection", sc.Expected.Inspection, res.Summary.Inspection)
	checkCount("standby", sc.Expected.Standby, res.Summary.Standby)
	checkCount("shunting moves", sc.Expected.ShuntingMoves, res.ShuntingMoves)

	if sc.Expected.ServiceShortfall != nil {
		if got := hasCriticalAlert(res); got != *sc.Expected.ServiceShortfall {
			t.Errorf("scenario %s: expected shortfall=%v, alerts %v", sc.Name, *sc.Expected.ServiceShortfall, res.Alerts)
		}
	}
}

func hasCriticalAlert(res model.Result) bool {
	for _, a := range res.Alerts {
		if a.Level == model.AlertCritical {
			return true
		}
	}
	return false
}
