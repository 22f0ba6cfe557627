package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/transitflow/depotplan/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	decisions  *prometheus.CounterVec
	compliance prometheus.Gauge
	shunting   prometheus.Gauge
	confidence prometheus.Histogram
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_decisions_total",
		Help: "Total number of per-trainset planning decisions",
	}, []string{"category", "conflicted"})
	compliance := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_compliance_pct",
		Help: "Compliance rate of the latest planning run",
	})
	shunting := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_shunting_moves",
		Help: "Shunting moves planned by the latest run",
	})
	confidence := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "simulation_confidence",
		Help:    "Confidence scores of what-if simulations",
		Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
	})

	if err := reg.Register(decisions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			decisions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(compliance); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			compliance = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(shunting); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			shunting = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(confidence); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			confidence = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{decisions: decisions, compliance: compliance, shunting: shunting, confidence: confidence}, nil
}

// RecordRun increments the decision counters and updates the run gauges.
func (s *PromSink) RecordRun(run coremetrics.RunRecord, decisions []coremetrics.DecisionRecord) error {
	for _, d := range decisions {
		s.decisions.WithLabelValues(d.Category, strconv.FormatBool(d.Conflicts > 0)).Inc()
	}
	if !run.Simulated {
		s.compliance.Set(run.CompliancePct)
		s.shunting.Set(float64(run.ShuntingMoves))
	}
	return nil
}

// RecordSimulation observes the confidence distribution.
func (s *PromSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	s.confidence.Observe(rec.Confidence)
	return nil
}
