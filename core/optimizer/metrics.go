package optimizer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runDuration     prometheus.Histogram
	runsTotal       prometheus.Counter
	conflictsTotal  *prometheus.CounterVec
	categoryCount   *prometheus.GaugeVec
	serviceShortage prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Histogram, prometheus.Counter, *prometheus.CounterVec, *prometheus.GaugeVec, prometheus.Counter) {
	dur := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plan_run_duration_seconds",
			Help:    "Duration of one planning pipeline run",
			Buckets: prometheus.DefBuckets,
		},
	)
	runs := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Number of planning runs executed",
		},
	)
	conf := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_conflicts_total",
			Help: "Conflicts raised by the planner",
		},
		[]string{"kind"},
	)
	cat := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "plan_category_count",
			Help: "Trainsets per disposition in the latest run",
		},
		[]string{"category"},
	)
	short := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_service_shortfall_total",
			Help: "Runs that could not fill the minimum service quota",
		},
	)
	return dur, runs, conf, cat, short
}

func init() {
	runDuration, runsTotal, conflictsTotal, categoryCount, serviceShortage = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(runDuration, runsTotal, conflictsTotal, categoryCount, serviceShortage)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	runDuration, runsTotal, conflictsTotal, categoryCount, serviceShortage = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
