package app

import (
	"context"
	"fmt"
	"time"

	"github.com/transitflow/depotplan/config"
	coremetrics "github.com/transitflow/depotplan/core/metrics"
	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
	"github.com/transitflow/depotplan/core/simulation"
	"github.com/transitflow/depotplan/fleet"
	"github.com/transitflow/depotplan/infra/logger"
	"github.com/transitflow/depotplan/infra/metrics"
	"github.com/transitflow/depotplan/infra/notify"
	"github.com/transitflow/depotplan/internal/eventbus"
)

// Service wires the planning engine, the simulation subsystem and the
// surrounding infrastructure from one configuration.
type Service struct {
	Engine   *optimizer.Engine
	Runner   *simulation.Runner
	Gate     *simulation.ApplyGate
	Provider fleet.StateProvider

	thresholds optimizer.Thresholds
	store      simulation.ResultStore
	bus        eventbus.EventBus
	notifier   *notify.Publisher
	log        logger.Logger

	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	history := optimizer.NewMemoryHistory(cfg.Storage.HistoryLimit)

	var store simulation.ResultStore
	switch cfg.Storage.Backend {
	case "sqlite":
		s, err := simulation.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		store = s
	default:
		store = simulation.NewMemoryStore()
	}

	engine, err := optimizer.NewEngine(cfg.Optimizer.Weights, sink, bus, history, logg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var recorder coremetrics.SimulationRecorder
	if r, ok := sink.(coremetrics.SimulationRecorder); ok {
		recorder = r
	}
	runner, err := simulation.NewRunner(engine, cfg.Simulation, store, recorder, logg)
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	gate, err := simulation.NewApplyGate(cfg.Simulation, store, bus)
	if err != nil {
		return nil, fmt.Errorf("apply gate: %w", err)
	}

	provider, err := fleet.NewProvider(cfg.Fleet)
	if err != nil {
		return nil, fmt.Errorf("fleet provider: %w", err)
	}

	svc := &Service{
		Engine:      engine,
		Runner:      runner,
		Gate:        gate,
		Provider:    provider,
		thresholds:  cfg.Optimizer.Thresholds,
		store:       store,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}
	if cfg.Notify.Enabled {
		pub, err := notify.NewPublisher(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("notify publisher: %w", err)
		}
		svc.notifier = pub
		go pub.Listen(bus)
	}
	return svc, nil
}

// Plan executes one planning run over the current fleet snapshot.
func (s *Service) Plan(ctx context.Context) (model.Result, error) {
	snapshot, err := s.Provider.Fleet(ctx)
	if err != nil {
		return model.Result{}, fmt.Errorf("fleet snapshot: %w", err)
	}
	return s.Engine.Run(snapshot, s.thresholds, time.Now(), optimizer.RunOptions{})
}

// Simulate runs a what-if scenario against the current fleet snapshot.
func (s *Service) Simulate(ctx context.Context, sc model.Scenario) (model.SimulationResult, error) {
	snapshot, err := s.Provider.Fleet(ctx)
	if err != nil {
		return model.SimulationResult{}, fmt.Errorf("fleet snapshot: %w", err)
	}
	return s.Runner.Simulate(ctx, snapshot, s.thresholds, sc, time.Now())
}

// Compare ranks previously simulated scenarios by their stored results.
func (s *Service) Compare(ctx context.Context, scenarioIDs []string) (simulation.Comparison, error) {
	results := make([]model.SimulationResult, 0, len(scenarioIDs))
	for _, id := range scenarioIDs {
		res, err := s.store.Get(ctx, id)
		if err != nil {
			return simulation.Comparison{}, err
		}
		results = append(results, res)
	}
	return simulation.NewScenarioComparator(simulation.DefaultCompareWeights()).Compare(results)
}

// Apply promotes a simulated scenario through the confidence gate.
func (s *Service) Apply(ctx context.Context, scenarioID string) (model.AppliedRecord, error) {
	return s.Gate.Apply(ctx, scenarioID, time.Now())
}

// Run starts the background infrastructure and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Close()
	}
	s.bus.Close()
	return s.store.Close()
}
