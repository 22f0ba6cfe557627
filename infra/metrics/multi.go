package metrics

import (
	"errors"

	coremetrics "github.com/transitflow/depotplan/core/metrics"
)

// MultiSink fans out records to several sinks.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink from the given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordRun forwards to every sink and joins errors.
func (m *MultiSink) RecordRun(run coremetrics.RunRecord, decisions []coremetrics.DecisionRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRun(run, decisions); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordSimulation forwards to every sink implementing SimulationRecorder.
func (m *MultiSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	var errs []error
	for _, s := range m.sinks {
		if sr, ok := s.(coremetrics.SimulationRecorder); ok {
			if err := sr.RecordSimulation(rec); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
