package simulation

import "errors"

var (
	// ErrEmptyScenario is returned when a scenario references no valid
	// trainsets and no valid constraint changes.
	ErrEmptyScenario = errors.New("scenario references no valid trainsets or constraints")
	// ErrNotEnoughScenarios is returned when fewer than two stored results
	// are supplied to a comparison.
	ErrNotEnoughScenarios = errors.New("comparison requires at least two simulation results")
	// ErrLowConfidence is returned by the apply gate when the confidence
	// score is below the promotion floor.
	ErrLowConfidence = errors.New("confidence below promotion floor")
	// ErrUnknownScenario is returned when a scenario id has no stored result.
	ErrUnknownScenario = errors.New("no stored result for scenario")
	// ErrAlreadyApplied is returned when a scenario already carries an
	// applied marker.
	ErrAlreadyApplied = errors.New("scenario already applied")
)
