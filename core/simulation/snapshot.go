package simulation

import (
	"time"

	"github.com/transitflow/depotplan/core/model"
	"github.com/transitflow/depotplan/core/optimizer"
)

// ExtractMetrics flattens one run result into the comparable metrics
// snapshot used for baseline-vs-simulated differencing.
func ExtractMetrics(res model.Result, fleet []model.Trainset, th optimizer.Thresholds, p Policy, now time.Time) model.MetricsSnapshot {
	snap := model.MetricsSnapshot{
		InService:     res.Summary.InService,
		Maintenance:   res.Summary.Maintenance,
		Cleaning:      res.Summary.Cleaning,
		Inspection:    res.Summary.Inspection,
		Standby:       res.Summary.Standby,
		ShuntingMoves: res.ShuntingMoves,
	}

	byID := make(map[string]model.Trainset, len(fleet))
	for _, ts := range fleet {
		byID[ts.ID] = ts
	}

	var energy, punctualitySum float64
	var inService int
	var brandedActive, brandedServed int
	for _, d := range res.Decisions {
		ts, ok := byID[d.TrainsetID]
		if !ok {
			continue
		}
		if d.Category == model.CategoryInService {
			perKm := ts.History.EnergyKWhPerKm
			if perKm == 0 {
				perKm = p.FallbackEnergyKWhPerKm
			}
			energy += perKm * p.ServiceKmPerDay
			punctualitySum += ts.History.PunctualityPct
			inService++
		} else {
			snap.MaintenanceBacklog += ts.PendingJobCards()
		}
		if b := ts.Branding; b != nil && b.Active {
			brandedActive++
			if d.Category == model.CategoryInService {
				brandedServed++
			}
		}
		if ts.Fitness != nil && ts.Fitness.DaysToExpiry(now) <= float64(th.CriticalFitnessDays) {
			snap.FitnessRiskCount++
		} else if ts.Fitness == nil {
			snap.FitnessRiskCount++
		}
	}

	snap.EnergyKWh = round2(energy)
	snap.OperatingCost = round2(energy*p.TariffPerKWh +
		float64(res.Summary.Maintenance)*p.MaintenanceCostPerBay +
		float64(res.ShuntingMoves)*p.ShuntingCostPerMove)
	if inService > 0 {
		snap.PunctualityPct = round2(punctualitySum / float64(inService))
	}
	if brandedActive > 0 {
		snap.BrandingCompliancePct = round2(float64(brandedServed) / float64(brandedActive) * 100)
	} else {
		snap.BrandingCompliancePct = 100
	}
	return snap
}
