package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// FixtureProvider serves a deterministic synthetic fleet. It backs local
// development and the QA scenarios, so the same input always yields the same
// plan.
type FixtureProvider struct {
	Size int
}

// Fleet returns the fixture snapshot for the current time.
func (p FixtureProvider) Fleet(ctx context.Context) ([]model.Trainset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := p.Size
	if size <= 0 {
		size = 25
	}
	return FixtureFleet(size, time.Now()), nil
}

// FixtureFleet builds a synthetic fleet of the given size. Attributes are
// derived from the index so the output is fully deterministic for a fixed now.
func FixtureFleet(size int, now time.Time) []model.Trainset {
	fleet := make([]model.Trainset, 0, size)
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("TS-%03d", i+1)
		ts := model.Trainset{
			ID:                   id,
			Number:               fmt.Sprintf("%d", 4001+i),
			Status:               model.StatusActive,
			OperationalClearance: true,
			CurrentMileageKm:     float64(52000 + (i*1713)%9000),
			TotalMileageKm:       float64(310000 + i*4200),
			Position: model.StablingPosition{
				Track: trackFor(i),
				Bay:   i%8 + 1,
			},
			Fitness: &model.FitnessCertificate{
				ValidFrom:  now.AddDate(0, -6, 0),
				ValidUntil: now.AddDate(0, 0, 20+(i*7)%90),
			},
			History: model.PerformanceHistory{
				PunctualityPct: 96.5 + float64(i%7)*0.4,
				EnergyKWhPerKm: 2.9 + float64(i%5)*0.15,
				Breakdowns:     i % 3,
			},
			LastCleaning:   now.AddDate(0, 0, -(i % 5)),
			LastInspection: now.AddDate(0, 0, -(i*3)%18),
		}
		if i%4 == 0 {
			ts.JobCards = []model.JobCard{{
				ID:             fmt.Sprintf("JC-%03d", i+1),
				Priority:       model.JobCardPriority(i / 4 % 4),
				Description:    "bogie inspection follow-up",
				EstimatedHours: 4,
				DueDate:        now.AddDate(0, 0, 10-(i%14)),
			}}
		}
		if i%5 == 1 {
			ts.Branding = &model.BrandingContract{
				Advertiser:    fmt.Sprintf("advertiser-%d", i%3+1),
				TargetHours:   160,
				ActualHours:   float64(120 + (i*11)%50),
				RevenuePerDay: 1800,
				PenaltyPerDay: 600,
				Deadline:      now.AddDate(0, 0, 12),
				Active:        true,
			}
		}
		fleet = append(fleet, ts)
	}

	// A few degraded members keep the constraint paths exercised.
	if size > 6 {
		fleet[6].Status = model.StatusEmergencyRepair
	}
	if size > 11 {
		fleet[11].Fitness.ValidUntil = now.AddDate(0, 0, -2)
	}
	if size > 17 {
		fleet[17].OperationalClearance = false
	}
	if size > 22 {
		fleet[22].Fitness = nil
	}
	return fleet
}

func trackFor(i int) model.TrackClass {
	switch i % 6 {
	case 4:
		return model.TrackMaintenance
	case 5:
		return model.TrackStorage
	default:
		return model.TrackService
	}
}
