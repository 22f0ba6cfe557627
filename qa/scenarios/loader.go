package scenarios

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/transitflow/depotplan/core/model"
)

type TrainsetDef struct {
	ID        string `yaml:"id"`
	Status    string `yaml:"status"`
	Clearance bool   `yaml:"clearance"`
	// FitnessDays is the number of days until certificate expiry. Negative
	// means expired, nil means no certificate on record.
	FitnessDays         *int    `yaml:"fitness_days"`
	MileageKm           float64 `yaml:"mileage_km"`
	Track               string  `yaml:"track"`
	CardPriority        string  `yaml:"card_priority,omitempty"`
	DaysSinceCleaning   int     `yaml:"days_since_cleaning"`
	DaysSinceInspection int     `yaml:"days_since_inspection"`
}

func (d TrainsetDef) ToModel(now time.Time) model.Trainset {
	ts := model.Trainset{
		ID:                   d.ID,
		Status:               parseStatus(d.Status),
		OperationalClearance: d.Clearance,
		CurrentMileageKm:     d.MileageKm,
		TotalMileageKm:       d.MileageKm,
		Position:             model.StablingPosition{Track: parseTrack(d.Track), Bay: 1},
		LastCleaning:         now.AddDate(0, 0, -d.DaysSinceCleaning),
		LastInspection:       now.AddDate(0, 0, -d.DaysSinceInspection),
	}
	if d.FitnessDays != nil {
		ts.Fitness = &model.FitnessCertificate{
			ValidFrom:  now.AddDate(0, -6, 0),
			ValidUntil: now.AddDate(0, 0, *d.FitnessDays),
		}
	}
	if d.CardPriority != "" {
		ts.JobCards = []model.JobCard{{
			ID:       d.ID + "-jc",
			Priority: parsePriority(d.CardPriority),
			DueDate:  now.AddDate(0, 0, 7),
		}}
	}
	return ts
}

type Expected struct {
	InService        *int  `yaml:"in_service"`
	Maintenance      *int  `yaml:"maintenance"`
	Cleaning         *int  `yaml:"cleaning"`
	Inspection       *int  `yaml:"inspection"`
	Standby          *int  `yaml:"standby"`
	ShuntingMoves    *int  `yaml:"shunting_moves"`
	ServiceShortfall *bool `yaml:"service_shortfall"`
}

type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Thresholds  map[string]float64 `yaml:"thresholds"`
	Trainsets   []TrainsetDef      `yaml:"trainsets"`
	Expected    Expected           `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func parseStatus(s string) model.TrainsetStatus {
	switch s {
	case "EMERGENCY_REPAIR":
		return model.StatusEmergencyRepair
	case "OUT_OF_SERVICE":
		return model.StatusOutOfService
	default:
		return model.StatusActive
	}
}

func parseTrack(s string) model.TrackClass {
	switch s {
	case "MAINTENANCE":
		return model.TrackMaintenance
	case "CLEANING":
		return model.TrackCleaning
	case "STORAGE":
		return model.TrackStorage
	default:
		return model.TrackService
	}
}

func parsePriority(s string) model.JobCardPriority {
	switch s {
	case "CRITICAL":
		return model.PriorityCritical
	case "HIGH":
		return model.PriorityHigh
	case "MEDIUM":
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
