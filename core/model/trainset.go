package model

import (
	"fmt"
	"time"
)

// TrainsetStatus reflects the operational state reported by the depot.
type TrainsetStatus string

const (
	StatusActive          TrainsetStatus = "ACTIVE"
	StatusEmergencyRepair TrainsetStatus = "EMERGENCY_REPAIR"
	StatusOutOfService    TrainsetStatus = "OUT_OF_SERVICE"
)

// JobCardPriority orders pending maintenance work.
type JobCardPriority int

const (
	PriorityLow JobCardPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p JobCardPriority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// JobCard is a maintenance work order attached to a trainset.
type JobCard struct {
	ID             string          `json:"id"`
	Priority       JobCardPriority `json:"priority"`
	Description    string          `json:"description"`
	EstimatedHours float64         `json:"estimated_hours"`
	DueDate        time.Time       `json:"due_date"`
	Closed         bool            `json:"closed"`
}

// Overdue reports whether the card's due date has passed.
func (j JobCard) Overdue(now time.Time) bool {
	return !j.Closed && !j.DueDate.IsZero() && j.DueDate.Before(now)
}

// FitnessCertificate is the time-boxed regulatory clearance for revenue service.
type FitnessCertificate struct {
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

// Expired reports whether the certificate is no longer valid at the given time.
func (f FitnessCertificate) Expired(now time.Time) bool {
	return !now.Before(f.ValidUntil)
}

// DaysToExpiry returns the number of full days until the certificate expires.
// Negative values indicate an expired certificate.
func (f FitnessCertificate) DaysToExpiry(now time.Time) float64 {
	return f.ValidUntil.Sub(now).Hours() / 24
}

// BrandingContract is a commercial exposure agreement bound to one trainset.
type BrandingContract struct {
	Advertiser    string    `json:"advertiser"`
	TargetHours   float64   `json:"target_hours"`
	ActualHours   float64   `json:"actual_hours"`
	RevenuePerDay float64   `json:"revenue_per_day"`
	PenaltyPerDay float64   `json:"penalty_per_day"`
	Deadline      time.Time `json:"deadline"`
	Active        bool      `json:"active"`
}

// ExposureShortfall returns the exposure hours still owed to the advertiser.
func (b BrandingContract) ExposureShortfall() float64 {
	if s := b.TargetHours - b.ActualHours; s > 0 {
		return s
	}
	return 0
}

// TrackClass groups depot tracks by the activity they support.
type TrackClass string

const (
	TrackService     TrackClass = "SERVICE"
	TrackMaintenance TrackClass = "MAINTENANCE"
	TrackCleaning    TrackClass = "CLEANING"
	TrackStorage     TrackClass = "STORAGE"
)

// StablingPosition is a depot parking slot assigned to a trainset overnight.
type StablingPosition struct {
	Track TrackClass `json:"track"`
	Bay   int        `json:"bay"`
}

func (p StablingPosition) String() string {
	return fmt.Sprintf("%s-%02d", p.Track, p.Bay)
}

// ComponentHealth is a normalized sensor reading for one subsystem, 0 (failed)
// to 1 (nominal).
type ComponentHealth struct {
	Component string  `json:"component"`
	Score     float64 `json:"score"`
}

// PerformanceHistory summarizes a short window of past operation.
type PerformanceHistory struct {
	PunctualityPct float64 `json:"punctuality_pct"`
	EnergyKWhPerKm float64 `json:"energy_kwh_per_km"`
	Breakdowns     int     `json:"breakdowns"`
}

// Trainset is one fleet member's state at decision time. It is an immutable
// input to a single planning run; scenario overrides produce copies.
type Trainset struct {
	ID                   string              `json:"id"`
	Number               string              `json:"number"`
	Status               TrainsetStatus      `json:"status"`
	Fitness              *FitnessCertificate `json:"fitness,omitempty"`
	CurrentMileageKm     float64             `json:"current_mileage_km"`
	TotalMileageKm       float64             `json:"total_mileage_km"`
	JobCards             []JobCard           `json:"job_cards,omitempty"`
	Branding             *BrandingContract   `json:"branding,omitempty"`
	Position             StablingPosition    `json:"position"`
	OperationalClearance bool                `json:"operational_clearance"`
	Health               []ComponentHealth   `json:"health,omitempty"`
	History              PerformanceHistory  `json:"history"`
	LastCleaning         time.Time           `json:"last_cleaning"`
	LastInspection       time.Time           `json:"last_inspection"`
}

// PendingJobCards counts open work orders.
func (t Trainset) PendingJobCards() int {
	n := 0
	for _, j := range t.JobCards {
		if !j.Closed {
			n++
		}
	}
	return n
}

// Clone returns a deep copy so overrides never touch the original snapshot.
func (t Trainset) Clone() Trainset {
	cp := t
	if t.Fitness != nil {
		f := *t.Fitness
		cp.Fitness = &f
	}
	if t.Branding != nil {
		b := *t.Branding
		cp.Branding = &b
	}
	cp.JobCards = append([]JobCard(nil), t.JobCards...)
	cp.Health = append([]ComponentHealth(nil), t.Health...)
	return cp
}

// Validate checks that the snapshot is structurally sound.
func (t Trainset) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trainset id must not be empty")
	}
	if t.CurrentMileageKm < 0 || t.TotalMileageKm < 0 {
		return fmt.Errorf("trainset %s: mileage must not be negative", t.ID)
	}
	return nil
}
