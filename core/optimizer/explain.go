package optimizer

import (
	"fmt"
	"time"

	"github.com/transitflow/depotplan/core/model"
)

// ExplanationBuilder assembles the final per-trainset decision record from
// the category, score, reasons and conflicts. Same inputs always produce the
// same reason list.
type ExplanationBuilder struct{}

// Build creates the immutable decision record for one trainset. The category
// rationale leads, followed by the scorer's reasons in their fixed order.
func (ExplanationBuilder) Build(c Candidate, cat model.DecisionCategory, rank int, target model.StablingPosition, conflicts []model.Conflict, now time.Time) model.Decision {
	reasons := make([]string, 0, len(c.Reasons)+1)
	reasons = append(reasons, categoryReason(cat, rank))
	reasons = append(reasons, c.Reasons...)

	return model.Decision{
		TrainsetID: c.Trainset.ID,
		Category:   cat,
		Score:      c.Score,
		Reasons:    reasons,
		Conflicts:  conflicts,
		Target:     target,
		Timestamp:  now,
	}
}

func categoryReason(cat model.DecisionCategory, rank int) string {
	switch cat {
	case model.CategoryInService:
		return fmt.Sprintf("selected for revenue service (rank %d)", rank+1)
	case model.CategoryMaintenance:
		return "routed to maintenance bay by urgency"
	case model.CategoryCleaning:
		return "due for scheduled deep cleaning"
	case model.CategoryInspection:
		return "due for periodic inspection"
	default:
		return "held on standby"
	}
}
