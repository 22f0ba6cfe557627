package optimizer

import (
	"fmt"
	"sort"

	"github.com/transitflow/depotplan/core/model"
)

// AssignmentResult is the category layout produced by the assigner before
// conflicts and explanations are attached.
type AssignmentResult struct {
	Categories       map[string]model.DecisionCategory
	Rank             map[string]int
	Targets          map[string]model.StablingPosition
	ShuntingMoves    int
	OverBudget       bool
	ServiceShortfall bool
	Alerts           []model.Alert
}

// DecisionAssigner converts ranked candidates into category assignments while
// honoring fleet-wide capacity constraints.
type DecisionAssigner struct {
	thresholds Thresholds
}

// NewDecisionAssigner returns an assigner bound to the given policy.
func NewDecisionAssigner(th Thresholds) *DecisionAssigner {
	return &DecisionAssigner{thresholds: th}
}

// Assign lays out the fleet. The input must already be ranked (see Rank).
//
// The service quota takes the top eligible candidates, up to the service
// floor plus any configured slack. Maintenance bays go to the
// highest-urgency remainder, then cleaning and inspection cadence flags
// fill their bays, and everything else stands by. If the implied shunting
// moves exceed the nightly budget, slack service candidates above the
// service floor are re-homed to standby in reverse rank order; if the budget
// still cannot be met a conflict is raised instead of silently breaking it.
func (a *DecisionAssigner) Assign(ranked []Candidate) AssignmentResult {
	th := a.thresholds
	res := AssignmentResult{
		Categories: make(map[string]model.DecisionCategory, len(ranked)),
		Rank:       make(map[string]int, len(ranked)),
		Targets:    make(map[string]model.StablingPosition, len(ranked)),
	}
	for i, c := range ranked {
		res.Rank[c.Trainset.ID] = i
	}

	quota := th.MinServiceTrains + th.ServiceSlackTrains
	var serviceIDs []string
	for _, c := range ranked {
		if !c.Eval.Eligible || len(serviceIDs) >= quota {
			continue
		}
		serviceIDs = append(serviceIDs, c.Trainset.ID)
		res.Categories[c.Trainset.ID] = model.CategoryInService
	}
	if len(serviceIDs) < th.MinServiceTrains {
		// Mass ineligibility: run everything we legally can and alert
		// instead of failing the run.
		res.ServiceShortfall = true
		res.Alerts = append(res.Alerts, model.Alert{
			Level: model.AlertCritical,
			Message: fmt.Sprintf("only %d of %d required trainsets eligible for service",
				len(serviceIDs), th.MinServiceTrains),
		})
	}

	// Maintenance bays: highest urgency first among the remainder.
	rest := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		if _, ok := res.Categories[c.Trainset.ID]; !ok {
			rest = append(rest, c)
		}
	}
	maint := make([]Candidate, len(rest))
	copy(maint, rest)
	sort.SliceStable(maint, func(i, j int) bool {
		if maint[i].Eval.MaintenanceUrgency != maint[j].Eval.MaintenanceUrgency {
			return maint[i].Eval.MaintenanceUrgency > maint[j].Eval.MaintenanceUrgency
		}
		return res.Rank[maint[i].Trainset.ID] < res.Rank[maint[j].Trainset.ID]
	})
	slots := 0
	for _, c := range maint {
		if slots >= th.MaxMaintenanceSlots || c.Eval.MaintenanceUrgency == 0 {
			break
		}
		res.Categories[c.Trainset.ID] = model.CategoryMaintenance
		slots++
	}

	// Cleaning and inspection by cadence, bounded by bay capacity.
	cleaning, inspection := 0, 0
	for _, c := range rest {
		if _, ok := res.Categories[c.Trainset.ID]; ok {
			continue
		}
		switch {
		case c.Eval.CleaningDue && cleaning < th.MaxCleaningSlots:
			res.Categories[c.Trainset.ID] = model.CategoryCleaning
			cleaning++
		case c.Eval.InspectionDue && inspection < th.MaxInspectionSlots:
			res.Categories[c.Trainset.ID] = model.CategoryInspection
			inspection++
		}
	}
	for _, c := range ranked {
		if _, ok := res.Categories[c.Trainset.ID]; !ok {
			res.Categories[c.Trainset.ID] = model.CategoryStandby
		}
	}

	a.assignTargets(ranked, &res)
	res.ShuntingMoves = countMoves(ranked, res)

	if res.ShuntingMoves > th.MaxShuntingMoves {
		a.rehome(ranked, &res)
	}
	if res.ShuntingMoves > th.MaxShuntingMoves {
		res.OverBudget = true
		res.Alerts = append(res.Alerts, model.Alert{
			Level: model.AlertWarning,
			Message: fmt.Sprintf("shunting budget exceeded: %d moves planned, %d allowed",
				res.ShuntingMoves, th.MaxShuntingMoves),
		})
	}
	return res
}

// targetClass maps a disposition to the track class it requires. Standby
// keeps the current position.
func targetClass(cat model.DecisionCategory, current model.TrackClass) model.TrackClass {
	switch cat {
	case model.CategoryInService:
		return model.TrackService
	case model.CategoryMaintenance, model.CategoryInspection:
		return model.TrackMaintenance
	case model.CategoryCleaning:
		return model.TrackCleaning
	default:
		return current
	}
}

func (a *DecisionAssigner) assignTargets(ranked []Candidate, res *AssignmentResult) {
	bays := map[model.TrackClass]int{}
	for _, c := range ranked {
		cur := c.Trainset.Position
		class := targetClass(res.Categories[c.Trainset.ID], cur.Track)
		if class == cur.Track {
			res.Targets[c.Trainset.ID] = cur
			continue
		}
		bays[class]++
		res.Targets[c.Trainset.ID] = model.StablingPosition{Track: class, Bay: bays[class]}
	}
}

func countMoves(ranked []Candidate, res AssignmentResult) int {
	moves := 0
	for _, c := range ranked {
		if res.Targets[c.Trainset.ID].Track != c.Trainset.Position.Track {
			moves++
		}
	}
	return moves
}

// rehome moves low-score service candidates above the service floor back to
// standby until the shunting budget is met.
func (a *DecisionAssigner) rehome(ranked []Candidate, res *AssignmentResult) {
	inService := 0
	for _, cat := range res.Categories {
		if cat == model.CategoryInService {
			inService++
		}
	}
	for i := len(ranked) - 1; i >= 0; i-- {
		if res.ShuntingMoves <= a.thresholds.MaxShuntingMoves {
			return
		}
		if inService <= a.thresholds.MinServiceTrains {
			return
		}
		c := ranked[i]
		id := c.Trainset.ID
		if res.Categories[id] != model.CategoryInService {
			continue
		}
		if res.Targets[id].Track == c.Trainset.Position.Track {
			continue // re-homing would not save a move
		}
		res.Categories[id] = model.CategoryStandby
		res.Targets[id] = c.Trainset.Position
		res.ShuntingMoves--
		inService--
	}
}
