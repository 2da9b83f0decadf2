// Package schedule groups work units into dependency-respecting phases.
package schedule

import (
	"github.com/rs/zerolog"

	"github.com/swarmforge/swarm/pkg/models"
)

// Scheduler builds execution plans from decomposed work units.
type Scheduler struct {
	log zerolog.Logger
}

// New creates a Scheduler. The logger is used only to surface forced
// phases; a zero logger is fine.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// Schedule layers units into phases. A unit enters a phase once every type
// in its DependsOn set appeared in an earlier phase. Completion is tracked
// at type granularity: one finished unit of a type marks the whole type
// complete, even if another unit of that type runs later.
//
// If an iteration finds no eligible unit while units remain, the
// dependency set is unsatisfiable or circular. All remaining units are
// flushed into one final phase marked Forced, which guarantees
// termination at the cost of possibly running a unit before its declared
// dependency.
func (s *Scheduler) Schedule(units []*models.WorkUnit) *models.ExecutionPlan {
	plan := &models.ExecutionPlan{
		Units: append([]*models.WorkUnit{}, units...),
	}

	completedTypes := make(map[models.UnitType]bool)
	remaining := append([]*models.WorkUnit{}, units...)

	for len(remaining) > 0 {
		var phase []*models.WorkUnit
		var next []*models.WorkUnit

		for _, unit := range remaining {
			if depsSatisfied(unit, completedTypes) {
				phase = append(phase, unit)
			} else {
				next = append(next, unit)
			}
		}

		if len(phase) == 0 {
			// Unsatisfiable or circular dependencies. Flush everything
			// rather than spin; mark the phase so consumers can tell it
			// apart from a normal final phase.
			s.log.Warn().
				Int("units", len(remaining)).
				Msg("unsatisfiable dependencies; flushing remaining units into a forced phase")
			plan.Phases = append(plan.Phases, models.Phase{Units: next, Forced: true})
			break
		}

		for _, unit := range phase {
			completedTypes[unit.Type] = true
		}
		plan.Phases = append(plan.Phases, models.Phase{Units: phase})
		remaining = next
	}

	for _, phase := range plan.Phases {
		if len(phase.Units) > 1 {
			plan.Parallelizable = true
			break
		}
	}

	return plan
}

// depsSatisfied reports whether every declared dependency type has
// completed in an earlier phase.
func depsSatisfied(unit *models.WorkUnit, completedTypes map[models.UnitType]bool) bool {
	for _, dep := range unit.DependsOn {
		if !completedTypes[dep] {
			return false
		}
	}
	return true
}
