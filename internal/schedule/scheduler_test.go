package schedule

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/swarmforge/swarm/pkg/models"
)

func unit(id string, utype models.UnitType, deps ...models.UnitType) *models.WorkUnit {
	return &models.WorkUnit{
		ID:        id,
		Type:      utype,
		DependsOn: deps,
		Status:    models.UnitStatusPending,
	}
}

func collectIDs(plan *models.ExecutionPlan) map[string]int {
	ids := make(map[string]int)
	for _, phase := range plan.Phases {
		for _, u := range phase.Units {
			ids[u.ID]++
		}
	}
	return ids
}

func phaseOf(t *testing.T, plan *models.ExecutionPlan, id string) int {
	t.Helper()
	for i, phase := range plan.Phases {
		for _, u := range phase.Units {
			if u.ID == id {
				return i
			}
		}
	}
	t.Fatalf("unit %s not found in any phase", id)
	return -1
}

func TestScheduleEmpty(t *testing.T) {
	s := New(zerolog.Nop())
	plan := s.Schedule(nil)

	if len(plan.Phases) != 0 {
		t.Errorf("expected no phases, got %d", len(plan.Phases))
	}
	if plan.Parallelizable {
		t.Error("empty plan should not be parallelizable")
	}
}

func TestScheduleLayering(t *testing.T) {
	s := New(zerolog.Nop())
	units := []*models.WorkUnit{
		unit("r", models.UnitTypeResearch),
		unit("a", models.UnitTypeAnalysis),
		unit("i", models.UnitTypeImplementation, models.UnitTypeResearch, models.UnitTypeAnalysis),
		unit("v", models.UnitTypeValidation, models.UnitTypeImplementation),
	}

	plan := s.Schedule(units)

	if len(plan.Phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(plan.Phases))
	}
	if got := phaseOf(t, plan, "r"); got != 0 {
		t.Errorf("research in phase %d, want 0", got)
	}
	if got := phaseOf(t, plan, "a"); got != 0 {
		t.Errorf("analysis in phase %d, want 0", got)
	}
	if got := phaseOf(t, plan, "i"); got != 1 {
		t.Errorf("implementation in phase %d, want 1", got)
	}
	if got := phaseOf(t, plan, "v"); got != 2 {
		t.Errorf("validation in phase %d, want 2", got)
	}
	if !plan.Parallelizable {
		t.Error("plan with a two-unit phase should be parallelizable")
	}
}

func TestSchedulePermutation(t *testing.T) {
	s := New(zerolog.Nop())
	units := []*models.WorkUnit{
		unit("r", models.UnitTypeResearch),
		unit("i1", models.UnitTypeImplementation, models.UnitTypeResearch),
		unit("i2", models.UnitTypeImplementation, models.UnitTypeResearch),
		unit("v", models.UnitTypeValidation, models.UnitTypeImplementation),
	}

	plan := s.Schedule(units)

	ids := collectIDs(plan)
	if len(ids) != len(units) {
		t.Errorf("expected %d distinct units across phases, got %d", len(units), len(ids))
	}
	for _, u := range units {
		if ids[u.ID] != 1 {
			t.Errorf("unit %s appears %d times, want 1", u.ID, ids[u.ID])
		}
	}
}

func TestScheduleDependencyOrdering(t *testing.T) {
	s := New(zerolog.Nop())
	units := []*models.WorkUnit{
		unit("v", models.UnitTypeValidation, models.UnitTypeImplementation),
		unit("i", models.UnitTypeImplementation, models.UnitTypeResearch),
		unit("r", models.UnitTypeResearch),
	}

	plan := s.Schedule(units)

	if phaseOf(t, plan, "r") >= phaseOf(t, plan, "i") {
		t.Error("research must precede implementation")
	}
	if phaseOf(t, plan, "i") >= phaseOf(t, plan, "v") {
		t.Error("implementation must precede validation")
	}
}

func TestScheduleCycleTerminates(t *testing.T) {
	s := New(zerolog.Nop())
	// research depends on validation, validation depends on research:
	// no unit is ever eligible.
	units := []*models.WorkUnit{
		unit("a", models.UnitTypeResearch, models.UnitTypeValidation),
		unit("b", models.UnitTypeValidation, models.UnitTypeResearch),
	}

	plan := s.Schedule(units)

	if len(plan.Phases) != 1 {
		t.Fatalf("expected a single forced phase, got %d phases", len(plan.Phases))
	}
	if !plan.Phases[0].Forced {
		t.Error("flushed phase should be marked forced")
	}
	ids := collectIDs(plan)
	if len(ids) != 2 {
		t.Errorf("forced phase must cover all units, got %d", len(ids))
	}
}

func TestSchedulePartialDeadlockFlush(t *testing.T) {
	s := New(zerolog.Nop())
	// The validation unit's dependency type never appears in the set.
	units := []*models.WorkUnit{
		unit("r", models.UnitTypeResearch),
		unit("v", models.UnitTypeValidation, models.UnitTypeImplementation),
	}

	plan := s.Schedule(units)

	if len(plan.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(plan.Phases))
	}
	if plan.Phases[0].Forced {
		t.Error("first phase should be a normal phase")
	}
	if !plan.Phases[1].Forced {
		t.Error("second phase should be forced")
	}
	if got := phaseOf(t, plan, "v"); got != 1 {
		t.Errorf("orphaned validation unit in phase %d, want 1", got)
	}
}

func TestScheduleTypeLevelCompletion(t *testing.T) {
	s := New(zerolog.Nop())
	// Two implementation units land in different phases because the second
	// depends on validation. Completion is recorded per type, so the
	// validation unit becomes eligible after the first implementation
	// phase even though i2 has not run.
	units := []*models.WorkUnit{
		unit("i1", models.UnitTypeImplementation),
		unit("v", models.UnitTypeValidation, models.UnitTypeImplementation),
		unit("i2", models.UnitTypeImplementation, models.UnitTypeValidation),
	}

	plan := s.Schedule(units)

	if got := phaseOf(t, plan, "v"); got != 1 {
		t.Errorf("validation in phase %d, want 1 (implementation type completed by i1)", got)
	}
	if got := phaseOf(t, plan, "i2"); got != 2 {
		t.Errorf("second implementation in phase %d, want 2", got)
	}
}

func TestScheduleDoesNotMutateInputOrder(t *testing.T) {
	s := New(zerolog.Nop())
	units := []*models.WorkUnit{
		unit("r", models.UnitTypeResearch),
		unit("i", models.UnitTypeImplementation, models.UnitTypeResearch),
	}

	plan := s.Schedule(units)

	if len(plan.Units) != 2 || plan.Units[0].ID != "r" || plan.Units[1].ID != "i" {
		t.Error("plan.Units must preserve decomposition order")
	}
}
