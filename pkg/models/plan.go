package models

// Phase is a batch of work units whose declared dependency types are all
// satisfied by earlier phases, so its units may run concurrently.
type Phase struct {
	// Units references the work units in this phase, in plan order.
	Units []*WorkUnit `json:"units"`
	// Forced is true when the phase was produced by flushing remaining
	// units whose dependencies could not be satisfied (an unsatisfiable
	// or circular dependency set). Units in a forced phase may run before
	// their declared dependencies.
	Forced bool `json:"forced,omitempty"`
}

// ExecutionPlan is the ordered phase layout produced by the scheduler.
// It is built once and read-only thereafter.
type ExecutionPlan struct {
	// Units is the full unit set in stable decomposition order.
	Units []*WorkUnit `json:"units"`
	// Phases is the ordered list of concurrent batches.
	Phases []Phase `json:"phases"`
	// Parallelizable is true if any phase contains more than one unit.
	Parallelizable bool `json:"parallelizable"`
}

// PhaseCount returns the number of phases in the plan.
func (p *ExecutionPlan) PhaseCount() int {
	return len(p.Phases)
}

// WidestPhase returns the largest number of units in any single phase.
// This bounds how many executor calls can be in flight at once.
func (p *ExecutionPlan) WidestPhase() int {
	widest := 0
	for _, phase := range p.Phases {
		if len(phase.Units) > widest {
			widest = len(phase.Units)
		}
	}
	return widest
}
