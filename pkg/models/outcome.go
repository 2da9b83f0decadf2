package models

import "time"

// UnitOutcome records the result of executing a single work unit.
// Exactly one outcome is produced per unit per run.
type UnitOutcome struct {
	// Unit references the work unit this outcome belongs to.
	Unit *WorkUnit `json:"unit"`
	// Success is true if the executor returned without error.
	Success bool `json:"success"`
	// Output is the executor's output. Empty for failed units.
	Output string `json:"output,omitempty"`
	// Err holds the executor's error message for failed units.
	Err string `json:"error,omitempty"`
	// Phase is the index of the phase the unit ran in.
	Phase int `json:"phase"`
}

// ResultSet is the full collection of unit outcomes for one run.
// It is append-only while the run is in progress and immutable after
// the run completes.
type ResultSet struct {
	// Outcomes holds one entry per dispatched unit, stable with respect
	// to plan order.
	Outcomes []UnitOutcome `json:"outcomes"`
	// DegradedPhases lists phase indexes in which strictly more than half
	// of the units failed. Recorded for diagnostic visibility only; the
	// run continues past a degraded phase.
	DegradedPhases []int `json:"degraded_phases,omitempty"`
	// ForcedPhases lists phase indexes that were force-flushed by the
	// scheduler due to unsatisfiable dependencies.
	ForcedPhases []int `json:"forced_phases,omitempty"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the last phase settled.
	FinishedAt time.Time `json:"finished_at"`
}

// Succeeded returns the outcomes of units that completed successfully,
// in recorded order.
func (rs *ResultSet) Succeeded() []UnitOutcome {
	var out []UnitOutcome
	for _, oc := range rs.Outcomes {
		if oc.Success {
			out = append(out, oc)
		}
	}
	return out
}

// Failed returns the outcomes of units that failed, in recorded order.
func (rs *ResultSet) Failed() []UnitOutcome {
	var out []UnitOutcome
	for _, oc := range rs.Outcomes {
		if !oc.Success {
			out = append(out, oc)
		}
	}
	return out
}
