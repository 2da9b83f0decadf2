package engine

import "github.com/swarmforge/swarm/pkg/models"

// EventType identifies what happened during a run.
type EventType string

const (
	// EventPhaseStarted fires when a phase begins dispatching.
	EventPhaseStarted EventType = "phase_started"
	// EventUnitStarted fires when a unit is dispatched.
	EventUnitStarted EventType = "unit_started"
	// EventUnitFinished fires when a unit's outcome is recorded.
	EventUnitFinished EventType = "unit_finished"
	// EventPhaseCompleted fires when every unit in a phase has settled.
	EventPhaseCompleted EventType = "phase_completed"
)

// Event describes one engine occurrence. Events are emitted from the
// coordinating goroutine only, in run order.
type Event struct {
	Type        EventType
	Phase       int
	Unit        *models.WorkUnit
	Success     bool
	UnitCount   int
	FailedCount int
	Forced      bool
}
