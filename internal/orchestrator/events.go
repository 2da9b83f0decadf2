package orchestrator

import (
	"github.com/swarmforge/swarm/internal/classify"
	"github.com/swarmforge/swarm/internal/engine"
	"github.com/swarmforge/swarm/pkg/models"
)

// EventType identifies the kind of orchestrator event.
type EventType string

const (
	// EventClassified is emitted after the task description is classified.
	EventClassified EventType = "classified"
	// EventPlanReady is emitted once the execution plan is scheduled.
	EventPlanReady EventType = "plan_ready"
	// EventEngine wraps a phase or unit event from the execution engine.
	EventEngine EventType = "engine"
	// EventCompleted is emitted when the run has finished and the report
	// is available.
	EventCompleted EventType = "completed"
)

// OrchestratorEvent is a progress update published during a run.
// Only the fields relevant to the event type are populated.
type OrchestratorEvent struct {
	Type     EventType
	Decision *classify.Decision
	Plan     *models.ExecutionPlan
	Engine   *engine.Event
	Report   *models.Report
}
