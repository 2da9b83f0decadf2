// Package engine dispatches execution plan phases to an injected executor.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/swarmforge/swarm/pkg/models"
)

// Executor performs the actual work of a unit. Implementations must be
// safe for concurrent invocation: every unit in a phase calls Execute at
// the same time. Rate limiting is the implementation's concern.
type Executor interface {
	Execute(ctx context.Context, unit *models.WorkUnit, tctx models.TaskContext) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, unit *models.WorkUnit, tctx models.TaskContext) (string, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, unit *models.WorkUnit, tctx models.TaskContext) (string, error) {
	return f(ctx, unit, tctx)
}

// Controller gates progress at phase boundaries. The engine never
// interrupts a dispatched phase; a controller only acts between phases.
type Controller interface {
	// WaitIfPaused blocks while paused. A non-nil error means a stop was
	// requested; the engine fails all not-yet-dispatched units and
	// returns.
	WaitIfPaused(ctx context.Context) error
}

// Engine runs an execution plan phase by phase. Phases run strictly
// sequentially; within a phase every unit is dispatched concurrently and
// the engine waits for all of them to settle before moving on. No unit's
// failure short-circuits its siblings, and nothing is retried.
type Engine struct {
	exec    Executor
	log     zerolog.Logger
	control Controller
	notify  func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithController sets a phase-boundary controller.
func WithController(c Controller) Option {
	return func(e *Engine) { e.control = c }
}

// WithNotify sets a callback invoked for engine events. The callback runs
// on the coordinating goroutine and must not block.
func WithNotify(fn func(Event)) Option {
	return func(e *Engine) { e.notify = fn }
}

// New creates an Engine around the given executor.
func New(exec Executor, opts ...Option) *Engine {
	e := &Engine{
		exec: exec,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes every phase of the plan and returns one outcome per unit.
// Executor errors become failed outcomes, never Run errors. A phase in
// which more than half the units failed is recorded in DegradedPhases and
// the run continues. Run returns only after every unit has settled.
func (e *Engine) Run(ctx context.Context, plan *models.ExecutionPlan, tctx models.TaskContext) *models.ResultSet {
	rs := &models.ResultSet{StartedAt: time.Now()}

	for i, phase := range plan.Phases {
		if phase.Forced {
			rs.ForcedPhases = append(rs.ForcedPhases, i)
			e.log.Warn().Int("phase", i).Msg("running forced phase; dependency order not guaranteed")
		}

		if e.control != nil {
			if err := e.control.WaitIfPaused(ctx); err != nil {
				e.log.Warn().Err(err).Int("phase", i).Msg("stop requested; failing remaining units")
				e.failRemaining(rs, plan.Phases[i:], i, err)
				break
			}
		}

		e.emit(Event{Type: EventPhaseStarted, Phase: i, UnitCount: len(phase.Units), Forced: phase.Forced})
		e.runPhase(ctx, rs, phase, i, tctx)
	}

	rs.FinishedAt = time.Now()
	return rs
}

// runPhase dispatches all units in the phase concurrently and appends
// their outcomes, stable with respect to the phase's unit order, once all
// calls have settled.
func (e *Engine) runPhase(ctx context.Context, rs *models.ResultSet, phase models.Phase, index int, tctx models.TaskContext) {
	outcomes := make([]models.UnitOutcome, len(phase.Units))

	var g errgroup.Group
	for i, unit := range phase.Units {
		unit.Status = models.UnitStatusRunning
		e.emit(Event{Type: EventUnitStarted, Phase: index, Unit: unit})

		g.Go(func() error {
			output, err := e.exec.Execute(ctx, unit, tctx)
			if err != nil {
				outcomes[i] = models.UnitOutcome{Unit: unit, Success: false, Err: err.Error(), Phase: index}
				return nil
			}
			outcomes[i] = models.UnitOutcome{Unit: unit, Success: true, Output: output, Phase: index}
			return nil
		})
	}
	// Wait-for-all-to-settle barrier. Goroutines never return errors;
	// failures live in the outcome slots.
	_ = g.Wait()

	failed := 0
	for _, oc := range outcomes {
		if oc.Success {
			oc.Unit.Status = models.UnitStatusSucceeded
		} else {
			oc.Unit.Status = models.UnitStatusFailed
			failed++
		}
		rs.Outcomes = append(rs.Outcomes, oc)
		e.emit(Event{Type: EventUnitFinished, Phase: index, Unit: oc.Unit, Success: oc.Success})
	}

	if failed*2 > len(phase.Units) {
		rs.DegradedPhases = append(rs.DegradedPhases, index)
		e.log.Warn().
			Int("phase", index).
			Int("failed", failed).
			Int("units", len(phase.Units)).
			Msg("more than half of phase units failed; continuing")
	}

	e.emit(Event{Type: EventPhaseCompleted, Phase: index, UnitCount: len(phase.Units), FailedCount: failed})
}

// failRemaining records failed outcomes for every unit in the given
// phases so that the result set stays total when a stop arrives between
// phases.
func (e *Engine) failRemaining(rs *models.ResultSet, phases []models.Phase, firstIndex int, cause error) {
	for offset, phase := range phases {
		index := firstIndex + offset
		for _, unit := range phase.Units {
			unit.Status = models.UnitStatusFailed
			rs.Outcomes = append(rs.Outcomes, models.UnitOutcome{
				Unit:    unit,
				Success: false,
				Err:     cause.Error(),
				Phase:   index,
			})
			e.emit(Event{Type: EventUnitFinished, Phase: index, Unit: unit, Success: false})
		}
	}
}

func (e *Engine) emit(ev Event) {
	if e.notify != nil {
		e.notify(ev)
	}
}
