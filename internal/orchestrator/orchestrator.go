// Package orchestrator coordinates the full run pipeline: classify the
// task, decompose it into work units, schedule dependency-respecting
// phases, execute them, and aggregate the outcomes into a report.
package orchestrator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/swarmforge/swarm/internal/aggregate"
	"github.com/swarmforge/swarm/internal/classify"
	"github.com/swarmforge/swarm/internal/decompose"
	"github.com/swarmforge/swarm/internal/engine"
	"github.com/swarmforge/swarm/internal/schedule"
	"github.com/swarmforge/swarm/internal/state"
	"github.com/swarmforge/swarm/pkg/models"
)

// ErrNotComplex means the task was classified as simple and should be
// handled by a single worker rather than decomposed.
var ErrNotComplex = errors.New("task is not complex enough to decompose")

// ErrNotDecomposable means classification judged the task complex but
// decomposition produced fewer than two units, so there is nothing to
// parallelize.
var ErrNotDecomposable = errors.New("task did not decompose into multiple units")

// Orchestrator wires the pipeline stages together around an executor.
type Orchestrator struct {
	exec     engine.Executor
	vocab    classify.Vocabulary
	maxUnits int
	log      zerolog.Logger
	store    *state.DB
	control  engine.Controller
	emitter  *EventEmitter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithVocabulary overrides the default classification vocabulary.
func WithVocabulary(v classify.Vocabulary) Option {
	return func(o *Orchestrator) { o.vocab = v }
}

// WithMaxUnits limits how many units a plan may contain.
func WithMaxUnits(n int) Option {
	return func(o *Orchestrator) { o.maxUnits = n }
}

// WithStore enables run history persistence.
func WithStore(db *state.DB) Option {
	return func(o *Orchestrator) { o.store = db }
}

// WithController gates execution at phase boundaries for pause/stop.
func WithController(c engine.Controller) Option {
	return func(o *Orchestrator) { o.control = c }
}

// New creates an Orchestrator around the given executor.
func New(exec engine.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		exec:     exec,
		vocab:    classify.DefaultVocabulary(),
		maxUnits: classify.DefaultMaxConcurrentUnits,
		log:      zerolog.Nop(),
		emitter:  NewEventEmitter(64),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Events returns the channel of progress events for this orchestrator.
// The channel is closed when Orchestrate returns.
func (o *Orchestrator) Events() <-chan OrchestratorEvent {
	return o.emitter.Events()
}

// RunResult bundles everything produced by a run.
type RunResult struct {
	RunID    string
	Decision classify.Decision
	Plan     *models.ExecutionPlan
	Results  *models.ResultSet
	Report   *models.Report
}

// Orchestrate runs the full pipeline for the given task description.
//
// It returns ErrNotComplex when the task does not warrant decomposition
// and ErrNotDecomposable when decomposition yields fewer than two units;
// in both cases the returned result still carries the classification
// decision so callers can explain the fallback. On success the result
// holds the plan, every unit outcome, and the aggregated report.
func (o *Orchestrator) Orchestrate(ctx context.Context, description string, tctx models.TaskContext) (*RunResult, error) {
	defer o.emitter.Close()

	result := &RunResult{RunID: uuid.New().String()}

	classifier := classify.New(o.vocab, o.maxUnits)
	result.Decision = classifier.Classify(description)
	o.emitter.Emit(OrchestratorEvent{Type: EventClassified, Decision: &result.Decision})
	o.log.Info().
		Bool("complex", result.Decision.Complex).
		Int("estimated_units", result.Decision.EstimatedUnits).
		Msg("task classified")

	if !result.Decision.Complex {
		return result, ErrNotComplex
	}

	units := decompose.New(o.maxUnits).Decompose(description, tctx)
	if len(units) < 2 {
		return result, ErrNotDecomposable
	}

	result.Plan = schedule.New(o.log).Schedule(units)
	o.emitter.Emit(OrchestratorEvent{Type: EventPlanReady, Plan: result.Plan})
	o.log.Info().
		Int("units", len(result.Plan.Units)).
		Int("phases", result.Plan.PhaseCount()).
		Bool("parallelizable", result.Plan.Parallelizable).
		Msg("execution plan ready")

	eng := engine.New(o.exec,
		engine.WithLogger(o.log),
		engine.WithController(o.control),
		engine.WithNotify(func(ev engine.Event) {
			o.emitter.Emit(OrchestratorEvent{Type: EventEngine, Engine: &ev})
		}),
	)
	result.Results = eng.Run(ctx, result.Plan, tctx)

	result.Report = aggregate.Aggregate(result.Results)
	o.emitter.Emit(OrchestratorEvent{Type: EventCompleted, Report: result.Report})
	o.log.Info().
		Int("succeeded", result.Report.Summary.TotalSucceeded).
		Int("failed", result.Report.Summary.TotalFailed).
		Int("score", result.Report.Validation.Score).
		Msg("run completed")

	o.persist(result, description, tctx)

	return result, nil
}

// persist saves the run to history when a store is configured.
// Persistence failures are logged, never returned; the report is already
// complete by the time history is written.
func (o *Orchestrator) persist(result *RunResult, description string, tctx models.TaskContext) {
	if o.store == nil {
		return
	}

	run, records := state.BuildRunRecord(result.RunID, description, tctx, result.Plan, result.Results, result.Report)
	if err := o.store.SaveRun(run, records); err != nil {
		o.log.Error().Err(err).Str("run_id", result.RunID).Msg("failed to save run history")
	}
}
