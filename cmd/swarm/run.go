package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/swarmforge/swarm/internal/api"
	"github.com/swarmforge/swarm/internal/classify"
	"github.com/swarmforge/swarm/internal/config"
	"github.com/swarmforge/swarm/internal/control"
	"github.com/swarmforge/swarm/internal/engine"
	"github.com/swarmforge/swarm/internal/logging"
	"github.com/swarmforge/swarm/internal/orchestrator"
	"github.com/swarmforge/swarm/internal/render"
	"github.com/swarmforge/swarm/internal/state"
	"github.com/swarmforge/swarm/pkg/models"
)

var (
	runDomain        string
	runTech          string
	runRequirements  string
	runComprehensive bool
	runHeadless      bool
	runOffline       bool
	runMaxUnits      int
)

var runCmd = &cobra.Command{
	Use:   "run <task>",
	Short: "Classify, decompose, and execute a task",
	Long: `Run a task through the full pipeline.

The task description is first classified. Simple tasks are reported as
such and left to a single worker. Complex tasks are decomposed into
typed work units (research, analysis, implementation, validation),
scheduled into dependency-respecting phases, and executed phase by
phase with all units in a phase running concurrently.

Pause or stop a running task from another shell by creating a file
named "pause" or "stop" under .swarm/signals in the working directory;
removing the pause file resumes at the next phase boundary.

Use --offline to run without API access; units then produce
deterministic placeholder output, which is useful for previewing the
plan a task would get.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTask,
}

func init() {
	runCmd.Flags().StringVar(&runDomain, "domain", "", "Problem domain hint (e.g. web, infra, data)")
	runCmd.Flags().StringVar(&runTech, "tech", "", "Technology hint (e.g. go, react, postgres)")
	runCmd.Flags().StringVar(&runRequirements, "requirements", "", "Path to a file with additional requirements text")
	runCmd.Flags().BoolVar(&runComprehensive, "comprehensive", false, "Ask for comprehensive output instead of essentials")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run without TUI (headless mode)")
	runCmd.Flags().BoolVar(&runOffline, "offline", false, "Run without API access using placeholder output")
	runCmd.Flags().IntVar(&runMaxUnits, "max-units", 0, "Override the configured concurrent unit limit")
}

func runTask(cmd *cobra.Command, args []string) error {
	description := strings.Join(args, " ")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.Init(cfg.Log)
	defer logging.Close()

	tctx, err := buildTaskContext()
	if err != nil {
		return err
	}

	exec, client, err := buildExecutor(cfg)
	if err != nil {
		return err
	}

	opts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithMaxUnits(maxUnits(cfg)),
	}

	if cfg.Vocabulary.Path != "" {
		vocab, err := classify.LoadVocabulary(cfg.Vocabulary.Path)
		if err != nil {
			return fmt.Errorf("loading vocabulary: %w", err)
		}
		opts = append(opts, orchestrator.WithVocabulary(vocab))
	}

	cwd, _ := os.Getwd()
	manager, err := control.NewManager(cwd)
	if err != nil {
		logger.Warn().Err(err).Msg("signal control unavailable; pause/stop files will be ignored")
	} else {
		defer manager.Close()
		opts = append(opts, orchestrator.WithController(manager))
	}

	if cfg.History.Path != "" {
		db, err := state.Open(cfg.History.Path)
		if err == nil {
			err = db.Migrate()
		}
		if err != nil {
			logger.Warn().Err(err).Msg("run history unavailable")
		} else {
			defer db.Close()
			opts = append(opts, orchestrator.WithStore(db))
		}
	}

	orch := orchestrator.New(exec, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var result *orchestrator.RunResult
	var runErr error
	if runHeadless {
		result, runErr = runHeadlessMode(ctx, orch, description, tctx)
	} else {
		result, runErr = runWithTUI(ctx, orch, description, tctx)
	}

	if runErr != nil {
		if errors.Is(runErr, orchestrator.ErrNotComplex) {
			fmt.Println("Task classified as simple; nothing to decompose.")
			fmt.Println("Run it directly with a single worker.")
			return nil
		}
		if errors.Is(runErr, orchestrator.ErrNotDecomposable) {
			fmt.Println("Task looks complex but did not split into multiple units.")
			fmt.Println("Run it directly with a single worker, or rephrase it with explicit activities.")
			return nil
		}
		return runErr
	}

	if result != nil && result.Report != nil && !runHeadless {
		render.New(os.Stdout).Report(result.Report)
	}

	if client != nil {
		in, out := client.Tracker().Total()
		fmt.Printf("API usage: %d calls, %d input tokens, %d output tokens\n", client.Tracker().Calls(), in, out)
	}

	return nil
}

// maxUnits resolves the concurrent unit limit from the flag and config.
func maxUnits(cfg *config.Config) int {
	if runMaxUnits > 0 {
		return runMaxUnits
	}
	if cfg.Policy.MaxConcurrentUnits > 0 {
		return cfg.Policy.MaxConcurrentUnits
	}
	return classify.DefaultMaxConcurrentUnits
}

// buildTaskContext assembles the task context from flags.
func buildTaskContext() (models.TaskContext, error) {
	tctx := models.TaskContext{
		Domain:         runDomain,
		TechnologyHint: runTech,
		Scope:          models.ScopeBasic,
	}
	if runComprehensive {
		tctx.Scope = models.ScopeComprehensive
	}

	if runRequirements != "" {
		data, err := os.ReadFile(runRequirements)
		if err != nil {
			return tctx, fmt.Errorf("reading requirements file: %w", err)
		}
		tctx.RequirementsText = string(data)
	}

	return tctx, nil
}

// buildExecutor creates the unit executor. The returned client is nil in
// offline mode.
func buildExecutor(cfg *config.Config) (engine.Executor, *api.Client, error) {
	if runOffline {
		return engine.NewFallbackExecutor(), nil, nil
	}

	client, err := api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w (use --offline to run without API access)", err)
	}

	return api.NewUnitExecutor(client), client, nil
}

// runHeadlessMode runs the orchestrator without a TUI, printing the plan
// when it is ready and the report when the run finishes.
func runHeadlessMode(ctx context.Context, orch *orchestrator.Orchestrator, description string, tctx models.TaskContext) (*orchestrator.RunResult, error) {
	r := render.New(os.Stdout)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range orch.Events() {
			switch ev.Type {
			case orchestrator.EventPlanReady:
				r.Plan(ev.Plan)
			case orchestrator.EventEngine:
				if ev.Engine != nil && ev.Engine.Type == engine.EventPhaseCompleted {
					fmt.Printf("phase %d completed (%d units, %d failed)\n", ev.Engine.Phase+1, ev.Engine.UnitCount, ev.Engine.FailedCount)
				}
			}
		}
	}()

	result, err := orch.Orchestrate(ctx, description, tctx)
	<-done
	if err != nil {
		return result, err
	}

	fmt.Println()
	r.Report(result.Report)
	return result, nil
}
