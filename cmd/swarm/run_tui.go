package main

import (
	"context"
	"fmt"

	"github.com/swarmforge/swarm/internal/orchestrator"
	"github.com/swarmforge/swarm/internal/tui"
	"github.com/swarmforge/swarm/pkg/models"
)

// runWithTUI runs the orchestrator behind an interactive TUI.
func runWithTUI(ctx context.Context, orch *orchestrator.Orchestrator, description string, tctx models.TaskContext) (result *orchestrator.RunResult, retErr error) {
	// Recover from panics so the terminal is restored
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("panic in TUI run: %v", r)
		}
	}()

	program, _ := tui.NewProgram(description)

	// Forward orchestrator events into the TUI
	go func() {
		for ev := range orch.Events() {
			program.Send(tui.EventMsg{Event: ev})
		}
	}()

	type runOutcome struct {
		result *orchestrator.RunResult
		err    error
	}
	orchDone := make(chan runOutcome, 1)
	go func() {
		res, err := orch.Orchestrate(ctx, description, tctx)
		orchDone <- runOutcome{result: res, err: err}

		switch {
		case err != nil:
			program.Send(tui.RunDoneMsg{Success: false, Message: err.Error()})
		case res.Report.Summary.TotalFailed > 0:
			program.Send(tui.RunDoneMsg{Success: false, Message: fmt.Sprintf("completed with %d failed units", res.Report.Summary.TotalFailed)})
		default:
			program.Send(tui.RunDoneMsg{Success: true, Message: fmt.Sprintf("all %d units succeeded", res.Report.Summary.TotalSucceeded)})
		}
	}()

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	outcome := <-orchDone
	return outcome.result, outcome.err
}
