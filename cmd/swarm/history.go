package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/swarmforge/swarm/internal/config"
	"github.com/swarmforge/swarm/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List past runs or show one run's unit outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.History.Path == "" {
			return fmt.Errorf("run history is disabled (history.path is empty)")
		}

		db, err := state.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrating history: %w", err)
		}

		if len(args) > 0 {
			return showRun(db, args[0])
		}
		return listRuns(db)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}

func listRuns(db *state.DB) error {
	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		desc := r.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Printf("%s  %s  %s  %d/%d units  score %s\n",
			r.ID[:8],
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			desc,
			r.Succeeded, r.TotalUnits,
			scoreString(r.Score),
		)
	}
	return nil
}

func showRun(db *state.DB, id string) error {
	run, err := db.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found (pass the full run ID)", id)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  Task:    %s\n", run.Description)
	if run.Domain != "" {
		fmt.Printf("  Domain:  %s\n", run.Domain)
	}
	fmt.Printf("  Phases:  %d\n", run.PhaseCount)
	fmt.Printf("  Units:   %d succeeded, %d failed\n", run.Succeeded, run.Failed)
	fmt.Printf("  Score:   %s\n", scoreString(run.Score))
	fmt.Println()

	outcomes, err := db.ListUnitOutcomes(run.ID)
	if err != nil {
		return err
	}
	for _, u := range outcomes {
		label := u.Type
		if u.Subtype != "" {
			label += "/" + u.Subtype
		}
		if u.Success {
			fmt.Fprintf(os.Stdout, "  %s phase %d  %s (%d chars)\n", color.GreenString("✓"), u.Phase+1, label, u.OutputChars)
		} else {
			fmt.Fprintf(os.Stdout, "  %s phase %d  %s: %s\n", color.RedString("✗"), u.Phase+1, label, u.Error)
		}
	}
	return nil
}

func scoreString(score int) string {
	switch {
	case score >= 80:
		return color.GreenString("%d", score)
	case score >= 50:
		return color.YellowString("%d", score)
	default:
		return color.RedString("%d", score)
	}
}
