// Package render prints run reports for terminal consumption.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/swarmforge/swarm/pkg/models"
)

// Renderer writes a formatted report to an output stream.
type Renderer struct {
	out io.Writer
}

// New creates a Renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// typeOrder fixes the display order of result sections.
var typeOrder = []models.UnitType{
	models.UnitTypeResearch,
	models.UnitTypeAnalysis,
	models.UnitTypeImplementation,
	models.UnitTypeValidation,
}

// Report prints the full report: summary, results by type, errors,
// recommendations, next steps, and validation issues.
func (r *Renderer) Report(report *models.Report) {
	bold := color.New(color.Bold)

	bold.Fprintln(r.out, "Run Summary")
	fmt.Fprintf(r.out, "  Succeeded:       %d\n", report.Summary.TotalSucceeded)
	fmt.Fprintf(r.out, "  Failed:          %d\n", report.Summary.TotalFailed)
	fmt.Fprintf(r.out, "  Completion rate: %d%%\n", report.Summary.CompletionRate)
	fmt.Fprintf(r.out, "  Score:           %s\n", r.scoreString(report.Validation.Score))
	fmt.Fprintln(r.out)

	r.resultsByType(report)
	r.errors(report.Errors)
	r.recommendations(report.Recommendations)
	r.nextSteps(report.NextSteps)
	r.issues(report.Validation.Issues)
}

// scoreString colors the score by band: green >= 80, yellow >= 50, red below.
func (r *Renderer) scoreString(score int) string {
	switch {
	case score >= 80:
		return color.GreenString("%d/100", score)
	case score >= 50:
		return color.YellowString("%d/100", score)
	default:
		return color.RedString("%d/100", score)
	}
}

func (r *Renderer) resultsByType(report *models.Report) {
	if len(report.ResultsByType) == 0 {
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintln(r.out, "Results")
	for _, utype := range typeOrder {
		outcomes, ok := report.ResultsByType[utype]
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "  %s (%d)\n", utype, len(outcomes))
		for _, oc := range outcomes {
			fmt.Fprintf(r.out, "    %s %s\n", color.GreenString("✓"), oc.Unit.Label())
			if excerpt := firstLine(oc.Output); excerpt != "" {
				fmt.Fprintf(r.out, "      %s\n", excerpt)
			}
		}
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) errors(failures []models.UnitOutcome) {
	if len(failures) == 0 {
		return
	}

	color.New(color.Bold).Fprintln(r.out, "Errors")
	for _, oc := range failures {
		fmt.Fprintf(r.out, "  %s %s: %s\n", color.RedString("✗"), oc.Unit.Label(), oc.Err)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) recommendations(recs []models.Recommendation) {
	if len(recs) == 0 {
		return
	}

	color.New(color.Bold).Fprintln(r.out, "Recommendations")
	for _, rec := range recs {
		fmt.Fprintf(r.out, "  [%s] %s: %s\n", r.priorityString(rec.Priority), rec.Category, rec.Detail)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) priorityString(p models.RecommendationPriority) string {
	switch p {
	case models.PriorityHigh:
		return color.RedString(string(p))
	case models.PriorityMedium:
		return color.YellowString(string(p))
	default:
		return string(p)
	}
}

func (r *Renderer) nextSteps(steps []string) {
	if len(steps) == 0 {
		return
	}

	color.New(color.Bold).Fprintln(r.out, "Next Steps")
	for i, step := range steps {
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) issues(issues []string) {
	if len(issues) == 0 {
		return
	}

	color.New(color.Bold).Fprintln(r.out, "Issues")
	for _, issue := range issues {
		fmt.Fprintf(r.out, "  %s %s\n", color.YellowString("⚠"), issue)
	}
}

// Plan prints a short view of the execution plan before it runs.
func (r *Renderer) Plan(plan *models.ExecutionPlan) {
	color.New(color.Bold).Fprintf(r.out, "Execution Plan (%d units, %d phases)\n", len(plan.Units), plan.PhaseCount())
	for i, phase := range plan.Phases {
		label := fmt.Sprintf("Phase %d", i+1)
		if phase.Forced {
			label += " (forced)"
		}
		fmt.Fprintf(r.out, "  %s:\n", label)
		for _, unit := range phase.Units {
			fmt.Fprintf(r.out, "    - %s\n", unit.Label())
		}
	}
	fmt.Fprintln(r.out)
}

// firstLine returns the first non-empty line of s, truncated to 80 runes.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > 80 {
			return string(runes[:77]) + "..."
		}
		return line
	}
	return ""
}
