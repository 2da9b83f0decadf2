package api

import (
	"fmt"
	"strings"

	"github.com/swarmforge/swarm/pkg/models"
)

// systemPrompt returns the specialist persona for a unit type.
func systemPrompt(unit *models.WorkUnit) string {
	switch unit.Type {
	case models.UnitTypeResearch:
		return "You are a research specialist. Gather best practices, prior art, and " +
			"trade-offs for the given topic. Cite concrete techniques and name the " +
			"libraries or tools you recommend. Be specific and practical."
	case models.UnitTypeAnalysis:
		return "You are a systems analyst. Assess the described system or situation, " +
			"identify risks, gaps, and constraints, and rank your findings by impact."
	case models.UnitTypeImplementation:
		persona := "You are a senior software engineer. Produce a concrete, actionable " +
			"implementation: code, configuration, and the decisions behind them."
		if unit.Subtype != "" {
			persona += fmt.Sprintf(" Focus exclusively on the %s portion of the work.", unit.Subtype)
		}
		return persona
	case models.UnitTypeValidation:
		return "You are a quality engineer. Design and describe the tests and checks " +
			"that verify the described work, including edge cases and failure modes."
	default:
		return "You are a software specialist. Complete the assigned work thoroughly."
	}
}

// userPrompt builds the unit's instruction with the task context attached.
func userPrompt(unit *models.WorkUnit, tctx models.TaskContext) string {
	var b strings.Builder

	b.WriteString(unit.Description)
	b.WriteString("\n\n## Context\n")
	if tctx.Domain != "" {
		fmt.Fprintf(&b, "- Domain: %s\n", tctx.Domain)
	}
	if tctx.TechnologyHint != "" {
		fmt.Fprintf(&b, "- Technology: %s\n", tctx.TechnologyHint)
	}
	if tctx.Scope == models.ScopeComprehensive {
		b.WriteString("- Scope: comprehensive; cover the task exhaustively\n")
	} else {
		b.WriteString("- Scope: basic; cover the essentials only\n")
	}
	if tctx.RequirementsText != "" {
		fmt.Fprintf(&b, "\n## Requirements\n%s\n", tctx.RequirementsText)
	}

	return b.String()
}
