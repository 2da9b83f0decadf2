package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/swarmforge/swarm/pkg/models"
)

// FallbackExecutor synthesizes deterministic placeholder output for hosts
// without a real execution backend. The engine does not special-case its
// absence of a backend; callers inject this executor explicitly.
type FallbackExecutor struct{}

// NewFallbackExecutor creates a FallbackExecutor.
func NewFallbackExecutor() *FallbackExecutor {
	return &FallbackExecutor{}
}

// Execute returns placeholder output shaped like a real unit result. It
// never fails and ignores the context beyond the signature contract.
func (f *FallbackExecutor) Execute(_ context.Context, unit *models.WorkUnit, tctx models.TaskContext) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", unit.Label())
	fmt.Fprintf(&b, "Placeholder result for unit %s.\n\n", unit.ID)
	fmt.Fprintf(&b, "Instruction: %s\n", unit.Description)
	if tctx.Domain != "" {
		fmt.Fprintf(&b, "Domain: %s\n", tctx.Domain)
	}
	if tctx.TechnologyHint != "" {
		fmt.Fprintf(&b, "Technology: %s\n", tctx.TechnologyHint)
	}
	b.WriteString("\nNo execution backend was configured; treat this output as a dry-run marker.\n")

	return b.String(), nil
}

// Verify FallbackExecutor implements Executor at compile time.
var _ Executor = (*FallbackExecutor)(nil)
