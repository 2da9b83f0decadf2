package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/swarmforge/swarm/internal/engine"
	"github.com/swarmforge/swarm/pkg/models"
)

// UnitExecutor executes work units through the Anthropic Messages API.
// Each unit type runs with a specialist system prompt. The executor is
// stateless beyond its client and safe for concurrent calls.
type UnitExecutor struct {
	client    *Client
	maxTokens int64
}

// NewUnitExecutor creates an executor around the given client.
func NewUnitExecutor(client *Client) *UnitExecutor {
	return &UnitExecutor{
		client:    client,
		maxTokens: 8192,
	}
}

// Execute runs one work unit and returns the model's text output.
func (x *UnitExecutor) Execute(ctx context.Context, unit *models.WorkUnit, tctx models.TaskContext) (string, error) {
	resp, err := x.client.sdk().Messages.New(ctx, anthropic.MessageNewParams{
		Model:     x.client.Model(),
		MaxTokens: x.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt(unit)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(unit, tctx))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("API call failed: %w", err)
	}

	x.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	return result.String(), nil
}

// Verify UnitExecutor implements the engine's executor at compile time.
var _ engine.Executor = (*UnitExecutor)(nil)
