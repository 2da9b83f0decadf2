package api

import (
	"strings"
	"testing"

	"github.com/swarmforge/swarm/pkg/models"
)

func TestSystemPromptPerType(t *testing.T) {
	tests := []struct {
		name string
		unit models.WorkUnit
		want string
	}{
		{"research", models.WorkUnit{Type: models.UnitTypeResearch}, "research specialist"},
		{"analysis", models.WorkUnit{Type: models.UnitTypeAnalysis}, "systems analyst"},
		{"implementation", models.WorkUnit{Type: models.UnitTypeImplementation}, "software engineer"},
		{"validation", models.WorkUnit{Type: models.UnitTypeValidation}, "quality engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := systemPrompt(&tt.unit)
			if !strings.Contains(got, tt.want) {
				t.Errorf("system prompt for %s missing %q: %q", tt.unit.Type, tt.want, got)
			}
		})
	}
}

func TestSystemPromptSubtypeFocus(t *testing.T) {
	unit := &models.WorkUnit{Type: models.UnitTypeImplementation, Subtype: "backend"}
	got := systemPrompt(unit)
	if !strings.Contains(got, "backend portion") {
		t.Errorf("expected subtype focus in prompt, got %q", got)
	}
}

func TestUserPromptIncludesContext(t *testing.T) {
	unit := &models.WorkUnit{Description: "Implement the API"}
	tctx := models.TaskContext{
		Domain:           "web",
		TechnologyHint:   "go",
		RequirementsText: "must support pagination",
		Scope:            models.ScopeComprehensive,
	}

	got := userPrompt(unit, tctx)

	for _, want := range []string{"Implement the API", "Domain: web", "Technology: go", "comprehensive", "must support pagination"} {
		if !strings.Contains(got, want) {
			t.Errorf("user prompt missing %q", want)
		}
	}
}

func TestUserPromptBasicScope(t *testing.T) {
	got := userPrompt(&models.WorkUnit{Description: "do it"}, models.TaskContext{})
	if !strings.Contains(got, "essentials only") {
		t.Errorf("expected basic scope wording, got %q", got)
	}
}
