package classify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifySimpleTask(t *testing.T) {
	c := New(DefaultVocabulary(), DefaultMaxConcurrentUnits)

	decision := c.Classify("fix the typo in the README")
	if decision.Complex {
		t.Error("expected simple task to not be complex")
	}
}

func TestClassifyComplexByComplexitySignals(t *testing.T) {
	c := New(DefaultVocabulary(), DefaultMaxConcurrentUnits)

	// Two complexity terms ("full-stack", "multiple"), no component verbs.
	decision := c.Classify("a full-stack app with multiple services")
	if !decision.Complex {
		t.Error("expected two complexity signals to mark the task complex")
	}
}

func TestClassifyComplexByComponentSignals(t *testing.T) {
	c := New(DefaultVocabulary(), DefaultMaxConcurrentUnits)

	// Three component verbs, no complexity terms.
	decision := c.Classify("research the options, build the service, test it")
	if !decision.Complex {
		t.Error("expected three component signals to mark the task complex")
	}
	if decision.EstimatedUnits != 3 {
		t.Errorf("expected estimate 3, got %d", decision.EstimatedUnits)
	}
}

func TestClassifyEstimateFloor(t *testing.T) {
	c := New(DefaultVocabulary(), DefaultMaxConcurrentUnits)

	// Complex via complexity terms but only one component verb.
	decision := c.Classify("migration of the entire complex system, then test it")
	if !decision.Complex {
		t.Fatal("expected complex")
	}
	if decision.EstimatedUnits != 2 {
		t.Errorf("expected estimate floor of 2, got %d", decision.EstimatedUnits)
	}
}

func TestClassifyEstimateCap(t *testing.T) {
	c := New(DefaultVocabulary(), 4)

	decision := c.Classify("research, analyze, design, build, implement, test, deploy, document everything")
	if !decision.Complex {
		t.Fatal("expected complex")
	}
	if decision.EstimatedUnits != 4 {
		t.Errorf("expected estimate capped at 4, got %d", decision.EstimatedUnits)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := New(DefaultVocabulary(), DefaultMaxConcurrentUnits)

	lower := c.Classify("research, build and test the service")
	upper := c.Classify("RESEARCH, BUILD AND TEST THE SERVICE")

	if lower != upper {
		t.Errorf("expected case-insensitive classification, got %+v vs %+v", lower, upper)
	}
}

func TestNewClampsMaxUnits(t *testing.T) {
	c := New(DefaultVocabulary(), 0)
	if c.maxUnits != DefaultMaxConcurrentUnits {
		t.Errorf("expected default max units %d, got %d", DefaultMaxConcurrentUnits, c.maxUnits)
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")

	content := "complexity:\n  - sprawling\ncomponents:\n  - scaffold\n  - probe\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write vocab file: %v", err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}

	if len(vocab.Complexity) != 1 || vocab.Complexity[0] != "sprawling" {
		t.Errorf("unexpected complexity terms: %v", vocab.Complexity)
	}
	if len(vocab.Components) != 2 {
		t.Errorf("unexpected component terms: %v", vocab.Components)
	}
}

func TestLoadVocabularyPartialFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")

	if err := os.WriteFile(path, []byte("complexity:\n  - sprawling\n"), 0644); err != nil {
		t.Fatalf("write vocab file: %v", err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}

	if len(vocab.Components) == 0 {
		t.Error("expected component terms to fall back to defaults")
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
