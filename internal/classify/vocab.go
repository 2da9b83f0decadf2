package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the two signal term sets the classifier scans for.
// Both sets are data, not logic: operators can replace them wholesale
// through a YAML file without touching the classifier.
type Vocabulary struct {
	// Complexity terms imply breadth: multi-technology or multi-phase
	// language. Each distinct term found counts one complexity hit.
	Complexity []string `yaml:"complexity"`
	// Components are action verbs implying a distinct activity. Each
	// distinct term found counts one component hit.
	Components []string `yaml:"components"`
}

// defaultComplexityTerms signal that a task spans technologies or phases.
var defaultComplexityTerms = []string{
	"full-stack",
	"full stack",
	"end-to-end",
	"end to end",
	"multiple",
	"several",
	"complex",
	"complete",
	"entire",
	"integrate",
	"integration",
	"architecture",
	"microservice",
	"pipeline",
	"migration",
	"and then",
	"as well as",
	"across",
}

// defaultComponentTerms are action verbs that each imply a distinct activity.
var defaultComponentTerms = []string{
	"research",
	"investigate",
	"explore",
	"analyze",
	"review",
	"assess",
	"audit",
	"design",
	"build",
	"implement",
	"create",
	"develop",
	"write",
	"test",
	"verify",
	"validate",
	"deploy",
	"document",
	"optimize",
	"refactor",
	"monitor",
}

// DefaultVocabulary returns the built-in signal term sets.
// The returned slices are copies; callers may modify them freely.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Complexity: append([]string{}, defaultComplexityTerms...),
		Components: append([]string{}, defaultComponentTerms...),
	}
}

// LoadVocabulary reads a vocabulary from a YAML file. Empty sections fall
// back to the built-in terms, so a file may override just one set.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary file: %w", err)
	}

	var vocab Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return Vocabulary{}, fmt.Errorf("parse vocabulary file: %w", err)
	}

	defaults := DefaultVocabulary()
	if len(vocab.Complexity) == 0 {
		vocab.Complexity = defaults.Complexity
	}
	if len(vocab.Components) == 0 {
		vocab.Components = defaults.Components
	}

	return vocab, nil
}
