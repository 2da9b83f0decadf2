// Package classify scores task descriptions to decide whether a task
// benefits from being split across multiple specialized work units.
package classify

import "strings"

// DefaultMaxConcurrentUnits is the policy default for the widest allowed
// phase, and therefore the cap on the estimated unit count.
const DefaultMaxConcurrentUnits = 6

// Decision is the classifier's verdict for one task description.
type Decision struct {
	// Complex is true when the task warrants multi-unit handling.
	Complex bool
	// EstimatedUnits is the expected decomposition size, clamped to
	// [2, MaxConcurrentUnits]. Meaningful only when Complex is true.
	EstimatedUnits int
}

// Classifier scans descriptions for complexity and component signals.
type Classifier struct {
	vocab    Vocabulary
	maxUnits int
}

// New creates a Classifier over the given vocabulary. maxUnits caps the
// estimated unit count; values below 2 fall back to the policy default.
func New(vocab Vocabulary, maxUnits int) *Classifier {
	if maxUnits < 2 {
		maxUnits = DefaultMaxConcurrentUnits
	}
	return &Classifier{vocab: vocab, maxUnits: maxUnits}
}

// Classify scores the description case-insensitively against both signal
// sets. A task is complex when it carries at least two complexity signals
// or at least three distinct component signals.
func (c *Classifier) Classify(description string) Decision {
	lower := strings.ToLower(description)

	complexityHits := countHits(lower, c.vocab.Complexity)
	componentHits := countHits(lower, c.vocab.Components)

	decision := Decision{
		Complex: complexityHits >= 2 || componentHits >= 3,
	}

	estimate := componentHits
	if estimate < 2 {
		estimate = 2
	}
	if estimate > c.maxUnits {
		estimate = c.maxUnits
	}
	decision.EstimatedUnits = estimate

	return decision
}

// countHits counts the distinct terms present in the lowercased text.
// Terms match on word boundaries so that short verbs do not fire inside
// unrelated words.
func countHits(lower string, terms []string) int {
	hits := 0
	for _, term := range terms {
		if containsTerm(lower, strings.ToLower(term)) {
			hits++
		}
	}
	return hits
}

func containsTerm(lower, term string) bool {
	for from := 0; ; {
		idx := strings.Index(lower[from:], term)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(term)
		if boundary(lower, start-1) && boundary(lower, end) {
			return true
		}
		from = start + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
