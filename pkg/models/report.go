package models

// Statistics summarizes a run's outcomes.
type Statistics struct {
	// TotalSucceeded is the number of units that completed successfully.
	TotalSucceeded int `json:"total_succeeded"`
	// TotalFailed is the number of units that failed.
	TotalFailed int `json:"total_failed"`
	// DistinctTypes lists the unit types among succeeded outcomes,
	// in first-seen order.
	DistinctTypes []UnitType `json:"distinct_types,omitempty"`
	// TotalOutputChars is the summed length of all unit outputs.
	TotalOutputChars int `json:"total_output_chars"`
	// AvgOutputChars is TotalOutputChars divided by max(1, TotalSucceeded).
	AvgOutputChars int `json:"avg_output_chars"`
	// CompletionRate is the rounded percentage of units that succeeded.
	// Zero when no units were dispatched.
	CompletionRate int `json:"completion_rate"`
}

// RecommendationPriority ranks how urgently a recommendation should be acted on.
type RecommendationPriority string

const (
	// PriorityHigh marks recommendations that should be addressed first.
	PriorityHigh RecommendationPriority = "high"
	// PriorityMedium marks recommendations worth addressing soon.
	PriorityMedium RecommendationPriority = "medium"
	// PriorityLow marks nice-to-have recommendations.
	PriorityLow RecommendationPriority = "low"
)

// Recommendation is a derived suggestion for follow-up work.
type Recommendation struct {
	// Category tags the recommendation, e.g. "error_handling".
	Category string `json:"category"`
	// Priority is high, medium, or low.
	Priority RecommendationPriority `json:"priority"`
	// Detail is the human-readable suggestion text.
	Detail string `json:"detail"`
}

// Validation holds the overall quality assessment of a run.
type Validation struct {
	// Score is the 0-100 quality score.
	Score int `json:"score"`
	// Issues lists the human-readable reasons for each deduction.
	Issues []string `json:"issues,omitempty"`
}

// Report is the final structured artifact of a run, produced exactly once
// by the aggregator and never mutated after construction. Rendering it
// into a document is the caller's concern.
type Report struct {
	// Summary holds the run statistics.
	Summary Statistics `json:"summary"`
	// ResultsByType groups succeeded outcomes by unit type, preserving
	// insertion order within each type.
	ResultsByType map[UnitType][]UnitOutcome `json:"results_by_type"`
	// Errors lists the failed outcomes.
	Errors []UnitOutcome `json:"errors,omitempty"`
	// Recommendations lists derived follow-up suggestions.
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	// NextSteps is a fixed four-item checklist for the dominant unit type.
	NextSteps []string `json:"next_steps"`
	// Validation is the overall quality assessment.
	Validation Validation `json:"validation"`
}
