// Package aggregate turns a run's outcomes into a scored report.
package aggregate

import (
	"math"

	"github.com/swarmforge/swarm/pkg/models"
)

// Scoring deductions, applied in order and clamped to [0, 100].
const (
	deductNoSuccesses   = 50
	deductHighFailure   = 30
	deductThinOutput    = 20
	deductLowDiversity  = 15
	thinOutputThreshold = 200
	lowOutputThreshold  = 500
)

// Aggregate computes the report for a completed run. It is a pure
// function of the result set: no side effects, and it never fails. An
// empty or nil result set yields a valid zero-scored report.
func Aggregate(rs *models.ResultSet) *models.Report {
	if rs == nil || len(rs.Outcomes) == 0 {
		return &models.Report{
			ResultsByType: map[models.UnitType][]models.UnitOutcome{},
			NextSteps:     genericNextSteps(),
			Validation: models.Validation{
				Score:  0,
				Issues: []string{"no successful results"},
			},
		}
	}

	stats := summarize(rs)

	report := &models.Report{
		Summary:         stats,
		ResultsByType:   groupByType(rs),
		Errors:          rs.Failed(),
		Recommendations: recommend(rs, stats),
		NextSteps:       nextSteps(stats.DistinctTypes),
	}
	report.Validation = score(stats)

	return report
}

// summarize computes the run statistics.
func summarize(rs *models.ResultSet) models.Statistics {
	stats := models.Statistics{}

	seen := make(map[models.UnitType]bool)
	for _, oc := range rs.Outcomes {
		stats.TotalOutputChars += len(oc.Output)
		if oc.Success {
			stats.TotalSucceeded++
			if !seen[oc.Unit.Type] {
				seen[oc.Unit.Type] = true
				stats.DistinctTypes = append(stats.DistinctTypes, oc.Unit.Type)
			}
		} else {
			stats.TotalFailed++
		}
	}

	divisor := stats.TotalSucceeded
	if divisor < 1 {
		divisor = 1
	}
	stats.AvgOutputChars = stats.TotalOutputChars / divisor

	total := stats.TotalSucceeded + stats.TotalFailed
	if total > 0 {
		stats.CompletionRate = int(math.Round(100 * float64(stats.TotalSucceeded) / float64(total)))
	}

	return stats
}

// groupByType groups succeeded outcomes by unit type, preserving recorded
// order within each type.
func groupByType(rs *models.ResultSet) map[models.UnitType][]models.UnitOutcome {
	grouped := make(map[models.UnitType][]models.UnitOutcome)
	for _, oc := range rs.Outcomes {
		if oc.Success {
			grouped[oc.Unit.Type] = append(grouped[oc.Unit.Type], oc)
		}
	}
	return grouped
}

// score computes the 0-100 validation score with one issue per deduction.
func score(stats models.Statistics) models.Validation {
	v := models.Validation{Score: 100}

	if stats.TotalSucceeded == 0 {
		v.Score -= deductNoSuccesses
		v.Issues = append(v.Issues, "no successful results")
	}

	total := stats.TotalSucceeded + stats.TotalFailed
	if total > 0 && float64(stats.TotalFailed)/float64(total) > 0.5 {
		v.Score -= deductHighFailure
		v.Issues = append(v.Issues, "more than half of the units failed")
	}

	if stats.AvgOutputChars < thinOutputThreshold {
		v.Score -= deductThinOutput
		v.Issues = append(v.Issues, "average output is below 200 characters")
	}

	if len(stats.DistinctTypes) < 2 && stats.TotalSucceeded > 1 {
		v.Score -= deductLowDiversity
		v.Issues = append(v.Issues, "successful units cover fewer than two types")
	}

	if v.Score < 0 {
		v.Score = 0
	}
	if v.Score > 100 {
		v.Score = 100
	}

	return v
}
