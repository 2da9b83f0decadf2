package aggregate

import "github.com/swarmforge/swarm/pkg/models"

// recommend derives follow-up suggestions from the outcomes and summary.
// Conditions are evaluated independently; a run can carry several
// recommendations at once.
func recommend(rs *models.ResultSet, stats models.Statistics) []models.Recommendation {
	var recs []models.Recommendation

	succeededTypes := make(map[models.UnitType]bool)
	for _, t := range stats.DistinctTypes {
		succeededTypes[t] = true
	}

	if stats.TotalFailed > 0 {
		recs = append(recs, models.Recommendation{
			Category: "error_handling",
			Priority: models.PriorityHigh,
			Detail:   "Some units failed; review their errors and re-dispatch the affected work.",
		})
	}

	if stats.CompletionRate < 80 {
		recs = append(recs, models.Recommendation{
			Category: "quality_concern",
			Priority: models.PriorityHigh,
			Detail:   "Completion rate is below 80%; the results may not be trustworthy as a whole.",
		})
	}

	if succeededTypes[models.UnitTypeResearch] && succeededTypes[models.UnitTypeImplementation] &&
		!succeededTypes[models.UnitTypeValidation] {
		recs = append(recs, models.Recommendation{
			Category: "workflow",
			Priority: models.PriorityMedium,
			Detail:   "Research and implementation completed without validation; schedule a verification pass.",
		})
	}

	if succeededTypes[models.UnitTypeImplementation] && !succeededTypes[models.UnitTypeValidation] {
		recs = append(recs, models.Recommendation{
			Category: "quality_assurance",
			Priority: models.PriorityMedium,
			Detail:   "Implementation work is unverified; add tests before relying on it.",
		})
	}

	if stats.AvgOutputChars < lowOutputThreshold {
		recs = append(recs, models.Recommendation{
			Category: "output_quality",
			Priority: models.PriorityLow,
			Detail:   "Unit outputs are brief; consider re-running with a comprehensive scope.",
		})
	}

	return recs
}

// nextSteps selects the four-item checklist for the single dominant unit
// type among successes, or the generic checklist when successes span
// multiple types (or none).
func nextSteps(distinctTypes []models.UnitType) []string {
	if len(distinctTypes) != 1 {
		return genericNextSteps()
	}

	switch distinctTypes[0] {
	case models.UnitTypeResearch:
		return []string{
			"Verify the research findings against current sources",
			"Validate the recommended approach with a spike",
			"Plan the implementation based on the findings",
			"Expand the research where gaps remain",
		}
	case models.UnitTypeAnalysis:
		return []string{
			"Prioritize the identified issues by impact",
			"Act on the highest-impact findings first",
			"Implement the agreed remediations",
			"Re-test the system after the changes",
		}
	case models.UnitTypeImplementation:
		return []string{
			"Test the implemented functionality",
			"Validate the behavior against the requirements",
			"Deploy to a staging environment",
			"Monitor for regressions after rollout",
		}
	case models.UnitTypeValidation:
		return []string{
			"Fix the defects the validation surfaced",
			"Update the affected implementations",
			"Re-validate after the fixes land",
			"Document the verified behavior",
		}
	default:
		return genericNextSteps()
	}
}

// genericNextSteps is the checklist used when no single type dominates.
func genericNextSteps() []string {
	return []string{
		"Review the results of each unit",
		"Reconcile overlapping or conflicting outputs",
		"Implement the consolidated plan",
		"Test the combined result end to end",
	}
}
