package aggregate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/swarmforge/swarm/pkg/models"
)

func outcome(utype models.UnitType, success bool, output string) models.UnitOutcome {
	return models.UnitOutcome{
		Unit:    &models.WorkUnit{ID: string(utype) + "-" + output, Type: utype},
		Success: success,
		Output:  output,
	}
}

func findRec(recs []models.Recommendation, category string) *models.Recommendation {
	for i := range recs {
		if recs[i].Category == category {
			return &recs[i]
		}
	}
	return nil
}

func TestAggregateEmptyResultSet(t *testing.T) {
	report := Aggregate(&models.ResultSet{})

	if report.Validation.Score != 0 {
		t.Errorf("empty result set score = %d, want 0", report.Validation.Score)
	}
	if len(report.Validation.Issues) != 1 || report.Validation.Issues[0] != "no successful results" {
		t.Errorf("expected the single no-successful-results issue, got %v", report.Validation.Issues)
	}
	if report.Summary.CompletionRate != 0 {
		t.Errorf("empty result set completion rate = %d, want 0", report.Summary.CompletionRate)
	}
	if report.ResultsByType == nil {
		t.Error("ResultsByType must be a valid empty map, not nil")
	}
	if len(report.NextSteps) != 4 {
		t.Errorf("expected the generic 4-item checklist, got %d items", len(report.NextSteps))
	}
}

func TestAggregateNilResultSet(t *testing.T) {
	report := Aggregate(nil)
	if report.Validation.Score != 0 {
		t.Errorf("nil result set score = %d, want 0", report.Validation.Score)
	}
}

func TestAggregateMixedOutcomes(t *testing.T) {
	long := strings.Repeat("x", 600)
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeResearch, true, long),
			outcome(models.UnitTypeImplementation, true, long),
			outcome(models.UnitTypeImplementation, true, long),
			outcome(models.UnitTypeValidation, false, ""),
		},
	}

	report := Aggregate(rs)

	if report.Summary.CompletionRate != 75 {
		t.Errorf("completion rate = %d, want 75", report.Summary.CompletionRate)
	}
	want := []models.UnitType{models.UnitTypeResearch, models.UnitTypeImplementation}
	if !reflect.DeepEqual(report.Summary.DistinctTypes, want) {
		t.Errorf("distinct types = %v, want %v", report.Summary.DistinctTypes, want)
	}

	// Two distinct types, so the diversity penalty must not apply.
	for _, issue := range report.Validation.Issues {
		if strings.Contains(issue, "fewer than two types") {
			t.Error("diversity penalty applied despite two distinct types")
		}
	}

	// Implementation succeeded with no successful validation.
	if findRec(report.Recommendations, "quality_assurance") == nil {
		t.Error("expected a quality_assurance recommendation")
	}
	if findRec(report.Recommendations, "workflow") == nil {
		t.Error("expected a workflow recommendation (research + implementation, no validation)")
	}
	if rec := findRec(report.Recommendations, "error_handling"); rec == nil || rec.Priority != models.PriorityHigh {
		t.Error("expected a high-priority error_handling recommendation")
	}
	if rec := findRec(report.Recommendations, "quality_concern"); rec == nil || rec.Priority != models.PriorityHigh {
		t.Error("expected a quality_concern recommendation at a 75% completion rate")
	}
}

func TestAggregateMixedOutcomesGrouping(t *testing.T) {
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeImplementation, true, "first"),
			outcome(models.UnitTypeResearch, true, "r"),
			outcome(models.UnitTypeImplementation, true, "second"),
			outcome(models.UnitTypeValidation, false, ""),
		},
	}

	report := Aggregate(rs)

	impl := report.ResultsByType[models.UnitTypeImplementation]
	if len(impl) != 2 || impl[0].Output != "first" || impl[1].Output != "second" {
		t.Errorf("implementation group not in insertion order: %+v", impl)
	}
	if len(report.ResultsByType[models.UnitTypeValidation]) != 0 {
		t.Error("failed outcomes must not appear in ResultsByType")
	}
	if len(report.Errors) != 1 {
		t.Errorf("expected 1 error outcome, got %d", len(report.Errors))
	}
}

func TestAggregateAllFailed(t *testing.T) {
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeResearch, false, ""),
			outcome(models.UnitTypeImplementation, false, ""),
			outcome(models.UnitTypeValidation, false, ""),
		},
	}

	report := Aggregate(rs)

	if report.Validation.Score != 0 {
		t.Errorf("all-failed score = %d, want 0", report.Validation.Score)
	}
	if rec := findRec(report.Recommendations, "error_handling"); rec == nil || rec.Priority != models.PriorityHigh {
		t.Error("expected high-priority error_handling recommendation")
	}
	if report.Summary.CompletionRate != 0 {
		t.Errorf("completion rate = %d, want 0", report.Summary.CompletionRate)
	}
}

func TestAggregateThinOutputPenalty(t *testing.T) {
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeResearch, true, "short"),
			outcome(models.UnitTypeImplementation, true, "also short"),
		},
	}

	report := Aggregate(rs)

	if report.Validation.Score != 80 {
		t.Errorf("score = %d, want 80 (thin output penalty only)", report.Validation.Score)
	}
	if findRec(report.Recommendations, "output_quality") == nil {
		t.Error("expected an output_quality recommendation for brief outputs")
	}
}

func TestAggregateDiversityPenalty(t *testing.T) {
	long := strings.Repeat("x", 600)
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeImplementation, true, long),
			outcome(models.UnitTypeImplementation, true, long),
		},
	}

	report := Aggregate(rs)

	if report.Validation.Score != 85 {
		t.Errorf("score = %d, want 85 (diversity penalty only)", report.Validation.Score)
	}
}

func TestAggregateSingleSuccessNoDiversityPenalty(t *testing.T) {
	long := strings.Repeat("x", 600)
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeImplementation, true, long),
		},
	}

	report := Aggregate(rs)

	if report.Validation.Score != 100 {
		t.Errorf("score = %d, want 100 (single success is not penalized for diversity)", report.Validation.Score)
	}
}

func TestAggregateNextStepsDominantType(t *testing.T) {
	long := strings.Repeat("x", 600)
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeResearch, true, long),
			outcome(models.UnitTypeResearch, true, long),
		},
	}

	report := Aggregate(rs)

	if len(report.NextSteps) != 4 {
		t.Fatalf("expected 4 next steps, got %d", len(report.NextSteps))
	}
	if !strings.Contains(strings.ToLower(report.NextSteps[0]), "research") {
		t.Errorf("expected research-specific next steps, got %q", report.NextSteps[0])
	}
}

func TestAggregateNextStepsGenericForMixedTypes(t *testing.T) {
	long := strings.Repeat("x", 600)
	rs := &models.ResultSet{
		Outcomes: []models.UnitOutcome{
			outcome(models.UnitTypeResearch, true, long),
			outcome(models.UnitTypeImplementation, true, long),
		},
	}

	report := Aggregate(rs)

	if !reflect.DeepEqual(report.NextSteps, genericNextSteps()) {
		t.Errorf("expected the generic checklist for mixed types, got %v", report.NextSteps)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	long := strings.Repeat("x", 600)
	build := func() *models.ResultSet {
		return &models.ResultSet{
			Outcomes: []models.UnitOutcome{
				outcome(models.UnitTypeResearch, true, long),
				outcome(models.UnitTypeImplementation, false, ""),
			},
		}
	}

	first := Aggregate(build())
	second := Aggregate(build())

	if !reflect.DeepEqual(first, second) {
		t.Error("aggregation must be a pure function of the outcomes")
	}
}
