// Package decompose turns an eligible task description into typed work
// units with declared type-level dependencies.
package decompose

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/swarmforge/swarm/pkg/models"
)

// Unit priorities. Research and analysis run first, implementation next,
// validation and documentation last.
const (
	priorityInvestigate    = 1
	priorityImplementation = 2
	priorityFollowUp       = 3
)

// Decomposer applies keyword rules to a task description. Each rule adds
// zero or one unit; absence of any match yields no units and the caller
// must fall back to single-worker handling.
type Decomposer struct {
	// maxUnits caps how many units a single decomposition may emit.
	maxUnits int
}

// New creates a Decomposer. maxUnits bounds the emitted unit count; values
// below 2 fall back to the policy default.
func New(maxUnits int) *Decomposer {
	if maxUnits < 2 {
		maxUnits = 6
	}
	return &Decomposer{maxUnits: maxUnits}
}

// Decompose returns the work units matched by the description and context,
// in stable rule order: research, analysis, implementation subtypes,
// validation, documentation. The context's requirements text participates
// in keyword matching; the context itself is never mutated.
func (d *Decomposer) Decompose(description string, tctx models.TaskContext) []*models.WorkUnit {
	scan := strings.ToLower(description)
	if tctx.RequirementsText != "" {
		scan += " " + strings.ToLower(tctx.RequirementsText)
	}

	var units []*models.WorkUnit

	if matchesAny(scan, researchTerms) {
		units = append(units, newUnit(
			models.UnitTypeResearch, "",
			fmt.Sprintf("Research best practices and prior art for: %s", description),
			priorityInvestigate, nil,
		))
	}

	if matchesAny(scan, analysisTerms) {
		units = append(units, newUnit(
			models.UnitTypeAnalysis, "",
			fmt.Sprintf("Analyze the existing system and constraints for: %s", description),
			priorityInvestigate, nil,
		))
	}

	if matchesAny(scan, buildTerms) {
		// Implementation units depend on whichever investigation types
		// were actually added. Dependencies are tracked per type, not per unit.
		deps := investigationTypes(units)

		subtypes := implementationSubtypes(scan)
		if len(subtypes) == 0 {
			units = append(units, newUnit(
				models.UnitTypeImplementation, "",
				fmt.Sprintf("Implement: %s", description),
				priorityImplementation, deps,
			))
		}
		for _, sub := range subtypes {
			units = append(units, newUnit(
				models.UnitTypeImplementation, sub,
				fmt.Sprintf("Implement the %s portion of: %s", sub, description),
				priorityImplementation, deps,
			))
		}
	}

	if matchesAny(scan, validationTerms) {
		units = append(units, newUnit(
			models.UnitTypeValidation, "",
			fmt.Sprintf("Test and verify the work done for: %s", description),
			priorityFollowUp, []models.UnitType{models.UnitTypeImplementation},
		))
	}

	if matchesAny(scan, documentationTerms) {
		units = append(units, newUnit(
			models.UnitTypeImplementation, "documentation",
			fmt.Sprintf("Write documentation for: %s", description),
			priorityFollowUp, []models.UnitType{models.UnitTypeImplementation},
		))
	}

	if len(units) > d.maxUnits {
		units = units[:d.maxUnits]
	}

	return units
}

// newUnit constructs a pending work unit with a fresh ID.
func newUnit(utype models.UnitType, subtype, description string, priority int, deps []models.UnitType) *models.WorkUnit {
	return &models.WorkUnit{
		ID:          uuid.New().String(),
		Type:        utype,
		Subtype:     subtype,
		Description: description,
		Priority:    priority,
		DependsOn:   deps,
		Status:      models.UnitStatusPending,
	}
}

// investigationTypes returns the research/analysis types present so far.
func investigationTypes(units []*models.WorkUnit) []models.UnitType {
	var deps []models.UnitType
	for _, u := range units {
		if u.Type == models.UnitTypeResearch || u.Type == models.UnitTypeAnalysis {
			deps = append(deps, u.Type)
		}
	}
	return deps
}

// implementationSubtypes inspects build sub-signals. A description can
// legitimately produce several implementation units, one per matched
// subtype.
func implementationSubtypes(scan string) []string {
	var subtypes []string
	if matchesAny(scan, frontendTerms) {
		subtypes = append(subtypes, "frontend")
	}
	if matchesAny(scan, backendTerms) {
		subtypes = append(subtypes, "backend")
	}
	if matchesAny(scan, databaseTerms) {
		subtypes = append(subtypes, "database")
	}
	return subtypes
}

func matchesAny(scan string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(scan, term) {
			return true
		}
	}
	return false
}

// containsTerm reports whether term occurs in the lowercased text on word
// boundaries. Plain substring search would let short terms like "ui" match
// inside unrelated words.
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

// boundary reports whether position i in s is outside any word.
func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}
