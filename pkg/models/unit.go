package models

// UnitType classifies what kind of work a unit performs.
type UnitType string

const (
	// UnitTypeResearch gathers information and best practices.
	UnitTypeResearch UnitType = "research"
	// UnitTypeAnalysis reviews or assesses an existing system.
	UnitTypeAnalysis UnitType = "analysis"
	// UnitTypeImplementation builds something.
	UnitTypeImplementation UnitType = "implementation"
	// UnitTypeValidation tests or verifies built work.
	UnitTypeValidation UnitType = "validation"
)

// Valid returns true if the type is a known value.
func (t UnitType) Valid() bool {
	switch t {
	case UnitTypeResearch, UnitTypeAnalysis, UnitTypeImplementation, UnitTypeValidation:
		return true
	default:
		return false
	}
}

// UnitStatus represents the current state of a work unit.
type UnitStatus string

const (
	// UnitStatusPending indicates the unit has not been dispatched.
	UnitStatusPending UnitStatus = "pending"
	// UnitStatusRunning indicates the unit is executing.
	UnitStatusRunning UnitStatus = "running"
	// UnitStatusSucceeded indicates the unit completed successfully.
	UnitStatusSucceeded UnitStatus = "succeeded"
	// UnitStatusFailed indicates the unit failed.
	UnitStatusFailed UnitStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s UnitStatus) Valid() bool {
	switch s {
	case UnitStatusPending, UnitStatusRunning, UnitStatusSucceeded, UnitStatusFailed:
		return true
	default:
		return false
	}
}

// ScopeHint indicates how thorough a task's handling should be.
type ScopeHint string

const (
	// ScopeBasic requests a minimal treatment of the task.
	ScopeBasic ScopeHint = "basic"
	// ScopeComprehensive requests an exhaustive treatment of the task.
	ScopeComprehensive ScopeHint = "comprehensive"
)

// TaskContext carries the immutable per-task context derived by the caller.
// It is passed by value into every unit execution and never mutated by the
// scheduling machinery.
type TaskContext struct {
	// Domain is the technology or problem domain label for the task.
	Domain string `json:"domain"`
	// TechnologyHint names a specific stack or framework, if detected.
	TechnologyHint string `json:"technology_hint,omitempty"`
	// RequirementsText holds gathered requirements, if any.
	RequirementsText string `json:"requirements_text,omitempty"`
	// Scope indicates basic or comprehensive handling.
	Scope ScopeHint `json:"scope"`
}

// WorkUnit is one schedulable piece of task work.
type WorkUnit struct {
	// ID is the unique identifier for this unit.
	ID string `json:"id"`
	// Type classifies the work this unit performs.
	Type UnitType `json:"type"`
	// Subtype refines the type, e.g. "frontend", "backend", "database",
	// "documentation". Empty for generic units.
	Subtype string `json:"subtype,omitempty"`
	// Description is the instruction handed to the executor.
	Description string `json:"description"`
	// Priority orders units for presentation; lower runs earlier within
	// equal dependency depth.
	Priority int `json:"priority"`
	// DependsOn lists unit types (not instance IDs) that must complete
	// in an earlier phase before this unit may run.
	DependsOn []UnitType `json:"depends_on,omitempty"`
	// Status is the current state of the unit.
	Status UnitStatus `json:"status"`
}

// DependsOnType returns true if the unit declares a dependency on t.
func (u *WorkUnit) DependsOnType(t UnitType) bool {
	for _, dep := range u.DependsOn {
		if dep == t {
			return true
		}
	}
	return false
}

// Label returns a short human-readable identifier for display,
// e.g. "implementation/backend" or "research".
func (u *WorkUnit) Label() string {
	if u.Subtype != "" {
		return string(u.Type) + "/" + u.Subtype
	}
	return string(u.Type)
}
