package model

import "time"

// FlagType categorizes the signal that produced a red flag.
type FlagType string

const (
	FlagDeadline        FlagType = "deadline"
	FlagAnomaly         FlagType = "anomaly"
	FlagBlocked         FlagType = "blocked"
	FlagStale           FlagType = "stale"
	FlagUnassigned      FlagType = "unassigned"
	FlagPendingApproval FlagType = "pending_approval"
)

// String returns the string representation of the flag type.
func (t FlagType) String() string {
	return string(t)
}

// IsValid checks whether the flag type is a known value.
func (t FlagType) IsValid() bool {
	switch t {
	case FlagDeadline, FlagAnomaly, FlagBlocked, FlagStale, FlagUnassigned, FlagPendingApproval:
		return true
	}
	return false
}

// Severity tiers a red flag for sorting and display.
type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid checks whether the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Rank returns a numeric rank for sorting; higher sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	}
	return 0
}

// EntityType identifies what a red flag points at for navigation.
type EntityType string

const (
	EntitySubtask EntityType = "subtask"
	EntityModule  EntityType = "module"
	EntityProject EntityType = "project"
	EntityRequest EntityType = "task_request"
)

// RelatedEntity is the navigation target attached to every red flag.
type RelatedEntity struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
	Name string     `json:"name"`
}

// RedFlag is a single prioritized signal in the dashboard feed.
// Every flag carries a RelatedEntity so the UI can navigate to the source.
type RedFlag struct {
	ID          string        `json:"id"`
	Type        FlagType      `json:"type"`
	Severity    Severity      `json:"severity"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Related     RelatedEntity `json:"related_entity"`
	ProjectName string        `json:"project_name,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
