package model

// RiskLevel classifies how likely a subtask is to miss its deadline.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// String returns the string representation of the risk level.
func (l RiskLevel) String() string {
	return string(l)
}

// IsValid checks whether the risk level is a known value.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// Rank returns a numeric rank for comparisons; higher is riskier.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// Severity maps a risk level onto a flag severity. Only high and critical
// levels produce deadline flags, so lower levels map to the empty value.
func (l RiskLevel) Severity() Severity {
	switch l {
	case RiskCritical:
		return SeverityCritical
	case RiskHigh:
		return SeverityHigh
	}
	return ""
}

// DeadlineRisk is the engine's schedule assessment for a single subtask.
// Level is RiskNone whenever the subtask is done or has no due date.
type DeadlineRisk struct {
	Level          RiskLevel `json:"level"`
	Reason         string    `json:"reason,omitempty"`
	IsOverrun      bool      `json:"is_overrun"`
	HoursLogged    float64   `json:"hours_logged"`
	HoursRemaining *float64  `json:"hours_remaining,omitempty"`
	DaysLeft       *float64  `json:"days_left,omitempty"`
	EffortPercent  int       `json:"effort_percent"`
}
