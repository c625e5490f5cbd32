package model

import "time"

// Status represents the current state of a subtask.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
	StatusReview     Status = "review"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusBlocked, StatusReview:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the subtask's lifecycle.
// Done subtasks carry no deadline risk.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// Subtask is the core work-item record.
type Subtask struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	ModuleID       string     `json:"module_id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	PriorityStars  int        `json:"priority_stars"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      string     `json:"created_by,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relational data -- populated by queries, not stored in the subtasks table.
	ProjectName  string        `json:"project_name,omitempty"`
	ModuleName   string        `json:"module_name,omitempty"`
	WorkLogs     []*WorkLog    `json:"work_logs,omitempty"`
	Dependencies []*Dependency `json:"dependencies,omitempty"`
}

// HoursLogged sums the hours of all attached work logs.
func (s *Subtask) HoursLogged() float64 {
	var total float64
	for _, wl := range s.WorkLogs {
		total += wl.HoursSpent
	}
	return total
}
