package model

import "time"

// Dependency represents a directional blocking relationship between two
// subtasks: SubtaskID cannot proceed until DependsOnID is done.
type Dependency struct {
	SubtaskID   string    `json:"subtask_id"`
	DependsOnID string    `json:"depends_on_id"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`

	// Populated by queries that join the blocking subtask.
	DependsOnName   string `json:"depends_on_name,omitempty"`
	DependsOnStatus Status `json:"depends_on_status,omitempty"`
}

// IsOpen reports whether the blocking side of the edge is still unfinished.
func (d *Dependency) IsOpen() bool {
	return d.DependsOnStatus != StatusDone
}
