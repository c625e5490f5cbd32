package model

import "time"

// Project groups subtasks and members.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectRole is a user's role within a project.
type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleMember ProjectRole = "member"
)

// IsValid checks whether the project role is a known value.
func (r ProjectRole) IsValid() bool {
	return r == RoleOwner || r == RoleMember
}

// Member links a user to a project.
type Member struct {
	UserID    string      `json:"user_id"`
	ProjectID string      `json:"project_id"`
	Role      ProjectRole `json:"role"`
	AddedAt   time.Time   `json:"added_at"`
}

// Profile is the system-wide identity record for a user. Admin is orthogonal
// to any per-project or per-channel role.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Admin       bool      `json:"admin"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectStats holds aggregate subtask counts by status.
type ProjectStats struct {
	TotalTodo       int `json:"total_todo"`
	TotalInProgress int `json:"total_in_progress"`
	TotalBlocked    int `json:"total_blocked"`
	TotalReview     int `json:"total_review"`
	TotalDone       int `json:"total_done"`
	PendingRequests int `json:"pending_requests"`
}
