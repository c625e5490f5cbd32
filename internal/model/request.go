package model

import "time"

// RequestStatus represents the approval state of a task request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// String returns the string representation of the request status.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid checks whether the request status is a known value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}
	return false
}

// TaskRequest is a pending approval for new work. Requests that sit
// unresolved age into red flags.
type TaskRequest struct {
	ID          string        `json:"id"`
	TaskName    string        `json:"task_name"`
	ProjectID   string        `json:"project_id"`
	ProjectName string        `json:"project_name,omitempty"`
	ModuleName  string        `json:"module_name,omitempty"`
	RequestedBy string        `json:"requested_by,omitempty"`
	Status      RequestStatus `json:"status"`
	ResolvedBy  string        `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
