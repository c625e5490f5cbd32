// Package client provides a transport-agnostic interface for the Cosmic Hub
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

// HubClient is the interface that all CLI commands use to communicate with
// the Cosmic Hub server.
type HubClient interface {
	// Subtask CRUD
	CreateSubtask(ctx context.Context, req *CreateSubtaskRequest) (*model.Subtask, error)
	GetSubtask(ctx context.Context, id string) (*model.Subtask, error)
	ListSubtasks(ctx context.Context, req *ListSubtasksRequest) (*ListSubtasksResponse, error)
	UpdateSubtask(ctx context.Context, id string, req *UpdateSubtaskRequest) (*model.Subtask, error)
	DeleteSubtask(ctx context.Context, id string) error

	// Work logs
	AddWorkLog(ctx context.Context, subtaskID string, req *AddWorkLogRequest) (*model.WorkLog, error)
	GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, float64, error)

	// Dependencies
	AddDependency(ctx context.Context, req *AddDependencyRequest) (*model.Dependency, error)
	RemoveDependency(ctx context.Context, subtaskID, dependsOnID string) error
	GetDependencies(ctx context.Context, subtaskID string) ([]*model.Dependency, error)
	GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error)

	// Engine views
	GetRisk(ctx context.Context, subtaskID string) (*model.DeadlineRisk, error)
	GetRedFlags(ctx context.Context, userID string) ([]*model.RedFlag, error)

	// Task requests
	CreateRequest(ctx context.Context, req *CreateRequestRequest) (*model.TaskRequest, error)
	ListRequests(ctx context.Context, status string) ([]*model.TaskRequest, error)
	ApproveRequest(ctx context.Context, id, resolvedBy string) (*model.TaskRequest, error)
	RejectRequest(ctx context.Context, id, resolvedBy string) (*model.TaskRequest, error)

	// Projects
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	AddMember(ctx context.Context, projectID, userID, role string) (*model.Member, error)
	ListMembers(ctx context.Context, projectID string) ([]*model.Member, error)

	// Aggregates
	GetStats(ctx context.Context) (*model.ProjectStats, error)

	// Events
	GetEvents(ctx context.Context, subtaskID string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateSubtaskRequest holds parameters for creating a subtask.
type CreateSubtaskRequest struct {
	ProjectID      string     `json:"project_id"`
	ModuleID       string     `json:"module_id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	PriorityStars  int        `json:"priority_stars"`
	CreatedBy      string     `json:"created_by,omitempty"`
}

// ListSubtasksRequest holds parameters for listing subtasks.
type ListSubtasksRequest struct {
	ProjectIDs []string `json:"project_ids,omitempty"`
	Status     []string `json:"status,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	Unassigned bool     `json:"unassigned,omitempty"`
	Priority   *int     `json:"priority,omitempty"`
	Search     string   `json:"search,omitempty"`
	Sort       string   `json:"sort,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

// ListSubtasksResponse is the response from ListSubtasks.
type ListSubtasksResponse struct {
	Subtasks []*model.Subtask `json:"subtasks"`
	Total    int              `json:"total"`
}

// UpdateSubtaskRequest holds optional parameters for updating a subtask.
// Nil pointer fields mean "don't change".
type UpdateSubtaskRequest struct {
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	PriorityStars  *int       `json:"priority_stars,omitempty"`
	UpdatedBy      string     `json:"updated_by,omitempty"`
}

// AddWorkLogRequest holds parameters for logging effort on a subtask.
type AddWorkLogRequest struct {
	HoursSpent float64 `json:"hours_spent"`
	Note       string  `json:"note,omitempty"`
	LoggedBy   string  `json:"logged_by,omitempty"`
}

// AddDependencyRequest holds parameters for creating a dependency edge.
type AddDependencyRequest struct {
	SubtaskID   string `json:"-"`
	DependsOnID string `json:"depends_on_id"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// CreateRequestRequest holds parameters for filing a task request.
type CreateRequestRequest struct {
	TaskName    string `json:"task_name"`
	ProjectID   string `json:"project_id"`
	ModuleName  string `json:"module_name,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}

// CreateProjectRequest holds parameters for creating a project.
type CreateProjectRequest struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id,omitempty"`
}
