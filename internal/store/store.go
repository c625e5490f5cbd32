package store

import (
	"context"

	"github.com/Mario960060/cosmichub/internal/model"
)

// Store defines the persistence interface for Cosmic Hub.
type Store interface {
	// Subtask CRUD
	CreateSubtask(ctx context.Context, st *model.Subtask) error
	GetSubtask(ctx context.Context, id string) (*model.Subtask, error)
	ListSubtasks(ctx context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error) // returns subtasks, total count, error
	UpdateSubtask(ctx context.Context, st *model.Subtask) error
	DeleteSubtask(ctx context.Context, id string) error

	// Work logs
	AddWorkLog(ctx context.Context, wl *model.WorkLog) error
	GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, error)

	// Dependencies
	AddDependency(ctx context.Context, dep *model.Dependency) error
	RemoveDependency(ctx context.Context, subtaskID, dependsOnID string) error
	GetDependencies(ctx context.Context, subtaskID string) ([]*model.Dependency, error)
	GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error)

	// Task requests
	CreateTaskRequest(ctx context.Context, req *model.TaskRequest) error
	GetTaskRequest(ctx context.Context, id string) (*model.TaskRequest, error)
	ListTaskRequests(ctx context.Context, status model.RequestStatus) ([]*model.TaskRequest, error)
	ResolveTaskRequest(ctx context.Context, id string, status model.RequestStatus, resolvedBy string) (*model.TaskRequest, error)

	// Projects and membership
	CreateProject(ctx context.Context, p *model.Project) error
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	AddMember(ctx context.Context, m *model.Member) error
	ListMembers(ctx context.Context, projectID string) ([]*model.Member, error)
	ListMemberships(ctx context.Context, userID string) ([]*model.Member, error)
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, p *model.Profile) error

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, subtaskID string) ([]*model.Event, error)

	// Aggregates
	GetStats(ctx context.Context) (*model.ProjectStats, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
