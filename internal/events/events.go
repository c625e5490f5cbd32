package events

import (
	"context"

	"github.com/Mario960060/cosmichub/internal/model"
)

// Event topic constants
const (
	TopicSubtaskCreated = "cosmichub.subtask.created"
	TopicSubtaskUpdated = "cosmichub.subtask.updated"
	TopicSubtaskDeleted = "cosmichub.subtask.deleted"

	TopicWorkLogAdded = "cosmichub.worklog.added"

	TopicDependencyAdded   = "cosmichub.dependency.added"
	TopicDependencyRemoved = "cosmichub.dependency.removed"

	TopicRequestCreated  = "cosmichub.request.created"
	TopicRequestResolved = "cosmichub.request.resolved"

	TopicProjectCreated = "cosmichub.project.created"
	TopicMemberAdded    = "cosmichub.member.added"
)

// Event types

type SubtaskCreated struct {
	Subtask *model.Subtask `json:"subtask"`
}

type SubtaskUpdated struct {
	Subtask *model.Subtask `json:"subtask"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type SubtaskDeleted struct {
	SubtaskID string `json:"subtask_id"`
}

type WorkLogAdded struct {
	WorkLog *model.WorkLog `json:"work_log"`
}

type DependencyAdded struct {
	Dependency *model.Dependency `json:"dependency"`
}

type DependencyRemoved struct {
	SubtaskID   string `json:"subtask_id"`
	DependsOnID string `json:"depends_on_id"`
}

type RequestCreated struct {
	Request *model.TaskRequest `json:"request"`
}

type RequestResolved struct {
	Request    *model.TaskRequest `json:"request"`
	ResolvedBy string             `json:"resolved_by,omitempty"`
}

type ProjectCreated struct {
	Project *model.Project `json:"project"`
}

type MemberAdded struct {
	Member *model.Member `json:"member"`
}

// Publisher sends events to the event bus. Dashboard clients subscribe and
// re-fetch on every delivery, so publishing is fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
