package snapshot

import (
	"context"
	"database/sql"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

// mockStore is a minimal in-memory store.Store for export tests.
type mockStore struct {
	projects map[string]*model.Project
	subtasks map[string]*model.Subtask
	workLogs map[string][]*model.WorkLog
	deps     map[string][]*model.Dependency
	requests map[string]*model.TaskRequest
}

func newMockStore() *mockStore {
	return &mockStore{
		projects: make(map[string]*model.Project),
		subtasks: make(map[string]*model.Subtask),
		workLogs: make(map[string][]*model.WorkLog),
		deps:     make(map[string][]*model.Dependency),
		requests: make(map[string]*model.TaskRequest),
	}
}

func (m *mockStore) CreateSubtask(_ context.Context, st *model.Subtask) error {
	m.subtasks[st.ID] = st
	return nil
}

func (m *mockStore) GetSubtask(_ context.Context, id string) (*model.Subtask, error) {
	st, ok := m.subtasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return st, nil
}

func (m *mockStore) ListSubtasks(_ context.Context, _ model.SubtaskFilter) ([]*model.Subtask, int, error) {
	var result []*model.Subtask
	for _, st := range m.subtasks {
		result = append(result, st)
	}
	return result, len(result), nil
}

func (m *mockStore) UpdateSubtask(_ context.Context, st *model.Subtask) error {
	m.subtasks[st.ID] = st
	return nil
}

func (m *mockStore) DeleteSubtask(_ context.Context, id string) error {
	delete(m.subtasks, id)
	return nil
}

func (m *mockStore) AddWorkLog(_ context.Context, wl *model.WorkLog) error {
	m.workLogs[wl.SubtaskID] = append(m.workLogs[wl.SubtaskID], wl)
	return nil
}

func (m *mockStore) GetWorkLogs(_ context.Context, subtaskID string) ([]*model.WorkLog, error) {
	return m.workLogs[subtaskID], nil
}

func (m *mockStore) AddDependency(_ context.Context, dep *model.Dependency) error {
	m.deps[dep.SubtaskID] = append(m.deps[dep.SubtaskID], dep)
	return nil
}

func (m *mockStore) RemoveDependency(_ context.Context, subtaskID, dependsOnID string) error {
	return nil
}

func (m *mockStore) GetDependencies(_ context.Context, subtaskID string) ([]*model.Dependency, error) {
	return m.deps[subtaskID], nil
}

func (m *mockStore) GetBlockers(_ context.Context, subtaskID string) ([]*model.Subtask, error) {
	return nil, nil
}

func (m *mockStore) CreateTaskRequest(_ context.Context, req *model.TaskRequest) error {
	m.requests[req.ID] = req
	return nil
}

func (m *mockStore) GetTaskRequest(_ context.Context, id string) (*model.TaskRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return req, nil
}

func (m *mockStore) ListTaskRequests(_ context.Context, status model.RequestStatus) ([]*model.TaskRequest, error) {
	var result []*model.TaskRequest
	for _, req := range m.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	return result, nil
}

func (m *mockStore) ResolveTaskRequest(_ context.Context, id string, status model.RequestStatus, resolvedBy string) (*model.TaskRequest, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	now := time.Now().UTC()
	req.Status = status
	req.ResolvedBy = resolvedBy
	req.ResolvedAt = &now
	return req, nil
}

func (m *mockStore) CreateProject(_ context.Context, p *model.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockStore) GetProject(_ context.Context, id string) (*model.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockStore) ListProjects(_ context.Context) ([]*model.Project, error) {
	var result []*model.Project
	for _, p := range m.projects {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockStore) AddMember(_ context.Context, _ *model.Member) error { return nil }

func (m *mockStore) ListMembers(_ context.Context, _ string) ([]*model.Member, error) {
	return nil, nil
}

func (m *mockStore) ListMemberships(_ context.Context, _ string) ([]*model.Member, error) {
	return nil, nil
}

func (m *mockStore) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID}, nil
}

func (m *mockStore) UpsertProfile(_ context.Context, _ *model.Profile) error { return nil }

func (m *mockStore) RecordEvent(_ context.Context, _ *model.Event) error { return nil }

func (m *mockStore) GetEvents(_ context.Context, _ string) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockStore) GetStats(_ context.Context) (*model.ProjectStats, error) {
	return &model.ProjectStats{}, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

var _ store.Store = (*mockStore)(nil)
