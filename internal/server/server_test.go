package server

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

// mockStore is an in-memory store.Store used by the handler tests.
type mockStore struct {
	subtasks map[string]*model.Subtask
	workLogs map[string][]*model.WorkLog
	deps     map[string][]*model.Dependency
	requests map[string]*model.TaskRequest
	projects map[string]*model.Project
	members  map[string][]*model.Member
	profiles map[string]*model.Profile
	events   []*model.Event
	stats    model.ProjectStats
}

func newMockStore() *mockStore {
	return &mockStore{
		subtasks: make(map[string]*model.Subtask),
		workLogs: make(map[string][]*model.WorkLog),
		deps:     make(map[string][]*model.Dependency),
		requests: make(map[string]*model.TaskRequest),
		projects: make(map[string]*model.Project),
		members:  make(map[string][]*model.Member),
		profiles: make(map[string]*model.Profile),
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
	clone := *st
	return &clone, nil
}

func (m *mockStore) ListSubtasks(_ context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error) {
	var result []*model.Subtask
	for _, st := range m.subtasks {
		if len(filter.ProjectIDs) > 0 {
			found := false
			for _, id := range filter.ProjectIDs {
				if st.ProjectID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if len(filter.Status) > 0 {
			found := false
			for _, s := range filter.Status {
				if st.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if filter.AssignedTo != "" && st.AssignedTo != filter.AssignedTo {
			continue
		}
		if filter.Unassigned && st.AssignedTo != "" {
			continue
		}
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockStore) UpdateSubtask(_ context.Context, st *model.Subtask) error {
	if _, ok := m.subtasks[st.ID]; !ok {
		return sql.ErrNoRows
	}
	m.subtasks[st.ID] = st
	return nil
}

func (m *mockStore) DeleteSubtask(_ context.Context, id string) error {
	if _, ok := m.subtasks[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.subtasks, id)
	return nil
}

func (m *mockStore) AddWorkLog(_ context.Context, wl *model.WorkLog) error {
	if _, ok := m.subtasks[wl.SubtaskID]; !ok {
		return sql.ErrNoRows
	}
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
	deps := m.deps[subtaskID]
	for i, d := range deps {
		if d.DependsOnID == dependsOnID {
			m.deps[subtaskID] = append(deps[:i], deps[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockStore) GetDependencies(_ context.Context, subtaskID string) ([]*model.Dependency, error) {
	return m.deps[subtaskID], nil
}

func (m *mockStore) GetBlockers(_ context.Context, subtaskID string) ([]*model.Subtask, error) {
	var blockers []*model.Subtask
	for _, d := range m.deps[subtaskID] {
		if st, ok := m.subtasks[d.DependsOnID]; ok && st.Status != model.StatusDone {
			blockers = append(blockers, st)
		}
	}
	return blockers, nil
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

func (m *mockStore) AddMember(_ context.Context, member *model.Member) error {
	m.members[member.ProjectID] = append(m.members[member.ProjectID], member)
	return nil
}

func (m *mockStore) ListMembers(_ context.Context, projectID string) ([]*model.Member, error) {
	return m.members[projectID], nil
}

func (m *mockStore) ListMemberships(_ context.Context, userID string) ([]*model.Member, error) {
	var result []*model.Member
	for _, members := range m.members {
		for _, member := range members {
			if member.UserID == userID {
				result = append(result, member)
			}
		}
	}
	return result, nil
}

func (m *mockStore) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return &model.Profile{UserID: userID}, nil
}

func (m *mockStore) UpsertProfile(_ context.Context, p *model.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	event.ID = int64(len(m.events) + 1)
	event.CreatedAt = time.Now().UTC()
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) GetEvents(_ context.Context, subtaskID string) ([]*model.Event, error) {
	var result []*model.Event
	for _, e := range m.events {
		if e.SubtaskID == subtaskID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStore) GetStats(_ context.Context) (*model.ProjectStats, error) {
	stats := m.stats
	return &stats, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

var _ store.Store = (*mockStore)(nil)
