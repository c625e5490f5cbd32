package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeStore is an in-memory Storage stub keyed directly on the fixture data.
type fakeStore struct {
	profiles    map[string]*model.Profile
	memberships map[string][]*model.Member
	subtasks    []*model.Subtask
	workLogs    map[string][]*model.WorkLog
	blockers    map[string][]*model.Subtask
	requests    []*model.TaskRequest
	stats       *model.ProjectStats
}

func (f *fakeStore) GetProfile(_ context.Context, userID string) (*model.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return &model.Profile{UserID: userID}, nil
}

func (f *fakeStore) ListMemberships(_ context.Context, userID string) ([]*model.Member, error) {
	return f.memberships[userID], nil
}

func (f *fakeStore) ListSubtasks(_ context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error) {
	if len(filter.ProjectIDs) == 0 {
		return f.subtasks, len(f.subtasks), nil
	}
	allowed := make(map[string]bool, len(filter.ProjectIDs))
	for _, id := range filter.ProjectIDs {
		allowed[id] = true
	}
	var out []*model.Subtask
	for _, st := range f.subtasks {
		if allowed[st.ProjectID] {
			out = append(out, st)
		}
	}
	return out, len(out), nil
}

func (f *fakeStore) GetSubtask(_ context.Context, id string) (*model.Subtask, error) {
	for _, st := range f.subtasks {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, context.Canceled
}

func (f *fakeStore) GetWorkLogs(_ context.Context, subtaskID string) ([]*model.WorkLog, error) {
	return f.workLogs[subtaskID], nil
}

func (f *fakeStore) GetBlockers(_ context.Context, subtaskID string) ([]*model.Subtask, error) {
	return f.blockers[subtaskID], nil
}

func (f *fakeStore) ListTaskRequests(_ context.Context, status model.RequestStatus) ([]*model.TaskRequest, error) {
	var out []*model.TaskRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) GetStats(_ context.Context) (*model.ProjectStats, error) {
	return f.stats, nil
}

func fl(v float64) *float64 { return &v }

func dueIn(days float64) *time.Time {
	t := testNow.Add(time.Duration(days * 24 * float64(time.Hour)))
	return &t
}

func newService(fs *fakeStore) *Service {
	return New(fs, WithClock(func() time.Time { return testNow }))
}

func TestRedFlags_ScopesToMemberProjects(t *testing.T) {
	fs := &fakeStore{
		profiles: map[string]*model.Profile{
			"u1": {UserID: "u1"},
		},
		memberships: map[string][]*model.Member{
			"u1": {{UserID: "u1", ProjectID: "p1", Role: model.RoleMember}},
		},
		subtasks: []*model.Subtask{
			{ID: "s1", ProjectID: "p1", Name: "visible", Status: model.StatusTodo, PriorityStars: 3, UpdatedAt: testNow},
			{ID: "s2", ProjectID: "p2", Name: "hidden", Status: model.StatusTodo, PriorityStars: 3, UpdatedAt: testNow},
		},
		workLogs: map[string][]*model.WorkLog{},
		requests: []*model.TaskRequest{
			{ID: "r1", TaskName: "out of scope", ProjectID: "p2", Status: model.RequestPending, CreatedAt: testNow.AddDate(0, 0, -10)},
		},
	}

	flags, err := newService(fs).RedFlags(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RedFlags: %v", err)
	}

	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1: %+v", len(flags), flags)
	}
	if flags[0].ID != "unassigned-s1" {
		t.Errorf("flag ID = %q, want unassigned-s1", flags[0].ID)
	}
}

func TestRedFlags_AdminSeesAllProjects(t *testing.T) {
	fs := &fakeStore{
		profiles: map[string]*model.Profile{
			"root": {UserID: "root", Admin: true},
		},
		memberships: map[string][]*model.Member{},
		subtasks: []*model.Subtask{
			{ID: "s1", ProjectID: "p1", Name: "a", Status: model.StatusTodo, PriorityStars: 2, UpdatedAt: testNow},
			{ID: "s2", ProjectID: "p2", Name: "b", Status: model.StatusTodo, PriorityStars: 3, UpdatedAt: testNow},
		},
		workLogs: map[string][]*model.WorkLog{},
	}

	flags, err := newService(fs).RedFlags(context.Background(), "root")
	if err != nil {
		t.Fatalf("RedFlags: %v", err)
	}
	if len(flags) != 2 {
		t.Fatalf("got %d flags, want 2", len(flags))
	}
	// high severity (3 stars) sorts before medium (2 stars)
	if flags[0].ID != "unassigned-s2" || flags[1].ID != "unassigned-s1" {
		t.Errorf("order = [%s %s], want [unassigned-s2 unassigned-s1]", flags[0].ID, flags[1].ID)
	}
}

func TestRedFlags_NoMembershipsReturnsEmpty(t *testing.T) {
	fs := &fakeStore{
		profiles:    map[string]*model.Profile{"u1": {UserID: "u1"}},
		memberships: map[string][]*model.Member{},
		subtasks: []*model.Subtask{
			{ID: "s1", ProjectID: "p1", Name: "x", Status: model.StatusTodo, PriorityStars: 3, UpdatedAt: testNow},
		},
		workLogs: map[string][]*model.WorkLog{},
	}

	flags, err := newService(fs).RedFlags(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RedFlags: %v", err)
	}
	if len(flags) != 0 {
		t.Errorf("got %d flags, want 0", len(flags))
	}
}

func TestRedFlags_CombinesGeneratorCategories(t *testing.T) {
	fs := &fakeStore{
		profiles:    map[string]*model.Profile{"root": {UserID: "root", Admin: true}},
		memberships: map[string][]*model.Member{},
		subtasks: []*model.Subtask{
			// critical deadline: due date passed
			{ID: "s1", ProjectID: "p1", Name: "late", Status: model.StatusInProgress, AssignedTo: "u1",
				EstimatedHours: fl(10), DueDate: dueIn(-2), UpdatedAt: testNow},
			// anomaly: 35h on a 20h estimate
			{ID: "s2", ProjectID: "p1", Name: "overrun", Status: model.StatusInProgress, AssignedTo: "u1",
				EstimatedHours: fl(20), UpdatedAt: testNow},
			// blocked 5 days
			{ID: "s3", ProjectID: "p1", Name: "stuck", Status: model.StatusBlocked, AssignedTo: "u1",
				UpdatedAt: testNow.AddDate(0, 0, -5)},
		},
		workLogs: map[string][]*model.WorkLog{
			"s1": {{HoursSpent: 2, CreatedAt: testNow}},
			"s2": {{HoursSpent: 35, CreatedAt: testNow}},
		},
		blockers: map[string][]*model.Subtask{
			"s3": {{ID: "s9", Name: "upstream"}},
		},
		requests: []*model.TaskRequest{
			{ID: "r1", TaskName: "new feature", ProjectID: "p1", Status: model.RequestPending,
				CreatedAt: testNow.AddDate(0, 0, -4)},
		},
	}

	flags, err := newService(fs).RedFlags(context.Background(), "root")
	if err != nil {
		t.Fatalf("RedFlags: %v", err)
	}

	byID := make(map[string]*model.RedFlag, len(flags))
	for _, f := range flags {
		byID[f.ID] = f
	}

	if f := byID["deadline-s1"]; f == nil || f.Severity != model.SeverityCritical {
		t.Errorf("deadline-s1 = %+v, want critical", f)
	}
	if f := byID["anomaly-s2"]; f == nil || f.Severity != model.SeverityHigh {
		t.Errorf("anomaly-s2 = %+v, want high", f)
	} else if !strings.Contains(f.Description, "35") || !strings.Contains(f.Description, "175%") {
		t.Errorf("anomaly description = %q, want logged hours and effort percent", f.Description)
	}
	if f := byID["blocked-s3"]; f == nil || f.Severity != model.SeverityHigh {
		t.Errorf("blocked-s3 = %+v, want high", f)
	} else if !strings.Contains(f.Description, `"upstream"`) {
		t.Errorf("blocked description = %q, want blocker name", f.Description)
	}
	if f := byID["approval-r1"]; f == nil || f.Severity != model.SeverityMedium {
		t.Errorf("approval-r1 = %+v, want medium", f)
	}

	// critical first
	if flags[0].ID != "deadline-s1" {
		t.Errorf("first flag = %s, want deadline-s1", flags[0].ID)
	}
}

func TestRedFlags_StaleUsesLatestWorkLog(t *testing.T) {
	fs := &fakeStore{
		profiles:    map[string]*model.Profile{"root": {UserID: "root", Admin: true}},
		memberships: map[string][]*model.Member{},
		subtasks: []*model.Subtask{
			// Updated 12 days ago, but a work log 2 days ago keeps it fresh.
			{ID: "s1", ProjectID: "p1", Name: "fresh", Status: model.StatusInProgress, AssignedTo: "u1",
				UpdatedAt: testNow.AddDate(0, 0, -12)},
			// No work logs, 6 days idle.
			{ID: "s2", ProjectID: "p1", Name: "idle", Status: model.StatusInProgress, AssignedTo: "u1",
				UpdatedAt: testNow.AddDate(0, 0, -6)},
		},
		workLogs: map[string][]*model.WorkLog{
			"s1": {{HoursSpent: 1, CreatedAt: testNow.AddDate(0, 0, -2)}},
		},
	}

	flags, err := newService(fs).RedFlags(context.Background(), "root")
	if err != nil {
		t.Fatalf("RedFlags: %v", err)
	}

	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1: %+v", len(flags), flags)
	}
	if flags[0].ID != "stale-s2" || flags[0].Severity != model.SeverityMedium {
		t.Errorf("flag = %+v, want stale-s2 medium", flags[0])
	}
}

func TestSubtaskRisk_LoadsSiblings(t *testing.T) {
	fs := &fakeStore{
		subtasks: []*model.Subtask{
			{ID: "s1", ProjectID: "p1", ModuleID: "m1", Name: "target", Status: model.StatusInProgress,
				EstimatedHours: fl(10), DueDate: dueIn(10), UpdatedAt: testNow},
			{ID: "s2", ProjectID: "p1", ModuleID: "m1", Status: model.StatusDone},
			{ID: "s3", ProjectID: "p1", ModuleID: "m1", Status: model.StatusDone},
			{ID: "s4", ProjectID: "p1", ModuleID: "m1", Status: model.StatusTodo},
			{ID: "s5", ProjectID: "p1", ModuleID: "m2", Status: model.StatusTodo},
		},
		workLogs: map[string][]*model.WorkLog{
			"s1": {{HoursSpent: 12, CreatedAt: testNow}},
		},
	}

	risk, err := newService(fs).SubtaskRisk(context.Background(), "s1")
	if err != nil {
		t.Fatalf("SubtaskRisk: %v", err)
	}

	if risk.Level != model.RiskLow {
		t.Errorf("level = %s, want low", risk.Level)
	}
	if !risk.IsOverrun {
		t.Error("IsOverrun = false, want true")
	}
	// 12h logged at 2/4 siblings done projects 24h total, 12h remaining.
	if risk.HoursRemaining == nil || *risk.HoursRemaining != 12 {
		t.Errorf("HoursRemaining = %v, want 12", risk.HoursRemaining)
	}
}

func TestStats_PassesThrough(t *testing.T) {
	fs := &fakeStore{
		stats: &model.ProjectStats{TotalInProgress: 3, PendingRequests: 2},
	}

	stats, err := newService(fs).Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalInProgress != 3 || stats.PendingRequests != 2 {
		t.Errorf("stats = %+v", stats)
	}
}
