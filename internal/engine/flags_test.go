package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

func subtask(id, name string, status model.Status) *model.Subtask {
	return &model.Subtask{
		ID:          id,
		ProjectID:   "ch-proj1",
		ProjectName: "Orion",
		Name:        name,
		Status:      status,
		CreatedAt:   testNow.Add(-72 * time.Hour),
		UpdatedAt:   testNow.Add(-24 * time.Hour),
	}
}

func TestDeadlineFlags_KeepsOnlyHighAndCritical(t *testing.T) {
	items := []DeadlineItem{
		{Subtask: subtask("ch-a", "alpha", model.StatusInProgress), Risk: model.DeadlineRisk{Level: model.RiskCritical, Reason: "past due"}},
		{Subtask: subtask("ch-b", "beta", model.StatusInProgress), Risk: model.DeadlineRisk{Level: model.RiskHigh, Reason: "tight"}},
		{Subtask: subtask("ch-c", "gamma", model.StatusInProgress), Risk: model.DeadlineRisk{Level: model.RiskMedium, Reason: "watch"}},
		{Subtask: subtask("ch-d", "delta", model.StatusInProgress), Risk: model.DeadlineRisk{Level: model.RiskNone}},
	}

	flags := Default.DeadlineFlags(items, testNow)
	if len(flags) != 2 {
		t.Fatalf("got %d flags, want 2", len(flags))
	}
	if flags[0].Severity != model.SeverityCritical || flags[1].Severity != model.SeverityHigh {
		t.Errorf("severities = %q, %q; want critical, high", flags[0].Severity, flags[1].Severity)
	}
	if !strings.Contains(flags[0].Description, "past due") {
		t.Errorf("description %q does not include the risk reason", flags[0].Description)
	}
	if flags[0].Related.ID != "ch-a" || flags[0].Related.Type != model.EntitySubtask {
		t.Errorf("related entity = %+v, want subtask ch-a", flags[0].Related)
	}
}

func TestAnomalyFlags_DescriptionCarriesNumbers(t *testing.T) {
	st := subtask("ch-a", "ingest", model.StatusInProgress)
	st.EstimatedHours = fl(20)

	flags := Default.AnomalyFlags([]AnomalyItem{
		{Subtask: st, HoursLogged: 35, Severity: model.SeverityHigh},
	}, testNow)

	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(flags))
	}
	desc := flags[0].Description
	// 35h logged on a 20h estimate: both the raw hours and the 175% effort
	// figure must be visible in the feed.
	if !strings.Contains(desc, "35") {
		t.Errorf("description %q does not include logged hours", desc)
	}
	if !strings.Contains(desc, "175") {
		t.Errorf("description %q does not include effort percent", desc)
	}
	if flags[0].Type != model.FlagAnomaly {
		t.Errorf("type = %q, want anomaly", flags[0].Type)
	}
}

func TestBlockerFlags_SeverityByAge(t *testing.T) {
	for _, tc := range []struct {
		name    string
		blocked time.Duration
		want    model.Severity
	}{
		{"one day", 24 * time.Hour, model.SeverityMedium},
		{"exactly three days", 72 * time.Hour, model.SeverityMedium},
		{"one hour past three days", 73 * time.Hour, model.SeverityHigh},
		{"seven days", 7 * 24 * time.Hour, model.SeverityHigh},
		{"eight days", 8 * 24 * time.Hour, model.SeverityCritical},
	} {
		t.Run(tc.name, func(t *testing.T) {
			st := subtask("ch-a", "migrate schema", model.StatusBlocked)
			st.UpdatedAt = testNow.Add(-tc.blocked)

			flags := Default.BlockerFlags([]*model.Subtask{st}, nil, testNow)
			if len(flags) != 1 {
				t.Fatalf("got %d flags, want 1", len(flags))
			}
			if flags[0].Severity != tc.want {
				t.Errorf("severity = %q, want %q", flags[0].Severity, tc.want)
			}
		})
	}
}

func TestBlockerFlags_SkipsUnblockedAndNamesBlocker(t *testing.T) {
	blocked := subtask("ch-a", "deploy", model.StatusBlocked)
	running := subtask("ch-b", "implement", model.StatusInProgress)

	blockers := map[string][]*model.Subtask{
		"ch-a": {subtask("ch-c", "provision cluster", model.StatusInProgress)},
	}

	flags := Default.BlockerFlags([]*model.Subtask{blocked, running}, blockers, testNow)
	if len(flags) != 1 {
		t.Fatalf("got %d flags, want 1", len(flags))
	}
	if !strings.Contains(flags[0].Description, "provision cluster") {
		t.Errorf("description %q does not name the blocking subtask", flags[0].Description)
	}
}

func TestStaleFlags_Boundaries(t *testing.T) {
	for _, tc := range []struct {
		days float64
		want model.Severity // "" = no flag
	}{
		{4.9, ""},
		{5, model.SeverityMedium},
		{9.9, model.SeverityMedium},
		{10, model.SeverityHigh},
		{30, model.SeverityHigh},
	} {
		flags := Default.StaleFlags([]StaleItem{
			{Subtask: subtask("ch-a", "draft docs", model.StatusInProgress), DaysWithoutActivity: tc.days},
		}, testNow)

		if tc.want == "" {
			if len(flags) != 0 {
				t.Errorf("days=%g: got %d flags, want none", tc.days, len(flags))
			}
			continue
		}
		if len(flags) != 1 {
			t.Fatalf("days=%g: got %d flags, want 1", tc.days, len(flags))
		}
		if flags[0].Severity != tc.want {
			t.Errorf("days=%g: severity = %q, want %q", tc.days, flags[0].Severity, tc.want)
		}
	}
}

func TestUnassignedFlags_PriorityThresholds(t *testing.T) {
	for _, tc := range []struct {
		stars int
		want  model.Severity // "" = no flag
	}{
		{0, ""},
		{1, ""},
		{2, model.SeverityMedium},
		{3, model.SeverityHigh},
		{5, model.SeverityHigh},
	} {
		st := subtask("ch-a", "triage queue", model.StatusTodo)
		st.PriorityStars = tc.stars

		flags := Default.UnassignedFlags([]*model.Subtask{st}, testNow)
		if tc.want == "" {
			if len(flags) != 0 {
				t.Errorf("stars=%d: got %d flags, want none", tc.stars, len(flags))
			}
			continue
		}
		if len(flags) != 1 {
			t.Fatalf("stars=%d: got %d flags, want 1", tc.stars, len(flags))
		}
		if flags[0].Severity != tc.want {
			t.Errorf("stars=%d: severity = %q, want %q", tc.stars, flags[0].Severity, tc.want)
		}
	}
}

func TestUnassignedFlags_SkipsAssigned(t *testing.T) {
	st := subtask("ch-a", "triage queue", model.StatusTodo)
	st.PriorityStars = 3
	st.AssignedTo = "usr-1"

	if flags := Default.UnassignedFlags([]*model.Subtask{st}, testNow); len(flags) != 0 {
		t.Fatalf("got %d flags for assigned subtask, want none", len(flags))
	}
}

func TestPendingApprovalFlags_AgeThresholds(t *testing.T) {
	for _, tc := range []struct {
		ageDays float64
		want    model.Severity // "" = no flag
	}{
		{1, ""},
		{2.9, ""},
		{3, model.SeverityMedium},
		{7, model.SeverityMedium},
		{7.1, model.SeverityHigh},
		{14, model.SeverityHigh},
	} {
		req := &model.TaskRequest{
			ID:          "req-1",
			TaskName:    "Add exports",
			ProjectName: "Orion",
			Status:      model.RequestPending,
			CreatedAt:   testNow.Add(-time.Duration(tc.ageDays * 24 * float64(time.Hour))),
		}

		flags := Default.PendingApprovalFlags([]*model.TaskRequest{req}, testNow)
		if tc.want == "" {
			if len(flags) != 0 {
				t.Errorf("age=%g: got %d flags, want none", tc.ageDays, len(flags))
			}
			continue
		}
		if len(flags) != 1 {
			t.Fatalf("age=%g: got %d flags, want 1", tc.ageDays, len(flags))
		}
		if flags[0].Severity != tc.want {
			t.Errorf("age=%g: severity = %q, want %q", tc.ageDays, flags[0].Severity, tc.want)
		}
		if flags[0].Related.Type != model.EntityRequest {
			t.Errorf("related type = %q, want task_request", flags[0].Related.Type)
		}
	}
}

func TestPendingApprovalFlags_SkipsResolved(t *testing.T) {
	req := &model.TaskRequest{
		ID:        "req-1",
		TaskName:  "Add exports",
		Status:    model.RequestApproved,
		CreatedAt: testNow.Add(-10 * 24 * time.Hour),
	}
	if flags := Default.PendingApprovalFlags([]*model.TaskRequest{req}, testNow); len(flags) != 0 {
		t.Fatalf("got %d flags for resolved request, want none", len(flags))
	}
}
