package engine

import (
	"testing"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func dueIn(days float64) *time.Time {
	d := testNow.Add(time.Duration(days * 24 * float64(time.Hour)))
	return &d
}

func TestDeadlineRisk_DoneIsNone(t *testing.T) {
	task := &model.Subtask{Status: model.StatusDone, EstimatedHours: fl(10), DueDate: dueIn(-5)}
	risk := Default.DeadlineRisk(task, logs(20), nil, testNow)
	if risk.Level != model.RiskNone {
		t.Fatalf("level = %q, want none for done task", risk.Level)
	}
}

func TestDeadlineRisk_NoDueDateIsNone(t *testing.T) {
	task := &model.Subtask{Status: model.StatusInProgress, EstimatedHours: fl(10)}
	risk := Default.DeadlineRisk(task, logs(20), nil, testNow)
	if risk.Level != model.RiskNone {
		t.Fatalf("level = %q, want none without due date", risk.Level)
	}
	if risk.DaysLeft != nil {
		t.Errorf("DaysLeft = %v, want nil", *risk.DaysLeft)
	}
}

func TestDeadlineRisk_PastDueIsCritical(t *testing.T) {
	task := &model.Subtask{Status: model.StatusTodo, EstimatedHours: fl(10), DueDate: dueIn(-1)}
	risk := Default.DeadlineRisk(task, nil, nil, testNow)
	if risk.Level != model.RiskCritical {
		t.Fatalf("level = %q, want critical for past due date", risk.Level)
	}
	if risk.Reason == "" {
		t.Error("reason must be non-empty when level is not none")
	}
}

func TestDeadlineRisk_OverrunInsideCrunchWindowIsCritical(t *testing.T) {
	// Spec end-to-end: estimate 10, due in 2 days, 12h logged.
	task := &model.Subtask{Status: model.StatusInProgress, EstimatedHours: fl(10), DueDate: dueIn(2)}
	risk := Default.DeadlineRisk(task, logs(12), nil, testNow)
	if !risk.IsOverrun {
		t.Fatal("IsOverrun = false, want true")
	}
	if risk.Level != model.RiskCritical {
		t.Fatalf("level = %q, want critical", risk.Level)
	}
	if risk.HoursLogged != 12 {
		t.Errorf("HoursLogged = %g, want 12", risk.HoursLogged)
	}
}

func TestDeadlineRisk_NoEstimate(t *testing.T) {
	near := &model.Subtask{Status: model.StatusInProgress, DueDate: dueIn(1.5)}
	risk := Default.DeadlineRisk(near, nil, nil, testNow)
	if risk.Level != model.RiskHigh {
		t.Errorf("1.5 days left without estimate: level = %q, want high", risk.Level)
	}

	far := &model.Subtask{Status: model.StatusInProgress, DueDate: dueIn(5)}
	risk = Default.DeadlineRisk(far, nil, nil, testNow)
	if risk.Level != model.RiskNone {
		t.Errorf("5 days left without estimate: level = %q, want none", risk.Level)
	}
	if risk.HoursRemaining != nil {
		t.Errorf("HoursRemaining = %v, want nil without estimate", *risk.HoursRemaining)
	}
}

func TestDeadlineRisk_CrunchLoadIsHigh(t *testing.T) {
	// 2 days left: 16 available hours, 40 remaining > 16*0.8.
	task := &model.Subtask{Status: model.StatusInProgress, EstimatedHours: fl(40), DueDate: dueIn(2)}
	risk := Default.DeadlineRisk(task, nil, nil, testNow)
	if risk.Level != model.RiskHigh {
		t.Fatalf("level = %q, want high", risk.Level)
	}
}

func TestDeadlineRisk_LowCompletionNearWindowIsHigh(t *testing.T) {
	// 5 days left, todo with no siblings: completion 0 < 30.
	task := &model.Subtask{Status: model.StatusTodo, EstimatedHours: fl(4), DueDate: dueIn(5)}
	risk := Default.DeadlineRisk(task, nil, nil, testNow)
	if risk.Level != model.RiskHigh {
		t.Fatalf("level = %q, want high", risk.Level)
	}
}

func TestDeadlineRisk_NearLoadIsMedium(t *testing.T) {
	// 5 days left, in_progress (completion 50): 40 available hours,
	// 35 remaining > 40*0.6.
	task := &model.Subtask{Status: model.StatusInProgress, EstimatedHours: fl(35), DueDate: dueIn(5)}
	risk := Default.DeadlineRisk(task, nil, nil, testNow)
	if risk.Level != model.RiskMedium {
		t.Fatalf("level = %q, want medium", risk.Level)
	}
}

func TestDeadlineRisk_LowCompletionFarWindowIsMedium(t *testing.T) {
	// 10 days left, todo: completion 0 < 20, load rules out of range.
	task := &model.Subtask{Status: model.StatusTodo, EstimatedHours: fl(4), DueDate: dueIn(10)}
	risk := Default.DeadlineRisk(task, nil, nil, testNow)
	if risk.Level != model.RiskMedium {
		t.Fatalf("level = %q, want medium", risk.Level)
	}
}

func TestDeadlineRisk_SlackIsLow(t *testing.T) {
	// 10 days left, in_progress, 2 of 4 hours logged.
	task := &model.Subtask{Status: model.StatusInProgress, EstimatedHours: fl(4), DueDate: dueIn(10)}
	risk := Default.DeadlineRisk(task, logs(2), nil, testNow)
	if risk.Level != model.RiskLow {
		t.Fatalf("level = %q, want low", risk.Level)
	}
	if risk.Reason == "" {
		t.Error("reason must be non-empty when level is not none")
	}
}

func TestOverrunSeverity_Boundaries(t *testing.T) {
	for _, tc := range []struct {
		logged    float64
		estimated float64
		status    model.Status
		want      model.Severity
	}{
		{5, 10, model.StatusInProgress, ""},
		{10, 10, model.StatusInProgress, ""}, // at estimate, not over
		{12, 10, model.StatusInProgress, model.SeverityMedium},
		{14.9, 10, model.StatusInProgress, model.SeverityMedium},
		{15, 10, model.StatusInProgress, model.SeverityHigh}, // exactly 1.5x
		{19.9, 10, model.StatusInProgress, model.SeverityHigh},
		{20, 10, model.StatusInProgress, model.SeverityCritical}, // exactly 2.0x
		{35, 10, model.StatusInProgress, model.SeverityCritical},
		{35, 10, model.StatusDone, ""}, // done never flags
		{35, 0, model.StatusInProgress, ""}, // no baseline
	} {
		got := Default.OverrunSeverity(tc.logged, tc.estimated, tc.status)
		if got != tc.want {
			t.Errorf("OverrunSeverity(%g, %g, %q) = %q, want %q",
				tc.logged, tc.estimated, tc.status, got, tc.want)
		}
	}
}

func TestOverrunSeverity_Monotonic(t *testing.T) {
	// Increasing logged hours never decreases the tier.
	prev := 0
	for logged := 10.0; logged <= 40; logged += 0.5 {
		sev := Default.OverrunSeverity(logged, 10, model.StatusInProgress)
		if sev.Rank() < prev {
			t.Fatalf("severity rank decreased at logged=%g: %d -> %d", logged, prev, sev.Rank())
		}
		prev = sev.Rank()
	}
}

func TestOverrunPercent(t *testing.T) {
	if got := OverrunPercent(35, 20); got != 75 {
		t.Errorf("OverrunPercent(35, 20) = %d, want 75", got)
	}
	if got := OverrunPercent(12, 10); got != 20 {
		t.Errorf("OverrunPercent(12, 10) = %d, want 20", got)
	}
	if got := OverrunPercent(5, 0); got != 0 {
		t.Errorf("OverrunPercent(5, 0) = %d, want 0", got)
	}
}
