package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

// DeadlineRisk classifies how likely a subtask is to miss its due date.
//
// The rules are evaluated in precedence order; the first match wins:
//
//  1. done subtasks and subtasks without a due date carry no risk
//  2. a due date in the past is critical regardless of effort
//  3. an overrun subtask inside the crunch window is critical
//  4. without an hour estimate, classification falls back to calendar slack
//  5. otherwise remaining work is weighed against available working hours
//     (WorkdayHours per calendar day) and sibling completion
//
// now is injected so repeated calls over the same data are deterministic.
func (h Heuristics) DeadlineRisk(task *model.Subtask, logs []*model.WorkLog, siblings []*model.Subtask, now time.Time) model.DeadlineRisk {
	logged := model.SumHours(logs)

	risk := model.DeadlineRisk{
		Level:       model.RiskNone,
		HoursLogged: logged,
	}
	risk.EffortPercent = h.TaskMetrics(task, logged, siblings).EffortPercent

	if task.Status == model.StatusDone {
		return risk
	}
	if task.DueDate == nil {
		return risk
	}

	daysLeft := task.DueDate.Sub(now).Hours() / 24
	risk.DaysLeft = &daysLeft
	risk.HoursRemaining = h.RemainingHours(task, logs, siblings)
	risk.IsOverrun = task.EstimatedHours != nil && logged >= *task.EstimatedHours

	if daysLeft < 0 {
		risk.Level = model.RiskCritical
		risk.Reason = fmt.Sprintf("due date passed %.1f days ago", -daysLeft)
		return risk
	}

	if risk.IsOverrun && daysLeft <= h.CrunchWindowDays {
		risk.Level = model.RiskCritical
		risk.Reason = fmt.Sprintf("estimate exhausted with %.1f days left", daysLeft)
		return risk
	}

	if task.EstimatedHours == nil {
		// No hour baseline: calendar slack is the only signal.
		if daysLeft <= h.NoEstimateWindowDays {
			risk.Level = model.RiskHigh
			risk.Reason = fmt.Sprintf("no estimate and only %.1f days left", daysLeft)
		}
		return risk
	}

	remaining := *risk.HoursRemaining
	availableHours := daysLeft * h.WorkdayHours
	completion := h.TaskMetrics(task, logged, siblings).TaskCompletionPercent

	switch {
	case daysLeft <= h.CrunchWindowDays && remaining > availableHours*h.CrunchLoadRatio:
		risk.Level = model.RiskHigh
		risk.Reason = fmt.Sprintf("%.1fh of work against %.1fh available", remaining, availableHours)
	case daysLeft <= h.NearWindowDays && completion < h.NearCompletionFloor:
		risk.Level = model.RiskHigh
		risk.Reason = fmt.Sprintf("only %d%% complete with %.1f days left", completion, daysLeft)
	case daysLeft <= h.NearWindowDays && remaining > availableHours*h.NearLoadRatio:
		risk.Level = model.RiskMedium
		risk.Reason = fmt.Sprintf("%.1fh of work against %.1fh available", remaining, availableHours)
	case daysLeft <= h.FarWindowDays && completion < h.FarCompletionFloor:
		risk.Level = model.RiskMedium
		risk.Reason = fmt.Sprintf("only %d%% complete with %.1f days left", completion, daysLeft)
	default:
		risk.Level = model.RiskLow
		risk.Reason = "on track"
	}

	return risk
}

// OverrunSeverity tiers a logged-vs-estimated overrun. It returns the empty
// severity for done subtasks, when there is no baseline, or when the subtask
// is at or under its estimate. Tier boundaries are inclusive on the lower
// bound: a ratio of exactly AnomalyHighRatio is high.
func (h Heuristics) OverrunSeverity(hoursLogged, estimatedHours float64, status model.Status) model.Severity {
	if status == model.StatusDone {
		return ""
	}
	if estimatedHours <= 0 {
		return ""
	}
	if hoursLogged <= estimatedHours {
		return ""
	}

	ratio := hoursLogged / estimatedHours
	switch {
	case ratio >= h.AnomalyCriticalRatio:
		return model.SeverityCritical
	case ratio >= h.AnomalyHighRatio:
		return model.SeverityHigh
	default:
		return model.SeverityMedium
	}
}

// OverrunPercent returns how far past its estimate a subtask has run,
// rounded to whole percent (35h logged on a 20h estimate is 75).
func OverrunPercent(hoursLogged, estimatedHours float64) int {
	if estimatedHours <= 0 {
		return 0
	}
	return int(math.Round(100*hoursLogged/estimatedHours - 100))
}
