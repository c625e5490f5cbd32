package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

// Flag IDs are deterministic per source record so that re-running the
// generators over the same data yields the same feed.

// DeadlineItem pairs a subtask with its computed deadline risk.
type DeadlineItem struct {
	Subtask *model.Subtask
	Risk    model.DeadlineRisk
}

// DeadlineFlags turns high and critical deadline risks into flags.
// Lower risk levels produce no flag.
func (h Heuristics) DeadlineFlags(items []DeadlineItem, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, it := range items {
		severity := it.Risk.Level.Severity()
		if severity == "" {
			continue
		}
		flags = append(flags, &model.RedFlag{
			ID:          "deadline-" + it.Subtask.ID,
			Type:        model.FlagDeadline,
			Severity:    severity,
			Title:       "Deadline at risk: " + it.Subtask.Name,
			Description: fmt.Sprintf("%s is %s risk: %s", it.Subtask.Name, it.Risk.Level, it.Risk.Reason),
			Related:     relatedSubtask(it.Subtask),
			ProjectName: it.Subtask.ProjectName,
			CreatedAt:   now,
		})
	}
	return flags
}

// AnomalyItem pairs a subtask with its logged hours and overrun severity.
type AnomalyItem struct {
	Subtask     *model.Subtask
	HoursLogged float64
	Severity    model.Severity
}

// AnomalyFlags turns effort overruns into flags. The description carries the
// raw logged hours and the effort percentage so the numbers are visible in
// the feed without opening the subtask.
func (h Heuristics) AnomalyFlags(items []AnomalyItem, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, it := range items {
		var estimated float64
		if it.Subtask.EstimatedHours != nil {
			estimated = *it.Subtask.EstimatedHours
		}
		effortPct := 0
		if estimated > 0 {
			effortPct = int(math.Round(100 * it.HoursLogged / estimated))
		}
		flags = append(flags, &model.RedFlag{
			ID:       "anomaly-" + it.Subtask.ID,
			Type:     model.FlagAnomaly,
			Severity: it.Severity,
			Title:    "Effort overrun: " + it.Subtask.Name,
			Description: fmt.Sprintf("%g hours logged, %d%% of the %gh estimate (%d%% over)",
				it.HoursLogged, effortPct, estimated, OverrunPercent(it.HoursLogged, estimated)),
			Related:     relatedSubtask(it.Subtask),
			ProjectName: it.Subtask.ProjectName,
			CreatedAt:   now,
		})
	}
	return flags
}

// BlockerFlags turns blocked subtasks into flags, escalating with how long
// the subtask has sat blocked: up to BlockedHighDays is medium, up to
// BlockedCriticalDays is high, beyond that critical. blockers maps a subtask
// ID to the records it is waiting on; when present, the first blocker's name
// is included in the description.
func (h Heuristics) BlockerFlags(subtasks []*model.Subtask, blockers map[string][]*model.Subtask, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, st := range subtasks {
		if st.Status != model.StatusBlocked {
			continue
		}
		days := now.Sub(st.UpdatedAt).Hours() / 24

		var severity model.Severity
		switch {
		case days > h.BlockedCriticalDays:
			severity = model.SeverityCritical
		case days > h.BlockedHighDays:
			severity = model.SeverityHigh
		default:
			severity = model.SeverityMedium
		}

		desc := fmt.Sprintf("%s has been blocked for %d days", st.Name, int(days))
		if blocking := blockers[st.ID]; len(blocking) > 0 {
			desc += fmt.Sprintf(", waiting on %q", blocking[0].Name)
		}

		flags = append(flags, &model.RedFlag{
			ID:          "blocked-" + st.ID,
			Type:        model.FlagBlocked,
			Severity:    severity,
			Title:       "Blocked: " + st.Name,
			Description: desc,
			Related:     relatedSubtask(st),
			ProjectName: st.ProjectName,
			CreatedAt:   st.UpdatedAt,
		})
	}
	return flags
}

// StaleItem pairs a subtask with its measured inactivity.
type StaleItem struct {
	Subtask             *model.Subtask
	DaysWithoutActivity float64
}

// StaleFlags turns inactive subtasks into flags. Activity gaps under
// StaleMediumDays are normal and produce nothing.
func (h Heuristics) StaleFlags(items []StaleItem, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, it := range items {
		var severity model.Severity
		switch {
		case it.DaysWithoutActivity >= h.StaleHighDays:
			severity = model.SeverityHigh
		case it.DaysWithoutActivity >= h.StaleMediumDays:
			severity = model.SeverityMedium
		default:
			continue
		}
		flags = append(flags, &model.RedFlag{
			ID:          "stale-" + it.Subtask.ID,
			Type:        model.FlagStale,
			Severity:    severity,
			Title:       "No recent activity: " + it.Subtask.Name,
			Description: fmt.Sprintf("%s has had no activity for %d days", it.Subtask.Name, int(it.DaysWithoutActivity)),
			Related:     relatedSubtask(it.Subtask),
			ProjectName: it.Subtask.ProjectName,
			CreatedAt:   now,
		})
	}
	return flags
}

// UnassignedFlags turns unassigned priority work into flags. Low-priority
// unassigned subtasks (below UnassignedMediumStars) produce nothing.
func (h Heuristics) UnassignedFlags(subtasks []*model.Subtask, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, st := range subtasks {
		if st.AssignedTo != "" {
			continue
		}

		var severity model.Severity
		switch {
		case st.PriorityStars >= h.UnassignedHighStars:
			severity = model.SeverityHigh
		case st.PriorityStars >= h.UnassignedMediumStars:
			severity = model.SeverityMedium
		default:
			continue
		}

		flags = append(flags, &model.RedFlag{
			ID:          "unassigned-" + st.ID,
			Type:        model.FlagUnassigned,
			Severity:    severity,
			Title:       "Unassigned: " + st.Name,
			Description: fmt.Sprintf("%s (%d stars) has no assignee", st.Name, st.PriorityStars),
			Related:     relatedSubtask(st),
			ProjectName: st.ProjectName,
			CreatedAt:   now,
		})
	}
	return flags
}

// PendingApprovalFlags turns aging unresolved task requests into flags.
// Requests younger than ApprovalMediumDays produce nothing; past
// ApprovalHighDays they escalate to high.
func (h Heuristics) PendingApprovalFlags(requests []*model.TaskRequest, now time.Time) []*model.RedFlag {
	var flags []*model.RedFlag
	for _, req := range requests {
		if req.Status != model.RequestPending {
			continue
		}
		age := now.Sub(req.CreatedAt).Hours() / 24

		var severity model.Severity
		switch {
		case age > h.ApprovalHighDays:
			severity = model.SeverityHigh
		case age >= h.ApprovalMediumDays:
			severity = model.SeverityMedium
		default:
			continue
		}

		flags = append(flags, &model.RedFlag{
			ID:          "approval-" + req.ID,
			Type:        model.FlagPendingApproval,
			Severity:    severity,
			Title:       "Approval pending: " + req.TaskName,
			Description: fmt.Sprintf("request for %q has waited %d days for approval", req.TaskName, int(age)),
			Related:     model.RelatedEntity{Type: model.EntityRequest, ID: req.ID, Name: req.TaskName},
			ProjectName: req.ProjectName,
			CreatedAt:   req.CreatedAt,
		})
	}
	return flags
}

func relatedSubtask(st *model.Subtask) model.RelatedEntity {
	return model.RelatedEntity{Type: model.EntitySubtask, ID: st.ID, Name: st.Name}
}
