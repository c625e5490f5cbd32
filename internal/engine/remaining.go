package engine

import (
	"math"

	"github.com/Mario960060/cosmichub/internal/model"
)

// Metrics holds derived progress percentages for a subtask.
type Metrics struct {
	EffortPercent         int `json:"effort_percent"`
	TaskCompletionPercent int `json:"task_completion_percent"`
}

// RemainingHours estimates the effort left on a subtask.
//
// It returns 0 for done subtasks and nil when there is no hour estimate to
// project from. Under the estimate the projection is linear. Past the
// estimate it extrapolates total effort from the sibling set's completion
// fraction; without usable sibling data it falls back to a conservative
// floor so the projection never collapses to zero mid-overrun.
//
// siblings is the full set of subtasks sharing the parent, including the
// subtask itself; pass nil when sibling data is unavailable.
func (h Heuristics) RemainingHours(task *model.Subtask, logs []*model.WorkLog, siblings []*model.Subtask) *float64 {
	if task.Status == model.StatusDone {
		zero := 0.0
		return &zero
	}
	if task.EstimatedHours == nil {
		return nil
	}

	estimated := *task.EstimatedHours
	logged := model.SumHours(logs)

	if logged < estimated {
		remaining := estimated - logged
		return &remaining
	}

	// Overrun: the original estimate is spent. Project from siblings when
	// some of them are done, otherwise use the conservative floor.
	if fraction := completionFraction(siblings); fraction > 0 {
		remaining := math.Max(0, logged/fraction-logged)
		return &remaining
	}

	remaining := math.Max(estimated*h.OverrunEstimateFloor, logged*h.OverrunLoggedFloor)
	return &remaining
}

// TaskMetrics derives effort and completion percentages for a subtask.
// Effort is logged hours against the estimate (0 without a baseline).
// Completion comes from the sibling set when present, else from the
// subtask's own status.
func (h Heuristics) TaskMetrics(task *model.Subtask, hoursLogged float64, siblings []*model.Subtask) Metrics {
	var m Metrics

	if task.EstimatedHours != nil && *task.EstimatedHours > 0 {
		m.EffortPercent = int(math.Round(100 * hoursLogged / *task.EstimatedHours))
	}

	if len(siblings) > 0 {
		done := 0
		for _, s := range siblings {
			if s.Status == model.StatusDone {
				done++
			}
		}
		m.TaskCompletionPercent = int(math.Round(100 * float64(done) / float64(len(siblings))))
		return m
	}

	switch task.Status {
	case model.StatusDone:
		m.TaskCompletionPercent = 100
	case model.StatusInProgress:
		m.TaskCompletionPercent = 50
	default:
		m.TaskCompletionPercent = 0
	}
	return m
}

// completionFraction returns the done share of the sibling set, or 0 when
// the set is empty or nothing is done yet.
func completionFraction(siblings []*model.Subtask) float64 {
	if len(siblings) == 0 {
		return 0
	}
	done := 0
	for _, s := range siblings {
		if s.Status == model.StatusDone {
			done++
		}
	}
	return float64(done) / float64(len(siblings))
}
