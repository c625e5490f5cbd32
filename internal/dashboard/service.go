// Package dashboard assembles the red-flag feed and per-subtask risk views.
// It owns the data fetching the engine deliberately avoids: resolving the
// caller's project scope, loading subtasks with their work logs and blocker
// edges, and handing the materialized rows to the engine in one pass.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Mario960060/cosmichub/internal/engine"
	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/scope"
)

// Storage is the read subset of the store the dashboard needs.
type Storage interface {
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
	ListMemberships(ctx context.Context, userID string) ([]*model.Member, error)
	ListSubtasks(ctx context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error)
	GetSubtask(ctx context.Context, id string) (*model.Subtask, error)
	GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, error)
	GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error)
	ListTaskRequests(ctx context.Context, status model.RequestStatus) ([]*model.TaskRequest, error)
	GetStats(ctx context.Context) (*model.ProjectStats, error)
}

// Service computes dashboard views over a store. It holds no state between
// calls; every call reads the clock exactly once so results over unchanged
// data are deterministic.
type Service struct {
	store      Storage
	heuristics engine.Heuristics
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithHeuristics overrides the default engine thresholds.
func WithHeuristics(h engine.Heuristics) Option {
	return func(s *Service) { s.heuristics = h }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces the clock, used by tests to pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a dashboard service over the given store.
func New(st Storage, opts ...Option) *Service {
	s := &Service{
		store:      st,
		heuristics: engine.Default,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RedFlags builds the merged flag feed for a user. Records outside the
// user's project scope never reach the generators. Admin profiles see all
// projects.
func (s *Service) RedFlags(ctx context.Context, userID string) ([]*model.RedFlag, error) {
	sc, err := s.scopeFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	subtasks, err := s.scopedSubtasks(ctx, sc)
	if err != nil {
		return nil, err
	}

	requests, err := s.store.ListTaskRequests(ctx, model.RequestPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	requests = scope.FilterRequests(sc, requests)

	now := s.now()

	// Group siblings by module so completion projections see the whole set.
	siblings := make(map[string][]*model.Subtask)
	for _, st := range subtasks {
		if st.ModuleID != "" {
			siblings[st.ModuleID] = append(siblings[st.ModuleID], st)
		}
	}

	var (
		deadlineItems []engine.DeadlineItem
		anomalyItems  []engine.AnomalyItem
		staleItems    []engine.StaleItem
		blockers      = make(map[string][]*model.Subtask)
	)

	for _, st := range subtasks {
		logs, err := s.store.GetWorkLogs(ctx, st.ID)
		if err != nil {
			return nil, fmt.Errorf("loading work logs for %s: %w", st.ID, err)
		}
		st.WorkLogs = logs
		logged := model.SumHours(logs)
		set := siblings[st.ModuleID]

		deadlineItems = append(deadlineItems, engine.DeadlineItem{
			Subtask: st,
			Risk:    s.heuristics.DeadlineRisk(st, logs, set, now),
		})

		var estimated float64
		if st.EstimatedHours != nil {
			estimated = *st.EstimatedHours
		}
		if sev := s.heuristics.OverrunSeverity(logged, estimated, st.Status); sev != "" {
			anomalyItems = append(anomalyItems, engine.AnomalyItem{
				Subtask:     st,
				HoursLogged: logged,
				Severity:    sev,
			})
		}

		if st.Status == model.StatusInProgress || st.Status == model.StatusReview {
			staleItems = append(staleItems, engine.StaleItem{
				Subtask:             st,
				DaysWithoutActivity: now.Sub(lastActivity(st, logs)).Hours() / 24,
			})
		}

		if st.Status == model.StatusBlocked {
			blocking, err := s.store.GetBlockers(ctx, st.ID)
			if err != nil {
				s.logger.Warn("loading blockers", "subtask_id", st.ID, "error", err)
				continue
			}
			blockers[st.ID] = blocking
		}
	}

	return engine.MergeFlags(
		s.heuristics.DeadlineFlags(deadlineItems, now),
		s.heuristics.AnomalyFlags(anomalyItems, now),
		s.heuristics.BlockerFlags(subtasks, blockers, now),
		s.heuristics.StaleFlags(staleItems, now),
		s.heuristics.UnassignedFlags(subtasks, now),
		s.heuristics.PendingApprovalFlags(requests, now),
	), nil
}

// SubtaskRisk computes the deadline risk for one subtask, loading its work
// logs and module siblings.
func (s *Service) SubtaskRisk(ctx context.Context, subtaskID string) (model.DeadlineRisk, error) {
	st, err := s.store.GetSubtask(ctx, subtaskID)
	if err != nil {
		return model.DeadlineRisk{}, fmt.Errorf("loading subtask %s: %w", subtaskID, err)
	}

	logs, err := s.store.GetWorkLogs(ctx, subtaskID)
	if err != nil {
		return model.DeadlineRisk{}, fmt.Errorf("loading work logs for %s: %w", subtaskID, err)
	}

	var siblings []*model.Subtask
	if st.ModuleID != "" {
		all, _, err := s.store.ListSubtasks(ctx, model.SubtaskFilter{ProjectIDs: []string{st.ProjectID}})
		if err != nil {
			return model.DeadlineRisk{}, fmt.Errorf("loading siblings for %s: %w", subtaskID, err)
		}
		for _, sib := range all {
			if sib.ModuleID == st.ModuleID {
				siblings = append(siblings, sib)
			}
		}
	}

	return s.heuristics.DeadlineRisk(st, logs, siblings, s.now()), nil
}

// Stats returns aggregate counts for the overview panel.
func (s *Service) Stats(ctx context.Context) (*model.ProjectStats, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stats: %w", err)
	}
	return stats, nil
}

func (s *Service) scopeFor(ctx context.Context, userID string) (scope.Scope, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return scope.Scope{}, fmt.Errorf("loading profile for %s: %w", userID, err)
	}
	memberships, err := s.store.ListMemberships(ctx, userID)
	if err != nil {
		return scope.Scope{}, fmt.Errorf("loading memberships for %s: %w", userID, err)
	}
	return scope.For(profile, memberships), nil
}

func (s *Service) scopedSubtasks(ctx context.Context, sc scope.Scope) ([]*model.Subtask, error) {
	filter := model.SubtaskFilter{}
	if !sc.All {
		if len(sc.ProjectIDs) == 0 {
			return nil, nil
		}
		filter.ProjectIDs = sc.ProjectIDs
	}
	subtasks, _, err := s.store.ListSubtasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing subtasks: %w", err)
	}
	return subtasks, nil
}

// lastActivity is the later of the subtask's update time and its most
// recent work log.
func lastActivity(st *model.Subtask, logs []*model.WorkLog) time.Time {
	last := st.UpdatedAt
	for _, wl := range logs {
		if wl.CreatedAt.After(last) {
			last = wl.CreatedAt
		}
	}
	return last
}
