package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	ProjectCount int       `json:"project_count"`
	SubtaskCount int       `json:"subtask_count"`
	RequestCount int       `json:"request_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ExportJSONL writes all projects, subtasks, and pending requests from the
// store as JSONL to w. Subtasks are sorted by ID and include embedded work
// logs and dependencies.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	subtasks, _, err := s.ListSubtasks(ctx, model.SubtaskFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list subtasks: %w", err)
	}

	// Populate relational data for each subtask.
	for _, st := range subtasks {
		logs, err := s.GetWorkLogs(ctx, st.ID)
		if err != nil {
			return fmt.Errorf("get work logs for %s: %w", st.ID, err)
		}
		st.WorkLogs = logs

		deps, err := s.GetDependencies(ctx, st.ID)
		if err != nil {
			return fmt.Errorf("get dependencies for %s: %w", st.ID, err)
		}
		st.Dependencies = deps
	}

	sort.Slice(subtasks, func(i, j int) bool {
		return subtasks[i].ID < subtasks[j].ID
	})

	requests, err := s.ListTaskRequests(ctx, model.RequestPending)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].ID < requests[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		Timestamp:    time.Now().UTC(),
		ProjectCount: len(projects),
		SubtaskCount: len(subtasks),
		RequestCount: len(requests),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, p := range projects {
		if err := enc.Encode(record{Type: "project", Data: p}); err != nil {
			return fmt.Errorf("encode project %s: %w", p.ID, err)
		}
	}
	for _, st := range subtasks {
		if err := enc.Encode(record{Type: "subtask", Data: st}); err != nil {
			return fmt.Errorf("encode subtask %s: %w", st.ID, err)
		}
	}
	for _, r := range requests {
		if err := enc.Encode(record{Type: "request", Data: r}); err != nil {
			return fmt.Errorf("encode request %s: %w", r.ID, err)
		}
	}

	return nil
}
