package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/idgen"
	"github.com/Mario960060/cosmichub/internal/model"
)

// createSubtaskInput holds transport-agnostic parameters for creating a subtask.
type createSubtaskInput struct {
	ProjectID      string     `json:"project_id"`
	ModuleID       string     `json:"module_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     string     `json:"assigned_to"`
	PriorityStars  int        `json:"priority_stars"`
	CreatedBy      string     `json:"created_by"`
}

// createSubtask validates input, persists a new subtask, and publishes a
// SubtaskCreated event. Returns inputError for validation failures.
func (s *CosmicServer) createSubtask(ctx context.Context, in createSubtaskInput) (*model.Subtask, error) {
	now := time.Now().UTC()
	id, err := idgen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	status := model.Status(in.Status)
	if in.Status == "" {
		status = model.StatusTodo
	}

	st := &model.Subtask{
		ID:             id,
		ProjectID:      in.ProjectID,
		ModuleID:       in.ModuleID,
		Name:           in.Name,
		Description:    in.Description,
		Status:         status,
		EstimatedHours: in.EstimatedHours,
		DueDate:        in.DueDate,
		AssignedTo:     in.AssignedTo,
		PriorityStars:  in.PriorityStars,
		CreatedAt:      now,
		CreatedBy:      in.CreatedBy,
		UpdatedAt:      now,
	}

	if err := model.ValidateSubtask(st); err != nil {
		return nil, inputError("invalid subtask: " + err.Error())
	}

	if err := s.store.CreateSubtask(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create subtask: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicSubtaskCreated, st.ID, st.CreatedBy, events.SubtaskCreated{Subtask: st})

	return st, nil
}

// updateSubtaskInput holds transport-agnostic parameters for a partial update.
// Nil fields are left unchanged.
type updateSubtaskInput struct {
	Name           *string    `json:"name,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	PriorityStars  *int       `json:"priority_stars,omitempty"`
	UpdatedBy      string     `json:"updated_by,omitempty"`
}

// updateSubtask applies a partial update and publishes a SubtaskUpdated event
// carrying the changed field names.
func (s *CosmicServer) updateSubtask(ctx context.Context, id string, in updateSubtaskInput) (*model.Subtask, error) {
	st, err := s.store.GetSubtask(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)
	if in.Name != nil {
		st.Name = *in.Name
		changes["name"] = *in.Name
	}
	if in.Description != nil {
		st.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.Status != nil {
		st.Status = model.Status(*in.Status)
		changes["status"] = *in.Status
	}
	if in.EstimatedHours != nil {
		st.EstimatedHours = in.EstimatedHours
		changes["estimated_hours"] = *in.EstimatedHours
	}
	if in.DueDate != nil {
		st.DueDate = in.DueDate
		changes["due_date"] = *in.DueDate
	}
	if in.AssignedTo != nil {
		st.AssignedTo = *in.AssignedTo
		changes["assigned_to"] = *in.AssignedTo
	}
	if in.PriorityStars != nil {
		st.PriorityStars = *in.PriorityStars
		changes["priority_stars"] = *in.PriorityStars
	}

	if len(changes) == 0 {
		return st, nil
	}

	if err := model.ValidateSubtask(st); err != nil {
		return nil, inputError("invalid subtask: " + err.Error())
	}

	st.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateSubtask(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to update subtask: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicSubtaskUpdated, st.ID, in.UpdatedBy, events.SubtaskUpdated{
		Subtask: st,
		Changes: changes,
	})

	return st, nil
}

// handleCreateSubtask handles POST /v1/subtasks.
func (s *CosmicServer) handleCreateSubtask(w http.ResponseWriter, r *http.Request) {
	var in createSubtaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st, err := s.createSubtask(r.Context(), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, st)
}

// handleListSubtasks handles GET /v1/subtasks.
func (s *CosmicServer) handleListSubtasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.SubtaskFilter{
		AssignedTo: q.Get("assigned_to"),
		Unassigned: q.Get("unassigned") == "true",
		Search:     q.Get("search"),
		Sort:       q.Get("sort"),
	}

	if v := q.Get("project"); v != "" {
		filter.ProjectIDs = strings.Split(v, ",")
	}
	if v := q.Get("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.Status = append(filter.Status, model.Status(st))
		}
	}
	if v := q.Get("priority"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Priority = &n
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	subtasks, total, err := s.store.ListSubtasks(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list subtasks")
		return
	}

	// Ensure subtasks is never null in JSON output.
	if subtasks == nil {
		subtasks = []*model.Subtask{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"subtasks": subtasks,
		"total":    total,
	})
}

// handleGetSubtask handles GET /v1/subtasks/{id}.
func (s *CosmicServer) handleGetSubtask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	st, err := s.store.GetSubtask(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "subtask not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get subtask")
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// handleUpdateSubtask handles PATCH /v1/subtasks/{id}.
func (s *CosmicServer) handleUpdateSubtask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateSubtaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	st, err := s.updateSubtask(r.Context(), id, in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
			return
		}
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subtask not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, st)
}

// handleDeleteSubtask handles DELETE /v1/subtasks/{id}.
func (s *CosmicServer) handleDeleteSubtask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteSubtask(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subtask not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete subtask")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicSubtaskDeleted, id, "", events.SubtaskDeleted{SubtaskID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetEvents handles GET /v1/subtasks/{id}/events.
func (s *CosmicServer) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	evts, err := s.store.GetEvents(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get events")
		return
	}
	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
