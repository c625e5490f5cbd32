package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/idgen"
	"github.com/Mario960060/cosmichub/internal/model"
)

type addWorkLogInput struct {
	HoursSpent float64 `json:"hours_spent"`
	Note       string  `json:"note"`
	LoggedBy   string  `json:"logged_by"`
}

// handleAddWorkLog handles POST /v1/subtasks/{id}/worklogs.
func (s *CosmicServer) handleAddWorkLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in addWorkLogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	wlID, err := idgen.GenerateWithPrefix("wl-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	wl := &model.WorkLog{
		ID:         wlID,
		SubtaskID:  id,
		HoursSpent: in.HoursSpent,
		Note:       in.Note,
		LoggedBy:   in.LoggedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := model.ValidateWorkLog(wl); err != nil {
		writeError(w, http.StatusBadRequest, "invalid work log: "+err.Error())
		return
	}

	if err := s.store.AddWorkLog(r.Context(), wl); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "subtask not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add work log")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicWorkLogAdded, id, in.LoggedBy, events.WorkLogAdded{WorkLog: wl})

	writeJSON(w, http.StatusCreated, wl)
}

// handleGetWorkLogs handles GET /v1/subtasks/{id}/worklogs.
func (s *CosmicServer) handleGetWorkLogs(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	logs, err := s.store.GetWorkLogs(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get work logs")
		return
	}
	if logs == nil {
		logs = []*model.WorkLog{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"work_logs":    logs,
		"hours_logged": model.SumHours(logs),
	})
}
