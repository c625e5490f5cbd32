package server

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/Mario960060/cosmichub/internal/model"
)

// handleSubtaskRisk handles GET /v1/subtasks/{id}/risk.
func (s *CosmicServer) handleSubtaskRisk(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	risk, err := s.dashboard.SubtaskRisk(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "subtask not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute risk")
		return
	}

	writeJSON(w, http.StatusOK, risk)
}

// handleRedFlags handles GET /v1/redflags. The user query parameter selects
// whose project scope the feed is computed for.
func (s *CosmicServer) handleRedFlags(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	flags, err := s.dashboard.RedFlags(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute red flags")
		return
	}
	if flags == nil {
		flags = []*model.RedFlag{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"red_flags": flags})
}
