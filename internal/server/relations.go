package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/model"
)

type addDependencyInput struct {
	DependsOnID string `json:"depends_on_id"`
	CreatedBy   string `json:"created_by"`
}

// handleAddDependency handles POST /v1/subtasks/{id}/dependencies.
func (s *CosmicServer) handleAddDependency(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in addDependencyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.DependsOnID == "" {
		writeError(w, http.StatusBadRequest, "depends_on_id is required")
		return
	}
	if in.DependsOnID == id {
		writeError(w, http.StatusBadRequest, "a subtask cannot depend on itself")
		return
	}

	dep := &model.Dependency{
		SubtaskID:   id,
		DependsOnID: in.DependsOnID,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   in.CreatedBy,
	}

	if err := s.store.AddDependency(r.Context(), dep); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add dependency")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicDependencyAdded, id, in.CreatedBy, events.DependencyAdded{Dependency: dep})

	writeJSON(w, http.StatusCreated, dep)
}

// handleRemoveDependency handles DELETE /v1/subtasks/{id}/dependencies.
// The edge to remove is identified by the depends_on query parameter.
func (s *CosmicServer) handleRemoveDependency(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	dependsOn := r.URL.Query().Get("depends_on")
	if id == "" || dependsOn == "" {
		writeError(w, http.StatusBadRequest, "id and depends_on are required")
		return
	}

	if err := s.store.RemoveDependency(r.Context(), id, dependsOn); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove dependency")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicDependencyRemoved, id, "", events.DependencyRemoved{
		SubtaskID:   id,
		DependsOnID: dependsOn,
	})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetDependencies handles GET /v1/subtasks/{id}/dependencies.
func (s *CosmicServer) handleGetDependencies(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	deps, err := s.store.GetDependencies(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get dependencies")
		return
	}
	if deps == nil {
		deps = []*model.Dependency{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"dependencies": deps})
}

// handleGetBlockers handles GET /v1/subtasks/{id}/blockers. It returns the
// unfinished subtasks this one is waiting on.
func (s *CosmicServer) handleGetBlockers(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	blockers, err := s.store.GetBlockers(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get blockers")
		return
	}
	if blockers == nil {
		blockers = []*model.Subtask{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"blockers": blockers})
}
