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

type createRequestInput struct {
	TaskName    string `json:"task_name"`
	ProjectID   string `json:"project_id"`
	ModuleName  string `json:"module_name"`
	RequestedBy string `json:"requested_by"`
}

// handleCreateRequest handles POST /v1/requests.
func (s *CosmicServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var in createRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := idgen.GenerateWithPrefix("req-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	req := &model.TaskRequest{
		ID:          id,
		TaskName:    in.TaskName,
		ProjectID:   in.ProjectID,
		ModuleName:  in.ModuleName,
		RequestedBy: in.RequestedBy,
		Status:      model.RequestPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := model.ValidateTaskRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := s.store.CreateTaskRequest(r.Context(), req); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create request")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicRequestCreated, "", in.RequestedBy, events.RequestCreated{Request: req})

	writeJSON(w, http.StatusCreated, req)
}

// handleListRequests handles GET /v1/requests. The status query parameter
// defaults to pending.
func (s *CosmicServer) handleListRequests(w http.ResponseWriter, r *http.Request) {
	status := model.RequestStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = model.RequestPending
	}
	if !status.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	requests, err := s.store.ListTaskRequests(r.Context(), status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}
	if requests == nil {
		requests = []*model.TaskRequest{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

// handleGetRequest handles GET /v1/requests/{id}.
func (s *CosmicServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	req, err := s.store.GetTaskRequest(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get request")
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// handleApproveRequest handles POST /v1/requests/{id}/approve.
func (s *CosmicServer) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveRequest(w, r, model.RequestApproved)
}

// handleRejectRequest handles POST /v1/requests/{id}/reject.
func (s *CosmicServer) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	s.resolveRequest(w, r, model.RequestRejected)
}

func (s *CosmicServer) resolveRequest(w http.ResponseWriter, r *http.Request, status model.RequestStatus) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var body struct {
		ResolvedBy string `json:"resolved_by"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := s.store.ResolveTaskRequest(r.Context(), id, status, body.ResolvedBy)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve request")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicRequestResolved, "", body.ResolvedBy, events.RequestResolved{
		Request:    req,
		ResolvedBy: body.ResolvedBy,
	})

	writeJSON(w, http.StatusOK, req)
}
