package server

import (
	"encoding/json"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *CosmicServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/subtasks", s.handleCreateSubtask)
	mux.HandleFunc("GET /v1/subtasks", s.handleListSubtasks)
	mux.HandleFunc("GET /v1/subtasks/{id}", s.handleGetSubtask)
	mux.HandleFunc("PATCH /v1/subtasks/{id}", s.handleUpdateSubtask)
	mux.HandleFunc("DELETE /v1/subtasks/{id}", s.handleDeleteSubtask)
	mux.HandleFunc("GET /v1/subtasks/{id}/worklogs", s.handleGetWorkLogs)
	mux.HandleFunc("POST /v1/subtasks/{id}/worklogs", s.handleAddWorkLog)
	mux.HandleFunc("GET /v1/subtasks/{id}/dependencies", s.handleGetDependencies)
	mux.HandleFunc("POST /v1/subtasks/{id}/dependencies", s.handleAddDependency)
	mux.HandleFunc("DELETE /v1/subtasks/{id}/dependencies", s.handleRemoveDependency)
	mux.HandleFunc("GET /v1/subtasks/{id}/blockers", s.handleGetBlockers)
	mux.HandleFunc("GET /v1/subtasks/{id}/risk", s.handleSubtaskRisk)
	mux.HandleFunc("GET /v1/subtasks/{id}/events", s.handleGetEvents)
	mux.HandleFunc("GET /v1/redflags", s.handleRedFlags)
	mux.HandleFunc("POST /v1/requests", s.handleCreateRequest)
	mux.HandleFunc("GET /v1/requests", s.handleListRequests)
	mux.HandleFunc("GET /v1/requests/{id}", s.handleGetRequest)
	mux.HandleFunc("POST /v1/requests/{id}/approve", s.handleApproveRequest)
	mux.HandleFunc("POST /v1/requests/{id}/reject", s.handleRejectRequest)
	mux.HandleFunc("POST /v1/projects", s.handleCreateProject)
	mux.HandleFunc("GET /v1/projects", s.handleListProjects)
	mux.HandleFunc("GET /v1/projects/{id}", s.handleGetProject)
	mux.HandleFunc("GET /v1/projects/{id}/members", s.handleListMembers)
	mux.HandleFunc("POST /v1/projects/{id}/members", s.handleAddMember)
	mux.HandleFunc("GET /v1/projects/{id}/permissions", s.handleChannelPermissions)
	mux.HandleFunc("GET /v1/stats", s.handleGetStats)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *CosmicServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
