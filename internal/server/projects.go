package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Mario960060/cosmichub/internal/events"
	"github.com/Mario960060/cosmichub/internal/idgen"
	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

type createProjectInput struct {
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

// handleCreateProject handles POST /v1/projects. The owner is added as the
// first member in the same transaction.
func (s *CosmicServer) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in createProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := idgen.GenerateWithPrefix("prj-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate ID")
		return
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:        id,
		Name:      in.Name,
		OwnerID:   in.OwnerID,
		CreatedAt: now,
	}

	err = s.store.RunInTransaction(r.Context(), func(tx store.Store) error {
		if err := tx.CreateProject(r.Context(), project); err != nil {
			return err
		}
		if in.OwnerID != "" {
			return tx.AddMember(r.Context(), &model.Member{
				UserID:    in.OwnerID,
				ProjectID: id,
				Role:      model.RoleOwner,
				AddedAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicProjectCreated, "", in.OwnerID, events.ProjectCreated{Project: project})

	writeJSON(w, http.StatusCreated, project)
}

// handleListProjects handles GET /v1/projects.
func (s *CosmicServer) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// handleGetProject handles GET /v1/projects/{id}.
func (s *CosmicServer) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	project, err := s.store.GetProject(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

type addMemberInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// handleAddMember handles POST /v1/projects/{id}/members.
func (s *CosmicServer) handleAddMember(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in addMemberInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	role := model.ProjectRole(in.Role)
	if in.Role == "" {
		role = model.RoleMember
	}
	if !role.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	member := &model.Member{
		UserID:    in.UserID,
		ProjectID: projectID,
		Role:      role,
		AddedAt:   time.Now().UTC(),
	}

	if err := s.store.AddMember(r.Context(), member); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add member")
		return
	}

	s.recordAndPublish(r.Context(), events.TopicMemberAdded, "", in.UserID, events.MemberAdded{Member: member})

	writeJSON(w, http.StatusCreated, member)
}

// handleListMembers handles GET /v1/projects/{id}/members.
func (s *CosmicServer) handleListMembers(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	members, err := s.store.ListMembers(r.Context(), projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}
	if members == nil {
		members = []*model.Member{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

// handleGetStats handles GET /v1/stats.
func (s *CosmicServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
