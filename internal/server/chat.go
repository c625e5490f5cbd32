package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/Mario960060/cosmichub/internal/chat"
	"github.com/Mario960060/cosmichub/internal/model"
)

// channelPermissions is the response body for the permissions endpoint.
type channelPermissions struct {
	CanManageMembers bool  `json:"can_manage_members"`
	CanRemove        *bool `json:"can_remove,omitempty"`
	CanPromote       *bool `json:"can_promote,omitempty"`
	CanDemote        *bool `json:"can_demote,omitempty"`
}

// channelMember resolves a user's standing in a project channel. Project
// owners moderate their channel; everyone else posts as a plain member.
// The admin flag comes from the system-wide profile.
func (s *CosmicServer) channelMember(ctx context.Context, projectID, userID string) (chat.Member, error) {
	m := chat.Member{UserID: userID, Role: chat.RoleMember}

	memberships, err := s.store.ListMembers(ctx, projectID)
	if err != nil {
		return m, err
	}
	for _, mem := range memberships {
		if mem.UserID == userID && mem.Role == model.RoleOwner {
			m.Role = chat.RoleOwner
		}
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return m, err
	}
	m.Admin = profile.Admin
	return m, nil
}

// handleChannelPermissions handles GET /v1/projects/{id}/permissions.
// The actor query parameter is required; when target is given the response
// also carries the per-target moderation predicates.
func (s *CosmicServer) handleChannelPermissions(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	actorID := r.URL.Query().Get("actor")
	targetID := r.URL.Query().Get("target")

	if actorID == "" {
		writeError(w, http.StatusBadRequest, "actor query parameter is required")
		return
	}

	if _, err := s.store.GetProject(r.Context(), projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	actor, err := s.channelMember(r.Context(), projectID, actorID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to resolve actor")
		return
	}

	resp := channelPermissions{
		CanManageMembers: chat.CanManageMembers(actor),
	}

	if targetID != "" {
		target, err := s.channelMember(r.Context(), projectID, targetID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to resolve target")
			return
		}
		remove := chat.CanRemoveMember(actor, target)
		promote := chat.CanPromoteMember(actor, target)
		demote := chat.CanDemoteMember(actor, target)
		resp.CanRemove = &remove
		resp.CanPromote = &promote
		resp.CanDemote = &demote
	}

	writeJSON(w, http.StatusOK, resp)
}
