// Package scope decides which records a user may see before they are handed
// to the risk engine. Selection is pure: callers fetch memberships and
// profile, scope narrows.
package scope

import "github.com/Mario960060/cosmichub/internal/model"

// Scope is the set of project IDs visible to a user. A nil set with
// All=true means unrestricted (system admins).
type Scope struct {
	All        bool
	ProjectIDs []string
}

// Contains reports whether a project is inside the scope.
func (s Scope) Contains(projectID string) bool {
	if s.All {
		return true
	}
	for _, id := range s.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// For resolves the visible scope for a user. Profile admins see everything;
// everyone else sees exactly the projects they are a member of.
func For(profile *model.Profile, memberships []*model.Member) Scope {
	if profile != nil && profile.Admin {
		return Scope{All: true}
	}
	var ids []string
	for _, m := range memberships {
		ids = append(ids, m.ProjectID)
	}
	return Scope{ProjectIDs: ids}
}

// FilterSubtasks keeps only subtasks inside the scope.
func FilterSubtasks(s Scope, subtasks []*model.Subtask) []*model.Subtask {
	if s.All {
		return subtasks
	}
	var out []*model.Subtask
	for _, st := range subtasks {
		if s.Contains(st.ProjectID) {
			out = append(out, st)
		}
	}
	return out
}

// FilterRequests keeps only task requests inside the scope.
func FilterRequests(s Scope, requests []*model.TaskRequest) []*model.TaskRequest {
	if s.All {
		return requests
	}
	var out []*model.TaskRequest
	for _, r := range requests {
		if s.Contains(r.ProjectID) {
			out = append(out, r)
		}
	}
	return out
}
