// Package chat implements the moderation rules for group channels.
// The predicates are pure functions over channel membership records.
package chat

// MemberRole is a user's role within a single channel.
type MemberRole string

const (
	RoleOwner     MemberRole = "owner"
	RoleModerator MemberRole = "moderator"
	RoleMember    MemberRole = "member"
)

// IsValid checks whether the member role is a known value.
func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleModerator, RoleMember:
		return true
	}
	return false
}

// Member is a channel membership record. Admin is the system-wide profile
// flag, orthogonal to the per-channel role.
type Member struct {
	UserID string
	Role   MemberRole
	Admin  bool
}

// CanRemoveMember reports whether actor may remove target from the channel.
// Nobody removes themselves, a channel owner, or a profile admin. Owners and
// profile admins may remove moderators and members; moderators may remove
// only plain members.
func CanRemoveMember(actor, target Member) bool {
	if actor.UserID == target.UserID {
		return false
	}
	if target.Role == RoleOwner || target.Admin {
		return false
	}
	if actor.Role == RoleOwner || actor.Admin {
		return target.Role == RoleModerator || target.Role == RoleMember
	}
	if actor.Role == RoleModerator {
		return target.Role == RoleMember
	}
	return false
}

// CanPromoteMember reports whether actor may promote target to moderator.
// Only owners and profile admins promote, never themselves, and only plain
// members are promotable.
func CanPromoteMember(actor, target Member) bool {
	if actor.UserID == target.UserID {
		return false
	}
	if actor.Role != RoleOwner && !actor.Admin {
		return false
	}
	return target.Role == RoleMember
}

// CanDemoteMember reports whether actor may demote target back to member.
// Symmetric with CanPromoteMember: owners and profile admins only, never
// themselves, and only moderators are demotable.
func CanDemoteMember(actor, target Member) bool {
	if actor.UserID == target.UserID {
		return false
	}
	if actor.Role != RoleOwner && !actor.Admin {
		return false
	}
	return target.Role == RoleModerator
}

// CanManageMembers reports whether actor may open the member-management
// surface at all. Profile admins qualify even without channel membership.
func CanManageMembers(actor Member) bool {
	return actor.Role == RoleOwner || actor.Role == RoleModerator || actor.Admin
}
