package chat

import "testing"

func member(id string, role MemberRole) Member {
	return Member{UserID: id, Role: role}
}

func admin(id string, role MemberRole) Member {
	return Member{UserID: id, Role: role, Admin: true}
}

func TestCanRemoveMember(t *testing.T) {
	for _, tc := range []struct {
		name   string
		actor  Member
		target Member
		want   bool
	}{
		{"owner removes member", member("u1", RoleOwner), member("u2", RoleMember), true},
		{"owner removes moderator", member("u1", RoleOwner), member("u2", RoleModerator), true},
		{"owner cannot remove self", member("u1", RoleOwner), member("u1", RoleOwner), false},
		{"owner cannot remove owner", member("u1", RoleOwner), member("u2", RoleOwner), false},
		{"owner cannot remove profile admin", member("u1", RoleOwner), admin("u2", RoleMember), false},
		{"moderator removes member", member("u1", RoleModerator), member("u2", RoleMember), true},
		{"moderator cannot remove moderator", member("u1", RoleModerator), member("u2", RoleModerator), false},
		{"moderator cannot remove owner", member("u1", RoleModerator), member("u2", RoleOwner), false},
		{"member cannot remove anyone", member("u1", RoleMember), member("u2", RoleMember), false},
		{"profile admin removes moderator", admin("u1", RoleMember), member("u2", RoleModerator), true},
		{"profile admin cannot remove self", admin("u1", RoleMember), admin("u1", RoleMember), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanRemoveMember(tc.actor, tc.target); got != tc.want {
				t.Errorf("CanRemoveMember(%+v, %+v) = %v, want %v", tc.actor, tc.target, got, tc.want)
			}
		})
	}
}

func TestCanPromoteMember(t *testing.T) {
	for _, tc := range []struct {
		name   string
		actor  Member
		target Member
		want   bool
	}{
		{"owner promotes member", member("u1", RoleOwner), member("u2", RoleMember), true},
		{"admin promotes member", admin("u1", RoleMember), member("u2", RoleMember), true},
		{"owner cannot promote moderator", member("u1", RoleOwner), member("u2", RoleModerator), false},
		{"owner cannot promote self", member("u1", RoleOwner), member("u1", RoleOwner), false},
		{"moderator cannot promote", member("u1", RoleModerator), member("u2", RoleMember), false},
		{"member cannot promote", member("u1", RoleMember), member("u2", RoleMember), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanPromoteMember(tc.actor, tc.target); got != tc.want {
				t.Errorf("CanPromoteMember(%+v, %+v) = %v, want %v", tc.actor, tc.target, got, tc.want)
			}
		})
	}
}

func TestCanDemoteMember(t *testing.T) {
	for _, tc := range []struct {
		name   string
		actor  Member
		target Member
		want   bool
	}{
		{"owner demotes moderator", member("u1", RoleOwner), member("u2", RoleModerator), true},
		{"admin demotes moderator", admin("u1", RoleMember), member("u2", RoleModerator), true},
		{"owner cannot demote member", member("u1", RoleOwner), member("u2", RoleMember), false},
		{"owner cannot demote owner", member("u1", RoleOwner), member("u2", RoleOwner), false},
		{"owner cannot demote self", member("u1", RoleOwner), member("u1", RoleOwner), false},
		{"moderator cannot demote", member("u1", RoleModerator), member("u2", RoleModerator), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDemoteMember(tc.actor, tc.target); got != tc.want {
				t.Errorf("CanDemoteMember(%+v, %+v) = %v, want %v", tc.actor, tc.target, got, tc.want)
			}
		})
	}
}

func TestCanManageMembers(t *testing.T) {
	for _, tc := range []struct {
		name  string
		actor Member
		want  bool
	}{
		{"owner", member("u1", RoleOwner), true},
		{"moderator", member("u1", RoleModerator), true},
		{"member", member("u1", RoleMember), false},
		{"profile admin without channel role", Member{UserID: "u1", Admin: true}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanManageMembers(tc.actor); got != tc.want {
				t.Errorf("CanManageMembers(%+v) = %v, want %v", tc.actor, got, tc.want)
			}
		})
	}
}
