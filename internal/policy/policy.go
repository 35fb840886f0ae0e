// Package policy holds the single authorization table for the API. Every
// workspace- and project-scoped operation is checked here, before any side
// effect, instead of inlining role comparisons in each handler.
package policy

import (
	"errors"

	"github.com/asahina-dev/teamspace-api/internal/models"
)

type Resource string

const (
	ResourceWorkspace Resource = "workspace"
	ResourceProject   Resource = "project"
	ResourceMember    Resource = "member"
)

type Action string

const (
	ActionView            Action = "view"
	ActionList            Action = "list"
	ActionCreate          Action = "create"
	ActionUpdate          Action = "update"
	ActionDelete          Action = "delete"
	ActionResetInviteCode Action = "reset_invite_code"
	ActionLeave           Action = "leave"
	ActionRemoveMember    Action = "remove_member"
)

// Requirement is what a (resource, action) pair demands of the caller.
type Requirement int

const (
	// MembershipOnly: any member of the workspace may act.
	MembershipOnly Requirement = iota
	// AdminOnly: the member must hold the ADMIN role.
	AdminOnly
	// AdminOrOwner: ADMIN role, or the caller owns the target resource.
	AdminOrOwner
	// NonAdmin: the member must NOT hold the ADMIN role (leaving a workspace).
	NonAdmin
)

var (
	// ErrNotMember maps to 401: the caller has no membership in the workspace.
	ErrNotMember = errors.New("not a member of this workspace")
	// ErrForbidden maps to 403: membership present, privilege missing.
	ErrForbidden = errors.New("insufficient role for this action")
	// ErrRoleRestricted maps to 400: the caller's role blocks the action
	// outright (an admin attempting to leave).
	ErrRoleRestricted = errors.New("action not permitted for this role")
)

var rules = map[Resource]map[Action]Requirement{
	ResourceWorkspace: {
		ActionView:            MembershipOnly,
		ActionUpdate:          AdminOnly,
		ActionDelete:          AdminOnly,
		ActionResetInviteCode: AdminOnly,
	},
	ResourceProject: {
		ActionView:   MembershipOnly,
		ActionList:   MembershipOnly,
		ActionCreate: MembershipOnly,
		ActionUpdate: AdminOrOwner,
		ActionDelete: AdminOrOwner,
	},
	ResourceMember: {
		ActionList:         MembershipOnly,
		ActionLeave:        NonAdmin,
		ActionRemoveMember: AdminOnly,
	},
}

// Target identifies the owner of the concrete resource under an AdminOrOwner
// rule. Zero values are fine for every other requirement.
type Target struct {
	OwnerID uint64
}

// Check evaluates the policy table for the caller's membership. A nil member
// always fails with ErrNotMember.
func Check(resource Resource, action Action, member *models.Member, target Target) error {
	if member == nil {
		return ErrNotMember
	}

	req, ok := rules[resource][action]
	if !ok {
		return ErrForbidden
	}

	switch req {
	case MembershipOnly:
		return nil
	case AdminOnly:
		if member.Role != models.RoleAdmin {
			return ErrForbidden
		}
		return nil
	case AdminOrOwner:
		if member.Role == models.RoleAdmin || member.UserID == target.OwnerID {
			return nil
		}
		return ErrForbidden
	case NonAdmin:
		if member.Role == models.RoleAdmin {
			return ErrRoleRestricted
		}
		return nil
	default:
		return ErrForbidden
	}
}
