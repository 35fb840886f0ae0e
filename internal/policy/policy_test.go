package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asahina-dev/teamspace-api/internal/models"
)

func TestCheck(t *testing.T) {
	admin := &models.Member{UserID: 1, Role: models.RoleAdmin}
	member := &models.Member{UserID: 2, Role: models.RoleMember}

	tests := []struct {
		name     string
		resource Resource
		action   Action
		member   *models.Member
		target   Target
		wantErr  error
	}{
		{
			name:     "nil member is never authorized",
			resource: ResourceWorkspace,
			action:   ActionView,
			member:   nil,
			wantErr:  ErrNotMember,
		},
		{
			name:     "any member views the workspace",
			resource: ResourceWorkspace,
			action:   ActionView,
			member:   member,
		},
		{
			name:     "member cannot update the workspace",
			resource: ResourceWorkspace,
			action:   ActionUpdate,
			member:   member,
			wantErr:  ErrForbidden,
		},
		{
			name:     "admin updates the workspace",
			resource: ResourceWorkspace,
			action:   ActionUpdate,
			member:   admin,
		},
		{
			name:     "member cannot reset the invite code",
			resource: ResourceWorkspace,
			action:   ActionResetInviteCode,
			member:   member,
			wantErr:  ErrForbidden,
		},
		{
			name:     "project owner updates their project",
			resource: ResourceProject,
			action:   ActionUpdate,
			member:   member,
			target:   Target{OwnerID: 2},
		},
		{
			name:     "admin updates any project",
			resource: ResourceProject,
			action:   ActionUpdate,
			member:   admin,
			target:   Target{OwnerID: 2},
		},
		{
			name:     "non-owner member cannot update a project",
			resource: ResourceProject,
			action:   ActionUpdate,
			member:   member,
			target:   Target{OwnerID: 1},
			wantErr:  ErrForbidden,
		},
		{
			name:     "member leaves the workspace",
			resource: ResourceMember,
			action:   ActionLeave,
			member:   member,
		},
		{
			name:     "admin cannot leave the workspace",
			resource: ResourceMember,
			action:   ActionLeave,
			member:   admin,
			wantErr:  ErrRoleRestricted,
		},
		{
			name:     "member cannot remove other members",
			resource: ResourceMember,
			action:   ActionRemoveMember,
			member:   member,
			wantErr:  ErrForbidden,
		},
		{
			name:     "admin removes members",
			resource: ResourceMember,
			action:   ActionRemoveMember,
			member:   admin,
		},
		{
			name:     "unknown action is denied",
			resource: ResourceWorkspace,
			action:   Action("publish"),
			member:   admin,
			wantErr:  ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.resource, tt.action, tt.member, tt.target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
