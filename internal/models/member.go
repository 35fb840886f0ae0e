package models

import "time"

type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// Member binds a user to a workspace with a role. The composite unique index
// enforces at most one membership per (workspace, user) pair, including under
// concurrent join requests.
type Member struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	WorkspaceID uint64     `gorm:"not null;uniqueIndex:idx_members_workspace_user" json:"workspaceId"`
	UserID      uint64     `gorm:"not null;uniqueIndex:idx_members_workspace_user" json:"userId"`
	Role        MemberRole `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Relations
	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
