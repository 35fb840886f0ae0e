package dto

import (
	"time"

	"github.com/asahina-dev/teamspace-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// WorkspaceJoinDTO is the public-safe workspace projection returned on the
// authenticated join preview.
type WorkspaceJoinDTO struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl"`
	InviteCode string `json:"inviteCode"`
}

// ToWorkspaceJoinDTO converts a workspace to its join preview projection
func ToWorkspaceJoinDTO(w models.Workspace) WorkspaceJoinDTO {
	return WorkspaceJoinDTO{
		ID:         w.ID,
		Name:       w.Name,
		ImageURL:   w.ImageURL,
		InviteCode: w.InviteCode,
	}
}

// WorkspaceJoinInfoDTO is the minimal projection for the unauthenticated
// join info page.
type WorkspaceJoinInfoDTO struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ToWorkspaceJoinInfoDTO converts a workspace to its public info projection
func ToWorkspaceJoinInfoDTO(w models.Workspace) WorkspaceJoinInfoDTO {
	return WorkspaceJoinInfoDTO{
		Name:     w.Name,
		ImageURL: w.ImageURL,
	}
}

// MemberDTO represents a workspace member with user details
type MemberDTO struct {
	ID          uint64            `json:"id"`
	Role        models.MemberRole `json:"role"`
	UserID      uint64            `json:"userId"`
	WorkspaceID uint64            `json:"workspaceId"`
	CreatedAt   time.Time         `json:"createdAt"`
	User        UserDTO           `json:"user"`
}

// ToMemberDTO converts a member with preloaded user to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:          member.ID,
		Role:        member.Role,
		UserID:      member.UserID,
		WorkspaceID: member.WorkspaceID,
		CreatedAt:   member.CreatedAt,
		User:        ToUserDTO(member.User),
	}
}

// MembersDataDTO is the members listing payload
type MembersDataDTO struct {
	Members         []MemberDTO       `json:"members"`
	CurrentUserRole models.MemberRole `json:"currentUserRole"`
	Total           int64             `json:"total"`
}

// ToMembersDataDTO assembles the members listing payload
func ToMembersDataDTO(members []models.Member, currentUserRole models.MemberRole, total int64) MembersDataDTO {
	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = ToMemberDTO(m)
	}
	return MembersDataDTO{
		Members:         dtos,
		CurrentUserRole: currentUserRole,
		Total:           total,
	}
}
