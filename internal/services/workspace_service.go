package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/policy"
	"github.com/asahina-dev/teamspace-api/internal/repository"
	"github.com/asahina-dev/teamspace-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound      = errors.New("workspace not found")
	ErrInvalidWorkspaceName   = errors.New("workspace name cannot be empty")
	ErrInvalidInviteCode      = errors.New("invalid invite code")
	ErrAlreadyWorkspaceMember = errors.New("already a member of this workspace")
	ErrMemberNotFound         = errors.New("workspace member not found")
	ErrCannotRemoveSelf       = errors.New("cannot remove yourself from the workspace")
	ErrCannotRemoveAdmin      = errors.New("cannot remove another admin from the workspace")
)

// WorkspaceService provides business logic for workspace operations.
type WorkspaceService struct {
	wsRepo repository.WorkspaceRepository
	images *ImageService
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(wsRepo repository.WorkspaceRepository, images *ImageService) *WorkspaceService {
	return &WorkspaceService{
		wsRepo: wsRepo,
		images: images,
	}
}

// member is the universal gate: every workspace-scoped operation starts here.
func (s *WorkspaceService) member(workspaceID, userID uint64) (*models.Member, error) {
	m, err := s.wsRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	return m, nil
}

// ListForUser returns all workspaces the user is a member of, newest first.
// A user with no memberships gets an empty list, not an error.
func (s *WorkspaceService) ListForUser(userID uint64) ([]models.Workspace, error) {
	memberships, err := s.wsRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []models.Workspace{}, nil
	}

	ids := make([]uint64, len(memberships))
	for i, m := range memberships {
		ids[i] = m.WorkspaceID
	}

	workspaces, err := s.wsRepo.ListByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Get returns a workspace for one of its members.
func (s *WorkspaceService) Get(workspaceID, userID uint64) (*models.Workspace, error) {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceWorkspace, policy.ActionView, m, policy.Target{}); err != nil {
		return nil, err
	}

	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	return workspace, nil
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name             string
	UserID           uint64
	Image            []byte
	ImageContentType string
}

// Create creates a workspace with a fresh invite code and the creator's ADMIN
// membership, atomically.
func (s *WorkspaceService) Create(ctx context.Context, input CreateWorkspaceInput) (*models.Workspace, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidWorkspaceName
	}

	var imageURL string
	if len(input.Image) > 0 {
		url, err := s.images.UploadAsDataURI(ctx, input.Image, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	workspace := &models.Workspace{
		Name:       input.Name,
		ImageURL:   imageURL,
		InviteCode: utils.GenerateInviteCode(),
		UserID:     input.UserID,
	}

	member := &models.Member{
		UserID: input.UserID,
		Role:   models.RoleAdmin,
	}

	if err := s.wsRepo.CreateWithAdmin(workspace, member); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return workspace, nil
}

// UpdateWorkspaceInput represents parameters to update a workspace. When Image
// is empty, ImageURL passes through unchanged (it may be an existing data URI).
type UpdateWorkspaceInput struct {
	Name             string
	Image            []byte
	ImageContentType string
	ImageURL         string
}

// Update renames a workspace and replaces or passes through its image. ADMIN only.
func (s *WorkspaceService) Update(ctx context.Context, workspaceID, userID uint64, input UpdateWorkspaceInput) (*models.Workspace, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidWorkspaceName
	}

	m, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceWorkspace, policy.ActionUpdate, m, policy.Target{}); err != nil {
		return nil, err
	}

	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	workspace.Name = input.Name
	if len(input.Image) > 0 {
		url, err := s.images.UploadAsDataURI(ctx, input.Image, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		workspace.ImageURL = url
	} else {
		workspace.ImageURL = input.ImageURL
	}

	if err := s.wsRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

// ResetInviteCode replaces the invite code, invalidating previously shared
// links immediately. ADMIN only.
func (s *WorkspaceService) ResetInviteCode(workspaceID, userID uint64) (*models.Workspace, error) {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceWorkspace, policy.ActionResetInviteCode, m, policy.Target{}); err != nil {
		return nil, err
	}

	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	workspace.InviteCode = utils.GenerateInviteCode()
	if err := s.wsRepo.Update(workspace); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}
	return workspace, nil
}

// Delete removes a workspace and all of its memberships. ADMIN only.
func (s *WorkspaceService) Delete(workspaceID, userID uint64) error {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return err
	}
	if err := policy.Check(policy.ResourceWorkspace, policy.ActionDelete, m, policy.Target{}); err != nil {
		return err
	}

	if _, err := s.wsRepo.FindByID(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to find workspace: %w", err)
	}

	if err := s.wsRepo.DeleteCascade(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}
	return nil
}

// GetForJoin resolves a workspace and validates the supplied invite code.
// Used by both the authenticated join preview and the public info variant.
func (s *WorkspaceService) GetForJoin(workspaceID uint64, inviteCode string) (*models.Workspace, error) {
	workspace, err := s.wsRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}

	if workspace.InviteCode != inviteCode {
		return nil, ErrInvalidInviteCode
	}
	return workspace, nil
}

// Join validates the invite code and creates a MEMBER membership.
func (s *WorkspaceService) Join(workspaceID, userID uint64, inviteCode string) (*models.Workspace, error) {
	workspace, err := s.GetForJoin(workspaceID, inviteCode)
	if err != nil {
		return nil, err
	}

	existing, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyWorkspaceMember
	}

	member := &models.Member{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        models.RoleMember,
	}
	if err := s.wsRepo.AddMember(member); err != nil {
		// A concurrent join can slip past the check above; the unique index
		// on (workspace_id, user_id) turns the loser into a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyWorkspaceMember
		}
		return nil, fmt.Errorf("failed to join workspace: %w", err)
	}
	return workspace, nil
}

// Leave deletes the caller's own membership. Admins cannot leave; they must
// delete the workspace or transfer ownership first.
func (s *WorkspaceService) Leave(workspaceID, userID uint64) (uint64, error) {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return 0, err
	}
	if err := policy.Check(policy.ResourceMember, policy.ActionLeave, m, policy.Target{}); err != nil {
		return 0, err
	}

	if err := s.wsRepo.RemoveMember(m.ID); err != nil {
		return 0, fmt.Errorf("failed to leave workspace: %w", err)
	}
	return m.ID, nil
}

// RemoveMember lets an admin remove another non-admin member.
func (s *WorkspaceService) RemoveMember(workspaceID, actorID, targetUserID uint64) (uint64, error) {
	actor, err := s.member(workspaceID, actorID)
	if err != nil {
		return 0, err
	}
	if err := policy.Check(policy.ResourceMember, policy.ActionRemoveMember, actor, policy.Target{}); err != nil {
		return 0, err
	}

	if targetUserID == actorID {
		return 0, ErrCannotRemoveSelf
	}

	target, err := s.member(workspaceID, targetUserID)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, ErrMemberNotFound
	}
	// Keeps the workspace from losing its admins through this route.
	if target.Role == models.RoleAdmin {
		return 0, ErrCannotRemoveAdmin
	}

	if err := s.wsRepo.RemoveMember(target.ID); err != nil {
		return 0, fmt.Errorf("failed to remove member: %w", err)
	}
	return target.ID, nil
}

// ListMembers returns a page of the workspace's members with user details,
// plus the caller's own role and the total member count.
func (s *WorkspaceService) ListMembers(workspaceID, userID uint64, params utils.PaginationParams) ([]models.Member, models.MemberRole, int64, error) {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, "", 0, err
	}
	if err := policy.Check(policy.ResourceMember, policy.ActionList, m, policy.Target{}); err != nil {
		return nil, "", 0, err
	}

	members, total, err := s.wsRepo.ListMembers(workspaceID, params)
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to list workspace members: %w", err)
	}
	return members, m.Role, total, nil
}
