package repository

import (
	"github.com/asahina-dev/teamspace-api/internal/database"
	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/utils"
	"gorm.io/gorm"
)

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// CreateWithAdmin creates the workspace and the creator's ADMIN membership
// atomically, so a failed membership insert never leaves an orphaned workspace.
func (r *GormWorkspaceRepository) CreateWithAdmin(workspace *models.Workspace, member *models.Member) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		member.WorkspaceID = workspace.ID
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return nil
	})
}

// FindByID finds a workspace by ID
func (r *GormWorkspaceRepository) FindByID(id uint64) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := r.db.First(&workspace, id).Error; err != nil {
		return nil, err
	}
	return &workspace, nil
}

// ListByIDs lists workspaces by ID, newest first
func (r *GormWorkspaceRepository) ListByIDs(ids []uint64) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	if len(ids) == 0 {
		return workspaces, nil
	}
	err := r.db.
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

// Update updates a workspace
func (r *GormWorkspaceRepository) Update(workspace *models.Workspace) error {
	return r.db.Save(workspace).Error
}

// DeleteCascade deletes the workspace's memberships, then the workspace,
// in one transaction.
func (r *GormWorkspaceRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Workspace{}, id).Error; err != nil {
			return err
		}
		return nil
	})
}

// AddMember adds a member to a workspace
func (r *GormWorkspaceRepository) AddMember(member *models.Member) error {
	return r.db.Create(member).Error
}

// RemoveMember removes the given membership record
func (r *GormWorkspaceRepository) RemoveMember(memberID uint64) error {
	return r.db.Delete(&models.Member{}, memberID).Error
}

// FindMember finds a specific workspace membership
func (r *GormWorkspaceRepository) FindMember(workspaceID, userID uint64) (*models.Member, error) {
	var member models.Member
	err := r.db.
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembersByUserID lists all memberships held by a user
func (r *GormWorkspaceRepository) ListMembersByUserID(userID uint64) ([]models.Member, error) {
	var members []models.Member
	err := r.db.
		Where("user_id = ?", userID).
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembers lists members of a workspace, oldest first, with users preloaded
func (r *GormWorkspaceRepository) ListMembers(workspaceID uint64, params utils.PaginationParams) ([]models.Member, int64, error) {
	var total int64
	if err := r.db.
		Model(&models.Member{}).
		Where("workspace_id = ?", workspaceID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	err := r.db.
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Scopes(database.Paginate(params)).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}
