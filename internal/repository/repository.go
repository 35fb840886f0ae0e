package repository

import (
	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/utils"
)

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	// CreateWithAdmin creates a workspace and its creator's ADMIN membership
	// within a single transaction.
	CreateWithAdmin(workspace *models.Workspace, member *models.Member) error

	// FindByID finds a workspace by ID
	FindByID(id uint64) (*models.Workspace, error)

	// ListByIDs lists workspaces by ID, newest first
	ListByIDs(ids []uint64) ([]models.Workspace, error)

	// Update updates a workspace
	Update(workspace *models.Workspace) error

	// DeleteCascade deletes a workspace and all of its memberships within a
	// single transaction.
	DeleteCascade(id uint64) error

	// AddMember adds a member to a workspace
	AddMember(member *models.Member) error

	// RemoveMember removes the given membership record
	RemoveMember(memberID uint64) error

	// FindMember finds a specific workspace membership
	FindMember(workspaceID, userID uint64) (*models.Member, error)

	// ListMembersByUserID lists all memberships held by a user
	ListMembersByUserID(userID uint64) ([]models.Member, error)

	// ListMembers lists members of a workspace, oldest first, with users
	// preloaded. Returns the page plus the total member count.
	ListMembers(workspaceID uint64, params utils.PaginationParams) ([]models.Member, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// ListByWorkspace lists a workspace's projects, newest first
	ListByWorkspace(workspaceID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete soft deletes a project
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
