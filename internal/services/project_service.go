package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/policy"
	"github.com/asahina-dev/teamspace-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidProjectName = errors.New("project name cannot be empty")
)

// ProjectService provides business logic for project operations.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	wsRepo      repository.WorkspaceRepository
	images      *ImageService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, wsRepo repository.WorkspaceRepository, images *ImageService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		wsRepo:      wsRepo,
		images:      images,
	}
}

func (s *ProjectService) member(workspaceID, userID uint64) (*models.Member, error) {
	m, err := s.wsRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}
	return m, nil
}

// List returns a workspace's projects, newest first. Membership required.
func (s *ProjectService) List(workspaceID, userID uint64) ([]models.Project, error) {
	m, err := s.member(workspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceProject, policy.ActionList, m, policy.Target{}); err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project. Membership is checked against the project's stored
// workspace ID, never a client-supplied one.
func (s *ProjectService) Get(projectID, userID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	m, err := s.member(project.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceProject, policy.ActionView, m, policy.Target{}); err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name             string
	Description      string
	WorkspaceID      uint64
	OwnerID          uint64
	Status           models.ProjectStatus
	Priority         models.ProjectPriority
	StartDate        *time.Time
	EndDate          *time.Time
	Image            []byte
	ImageContentType string
}

// Create creates a project owned by the caller. Membership required.
// Omitted status/priority default to active/medium.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	m, err := s.member(input.WorkspaceID, input.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceProject, policy.ActionCreate, m, policy.Target{}); err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if input.Priority == "" {
		input.Priority = models.ProjectPriorityMedium
	}

	var imageURL string
	if len(input.Image) > 0 {
		url, err := s.images.UploadAsDataURI(ctx, input.Image, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		WorkspaceID: input.WorkspaceID,
		ImageURL:    imageURL,
		Status:      input.Status,
		Priority:    input.Priority,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UpdateProjectInput represents parameters to update a project. Nil fields are
// left untouched; the date Set flags distinguish "omitted" from "cleared".
type UpdateProjectInput struct {
	Name             *string
	Description      *string
	Status           *models.ProjectStatus
	Priority         *models.ProjectPriority
	StartDate        *time.Time
	StartDateSet     bool
	EndDate          *time.Time
	EndDateSet       bool
	Image            []byte
	ImageContentType string
	ImageURL         *string
}

// Update modifies a project. Requires ADMIN role or project ownership. Omitted
// fields keep their stored values.
func (s *ProjectService) Update(ctx context.Context, projectID, userID uint64, input UpdateProjectInput) (*models.Project, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrInvalidProjectName
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	m, err := s.member(project.WorkspaceID, userID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.ResourceProject, policy.ActionUpdate, m, policy.Target{OwnerID: project.OwnerID}); err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Priority != nil {
		project.Priority = *input.Priority
	}
	if input.StartDateSet {
		project.StartDate = input.StartDate
	}
	if input.EndDateSet {
		project.EndDate = input.EndDate
	}

	if len(input.Image) > 0 {
		url, err := s.images.UploadAsDataURI(ctx, input.Image, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		project.ImageURL = url
	} else if input.ImageURL != nil {
		project.ImageURL = *input.ImageURL
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Delete removes a project. Requires ADMIN role or project ownership.
func (s *ProjectService) Delete(projectID, userID uint64) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	m, err := s.member(project.WorkspaceID, userID)
	if err != nil {
		return err
	}
	if err := policy.Check(policy.ResourceProject, policy.ActionDelete, m, policy.Target{OwnerID: project.OwnerID}); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
