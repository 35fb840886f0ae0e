package handlers

import (
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/asahina-dev/teamspace-api/internal/errors"
	"github.com/asahina-dev/teamspace-api/internal/middleware"
	"github.com/asahina-dev/teamspace-api/internal/models"
	"github.com/asahina-dev/teamspace-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// parseDate accepts RFC 3339 timestamps or plain dates.
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, true
	}
	return nil, false
}

// ListProjects returns a workspace's projects, newest first. Membership required.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	workspaceID, err := strconv.ParseUint(c.Query("workspaceId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid workspaceId")
		return
	}

	projects, err := h.projectService.List(workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": projects})
}

// GetProject returns a single project. Membership in the project's workspace
// is required; the workspace is resolved from the stored record.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, err := h.projectService.Get(projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": project})
}

type projectForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Status      string `form:"status" binding:"omitempty,oneof=active archived completed"`
	Priority    string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
}

// CreateProject creates a project owned by the caller. Membership required.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var form struct {
		projectForm
		WorkspaceID uint64 `form:"workspaceId" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		apierrors.BadRequestWithDetails(c, "Validation failed", err.Error())
		return
	}

	startDate, ok := parseDate(form.StartDate)
	if !ok {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"startDate": "Invalid date"})
		return
	}
	endDate, ok := parseDate(form.EndDate)
	if !ok {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"endDate": "Invalid date"})
		return
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), services.CreateProjectInput{
		Name:             form.Name,
		Description:      form.Description,
		WorkspaceID:      form.WorkspaceID,
		OwnerID:          userID,
		Status:           models.ProjectStatus(form.Status),
		Priority:         models.ProjectPriority(form.Priority),
		StartDate:        startDate,
		EndDate:          endDate,
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": project})
}

// updateProjectForm distinguishes omitted fields from explicitly set ones, so
// a PATCH only touches what the client sent.
type updateProjectForm struct {
	Name        *string `form:"name"`
	Description *string `form:"description"`
	Status      *string `form:"status" binding:"omitempty,oneof=active archived completed"`
	Priority    *string `form:"priority" binding:"omitempty,oneof=low medium high urgent"`
	StartDate   *string `form:"startDate"`
	EndDate     *string `form:"endDate"`
}

// UpdateProject modifies a project. ADMIN or project owner only. Omitted form
// fields keep their stored values.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var form updateProjectForm
	if err := c.ShouldBind(&form); err != nil {
		apierrors.BadRequestWithDetails(c, "Validation failed", err.Error())
		return
	}

	input := services.UpdateProjectInput{
		Name:        form.Name,
		Description: form.Description,
	}
	if form.Status != nil && *form.Status != "" {
		status := models.ProjectStatus(*form.Status)
		input.Status = &status
	}
	if form.Priority != nil && *form.Priority != "" {
		priority := models.ProjectPriority(*form.Priority)
		input.Priority = &priority
	}
	if form.StartDate != nil {
		startDate, okDate := parseDate(*form.StartDate)
		if !okDate {
			apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"startDate": "Invalid date"})
			return
		}
		input.StartDate, input.StartDateSet = startDate, true
	}
	if form.EndDate != nil {
		endDate, okDate := parseDate(*form.EndDate)
		if !okDate {
			apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"endDate": "Invalid date"})
			return
		}
		input.EndDate, input.EndDateSet = endDate, true
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}
	input.Image, input.ImageContentType = image, contentType
	if imageURL, present := c.GetPostForm("image"); present {
		input.ImageURL = &imageURL
	}

	project, err := h.projectService.Update(c.Request.Context(), projectID, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": project})
}

// DeleteProject removes a project. ADMIN or project owner only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.projectService.Delete(projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": projectID}})
}
