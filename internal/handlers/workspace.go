package handlers

import (
	"net/http"

	"github.com/asahina-dev/teamspace-api/internal/dto"
	apierrors "github.com/asahina-dev/teamspace-api/internal/errors"
	"github.com/asahina-dev/teamspace-api/internal/middleware"
	"github.com/asahina-dev/teamspace-api/internal/services"
	"github.com/gin-gonic/gin"
)

// WorkspaceHandler coordinates workspace-related HTTP handlers.
type WorkspaceHandler struct {
	wsService *services.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(wsService *services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{
		wsService: wsService,
	}
}

// ListWorkspaces returns all workspaces the caller is a member of, newest first.
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	workspaces, err := h.wsService.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspaces})
}

// GetWorkspace returns a single workspace. Membership required.
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	workspace, err := h.wsService.Get(workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspace})
}

// CreateWorkspace creates a workspace from multipart form data (name, image?).
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": "Required"})
		return
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}

	workspace, err := h.wsService.Create(c.Request.Context(), services.CreateWorkspaceInput{
		Name:             name,
		UserID:           userID,
		Image:            image,
		ImageContentType: contentType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspace})
}

// UpdateWorkspace renames a workspace and replaces its image. ADMIN only.
// A non-file "image" form value passes through as the stored image URL.
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": "Must be at least 1 character"})
		return
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid image upload")
		return
	}

	workspace, err := h.wsService.Update(c.Request.Context(), workspaceID, userID, services.UpdateWorkspaceInput{
		Name:             name,
		Image:            image,
		ImageContentType: contentType,
		ImageURL:         c.PostForm("image"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspace})
}

// DeleteWorkspace removes a workspace and its memberships. ADMIN only.
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.wsService.Delete(workspaceID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": workspaceID}})
}

// ResetInviteCode replaces the workspace invite code. ADMIN only.
func (h *WorkspaceHandler) ResetInviteCode(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	workspace, err := h.wsService.ResetInviteCode(workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspace})
}

// GetWorkspaceForJoin validates the invite code and returns the public-safe
// workspace projection for the join page. Requires a session.
func (h *WorkspaceHandler) GetWorkspaceForJoin(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workspace, err := h.wsService.GetForJoin(workspaceID, c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToWorkspaceJoinDTO(*workspace)})
}

// GetWorkspaceJoinInfo returns name and image only. Intentionally public:
// the invite link preview renders before sign-in.
func (h *WorkspaceHandler) GetWorkspaceJoinInfo(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workspace, err := h.wsService.GetForJoin(workspaceID, c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToWorkspaceJoinInfoDTO(*workspace)})
}

// JoinWorkspace creates a MEMBER membership for the caller.
func (h *WorkspaceHandler) JoinWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"inviteCode" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	workspace, err := h.wsService.Join(workspaceID, userID, req.InviteCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workspace})
}

// LeaveWorkspace deletes the caller's own membership. Admins are refused.
func (h *WorkspaceHandler) LeaveWorkspace(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := h.wsService.Leave(workspaceID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": memberID}})
}

// RemoveMember lets an admin remove another non-admin member.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	workspaceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	targetUserID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := h.wsService.RemoveMember(workspaceID, userID, targetUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": memberID}})
}
