package handlers

import (
	"net/http"
	"strconv"

	"github.com/asahina-dev/teamspace-api/internal/dto"
	apierrors "github.com/asahina-dev/teamspace-api/internal/errors"
	"github.com/asahina-dev/teamspace-api/internal/middleware"
	"github.com/asahina-dev/teamspace-api/internal/services"
	"github.com/asahina-dev/teamspace-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// MemberHandler serves the workspace member listing.
type MemberHandler struct {
	wsService *services.WorkspaceService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(wsService *services.WorkspaceService) *MemberHandler {
	return &MemberHandler{
		wsService: wsService,
	}
}

// ListMembers returns the members of a workspace with user details, oldest
// first, plus the caller's own role and the total member count.
func (h *MemberHandler) ListMembers(c *gin.Context) {
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

	params := utils.GetPaginationParams(c)

	members, role, total, err := h.wsService.ListMembers(workspaceID, userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToMembersDataDTO(members, role, total)})
}
