package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	apierrors "github.com/asahina-dev/teamspace-api/internal/errors"
	"github.com/asahina-dev/teamspace-api/internal/policy"
	"github.com/asahina-dev/teamspace-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service and policy errors to HTTP statuses.
// The split is deliberate: no membership at all → 401, membership without the
// required privilege → 403, role- or state-blocked operations → 400.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, policy.ErrNotMember):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, policy.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, policy.ErrRoleRestricted):
		apierrors.BadRequest(c, "Admins cannot leave the workspace. Delete it or transfer ownership first.")
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrAlreadyWorkspaceMember),
		errors.Is(err, services.ErrCannotRemoveSelf),
		errors.Is(err, services.ErrCannotRemoveAdmin),
		errors.Is(err, services.ErrInvalidWorkspaceName),
		errors.Is(err, services.ErrInvalidProjectName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses a numeric URL parameter.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// readImageFile reads the optional multipart "image" file. Returns nil bytes
// when the field is absent.
func readImageFile(c *gin.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Header.Get("Content-Type"), nil
}
