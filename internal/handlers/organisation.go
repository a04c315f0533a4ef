package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/dto"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/middleware"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/services"
)

// OrganisationHandler handles organisation and membership endpoints
type OrganisationHandler struct {
	orgService *services.OrganisationService
}

// NewOrganisationHandler creates a new OrganisationHandler
func NewOrganisationHandler(orgService *services.OrganisationService) *OrganisationHandler {
	return &OrganisationHandler{orgService: orgService}
}

// CreateOrganisation creates an organisation; the caller becomes its first
// Admin member.
func (h *OrganisationHandler) CreateOrganisation(c *gin.Context) {
	type CreateRequest struct {
		Name    string  `json:"name" binding:"required"`
		LogoRef *string `json:"logo_ref"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)

	org, err := h.orgService.CreateOrganisation(services.CreateOrganisationInput{
		Name:      req.Name,
		LogoRef:   req.LogoRef,
		CreatorID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrganisationName):
			apierrors.BadRequest(c, "Organisation name cannot be empty")
		default:
			apierrors.InternalError(c, "Failed to create organisation")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganisationDTO(*org, true))
}

// ListOrganisations lists the caller's organisations with their level
func (h *OrganisationHandler) ListOrganisations(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	memberships, err := h.orgService.ListOrganisationsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.OrganisationWithLevelDTO, len(memberships))
	for i, m := range memberships {
		result[i] = dto.ToOrganisationWithLevelDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{"organisations": result})
}

// GetOrganisation returns an organisation with its member list. Requires
// membership, enforced by the access middleware.
func (h *OrganisationHandler) GetOrganisation(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	org, members, err := h.orgService.GetOrganisationWithMembers(orgID)
	if err != nil {
		if errors.Is(err, services.ErrOrganisationNotFound) {
			apierrors.NotFound(c, "Organisation not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	check, _ := middleware.GetAccessCheck(c)
	level, _ := check.Level()

	c.JSON(http.StatusOK, dto.ToOrganisationDetailDTO(*org, members, level))
}

// UpdateOrganisation updates name and logo. Requires Admin.
func (h *OrganisationHandler) UpdateOrganisation(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name    *string `json:"name"`
		LogoRef *string `json:"logo_ref"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	org, err := h.orgService.UpdateOrganisation(orgID, services.UpdateOrganisationInput{
		Name:    req.Name,
		LogoRef: req.LogoRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrganisationNotFound):
			apierrors.NotFound(c, "Organisation not found")
		case errors.Is(err, services.ErrInvalidOrganisationName):
			apierrors.BadRequest(c, "Organisation name cannot be empty")
		default:
			apierrors.InternalError(c, "Failed to update organisation")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDTO(*org, true))
}

// DeleteOrganisation removes the organisation and everything under it.
// Requires Admin.
func (h *OrganisationHandler) DeleteOrganisation(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orgService.DeleteOrganisation(orgID); err != nil {
		if errors.Is(err, services.ErrOrganisationNotFound) {
			apierrors.NotFound(c, "Organisation not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete organisation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Organisation deleted"})
}

// JoinOrganisation adds the caller as a ReadOnly member via an invite code
func (h *OrganisationHandler) JoinOrganisation(c *gin.Context) {
	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)

	org, err := h.orgService.JoinOrganisationByInvite(userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInviteCode):
			apierrors.NotFound(c, "Invalid invite code")
		case errors.Is(err, services.ErrAlreadyMember):
			apierrors.Conflict(c, "Already a member of this organisation")
		default:
			apierrors.InternalError(c, "Failed to join organisation")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDTO(*org, true))
}

// RegenerateInviteCode rotates the invite code. Requires Admin.
func (h *OrganisationHandler) RegenerateInviteCode(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	org, err := h.orgService.RegenerateInviteCode(orgID)
	if err != nil {
		if errors.Is(err, services.ErrOrganisationNotFound) {
			apierrors.NotFound(c, "Organisation not found")
			return
		}
		apierrors.InternalError(c, "Failed to regenerate invite code")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganisationDTO(*org, true))
}

// SetMemberLevel changes another member's admin level. Requires Director;
// granting Admin additionally requires the caller to be an Admin.
func (h *OrganisationHandler) SetMemberLevel(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type SetLevelRequest struct {
		AdminLevel models.AdminLevel `json:"admin_level" binding:"required"`
	}

	var req SetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	// Level reports Admin for superusers, so no special case is needed.
	check, _ := middleware.GetAccessCheck(c)
	actorLevel, _ := check.Level()

	err = h.orgService.SetMemberLevel(services.SetMemberLevelInput{
		OrganisationID: orgID,
		ActorLevel:     actorLevel,
		TargetID:       targetID,
		Level:          req.AdminLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAdminLevel):
			apierrors.BadRequest(c, "Invalid admin level")
		case errors.Is(err, services.ErrAdminLevelNotGrantable):
			apierrors.Forbidden(c)
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, "Member not found")
		default:
			apierrors.InternalError(c, "Failed to update member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member level updated"})
}

// RemoveMember removes a member from the organisation. Requires Director.
func (h *OrganisationHandler) RemoveMember(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.orgService.RemoveMember(orgID, userID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrCannotRemoveYourself):
			apierrors.BadRequest(c, "Cannot remove yourself")
		case errors.Is(err, services.ErrMemberNotFound):
			apierrors.NotFound(c, "Member not found")
		default:
			apierrors.InternalError(c, "Failed to remove member")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// parseIDParam parses the :id route parameter
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return 0, false
	}
	return id, true
}

// authorizeOrPublished authorizes a member read, letting a published
// resource through for everyone. Denials are reported as not found so
// unpublished resources cannot be probed.
func authorizeOrPublished(c *gin.Context, check access.Check, published bool) bool {
	if err := check.AtLeast(models.AdminLevelReadOnly).Or(published).Authorize(); err != nil {
		apierrors.NotFound(c, "Resource not found")
		return false
	}
	return true
}
