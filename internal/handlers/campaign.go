package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/dto"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/middleware"
	"github.com/perditionlabs/recruitd/internal/services"
	"github.com/perditionlabs/recruitd/internal/utils"
)

// CampaignHandler handles campaign and role endpoints
type CampaignHandler struct {
	campaignService *services.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler
func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// CreateCampaign creates a campaign in an organisation. Requires Director.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		BannerRef   *string   `json:"banner_ref"`
		StartsAt    time.Time `json:"starts_at" binding:"required"`
		EndsAt      time.Time `json:"ends_at" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	campaign, err := h.campaignService.CreateCampaign(services.CreateCampaignInput{
		OrganisationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		BannerRef:      req.BannerRef,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCampaignName):
			apierrors.BadRequest(c, "Campaign name cannot be empty")
		case errors.Is(err, services.ErrInvalidTimeWindow):
			apierrors.BadRequest(c, "Campaign must start before it ends")
		default:
			apierrors.InternalError(c, "Failed to create campaign")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCampaignDTO(*campaign, time.Now()))
}

// ListCampaigns lists an organisation's campaigns. Requires membership.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	orgID, ok := parseIDParam(c)
	if !ok {
		return
	}

	campaigns, err := h.campaignService.ListCampaigns(orgID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": dto.ToCampaignDTOs(campaigns, time.Now())})
}

// ListOpenCampaigns lists published campaigns whose window contains now.
// Public, no authentication.
func (h *CampaignHandler) ListOpenCampaigns(c *gin.Context) {
	now := time.Now()
	params := utils.GetPaginationParams(c)

	campaigns, total, err := h.campaignService.ListOpenCampaigns(now, params)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns": dto.ToCampaignDTOs(campaigns, now),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetCampaign returns a campaign. Members always see it; everyone else only
// once it is published.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindCampaign)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(campaignID)
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			apierrors.NotFound(c, "Campaign not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !authorizeOrPublished(c, check, campaign.Published) {
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignDTO(*campaign, time.Now()))
}

// UpdateCampaign updates campaign fields. Requires Director.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		BannerRef   *string    `json:"banner_ref"`
		StartsAt    *time.Time `json:"starts_at"`
		EndsAt      *time.Time `json:"ends_at"`
		Published   *bool      `json:"published"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(campaignID, services.UpdateCampaignInput{
		Name:        req.Name,
		Description: req.Description,
		BannerRef:   req.BannerRef,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Published:   req.Published,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			apierrors.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrInvalidCampaignName):
			apierrors.BadRequest(c, "Campaign name cannot be empty")
		case errors.Is(err, services.ErrInvalidTimeWindow):
			apierrors.BadRequest(c, "Campaign must start before it ends")
		default:
			apierrors.InternalError(c, "Failed to update campaign")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignDTO(*campaign, time.Now()))
}

// PublishCampaign marks a campaign visible to applicants. Requires Director.
func (h *CampaignHandler) PublishCampaign(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	published := true
	campaign, err := h.campaignService.UpdateCampaign(campaignID, services.UpdateCampaignInput{
		Published: &published,
	})
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			apierrors.NotFound(c, "Campaign not found")
			return
		}
		apierrors.InternalError(c, "Failed to publish campaign")
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignDTO(*campaign, time.Now()))
}

// DeleteCampaign removes a campaign and everything under it. Requires
// Director.
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteCampaign(campaignID); err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			apierrors.NotFound(c, "Campaign not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete campaign")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// CreateRole creates a role within a campaign. Requires Director.
func (h *CampaignHandler) CreateRole(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		Name         string `json:"name" binding:"required"`
		MinAvailable uint32 `json:"min_available"`
		MaxAvailable uint32 `json:"max_available"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	role, err := h.campaignService.CreateRole(services.CreateRoleInput{
		CampaignID:   campaignID,
		Name:         req.Name,
		MinAvailable: req.MinAvailable,
		MaxAvailable: req.MaxAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCampaignNotFound):
			apierrors.NotFound(c, "Campaign not found")
		case errors.Is(err, services.ErrInvalidRoleName):
			apierrors.BadRequest(c, "Role name cannot be empty")
		case errors.Is(err, services.ErrInvalidCapacity):
			apierrors.BadRequest(c, "Minimum available cannot exceed maximum")
		default:
			apierrors.InternalError(c, "Failed to create role")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role))
}

// ListRoles lists a campaign's roles. Members always see them; everyone
// else only once the campaign is published.
func (h *CampaignHandler) ListRoles(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindCampaign)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(campaignID)
	if err != nil {
		if errors.Is(err, services.ErrCampaignNotFound) {
			apierrors.NotFound(c, "Campaign not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !authorizeOrPublished(c, check, campaign.Published) {
		return
	}

	roles, err := h.campaignService.ListRoles(campaignID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": dto.ToRoleDTOs(roles)})
}

// GetRole returns a role. Members always see it; everyone else only once
// the campaign is published.
func (h *CampaignHandler) GetRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindRole)
	if !ok {
		return
	}

	role, err := h.campaignService.GetRole(roleID)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			apierrors.NotFound(c, "Role not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	campaign, err := h.campaignService.GetCampaign(role.CampaignID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	if !authorizeOrPublished(c, check, campaign.Published) {
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// UpdateRole updates a role. Requires Director. A finalised role rejects
// every change except un-finalising.
func (h *CampaignHandler) UpdateRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Name         *string `json:"name"`
		MinAvailable *uint32 `json:"min_available"`
		MaxAvailable *uint32 `json:"max_available"`
		Finalised    *bool   `json:"finalised"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	role, err := h.campaignService.UpdateRole(roleID, services.UpdateRoleInput{
		Name:         req.Name,
		MinAvailable: req.MinAvailable,
		MaxAvailable: req.MaxAvailable,
		Finalised:    req.Finalised,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			apierrors.NotFound(c, "Role not found")
		case errors.Is(err, services.ErrRoleFinalised):
			apierrors.Conflict(c, "Role has been finalised")
		case errors.Is(err, services.ErrInvalidRoleName):
			apierrors.BadRequest(c, "Role name cannot be empty")
		case errors.Is(err, services.ErrInvalidCapacity):
			apierrors.BadRequest(c, "Minimum available cannot exceed maximum")
		default:
			apierrors.InternalError(c, "Failed to update role")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// DeleteRole removes a role and its applications. Requires Director.
func (h *CampaignHandler) DeleteRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.campaignService.DeleteRole(roleID); err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			apierrors.NotFound(c, "Role not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete role")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}
