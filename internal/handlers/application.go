package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/dto"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/middleware"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/services"
)

// ApplicationHandler handles application, comment, and rating endpoints
type ApplicationHandler struct {
	appService *services.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Apply creates a draft application for the caller against a role. The
// campaign must be published and open.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	app, err := h.appService.Apply(roleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			apierrors.NotFound(c, "Role not found")
		case errors.Is(err, services.ErrCampaignClosed):
			apierrors.Conflict(c, "Campaign is not open for applications")
		case errors.Is(err, services.ErrAlreadyApplied):
			apierrors.Conflict(c, "You have already applied for this role")
		default:
			apierrors.InternalError(c, "Failed to create application")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListByRole lists a role's applications for reviewers, private status
// included. Requires membership, enforced by the access middleware.
func (h *ApplicationHandler) ListByRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	apps, err := h.appService.ListByRole(roleID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.ApplicationDTO, len(apps))
	for i, app := range apps {
		result[i] = dto.ToReviewerApplicationDTO(app)
	}

	c.JSON(http.StatusOK, gin.H{"applications": result})
}

// GetApplication returns an application. The applicant sees the public
// status; organisation members additionally see the private one.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindApplication)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	app, err := h.appService.GetApplication(appID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			apierrors.NotFound(c, "Application not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	isOwner := app.UserID == userID
	if err := check.AtLeast(models.AdminLevelReadOnly).Or(isOwner).Authorize(); err != nil {
		apierrors.NotFound(c, "Application not found")
		return
	}

	if isOwner && !check.Superuser() {
		c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewerApplicationDTO(*app))
}

// ListMine lists the caller's own applications
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	apps, err := h.appService.ListByUser(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.ApplicationDTO, len(apps))
	for i, app := range apps {
		result[i] = dto.ToApplicationDTO(app)
	}

	c.JSON(http.StatusOK, gin.H{"applications": result})
}

// Submit moves the caller's draft application to Pending. Owner only.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	app, err := h.appService.GetApplication(appID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			apierrors.NotFound(c, "Application not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}
	if app.UserID != userID {
		apierrors.NotFound(c, "Application not found")
		return
	}

	app, err = h.appService.Submit(appID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadySubmitted):
			apierrors.Conflict(c, "Application has already been submitted")
		case errors.Is(err, services.ErrRequiredUnanswered):
			apierrors.Conflict(c, "A required question has not been answered")
		default:
			apierrors.InternalError(c, "Failed to submit application")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToApplicationDTO(*app))
}

// SetStatus updates the public or private status of an application.
// Requires Director, enforced by the access middleware.
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type StatusRequest struct {
		Status  models.ApplicationStatus `json:"status" binding:"required"`
		Private bool                     `json:"private"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	app, err := h.appService.SetStatus(services.SetStatusInput{
		ApplicationID: appID,
		Status:        req.Status,
		Private:       req.Private,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			apierrors.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrInvalidStatus):
			apierrors.BadRequest(c, "Invalid application status")
		default:
			apierrors.InternalError(c, "Failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReviewerApplicationDTO(*app))
}

// AddComment attaches a reviewer comment. Requires Director.
func (h *ApplicationHandler) AddComment(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CommentRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)

	comment, err := h.appService.AddComment(appID, userID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			apierrors.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrEmptyCommentBody):
			apierrors.BadRequest(c, "Comment body cannot be empty")
		default:
			apierrors.InternalError(c, "Failed to add comment")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments lists an application's reviewer comments. Requires
// membership.
func (h *ApplicationHandler) ListComments(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	comments, err := h.appService.ListComments(appID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		result[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": result})
}

// AddRating attaches a reviewer rating. Requires Director.
func (h *ApplicationHandler) AddRating(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type RatingRequest struct {
		Score int `json:"score" binding:"required"`
	}

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)

	rating, err := h.appService.AddRating(appID, userID, req.Score)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			apierrors.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrInvalidRatingScore):
			apierrors.BadRequest(c, "Rating score out of range")
		default:
			apierrors.InternalError(c, "Failed to add rating")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToRatingDTO(*rating))
}

// ListRatings lists an application's reviewer ratings. Requires membership.
func (h *ApplicationHandler) ListRatings(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	ratings, err := h.appService.ListRatings(appID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.RatingDTO, len(ratings))
	for i, rating := range ratings {
		result[i] = dto.ToRatingDTO(rating)
	}

	c.JSON(http.StatusOK, gin.H{"ratings": result})
}
