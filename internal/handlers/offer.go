package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/dto"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/services"
)

// OfferHandler handles offer endpoints
type OfferHandler struct {
	offerService *services.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// CreateOffer drafts an offer for a successful application. Requires Admin,
// enforced by the access middleware on the application.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		EmailTemplate string    `json:"email_template" binding:"required"`
		ExpiresAt     time.Time `json:"expires_at" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	offer, err := h.offerService.CreateOffer(services.CreateOfferInput{
		ApplicationID: appID,
		EmailTemplate: req.EmailTemplate,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			apierrors.NotFound(c, "Application not found")
		case errors.Is(err, services.ErrApplicationNotDecided):
			apierrors.Conflict(c, "Application has not been marked successful")
		case errors.Is(err, services.ErrOfferExpiryInPast):
			apierrors.BadRequest(c, "Offer expiry must be in the future")
		default:
			apierrors.InternalError(c, "Failed to create offer")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToOfferDTO(*offer))
}

// GetOffer returns an offer. Requires membership.
func (h *OfferHandler) GetOffer(c *gin.Context) {
	offerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	offer, err := h.offerService.GetOffer(offerID)
	if err != nil {
		if errors.Is(err, services.ErrOfferNotFound) {
			apierrors.NotFound(c, "Offer not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferDTO(*offer))
}

// ListByRole lists a role's offers. Requires Director.
func (h *OfferHandler) ListByRole(c *gin.Context) {
	roleID, ok := parseIDParam(c)
	if !ok {
		return
	}

	offers, err := h.offerService.ListByRole(roleID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": dto.ToOfferDTOs(offers)})
}

// SendOffer transitions a draft offer to Sent and mails the applicant.
// Requires Admin.
func (h *OfferHandler) SendOffer(c *gin.Context) {
	offerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	offer, err := h.offerService.SendOffer(offerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOfferNotFound):
			apierrors.NotFound(c, "Offer not found")
		case errors.Is(err, services.ErrOfferNotDraft):
			apierrors.Conflict(c, "Offer has already been sent")
		case errors.Is(err, services.ErrOfferExpired):
			apierrors.Conflict(c, "Offer has expired")
		default:
			apierrors.InternalError(c, "Failed to send offer")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferDTO(*offer))
}

// GetOfferByToken returns the offer a reply token refers to. Public; the
// token itself is the credential.
func (h *OfferHandler) GetOfferByToken(c *gin.Context) {
	token := c.Param("token")

	offer, err := h.offerService.GetOfferByToken(token)
	if err != nil {
		if errors.Is(err, services.ErrOfferNotFound) {
			apierrors.NotFound(c, "Offer not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferDTO(*offer))
}

// RespondToOffer records the applicant's accept or decline. Public; the
// token itself is the credential. A reply after expiry is rejected and the
// offer keeps its current status.
func (h *OfferHandler) RespondToOffer(c *gin.Context) {
	token := c.Param("token")

	type RespondRequest struct {
		Accept *bool `json:"accept" binding:"required"`
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	offer, err := h.offerService.RespondToOffer(token, *req.Accept)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOfferNotFound):
			apierrors.NotFound(c, "Offer not found")
		case errors.Is(err, services.ErrOfferNotSent):
			apierrors.Conflict(c, "Offer is not awaiting a reply")
		case errors.Is(err, services.ErrOfferExpired):
			apierrors.Conflict(c, "Offer has expired")
		default:
			apierrors.InternalError(c, "Failed to record reply")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOfferDTO(*offer))
}
