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

// AnswerHandler handles answer endpoints
type AnswerHandler struct {
	answerService *services.AnswerService
	appService    *services.ApplicationService
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(answerService *services.AnswerService, appService *services.ApplicationService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService, appService: appService}
}

// CreateAnswer records an answer on the caller's application. Owner only;
// the application must not have been decided.
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	appID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		QuestionID uint64               `json:"question_id" binding:"required"`
		Payload    dto.AnswerPayloadDTO `json:"payload" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	if !h.requireOwner(c, appID) {
		return
	}

	payload, err := req.Payload.ToPayload()
	if err != nil {
		apierrors.BadRequest(c, "Malformed answer payload")
		return
	}

	answer, stored, err := h.answerService.CreateAnswer(services.CreateAnswerInput{
		ApplicationID: appID,
		QuestionID:    req.QuestionID,
		Payload:       payload,
	})
	if err != nil {
		h.respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnswerDTO(*answer, stored))
}

// ListAnswers lists an application's answers. The applicant and
// organisation members may read them; a role_id query limits the list to
// questions visible to that role.
func (h *AnswerHandler) ListAnswers(c *gin.Context) {
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

	var roleID *uint64
	if raw := c.Query("role_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid role_id")
			return
		}
		roleID = &id
	}

	answers, err := h.answerService.ListAnswers(appID, roleID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	result := make([]dto.AnswerDTO, len(answers))
	for i, a := range answers {
		result[i] = dto.ToAnswerDTO(a.Answer, a.Payload)
	}

	c.JSON(http.StatusOK, gin.H{"answers": result})
}

// GetAnswer returns a single answer with its payload
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindAnswer)
	if !ok {
		return
	}

	answer, payload, err := h.answerService.GetAnswer(answerID)
	if err != nil {
		if errors.Is(err, services.ErrAnswerNotFound) {
			apierrors.NotFound(c, "Answer not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	userID, _ := middleware.GetUserID(c)
	isOwner, err := h.ownsApplication(answer.ApplicationID, userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	if err := check.AtLeast(models.AdminLevelReadOnly).Or(isOwner).Authorize(); err != nil {
		apierrors.NotFound(c, "Answer not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer, payload))
}

// UpdateAnswer replaces an answer's payload. Owner only.
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AnswerPayloadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	answer, _, err := h.answerService.GetAnswer(answerID)
	if err != nil {
		if errors.Is(err, services.ErrAnswerNotFound) {
			apierrors.NotFound(c, "Answer not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !h.requireOwner(c, answer.ApplicationID) {
		return
	}

	payload, err := req.ToPayload()
	if err != nil {
		apierrors.BadRequest(c, "Malformed answer payload")
		return
	}

	answer, stored, err := h.answerService.UpdateAnswer(answerID, payload)
	if err != nil {
		h.respondAnswerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer, stored))
}

// DeleteAnswer removes an answer and its payload rows. Owner only.
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	answer, _, err := h.answerService.GetAnswer(answerID)
	if err != nil {
		if errors.Is(err, services.ErrAnswerNotFound) {
			apierrors.NotFound(c, "Answer not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	if !h.requireOwner(c, answer.ApplicationID) {
		return
	}

	if err := h.answerService.DeleteAnswer(answerID); err != nil {
		apierrors.InternalError(c, "Failed to delete answer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted"})
}

// requireOwner responds not found unless the caller owns the application.
// Absence and lack of ownership are indistinguishable to the caller.
func (h *AnswerHandler) requireOwner(c *gin.Context, appID uint64) bool {
	userID, _ := middleware.GetUserID(c)

	isOwner, err := h.ownsApplication(appID, userID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			apierrors.NotFound(c, "Application not found")
			return false
		}
		apierrors.InternalError(c, "")
		return false
	}
	if !isOwner {
		apierrors.NotFound(c, "Application not found")
		return false
	}
	return true
}

func (h *AnswerHandler) ownsApplication(appID, userID uint64) (bool, error) {
	app, err := h.appService.GetApplication(appID)
	if err != nil {
		return false, err
	}
	return app.UserID == userID, nil
}

func (h *AnswerHandler) respondAnswerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, "Application not found")
	case errors.Is(err, services.ErrQuestionNotFound):
		apierrors.NotFound(c, "Question not found")
	case errors.Is(err, services.ErrAnswerNotFound):
		apierrors.NotFound(c, "Answer not found")
	case errors.Is(err, services.ErrAlreadyAnswered):
		apierrors.Conflict(c, "Question already answered for this application")
	case errors.Is(err, services.ErrApplicationDecided):
		apierrors.Conflict(c, "Application has already been decided")
	case errors.Is(err, services.ErrRequiredAnswerLocked):
		apierrors.Conflict(c, "Required answer cannot be removed after submission")
	case errors.Is(err, services.ErrVariantMismatch),
		errors.Is(err, services.ErrEmptyAnswerText),
		errors.Is(err, services.ErrAnswerTextTooLong),
		errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, services.ErrUnknownOption),
		errors.Is(err, services.ErrDuplicateOption),
		errors.Is(err, services.ErrIncompleteRanking):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to save answer")
	}
}
