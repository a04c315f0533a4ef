package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/access"
	"github.com/perditionlabs/recruitd/internal/dto"
	apierrors "github.com/perditionlabs/recruitd/internal/errors"
	"github.com/perditionlabs/recruitd/internal/middleware"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/perditionlabs/recruitd/internal/services"
)

// QuestionHandler handles question endpoints
type QuestionHandler struct {
	questionService *services.QuestionService
	campaignService *services.CampaignService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questionService *services.QuestionService, campaignService *services.CampaignService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, campaignService: campaignService}
}

// CreateQuestion creates a question in a campaign. An empty role_ids list
// makes the question common to every role. Requires Director.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	campaignID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		Title       string                 `json:"title" binding:"required"`
		Description string                 `json:"description"`
		Required    bool                   `json:"required"`
		MaxBytes    uint32                 `json:"max_bytes"`
		RoleIDs     []uint64               `json:"role_ids"`
		Payload     dto.QuestionPayloadDTO `json:"payload" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	payload, err := req.Payload.ToPayload()
	if err != nil {
		apierrors.BadRequest(c, "Malformed question payload")
		return
	}

	question, _, err := h.questionService.CreateQuestion(services.CreateQuestionInput{
		CampaignID:  campaignID,
		RoleIDs:     req.RoleIDs,
		Title:       req.Title,
		Description: req.Description,
		Required:    req.Required,
		MaxBytes:    req.MaxBytes,
		Payload:     payload,
	})
	if err != nil {
		h.respondQuestionError(c, err)
		return
	}

	// Re-fetch so the response carries the stored option ids.
	question, _, err = h.questionService.GetQuestion(question.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuestionDTO(*question))
}

// ListQuestions lists a campaign's questions. Members always see them;
// everyone else only once the campaign is published.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
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

	questions, err := h.questionService.ListQuestions(campaignID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": toQuestionDTOs(questions)})
}

// ListQuestionsForRole lists the questions an applicant for the role must
// answer: role-scoped ones plus the campaign's common questions.
func (h *QuestionHandler) ListQuestionsForRole(c *gin.Context) {
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

	questions, err := h.questionService.ListQuestionsForRole(roleID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": toQuestionDTOs(questions)})
}

// GetQuestion returns a question with its payload. Members always see it;
// everyone else only once its campaign is published.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	check, ok := middleware.ResolveResource(c, access.KindQuestion)
	if !ok {
		return
	}

	question, _, err := h.questionService.GetQuestion(questionID)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			apierrors.NotFound(c, "Question not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	campaign, err := h.campaignService.GetCampaign(question.CampaignID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	if !authorizeOrPublished(c, check, campaign.Published) {
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// UpdateQuestion replaces a question's fields and payload wholesale.
// Requires Director.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		Title       *string                `json:"title"`
		Description *string                `json:"description"`
		Required    *bool                  `json:"required"`
		MaxBytes    *uint32                `json:"max_bytes"`
		Payload     dto.QuestionPayloadDTO `json:"payload" binding:"required"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	payload, err := req.Payload.ToPayload()
	if err != nil {
		apierrors.BadRequest(c, "Malformed question payload")
		return
	}

	question, _, err := h.questionService.UpdateQuestion(questionID, services.UpdateQuestionInput{
		Title:       req.Title,
		Description: req.Description,
		Required:    req.Required,
		MaxBytes:    req.MaxBytes,
		Payload:     payload,
	})
	if err != nil {
		h.respondQuestionError(c, err)
		return
	}

	question, _, err = h.questionService.GetQuestion(question.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// DeleteQuestion removes a question, its options, and every answer that
// references it. Requires Director.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			apierrors.NotFound(c, "Question not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete question")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

func (h *QuestionHandler) respondQuestionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrQuestionNotFound):
		apierrors.NotFound(c, "Question not found")
	case errors.Is(err, services.ErrCampaignNotFound):
		apierrors.NotFound(c, "Campaign not found")
	case errors.Is(err, services.ErrQuestionRoleUnknown):
		apierrors.BadRequest(c, "One or more roles do not belong to the campaign")
	case errors.Is(err, services.ErrInvalidTitle):
		apierrors.BadRequest(c, "Question title cannot be empty")
	case errors.Is(err, services.ErrInvalidVariant),
		errors.Is(err, services.ErrNoOptions),
		errors.Is(err, services.ErrTooManyOptions),
		errors.Is(err, services.ErrEmptyOptionText),
		errors.Is(err, services.ErrUnexpectedOptions),
		errors.Is(err, services.ErrPayloadTagMismatch):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Failed to save question")
	}
}

func toQuestionDTOs(questions []repository.QuestionWithPayload) []dto.QuestionDTO {
	dtos := make([]dto.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = dto.ToQuestionDTO(q.Question)
	}
	return dtos
}
