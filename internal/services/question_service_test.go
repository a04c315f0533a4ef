package services

import (
	"testing"
	"time"

	"github.com/perditionlabs/recruitd/internal/constants"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type questionTestEnv struct {
	db              *gorm.DB
	questionService *QuestionService

	campaign models.Campaign
	role     models.Role
}

func setupQuestionTestEnv(t *testing.T) *questionTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organisation{},
		&models.Membership{},
		&models.Campaign{},
		&models.Role{},
		&models.Question{},
		&models.QuestionOption{},
		&models.Application{},
		&models.Answer{},
		&models.AnswerText{},
		&models.AnswerOption{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &questionTestEnv{db: db}
	env.questionService = NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewRoleRepository(db),
	)

	org := models.Organisation{Name: "Acme", InviteCode: "acme-invite"}
	require.NoError(t, db.Create(&org).Error)

	env.campaign = models.Campaign{
		OrganisationID: org.ID,
		Name:           "Graduate Intake",
		StartsAt:       time.Now().Add(-time.Hour),
		EndsAt:         time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&env.campaign).Error)

	env.role = models.Role{CampaignID: env.campaign.ID, Name: "Backend Engineer", MinAvailable: 1, MaxAvailable: 2}
	require.NoError(t, db.Create(&env.role).Error)

	return env
}

func TestCreateQuestionPayloadValidation(t *testing.T) {
	env := setupQuestionTestEnv(t)

	base := CreateQuestionInput{
		CampaignID: env.campaign.ID,
		Title:      "Pick",
	}

	// Option-based variant with no options.
	input := base
	input.Payload = models.OptionListSpec{Tag: models.VariantMultiChoice}
	_, _, err := env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrNoOptions)

	// Option list claiming to be a ShortAnswer.
	input = base
	input.Payload = models.OptionListSpec{Tag: models.VariantShortAnswer, Options: []models.OptionInput{{DisplayOrder: 1, Text: "A"}}}
	_, _, err = env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrUnexpectedOptions)

	// Unknown tag.
	input = base
	input.Payload = models.OptionListSpec{Tag: "ESSAY", Options: []models.OptionInput{{DisplayOrder: 1, Text: "A"}}}
	_, _, err = env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrInvalidVariant)

	// Blank option text.
	input = base
	input.Payload = models.OptionListSpec{Tag: models.VariantMultiChoice, Options: []models.OptionInput{{DisplayOrder: 1, Text: "  "}}}
	_, _, err = env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrEmptyOptionText)

	// Too many options.
	many := make([]models.OptionInput, constants.MaxQuestionOptions+1)
	for i := range many {
		many[i] = models.OptionInput{DisplayOrder: i + 1, Text: "opt"}
	}
	input = base
	input.Payload = models.OptionListSpec{Tag: models.VariantMultiSelect, Options: many}
	_, _, err = env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrTooManyOptions)

	// Empty title.
	input = base
	input.Title = "   "
	input.Payload = models.ShortAnswerSpec{}
	_, _, err = env.questionService.CreateQuestion(input)
	require.ErrorIs(t, err, ErrInvalidTitle)
}

func TestCreateQuestionDefaultsMaxBytes(t *testing.T) {
	env := setupQuestionTestEnv(t)

	question, _, err := env.questionService.CreateQuestion(CreateQuestionInput{
		CampaignID: env.campaign.ID,
		Title:      "Tell us",
		Payload:    models.ShortAnswerSpec{},
	})
	require.NoError(t, err)
	require.EqualValues(t, constants.DefaultAnswerBytes, question.MaxBytes)
}

func TestCreateQuestionRejectsForeignRoles(t *testing.T) {
	env := setupQuestionTestEnv(t)

	otherOrg := models.Organisation{Name: "Rival", InviteCode: "rival-invite"}
	require.NoError(t, env.db.Create(&otherOrg).Error)
	otherCampaign := models.Campaign{
		OrganisationID: otherOrg.ID,
		Name:           "Other Intake",
		StartsAt:       time.Now().Add(-time.Hour),
		EndsAt:         time.Now().Add(time.Hour),
	}
	require.NoError(t, env.db.Create(&otherCampaign).Error)
	foreignRole := models.Role{CampaignID: otherCampaign.ID, Name: "Spy", MinAvailable: 1, MaxAvailable: 1}
	require.NoError(t, env.db.Create(&foreignRole).Error)

	_, _, err := env.questionService.CreateQuestion(CreateQuestionInput{
		CampaignID: env.campaign.ID,
		Title:      "Pick",
		RoleIDs:    []uint64{env.role.ID, foreignRole.ID},
		Payload:    models.ShortAnswerSpec{},
	})
	require.ErrorIs(t, err, ErrQuestionRoleUnknown)
}

func TestUpdateQuestionFlipsVariant(t *testing.T) {
	env := setupQuestionTestEnv(t)

	question, _, err := env.questionService.CreateQuestion(CreateQuestionInput{
		CampaignID: env.campaign.ID,
		Title:      "Pick",
		Payload: models.OptionListSpec{
			Tag: models.VariantDropDown,
			Options: []models.OptionInput{
				{DisplayOrder: 1, Text: "Yes"},
				{DisplayOrder: 2, Text: "No"},
			},
		},
	})
	require.NoError(t, err)

	updated, payload, err := env.questionService.UpdateQuestion(question.ID, UpdateQuestionInput{
		Payload: models.ShortAnswerSpec{},
	})
	require.NoError(t, err)
	require.Equal(t, models.VariantShortAnswer, updated.Variant)
	require.IsType(t, models.ShortAnswerSpec{}, payload)

	var count int64
	require.NoError(t, env.db.Model(&models.QuestionOption{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)
}
