package repository

import (
	"testing"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type repoTestEnv struct {
	db *gorm.DB

	org      models.Organisation
	campaign models.Campaign
	role     models.Role
	app      models.Application
}

func setupRepoTestEnv(t *testing.T) *repoTestEnv {
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
		&models.Comment{},
		&models.Rating{},
		&models.Offer{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	env := &repoTestEnv{db: db}

	env.org = models.Organisation{Name: "Acme", InviteCode: "acme-invite"}
	require.NoError(t, db.Create(&env.org).Error)

	env.campaign = models.Campaign{
		OrganisationID: env.org.ID,
		Name:           "Graduate Intake",
		StartsAt:       time.Now().Add(-time.Hour),
		EndsAt:         time.Now().Add(time.Hour),
		Published:      true,
	}
	require.NoError(t, db.Create(&env.campaign).Error)

	env.role = models.Role{CampaignID: env.campaign.ID, Name: "Backend Engineer", MinAvailable: 1, MaxAvailable: 2}
	require.NoError(t, db.Create(&env.role).Error)

	applicant := models.User{Email: "applicant@example.com", DisplayName: "Applicant", PasswordHash: "hashed"}
	require.NoError(t, db.Create(&applicant).Error)

	env.app = models.Application{RoleID: env.role.ID, UserID: applicant.ID}
	require.NoError(t, db.Create(&env.app).Error)

	return env
}

func threeOptions() []models.OptionInput {
	return []models.OptionInput{
		{DisplayOrder: 1, Text: "Go"},
		{DisplayOrder: 2, Text: "Rust"},
		{DisplayOrder: 3, Text: "Zig"},
	}
}

func TestQuestionRoundTripShortAnswer(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Tell us about yourself", MaxBytes: 4096}
	require.NoError(t, repo.Create(question, models.ShortAnswerSpec{}, nil))

	got, payload, err := repo.FindByID(question.ID)
	require.NoError(t, err)
	require.Equal(t, models.VariantShortAnswer, got.Variant)
	require.IsType(t, models.ShortAnswerSpec{}, payload)

	// ShortAnswer never owns option rows.
	var count int64
	require.NoError(t, env.db.Model(&models.QuestionOption{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestQuestionRoundTripOptionVariants(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	for _, variant := range []models.QuestionVariant{
		models.VariantMultiChoice,
		models.VariantMultiSelect,
		models.VariantDropDown,
		models.VariantRanking,
	} {
		question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick a language", MaxBytes: 4096}
		payload := models.OptionListSpec{Tag: variant, Options: threeOptions()}
		require.NoError(t, repo.Create(question, payload, nil))

		got, stored, err := repo.FindByID(question.ID)
		require.NoError(t, err)
		require.Equal(t, variant, got.Variant)

		spec, ok := stored.(models.OptionListSpec)
		require.True(t, ok)
		require.Equal(t, variant, spec.Tag)
		require.Equal(t, threeOptions(), spec.Options)
		require.Len(t, got.Options, 3)
	}
}

func TestQuestionUpdateReplacesOptionsWholesale(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick", MaxBytes: 4096}
	require.NoError(t, repo.Create(question, models.OptionListSpec{Tag: models.VariantMultiChoice, Options: threeOptions()}, nil))

	var before []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", question.ID).Find(&before).Error)
	require.Len(t, before, 3)

	newOptions := []models.OptionInput{
		{DisplayOrder: 1, Text: "Yes"},
		{DisplayOrder: 2, Text: "No"},
	}
	require.NoError(t, repo.Update(question, models.OptionListSpec{Tag: models.VariantMultiChoice, Options: newOptions}))

	var after []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", question.ID).Order("display_order ASC").Find(&after).Error)
	require.Len(t, after, 2)
	require.Equal(t, "Yes", after[0].Text)
	require.Equal(t, "No", after[1].Text)

	// Old rows are gone, not merely superseded: the new ids differ.
	for _, old := range before {
		for _, cur := range after {
			require.NotEqual(t, old.ID, cur.ID)
		}
	}
}

func TestQuestionTagFlipLeavesNoOrphanOptions(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick", MaxBytes: 4096}
	require.NoError(t, repo.Create(question, models.OptionListSpec{Tag: models.VariantMultiSelect, Options: threeOptions()}, nil))

	require.NoError(t, repo.Update(question, models.ShortAnswerSpec{}))

	got, payload, err := repo.FindByID(question.ID)
	require.NoError(t, err)
	require.Equal(t, models.VariantShortAnswer, got.Variant)
	require.IsType(t, models.ShortAnswerSpec{}, payload)

	var count int64
	require.NoError(t, env.db.Model(&models.QuestionOption{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestQuestionDeleteCascadesToAnswers(t *testing.T) {
	env := setupRepoTestEnv(t)
	questionRepo := NewQuestionRepository(env.db)
	answerRepo := NewAnswerRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(question, models.OptionListSpec{Tag: models.VariantMultiSelect, Options: threeOptions()}, nil))

	_, loaded, err := questionRepo.FindByID(question.ID)
	require.NoError(t, err)
	require.IsType(t, models.OptionListSpec{}, loaded)

	var options []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", question.ID).Find(&options).Error)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	payload := models.SelectionAnswer{OptionIDs: []uint64{options[0].ID, options[2].ID}}
	require.NoError(t, answerRepo.Create(answer, payload))

	require.NoError(t, questionRepo.Delete(question.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.QuestionOption{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.db.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.db.Model(&models.AnswerOption{}).Where("answer_id = ?", answer.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestQuestionVariantFlipCascadesAnswers(t *testing.T) {
	env := setupRepoTestEnv(t)
	questionRepo := NewQuestionRepository(env.db)
	answerRepo := NewAnswerRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(question, models.OptionListSpec{Tag: models.VariantDropDown, Options: threeOptions()}, nil))

	var options []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", question.ID).Find(&options).Error)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.ChoiceAnswer{OptionID: options[1].ID}))

	// A flip to another variant invalidates the stored answer wholesale.
	require.NoError(t, questionRepo.Update(question, models.ShortAnswerSpec{}))

	var count int64
	require.NoError(t, env.db.Model(&models.Answer{}).Where("question_id = ?", question.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.db.Model(&models.AnswerOption{}).Where("answer_id = ?", answer.ID).Count(&count).Error)
	require.Zero(t, count)

	// A same-variant update leaves answers untouched.
	keep := &models.Question{CampaignID: env.campaign.ID, Title: "Keep", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(keep, models.OptionListSpec{Tag: models.VariantDropDown, Options: threeOptions()}, nil))

	var keepOptions []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", keep.ID).Find(&keepOptions).Error)

	keepAnswer := &models.Answer{ApplicationID: env.app.ID, QuestionID: keep.ID}
	require.NoError(t, answerRepo.Create(keepAnswer, models.ChoiceAnswer{OptionID: keepOptions[0].ID}))

	keep.Title = "Keep renamed"
	require.NoError(t, questionRepo.Update(keep, models.OptionListSpec{Tag: models.VariantDropDown, Options: threeOptions()}))

	require.NoError(t, env.db.Model(&models.Answer{}).Where("question_id = ?", keep.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestQuestionOptionBasedWithoutOptionsIsCorrupt(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	// Bypass the repository to plant an invalid row.
	question := models.Question{CampaignID: env.campaign.ID, Title: "Broken", Variant: models.VariantMultiChoice}
	require.NoError(t, env.db.Create(&question).Error)

	_, _, err := repo.FindByID(question.ID)
	require.ErrorIs(t, err, ErrCorruptQuestion)
}

func TestQuestionListByRoleScoping(t *testing.T) {
	env := setupRepoTestEnv(t)
	repo := NewQuestionRepository(env.db)

	otherRole := models.Role{CampaignID: env.campaign.ID, Name: "Frontend Engineer", MinAvailable: 1, MaxAvailable: 1}
	require.NoError(t, env.db.Create(&otherRole).Error)

	common := &models.Question{CampaignID: env.campaign.ID, Title: "Common", MaxBytes: 4096}
	require.NoError(t, repo.Create(common, models.ShortAnswerSpec{}, nil))

	backendOnly := &models.Question{CampaignID: env.campaign.ID, Title: "Backend only", MaxBytes: 4096}
	require.NoError(t, repo.Create(backendOnly, models.ShortAnswerSpec{}, []uint64{env.role.ID}))

	frontendOnly := &models.Question{CampaignID: env.campaign.ID, Title: "Frontend only", MaxBytes: 4096}
	require.NoError(t, repo.Create(frontendOnly, models.ShortAnswerSpec{}, []uint64{otherRole.ID}))

	visible, err := repo.ListByRole(env.campaign.ID, env.role.ID)
	require.NoError(t, err)

	titles := make([]string, len(visible))
	for i, q := range visible {
		titles[i] = q.Question.Title
	}
	require.ElementsMatch(t, []string{"Common", "Backend only"}, titles)
}
