package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/stretchr/testify/require"
)

// createOptionQuestion persists a question of the given variant and returns
// its stored option ids in display order.
func createOptionQuestion(t *testing.T, env *repoTestEnv, variant models.QuestionVariant) (*models.Question, []uint64) {
	t.Helper()

	repo := NewQuestionRepository(env.db)
	question := &models.Question{CampaignID: env.campaign.ID, Title: "Pick", MaxBytes: 4096}
	require.NoError(t, repo.Create(question, models.OptionListSpec{Tag: variant, Options: threeOptions()}, nil))

	var options []models.QuestionOption
	require.NoError(t, env.db.Where("question_id = ?", question.ID).Order("display_order ASC").Find(&options).Error)
	require.Len(t, options, 3)

	ids := make([]uint64, len(options))
	for i, opt := range options {
		ids[i] = opt.ID
	}
	return question, ids
}

func TestAnswerTextRoundTrip(t *testing.T) {
	env := setupRepoTestEnv(t)
	questionRepo := NewQuestionRepository(env.db)
	answerRepo := NewAnswerRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Why us", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(question, models.ShortAnswerSpec{}, nil))

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.TextAnswer{Text: "Because."}))

	got, payload, err := answerRepo.FindByID(answer.ID)
	require.NoError(t, err)
	require.Equal(t, models.VariantShortAnswer, got.Variant)
	require.Equal(t, models.TextAnswer{Text: "Because."}, payload)
}

func TestAnswerRankingOrderPreserved(t *testing.T) {
	env := setupRepoTestEnv(t)
	answerRepo := NewAnswerRepository(env.db)

	question, ids := createOptionQuestion(t, env, models.VariantRanking)

	// Rank in an order unrelated to display order or id order.
	ranked := []uint64{ids[2], ids[0], ids[1]}

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.RankingAnswer{OptionIDs: ranked}))

	_, payload, err := answerRepo.FindByID(answer.ID)
	require.NoError(t, err)

	stored, ok := payload.(models.RankingAnswer)
	require.True(t, ok)
	require.Equal(t, ranked, stored.OptionIDs)
}

func TestAnswerChoiceRoundTrip(t *testing.T) {
	env := setupRepoTestEnv(t)
	answerRepo := NewAnswerRepository(env.db)

	question, ids := createOptionQuestion(t, env, models.VariantDropDown)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.ChoiceAnswer{Tag: models.VariantDropDown, OptionID: ids[1]}))

	_, payload, err := answerRepo.FindByID(answer.ID)
	require.NoError(t, err)
	require.Equal(t, models.ChoiceAnswer{Tag: models.VariantDropDown, OptionID: ids[1]}, payload)
}

func TestAnswerUpdateReplacesSelection(t *testing.T) {
	env := setupRepoTestEnv(t)
	answerRepo := NewAnswerRepository(env.db)

	question, ids := createOptionQuestion(t, env, models.VariantMultiSelect)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.SelectionAnswer{OptionIDs: []uint64{ids[0], ids[1]}}))

	require.NoError(t, answerRepo.Update(answer.ID, models.SelectionAnswer{OptionIDs: []uint64{ids[2]}}))

	_, payload, err := answerRepo.FindByID(answer.ID)
	require.NoError(t, err)

	stored, ok := payload.(models.SelectionAnswer)
	require.True(t, ok)
	require.Equal(t, []uint64{ids[2]}, stored.OptionIDs)

	// Exactly one subsidiary row remains.
	var count int64
	require.NoError(t, env.db.Model(&models.AnswerOption{}).Where("answer_id = ?", answer.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAnswerMutationTouchesApplication(t *testing.T) {
	env := setupRepoTestEnv(t)
	questionRepo := NewQuestionRepository(env.db)
	answerRepo := NewAnswerRepository(env.db)

	question := &models.Question{CampaignID: env.campaign.ID, Title: "Why us", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(question, models.ShortAnswerSpec{}, nil))

	// Age the application so the touch is observable.
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, env.db.Model(&models.Application{}).
		Where("id = ?", env.app.ID).
		Update("updated_at", past).Error)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.TextAnswer{Text: "Because."}))

	var app models.Application
	require.NoError(t, env.db.First(&app, env.app.ID).Error)
	require.True(t, app.UpdatedAt.After(past.Add(time.Hour)))
}

func TestAnswerDeleteRemovesSubsidiaries(t *testing.T) {
	env := setupRepoTestEnv(t)
	answerRepo := NewAnswerRepository(env.db)

	question, ids := createOptionQuestion(t, env, models.VariantMultiSelect)

	answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: question.ID}
	require.NoError(t, answerRepo.Create(answer, models.SelectionAnswer{OptionIDs: ids}))

	require.NoError(t, answerRepo.Delete(answer.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.AnswerOption{}).Where("answer_id = ?", answer.ID).Count(&count).Error)
	require.Zero(t, count)

	require.NoError(t, env.db.Model(&models.Answer{}).Where("id = ?", answer.ID).Count(&count).Error)
	require.Zero(t, count)
}

// The ordering column must not be a SQL reserved word: the order clause is
// emitted as raw SQL, so the dialector never quotes it ("rank" would break
// MySQL 8 reassembly while passing on sqlite and postgres).
func TestAnswerOptionOrderingColumn(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAnswerRepository(db)

	answerRows := sqlmock.NewRows([]string{"id", "application_id", "question_id", "variant"}).
		AddRow(5, 1, 2, string(models.VariantRanking))
	mock.ExpectQuery(`SELECT (.+) FROM "answers" WHERE (.+)`).
		WithArgs(5, 1).
		WillReturnRows(answerRows)

	optionRows := sqlmock.NewRows([]string{"id", "answer_id", "question_option_id", "position"}).
		AddRow(1, 5, 30, 1).
		AddRow(2, 5, 10, 2).
		AddRow(3, 5, 20, 3)
	mock.ExpectQuery(`SELECT (.+) FROM "answer_options" WHERE answer_id = (.+) ORDER BY position ASC`).
		WithArgs(5).
		WillReturnRows(optionRows)

	_, payload, err := repo.FindByID(5)
	require.NoError(t, err)
	require.Equal(t, models.RankingAnswer{OptionIDs: []uint64{30, 10, 20}}, payload)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerListByApplicationAndRole(t *testing.T) {
	env := setupRepoTestEnv(t)
	questionRepo := NewQuestionRepository(env.db)
	answerRepo := NewAnswerRepository(env.db)

	otherRole := models.Role{CampaignID: env.campaign.ID, Name: "Frontend Engineer", MinAvailable: 1, MaxAvailable: 1}
	require.NoError(t, env.db.Create(&otherRole).Error)

	common := &models.Question{CampaignID: env.campaign.ID, Title: "Common", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(common, models.ShortAnswerSpec{}, nil))

	scoped := &models.Question{CampaignID: env.campaign.ID, Title: "Backend only", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(scoped, models.ShortAnswerSpec{}, []uint64{env.role.ID}))

	foreign := &models.Question{CampaignID: env.campaign.ID, Title: "Frontend only", MaxBytes: 4096}
	require.NoError(t, questionRepo.Create(foreign, models.ShortAnswerSpec{}, []uint64{otherRole.ID}))

	for _, q := range []*models.Question{common, scoped, foreign} {
		answer := &models.Answer{ApplicationID: env.app.ID, QuestionID: q.ID}
		require.NoError(t, answerRepo.Create(answer, models.TextAnswer{Text: q.Title}))
	}

	visible, err := answerRepo.ListByApplicationAndRole(env.app.ID, env.role.ID)
	require.NoError(t, err)

	texts := make([]string, len(visible))
	for i, a := range visible {
		texts[i] = a.Payload.(models.TextAnswer).Text
	}
	require.ElementsMatch(t, []string{"Common", "Backend only"}, texts)

	all, err := answerRepo.ListByApplication(env.app.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
