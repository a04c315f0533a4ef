package access

import (
	"testing"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type resolverTestEnv struct {
	db       *gorm.DB
	resolver *Resolver

	org      models.Organisation
	campaign models.Campaign
	role     models.Role
	app      models.Application
	answer   models.Answer
}

func setupResolverTestEnv(t *testing.T) *resolverTestEnv {
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

	env := &resolverTestEnv{db: db, resolver: NewResolver(db)}

	env.org = models.Organisation{Name: "Acme", InviteCode: "acme-invite"}
	require.NoError(t, db.Create(&env.org).Error)

	env.campaign = models.Campaign{
		OrganisationID: env.org.ID,
		Name:           "Graduate Intake",
		StartsAt:       time.Now().Add(-time.Hour),
		EndsAt:         time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(&env.campaign).Error)

	env.role = models.Role{CampaignID: env.campaign.ID, Name: "Backend Engineer", MinAvailable: 1, MaxAvailable: 2}
	require.NoError(t, db.Create(&env.role).Error)

	applicant := env.createUser(t, "applicant@example.com", false)
	env.app = models.Application{RoleID: env.role.ID, UserID: applicant.ID}
	require.NoError(t, db.Create(&env.app).Error)

	env.answer = models.Answer{ApplicationID: env.app.ID, QuestionID: 1, Variant: models.VariantShortAnswer}
	require.NoError(t, db.Create(&env.answer).Error)

	return env
}

func (env *resolverTestEnv) createUser(t *testing.T, email string, superuser bool) models.User {
	t.Helper()
	user := models.User{Email: email, DisplayName: email, PasswordHash: "hashed", Superuser: superuser}
	require.NoError(t, env.db.Create(&user).Error)
	return user
}

func (env *resolverTestEnv) addMember(t *testing.T, userID uint64, level models.AdminLevel) {
	t.Helper()
	member := models.Membership{
		OrganisationID: env.org.ID,
		UserID:         userID,
		AdminLevel:     level,
		JoinedAt:       time.Now(),
	}
	require.NoError(t, env.db.Create(&member).Error)
}

func TestResolverMembershipLevel(t *testing.T) {
	env := setupResolverTestEnv(t)

	director := env.createUser(t, "director@example.com", false)
	env.addMember(t, director.ID, models.AdminLevelDirector)

	check := env.resolver.Resolve(KindOrganisation, env.org.ID, director.ID)
	level, ok := check.Level()
	require.True(t, ok)
	require.Equal(t, models.AdminLevelDirector, level)
	require.NoError(t, check.IsDirectorOrAbove().Authorize())
	require.ErrorIs(t, check.IsAdmin().Authorize(), ErrDenied)
}

func TestResolverWalksOwnershipChain(t *testing.T) {
	env := setupResolverTestEnv(t)

	member := env.createUser(t, "reviewer@example.com", false)
	env.addMember(t, member.ID, models.AdminLevelReadOnly)

	// Membership on the organisation resolves through every descendant.
	for _, tc := range []struct {
		kind ResourceKind
		id   uint64
	}{
		{KindCampaign, env.campaign.ID},
		{KindRole, env.role.ID},
		{KindApplication, env.app.ID},
		{KindAnswer, env.answer.ID},
	} {
		check := env.resolver.Resolve(tc.kind, tc.id, member.ID)
		level, ok := check.Level()
		require.True(t, ok, "kind %s", tc.kind)
		require.Equal(t, models.AdminLevelReadOnly, level)
	}
}

func TestResolverNonMemberDenied(t *testing.T) {
	env := setupResolverTestEnv(t)

	outsider := env.createUser(t, "outsider@example.com", false)

	check := env.resolver.Resolve(KindCampaign, env.campaign.ID, outsider.ID)
	require.ErrorIs(t, check.Authorize(), ErrDenied)
}

func TestResolverMissingResourceDenied(t *testing.T) {
	env := setupResolverTestEnv(t)

	admin := env.createUser(t, "admin@example.com", false)
	env.addMember(t, admin.ID, models.AdminLevelAdmin)

	// A missing resource and an insufficient level yield the same error.
	missing := env.resolver.Resolve(KindCampaign, 99999, admin.ID)
	require.ErrorIs(t, missing.Authorize(), ErrDenied)
}

func TestResolverSuperuserBypass(t *testing.T) {
	env := setupResolverTestEnv(t)

	su := env.createUser(t, "root@example.com", true)

	// No membership anywhere, still resolves at Admin.
	check := env.resolver.Resolve(KindAnswer, env.answer.ID, su.ID)
	require.True(t, check.Superuser())
	require.NoError(t, check.IsAdmin().Authorize())
}

func TestResolverBrokenChainDenied(t *testing.T) {
	env := setupResolverTestEnv(t)

	member := env.createUser(t, "member@example.com", false)
	env.addMember(t, member.ID, models.AdminLevelAdmin)

	// Soft-deleting the campaign breaks the answer's chain to the
	// organisation, so even an Admin member is denied.
	require.NoError(t, env.db.Delete(&models.Campaign{}, env.campaign.ID).Error)

	check := env.resolver.Resolve(KindAnswer, env.answer.ID, member.ID)
	require.ErrorIs(t, check.Authorize(), ErrDenied)
}

func TestResolverPublishedOverrideScenarios(t *testing.T) {
	env := setupResolverTestEnv(t)

	outsider := env.createUser(t, "visitor@example.com", false)

	// Unpublished campaign: outsider denied.
	check := env.resolver.Resolve(KindCampaign, env.campaign.ID, outsider.ID)
	err := check.AtLeast(models.AdminLevelReadOnly).Or(env.campaign.Published).Authorize()
	require.ErrorIs(t, err, ErrDenied)

	// Publishing flips the same composed check to allowed.
	require.NoError(t, env.db.Model(&models.Campaign{}).
		Where("id = ?", env.campaign.ID).
		Update("published", true).Error)

	var published models.Campaign
	require.NoError(t, env.db.First(&published, env.campaign.ID).Error)

	check = env.resolver.Resolve(KindCampaign, published.ID, outsider.ID)
	err = check.AtLeast(models.AdminLevelReadOnly).Or(published.Published).Authorize()
	require.NoError(t, err)
}
