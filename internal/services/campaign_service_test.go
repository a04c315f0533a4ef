package services

import (
	"testing"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/perditionlabs/recruitd/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type campaignTestEnv struct {
	db      *gorm.DB
	service *CampaignService
	orgID   uint64
}

func setupCampaignTestEnv(t *testing.T) *campaignTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organisation{},
		&models.Campaign{},
		&models.Role{},
		&models.Application{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	org := models.Organisation{Name: "Acme", InviteCode: "acme-invite"}
	require.NoError(t, db.Create(&org).Error)

	return &campaignTestEnv{
		db:      db,
		service: NewCampaignService(repository.NewCampaignRepository(db), repository.NewRoleRepository(db)),
		orgID:   org.ID,
	}
}

func (env *campaignTestEnv) createCampaign(t *testing.T, name string, published bool, startsAt, endsAt time.Time) *models.Campaign {
	t.Helper()

	campaign, err := env.service.CreateCampaign(CreateCampaignInput{
		OrganisationID: env.orgID,
		Name:           name,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
	})
	require.NoError(t, err)

	if published {
		require.NoError(t, env.db.Model(&models.Campaign{}).
			Where("id = ?", campaign.ID).
			Update("published", true).Error)
	}
	return campaign
}

func TestCreateCampaignValidatesWindow(t *testing.T) {
	env := setupCampaignTestEnv(t)

	now := time.Now()
	_, err := env.service.CreateCampaign(CreateCampaignInput{
		OrganisationID: env.orgID,
		Name:           "Backwards",
		StartsAt:       now.Add(time.Hour),
		EndsAt:         now,
	})
	require.ErrorIs(t, err, ErrInvalidTimeWindow)

	_, err = env.service.CreateCampaign(CreateCampaignInput{
		OrganisationID: env.orgID,
		Name:           "   ",
		StartsAt:       now,
		EndsAt:         now.Add(time.Hour),
	})
	require.ErrorIs(t, err, ErrInvalidCampaignName)
}

func TestUpdateCampaignRevalidatesWindow(t *testing.T) {
	env := setupCampaignTestEnv(t)

	now := time.Now()
	campaign := env.createCampaign(t, "Intake", false, now, now.Add(time.Hour))

	// Moving starts_at past the existing ends_at must be rejected.
	badStart := now.Add(2 * time.Hour)
	_, err := env.service.UpdateCampaign(campaign.ID, UpdateCampaignInput{StartsAt: &badStart})
	require.ErrorIs(t, err, ErrInvalidTimeWindow)

	newEnd := now.Add(3 * time.Hour)
	updated, err := env.service.UpdateCampaign(campaign.ID, UpdateCampaignInput{
		StartsAt: &badStart,
		EndsAt:   &newEnd,
	})
	require.NoError(t, err)
	require.True(t, updated.StartsAt.Before(updated.EndsAt))
}

func TestListOpenCampaignsPaginates(t *testing.T) {
	env := setupCampaignTestEnv(t)

	now := time.Now()
	for _, name := range []string{"Open A", "Open B", "Open C"} {
		env.createCampaign(t, name, true, now.Add(-time.Hour), now.Add(time.Hour))
	}
	// Neither draft nor closed campaigns are listed.
	env.createCampaign(t, "Draft", false, now.Add(-time.Hour), now.Add(time.Hour))
	env.createCampaign(t, "Closed", true, now.Add(-2*time.Hour), now.Add(-time.Hour))

	page1, total, err := env.service.ListOpenCampaigns(now, utils.PaginationParams{Page: 1, Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page1, 2)

	page2, total, err := env.service.ListOpenCampaigns(now, utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page2, 1)
}

func TestUpdateRoleFinalised(t *testing.T) {
	env := setupCampaignTestEnv(t)

	now := time.Now()
	campaign := env.createCampaign(t, "Intake", true, now.Add(-time.Hour), now.Add(time.Hour))

	role, err := env.service.CreateRole(CreateRoleInput{
		CampaignID:   campaign.ID,
		Name:         "Backend Engineer",
		MinAvailable: 1,
		MaxAvailable: 2,
	})
	require.NoError(t, err)

	finalised := true
	_, err = env.service.UpdateRole(role.ID, UpdateRoleInput{Finalised: &finalised})
	require.NoError(t, err)

	// A finalised role rejects every edit except un-finalising.
	newName := "Renamed"
	_, err = env.service.UpdateRole(role.ID, UpdateRoleInput{Name: &newName})
	require.ErrorIs(t, err, ErrRoleFinalised)

	unfinalised := false
	_, err = env.service.UpdateRole(role.ID, UpdateRoleInput{Finalised: &unfinalised})
	require.NoError(t, err)

	updated, err := env.service.UpdateRole(role.ID, UpdateRoleInput{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
}

func TestCreateRoleValidatesCapacity(t *testing.T) {
	env := setupCampaignTestEnv(t)

	now := time.Now()
	campaign := env.createCampaign(t, "Intake", false, now, now.Add(time.Hour))

	_, err := env.service.CreateRole(CreateRoleInput{
		CampaignID:   campaign.ID,
		Name:         "Overbooked",
		MinAvailable: 5,
		MaxAvailable: 2,
	})
	require.ErrorIs(t, err, ErrInvalidCapacity)
}
