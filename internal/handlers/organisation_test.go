package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/perditionlabs/recruitd/internal/constants"
	"github.com/perditionlabs/recruitd/internal/database"
	"github.com/perditionlabs/recruitd/internal/dto"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/perditionlabs/recruitd/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type organisationTestEnv struct {
	db         *gorm.DB
	handler    *OrganisationHandler
	orgService *services.OrganisationService
}

func setupOrganisationTestEnv(t *testing.T) organisationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organisation{},
		&models.Membership{},
		&models.Campaign{},
		&models.Role{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	orgRepo := repository.NewOrganisationRepository(db)
	orgService := services.NewOrganisationService(orgRepo)
	handler := NewOrganisationHandler(orgService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return organisationTestEnv{
		db:         db,
		handler:    handler,
		orgService: orgService,
	}
}

func orgTestContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createOrganisationTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{
		Email:        email,
		DisplayName:  "Test User",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestOrganisationHandler_CreateOrganisation(t *testing.T) {
	env := setupOrganisationTestEnv(t)

	user := createOrganisationTestUser(t, env.db, "owner@example.com")

	payload := map[string]string{"name": "New Org"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organisations", body, user.ID)

	env.handler.CreateOrganisation(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.OrganisationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["name"], response.Name)
	require.NotEmpty(t, response.InviteCode)
}

func TestOrganisationHandler_ListOrganisations(t *testing.T) {
	env := setupOrganisationTestEnv(t)

	user := createOrganisationTestUser(t, env.db, "member@example.com")

	_, err := env.orgService.CreateOrganisation(services.CreateOrganisationInput{
		Name:      "Org One",
		CreatorID: user.ID,
	})
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodGet, "/api/organisations", nil, user.ID)

	env.handler.ListOrganisations(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.OrganisationWithLevelDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orgs := response["organisations"]
	require.Len(t, orgs, 1)
	require.Equal(t, "Org One", orgs[0].OrganisationDTO.Name)
	require.Equal(t, models.AdminLevelAdmin, orgs[0].AdminLevel)
}

func TestOrganisationHandler_JoinOrganisation_InvalidCode(t *testing.T) {
	env := setupOrganisationTestEnv(t)

	user := createOrganisationTestUser(t, env.db, "joiner@example.com")

	payload := map[string]string{"invite_code": "UNKNOWN"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organisations/join", body, user.ID)

	env.handler.JoinOrganisation(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganisationHandler_JoinOrganisation(t *testing.T) {
	env := setupOrganisationTestEnv(t)

	owner := createOrganisationTestUser(t, env.db, "owner@example.com")
	joiner := createOrganisationTestUser(t, env.db, "joiner@example.com")

	org, err := env.orgService.CreateOrganisation(services.CreateOrganisationInput{
		Name:      "Joinable",
		CreatorID: owner.ID,
	})
	require.NoError(t, err)

	payload := map[string]string{"invite_code": org.InviteCode}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := orgTestContext(http.MethodPost, "/api/organisations/join", body, joiner.ID)

	env.handler.JoinOrganisation(c)

	require.Equal(t, http.StatusOK, w.Code)

	var membership models.Membership
	err = env.db.Where("organisation_id = ? AND user_id = ?", org.ID, joiner.ID).
		First(&membership).Error
	require.NoError(t, err)
	require.Equal(t, models.AdminLevelReadOnly, membership.AdminLevel)
}
