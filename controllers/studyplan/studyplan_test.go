package studyPlanController_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"studyplanner/config"
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"
	studyPlanRoutes "studyplanner/routers/studyPlanRoutes"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.ModulePrerequisite{},
		&models.UserModule{},
		&models.StudyPlan{},
		&models.StudyPlanModule{},
	)
	require.NoError(t, err)

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	studyPlanRoutes.SetupStudyPlanRoutes(app)
	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB) (uint, string) {
	t.Helper()

	user := models.User{
		Name:     "Test Student",
		Email:    fmt.Sprintf("%s@example.com", t.Name()),
		Role:     "USER",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user.ID, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func createTestPlan(t *testing.T, app *fiber.App, token string) uint {
	t.Helper()

	resp := doRequest(t, app, "POST", "/study-plan/", token, `{"name":"Erster Plan"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			ID uint `json:"ID"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotZero(t, envelope.Data.ID)
	return envelope.Data.ID
}

func TestPlanModuleRemoveAndReAdd(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := createTestUser(t, db)

	module := models.Module{Pool: "Zeitmanagement", Code: "GS1001", Name: "Zeitmanagement", Credits: 3, Category: "GS"}
	require.NoError(t, db.Create(&module).Error)

	planID := createTestPlan(t, app, token)
	modulesPath := fmt.Sprintf("/study-plan/%d/modules", planID)
	body := `{"module_pool":"Zeitmanagement"}`

	resp := doRequest(t, app, "POST", modulesPath, token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", modulesPath+"/"+url.PathEscape("Zeitmanagement"), token, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The slot must be free again after removal
	resp = doRequest(t, app, "POST", modulesPath, token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.StudyPlanModule{}).Where("study_plan_id = ?", planID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlanModuleDuplicateRejected(t *testing.T) {
	app, db := setupTestApp(t)
	_, token := createTestUser(t, db)

	module := models.Module{Pool: "Zeitmanagement", Code: "GS1001", Name: "Zeitmanagement", Credits: 3, Category: "GS"}
	require.NoError(t, db.Create(&module).Error)

	planID := createTestPlan(t, app, token)
	modulesPath := fmt.Sprintf("/study-plan/%d/modules", planID)
	body := `{"module_pool":"Zeitmanagement"}`

	resp := doRequest(t, app, "POST", modulesPath, token, body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doRequest(t, app, "POST", modulesPath, token, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
