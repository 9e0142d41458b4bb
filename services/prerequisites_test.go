package services

import (
	"fmt"
	"studyplanner/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	)
	require.NoError(t, err)

	return db
}

func createModule(t *testing.T, db *gorm.DB, pool, code string, credits int, category string) {
	t.Helper()
	module := models.Module{Pool: pool, Code: code, Name: pool, Credits: credits, Category: category}
	require.NoError(t, db.Create(&module).Error)
}

func createEdge(t *testing.T, db *gorm.DB, modulePool, prereqPool string, required bool) {
	t.Helper()
	edge := models.ModulePrerequisite{
		ModulePool:       modulePool,
		PrerequisitePool: prereqPool,
		IsRequired:       required,
	}
	require.NoError(t, db.Create(&edge).Error)
}

func createUser(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	user := models.User{Name: "Test Student", Email: fmt.Sprintf("%s@example.com", t.Name()), Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func completeModule(t *testing.T, db *gorm.DB, userID uint, pool string) {
	t.Helper()
	completedAt := time.Now()
	enrollment := models.UserModule{
		UserID:      userID,
		ModulePool:  pool,
		Status:      models.StatusCompleted,
		CompletedAt: &completedAt,
	}
	require.NoError(t, db.Create(&enrollment).Error)
}

func TestValidatePrerequisitesNoPrerequisites(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")

	result, err := ValidatePrerequisites(db, userID, "Mathematik 1")
	require.NoError(t, err)

	assert.True(t, result.CanEnroll)
	assert.Empty(t, result.MissingPrerequisites)
	assert.Empty(t, result.WarningPrerequisites)
	assert.Equal(t, "No prerequisites required for this module.", result.Message)
}

func TestValidatePrerequisitesMissingRequired(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)

	result, err := ValidatePrerequisites(db, userID, "Mathematik 2")
	require.NoError(t, err)

	assert.False(t, result.CanEnroll)
	require.Len(t, result.MissingPrerequisites, 1)
	assert.Equal(t, "Mathematik 1", result.MissingPrerequisites[0].ModulePool)
	assert.True(t, result.MissingPrerequisites[0].IsRequired)
	assert.Equal(t, "Cannot enroll. You must complete 1 required prerequisite(s) first.", result.Message)
}

func TestValidatePrerequisitesOptionalOnly(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Grundlagen der Data Science", "INF2101", 6, "INF")
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createEdge(t, db, "Grundlagen der Data Science", "Mathematik 1", false)

	result, err := ValidatePrerequisites(db, userID, "Grundlagen der Data Science")
	require.NoError(t, err)

	assert.True(t, result.CanEnroll)
	assert.Empty(t, result.MissingPrerequisites)
	require.Len(t, result.WarningPrerequisites, 1)
	assert.Equal(t, "You can enroll, but consider completing 1 optional prerequisite(s) first.", result.Message)
}

func TestValidatePrerequisitesAllFulfilled(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)
	completeModule(t, db, userID, "Mathematik 1")

	result, err := ValidatePrerequisites(db, userID, "Mathematik 2")
	require.NoError(t, err)

	assert.True(t, result.CanEnroll)
	assert.Empty(t, result.MissingPrerequisites)
	assert.Empty(t, result.WarningPrerequisites)
	assert.Equal(t, "All prerequisites fulfilled. You can enroll in this module.", result.Message)
}

func TestValidatePrerequisitesInProgressDoesNotFulfill(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)

	enrollment := models.UserModule{UserID: userID, ModulePool: "Mathematik 1", Status: models.StatusInProgress}
	require.NoError(t, db.Create(&enrollment).Error)

	result, err := ValidatePrerequisites(db, userID, "Mathematik 2")
	require.NoError(t, err)

	assert.False(t, result.CanEnroll)
	require.Len(t, result.MissingPrerequisites, 1)
}

func TestOptionalEdgePersistsAsOptional(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Grundlagen der Data Science", "INF2101", 6, "INF")
	createEdge(t, db, "Grundlagen der Data Science", "Mathematik 1", false)

	var edge models.ModulePrerequisite
	require.NoError(t, db.Where("module_pool = ?", "Grundlagen der Data Science").First(&edge).Error)
	assert.False(t, edge.IsRequired)
}

func TestValidatePrerequisitesWrapsSentinelOnStoreFailure(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")

	require.NoError(t, db.Migrator().DropTable(&models.ModulePrerequisite{}))

	result, err := ValidatePrerequisites(db, userID, "Mathematik 1")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrPrerequisiteCheckFailed)
}

func TestGetCompletedModulePools(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Zeitmanagement", "GS1001", 3, "GS")
	completeModule(t, db, userID, "Mathematik 1")

	enrollment := models.UserModule{UserID: userID, ModulePool: "Zeitmanagement", Status: models.StatusPlanned}
	require.NoError(t, db.Create(&enrollment).Error)

	completed, err := GetCompletedModulePools(db, userID)
	require.NoError(t, err)

	assert.True(t, completed["Mathematik 1"])
	assert.False(t, completed["Zeitmanagement"])
	assert.Len(t, completed, 1)
}

func TestGetPrerequisiteChain(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Statistik und Datenanalyse", "MAT2101", 6, "MAT")
	createModule(t, db, "Grundlagen der Data Science", "INF2101", 6, "INF")
	createModule(t, db, "Machine Learning", "INF2201", 6, "INF")
	createEdge(t, db, "Machine Learning", "Statistik und Datenanalyse", true)
	createEdge(t, db, "Machine Learning", "Grundlagen der Data Science", false)

	chain, err := GetPrerequisiteChain(db, "Machine Learning", nil)
	require.NoError(t, err)

	assert.Equal(t, "Machine Learning", chain.ModulePool)
	require.Len(t, chain.Prerequisites, 2)

	byPool := make(map[string]ChainPrerequisite)
	for _, prereq := range chain.Prerequisites {
		byPool[prereq.PrerequisitePool] = prereq
	}
	assert.True(t, byPool["Statistik und Datenanalyse"].IsRequired)
	assert.False(t, byPool["Grundlagen der Data Science"].IsRequired)
	assert.Equal(t, "MAT2101", byPool["Statistik und Datenanalyse"].Module.Code)
	assert.Equal(t, 6, byPool["Statistik und Datenanalyse"].Module.Credits)
}

func TestGetPrerequisiteChainCycleTruncates(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Modul A", "A1", 6, "INF")
	createModule(t, db, "Modul B", "B1", 6, "INF")
	createEdge(t, db, "Modul A", "Modul B", true)
	createEdge(t, db, "Modul B", "Modul A", true)

	visited := make(map[string]bool)
	chain, err := GetPrerequisiteChain(db, "Modul A", visited)
	require.NoError(t, err)
	require.Len(t, chain.Prerequisites, 1)

	// The second visit to an already seen pool returns an empty list
	again, err := GetPrerequisiteChain(db, "Modul A", visited)
	require.NoError(t, err)
	assert.Empty(t, again.Prerequisites)
}

func TestValidateMultiplePrerequisites(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)

	results := ValidateMultiplePrerequisites(db, userID, []string{"Mathematik 1", "Mathematik 2"})
	require.Len(t, results, 2)

	assert.True(t, results["Mathematik 1"].CanEnroll)
	assert.False(t, results["Mathematik 2"].CanEnroll)
}

func TestValidateMultiplePrerequisitesDegradesOnFailure(t *testing.T) {
	db := newTestDB(t)
	userID := createUser(t, db)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")

	// Break the store so every lookup fails
	require.NoError(t, db.Migrator().DropTable(&models.ModulePrerequisite{}))

	results := ValidateMultiplePrerequisites(db, userID, []string{"Mathematik 1"})
	require.Len(t, results, 1)

	assert.False(t, results["Mathematik 1"].CanEnroll)
	assert.Equal(t, "Error validating prerequisites", results["Mathematik 1"].Message)
}

func TestGetSuggestedEnrollmentOrderLevels(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createModule(t, db, "Machine Learning", "INF2201", 6, "INF")
	createModule(t, db, "Statistik und Datenanalyse", "MAT2101", 6, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)
	createEdge(t, db, "Machine Learning", "Statistik und Datenanalyse", true)

	suggestions, err := GetSuggestedEnrollmentOrder(db, []string{
		"Machine Learning", "Mathematik 2", "Mathematik 1", "Statistik und Datenanalyse",
	})
	require.NoError(t, err)
	require.Len(t, suggestions, 4)

	byPool := make(map[string]EnrollmentSuggestion)
	for _, s := range suggestions {
		byPool[s.ModulePool] = s
	}

	assert.Equal(t, 1, byPool["Mathematik 1"].Order)
	assert.Equal(t, "No prerequisites required", byPool["Mathematik 1"].Reasoning)
	assert.Equal(t, 1, byPool["Statistik und Datenanalyse"].Order)
	assert.Equal(t, 2, byPool["Mathematik 2"].Order)
	assert.Equal(t, "Depends on 1 prerequisite(s)", byPool["Mathematik 2"].Reasoning)
	assert.Equal(t, 2, byPool["Machine Learning"].Order)

	// Result is sorted ascending by order
	for i := 1; i < len(suggestions); i++ {
		assert.LessOrEqual(t, suggestions[i-1].Order, suggestions[i].Order)
	}
}

func TestGetSuggestedEnrollmentOrderCountsRequiredOnly(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Statistik und Datenanalyse", "MAT2101", 6, "MAT")
	createModule(t, db, "Grundlagen der Data Science", "INF2101", 6, "INF")
	createModule(t, db, "Machine Learning", "INF2201", 6, "INF")
	createEdge(t, db, "Machine Learning", "Statistik und Datenanalyse", true)
	createEdge(t, db, "Machine Learning", "Grundlagen der Data Science", false)

	suggestions, err := GetSuggestedEnrollmentOrder(db, []string{
		"Machine Learning", "Statistik und Datenanalyse", "Grundlagen der Data Science",
	})
	require.NoError(t, err)

	byPool := make(map[string]EnrollmentSuggestion)
	for _, s := range suggestions {
		byPool[s.ModulePool] = s
	}

	// Both edges must be ordered first, but only the required one counts
	assert.Equal(t, 2, byPool["Machine Learning"].Order)
	assert.Equal(t, "Depends on 1 prerequisite(s)", byPool["Machine Learning"].Reasoning)
}

func TestGetSuggestedEnrollmentOrderCycleFallback(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Modul A", "A1", 6, "INF")
	createModule(t, db, "Modul B", "B1", 6, "INF")
	createEdge(t, db, "Modul A", "Modul B", true)
	createEdge(t, db, "Modul B", "Modul A", true)

	suggestions, err := GetSuggestedEnrollmentOrder(db, []string{"Modul A", "Modul B"})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	for _, s := range suggestions {
		assert.Equal(t, 2, s.Order)
		assert.Equal(t, "Complex dependency structure", s.Reasoning)
	}
}

func TestGetSuggestedEnrollmentOrderUnknownPrerequisite(t *testing.T) {
	db := newTestDB(t)
	createModule(t, db, "Mathematik 1", "MAT1001", 9, "MAT")
	createModule(t, db, "Mathematik 2", "MAT1002", 9, "MAT")
	createEdge(t, db, "Mathematik 2", "Mathematik 1", true)

	// Mathematik 1 is not part of the requested set, so Mathematik 2 can
	// never become assignable and falls into the fallback bucket.
	suggestions, err := GetSuggestedEnrollmentOrder(db, []string{"Mathematik 2"})
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	assert.Equal(t, "Complex dependency structure", suggestions[0].Reasoning)
}
