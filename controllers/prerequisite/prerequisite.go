package prerequisiteController

import (
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"
	"studyplanner/services"

	"github.com/gofiber/fiber/v2"
)

// prerequisiteWithModule pairs an edge with the module it references.
type prerequisiteWithModule struct {
	Prerequisite models.ModulePrerequisite `json:"prerequisite"`
	Module       models.Module             `json:"module"`
}

// GetPrerequisites lists the direct prerequisite edges of a module together
// with the prerequisite modules' details.
func GetPrerequisites(c *fiber.Ctx) error {
	pool := c.Locals("modulePool").(string)

	var module models.Module
	if err := database.Database.Db.Where("pool = ?", pool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var edges []models.ModulePrerequisite
	if err := database.Database.Db.Where("module_pool = ?", pool).Find(&edges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch prerequisites!", nil)
	}

	prerequisites := make([]prerequisiteWithModule, 0, len(edges))
	for _, edge := range edges {
		var prereqModule models.Module
		if err := database.Database.Db.Where("pool = ?", edge.PrerequisitePool).First(&prereqModule).Error; err != nil {
			continue
		}
		prerequisites = append(prerequisites, prerequisiteWithModule{
			Prerequisite: edge,
			Module:       prereqModule,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prerequisites fetched successfully!", fiber.Map{
		"module":        module,
		"prerequisites": prerequisites,
	})
}

// GetDependents lists the modules that declare this module as a prerequisite.
func GetDependents(c *fiber.Ctx) error {
	pool := c.Locals("modulePool").(string)

	var module models.Module
	if err := database.Database.Db.Where("pool = ?", pool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var edges []models.ModulePrerequisite
	if err := database.Database.Db.Where("prerequisite_pool = ?", pool).Find(&edges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dependents!", nil)
	}

	dependents := make([]prerequisiteWithModule, 0, len(edges))
	for _, edge := range edges {
		var dependentModule models.Module
		if err := database.Database.Db.Where("pool = ?", edge.ModulePool).First(&dependentModule).Error; err != nil {
			continue
		}
		dependents = append(dependents, prerequisiteWithModule{
			Prerequisite: edge,
			Module:       dependentModule,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dependents fetched successfully!", fiber.Map{
		"module":     module,
		"dependents": dependents,
	})
}

// GetPrerequisiteStatus reports per-edge fulfillment for the authenticated
// user plus summary counts.
func GetPrerequisiteStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pool := c.Locals("modulePool").(string)

	var edges []models.ModulePrerequisite
	if err := database.Database.Db.Where("module_pool = ?", pool).Find(&edges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch prerequisites!", nil)
	}

	completed, err := services.GetCompletedModulePools(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed modules!", nil)
	}

	type edgeStatus struct {
		Prerequisite models.ModulePrerequisite `json:"prerequisite"`
		IsFulfilled  bool                      `json:"is_fulfilled"`
	}

	statuses := make([]edgeStatus, 0, len(edges))
	totalFulfilled := 0
	requiredCount := 0
	requiredFulfilled := 0
	for _, edge := range edges {
		fulfilled := completed[edge.PrerequisitePool]
		if fulfilled {
			totalFulfilled++
		}
		if edge.IsRequired {
			requiredCount++
			if fulfilled {
				requiredFulfilled++
			}
		}
		statuses = append(statuses, edgeStatus{Prerequisite: edge, IsFulfilled: fulfilled})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prerequisite status fetched successfully!", fiber.Map{
		"module_pool":   pool,
		"can_enroll":    requiredFulfilled == requiredCount,
		"prerequisites": statuses,
		"summary": fiber.Map{
			"total":              len(edges),
			"required":           requiredCount,
			"fulfilled":          totalFulfilled,
			"required_fulfilled": requiredFulfilled,
		},
	})
}

// CreatePrerequisite creates a new prerequisite edge (admin only).
func CreatePrerequisite(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPrerequisite").(*struct {
		ModulePool       string `json:"module_pool"`
		PrerequisitePool string `json:"prerequisite_pool"`
		IsRequired       *bool  `json:"is_required"`
		Description      string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Verify both modules exist
	var module models.Module
	if err := db.Where("pool = ?", reqData.ModulePool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Target module not found!", nil)
	}
	var prereqModule models.Module
	if err := db.Where("pool = ?", reqData.PrerequisitePool).First(&prereqModule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prerequisite module not found!", nil)
	}

	// Check if prerequisite relationship already exists
	var existing models.ModulePrerequisite
	if err := db.Where("module_pool = ? AND prerequisite_pool = ?", reqData.ModulePool, reqData.PrerequisitePool).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Prerequisite relationship already exists!", nil)
	}

	isRequired := true
	if reqData.IsRequired != nil {
		isRequired = *reqData.IsRequired
	}

	prerequisite := models.ModulePrerequisite{
		ModulePool:       reqData.ModulePool,
		PrerequisitePool: reqData.PrerequisitePool,
		IsRequired:       isRequired,
		Description:      reqData.Description,
	}
	if err := db.Create(&prerequisite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create prerequisite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Prerequisite created successfully!", fiber.Map{
		"prerequisite":        prerequisite,
		"module":              module,
		"prerequisite_module": prereqModule,
	})
}

// UpdatePrerequisite updates an edge's required flag or description (admin only).
func UpdatePrerequisite(c *fiber.Ctx) error {
	prerequisiteID := c.Locals("prerequisiteID").(int)

	reqData, ok := c.Locals("validatedPrerequisiteUpdate").(*struct {
		IsRequired  *bool   `json:"is_required"`
		Description *string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var prerequisite models.ModulePrerequisite
	if err := database.Database.Db.Where("id = ?", prerequisiteID).First(&prerequisite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prerequisite relationship not found!", nil)
	}

	if reqData.IsRequired != nil {
		prerequisite.IsRequired = *reqData.IsRequired
	}
	if reqData.Description != nil {
		prerequisite.Description = *reqData.Description
	}

	if err := database.Database.Db.Save(&prerequisite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update prerequisite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prerequisite updated successfully!", prerequisite)
}

// DeletePrerequisite removes a prerequisite edge (admin only).
func DeletePrerequisite(c *fiber.Ctx) error {
	prerequisiteID := c.Locals("prerequisiteID").(int)

	result := database.Database.Db.Where("id = ?", prerequisiteID).Delete(&models.ModulePrerequisite{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete prerequisite!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prerequisite relationship not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prerequisite relationship deleted successfully!", nil)
}

// SuggestEnrollmentOrder returns a leveled enrollment order for the
// requested modules.
func SuggestEnrollmentOrder(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSuggestOrder").(*struct {
		ModulePools []string `json:"module_pools"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	suggestions, err := services.GetSuggestedEnrollmentOrder(database.Database.Db, reqData.ModulePools)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute enrollment order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment order suggested successfully!", fiber.Map{
		"suggestions":   suggestions,
		"total_modules": len(reqData.ModulePools),
	})
}

// ValidateBatch validates prerequisites for several modules at once, e.g.
// for checking a whole study plan.
func ValidateBatch(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSuggestOrder").(*struct {
		ModulePools []string `json:"module_pools"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	results := services.ValidateMultiplePrerequisites(database.Database.Db, userID, reqData.ModulePools)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prerequisites validated successfully!", fiber.Map{
		"results": results,
	})
}
