package moduleController

import (
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"

	"github.com/gofiber/fiber/v2"
)

// GetAllModules lists catalog modules with optional pool/category/search
// filters and pagination.
func GetAllModules(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModuleList").(*struct {
		Pool     string `json:"pool"`
		Search   string `json:"search"`
		Category string `json:"category"`
		Limit    int    `json:"limit"`
		Offset   int    `json:"offset"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db.Model(&models.Module{})

	if reqData.Pool != "" {
		db = db.Where("pool LIKE ?", "%"+reqData.Pool+"%")
	}
	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Search != "" {
		search := "%" + reqData.Search + "%"
		db = db.Where("name LIKE ? OR code LIKE ? OR pool LIKE ?", search, search, search)
	}

	var modules []models.Module
	if err := db.Order("pool").Limit(reqData.Limit).Offset(reqData.Offset).Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	response := map[string]interface{}{
		"modules": modules,
		"pagination": map[string]interface{}{
			"limit":  reqData.Limit,
			"offset": reqData.Offset,
			"total":  len(modules),
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", response)
}

// GetModule fetches a single catalog module by pool.
func GetModule(c *fiber.Ctx) error {
	pool, ok := c.Locals("modulePool").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
	}

	var module models.Module
	if err := database.Database.Db.Where("pool = ?", pool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", module)
}

// GetCategories lists the distinct module categories.
func GetCategories(c *fiber.Ctx) error {
	var categories []string
	err := database.Database.Db.Model(&models.Module{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", fiber.Map{
		"categories": categories,
	})
}
