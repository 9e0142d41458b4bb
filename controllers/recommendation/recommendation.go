package recommendationController

import (
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"
	"studyplanner/services"

	"github.com/gofiber/fiber/v2"
)

// loadUserModuleData fetches the user's enrollment history in the shape the
// scoring functions consume.
func loadUserModuleData(userID uint) ([]models.UserModule, []services.UserModuleData, error) {
	var enrollments []models.UserModule
	err := database.Database.Db.Where("user_id = ?", userID).Find(&enrollments).Error
	if err != nil {
		return nil, nil, err
	}

	data := make([]services.UserModuleData, 0, len(enrollments))
	for _, enrollment := range enrollments {
		data = append(data, services.UserModuleData{
			ModulePool: enrollment.ModulePool,
			Status:     enrollment.Status,
			Grade:      enrollment.Grade,
		})
	}
	return enrollments, data, nil
}

// GetModuleRecommendations scores the catalog against the user's history and
// returns the top recommendations within the credit limit.
func GetModuleRecommendations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRecommendation").(*struct {
		TargetSemester   string `json:"target_semester"`
		MaxCredits       int    `json:"max_credits"`
		FocusArea        string `json:"focus_area"`
		IncludeCompleted bool   `json:"include_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	_, userData, err := loadUserModuleData(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var catalog []models.Module
	if err := database.Database.Db.Order("pool").Find(&catalog).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	available := services.FilterCandidateModules(catalog, userData, reqData.IncludeCompleted, reqData.FocusArea)

	recommendations := services.CalculateModuleRecommendations(available, userData, services.RecommendationOptions{
		TargetSemester: reqData.TargetSemester,
		MaxCredits:     reqData.MaxCredits,
		FocusArea:      reqData.FocusArea,
	})

	limited, totalCredits := services.ApplyCreditLimit(recommendations, reqData.MaxCredits)
	if len(limited) > 10 {
		limited = limited[:10]
	}

	averageGrade := services.CalculateAverageGrade(userData)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recommendations generated successfully!", fiber.Map{
		"recommendations": limited,
		"metadata": fiber.Map{
			"total_candidates": len(available),
			"total_credits":    totalCredits,
			"max_credits":      reqData.MaxCredits,
			"focus_area":       reqData.FocusArea,
			"user_progress":    len(userData),
			"average_grade":    averageGrade,
		},
	})
}

// DistributeStudyPlan bin-packs the modules of a study plan into semester
// buckets.
func DistributeStudyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDistribution").(*struct {
		StudyPlanID           uint `json:"study_plan_id"`
		SemesterCount         *int `json:"semester_count"`
		MaxCreditsPerSemester *int `json:"max_credits_per_semester"`
		PrioritizeEasyModules bool `json:"prioritize_easy_modules"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var plan models.StudyPlan
	if err := database.Database.Db.Where("id = ? AND user_id = ?", reqData.StudyPlanID, userID).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	var planModules []models.StudyPlanModule
	if err := database.Database.Db.Where("study_plan_id = ?", plan.ID).Preload("Module").Find(&planModules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plan modules!", nil)
	}

	modulesList := make([]models.Module, 0, len(planModules))
	totalCredits := 0
	for _, planModule := range planModules {
		modulesList = append(modulesList, planModule.Module)
		totalCredits += planModule.Module.Credits
	}

	opts := services.DistributionOptions{
		SemesterCount:         6,
		MaxCreditsPerSemester: 15,
		PrioritizeEasyModules: reqData.PrioritizeEasyModules,
	}
	if reqData.SemesterCount != nil {
		opts.SemesterCount = *reqData.SemesterCount
	}
	if reqData.MaxCreditsPerSemester != nil {
		opts.MaxCreditsPerSemester = *reqData.MaxCreditsPerSemester
	}

	distribution := services.OptimizeStudyPlanDistribution(modulesList, opts)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plan distributed successfully!", fiber.Map{
		"study_plan":   plan,
		"distribution": distribution,
		"metadata": fiber.Map{
			"total_modules":            len(modulesList),
			"total_credits":            totalCredits,
			"semester_count":           opts.SemesterCount,
			"max_credits_per_semester": opts.MaxCreditsPerSemester,
			"prioritize_easy_modules":  opts.PrioritizeEasyModules,
		},
	})
}

// GetStudyInsights derives advisory findings from the user's history.
func GetStudyInsights(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	_, userData, err := loadUserModuleData(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var planCount int64
	if err := database.Database.Db.Model(&models.StudyPlan{}).Where("user_id = ? AND is_active = ?", userID, true).Count(&planCount).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch study plans!", nil)
	}

	insights := services.GenerateStudyInsights(userData, int(planCount))
	averageGrade := services.CalculateAverageGrade(userData)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study insights generated successfully!", fiber.Map{
		"insights": insights,
		"metadata": fiber.Map{
			"total_enrollments": len(userData),
			"study_plans":       planCount,
			"average_grade":     averageGrade,
		},
	})
}
