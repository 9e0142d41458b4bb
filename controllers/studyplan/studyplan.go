package studyPlanController

import (
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"
	"studyplanner/services"

	"github.com/gofiber/fiber/v2"
)

// findOwnedPlan loads a study plan scoped to its owner.
func findOwnedPlan(planID, userID uint) (*models.StudyPlan, error) {
	var plan models.StudyPlan
	err := database.Database.Db.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateStudyPlan creates a new study plan for the authenticated user.
func CreateStudyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPlan").(*struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		TargetSemester string `json:"target_semester"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	plan := models.StudyPlan{
		UserID:         userID,
		Name:           reqData.Name,
		Description:    reqData.Description,
		TargetSemester: reqData.TargetSemester,
		IsActive:       true,
	}
	if err := database.Database.Db.Create(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create study plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Study plan created successfully!", plan)
}

// GetMyStudyPlans lists the user's study plans, newest first. Inactive plans
// are hidden unless includeInactive=true.
func GetMyStudyPlans(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Where("user_id = ?", userID)
	if c.Query("includeInactive") != "true" {
		db = db.Where("is_active = ?", true)
	}

	var plans []models.StudyPlan
	if err := db.Order("created_at desc").Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch study plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plans fetched successfully!", fiber.Map{
		"study_plans": plans,
	})
}

// GetStudyPlan fetches one study plan with its planned modules.
func GetStudyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	var planModules []models.StudyPlanModule
	if err := database.Database.Db.Where("study_plan_id = ?", plan.ID).Preload("Module").Order("planned_semester, priority desc").Find(&planModules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plan modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plan fetched successfully!", fiber.Map{
		"study_plan": plan,
		"modules":    planModules,
	})
}

// UpdateStudyPlan updates the plan's metadata.
func UpdateStudyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)

	reqData, ok := c.Locals("validatedPlanUpdate").(*struct {
		Name           *string `json:"name"`
		Description    *string `json:"description"`
		TargetSemester *string `json:"target_semester"`
		IsActive       *bool   `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	if reqData.Name != nil {
		plan.Name = *reqData.Name
	}
	if reqData.Description != nil {
		plan.Description = *reqData.Description
	}
	if reqData.TargetSemester != nil {
		plan.TargetSemester = *reqData.TargetSemester
	}
	if reqData.IsActive != nil {
		plan.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update study plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plan updated successfully!", plan)
}

// DeleteStudyPlan removes a plan and its planned modules.
func DeleteStudyPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	tx := database.Database.Db.Begin()
	if err := tx.Unscoped().Where("study_plan_id = ?", plan.ID).Delete(&models.StudyPlanModule{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete study plan!", nil)
	}
	if err := tx.Delete(plan).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete study plan!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plan deleted successfully!", nil)
}

// AddModuleToPlan adds a catalog module to a study plan.
func AddModuleToPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)

	reqData, ok := c.Locals("validatedPlanModule").(*struct {
		ModulePool      string `json:"module_pool"`
		PlannedSemester string `json:"planned_semester"`
		Priority        *int   `json:"priority"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	var module models.Module
	if err := database.Database.Db.Where("pool = ?", reqData.ModulePool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var existing models.StudyPlanModule
	if err := database.Database.Db.Where("study_plan_id = ? AND module_pool = ?", plan.ID, reqData.ModulePool).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module is already in this study plan!", nil)
	}

	priority := 1
	if reqData.Priority != nil {
		priority = *reqData.Priority
	}

	planModule := models.StudyPlanModule{
		StudyPlanID:     plan.ID,
		ModulePool:      reqData.ModulePool,
		PlannedSemester: reqData.PlannedSemester,
		Priority:        priority,
	}
	if err := database.Database.Db.Create(&planModule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add module to study plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module added to study plan successfully!", fiber.Map{
		"plan_module": planModule,
		"module":      module,
	})
}

// UpdatePlanModule updates a planned module's semester or priority.
func UpdatePlanModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)
	pool := c.Locals("modulePool").(string)

	reqData, ok := c.Locals("validatedPlanModuleUpdate").(*struct {
		PlannedSemester *string `json:"planned_semester"`
		Priority        *int    `json:"priority"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	var planModule models.StudyPlanModule
	if err := database.Database.Db.Where("study_plan_id = ? AND module_pool = ?", plan.ID, pool).First(&planModule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module is not in this study plan!", nil)
	}

	if reqData.PlannedSemester != nil {
		planModule.PlannedSemester = *reqData.PlannedSemester
	}
	if reqData.Priority != nil {
		planModule.Priority = *reqData.Priority
	}

	if err := database.Database.Db.Save(&planModule).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update plan module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan module updated successfully!", planModule)
}

// RemoveModuleFromPlan removes a module from a study plan. The delete is
// unscoped so the (plan, module) slot in the unique index is freed and the
// module can be added to the plan again.
func RemoveModuleFromPlan(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)
	pool := c.Locals("modulePool").(string)

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	result := database.Database.Db.Unscoped().Where("study_plan_id = ? AND module_pool = ?", plan.ID, pool).Delete(&models.StudyPlanModule{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove module from study plan!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module is not in this study plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module removed from study plan successfully!", nil)
}

// GetStudyPlanSummary aggregates progress over the plan's modules: credit
// totals, completion counts, semester groups and prerequisite readiness.
func GetStudyPlanSummary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	planID := c.Locals("planID").(uint)

	plan, err := findOwnedPlan(planID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Study plan not found!", nil)
	}

	var planModules []models.StudyPlanModule
	if err := database.Database.Db.Where("study_plan_id = ?", plan.ID).Preload("Module").Find(&planModules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plan modules!", nil)
	}

	var enrollments []models.UserModule
	if err := database.Database.Db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	statusByPool := make(map[string]models.ModuleStatus, len(enrollments))
	for _, enrollment := range enrollments {
		statusByPool[enrollment.ModulePool] = enrollment.Status
	}

	totalCredits := 0
	completedCredits := 0
	completedCount := 0
	inProgressCount := 0
	plannedCount := 0
	semesterGroups := make(map[string][]models.StudyPlanModule)
	pools := make([]string, 0, len(planModules))

	for _, planModule := range planModules {
		pools = append(pools, planModule.ModulePool)
		totalCredits += planModule.Module.Credits

		switch statusByPool[planModule.ModulePool] {
		case models.StatusCompleted:
			completedCount++
			completedCredits += planModule.Module.Credits
		case models.StatusInProgress:
			inProgressCount++
		default:
			plannedCount++
		}

		semester := planModule.PlannedSemester
		if semester == "" {
			semester = "Unscheduled"
		}
		semesterGroups[semester] = append(semesterGroups[semester], planModule)
	}

	completionPercentage := 0.0
	creditPercentage := 0.0
	if len(planModules) > 0 {
		completionPercentage = float64(completedCount) / float64(len(planModules)) * 100
	}
	if totalCredits > 0 {
		creditPercentage = float64(completedCredits) / float64(totalCredits) * 100
	}

	validations := services.ValidateMultiplePrerequisites(database.Database.Db, userID, pools)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study plan summary fetched successfully!", fiber.Map{
		"study_plan": plan,
		"summary": fiber.Map{
			"total_modules":         len(planModules),
			"completed":             completedCount,
			"in_progress":           inProgressCount,
			"planned":               plannedCount,
			"total_credits":         totalCredits,
			"completed_credits":     completedCredits,
			"completion_percentage": completionPercentage,
			"credit_percentage":     creditPercentage,
		},
		"semester_groups":          semesterGroups,
		"prerequisite_validations": validations,
	})
}
