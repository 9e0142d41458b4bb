package moduleController

import (
	"log"
	"studyplanner/database"
	"studyplanner/middleware"
	"studyplanner/models"
	"studyplanner/services"
	"studyplanner/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// EnrollInModule creates an enrollment record for the authenticated user.
// Prerequisites gate the enrollment unless skipPrerequisiteCheck is set or
// the enrollment is created directly as COMPLETED. A failing prerequisite
// lookup is logged and the enrollment proceeds anyway.
func EnrollInModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollment").(*struct {
		Status                models.ModuleStatus `json:"status"`
		Grade                 *float64            `json:"grade"`
		Semester              string              `json:"semester"`
		Notes                 string              `json:"notes"`
		SkipPrerequisiteCheck bool
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	pool := c.Locals("modulePool").(string)

	// Check if module exists
	var module models.Module
	if err := database.Database.Db.Where("pool = ?", pool).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.UserModule
	if err := database.Database.Db.Where("user_id = ? AND module_pool = ?", userID, pool).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already enrolled in this module!", nil)
	}

	// Check prerequisites unless explicitly skipped
	var validation *services.PrerequisiteValidationResult
	if !reqData.SkipPrerequisiteCheck && reqData.Status != models.StatusCompleted {
		result, err := services.ValidatePrerequisites(database.Database.Db, userID, pool)
		if err != nil {
			// Fallback behavior: proceed with the enrollment when the check
			// itself fails, availability over strictness.
			log.Printf("Prerequisite validation error for %s: %v", pool, err)
		} else {
			validation = result
			if !validation.CanEnroll {
				return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Cannot enroll due to unmet prerequisites!", fiber.Map{
					"validation": validation,
					"hint":       "Complete required prerequisites first, or use ?skipPrerequisiteCheck=true to override",
				})
			}
		}
	}

	enrollment := models.UserModule{
		UserID:     userID,
		ModulePool: pool,
		Status:     reqData.Status,
		Grade:      reqData.Grade,
		Semester:   reqData.Semester,
		Notes:      reqData.Notes,
	}
	if reqData.Status == models.StatusCompleted {
		completedAt := time.Now()
		enrollment.CompletedAt = &completedAt
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in module!", nil)
	}
	tx.Commit()

	go utils.SendEnrollmentEmail(user.Email, user.Name, module.Name)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in module successfully!", fiber.Map{
		"user_module":             enrollment,
		"module":                  module,
		"prerequisite_validation": validation,
	})
}

// UpdateModuleProgress updates the user's enrollment record. CompletedAt is
// set when the status becomes COMPLETED and cleared on any other status.
func UpdateModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Status   *models.ModuleStatus `json:"status"`
		Grade    *float64             `json:"grade"`
		Semester *string              `json:"semester"`
		Notes    *string              `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	pool := c.Locals("modulePool").(string)

	var enrollment models.UserModule
	if err := database.Database.Db.Where("user_id = ? AND module_pool = ?", userID, pool).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User is not enrolled in this module!", nil)
	}

	if reqData.Status != nil {
		enrollment.Status = *reqData.Status
		if *reqData.Status == models.StatusCompleted {
			completedAt := time.Now()
			enrollment.CompletedAt = &completedAt
		} else {
			enrollment.CompletedAt = nil
		}
	}
	if reqData.Grade != nil {
		enrollment.Grade = reqData.Grade
	}
	if reqData.Semester != nil {
		enrollment.Semester = *reqData.Semester
	}
	if reqData.Notes != nil {
		enrollment.Notes = *reqData.Notes
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module progress updated successfully!", enrollment)
}

// UnenrollFromModule deletes the user's enrollment record. The delete is
// unscoped so the (user, module) slot in the unique index is freed and the
// user can enroll again later.
func UnenrollFromModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pool := c.Locals("modulePool").(string)

	result := database.Database.Db.Unscoped().Where("user_id = ? AND module_pool = ?", userID, pool).Delete(&models.UserModule{})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll from module!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User is not enrolled in this module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully unenrolled from module!", nil)
}

// GetMyEnrollments lists the user's enrollments joined with their modules,
// optionally filtered by status.
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Where("user_id = ?", userID).Preload("Module")

	if status := c.Query("status"); status != "" {
		if !models.ModuleStatus(status).IsValid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
		}
		db = db.Where("status = ?", status)
	}

	var enrollments []models.UserModule
	if err := db.Order("created_at").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
