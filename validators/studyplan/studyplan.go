package studyPlanValidator

import (
	"net/url"
	"strconv"
	"strings"
	"studyplanner/middleware"

	"github.com/gofiber/fiber/v2"
)

// PlanID validates the :id path parameter.
func PlanID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid study plan ID!", nil)
		}

		c.Locals("planID", uint(id))
		return c.Next()
	}
}

// CreatePlan validates the body for creating a study plan.
func CreatePlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name           string `json:"name"`
			Description    string `json:"description"`
			TargetSemester string `json:"target_semester"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if len(reqData.Name) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if len(reqData.Name) > 100 {
			errors["name"] = "Name must not exceed 100 characters!"
		}
		if len(reqData.Description) > 500 {
			errors["description"] = "Description must not exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlan", reqData)
		return c.Next()
	}
}

// UpdatePlan validates the body for updating a study plan.
func UpdatePlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name           *string `json:"name"`
			Description    *string `json:"description"`
			TargetSemester *string `json:"target_semester"`
			IsActive       *bool   `json:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name == nil && reqData.Description == nil && reqData.TargetSemester == nil && reqData.IsActive == nil {
			errors["body"] = "At least one field must be provided!"
		}
		if reqData.Name != nil {
			trimmed := strings.TrimSpace(*reqData.Name)
			if len(trimmed) < 2 {
				errors["name"] = "Name must be at least 2 characters long!"
			}
			if len(trimmed) > 100 {
				errors["name"] = "Name must not exceed 100 characters!"
			}
			*reqData.Name = trimmed
		}
		if reqData.Description != nil && len(*reqData.Description) > 500 {
			errors["description"] = "Description must not exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlanUpdate", reqData)
		return c.Next()
	}
}

// AddPlanModule validates the body for adding a module to a plan.
func AddPlanModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModulePool      string `json:"module_pool"`
			PlannedSemester string `json:"planned_semester"`
			Priority        *int   `json:"priority"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.ModulePool = strings.TrimSpace(reqData.ModulePool)
		if reqData.ModulePool == "" {
			errors["module_pool"] = "Module pool is required!"
		}
		if reqData.Priority != nil && (*reqData.Priority < 1 || *reqData.Priority > 5) {
			errors["priority"] = "Priority must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlanModule", reqData)
		return c.Next()
	}
}

// UpdatePlanModule validates the body for updating a planned module.
func UpdatePlanModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pool, err := normalizePoolParam(c.Params("pool"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
		}

		reqData := new(struct {
			PlannedSemester *string `json:"planned_semester"`
			Priority        *int    `json:"priority"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PlannedSemester == nil && reqData.Priority == nil {
			errors["body"] = "At least one field must be provided!"
		}
		if reqData.Priority != nil && (*reqData.Priority < 1 || *reqData.Priority > 5) {
			errors["priority"] = "Priority must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("modulePool", pool)
		c.Locals("validatedPlanModuleUpdate", reqData)
		return c.Next()
	}
}

// PlanModulePool validates the :pool path parameter on plan module routes.
func PlanModulePool() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pool, err := normalizePoolParam(c.Params("pool"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
		}

		c.Locals("modulePool", pool)
		return c.Next()
	}
}

func normalizePoolParam(raw string) (string, error) {
	pool, err := url.PathUnescape(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	pool = strings.TrimSpace(pool)
	if pool == "" {
		return "", fiber.ErrBadRequest
	}
	return pool, nil
}
