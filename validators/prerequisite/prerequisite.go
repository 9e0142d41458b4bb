package prerequisiteValidator

import (
	"net/url"
	"strconv"
	"strings"
	"studyplanner/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModulePool validates the :pool path parameter.
func ModulePool() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pool, err := normalizePoolParam(c.Params("pool"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
		}

		c.Locals("modulePool", pool)
		return c.Next()
	}
}

// PrerequisiteID validates the :id path parameter.
func PrerequisiteID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid prerequisite ID!", nil)
		}

		c.Locals("prerequisiteID", id)
		return c.Next()
	}
}

// CreatePrerequisite validates the body for creating an edge.
func CreatePrerequisite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModulePool       string `json:"module_pool"`
			PrerequisitePool string `json:"prerequisite_pool"`
			IsRequired       *bool  `json:"is_required"`
			Description      string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.ModulePool = strings.TrimSpace(reqData.ModulePool)
		reqData.PrerequisitePool = strings.TrimSpace(reqData.PrerequisitePool)

		if reqData.ModulePool == "" {
			errors["module_pool"] = "Module pool is required!"
		}
		if reqData.PrerequisitePool == "" {
			errors["prerequisite_pool"] = "Prerequisite pool is required!"
		}
		if reqData.ModulePool != "" && reqData.ModulePool == reqData.PrerequisitePool {
			errors["prerequisite_pool"] = "A module cannot be its own prerequisite!"
		}
		if len(reqData.Description) > 500 {
			errors["description"] = "Description must not exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrerequisite", reqData)
		return c.Next()
	}
}

// UpdatePrerequisite validates the body for updating an edge.
func UpdatePrerequisite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsRequired  *bool   `json:"is_required"`
			Description *string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.IsRequired == nil && reqData.Description == nil {
			errors["body"] = "At least one field must be provided!"
		}
		if reqData.Description != nil && len(*reqData.Description) > 500 {
			errors["description"] = "Description must not exceed 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrerequisiteUpdate", reqData)
		return c.Next()
	}
}

// SuggestOrder validates the module list for order suggestion and batch
// validation requests.
func SuggestOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModulePools []string `json:"module_pools"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		cleaned := make([]string, 0, len(reqData.ModulePools))
		for _, pool := range reqData.ModulePools {
			pool = strings.TrimSpace(pool)
			if pool != "" {
				cleaned = append(cleaned, pool)
			}
		}
		reqData.ModulePools = cleaned

		if len(reqData.ModulePools) == 0 {
			errors["module_pools"] = "At least one module pool is required!"
		}
		if len(reqData.ModulePools) > 100 {
			errors["module_pools"] = "No more than 100 module pools per request!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSuggestOrder", reqData)
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
