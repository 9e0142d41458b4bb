package moduleValidator

import (
	"net/url"
	"strconv"
	"strings"
	"studyplanner/middleware"
	"studyplanner/models"

	"github.com/gofiber/fiber/v2"
)

// ModuleList validates the catalog listing filters and pagination.
func ModuleList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "50"))
		if err != nil || limit < 1 {
			limit = 50
		}
		if limit > 100 {
			limit = 100
		}

		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		reqData := &struct {
			Pool     string `json:"pool"`
			Search   string `json:"search"`
			Category string `json:"category"`
			Limit    int    `json:"limit"`
			Offset   int    `json:"offset"`
		}{
			Pool:     strings.TrimSpace(c.Query("pool")),
			Search:   strings.TrimSpace(c.Query("search")),
			Category: strings.TrimSpace(c.Query("category")),
			Limit:    limit,
			Offset:   offset,
		}

		c.Locals("validatedModuleList", reqData)
		return c.Next()
	}
}

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

// EnrollModule validates the enrollment body and the skip flag.
func EnrollModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pool, err := normalizePoolParam(c.Params("pool"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
		}

		reqData := new(struct {
			Status                models.ModuleStatus `json:"status"`
			Grade                 *float64            `json:"grade"`
			Semester              string              `json:"semester"`
			Notes                 string              `json:"notes"`
			SkipPrerequisiteCheck bool
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status == "" {
			reqData.Status = models.StatusPlanned
		}
		if !reqData.Status.IsValid() {
			errors["status"] = "Status must be one of PLANNED, IN_PROGRESS, COMPLETED, FAILED, CANCELLED!"
		}

		if reqData.Grade != nil && (*reqData.Grade < 1.0 || *reqData.Grade > 5.0) {
			errors["grade"] = "Grade must be between 1.0 and 5.0!"
		}

		if len(reqData.Notes) > 1000 {
			errors["notes"] = "Notes must not exceed 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.SkipPrerequisiteCheck = c.Query("skipPrerequisiteCheck") == "true"

		c.Locals("modulePool", pool)
		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}

// UpdateProgress validates the progress update body.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pool, err := normalizePoolParam(c.Params("pool"))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module pool is required!", nil)
		}

		reqData := new(struct {
			Status   *models.ModuleStatus `json:"status"`
			Grade    *float64             `json:"grade"`
			Semester *string              `json:"semester"`
			Notes    *string              `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != nil && !reqData.Status.IsValid() {
			errors["status"] = "Status must be one of PLANNED, IN_PROGRESS, COMPLETED, FAILED, CANCELLED!"
		}

		if reqData.Grade != nil && (*reqData.Grade < 1.0 || *reqData.Grade > 5.0) {
			errors["grade"] = "Grade must be between 1.0 and 5.0!"
		}

		if reqData.Notes != nil && len(*reqData.Notes) > 1000 {
			errors["notes"] = "Notes must not exceed 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("modulePool", pool)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// normalizePoolParam trims and URL-decodes the pool path parameter. Pool
// keys contain spaces, so they arrive percent-encoded.
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
