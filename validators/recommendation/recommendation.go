package recommendationValidator

import (
	"strconv"
	"strings"
	"studyplanner/middleware"

	"github.com/gofiber/fiber/v2"
)

var validFocusAreas = map[string]bool{
	"INF": true,
	"MAN": true,
	"MK":  true,
	"GS":  true,
	"MAT": true,
	"II":  true,
	"NAT": true,
	"GEN": true,
}

// RecommendModules validates the query parameters for module recommendations.
func RecommendModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		maxCredits, err := strconv.Atoi(c.Query("maxCredits", "15"))
		if err != nil || maxCredits < 1 || maxCredits > 30 {
			errors["maxCredits"] = "maxCredits must be between 1 and 30!"
		}

		focusArea := strings.ToUpper(strings.TrimSpace(c.Query("focusArea")))
		if focusArea != "" && !validFocusAreas[focusArea] {
			errors["focusArea"] = "focusArea must be one of INF, MAN, MK, GS, MAT, II, NAT, GEN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData := &struct {
			TargetSemester   string `json:"target_semester"`
			MaxCredits       int    `json:"max_credits"`
			FocusArea        string `json:"focus_area"`
			IncludeCompleted bool   `json:"include_completed"`
		}{
			TargetSemester:   strings.TrimSpace(c.Query("targetSemester")),
			MaxCredits:       maxCredits,
			FocusArea:        focusArea,
			IncludeCompleted: c.Query("includeCompleted") == "true",
		}

		c.Locals("validatedRecommendation", reqData)
		return c.Next()
	}
}

// DistributePlan validates the body for study plan distribution.
func DistributePlan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudyPlanID           uint `json:"study_plan_id"`
			SemesterCount         *int `json:"semester_count"`
			MaxCreditsPerSemester *int `json:"max_credits_per_semester"`
			PrioritizeEasyModules bool `json:"prioritize_easy_modules"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.StudyPlanID == 0 {
			errors["study_plan_id"] = "Study plan ID is required!"
		}
		if reqData.SemesterCount != nil && (*reqData.SemesterCount < 1 || *reqData.SemesterCount > 12) {
			errors["semester_count"] = "Semester count must be between 1 and 12!"
		}
		if reqData.MaxCreditsPerSemester != nil && (*reqData.MaxCreditsPerSemester < 1 || *reqData.MaxCreditsPerSemester > 30) {
			errors["max_credits_per_semester"] = "Max credits per semester must be between 1 and 30!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedDistribution", reqData)
		return c.Next()
	}
}
