package recommendationRoutes

import (
	controllers "studyplanner/controllers/recommendation"
	"studyplanner/middleware"
	validators "studyplanner/validators/recommendation"

	"github.com/gofiber/fiber/v2"
)

// SetupRecommendationRoutes sets up the recommendation routes
func SetupRecommendationRoutes(app *fiber.App) {
	recGroup := app.Group("/recommendation")

	recGroup.Get("/modules", middleware.JWTMiddleware, validators.RecommendModules(), controllers.GetModuleRecommendations)
	recGroup.Post("/study-plan", middleware.JWTMiddleware, validators.DistributePlan(), controllers.DistributeStudyPlan)
	recGroup.Get("/insights", middleware.JWTMiddleware, controllers.GetStudyInsights)
}
