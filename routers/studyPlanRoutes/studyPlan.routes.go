package studyPlanRoutes

import (
	controllers "studyplanner/controllers/studyplan"
	"studyplanner/middleware"
	validators "studyplanner/validators/studyplan"

	"github.com/gofiber/fiber/v2"
)

// SetupStudyPlanRoutes sets up the study plan routes
func SetupStudyPlanRoutes(app *fiber.App) {
	planGroup := app.Group("/study-plan")

	planGroup.Post("/", middleware.JWTMiddleware, validators.CreatePlan(), controllers.CreateStudyPlan)
	planGroup.Get("/", middleware.JWTMiddleware, controllers.GetMyStudyPlans)

	planGroup.Get("/:id/summary", middleware.JWTMiddleware, validators.PlanID(), controllers.GetStudyPlanSummary)
	planGroup.Get("/:id", middleware.JWTMiddleware, validators.PlanID(), controllers.GetStudyPlan)
	planGroup.Put("/:id", middleware.JWTMiddleware, validators.PlanID(), validators.UpdatePlan(), controllers.UpdateStudyPlan)
	planGroup.Delete("/:id", middleware.JWTMiddleware, validators.PlanID(), controllers.DeleteStudyPlan)

	planGroup.Post("/:id/modules", middleware.JWTMiddleware, validators.PlanID(), validators.AddPlanModule(), controllers.AddModuleToPlan)
	planGroup.Put("/:id/modules/:pool", middleware.JWTMiddleware, validators.PlanID(), validators.UpdatePlanModule(), controllers.UpdatePlanModule)
	planGroup.Delete("/:id/modules/:pool", middleware.JWTMiddleware, validators.PlanID(), validators.PlanModulePool(), controllers.RemoveModuleFromPlan)
}
