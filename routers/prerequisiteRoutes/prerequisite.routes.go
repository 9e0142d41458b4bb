package prerequisiteRoutes

import (
	controllers "studyplanner/controllers/prerequisite"
	"studyplanner/middleware"
	validators "studyplanner/validators/prerequisite"

	"github.com/gofiber/fiber/v2"
)

// SetupPrerequisiteRoutes sets up the prerequisite graph routes
func SetupPrerequisiteRoutes(app *fiber.App) {
	prereqGroup := app.Group("/prerequisite")

	// Planning helpers
	prereqGroup.Post("/suggest-order", middleware.JWTMiddleware, validators.SuggestOrder(), controllers.SuggestEnrollmentOrder)
	prereqGroup.Post("/validate-batch", middleware.JWTMiddleware, validators.SuggestOrder(), controllers.ValidateBatch)

	// Graph administration
	prereqGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CreatePrerequisite(), controllers.CreatePrerequisite)
	prereqGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.PrerequisiteID(), validators.UpdatePrerequisite(), controllers.UpdatePrerequisite)
	prereqGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.PrerequisiteID(), controllers.DeletePrerequisite)

	// Graph reads
	prereqGroup.Get("/:pool/dependents", middleware.JWTMiddleware, validators.ModulePool(), controllers.GetDependents)
	prereqGroup.Get("/:pool/status", middleware.JWTMiddleware, validators.ModulePool(), controllers.GetPrerequisiteStatus)
	prereqGroup.Get("/:pool", middleware.JWTMiddleware, validators.ModulePool(), controllers.GetPrerequisites)
}
