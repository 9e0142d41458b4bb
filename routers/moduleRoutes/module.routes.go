package moduleRoutes

import (
	catalogControllers "studyplanner/controllers/catalog"
	controllers "studyplanner/controllers/module"
	"studyplanner/middleware"
	validators "studyplanner/validators/module"

	"github.com/gofiber/fiber/v2"
)

// SetupModuleRoutes sets up the catalog and enrollment routes
func SetupModuleRoutes(app *fiber.App) {
	moduleGroup := app.Group("/module")

	// Catalog
	moduleGroup.Get("/list", middleware.JWTMiddleware, validators.ModuleList(), controllers.GetAllModules)
	moduleGroup.Get("/categories", middleware.JWTMiddleware, controllers.GetCategories)

	// Admin catalog sync
	moduleGroup.Post("/admin/sync", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), catalogControllers.SyncModuleCatalog)

	// Enrollments
	moduleGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
	moduleGroup.Post("/:pool/enroll", middleware.JWTMiddleware, validators.EnrollModule(), controllers.EnrollInModule)
	moduleGroup.Put("/:pool/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateModuleProgress)
	moduleGroup.Delete("/:pool/unenroll", middleware.JWTMiddleware, validators.ModulePool(), controllers.UnenrollFromModule)

	// Single module detail, keep last so fixed paths match first
	moduleGroup.Get("/:pool", middleware.JWTMiddleware, validators.ModulePool(), controllers.GetModule)
}
