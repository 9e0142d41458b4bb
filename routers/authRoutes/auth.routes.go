package authRoutes

import (
	controllers "studyplanner/controllers/auth"
	"studyplanner/middleware"
	validators "studyplanner/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up all authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)

	authGroup.Get("/me", middleware.JWTMiddleware, controllers.Me)
	authGroup.Post("/refresh", middleware.JWTMiddleware, controllers.RefreshToken)
	authGroup.Get("/login-history", middleware.JWTMiddleware, validators.LoginHistoryList(), controllers.LoginHistory)
}
