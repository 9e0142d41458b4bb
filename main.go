package main

import (
	"studyplanner/config"
	"studyplanner/database"
	authRoutes "studyplanner/routers/authRoutes"
	moduleRoutes "studyplanner/routers/moduleRoutes"
	prerequisiteRoutes "studyplanner/routers/prerequisiteRoutes"
	recommendationRoutes "studyplanner/routers/recommendationRoutes"
	studyPlanRoutes "studyplanner/routers/studyPlanRoutes"
	"studyplanner/utils"

	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := database.SeedModuleCatalog(database.Database.Db); err != nil {
		log.Printf("Failed to seed module catalog: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	moduleRoutes.SetupModuleRoutes(app)
	prerequisiteRoutes.SetupPrerequisiteRoutes(app)
	studyPlanRoutes.SetupStudyPlanRoutes(app)
	recommendationRoutes.SetupRecommendationRoutes(app)

	utils.InitializeSemesterScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
