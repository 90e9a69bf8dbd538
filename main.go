package main

import (
	"eduvillage/config"
	"eduvillage/database"
	adminRoutes "eduvillage/routers/adminRoutes"
	authRoutes "eduvillage/routers/authRoutes"
	courseRoutes "eduvillage/routers/courseRoutes"
	"eduvillage/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupStudentRoutes(app)
	courseRoutes.SetupTeacherRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Background reconciliation keeps progress snapshots honest
	scheduler := utils.StartProgressScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	err := app.Listen(":" + config.AppConfig.Port)
	scheduler.Stop()
	if err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
