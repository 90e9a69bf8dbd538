package authRoutes

import (
	authController "eduvillage/controllers/auth"
	"eduvillage/middleware"
	authValidator "eduvillage/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users")

	userGroup.Post("/register", authValidator.Register(), authController.Register)
	userGroup.Post("/login", authValidator.Login(), authController.Login)
	userGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
