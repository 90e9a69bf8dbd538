package adminRoutes

import (
	adminController "eduvillage/controllers/admin"
	"eduvillage/middleware"
	"eduvillage/models"
	adminValidator "eduvillage/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up user management and teacher approval routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/users/admin",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
	)

	admin.Get("/users", adminController.GetAllUsers)
	admin.Delete("/users/:user_id", adminValidator.TargetUserID(), adminController.DeleteUser)
	admin.Put("/users/:user_id/role", adminValidator.TargetUserID(), adminValidator.UpdateRole(), adminController.UpdateUserRole)

	admin.Get("/teachers/pending", adminController.GetPendingTeachers)
	admin.Get("/teachers/approved", adminController.GetApprovedTeachers)
	admin.Put("/teachers/:user_id/approve", adminValidator.TargetUserID(), adminController.ApproveTeacher)
	admin.Put("/teachers/:user_id/reject", adminValidator.TargetUserID(), adminController.RejectTeacher)
}
