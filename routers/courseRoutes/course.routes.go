package courseRoutes

import (
	controllers "eduvillage/controllers/course"
	"eduvillage/middleware"
	"eduvillage/models"
	validators "eduvillage/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student-facing course routes
func SetupStudentRoutes(app *fiber.App) {
	student := app.Group("/api/courses/student",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
	)

	// Static segments first so they never shadow the parameterized routes
	student.Get("/my-courses", controllers.GetMyCourses)
	student.Get("/certificates", controllers.GetStudentCertificates)
	student.Get("/certificates/:id/download", validators.CertificateID(), controllers.DownloadCertificate)

	student.Get("/:course_id/progress", validators.CourseID(), controllers.GetStudentProgress)
	student.Get("/:course_id/contents", validators.CourseID(), controllers.GetStudentContents)
	student.Post("/:content_id/complete", validators.ContentID(), controllers.MarkContentComplete)
	student.Post("/:course_id/generate-certificate", validators.CourseID(), controllers.GenerateCertificate)

	// Enrollment
	enrollments := app.Group("/api/enrollments",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent),
	)
	enrollments.Get("/courses/browse", controllers.BrowseCourses)
	enrollments.Post("/courses/:course_id", validators.CourseID(), controllers.EnrollInCourse)
}

// SetupTeacherRoutes sets up course management routes for approved teachers
func SetupTeacherRoutes(app *fiber.App) {
	teacher := app.Group("/api/courses",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher),
		middleware.RequireApprovedTeacher,
	)

	teacher.Post("/", validators.CreateCourse(), controllers.CreateCourse)
	teacher.Put("/:course_id", validators.CourseID(), validators.CreateCourse(), controllers.UpdateCourse)
	teacher.Delete("/:course_id", validators.CourseID(), controllers.DeleteCourse)
	teacher.Post("/:course_id/contents", validators.CourseID(), validators.AddContent(), controllers.AddCourseContent)

	dashboard := app.Group("/api/dashboard",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher),
		middleware.RequireApprovedTeacher,
	)
	dashboard.Get("/summary", controllers.GetTeacherDashboard)
	dashboard.Get("/course-stats", controllers.GetTeacherCourseStats)
}
