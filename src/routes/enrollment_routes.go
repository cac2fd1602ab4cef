package routes

import (
	"Backend-Bioattend-003/src/controllers"
	"Backend-Bioattend-003/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentRoutes กำหนดเส้นทางสำหรับ Biometric Enrollment API
func EnrollmentRoutes(app *fiber.App) {
	enrollmentRoutes := app.Group("/enrollments")
	enrollmentRoutes.Use(middleware.AuthJWT)
	enrollmentRoutes.Post("/", controllers.OpenEnrollment)
	enrollmentRoutes.Get("/:sessionId", controllers.GetEnrollmentStatus)
	enrollmentRoutes.Post("/:sessionId/samples", controllers.SubmitSample)
	enrollmentRoutes.Post("/:sessionId/complete", controllers.CompleteEnrollment)
	enrollmentRoutes.Delete("/:sessionId", controllers.AbortEnrollment)
}
