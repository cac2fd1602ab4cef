package routes

import (
	"Backend-Bioattend-003/src/controllers"
	"Backend-Bioattend-003/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseRoutes กำหนดเส้นทางสำหรับ Course API
func CourseRoutes(app *fiber.App) {
	courseRoutes := app.Group("/courses")
	courseRoutes.Use(middleware.AuthJWT)
	courseRoutes.Get("/", controllers.GetAllCourses)
	courseRoutes.Post("/", controllers.CreateCourse)
	courseRoutes.Get("/:id", controllers.GetCourseByID)
	courseRoutes.Get("/:id/students", controllers.GetRegisteredStudents)
}
