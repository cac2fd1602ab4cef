package routes

import (
	"Backend-Bioattend-003/src/controllers"
	"Backend-Bioattend-003/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// StudentRoutes กำหนดเส้นทางสำหรับ Student API
func StudentRoutes(app *fiber.App) {
	studentRoutes := app.Group("/students")
	studentRoutes.Use(middleware.AuthJWT)
	studentRoutes.Get("/", controllers.GetAllStudents)
	studentRoutes.Post("/", controllers.CreateStudent)
	studentRoutes.Get("/:id", controllers.GetStudentByID)
	studentRoutes.Post("/:id/courses/:courseId", controllers.RegisterStudentForCourse)
}
