package routes

import (
	"Backend-Bioattend-003/src/controllers"
	"Backend-Bioattend-003/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// AttendanceRoutes กำหนดเส้นทางสำหรับ Attendance API
func AttendanceRoutes(app *fiber.App) {
	attendanceRoutes := app.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthJWT)
	attendanceRoutes.Post("/sessions", controllers.OpenAttendanceSession)
	attendanceRoutes.Post("/sessions/:sessionId/close", controllers.CloseAttendanceSession)
	attendanceRoutes.Post("/sessions/:sessionId/verify", controllers.VerifyAttendance)
	attendanceRoutes.Get("/sessions/:sessionId/report", controllers.GetSessionReport)
	attendanceRoutes.Get("/courses/:courseId/records", controllers.GetAttendanceRecords)
}
