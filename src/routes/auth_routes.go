package routes

import (
	"Backend-Bioattend-003/src/controllers"
	"Backend-Bioattend-003/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes กำหนดเส้นทางสำหรับ Auth API
func AuthRoutes(app *fiber.App) {
	authRoutes := app.Group("/auth")
	authRoutes.Post("/login", controllers.Login)
	authRoutes.Post("/refresh", controllers.Refresh)
	authRoutes.Post("/logout", middleware.AuthJWT, controllers.Logout)
}
