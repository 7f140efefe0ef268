package dashboardRoutes

import (
	"github.com/gofiber/fiber/v2"

	dashboardController "lms/controllers/dashboard"
	"lms/middleware"
)

// SetupDashboardRoutes sets up the learner dashboard route
func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard")

	dashboardGroup.Get("/", middleware.JWTMiddleware, dashboardController.GetLearnerDashboard)
}
