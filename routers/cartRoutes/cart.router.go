package cartRoutes

import (
	"github.com/gofiber/fiber/v2"

	cartController "lms/controllers/cart"
	"lms/middleware"
	cartValidator "lms/validators/cart"
)

// SetupCartRoutes sets up shopping cart and checkout routes
func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart")

	cartGroup.Get("/", middleware.JWTMiddleware, cartController.GetCart)
	cartGroup.Post("/", middleware.JWTMiddleware, cartValidator.AddToCart(), cartController.AddToCart)
	cartGroup.Delete("/:course_id", middleware.JWTMiddleware, cartValidator.RemoveFromCart(), cartController.RemoveFromCart)
	cartGroup.Post("/checkout", middleware.JWTMiddleware, cartController.Checkout)
}
