package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog listing and details
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseIDParam("id"), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseIDParam("id"), controllers.EnrollInCourse)

	// Reviews
	userGroup.Get("/:id/reviews", middleware.JWTMiddleware, validators.CourseIDParam("id"), controllers.GetCourseReviews)
	userGroup.Post("/:id/reviews", middleware.JWTMiddleware, validators.AddReview(), controllers.AddReview)

	// Watch progress
	userGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseIDParam("id"), controllers.GetCourseProgress)
	userGroup.Post("/:course_id/lesson/:lesson_id/progress", middleware.JWTMiddleware, validators.RecordProgress(), controllers.RecordLessonProgress)

	// User enrollments
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)

	// Content management (admin)
	adminGroup := app.Group("/admin/course")
	adminGroup.Post("/", middleware.JWTMiddleware, validators.AdminCreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.AdminUpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Post("/:id/lesson", middleware.JWTMiddleware, validators.AdminCreateLesson(), controllers.AdminCreateLesson)
}
