package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/progress"
	courseValidator "lms/validators/course"
)

var recorder *progress.Recorder

// InitProgressRecorder wires the shared watch-time recorder. Called once from main.
func InitProgressRecorder(r *progress.Recorder) {
	recorder = r
}

// RecordLessonProgress receives one playback-position report from the video
// surface. Responses are always 200: progress tracking is best-effort
// telemetry, and reports for courses the user is not enrolled in are dropped
// without an error.
func RecordLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	recorder.RecordProgress(userID, uint(courseID), uint(lessonID),
		reqData.PositionSeconds, reqData.DurationSeconds, reqData.Ended)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded!", nil)
}

// GetCourseProgress returns the enrollment and per-lesson watch state
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var lessonProgress []models.LessonProgress
	if err := database.Database.Db.Where("enrollment_id = ?", enrollment.ID).
		Order("lesson_id asc").Find(&lessonProgress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"lesson_progress": lessonProgress,
	})
}
