package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
)

func requireAdmin(c *fiber.Ctx) (models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, false
	}

	return user, user.Role == "ADMIN"
}

func AdminCreateCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.AdminCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Instructor:   reqData.Instructor,
		Category:     reqData.Category,
		Price:        reqData.Price,
		ThumbnailURL: reqData.ThumbnailURL,
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.AdminCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Instructor = reqData.Instructor
	course.Category = reqData.Category
	course.Price = reqData.Price
	course.ThumbnailURL = reqData.ThumbnailURL
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.IsPublished != nil {
		course.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func AdminCreateLesson(c *fiber.Ctx) error {
	if _, ok := requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*courseValidator.AdminLessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Keep the ordering index unique within the course
	var existingLesson models.Lesson
	if err := database.Database.Db.Where("course_id = ? AND order_index = ? AND is_deleted = ?", courseID, reqData.OrderIndex, false).First(&existingLesson).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A lesson with this order index already exists!", nil)
	}

	lesson := models.Lesson{
		CourseID:      uint(courseID),
		Title:         reqData.Title,
		OrderIndex:    reqData.OrderIndex,
		Duration:      reqData.Duration,
		VideoURL:      reqData.VideoURL,
		IsFreePreview: reqData.IsFreePreview,
	}

	// Resolve a missing duration from the media probe service
	if lesson.Duration == 0 && lesson.VideoURL != "" {
		if duration, err := utils.FetchVideoDuration(lesson.VideoURL); err == nil {
			lesson.Duration = duration
		} else {
			log.Printf("Could not resolve duration for %s: %v", lesson.VideoURL, err)
		}
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson created successfully!", lesson)
}
