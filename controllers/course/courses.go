package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// GetAllCourses lists published courses with catalog filters and sorting
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedCourseList").(*courseValidator.CourseListRequest)

	// Set default pagination
	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	// Apply optional filters
	if reqData != nil && reqData.Search != "" {
		db = db.Where("lower(title) LIKE lower(?)", "%"+reqData.Search+"%")
	}
	if reqData != nil && reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}

	// Map catalog sort options to order clauses
	sortBy := ""
	if reqData != nil {
		sortBy = reqData.SortBy
	}
	switch sortBy {
	case "price-low":
		db = db.Order("price asc")
	case "price-high":
		db = db.Order("price desc")
	case "rating":
		db = db.Order("rating desc")
	case "newest":
		db = db.Order("created_at desc")
	default: // popular
		db = db.Order("students desc")
	}

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails gets course details with its lesson list
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Get lessons in playback order
	var lessons []models.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&lessons)

	// Check if user is enrolled
	var enrollment models.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"lessons":     lessons,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
