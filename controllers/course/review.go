package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// ReviewWithUser enriches a review with the reviewer's public details
type ReviewWithUser struct {
	models.Review
	UserName     string `json:"user_name"`
	ProfileImage string `json:"profile_image"`
}

func GetCourseReviews(c *fiber.Ctx) error {
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
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var reviews []models.Review
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	// Enrich each review with the reviewer's name
	result := make([]ReviewWithUser, len(reviews))
	for i, review := range reviews {
		result[i] = ReviewWithUser{Review: review}

		var reviewer models.User
		if err := database.Database.Db.Where("id = ?", review.UserID).First(&reviewer).Error; err == nil {
			result[i].UserName = reviewer.Name
			result[i].ProfileImage = reviewer.ProfileImage
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": result,
		"rating":  course.Rating,
		"total":   len(result),
	})
}

func AddReview(c *fiber.Ctx) error {
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

	// Only enrolled users may review
	var enrollment models.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	// One review per user per course
	var existingReview models.Review
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already reviewed this course!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	review := models.Review{
		UserID:   userID,
		CourseID: uint(courseID),
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := database.Database.Db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add review!", nil)
	}

	refreshCourseRating(uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review added successfully!", review)
}

// refreshCourseRating recalculates the course's average rating after a new review
func refreshCourseRating(courseID uint) {
	var avg float64
	if err := database.Database.Db.Model(&models.Review{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error; err != nil {
		log.Printf("Failed to refresh rating for course %d: %v", courseID, err)
		return
	}

	if err := database.Database.Db.Model(&models.Course{}).
		Where("id = ?", courseID).Update("rating", avg).Error; err != nil {
		log.Printf("Failed to update rating for course %d: %v", courseID, err)
	}
}
