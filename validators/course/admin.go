package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type AdminCourseRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Instructor   string  `json:"instructor"`
	Category     string  `json:"category"`
	Level        string  `json:"level"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  *bool   `json:"is_published"`
}

type AdminLessonRequest struct {
	Title         string `json:"title"`
	OrderIndex    int    `json:"order_index"`
	Duration      int    `json:"duration"`
	VideoURL      string `json:"video_url"`
	IsFreePreview bool   `json:"is_free_preview"`
}

func validateAdminCourse(reqData *AdminCourseRequest) map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(reqData.Title) == "" {
		errors["title"] = "Title is required!"
	}
	if reqData.Price < 0 {
		errors["price"] = "Price cannot be negative!"
	}
	if reqData.Level != "" && reqData.Level != "Beginner" && reqData.Level != "Intermediate" && reqData.Level != "Advanced" {
		errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
	}
	return errors
}

func AdminCreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AdminCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateAdminCourse(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func AdminUpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(AdminCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validateAdminCourse(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func AdminCreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(AdminLessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 1 {
			errors["order_index"] = "Order index must be greater than 0!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
