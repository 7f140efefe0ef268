package courseValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

// ProgressRequest is one playback-position report from the video surface.
type ProgressRequest struct {
	PositionSeconds float64 `json:"position_seconds" validate:"gte=0"`
	DurationSeconds float64 `json:"duration_seconds" validate:"gte=0"`
	Ended           bool    `json:"ended"`
}

func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		lessonIDStr := strings.TrimSpace(c.Params("lesson_id"))
		lessonID, err := strconv.Atoi(lessonIDStr)
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(ProgressRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if fieldErrors, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range fieldErrors {
					errors[fieldErr.Field()] = "Failed on '" + fieldErr.Tag() + "' validation!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
