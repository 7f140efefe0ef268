package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// CourseListRequest carries catalog listing filters.
type CourseListRequest struct {
	Page     *int   `query:"page"`
	Limit    *int   `query:"limit"`
	Search   string `query:"search"`
	Category string `query:"category"`
	SortBy   string `query:"sort_by"`
}

var allowedSorts = map[string]bool{
	"":           true,
	"popular":    true,
	"price-low":  true,
	"price-high": true,
	"rating":     true,
	"newest":     true,
}

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if !allowedSorts[reqData.SortBy] {
			errors["sort_by"] = "Sort must be one of popular, price-low, price-high, rating, newest!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseIDParam validates the named route parameter as a positive course ID
// and stores it under "courseID".
func CourseIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params(param))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
