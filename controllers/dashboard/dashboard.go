package dashboardController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/progress"
)

// section wraps one dashboard derivation. A failed derivation carries its
// error message instead of aborting the sibling sections.
type section struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// GetLearnerDashboard assembles the learner dashboard from the three
// independent aggregators. Each aggregator failure is reported per section so
// one broken query never blanks the whole dashboard.
func GetLearnerDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var weekly section
	var totalHours float64
	if data, err := progress.WeeklyLearningHours(db, userID); err != nil {
		log.Printf("dashboard: weekly hours failed for user %d: %v", userID, err)
		weekly.Error = err.Error()
	} else {
		weekly.Data = data
		for _, d := range data {
			totalHours += d.Hours
		}
	}

	var skills section
	if data, err := progress.SkillDistribution(db, userID); err != nil {
		log.Printf("dashboard: skill distribution failed for user %d: %v", userID, err)
		skills.Error = err.Error()
	} else {
		skills.Data = data
	}

	var courses section
	if data, err := progress.CourseProgressSummary(db, userID); err != nil {
		log.Printf("dashboard: course summary failed for user %d: %v", userID, err)
		courses.Error = err.Error()
	} else {
		courses.Data = data
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"weekly_hours":       weekly,
		"total_hours":        totalHours,
		"skill_distribution": skills,
		"course_progress":    courses,
	})
}
