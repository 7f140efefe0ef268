package progress

import (
	"math"
	"time"

	"gorm.io/gorm"

	"lms/models"
)

// DayHours is one weekday bucket of watch time.
type DayHours struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

// CategoryCount is one slice of the enrollments-per-category distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// CourseSummary is one per-enrollment completion line on the dashboard.
type CourseSummary struct {
	Name             string `json:"name"`
	CompletedPercent int    `json:"completed_percent"`
	CompletedCount   int    `json:"completed_count"`
	Total            int    `json:"total"`
}

var categoryColors = map[string]string{
	"Web Development": "#8B5CF6",
	"Data Science":    "#06B6D4",
	"Design":          "#10B981",
	"Marketing":       "#F59E0B",
	"Technology":      "#0EA5E9",
}

const fallbackColor = "#94A3B8"

var weekdayLabels = map[time.Weekday]string{
	time.Monday:    "Mon",
	time.Tuesday:   "Tue",
	time.Wednesday: "Wed",
	time.Thursday:  "Thu",
	time.Friday:    "Fri",
	time.Saturday:  "Sat",
	time.Sunday:    "Sun",
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeeklyLearningHours sums the watch time recorded over the trailing 7
// calendar days (today inclusive) into weekday buckets, ordered Monday through
// Sunday. Days without any records report 0.
func WeeklyLearningHours(db *gorm.DB, userID uint) ([]DayHours, error) {
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	var rows []models.LessonProgress
	if err := db.Where("user_id = ? AND created_at >= ?", userID, since).Find(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[time.Weekday]float64)
	for _, row := range rows {
		buckets[row.CreatedAt.Weekday()] += float64(row.WatchTimeSeconds) / 3600
	}

	result := make([]DayHours, 0, len(weekdayOrder))
	for _, wd := range weekdayOrder {
		result = append(result, DayHours{
			Day:   weekdayLabels[wd],
			Hours: math.Round(buckets[wd]*100) / 100,
		})
	}
	return result, nil
}

// SkillDistribution counts the user's enrollments per course category. Known
// categories get a fixed chart color, anything else the fallback color.
func SkillDistribution(db *gorm.DB, userID uint) ([]CategoryCount, error) {
	var categories []string
	if err := db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ? AND enrollments.is_deleted = ?", userID, false).
		Pluck("courses.category", &categories).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, cat := range categories {
		if cat == "" {
			cat = "Other"
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	result := make([]CategoryCount, 0, len(order))
	for _, cat := range order {
		color, ok := categoryColors[cat]
		if !ok {
			color = fallbackColor
		}
		result = append(result, CategoryCount{Name: cat, Value: counts[cat], Color: color})
	}
	return result, nil
}

// CourseProgressSummary derives one completion line per enrollment. When no
// watch records exist yet the completed count is estimated from the stored
// percentage, so a fresh dashboard still shows sensible numbers.
func CourseProgressSummary(db *gorm.DB, userID uint) ([]CourseSummary, error) {
	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	result := make([]CourseSummary, 0, len(enrollments))
	for _, e := range enrollments {
		name := "Course"
		var course models.Course
		if err := db.Select("title").Where("id = ?", e.CourseID).First(&course).Error; err == nil && course.Title != "" {
			name = course.Title
		}

		var total int64
		if err := db.Model(&models.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", e.CourseID, false).
			Count(&total).Error; err != nil {
			return nil, err
		}

		var completed int64
		if err := db.Model(&models.LessonProgress{}).
			Where("enrollment_id = ? AND is_completed = ?", e.ID, true).
			Count(&completed).Error; err != nil {
			return nil, err
		}

		count := int(completed)
		if count == 0 {
			count = int(math.Round(float64(total) * float64(e.ProgressPercentage) / 100))
		}

		percent := e.ProgressPercentage
		if total > 0 {
			percent = int(math.Round(float64(count) / float64(total) * 100))
		}

		result = append(result, CourseSummary{
			Name:             name,
			CompletedPercent: percent,
			CompletedCount:   count,
			Total:            int(total),
		})
	}
	return result, nil
}
