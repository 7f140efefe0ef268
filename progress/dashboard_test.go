package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms/models"
)

func seedWatchRecord(t *testing.T, db *gorm.DB, enrollment models.Enrollment, lessonID uint, seconds int, createdAt time.Time) {
	t.Helper()

	row := models.LessonProgress{
		UserID:           enrollment.UserID,
		EnrollmentID:     enrollment.ID,
		LessonID:         lessonID,
		WatchTimeSeconds: seconds,
	}
	row.CreatedAt = createdAt
	require.NoError(t, db.Create(&row).Error)
}

func TestWeeklyLearningHoursBuckets(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 3, 3600)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	now := time.Now()
	seedWatchRecord(t, db, enrollment, lessons[0].ID, 1800, now)
	seedWatchRecord(t, db, enrollment, lessons[1].ID, 3600, now)
	// Outside the trailing week, must be ignored.
	seedWatchRecord(t, db, enrollment, lessons[2].ID, 7200, now.AddDate(0, 0, -8))

	result, err := WeeklyLearningHours(db, 1)
	require.NoError(t, err)
	require.Len(t, result, 7)

	// Ordered Monday through Sunday regardless of record order.
	labels := make([]string, 0, 7)
	for _, d := range result {
		labels = append(labels, d.Day)
	}
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, labels)

	today := weekdayLabels[now.Weekday()]
	for _, d := range result {
		if d.Day == today {
			assert.Equal(t, 1.5, d.Hours)
		} else {
			assert.Zero(t, d.Hours)
		}
	}
}

func TestWeeklyLearningHoursEmpty(t *testing.T) {
	db := setupTestDB(t)

	result, err := WeeklyLearningHours(db, 1)
	require.NoError(t, err)
	require.Len(t, result, 7)
	for _, d := range result {
		assert.Zero(t, d.Hours)
	}
}

func TestSkillDistribution(t *testing.T) {
	db := setupTestDB(t)

	seedCategoryCourse := func(category string) models.Course {
		course := models.Course{Title: category + " Course", Category: category, IsPublished: true}
		require.NoError(t, db.Create(&course).Error)
		return course
	}

	web1 := seedCategoryCourse("Web Development")
	web2 := seedCategoryCourse("Web Development")
	design := seedCategoryCourse("Design")
	pottery := seedCategoryCourse("Pottery")
	blank := seedCategoryCourse("")

	for _, course := range []models.Course{web1, web2, design, pottery, blank} {
		seedEnrollment(t, db, 1, course.ID)
	}

	result, err := SkillDistribution(db, 1)
	require.NoError(t, err)

	byName := make(map[string]CategoryCount)
	for _, c := range result {
		byName[c.Name] = c
	}

	assert.Equal(t, 2, byName["Web Development"].Value)
	assert.Equal(t, "#8B5CF6", byName["Web Development"].Color)
	assert.Equal(t, 1, byName["Design"].Value)
	assert.Equal(t, "#10B981", byName["Design"].Color)

	// Unknown categories get the fallback color, empty ones the Other label.
	assert.Equal(t, fallbackColor, byName["Pottery"].Color)
	assert.Equal(t, 1, byName["Other"].Value)
	assert.Equal(t, fallbackColor, byName["Other"].Color)
}

func TestCourseProgressSummary(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 4, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	now := time.Now()
	require.NoError(t, db.Create(&models.LessonProgress{
		UserID:           1,
		EnrollmentID:     enrollment.ID,
		LessonID:         lessons[0].ID,
		WatchTimeSeconds: 100,
		IsCompleted:      true,
		CompletedAt:      &now,
	}).Error)

	result, err := CourseProgressSummary(db, 1)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "Go From Scratch", result[0].Name)
	assert.Equal(t, 25, result[0].CompletedPercent)
	assert.Equal(t, 1, result[0].CompletedCount)
	assert.Equal(t, 4, result[0].Total)
}

func TestCourseProgressSummaryFallsBackToStoredPercentage(t *testing.T) {
	db := setupTestDB(t)

	course := models.Course{Title: "SQL Basics", Category: "Data Science", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, Title: "L", OrderIndex: i + 1, Duration: 60}).Error)
	}

	enrollment := seedEnrollment(t, db, 1, course.ID)
	require.NoError(t, db.Model(&enrollment).Update("progress_percentage", 50).Error)

	// No watch records: the completed count is estimated from the stored
	// percentage.
	result, err := CourseProgressSummary(db, 1)
	require.NoError(t, err)
	require.Len(t, result, 1)

	assert.Equal(t, "SQL Basics", result[0].Name)
	assert.Equal(t, 1, result[0].CompletedCount)
	assert.Equal(t, 50, result[0].CompletedPercent)
	assert.Equal(t, 2, result[0].Total)
}

func TestCourseProgressSummarySurfacesCountErrors(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 2, 100)
	seedEnrollment(t, db, 1, course.ID)

	// A broken count query must surface as the section's error, not silently
	// degrade into the stored-percentage fallback.
	require.NoError(t, db.Migrator().DropTable(&models.LessonProgress{}))

	_, err := CourseProgressSummary(db, 1)
	assert.Error(t, err)
}
