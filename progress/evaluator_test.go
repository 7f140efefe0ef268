package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms/models"
)

func completeLesson(t *testing.T, db *gorm.DB, enrollment models.Enrollment, lessonID uint) {
	t.Helper()

	now := time.Now()
	require.NoError(t, db.Create(&models.LessonProgress{
		UserID:           enrollment.UserID,
		EnrollmentID:     enrollment.ID,
		LessonID:         lessonID,
		WatchTimeSeconds: 100,
		IsCompleted:      true,
		CompletedAt:      &now,
	}).Error)
}

func TestRecomputePercentage(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 4, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	completeLesson(t, db, enrollment, lessons[0].ID)
	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))

	var updated models.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 25, updated.ProgressPercentage)
	assert.Nil(t, updated.CompletedAt)

	for _, lesson := range lessons[1:] {
		completeLesson(t, db, enrollment, lesson.ID)
	}
	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))

	// Fresh struct: gorm leaves pointer fields untouched when scanning NULL
	// into an already-populated destination.
	var finished models.Enrollment
	require.NoError(t, db.First(&finished, enrollment.ID).Error)
	assert.Equal(t, 100, finished.ProgressPercentage)
	assert.NotNil(t, finished.CompletedAt)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 3, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	completeLesson(t, db, enrollment, lessons[0].ID)

	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))
	var first models.Enrollment
	require.NoError(t, db.First(&first, enrollment.ID).Error)

	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))
	var second models.Enrollment
	require.NoError(t, db.First(&second, enrollment.ID).Error)

	assert.Equal(t, first.ProgressPercentage, second.ProgressPercentage)
	assert.Equal(t, 33, second.ProgressPercentage)
}

func TestRecomputeSkipsLessonlessCourse(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourse(t, db, 0, 0)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	require.NoError(t, db.Model(&enrollment).Update("progress_percentage", 40).Error)

	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))

	var updated models.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	assert.Equal(t, 40, updated.ProgressPercentage)
}

func TestRecomputeClearsCompletionWhenCourseGrows(t *testing.T) {
	db := setupTestDB(t)
	course, lessons := seedCourse(t, db, 2, 100)
	enrollment := seedEnrollment(t, db, 1, course.ID)
	for _, lesson := range lessons {
		completeLesson(t, db, enrollment, lesson.ID)
	}

	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))
	var updated models.Enrollment
	require.NoError(t, db.First(&updated, enrollment.ID).Error)
	require.Equal(t, 100, updated.ProgressPercentage)
	require.NotNil(t, updated.CompletedAt)

	// A lesson added after completion drops the percentage and clears the
	// completion timestamp on the next recompute. Read into a fresh struct:
	// gorm leaves the CompletedAt pointer untouched when scanning a NULL
	// column into a destination that already holds a value.
	require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, Title: "Bonus", OrderIndex: 3, Duration: 100}).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, &enrollment))

	var regrown models.Enrollment
	require.NoError(t, db.First(&regrown, enrollment.ID).Error)
	assert.Equal(t, 67, regrown.ProgressPercentage)
	assert.Nil(t, regrown.CompletedAt)
}
