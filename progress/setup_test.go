package progress

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "progress.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonProgress{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, lessonCount, duration int) (models.Course, []models.Lesson) {
	t.Helper()

	course := models.Course{Title: "Go From Scratch", Category: "Web Development", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	lessons := make([]models.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			CourseID:   course.ID,
			Title:      fmt.Sprintf("Lesson %d", i+1),
			OrderIndex: i + 1,
			Duration:   duration,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return course, lessons
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// fakeClock lets tests drive the recorder's throttle window.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestRecorder(db *gorm.DB) (*Recorder, *fakeClock) {
	clock := &fakeClock{t: time.Now()}
	r := NewRecorder(db)
	r.now = clock.Now
	return r, clock
}

func fetchProgress(t *testing.T, db *gorm.DB, enrollmentID, lessonID uint) models.LessonProgress {
	t.Helper()

	var row models.LessonProgress
	require.NoError(t, db.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).First(&row).Error)
	return row
}
