package progress

import (
	"math"
	"time"

	"gorm.io/gorm"

	"lms/models"
)

// RecomputeEnrollmentProgress recalculates an enrollment's completion
// percentage from its completed lesson count and persists it. Running it again
// with no new completions produces the same percentage, so retries and the
// nightly reconciliation sweep are safe.
//
// A course with no lessons is left untouched: there is nothing to divide by
// and the prior percentage is kept.
func RecomputeEnrollmentProgress(db *gorm.DB, enrollment *models.Enrollment) error {
	var total int64
	if err := db.Model(&models.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	var completed int64
	if err := db.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&completed).Error; err != nil {
		return err
	}

	pct := int(math.Round(float64(completed) / float64(total) * 100))

	updates := map[string]interface{}{"progress_percentage": pct}
	if pct >= 100 {
		updates["completed_at"] = time.Now()
	} else {
		updates["completed_at"] = nil
	}
	return db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).Updates(updates).Error
}
