package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is the watch-state record for one (enrollment, lesson) pair.
// WatchTimeSeconds never decreases and IsCompleted never reverts once set;
// both guards are enforced inside the recorder's upsert, not here.
type LessonProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"index;not null"`
	EnrollmentID     uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	LessonID         uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_enrollment_lesson"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
