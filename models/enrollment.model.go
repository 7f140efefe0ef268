package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a course they purchased. At most one enrollment
// exists per (user, course); the completion evaluator keeps
// ProgressPercentage in step with the user's completed lessons.
type Enrollment struct {
	gorm.Model
	UserID             uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID           uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"` // 0-100
	CompletedAt        *time.Time `json:"completed_at"`
	IsDeleted          bool       `gorm:"default:false"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}
