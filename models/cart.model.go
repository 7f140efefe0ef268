package models

import "gorm.io/gorm"

// CartItem is a course waiting in a user's cart until checkout. Removed items
// are hard-deleted so the course can be re-added later.
type CartItem struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_cart"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_cart"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}
