package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_review"` // Who gave the review
	CourseID  uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_review"`
	Rating    int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"` // 1–5 rating
	Comment   string `json:"comment" gorm:"type:text;default:''"`                      // Optional comment
	IsDeleted bool   `gorm:"default:false"`
}
