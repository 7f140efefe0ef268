package models

import "gorm.io/gorm"

// Lesson is a single video lesson within a course. OrderIndex defines the
// playback sequence and is unique within the course.
type Lesson struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_course_order"`
	Title         string `json:"title"`
	OrderIndex    int    `json:"order_index" gorm:"default:0;uniqueIndex:idx_course_order"`
	Duration      int    `json:"duration" gorm:"default:0"` // seconds, 0 = unknown
	VideoURL      string `json:"video_url"`
	IsFreePreview bool   `json:"is_free_preview" gorm:"default:false"`
	IsDeleted     bool   `gorm:"default:false"`
}
