package models

import "gorm.io/gorm"

// Course represents a course in the marketplace catalog
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Instructor   string  `json:"instructor"`
	Category     string  `json:"category" gorm:"index"`
	Level        string  `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	Price        float64 `json:"price" gorm:"default:0"`
	Rating       float64 `json:"rating" gorm:"default:0"`
	Students     int64   `json:"students" gorm:"default:0"`
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}
