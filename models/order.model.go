package models

import "gorm.io/gorm"

// Order records a cart checkout. OrderRef is the reference shared with the user.
type Order struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"index;not null"`
	OrderRef    string      `json:"order_ref" gorm:"unique;not null"`
	TotalAmount float64     `json:"total_amount" gorm:"default:0"`
	Status      string      `json:"status" gorm:"default:'PAID'"` // PAID, REFUNDED
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	gorm.Model
	OrderID  uint    `json:"order_id" gorm:"index;not null"`
	CourseID uint    `json:"course_id" gorm:"not null"`
	Price    float64 `json:"price" gorm:"default:0"`
}
