package model

import (
	"time"
)

// Order is a finalized order record. It is written once by the order sink
// and never updated afterwards.
type Order struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Reference string    `json:"reference" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);index;not null"`
	ProductID int       `json:"product_id" gorm:"not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(15);not null"`
	Address   string    `json:"address" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
