package model

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item. The same struct is decoded from the
// JSON catalog file and mapped to the products table when the catalog is
// database-backed.
type Product struct {
	ID          int            `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Photo       string         `json:"photo" gorm:"type:varchar(512)"`
	Category    string         `json:"category" gorm:"type:varchar(100);index;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
