package order

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

// Feed is the read side of the order log, used only by the admin API.
// It is a reporting surface; the dialogue core never reads orders back.
type Feed struct {
	db *gorm.DB
}

// NewFeed creates a read-only view over the orders table.
func NewFeed(db *gorm.DB) *Feed {
	return &Feed{db: db}
}

// Recent lists the most recent orders, newest first.
func (f *Feed) Recent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []model.Order
	result := f.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&orders)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, result.Error)
	}
	return orders, nil
}
