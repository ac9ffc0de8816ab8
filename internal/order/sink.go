package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

// ErrSinkUnavailable wraps any storage error raised while appending a
// finalized order. Callers must surface it to the user rather than report
// the order as completed.
var ErrSinkUnavailable = errors.New("order sink unavailable")

// Sink appends finalized orders to durable storage. Append-only: the core
// never updates or deletes an order once written.
type Sink interface {
	Append(ctx context.Context, order model.Order) error
}

// GormSink writes orders to the orders table.
type GormSink struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormSink creates a database-backed order sink.
func NewGormSink(db *gorm.DB, log *zap.Logger) *GormSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormSink{db: db, log: log}
}

// Append inserts the finalized order.
func (s *GormSink) Append(ctx context.Context, order model.Order) error {
	result := s.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		s.log.Error("Failed to append order",
			zap.String("reference", order.Reference),
			zap.String("user_id", order.UserID),
			zap.Error(result.Error))
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, result.Error)
	}

	s.log.Info("Order appended",
		zap.String("reference", order.Reference),
		zap.String("user_id", order.UserID),
		zap.Int("product_id", order.ProductID))
	return nil
}
