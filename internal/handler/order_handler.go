package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/order"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
)

// OrderHandler serves the read-only order feed, a reporting surface
// separate from the dialogue core.
type OrderHandler struct {
	feed *order.Feed
}

// NewOrderHandler creates the order handler.
func NewOrderHandler(feed *order.Feed) *OrderHandler {
	return &OrderHandler{feed: feed}
}

// ListOrders handles retrieving recent finalized orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	log := logger.FromEcho(c)

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		} else {
			log.Warn("Invalid limit parameter", zap.String("value", raw))
		}
	}

	orders, err := h.feed.Recent(c.Request().Context(), limit)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}
