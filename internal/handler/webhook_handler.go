package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/bot"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
)

// WebhookHandler receives gateway updates and returns the replies to send.
type WebhookHandler struct {
	router *bot.Router
}

// NewWebhookHandler creates the webhook handler over the dispatcher.
func NewWebhookHandler(router *bot.Router) *WebhookHandler {
	return &WebhookHandler{router: router}
}

// Receive handles one inbound update from the messaging gateway
func (h *WebhookHandler) Receive(c echo.Context) error {
	log := logger.FromEcho(c)

	var upd bot.Update
	if err := c.Bind(&upd); err != nil {
		log.Error("Invalid update payload", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid update payload",
		})
	}

	if upd.UserID == "" {
		log.Warn("Update without user id")
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "user_id is required",
		})
	}

	// Carry the request-scoped logger (with request id) into dispatch.
	ctx := logger.WithContext(c.Request().Context(), log)
	replies := h.router.Dispatch(ctx, upd)
	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}

// Commands returns the registered top-level commands so the gateway can
// render a command menu, mirroring the command registration at startup.
func (h *WebhookHandler) Commands(c echo.Context) error {
	return c.JSON(http.StatusOK, bot.Commands())
}
