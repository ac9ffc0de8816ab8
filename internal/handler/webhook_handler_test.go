package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexGrady9/SuperShopBot/internal/bot"
	"github.com/AlexGrady9/SuperShopBot/internal/catalog"
	"github.com/AlexGrady9/SuperShopBot/internal/dialog"
	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/internal/session"
)

type stubSource struct {
	products []model.Product
}

func (s stubSource) Load() ([]model.Product, error) {
	return s.products, nil
}

type noopSink struct{}

func (noopSink) Append(context.Context, model.Order) error { return nil }

func newTestWebhook() *WebhookHandler {
	cat := catalog.NewService(stubSource{products: []model.Product{
		{ID: 1, Name: "Lamp", Price: 19.5, Category: "Home"},
	}}, nil)
	router := bot.NewRouter(session.NewStore(), dialog.NewMachine(cat), noopSink{})
	return NewWebhookHandler(router)
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Receive(e.NewContext(req, rec)))
	return rec
}

func TestReceiveStart(t *testing.T) {
	rec := postWebhook(t, newTestWebhook(), `{"user_id":"u1","text":"/start"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Replies []dialog.Reply `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Replies, 1)
	assert.Contains(t, resp.Replies[0].Text, "shop assistant")
	assert.Equal(t, []dialog.Option{{Label: "Home", Data: "Home"}}, resp.Replies[0].Options)
}

func TestReceiveRequiresUserID(t *testing.T) {
	rec := postWebhook(t, newTestWebhook(), `{"text":"/start"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommandsEndpoint(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/webhook/commands", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, newTestWebhook().Commands(e.NewContext(req, rec)))

	var commands []bot.Command
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commands))
	require.Len(t, commands, 4)
	assert.Equal(t, "start", commands[0].Name)
}
