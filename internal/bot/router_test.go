package bot

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AlexGrady9/SuperShopBot/internal/catalog"
	"github.com/AlexGrady9/SuperShopBot/internal/dialog"
	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/internal/session"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
)

type stubSource struct {
	products []model.Product
}

func (s stubSource) Load() ([]model.Product, error) {
	return s.products, nil
}

type fakeSink struct {
	mu     sync.Mutex
	orders []model.Order
	err    error
}

func (f *fakeSink) Append(_ context.Context, ord model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, ord)
	return nil
}

func newTestRouter(sink *fakeSink) (*Router, *session.Store) {
	cat := catalog.NewService(stubSource{products: []model.Product{
		{ID: 7, Name: "Smart Watch", Price: 129.99, Category: "Electronics"},
	}}, nil)
	sessions := session.NewStore()
	router := NewRouter(sessions, dialog.NewMachine(cat), sink)
	return router, sessions
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		upd  Update
		want dialog.Event
	}{
		{"buy callback", Update{Callback: "buy_7"}, dialog.ProductEvent(7)},
		{"malformed buy callback", Update{Callback: "buy_x"}, dialog.ProductEvent(0)},
		{"category callback", Update{Callback: "Electronics"}, dialog.CategoryEvent("Electronics")},
		{"start command", Update{Text: "/start"}, dialog.CommandEvent("start")},
		{"command with argument", Update{Text: "/menu now"}, dialog.CommandEvent("menu")},
		{"orders alias", Update{Text: "My Orders"}, dialog.CommandEvent("orders")},
		{"feedback alias", Update{Text: "FEEDBACK"}, dialog.CommandEvent("feedback")},
		{"free text", Update{Text: " hello "}, dialog.TextEvent("hello")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.upd))
		})
	}
}

func TestStubCommands(t *testing.T) {
	router, sessions := newTestRouter(&fakeSink{})
	ctx := context.Background()

	replies := router.Dispatch(ctx, Update{UserID: "u1", Text: "/orders"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "don't have any orders")

	replies = router.Dispatch(ctx, Update{UserID: "u1", Text: "feedback"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "feedback")

	// Stubs never touch the session.
	assert.Equal(t, model.StageIdle, sessions.Get("u1").Stage)
}

func TestDispatchFullOrder(t *testing.T) {
	sink := &fakeSink{}
	router, sessions := newTestRouter(sink)
	ctx := context.Background()

	router.Dispatch(ctx, Update{UserID: "u1", Callback: "buy_7"})
	router.Dispatch(ctx, Update{UserID: "u1", Text: "Alice"})
	router.Dispatch(ctx, Update{UserID: "u1", Text: "5551234"})
	replies := router.Dispatch(ctx, Update{UserID: "u1", Text: "1 Main St"})

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Thank you, Alice!")

	require.Len(t, sink.orders, 1)
	ord := sink.orders[0]
	assert.Equal(t, "u1", ord.UserID)
	assert.Equal(t, 7, ord.ProductID)
	assert.Equal(t, "Alice", ord.Name)
	assert.Equal(t, "5551234", ord.Phone)
	assert.Equal(t, "1 Main St", ord.Address)
	assert.NotEmpty(t, ord.Reference)
	assert.False(t, ord.CreatedAt.IsZero())

	assert.Equal(t, model.StageIdle, sessions.Get("u1").Stage)
}

func TestSinkFailureRetainsSession(t *testing.T) {
	sink := &fakeSink{err: errors.New("connection refused")}
	router, sessions := newTestRouter(sink)
	ctx := context.Background()

	router.Dispatch(ctx, Update{UserID: "u1", Callback: "buy_7"})
	router.Dispatch(ctx, Update{UserID: "u1", Text: "Alice"})
	router.Dispatch(ctx, Update{UserID: "u1", Text: "5551234"})

	replies := router.Dispatch(ctx, Update{UserID: "u1", Text: "1 Main St"})
	require.Len(t, replies, 1)
	assert.Equal(t, msgSinkFailure, replies[0].Text)

	// The session stays at the address stage with the draft intact.
	sess := sessions.Get("u1")
	assert.Equal(t, model.StageAwaitingAddress, sess.Stage)
	assert.Equal(t, "Alice", sess.Draft.Name)

	// Once the sink recovers, resending the address completes the order.
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	replies = router.Dispatch(ctx, Update{UserID: "u1", Text: "1 Main St"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "Thank you, Alice!")
	require.Len(t, sink.orders, 1)
	assert.Equal(t, model.StageIdle, sessions.Get("u1").Stage)
}

func TestUnknownCommandFallsBack(t *testing.T) {
	router, sessions := newTestRouter(&fakeSink{})

	replies := router.Dispatch(context.Background(), Update{UserID: "u1", Text: "/frobnicate"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "didn't quite catch that")
	assert.Equal(t, model.StageIdle, sessions.Get("u1").Stage)
}

func TestInvalidSelectionKeepsIdle(t *testing.T) {
	router, sessions := newTestRouter(&fakeSink{})

	replies := router.Dispatch(context.Background(), Update{UserID: "u1", Callback: "buy_999"})
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "not available")
	assert.Equal(t, model.StageIdle, sessions.Get("u1").Stage)
}

func TestConcurrentDispatchSameUser(t *testing.T) {
	sink := &fakeSink{}
	router, sessions := newTestRouter(sink)
	ctx := context.Background()

	router.Dispatch(ctx, Update{UserID: "u1", Callback: "buy_7"})

	// A name and a phone-looking message race; whichever applies first
	// becomes the name, the other is judged by the next stage's guard.
	// Either way the session must land in a consistent stage with no
	// lost update.
	var wg sync.WaitGroup
	for _, text := range []string{"Alice", "5551234"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			router.Dispatch(ctx, Update{UserID: "u1", Text: text})
		}(text)
	}
	wg.Wait()

	sess := sessions.Get("u1")
	switch sess.Stage {
	case model.StageAwaitingPhone:
		// The digits won the race and became the name; "Alice" then
		// failed the phone guard.
		assert.Equal(t, "5551234", sess.Draft.Name)
	case model.StageAwaitingAddress:
		assert.Equal(t, "Alice", sess.Draft.Name)
		assert.Equal(t, "5551234", sess.Draft.Phone)
	default:
		t.Fatalf("unexpected stage %q", sess.Stage)
	}
}

func TestDispatchUsesContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router, _ := newTestRouter(&fakeSink{})

	ctx := logger.WithContext(context.Background(), zap.New(core))
	router.Dispatch(ctx, Update{UserID: "u1", Text: "/start"})

	entries := logs.FilterMessage("Dispatching update").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u1", fields["user_id"])
	assert.Equal(t, "command", fields["event_kind"])
}
