package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexGrady9/SuperShopBot/internal/dialog"
	"github.com/AlexGrady9/SuperShopBot/internal/model"
	"github.com/AlexGrady9/SuperShopBot/internal/order"
	"github.com/AlexGrady9/SuperShopBot/internal/session"
	"github.com/AlexGrady9/SuperShopBot/pkg/logger"
	"github.com/AlexGrady9/SuperShopBot/prometheus"
)

const (
	msgOrdersStub   = "You don't have any orders yet. But every journey starts with a first step! 🚀"
	msgFeedbackStub = "Thank you for sharing your thoughts! Your feedback makes me better every day. 💌"
	msgSinkFailure  = "Sorry, we couldn't confirm your order just now. Nothing was lost — please send your delivery address again."
)

// Command is a registered top-level command, mirrored to the gateway at
// startup so clients can render a command menu.
type Command struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Commands returns the commands the router understands.
func Commands() []Command {
	return []Command{
		{Name: "start", Description: "Start the bot"},
		{Name: "menu", Description: "Show main menu"},
		{Name: "orders", Description: "My orders"},
		{Name: "feedback", Description: "Leave feedback"},
	}
}

// Update is one raw inbound gateway event: either typed text or the
// callback data of a tapped option, plus the gateway-authenticated user id.
type Update struct {
	UserID   string `json:"user_id"`
	Text     string `json:"text,omitempty"`
	Callback string `json:"callback,omitempty"`
}

// Router classifies inbound updates into tagged events, drives the session
// store and the dialogue machine, and hands finalized orders to the sink.
// It owns no state of its own; everything is injected, and it logs through
// the request-scoped logger carried in the context.
type Router struct {
	sessions *session.Store
	machine  *dialog.Machine
	sink     order.Sink
}

// NewRouter wires the dispatcher.
func NewRouter(sessions *session.Store, machine *dialog.Machine, sink order.Sink) *Router {
	return &Router{sessions: sessions, machine: machine, sink: sink}
}

// Classify turns a raw update into exactly one tagged event. Commands and
// their bare-text aliases are resolved here, buy callbacks become product
// selections, other callbacks are category selections, and everything else
// stays free text for the machine to interpret.
func Classify(upd Update) dialog.Event {
	if upd.Callback != "" {
		if id, ok := parseBuyCallback(upd.Callback); ok {
			return dialog.ProductEvent(id)
		}
		return dialog.CategoryEvent(upd.Callback)
	}

	text := strings.TrimSpace(upd.Text)
	lower := strings.ToLower(text)

	if strings.HasPrefix(text, "/") {
		name, _, _ := strings.Cut(strings.TrimPrefix(lower, "/"), " ")
		return dialog.CommandEvent(name)
	}
	switch lower {
	case "my orders":
		return dialog.CommandEvent("orders")
	case "feedback":
		return dialog.CommandEvent("feedback")
	}
	return dialog.TextEvent(text)
}

// parseBuyCallback extracts the product id from "buy_<id>" callback data.
// A malformed payload yields id 0, which never resolves in the catalog, so
// it surfaces as an ordinary invalid selection.
func parseBuyCallback(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, "buy_")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		return 0, true
	}
	return id, true
}

// Dispatch handles one inbound update end to end and returns the ordered
// replies to send back through the gateway.
func (r *Router) Dispatch(ctx context.Context, upd Update) []dialog.Reply {
	ev := Classify(upd)
	log := logger.FromContext(ctx).With(
		zap.String("user_id", upd.UserID),
		zap.String("event_kind", string(ev.Kind)))
	log.Info("Dispatching update")

	// Stub commands answer without touching the session.
	if ev.Kind == dialog.EventCommand {
		switch ev.Command {
		case "orders":
			return []dialog.Reply{dialog.TextReply(msgOrdersStub)}
		case "feedback":
			return []dialog.Reply{dialog.TextReply(msgFeedbackStub)}
		case "start", "menu":
			// Handled by the machine below.
		default:
			// Unknown command: same guidance as any unrecognized text.
			ev = dialog.TextEvent(upd.Text)
		}
	}

	var replies []dialog.Reply
	r.sessions.Apply(upd.UserID, func(sess model.Session) model.Session {
		out := r.machine.Step(sess, ev)

		if out.Finalized != nil {
			if committed := r.finalize(ctx, upd.UserID, *out.Finalized, log); !committed {
				// Retain-for-retry: keep the session in its current
				// stage so resending the address retries the append.
				replies = []dialog.Reply{dialog.TextReply(msgSinkFailure)}
				return sess
			}
		}

		r.record(sess, out, ev)
		replies = out.Replies
		return out.Session
	})
	return replies
}

func (r *Router) finalize(ctx context.Context, userID string, draft model.Draft, log *zap.Logger) bool {
	ord := model.Order{
		Reference: uuid.New().String(),
		UserID:    userID,
		ProductID: draft.ProductID,
		Name:      draft.Name,
		Phone:     draft.Phone,
		Address:   draft.Address,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.sink.Append(ctx, ord); err != nil {
		prometheus.RecordOrderSinkFailure()
		log.Error("Order sink append failed, keeping session for retry",
			zap.String("reference", ord.Reference),
			zap.Error(err))
		return false
	}

	prometheus.RecordOrderFinalized()
	log.Info("Order finalized",
		zap.String("reference", ord.Reference),
		zap.Int("product_id", ord.ProductID))
	return true
}

func (r *Router) record(prev model.Session, out dialog.Outcome, ev dialog.Event) {
	switch {
	case out.Fallback:
		prometheus.RecordFallback()
	case out.Rejected:
		prometheus.RecordRejection(string(prev.Stage))
	case out.Session.Stage != prev.Stage:
		prometheus.RecordTransition(string(prev.Stage), string(out.Session.Stage))
	}
	if ev.Kind == dialog.EventCategorySelect {
		prometheus.RecordProductView(ev.Category)
	}
}
