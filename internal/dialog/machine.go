package dialog

import (
	"fmt"

	"github.com/AlexGrady9/SuperShopBot/internal/catalog"
	"github.com/AlexGrady9/SuperShopBot/internal/model"
)

// User-facing copy. Kept together so the dialogue reads consistently.
const (
	msgGreeting       = "Hello! 👋\nI'm your personal shop assistant. Please choose a product category below:"
	msgNoCategories   = "Sorry, there are no product categories available right now. Please check back soon!"
	msgEmptyCategory  = "There are no products in this category right now. Please pick another category."
	msgAskName        = "Wonderful choice! What's your name?"
	msgNameEmpty      = "Please enter your name (it can't be empty). If you made a mistake, just type your name again."
	msgNameIsCategory = "Please enter your name, not a category name. If you made a mistake, just type your name again."
	msgAskPhone       = "Could you share your phone number?"
	msgPhoneInvalid   = "Please enter a valid phone number (digits only, 7-15 characters). If you made a mistake, just type your phone number again."
	msgAskAddress     = "Almost done! What's your delivery address?"
	msgAddressInvalid = "Please enter a valid delivery address. If you made a mistake, just type your address again."
	msgInvalidProduct = "Sorry, that product is not available anymore. Please choose another one from the menu."
	msgFallback       = "I'm sorry, I didn't quite catch that. Please use the menu or type /start to begin again. 🌟"
	summaryTemplate   = "Thank you, %s!\nOrder details:\nProduct ID: %d\nPhone: %s\nAddress: %s\nYour order has been received! (Payment is simulated for demo purposes)"
)

// Outcome is the result of one transition: the session to commit, the
// replies to send in order, and the completed draft when the dialogue
// finished an order. Rejected marks a recoverable guard failure, Fallback
// marks input nothing else recognized; both leave the stage unchanged.
type Outcome struct {
	Session   model.Session
	Replies   []Reply
	Finalized *model.Draft
	Rejected  bool
	Fallback  bool
}

// Machine computes dialogue transitions. Step is a pure function of the
// session, the event and the current catalog snapshot; it never mutates
// shared state, so the session store can run it under its per-user lock.
type Machine struct {
	catalog *catalog.Service
}

// NewMachine creates a dialogue machine over the given catalog.
func NewMachine(cat *catalog.Service) *Machine {
	return &Machine{catalog: cat}
}

// Step applies one classified event to the session and returns the next
// session plus the replies to emit. All guard failures are recoverable:
// the session keeps its stage and the user is re-prompted.
func (m *Machine) Step(sess model.Session, ev Event) Outcome {
	switch ev.Kind {
	case EventCommand:
		// Only start/menu reach the machine; they restart the dialogue
		// from any stage. orders/feedback are stubs answered upstream.
		return m.mainMenu(sess)
	case EventProductSelect:
		return m.selectProduct(sess, ev.ProductID)
	case EventCategorySelect:
		return m.selectCategory(sess, ev.Category)
	case EventText:
		return m.text(sess, ev.Text)
	}
	return fallback(sess)
}

// mainMenu resets the session and lists the categories.
func (m *Machine) mainMenu(sess model.Session) Outcome {
	categories := m.catalog.Categories()
	if len(categories) == 0 {
		return Outcome{Session: sess.Reset(), Replies: []Reply{TextReply(msgNoCategories)}}
	}

	options := make([]Option, 0, len(categories))
	for _, category := range categories {
		options = append(options, Option{Label: category, Data: category})
	}
	menu := Reply{Text: msgGreeting, Options: options}
	return Outcome{Session: sess.Reset(), Replies: []Reply{menu}}
}

// selectCategory lists the products of a category. Outside idle a category
// tap is treated as invalid input for the current stage, so an in-progress
// order is never derailed by a stray menu press.
func (m *Machine) selectCategory(sess model.Session, text string) Outcome {
	if sess.Stage != model.StageIdle {
		return m.rePrompt(sess)
	}

	category, ok := m.catalog.MatchCategory(text)
	if !ok {
		return fallback(sess)
	}

	products := m.catalog.ProductsByCategory(category)
	if len(products) == 0 {
		return stay(sess, TextReply(msgEmptyCategory))
	}

	replies := make([]Reply, 0, len(products))
	for _, p := range products {
		replies = append(replies, Reply{
			Text:  fmt.Sprintf("%s\nPrice: %.2f\n%s", p.Name, p.Price, p.Description),
			Photo: p.Photo,
			Options: []Option{
				{Label: "Buy " + p.Name, Data: fmt.Sprintf("buy_%d", p.ID)},
			},
		})
	}
	return Outcome{Session: sess, Replies: replies}
}

// selectProduct starts (or restarts) the order dialogue for a product. A
// selection that no longer resolves in the catalog is rejected without a
// state change.
func (m *Machine) selectProduct(sess model.Session, productID int) Outcome {
	if _, ok := m.catalog.ProductByID(productID); !ok {
		return reject(sess, msgInvalidProduct)
	}

	next := sess.Reset()
	next.Stage = model.StageAwaitingName
	next.Draft.ProductID = productID
	return Outcome{Session: next, Replies: []Reply{TextReply(msgAskName)}}
}

func (m *Machine) text(sess model.Session, text string) Outcome {
	switch sess.Stage {
	case model.StageAwaitingName:
		return m.takeName(sess, text)
	case model.StageAwaitingPhone:
		return m.takePhone(sess, text)
	case model.StageAwaitingAddress:
		return m.takeAddress(sess, text)
	}

	// Idle: free text naming a category browses it; anything else falls
	// through to the generic guidance. The category check runs first so
	// the fallback can never mask it.
	if _, ok := m.catalog.MatchCategory(text); ok {
		return m.selectCategory(sess, text)
	}
	return fallback(sess)
}

func (m *Machine) takeName(sess model.Session, text string) Outcome {
	name := trimmed(text)
	if name == "" {
		return reject(sess, msgNameEmpty)
	}
	if !ValidName(name, m.catalog.Categories()) {
		return reject(sess, msgNameIsCategory)
	}

	next := sess
	next.Draft.Name = name
	next.Stage = model.StageAwaitingPhone
	return Outcome{Session: next, Replies: []Reply{TextReply(msgAskPhone)}}
}

func (m *Machine) takePhone(sess model.Session, text string) Outcome {
	phone := trimmed(text)
	if !ValidPhone(phone) {
		return reject(sess, msgPhoneInvalid)
	}

	next := sess
	next.Draft.Phone = phone
	next.Stage = model.StageAwaitingAddress
	return Outcome{Session: next, Replies: []Reply{TextReply(msgAskAddress)}}
}

func (m *Machine) takeAddress(sess model.Session, text string) Outcome {
	address := trimmed(text)
	if !ValidAddress(address) {
		return reject(sess, msgAddressInvalid)
	}

	draft := sess.Draft
	draft.Address = address
	summary := fmt.Sprintf(summaryTemplate, draft.Name, draft.ProductID, draft.Phone, draft.Address)
	return Outcome{
		Session:   sess.Reset(),
		Replies:   []Reply{TextReply(summary)},
		Finalized: &draft,
	}
}

// rePrompt repeats the current stage's guidance without changing anything.
func (m *Machine) rePrompt(sess model.Session) Outcome {
	switch sess.Stage {
	case model.StageAwaitingName:
		return reject(sess, msgNameIsCategory)
	case model.StageAwaitingPhone:
		return reject(sess, msgPhoneInvalid)
	case model.StageAwaitingAddress:
		return reject(sess, msgAddressInvalid)
	}
	return fallback(sess)
}

func stay(sess model.Session, replies ...Reply) Outcome {
	return Outcome{Session: sess, Replies: replies}
}

func reject(sess model.Session, msg string) Outcome {
	return Outcome{Session: sess, Replies: []Reply{TextReply(msg)}, Rejected: true}
}

func fallback(sess model.Session) Outcome {
	return Outcome{Session: sess, Replies: []Reply{TextReply(msgFallback)}, Fallback: true}
}
