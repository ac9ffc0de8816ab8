package dialog

// EventKind discriminates inbound events. The router classifies each
// transport update exactly once; the machine switches on the tag, so the
// fallback arm can never shadow a stage transition.
type EventKind string

const (
	// EventText is free text typed by the user.
	EventText EventKind = "text"
	// EventCategorySelect is an explicit category menu selection.
	EventCategorySelect EventKind = "category_select"
	// EventProductSelect is a product "buy" selection.
	EventProductSelect EventKind = "product_select"
	// EventCommand is a recognized top-level command.
	EventCommand EventKind = "command"
)

// Event is one classified inbound user action.
type Event struct {
	Kind      EventKind
	Text      string // EventText
	Category  string // EventCategorySelect
	ProductID int    // EventProductSelect
	Command   string // EventCommand
}

// TextEvent builds a free-text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// CategoryEvent builds a category selection event.
func CategoryEvent(category string) Event {
	return Event{Kind: EventCategorySelect, Category: category}
}

// ProductEvent builds a product selection event.
func ProductEvent(id int) Event {
	return Event{Kind: EventProductSelect, ProductID: id}
}

// CommandEvent builds a command event.
func CommandEvent(name string) Event {
	return Event{Kind: EventCommand, Command: name}
}
