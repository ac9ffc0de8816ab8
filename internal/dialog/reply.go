package dialog

// Option is one selectable affordance attached to a reply, e.g. a category
// menu button or a per-product buy button. Data is the callback payload the
// gateway sends back when the option is tapped.
type Option struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Reply is one outbound message. Text is always set; Options and Photo are
// optional, covering the three message shapes the gateway can render.
type Reply struct {
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
	Photo   string   `json:"photo,omitempty"`
}

// TextReply builds a plain text reply.
func TextReply(text string) Reply {
	return Reply{Text: text}
}
