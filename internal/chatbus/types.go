// Package chatbus carries the narrow slice of the chat transport that the
// Reset Command Handler needs, modeled on the teacher's internal/bus
// package but stripped to exactly the fields a chat-command handler reads.
// The full channel protocol adapters (Telegram/Discord/Slack/WhatsApp/
// Zalo/Feishu) that produce an InboundMessage are out of scope
// (SPEC_FULL.md §4.10); this package exists so internal/resetcmd has
// something concrete to consume without importing the teacher's entire
// gateway/bus layer.
package chatbus

// InboundMessage is a chat message routed to a command handler.
type InboundMessage struct {
	SenderID   string
	ChatID     string
	Content    string
	SessionKey string
}

// OutboundMessage is a command handler's reply.
type OutboundMessage struct {
	ChatID  string
	Content string
}

// HandlerResult tells the dispatcher whether to keep trying other
// handlers. The Reset Command Handler always returns StopDispatch=true
// once it recognizes the message, win or lose (spec.md §4.10, "the
// dispatcher is told not to fall through to further handlers").
type HandlerResult struct {
	Reply        *OutboundMessage
	StopDispatch bool
}
