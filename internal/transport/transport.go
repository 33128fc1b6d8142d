package transport

import "context"

// The core selects channels and builds payloads; actual delivery is an
// external capability invoked through these interfaces. Each call is
// best-effort fire, not a delivery receipt, and each may fail
// independently. Implementations are chosen once at composition time by
// the caller, never by the components using them.

// SMSSender delivers a plain-text message to phone numbers
type SMSSender interface {
	SendSMS(ctx context.Context, recipients []string, body string) error
}

// ChatSender delivers a structured block payload to a chat channel
type ChatSender interface {
	SendChatMessage(ctx context.Context, channel string, payload ChatMessage) error
}

// EmailSender delivers an HTML document to email addresses
type EmailSender interface {
	SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error
}

// ChatField is one labeled value in a chat block payload
type ChatField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ChatAction is one action link attached to a chat message
type ChatAction struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ChatMessage is the structured block payload sent to chat channels
type ChatMessage struct {
	Title   string       `json:"title"`
	Fields  []ChatField  `json:"fields"`
	Actions []ChatAction `json:"actions,omitempty"`
}
