package transport

import (
	"context"
	"fmt"
	"sync"
)

// MockCall records one delivery attempt made through the mock
type MockCall struct {
	Channel    string
	Recipients []string
	Subject    string
	Body       string
	ChatTarget string
	Payload    ChatMessage
}

// Mock implements all three sender interfaces, recording every call.
// Channels listed in failures return an error, for exercising the
// best-effort fan-out behavior.
type Mock struct {
	mu       sync.Mutex
	calls    []MockCall
	failures map[string]bool
}

// NewMock creates a mock transport that succeeds on every channel
func NewMock() *Mock {
	return &Mock{failures: make(map[string]bool)}
}

// FailChannel makes subsequent sends on the named channel ("sms",
// "chat", "email") return an error
func (m *Mock) FailChannel(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[channel] = true
}

// Calls returns a snapshot of every recorded delivery attempt
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns the recorded calls for one channel
func (m *Mock) CallsFor(channel string) []MockCall {
	var out []MockCall
	for _, call := range m.Calls() {
		if call.Channel == channel {
			out = append(out, call)
		}
	}
	return out
}

// SendSMS implements SMSSender
func (m *Mock) SendSMS(ctx context.Context, recipients []string, body string) error {
	return m.record(MockCall{Channel: "sms", Recipients: recipients, Body: body})
}

// SendChatMessage implements ChatSender
func (m *Mock) SendChatMessage(ctx context.Context, channel string, payload ChatMessage) error {
	return m.record(MockCall{Channel: "chat", ChatTarget: channel, Payload: payload})
}

// SendEmail implements EmailSender
func (m *Mock) SendEmail(ctx context.Context, recipients []string, subject, htmlBody string) error {
	return m.record(MockCall{Channel: "email", Recipients: recipients, Subject: subject, Body: htmlBody})
}

func (m *Mock) record(call MockCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, call)
	if m.failures[call.Channel] {
		return fmt.Errorf("mock %s transport failure", call.Channel)
	}
	return nil
}
