package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookChatClient posts chat messages to an incoming-webhook URL.
// It is the one concrete transport this core ships; SMS and email
// remain external capabilities behind their interfaces.
type WebhookChatClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookChatClient creates a chat client for the given webhook URL
func NewWebhookChatClient(webhookURL string, timeout time.Duration) *WebhookChatClient {
	return &WebhookChatClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendChatMessage implements ChatSender by posting the payload as JSON
func (c *WebhookChatClient) SendChatMessage(ctx context.Context, channel string, payload ChatMessage) error {
	body := struct {
		Channel string `json:"channel"`
		ChatMessage
	}{
		Channel:     channel,
		ChatMessage: payload,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("chat webhook returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
