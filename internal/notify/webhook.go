package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"jobpulse/internal/common"
)

// WebhookClient delivers email and mobile-push messages through the platform's
// notification gateway.
type WebhookClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewWebhookClient(baseURL, apiKey string, httpClient *http.Client) *WebhookClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WebhookClient{
		baseURL:    trimmed,
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: httpClient,
	}
}

type emailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type pushRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (c *WebhookClient) SendEmail(ctx context.Context, to, subject, body string) error {
	return c.post(ctx, "/notifications/email", emailRequest{To: to, Subject: subject, Body: body})
}

func (c *WebhookClient) SendPush(ctx context.Context, ownerID common.UUID, title, body string) error {
	return c.post(ctx, "/notifications/push", pushRequest{UserID: ownerID.String(), Title: title, Body: body})
}

func (c *WebhookClient) post(ctx context.Context, path string, payload interface{}) error {
	if c.baseURL == "" {
		return fmt.Errorf("notification gateway is not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(payload))
		if message == "" {
			return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
		}
		return fmt.Errorf("notification gateway returned %d: %s", resp.StatusCode, message)
	}
	return nil
}
