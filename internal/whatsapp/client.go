package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"supaagent/internal/contextutil"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_sender.go -package=mocks supaagent/internal/whatsapp Sender

const (
	sendAttempts  = 3
	sendBaseDelay = 100 * time.Millisecond
	sendMaxDelay  = 2 * time.Second
)

// Sender delivers outbound messages to a WhatsApp user.
type Sender interface {
	// SendText sends a text message from the given business phone number.
	SendText(ctx context.Context, phoneNumberID, to, body string) error
}

// Client talks to the Meta Graph API. It implements Sender.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a Graph API client. baseURL is the versioned API root,
// e.g. "https://graph.facebook.com/v20.0".
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type sendTextRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Text             sendText `json:"text"`
}

type sendText struct {
	Body string `json:"body"`
}

// SendText sends a text message, retrying transient failures with backoff.
func (c *Client) SendText(ctx context.Context, phoneNumberID, to, body string) error {
	payload, err := json.Marshal(sendTextRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             sendText{Body: body},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, phoneNumberID)
	err = retry.Do(
		func() error {
			return c.post(ctx, url, payload)
		},
		retry.Context(ctx),
		retry.Attempts(sendAttempts),
		retry.Delay(sendBaseDelay),
		retry.MaxDelay(sendMaxDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	contextutil.LoggerFromContext(ctx).Info("WhatsApp message sent",
		"phone_number_id", phoneNumberID,
		"to", to,
	)
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach Graph API: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("Graph API returned status %d: %s", resp.StatusCode, string(responseBody))
		// Client errors other than rate limiting will not succeed on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Unrecoverable(err)
		}
		return err
	}
	return nil
}
