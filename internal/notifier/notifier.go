package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/preptrack/internal/models"
)

// SecretHeader carries the shared secret the receiving hook can check
const SecretHeader = "X-Preptrack-Secret"

// Notifier forwards notifications to a local webhook, such as a desktop tray
// app or a chat relay.
type Notifier struct {
	url    string
	secret string
	client *http.Client
}

type WebhookPayload struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

// New validates the hook URL. secret may be empty.
func New(hookURL, secret string) (*Notifier, error) {
	u, err := url.Parse(strings.TrimSpace(hookURL))
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("webhook URL must start with http:// or https://")
	}
	if u.Host == "" {
		return nil, errors.New("webhook URL has no host")
	}
	return &Notifier{
		url:    u.String(),
		secret: secret,
		client: &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func Payload(n models.Notification) WebhookPayload {
	return WebhookPayload{
		ID:         n.ID,
		Type:       string(n.Type),
		Title:      n.Title,
		Text:       n.Message,
		DurationMs: durationMs,
	}
}

const durationMs = 5000

func (n *Notifier) Notify(ctx context.Context, item models.Notification) error {
	jsonData, err := json.Marshal(Payload(item))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set(SecretHeader, n.secret)
	}

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
}
