// Package api is the HTTP client for the preptrack backend.
package api

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
	"sync"
	"time"

	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/logger"
)

// Session is the part of the persisted session the client needs: the token
// is read on every request and the whole session is cleared on a 401.
type Session interface {
	Token() (string, error)
	Clear() error
}

// Client is the shared request pipeline. Every service hangs off it.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions Session

	mu             sync.RWMutex
	onUnauthorized func()

	Auth          *AuthService
	Tracker       *TrackerService
	Mocks         *MockService
	SoftSkills    *SoftSkillService
	Notifications *NotificationService
	AI            *AIService
	Insights      *InsightsService
}

type Option func(*Client)

// WithTimeout bounds each request. Zero keeps no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUnauthorizedHandler registers the hook run after a 401 cleared the session
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func New(baseURL string, sessions Session, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Tracker = &TrackerService{c: c}
	c.Mocks = &MockService{c: c}
	c.SoftSkills = &SoftSkillService{c: c}
	c.Notifications = &NotificationService{c: c}
	c.AI = &AIService{c: c}
	c.Insights = &InsightsService{c: c}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized replaces the 401 hook
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// Health pings the backend's unauthenticated health endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.sessions != nil {
		token, err := c.sessions.Token()
		if err != nil {
			logger.Warn("failed to read session token", "err", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	logger.Debug("api request", "method", method, "path", path, "status", res.StatusCode, "took", time.Since(start))

	if res.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized()
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return newError(res.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) handleUnauthorized() {
	if c.sessions != nil {
		if err := c.sessions.Clear(); err != nil {
			logger.Error("failed to clear session after 401", "err", err)
		}
	}

	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

var (
	// ErrUnauthorized matches any *Error with status 401
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound matches any *Error with status 404
	ErrNotFound = errors.New("not found")
)

// Error is a non-2xx response. Message is the server's "message" field when
// the body carried one.
type Error struct {
	Status  int
	Message string
}

func newError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &Error{Status: status, Message: payload.Message}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// UserMessage is the text safe to show the user, empty when the server sent none
func (e *Error) UserMessage() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// envelope is the {success, data, count} wrapper most endpoints reply with
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Count   int  `json:"count"`
}

// ListOptions are the query parameters accepted by the list and stats endpoints
type ListOptions struct {
	Limit     int
	StartDate time.Time
	EndDate   time.Time
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Limit > 0 {
		v.Set("limit", fmt.Sprint(o.Limit))
	}
	if !o.StartDate.IsZero() {
		v.Set("startDate", o.StartDate.UTC().Format(time.RFC3339))
	}
	if !o.EndDate.IsZero() {
		v.Set("endDate", o.EndDate.UTC().Format(time.RFC3339))
	}
	return v
}
