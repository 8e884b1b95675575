package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/julianstephens/preptrack/internal/models"
)

type NotificationService struct {
	c *Client
}

func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	var out envelope[[]models.Notification]
	if err := s.c.do(ctx, http.MethodGet, "/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil, nil)
}

type AIService struct {
	c *Client
}

// ChatReply mirrors the {success, data} reply of the mentor endpoint
type ChatReply struct {
	Success bool
	Reply   string
}

func (s *AIService) Chat(ctx context.Context, req models.ChatRequest) (*ChatReply, error) {
	var out envelope[string]
	if err := s.c.do(ctx, http.MethodPost, "/ai/chat", nil, req, &out); err != nil {
		return nil, err
	}
	return &ChatReply{Success: out.Success, Reply: out.Data}, nil
}

type InsightsService struct {
	c *Client
}

func (s *InsightsService) Dashboard(ctx context.Context, opts ListOptions) (*models.DashboardInsights, error) {
	var out envelope[models.DashboardInsights]
	if err := s.c.do(ctx, http.MethodGet, "/insights/dashboard", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
