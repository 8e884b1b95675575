package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/julianstephens/preptrack/internal/models"
)

type MockService struct {
	c *Client
}

func (s *MockService) Create(ctx context.Context, m models.MockRecord) (*models.MockRecord, error) {
	var out envelope[models.MockRecord]
	if err := s.c.do(ctx, http.MethodPost, "/mock", nil, m, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *MockService) List(ctx context.Context, opts ListOptions) ([]models.MockRecord, error) {
	var out envelope[[]models.MockRecord]
	if err := s.c.do(ctx, http.MethodGet, "/mock", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Data {
		out.Data[i].Date = models.Day(out.Data[i].Date)
	}
	return out.Data, nil
}

func (s *MockService) Get(ctx context.Context, id string) (*models.MockRecord, error) {
	var out envelope[models.MockRecord]
	if err := s.c.do(ctx, http.MethodGet, "/mock/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *MockService) Update(ctx context.Context, id string, m models.MockRecord) (*models.MockRecord, error) {
	var out envelope[models.MockRecord]
	if err := s.c.do(ctx, http.MethodPut, "/mock/"+url.PathEscape(id), nil, m, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *MockService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/mock/"+url.PathEscape(id), nil, nil, nil)
}

func (s *MockService) Stats(ctx context.Context, opts ListOptions) (*models.MockStats, error) {
	var out envelope[models.MockStats]
	if err := s.c.do(ctx, http.MethodGet, "/mock/stats/summary", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
