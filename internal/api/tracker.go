package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/julianstephens/preptrack/internal/models"
)

// TrackerService talks to the daily tracker endpoints. Entries are keyed by date.
type TrackerService struct {
	c *Client
}

// Upsert creates or replaces the entry for e.Date
func (s *TrackerService) Upsert(ctx context.Context, e models.DailyEntry) (*models.DailyEntry, error) {
	var out envelope[models.DailyEntry]
	if err := s.c.do(ctx, http.MethodPost, "/tracker", nil, e, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *TrackerService) List(ctx context.Context, opts ListOptions) ([]models.DailyEntry, error) {
	var out envelope[[]models.DailyEntry]
	if err := s.c.do(ctx, http.MethodGet, "/tracker", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Data {
		out.Data[i].Date = models.Day(out.Data[i].Date)
	}
	return out.Data, nil
}

func (s *TrackerService) Get(ctx context.Context, date string) (*models.DailyEntry, error) {
	var out envelope[*models.DailyEntry]
	if err := s.c.do(ctx, http.MethodGet, "/tracker/"+url.PathEscape(date), nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, &Error{Status: http.StatusNotFound}
	}
	out.Data.Date = models.Day(out.Data.Date)
	return out.Data, nil
}

func (s *TrackerService) Delete(ctx context.Context, date string) error {
	return s.c.do(ctx, http.MethodDelete, "/tracker/"+url.PathEscape(date), nil, nil, nil)
}

func (s *TrackerService) Stats(ctx context.Context, opts ListOptions) (*models.TrackerStats, error) {
	var out envelope[models.TrackerStats]
	if err := s.c.do(ctx, http.MethodGet, "/tracker/stats/summary", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
