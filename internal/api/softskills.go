package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/julianstephens/preptrack/internal/models"
)

type SoftSkillService struct {
	c *Client
}

// SoftSkillList is a page of sessions plus the server's count
type SoftSkillList struct {
	Sessions []models.SoftSkillSession
	Count    int
}

func (s *SoftSkillService) Create(ctx context.Context, sk models.SoftSkillSession) (*models.SoftSkillSession, error) {
	var out envelope[models.SoftSkillSession]
	if err := s.c.do(ctx, http.MethodPost, "/softskills", nil, sk, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *SoftSkillService) List(ctx context.Context, opts ListOptions) (*SoftSkillList, error) {
	var out envelope[[]models.SoftSkillSession]
	if err := s.c.do(ctx, http.MethodGet, "/softskills", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Data {
		out.Data[i].Date = models.Day(out.Data[i].Date)
	}
	return &SoftSkillList{Sessions: out.Data, Count: out.Count}, nil
}

func (s *SoftSkillService) Get(ctx context.Context, id string) (*models.SoftSkillSession, error) {
	var out envelope[models.SoftSkillSession]
	if err := s.c.do(ctx, http.MethodGet, "/softskills/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *SoftSkillService) Update(ctx context.Context, id string, sk models.SoftSkillSession) (*models.SoftSkillSession, error) {
	var out envelope[models.SoftSkillSession]
	if err := s.c.do(ctx, http.MethodPut, "/softskills/"+url.PathEscape(id), nil, sk, &out); err != nil {
		return nil, err
	}
	out.Data.Date = models.Day(out.Data.Date)
	return &out.Data, nil
}

func (s *SoftSkillService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, http.MethodDelete, "/softskills/"+url.PathEscape(id), nil, nil, nil)
}

func (s *SoftSkillService) Stats(ctx context.Context, opts ListOptions) (*models.SoftSkillStats, error) {
	var out envelope[models.SoftSkillStats]
	if err := s.c.do(ctx, http.MethodGet, "/softskills/stats/summary", opts.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
