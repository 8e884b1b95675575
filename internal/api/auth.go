package api

import (
	"context"
	"net/http"

	"github.com/julianstephens/preptrack/internal/models"
)

type AuthService struct {
	c *Client
}

// AuthResult is the reply to login and register
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type userReply struct {
	User models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, r models.Registration) (*AuthResult, error) {
	var out AuthResult
	if err := s.c.do(ctx, http.MethodPost, "/auth/register", nil, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var out userReply
	if err := s.c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, p models.ProfileUpdate) (*models.User, error) {
	var out userReply
	if err := s.c.do(ctx, http.MethodPut, "/auth/profile", nil, p, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, p models.PasswordUpdate) error {
	return s.c.do(ctx, http.MethodPut, "/auth/password", nil, p, nil)
}

func (s *AuthService) UpdateSettings(ctx context.Context, p models.SettingsUpdate) (*models.User, error) {
	var out userReply
	if err := s.c.do(ctx, http.MethodPut, "/auth/settings", nil, p, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
