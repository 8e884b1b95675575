// Package account backs the profile and settings pages.
package account

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/toast"
)

const MinPasswordLength = 6

var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
)

type API interface {
	UpdateProfile(ctx context.Context, u models.ProfileUpdate) (*models.User, error)
	UpdatePassword(ctx context.Context, u models.PasswordUpdate) error
	UpdateSettings(ctx context.Context, u models.SettingsUpdate) (*models.User, error)
}

// UserStore is the slice of the auth store the account pages mutate
type UserStore interface {
	UpdateUser(patch models.UserPatch) (models.User, error)
}

type Toaster interface {
	Success(message string) toast.Toast
	Error(message string) toast.Toast
}

type Service struct {
	api    API
	users  UserStore
	toasts Toaster
}

func New(a API, users UserStore, toasts Toaster) *Service {
	return &Service{api: a, users: users, toasts: toasts}
}

// UpdateProfile saves the name and email and merges the server's copy of the
// user into the auth store.
func (s *Service) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	u, err := s.api.UpdateProfile(ctx, models.ProfileUpdate{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)})
	if err != nil {
		s.toasts.Error(apperrors.Message(err, "Update failed"))
		return nil, err
	}
	merged, err := s.users.UpdateUser(models.PatchFrom(*u))
	if err != nil {
		logger.Warn("Failed to persist updated profile", "error", err)
	}
	s.toasts.Success("Profile updated successfully")
	return &merged, nil
}

// ChangePassword checks the confirmation and length locally before calling
// the server. Local failures are toasted and returned without a request.
func (s *Service) ChangePassword(ctx context.Context, current, next, confirm string) error {
	switch {
	case next != confirm:
		s.toasts.Error(ErrPasswordMismatch.Error())
		return ErrPasswordMismatch
	case len(next) < MinPasswordLength:
		s.toasts.Error(ErrPasswordTooShort.Error())
		return ErrPasswordTooShort
	}
	if err := s.api.UpdatePassword(ctx, models.PasswordUpdate{CurrentPassword: current, NewPassword: next}); err != nil {
		s.toasts.Error(apperrors.Message(err, "Password update failed"))
		return err
	}
	s.toasts.Success("Password updated successfully")
	return nil
}

// SetNotifications toggles email notifications and merges the flag into the
// stored user.
func (s *Service) SetNotifications(ctx context.Context, enabled bool) (*models.User, error) {
	if _, err := s.api.UpdateSettings(ctx, models.SettingsUpdate{NotificationsEnabled: enabled}); err != nil {
		s.toasts.Error(apperrors.Message(err, "Failed to update settings"))
		return nil, err
	}
	merged, err := s.users.UpdateUser(models.UserPatch{NotificationsEnabled: &enabled})
	if err != nil {
		logger.Warn("Failed to persist settings", "error", err)
	}
	if enabled {
		s.toasts.Success("Notifications enabled")
	} else {
		s.toasts.Success("Notifications disabled")
	}
	return &merged, nil
}
