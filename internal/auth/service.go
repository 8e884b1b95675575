package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/constants"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/models"
)

// Authenticator is the subset of the auth endpoints the sign-in flows use
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (*api.AuthResult, error)
	Register(ctx context.Context, r models.Registration) (*api.AuthResult, error)
}

// ValidationError is a client-side rejection shown verbatim to the user
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string       { return e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }

// FlowError wraps a failed sign-in or sign-up with the text to show
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string       { return e.Message }
func (e *FlowError) UserMessage() string { return e.Message }
func (e *FlowError) Unwrap() error       { return e.Err }

// Service runs the login and register flows against the API and records the
// result in the Store.
type Service struct {
	api   Authenticator
	store *Store
}

func NewService(a Authenticator, store *Store) *Service {
	return &Service{api: a, store: store}
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Message: "Please provide both email and password"}
	}

	res, err := s.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, &FlowError{Message: apperrors.Message(err, "Authorization failed"), Err: err}
	}
	if err := s.store.Login(res.Token, res.User); err != nil {
		return nil, err
	}
	return &res.User, nil
}

func (s *Service) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, &ValidationError{Message: "All fields are required"}
	}
	if len(password) < constants.MinPasswordLength {
		return nil, &ValidationError{Message: "Password too short (min 6)"}
	}

	res, err := s.api.Register(ctx, models.Registration{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, &FlowError{Message: apperrors.Message(err, "Authorization failed"), Err: err}
	}
	if err := s.store.Login(res.Token, res.User); err != nil {
		return nil, err
	}
	return &res.User, nil
}

// IsValidation reports whether err was rejected before any network call
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	}
	return ""
}

// PasswordStrength grades a password by length: under 6 weak, under 10 medium
func PasswordStrength(pw string) Strength {
	switch n := len(pw); {
	case n == 0:
		return StrengthNone
	case n < 6:
		return StrengthWeak
	case n < 10:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
