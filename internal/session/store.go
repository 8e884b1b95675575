// Package session persists the bearer token and the cached user profile
// between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/preptrack/internal/models"
)

// ErrNotFound is returned when nothing is stored under a key
var ErrNotFound = errors.New("session value not found")

// Store is the persisted session storage. A missing token is "", nil and a
// missing user is nil, nil.
type Store interface {
	Token() (string, error)
	SetToken(token string) error
	User() (*models.User, error)
	SetUser(u models.User) error
	Clear() error
}

func encodeUser(u models.User) (string, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}
	return string(b), nil
}

func decodeUser(s string) (*models.User, error) {
	var u models.User
	if err := json.Unmarshal([]byte(s), &u); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &u, nil
}
