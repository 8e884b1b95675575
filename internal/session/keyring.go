package session

import (
	"errors"

	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/keyring"
	"github.com/julianstephens/preptrack/internal/models"
)

// KeyringStore keeps the session in the OS keyring
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Token() (string, error) {
	tok, err := keyring.Get(constants.DefaultKeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (s *KeyringStore) SetToken(token string) error {
	if token == "" {
		return keyring.Delete(constants.DefaultKeyringUser)
	}
	return keyring.Set(constants.DefaultKeyringUser, token)
}

func (s *KeyringStore) User() (*models.User, error) {
	raw, err := keyring.Get(constants.KeyringUserProfile)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (s *KeyringStore) SetUser(u models.User) error {
	raw, err := encodeUser(u)
	if err != nil {
		return err
	}
	return keyring.Set(constants.KeyringUserProfile, raw)
}

func (s *KeyringStore) Clear() error {
	return errors.Join(
		keyring.Delete(constants.DefaultKeyringUser),
		keyring.Delete(constants.KeyringUserProfile),
	)
}
