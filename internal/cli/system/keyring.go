package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/keyring"
)

type KeyringCmd struct {
	Status KeyringStatusCmd `cmd:"" default:"1" help:"Check the OS keyring and the session stored in it."`
	Clear  KeyringClearCmd  `cmd:"" help:"Remove the session from the OS keyring."`
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		ctx.Printf("   Set session.backend to %q to keep sessions in a local database.\n", constants.SessionBackendSQLite)
		return errors.New("keyring unavailable")
	}
	ctx.Println("✓ OS keyring is available")

	// Check if a session is stored
	token, err := keyring.Get(constants.DefaultKeyringUser)
	switch {
	case err == nil:
		ctx.Printf("✓ Session token is stored in keyring (%s)\n", maskToken(token))
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No session token stored in keyring")
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	if _, err := keyring.Get(constants.KeyringUserProfile); err == nil {
		ctx.Println("✓ Cached profile is stored in keyring")
	}
	return nil
}

// KeyringClearCmd removes the stored token and cached profile
type KeyringClearCmd struct{}

func (cmd *KeyringClearCmd) Run(ctx *cli.Context) error {
	for _, key := range []string{constants.DefaultKeyringUser, constants.KeyringUserProfile} {
		if err := keyring.Delete(key); err != nil {
			return err
		}
	}
	ctx.Println("✓ Session removed from OS keyring")
	return nil
}

// maskToken keeps a short prefix so two tokens can be told apart
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return fmt.Sprintf("%s****, %d chars", token[:8], len(token))
}
