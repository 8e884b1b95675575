package session

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/preptrack/internal/config"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/keyring"
	"github.com/julianstephens/preptrack/internal/logger"
)

// Open returns the Store selected by cfg.Session.Backend. The keyring backend
// falls back to sqlite when no OS keyring is reachable.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Session.Backend {
	case constants.SessionBackendKeyring:
		if keyring.IsAvailable() {
			return NewKeyringStore(), nil
		}
		logger.Warn("OS keyring unavailable, falling back to sqlite session storage")
		return OpenSQLite(ctx, dbPath(cfg))
	case constants.SessionBackendSQLite:
		return OpenSQLite(ctx, dbPath(cfg))
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func dbPath(cfg config.Config) string {
	if cfg.Session.Path != "" {
		return cfg.Session.Path
	}
	return filepath.Join(cfg.Dir, constants.SessionDBName)
}
