package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/session"
)

const configTemplate = `# preptrack client configuration
api:
  url: %s
  timeout: 30s

session:
  # keyring or sqlite
  backend: %s
  path: %s

toast:
  ttl: %s
  max: %d

notifications:
  poll_interval: %s

log:
  debug: false
`

type InitCmd struct {
	APIURL  string `name:"api-url" help:"Backend base URL." default:"${api_url}"`
	Backend string `help:"Session backend (keyring|sqlite)." enum:"keyring,sqlite" default:"keyring"`
	Force   bool   `help:"Overwrite an existing config file."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	apiURL := strings.TrimSpace(c.APIURL)
	if apiURL == "" {
		apiURL = constants.DefaultAPIURL
	}
	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		return fmt.Errorf("API base URL must start with http:// or https://: %s", apiURL)
	}
	backend := c.Backend
	if backend == "" {
		backend = constants.DefaultSessionBackend
	}

	dir := ctx.Config.Dir
	path := filepath.Join(dir, constants.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to access config file: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	sessionPath := filepath.Join(dir, constants.SessionDBName)
	content := fmt.Sprintf(configTemplate, apiURL, backend, sessionPath,
		constants.ToastTTL, constants.DefaultToastMax, constants.NotificationPollInterval)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	ctx.Printf("Wrote config to: %s\n", path)

	if backend == constants.SessionBackendSQLite {
		s, err := session.OpenSQLite(ctx.Base, sessionPath)
		if err != nil {
			return err
		}
		defer s.Close()
		ctx.Printf("Initialized session storage at: %s\n", s.Path())
	}
	return nil
}
