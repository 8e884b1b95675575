package constants

const (
	// Environment overrides
	EnvSessionBackend = "PREPTRACK_SESSION_BACKEND"
	EnvHTTPTimeout    = "PREPTRACK_HTTP_TIMEOUT"
	EnvDebug          = "PREPTRACK_DEBUG"
	EnvConfigFile     = "PREPTRACK_CONFIG"

	// Config file names inside the config directory
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"

	// Default values
	DefaultAPIURL         = "http://localhost:5000/api"
	DefaultSessionBackend = SessionBackendKeyring
	DefaultDevServerAddr  = "127.0.0.1:5000"
)
