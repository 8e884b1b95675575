package constants

const (
	AppName            = "preptrack"
	DefaultKeyringUser = "session-token"
	KeyringUserProfile = "session-user"
	DefaultConfigDir   = "~/.config/preptrack"
	Version            = "v0.3.0"

	// APIURLEnv is the one environment variable the client needs: the backend base URL
	APIURLEnv = "PREPTRACK_API_URL"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Session backends
	SessionBackendKeyring = "keyring"
	SessionBackendSQLite  = "sqlite"
	SessionDBName         = "session.db"

	// Watch lockfile
	WatchLockfileName = "preptrack-watch.lock"

	// Page sizes used by the tracker history lists
	DailyPageSize     = 30
	MockPageSize      = 50
	SoftSkillPageSize = 50

	// Insights query limits
	DashboardMockStatsLimit   = 5
	DashboardSkillsLimit      = 100
	DashboardSkillsWindowDays = 7
	AnalysisLimit             = 20
	AnalysisSectionWindow     = 5

	// Toast queue cap
	DefaultToastMax = 20

	// Password rules
	MinPasswordLength = 6
)
