package notify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/preptrack/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// ErrAlreadyRunning is returned when a live watcher holds the lockfile
var ErrAlreadyRunning = errors.New("another notification watcher is already running")

// Lock is a single-instance lockfile holding "pid|started-at"
type Lock struct {
	path string
}

// AcquireLock takes the lockfile at path. A lockfile left by a process that is
// gone, or that is not preptrack, is treated as stale and replaced.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	if content, err := os.ReadFile(path); err == nil {
		pid, err := parseLock(content)
		if err == nil && pid != getpidFunc() && ownerAlive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
	}

	content := fmt.Sprintf("%d|%s", getpidFunc(), time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

func parseLock(content []byte) (int, error) {
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid < 1 {
		return 0, errors.New("invalid process ID in lockfile")
	}
	if _, err := time.Parse(time.RFC3339, parts[1]); err != nil {
		return 0, errors.New("invalid start time in lockfile")
	}
	return pid, nil
}

func ownerAlive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

func (l *Lock) Path() string {
	return l.path
}

// Release removes the lockfile
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
