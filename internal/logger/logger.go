package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/preptrack/internal/constants"
)

const FileName = "preptrack.log"

// Logger is nil until Init runs; the helpers below are no-ops until then.
var Logger *log.Logger

var (
	mu   sync.Mutex
	file *lumberjack.Logger
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Quiet keeps stderr clean even in debug mode; the TUI owns the terminal.
	Quiet bool
}

// FilePath is where Init writes the rotated log for configDir
func FilePath(configDir string) string {
	return filepath.Join(configDir, "logs", FileName)
}

// Init (re)configures the global logger. Calling it again, as the TUI does to
// go quiet, closes the previous log file.
func Init(cfg Config) error {
	path := FilePath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
	}
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = file
	if cfg.Debug && !cfg.Quiet {
		w = io.MultiWriter(os.Stderr, file)
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Helper()
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Helper()
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Helper()
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Helper()
		Logger.Error(msg, keyvals...)
	}
}
