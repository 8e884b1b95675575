package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/preptrack/internal/logger"
)

// userMessager is implemented by errors that carry a message meant for the user,
// such as a backend rejection with a server-provided message.
type userMessager interface {
	UserMessage() string
}

// Format renders err the way the CLI prints failures
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Message returns the user-facing message carried by err, or fallback when
// err carries none. Network failures and bare rejections both end up with the
// fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var um userMessager
	if stderrors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is
// ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("startup failed", "err", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
