package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/config"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/session"
	"github.com/julianstephens/preptrack/internal/toast"
)

// ErrNotSignedIn is returned by commands that need a session when there is none
var ErrNotSignedIn = errors.New("not signed in (run 'preptrack login')")

type Context struct {
	Base     context.Context
	Config   *config.Config
	Sessions session.Store
	Client   *api.Client
	Auth     *auth.Store
	Toasts   *toast.Store

	Out io.Writer
	In  io.Reader
}

// NewContext wires the API client and auth store over an opened session store
func NewContext(base context.Context, cfg *config.Config, sessions session.Store) *Context {
	client := api.New(cfg.API.URL, sessions, api.WithTimeout(cfg.API.Timeout))
	return &Context{
		Base:     base,
		Config:   cfg,
		Sessions: sessions,
		Client:   client,
		Auth:     auth.NewStore(client.Auth, sessions),
		Toasts:   toast.New(toast.WithTTL(cfg.Toast.TTL), toast.WithMax(cfg.Toast.Max)),
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

// Close releases the session store and the toast timers
func (c *Context) Close() {
	c.Toasts.Close()
	if closer, ok := c.Sessions.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close session store", "err", err)
		}
	}
}

// RequireUser resolves the stored session once and returns the signed-in user
func (c *Context) RequireUser() (*models.User, error) {
	if c.Auth.Status() == auth.StatusLoading {
		c.Auth.Init(c.Base)
	}
	u := c.Auth.User()
	if u == nil {
		return nil, ErrNotSignedIn
	}
	return u, nil
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// FlushToasts prints and dismisses the pending toasts, oldest first
func (c *Context) FlushToasts() {
	for _, t := range c.Toasts.Toasts() {
		c.Printf("%s %s\n", toastGlyph(t.Kind), t.Message)
		c.Toasts.Dismiss(t.ID)
	}
}

func toastGlyph(k toast.Kind) string {
	switch k {
	case toast.KindSuccess:
		return "✓"
	case toast.KindError:
		return "❌"
	case toast.KindWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// Settle flushes the toasts a service raised. A failure comes back marked as
// reported, since its toast already told the user.
func (c *Context) Settle(err error) error {
	c.FlushToasts()
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// userError prints as the user-facing message but keeps the cause
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// Fail turns a service or API error into the message the user should see
func Fail(err error, fallback string) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return &userError{msg: "session expired, sign in again with 'preptrack login'", err: err}
	}
	return &userError{msg: apperrors.Message(err, fallback), err: err}
}

// Truncate shortens s to n runes for table output
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// YesNo renders a flag for table output
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
