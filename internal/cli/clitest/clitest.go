// Package clitest runs commands against an in-process development backend.
package clitest

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/config"
	"github.com/julianstephens/preptrack/internal/devserver"
	"github.com/julianstephens/preptrack/internal/session"
)

type Env struct {
	Ctx      *cli.Context
	Server   *devserver.Server
	Sessions *session.MemoryStore
	out      *bytes.Buffer
}

func New(t *testing.T) *Env {
	t.Helper()
	srv := devserver.New(devserver.Options{BcryptCost: bcrypt.MinCost})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := config.Default(t.TempDir())
	cfg.API.URL = ts.URL + "/api"

	sessions := session.NewMemoryStore()
	ctx := cli.NewContext(context.Background(), &cfg, sessions)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")
	t.Cleanup(ctx.Close)

	return &Env{Ctx: ctx, Server: srv, Sessions: sessions, out: out}
}

// SignUp registers an account and leaves it signed in
func (e *Env) SignUp(t *testing.T, name, email, password string) {
	t.Helper()
	if _, err := auth.NewService(e.Ctx.Client.Auth, e.Ctx.Auth).SignUp(e.Ctx.Base, name, email, password); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
}

// Output returns what the commands printed since the last call
func (e *Env) Output() string {
	s := e.out.String()
	e.out.Reset()
	return s
}
