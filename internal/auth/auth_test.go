package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/devserver"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	client   *api.Client
	sessions *session.MemoryStore
	store    *auth.Store
	service  *auth.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ts := httptest.NewServer(devserver.New(devserver.Options{BcryptCost: bcrypt.MinCost}).Handler())
	t.Cleanup(ts.Close)

	sessions := session.NewMemoryStore()
	client := api.New(ts.URL+"/api", sessions)
	store := auth.NewStore(client.Auth, sessions)
	return &env{client: client, sessions: sessions, store: store, service: auth.NewService(client.Auth, store)}
}

func TestInitWithoutToken(t *testing.T) {
	e := newEnv(t)
	if e.store.Status() != auth.StatusLoading {
		t.Fatalf("initial status = %v, want loading", e.store.Status())
	}

	var seen []auth.Status
	e.store.Subscribe(func(s auth.Status) { seen = append(seen, s) })

	if got := e.store.Init(context.Background()); got != auth.StatusUnauthenticated {
		t.Errorf("Init() = %v, want unauthenticated", got)
	}
	if e.store.IsAuthenticated() || e.store.User() != nil {
		t.Error("store should hold no user")
	}
	if len(seen) != 1 || seen[0] != auth.StatusUnauthenticated {
		t.Errorf("subscriber saw %v", seen)
	}
}

func TestInitRestoresSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	if _, err := e.service.SignUp(ctx, "Asha", "a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}

	// a fresh process with the same persisted session
	store := auth.NewStore(e.client.Auth, e.sessions)
	if got := store.Init(ctx); got != auth.StatusAuthenticated {
		t.Fatalf("Init() = %v, want authenticated", got)
	}
	if u := store.User(); u == nil || u.Email != "a@b.com" {
		t.Errorf("User() = %+v", u)
	}
	cached, _ := e.sessions.User()
	if cached == nil || cached.Email != "a@b.com" {
		t.Errorf("cached user = %+v", cached)
	}
}

func TestInitWithRejectedTokenClearsSession(t *testing.T) {
	e := newEnv(t)
	_ = e.sessions.SetToken("expired-or-forged")
	_ = e.sessions.SetUser(models.User{ID: "ghost"})

	if got := e.store.Init(context.Background()); got != auth.StatusUnauthenticated {
		t.Errorf("Init() = %v, want unauthenticated", got)
	}
	if tok, _ := e.sessions.Token(); tok != "" {
		t.Errorf("token survived: %q", tok)
	}
	if u, _ := e.sessions.User(); u != nil {
		t.Errorf("user survived: %+v", u)
	}
}

func TestSignIn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	if _, err := e.client.Auth.Register(ctx, models.Registration{Name: "Asha", Email: "a@b.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	e.store.Init(ctx)

	tests := []struct {
		name     string
		email    string
		password string
		wantMsg  string
	}{
		{name: "missing password", email: "a@b.com", wantMsg: "Please provide both email and password"},
		{name: "missing email", password: "secret1", wantMsg: "Please provide both email and password"},
		{name: "wrong password", email: "a@b.com", password: "nope", wantMsg: "Invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.service.SignIn(ctx, tt.email, tt.password)
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("SignIn() err = %v, want %q", err, tt.wantMsg)
			}
			if e.store.IsAuthenticated() {
				t.Error("failed sign-in authenticated the store")
			}
		})
	}

	u, err := e.service.SignIn(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if !e.store.IsAuthenticated() || e.store.User().ID != u.ID {
		t.Error("store not authenticated after sign-in")
	}
	if tok, _ := e.sessions.Token(); tok == "" {
		t.Error("token not persisted")
	}
}

func TestSignUpValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.service.SignUp(ctx, "", "a@b.com", "secret1")
	if !auth.IsValidation(err) || err.Error() != "All fields are required" {
		t.Errorf("err = %v", err)
	}
	_, err = e.service.SignUp(ctx, "Asha", "a@b.com", "12345")
	if !auth.IsValidation(err) || err.Error() != "Password too short (min 6)" {
		t.Errorf("err = %v", err)
	}

	if _, err := e.service.SignUp(ctx, "Asha", "a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	_, err = e.service.SignUp(ctx, "Asha", "a@b.com", "secret1")
	var fe *auth.FlowError
	if !errors.As(err, &fe) || fe.Message != "User already exists" {
		t.Errorf("duplicate sign-up err = %v", err)
	}
}

func TestLogoutAndUpdateUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.store.UpdateUser(models.UserPatch{}); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("UpdateUser() while signed out err = %v", err)
	}

	if _, err := e.service.SignUp(ctx, "Asha", "a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	name := "Asha R"
	u, err := e.store.UpdateUser(models.UserPatch{Name: &name})
	if err != nil || u.Name != "Asha R" || u.Email != "a@b.com" {
		t.Errorf("UpdateUser() = %+v, %v", u, err)
	}
	if cached, _ := e.sessions.User(); cached == nil || cached.Name != "Asha R" {
		t.Errorf("persisted user = %+v", cached)
	}

	e.store.Logout()
	if e.store.IsAuthenticated() || e.store.Status() != auth.StatusUnauthenticated {
		t.Error("still authenticated after Logout")
	}
	if tok, _ := e.sessions.Token(); tok != "" {
		t.Error("token survived Logout")
	}
}

func TestFromContext(t *testing.T) {
	e := newEnv(t)
	ctx := auth.WithStore(context.Background(), e.store)
	if auth.FromContext(ctx) != e.store {
		t.Error("FromContext returned a different store")
	}

	defer func() {
		if recover() == nil {
			t.Error("FromContext without a store should panic")
		}
	}()
	auth.FromContext(context.Background())
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw   string
		want auth.Strength
	}{
		{"", auth.StrengthNone},
		{"abc", auth.StrengthWeak},
		{"abcdef", auth.StrengthMedium},
		{"abcdefghi", auth.StrengthMedium},
		{"abcdefghij", auth.StrengthStrong},
	}
	for _, tt := range tests {
		if got := auth.PasswordStrength(tt.pw); got != tt.want {
			t.Errorf("PasswordStrength(%q) = %v, want %v", tt.pw, got, tt.want)
		}
	}
}

type fakeAuthenticator struct {
	calls int
}

func (f *fakeAuthenticator) Login(ctx context.Context, creds models.Credentials) (*api.AuthResult, error) {
	f.calls++
	if creds.Email == "a@b.com" && creds.Password == "secret1" {
		return &api.AuthResult{Token: "t1", User: models.User{ID: "u1", Email: "a@b.com", Name: "Asha"}}, nil
	}
	return nil, &api.Error{Status: 400, Message: "Invalid credentials"}
}

func (f *fakeAuthenticator) Register(ctx context.Context, r models.Registration) (*api.AuthResult, error) {
	f.calls++
	return nil, &api.Error{Status: 500}
}

func TestSignInPersistsIssuedToken(t *testing.T) {
	sessions := session.NewMemoryStore()
	fake := &fakeAuthenticator{}
	store := auth.NewStore(nil, sessions)
	svc := auth.NewService(fake, store)
	ctx := context.Background()

	if _, err := svc.SignIn(ctx, "", ""); err == nil || fake.calls != 0 {
		t.Fatalf("validation should reject before any call, calls = %d", fake.calls)
	}

	if _, err := svc.SignIn(ctx, "a@b.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if tok, _ := sessions.Token(); tok != "t1" {
		t.Errorf("persisted token = %q, want t1", tok)
	}
	if u := store.User(); u == nil || u.ID != "u1" {
		t.Errorf("User() = %+v", u)
	}

	_, err := svc.SignUp(ctx, "Asha", "x@y.com", "secret1")
	if err == nil || err.Error() != "Authorization failed" {
		t.Errorf("SignUp() err = %v, want fallback message", err)
	}
}

func TestSignInRejectedWith401(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer ts.Close()

	sessions := session.NewMemoryStore()
	client := api.New(ts.URL+"/api", sessions)
	hooks := 0
	client.OnUnauthorized(func() { hooks++ })
	store := auth.NewStore(client.Auth, sessions)
	store.Init(context.Background())

	_, err := auth.NewService(client.Auth, store).SignIn(context.Background(), "a@b.com", "secret1")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("SignIn() err = %v, want %q", err, "Invalid credentials")
	}
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Errorf("err should wrap the 401: %v", err)
	}
	if hooks != 1 {
		t.Errorf("unauthorized hook ran %d times, want 1", hooks)
	}
	if store.IsAuthenticated() || store.Status() != auth.StatusUnauthenticated {
		t.Errorf("store status = %v, want unauthenticated", store.Status())
	}
	if tok, _ := sessions.Token(); tok != "" {
		t.Errorf("token stored after rejected sign-in: %q", tok)
	}
}
