package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julianstephens/preptrack/internal/config"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/models"
	gokeyring "github.com/zalando/go-keyring"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "session.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStores(t *testing.T) {
	gokeyring.MockInit()

	stores := map[string]Store{
		"memory":  NewMemoryStore(),
		"keyring": NewKeyringStore(),
		"sqlite":  newSQLite(t),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			tok, err := s.Token()
			if err != nil || tok != "" {
				t.Fatalf("empty Token() = %q, %v", tok, err)
			}
			u, err := s.User()
			if err != nil || u != nil {
				t.Fatalf("empty User() = %v, %v", u, err)
			}

			if err := s.SetToken("t1"); err != nil {
				t.Fatalf("SetToken() failed: %v", err)
			}
			if err := s.SetToken("t2"); err != nil {
				t.Fatalf("SetToken() overwrite failed: %v", err)
			}
			want := models.User{ID: "u1", Name: "Asha", Email: "a@b.com", NotificationsEnabled: true}
			if err := s.SetUser(want); err != nil {
				t.Fatalf("SetUser() failed: %v", err)
			}

			if tok, _ := s.Token(); tok != "t2" {
				t.Errorf("Token() = %q, want t2", tok)
			}
			got, err := s.User()
			if err != nil || got == nil {
				t.Fatalf("User() = %v, %v", got, err)
			}
			if got.ID != want.ID || got.Email != want.Email || !got.NotificationsEnabled {
				t.Errorf("User() = %+v, want %+v", *got, want)
			}

			if err := s.Clear(); err != nil {
				t.Fatalf("Clear() failed: %v", err)
			}
			if tok, _ := s.Token(); tok != "" {
				t.Errorf("Token() after Clear = %q", tok)
			}
			if u, _ := s.User(); u != nil {
				t.Errorf("User() after Clear = %+v", u)
			}
			if err := s.Clear(); err != nil {
				t.Errorf("second Clear() = %v", err)
			}
		})
	}
}

func TestSQLiteReopenKeepsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetToken("persisted"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if tok, _ := s.Token(); tok != "persisted" {
		t.Errorf("Token() after reopen = %q", tok)
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	current, latest, err := s.SchemaVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if latest == 0 || current != latest {
		t.Errorf("SchemaVersion() = %d, %d; want an up to date schema", current, latest)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	gokeyring.MockInit()
	dir := t.TempDir()
	ctx := context.Background()

	cfg := config.Default(dir)
	cfg.Session.Backend = constants.SessionBackendKeyring
	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*KeyringStore); !ok {
		t.Errorf("Open(keyring) = %T", s)
	}

	cfg.Session.Backend = constants.SessionBackendSQLite
	s, err = Open(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	sq, ok := s.(*SQLiteStore)
	if !ok {
		t.Fatalf("Open(sqlite) = %T", s)
	}
	sq.Close()

	cfg.Session.Backend = "floppy"
	if _, err := Open(ctx, cfg); err == nil {
		t.Error("Open() with unknown backend should fail")
	}
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatal(err)
	}

	info, err := InspectToken(signed)
	if err != nil {
		t.Fatalf("InspectToken() failed: %v", err)
	}
	if info.Subject != "u1" {
		t.Errorf("Subject = %q, want u1", info.Subject)
	}
	if !info.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", info.ExpiresAt, exp)
	}
	if !info.Expired(time.Now()) {
		t.Error("token should be expired")
	}

	if (TokenInfo{}).Expired(time.Now()) {
		t.Error("token without exp should never expire")
	}

	if _, err := InspectToken("not-a-jwt"); err == nil {
		t.Error("InspectToken() should reject garbage")
	}
}
