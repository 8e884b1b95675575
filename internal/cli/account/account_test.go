package account

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/cli/clitest"
)

func TestLoginAndWhoami(t *testing.T) {
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")
	env.Ctx.Auth.Logout()

	whoami := &WhoamiCmd{}
	if err := whoami.Run(env.Ctx); !errors.Is(err, cli.ErrNotSignedIn) {
		t.Fatalf("whoami while signed out = %v", err)
	}

	login := &LoginCmd{Email: "asha@example.com", Password: "secret1"}
	if err := login.Run(env.Ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Signed in as Asha") {
		t.Errorf("login output = %q", out)
	}

	if err := whoami.Run(env.Ctx); err != nil {
		t.Fatalf("whoami failed: %v", err)
	}
	out := env.Output()
	for _, want := range []string{"asha@example.com", "Role:          student", "Session until:"} {
		if !strings.Contains(out, want) {
			t.Errorf("whoami output missing %q: %q", want, out)
		}
	}
}

func TestLoginFailure(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"wrong password", "asha@example.com", "nope123", "Invalid credentials"},
		{"unknown email", "ghost@example.com", "secret1", "Invalid credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			env.SignUp(t, "Asha", "asha@example.com", "secret1")
			env.Ctx.Auth.Logout()

			err := (&LoginCmd{Email: tt.email, Password: tt.password}).Run(env.Ctx)
			if err == nil || err.Error() != tt.want {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
			if env.Ctx.Auth.IsAuthenticated() {
				t.Error("failed login should leave the user signed out")
			}
		})
	}
}

func TestRegisterAndLogout(t *testing.T) {
	env := clitest.New(t)

	cmd := &RegisterCmd{Name: "Ravi", Email: "ravi@example.com", Password: "Str0ng!pass"}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Account created for Ravi") || !strings.Contains(out, "Password strength:") {
		t.Errorf("register output = %q", out)
	}

	if err := (&LogoutCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if tok, _ := env.Sessions.Token(); tok != "" {
		t.Error("logout should clear the stored token")
	}
}

func TestProfileUpdate(t *testing.T) {
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")

	if err := (&ProfileUpdateCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "No changes specified") {
		t.Errorf("output = %q", out)
	}

	if err := (&ProfileUpdateCmd{Name: "Asha K"}).Run(env.Ctx); err != nil {
		t.Fatalf("profile update failed: %v", err)
	}
	out := env.Output()
	if !strings.Contains(out, "✓ Profile updated successfully") || !strings.Contains(out, "Asha K <asha@example.com>") {
		t.Errorf("output = %q", out)
	}
	if env.Ctx.Auth.User().Name != "Asha K" {
		t.Errorf("auth store not updated: %+v", env.Ctx.Auth.User())
	}
}

func TestPasswordCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     PasswordCmd
		want    string
		wantErr bool
	}{
		{"mismatch", PasswordCmd{Current: "secret1", New: "secret2", Confirm: "secret3"}, "❌ Passwords do not match", true},
		{"too short", PasswordCmd{Current: "secret1", New: "abc", Confirm: "abc"}, "❌ Password must be at least 6 characters", true},
		{"wrong current", PasswordCmd{Current: "wrong12", New: "secret2", Confirm: "secret2"}, "❌ Current password is incorrect", true},
		{"ok", PasswordCmd{Current: "secret1", New: "secret2", Confirm: "secret2"}, "✓ Password updated successfully", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			env.SignUp(t, "Asha", "asha@example.com", "secret1")

			err := tt.cmd.Run(env.Ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !cli.IsReported(err) {
				t.Errorf("failure should be marked reported: %v", err)
			}
			if out := env.Output(); !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}
