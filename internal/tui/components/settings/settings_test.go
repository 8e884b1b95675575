package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/models"
)

type fakeUsers struct{ u *models.User }

func (f *fakeUsers) User() *models.User { return f.u }

type fakeAccount struct {
	users     *fakeUsers
	toggled   []bool
	passwords int
	err       error
}

func (f *fakeAccount) ChangePassword(ctx context.Context, current, next, confirm string) error {
	f.passwords++
	return f.err
}

func (f *fakeAccount) SetNotifications(ctx context.Context, enabled bool) (*models.User, error) {
	f.toggled = append(f.toggled, enabled)
	f.users.u.NotificationsEnabled = enabled
	return f.users.u, nil
}

func press(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestToggleNotifications(t *testing.T) {
	users := &fakeUsers{u: &models.User{Name: "Asha", NotificationsEnabled: true}}
	acct := &fakeAccount{users: users}
	m := New(context.Background(), users, acct)

	cmd := m.Update(press("t"))
	if cmd == nil {
		t.Fatal("toggle returned no command")
	}
	m.Update(cmd())
	if len(acct.toggled) != 1 || acct.toggled[0] {
		t.Errorf("toggled = %v, want [false]", acct.toggled)
	}
	if !strings.Contains(m.View(), "disabled") {
		t.Errorf("view = %q", m.View())
	}
}

func TestPasswordFormOpensAndCloses(t *testing.T) {
	users := &fakeUsers{u: &models.User{}}
	m := New(context.Background(), users, &fakeAccount{users: users})

	m.Update(press("p"))
	if !m.Capturing() || !strings.Contains(m.View(), "Change password") {
		t.Fatalf("password form not shown: %q", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should close the form")
	}
}

func TestFailedPasswordChangeReopensBlankForm(t *testing.T) {
	users := &fakeUsers{u: &models.User{}}
	m := New(context.Background(), users, &fakeAccount{users: users})
	m.Update(press("p"))
	m.pw = passwordFields{Current: "a", New: "b", Confirm: "c"}

	m.Update(doneMsg{err: errors.New("Passwords do not match")})
	if m.form == nil {
		t.Fatal("form closed after a failure")
	}
	if m.pw != (passwordFields{}) {
		t.Errorf("fields not cleared: %+v", m.pw)
	}
}
