package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/cli/clitest"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/notifier"
)

func signedIn(t *testing.T) *clitest.Env {
	t.Helper()
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")
	return env
}

func TestListShowsSeededNotifications(t *testing.T) {
	env := signedIn(t)

	if err := (&ListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	for _, want := range []string{"Welcome aboard", "Take your first mock", "2 unread"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q: %q", want, out)
		}
	}
}

func TestReadAndReadAll(t *testing.T) {
	env := signedIn(t)
	items, err := env.Ctx.Client.Notifications.List(env.Ctx.Base)
	if err != nil || len(items) != 2 {
		t.Fatalf("seeded notifications = %v, %v", items, err)
	}

	if err := (&ReadCmd{ID: "missing"}).Run(env.Ctx); err == nil {
		t.Error("reading an unknown id should fail")
	}

	if err := (&ReadCmd{ID: items[0].ID}).Run(env.Ctx); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "1 unread left") {
		t.Errorf("read output = %q", out)
	}

	if err := (&ReadAllCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("read-all failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "✓ All marked as read") {
		t.Errorf("read-all output = %q", out)
	}

	if err := (&ListCmd{Unread: true}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "No notifications.") {
		t.Errorf("unread list output = %q", out)
	}
	if err := (&ReadAllCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "Nothing unread.") {
		t.Errorf("second read-all output = %q", out)
	}
}

func TestReadAllFailureIsReported(t *testing.T) {
	env := signedIn(t)
	env.Server.FailNext(http.MethodPut, "/notifications/read-all", http.StatusInternalServerError, "")

	err := (&ReadAllCmd{}).Run(env.Ctx)
	if err == nil || !cli.IsReported(err) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "❌ Failed to mark all as read") {
		t.Errorf("output = %q", out)
	}
}

func TestWatchOnceForwardsToWebhook(t *testing.T) {
	env := signedIn(t)

	var mu sync.Mutex
	var got []notifier.WebhookPayload
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p notifier.WebhookPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
	}))
	defer hook.Close()

	if err := env.Server.Notify("asha@example.com", models.Notification{Type: models.NotificationAlert, Title: "Streak at risk", Message: "Log today"}); err != nil {
		t.Fatal(err)
	}

	if err := (&WatchCmd{Once: true, Webhook: hook.URL}).Run(env.Ctx); err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	if out := env.Output(); !strings.Contains(out, "Streak at risk") {
		t.Errorf("watch output = %q", out)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 {
		t.Errorf("forwarded %d notifications, want 3", len(got))
	}
}

func TestWatchStopsWithContext(t *testing.T) {
	env := signedIn(t)
	ctx, cancel := context.WithCancel(env.Ctx.Base)
	env.Ctx.Base = ctx

	done := make(chan error, 1)
	go func() { done <- (&WatchCmd{Schedule: "@every 1h"}).Run(env.Ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchRejectsBadWebhook(t *testing.T) {
	env := signedIn(t)
	if err := (&WatchCmd{Once: true, Webhook: "localhost:9"}).Run(env.Ctx); err == nil {
		t.Error("expected an error for a webhook without a scheme")
	}
}
