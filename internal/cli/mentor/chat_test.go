package mentor

import (
	"net/http"
	"strings"
	"testing"

	"github.com/julianstephens/preptrack/internal/cli/clitest"
	"github.com/julianstephens/preptrack/internal/mentor"
)

func TestChatSingleQuestion(t *testing.T) {
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")

	if err := (&ChatCmd{Message: []string{"How", "do", "I", "improve?"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	if !strings.HasPrefix(out, "Mentor: ") || strings.Contains(out, mentor.Welcome) {
		t.Errorf("single-shot output = %q", out)
	}
}

func TestChatInteractive(t *testing.T) {
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")
	env.Ctx.In = strings.NewReader("\n2\n/quit\nnever sent\n")

	if err := (&ChatCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	if !strings.Contains(out, mentor.Welcome) {
		t.Errorf("missing welcome: %q", out)
	}
	if !strings.Contains(out, "You: Analyze my latest mock performance") {
		t.Errorf("suggestion number not expanded: %q", out)
	}
	if strings.Count(out, "Mentor: ") != 2 {
		t.Errorf("expected welcome plus one reply: %q", out)
	}
}

func TestChatFailureUsesFallback(t *testing.T) {
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")
	env.Server.FailNext(http.MethodPost, "/ai/chat", http.StatusBadGateway, "")

	if err := (&ChatCmd{Message: []string{"hello"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, mentor.Fallback) {
		t.Errorf("output = %q", out)
	}
}
