package chat

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/mentor"
	"github.com/julianstephens/preptrack/internal/models"
)

type echoAPI struct {
	sent []string
}

func (e *echoAPI) Chat(ctx context.Context, req models.ChatRequest) (*api.ChatReply, error) {
	e.sent = append(e.sent, req.Message)
	return &api.ChatReply{Success: true, Reply: "Focus on " + req.Message}, nil
}

func TestSuggestionThenSend(t *testing.T) {
	a := &echoAPI{}
	m := New(context.Background(), mentor.New(a))
	m.SetSize(100, 30)
	m.Enter()

	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	if got := m.input.Value(); got != mentor.Suggestions()[0] {
		t.Fatalf("input = %q", got)
	}

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	if m.input.Value() != "" {
		t.Error("input not cleared after send")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected a batch")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(replyMsg); ok {
			m.Update(msg)
		}
	}
	if len(a.sent) != 1 {
		t.Fatalf("sent = %v", a.sent)
	}
	if !strings.Contains(m.View(), "Focus on") {
		t.Errorf("reply not rendered: %q", m.View())
	}
}

func TestBlankEnterSendsNothing(t *testing.T) {
	a := &echoAPI{}
	m := New(context.Background(), mentor.New(a))
	m.SetSize(80, 24)
	if cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("blank input produced a command")
	}
	if !strings.Contains(m.View(), "Hi! I'm your AI Mentor") {
		t.Errorf("welcome missing: %q", m.View())
	}
}
