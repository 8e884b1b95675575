// Package mentor is the in-memory AI mentor conversation.
package mentor

import (
	"context"
	"strings"
	"sync"

	"github.com/julianstephens/preptrack/internal/api"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/models"
)

const (
	Welcome  = "Hi! I'm your AI Mentor. I've analyzed your performance data. How can I help you with your CAT preparation today?"
	Fallback = "I'm sorry, I'm having trouble connecting right now. Please try again later."
)

var suggestions = []string{
	"How can I improve my Quants score?",
	"Analyze my latest mock performance",
	"Give me a study plan for next week",
	"How to improve reading speed for VARC?",
}

// Suggestions returns the canned prompts offered under the chat
func Suggestions() []string {
	return append([]string(nil), suggestions...)
}

type ChatAPI interface {
	Chat(ctx context.Context, req models.ChatRequest) (*api.ChatReply, error)
}

// Conversation is the transcript of one mentor session. It starts with the
// welcome message, which is never sent to the server.
type Conversation struct {
	api ChatAPI

	mu       sync.Mutex
	messages []models.ChatMessage
	sending  bool
}

func New(c ChatAPI) *Conversation {
	return &Conversation{
		api:      c,
		messages: []models.ChatMessage{{Role: models.RoleAssistant, Content: Welcome}},
	}
}

// Send appends text as a user message and the mentor's reply (or an error
// reply) as an assistant message. Blank text, or a send while another is in
// flight, is ignored and reports false.
func (c *Conversation) Send(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if text == "" || c.sending {
		c.mu.Unlock()
		return false
	}
	history := append([]models.ChatMessage(nil), c.messages[1:]...)
	c.messages = append(c.messages, models.ChatMessage{Role: models.RoleUser, Content: text})
	c.sending = true
	c.mu.Unlock()

	reply, err := c.api.Chat(ctx, models.ChatRequest{Message: text, ChatHistory: history})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = false
	switch {
	case err != nil:
		c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Content: apperrors.Message(err, Fallback)})
	case reply.Success:
		c.messages = append(c.messages, models.ChatMessage{Role: models.RoleAssistant, Content: reply.Reply})
	}
	return true
}

func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}

func (c *Conversation) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending
}
