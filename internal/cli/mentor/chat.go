package mentor

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/mentor"
	"github.com/julianstephens/preptrack/internal/models"
)

type ChatCmd struct {
	Message []string `arg:"" optional:"" help:"Ask a single question and exit. Omit for an interactive session."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	conv := mentor.New(ctx.Client.AI)

	if len(c.Message) > 0 {
		ask(ctx, conv, strings.Join(c.Message, " "))
		return nil
	}

	ctx.Printf("Mentor: %s\n\n", mentor.Welcome)
	suggestions := mentor.Suggestions()
	for i, s := range suggestions {
		ctx.Printf("  [%d] %s\n", i+1, s)
	}
	ctx.Println("\nType a question, a suggestion number, or /quit.")

	scanner := bufio.NewScanner(ctx.In)
	for {
		ctx.Printf("> ")
		if !scanner.Scan() {
			ctx.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(suggestions) {
			line = suggestions[n-1]
			ctx.Printf("You: %s\n", line)
		}
		ask(ctx, conv, line)
	}
}

// ask sends one message and prints the newest assistant reply
func ask(ctx *cli.Context, conv *mentor.Conversation, text string) {
	before := len(conv.Messages())
	if !conv.Send(ctx.Base, text) {
		return
	}
	msgs := conv.Messages()
	for _, m := range msgs[before:] {
		if m.Role == models.RoleAssistant {
			ctx.Printf("Mentor: %s\n\n", m.Content)
		}
	}
}
