package skills

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type SkillsCmd struct {
	Add    SkillAddCmd    `cmd:"" help:"Log a soft-skill practice session."`
	Edit   SkillEditCmd   `cmd:"" help:"Edit a session."`
	List   SkillListCmd   `cmd:"" help:"List sessions."`
	Show   SkillShowCmd   `cmd:"" help:"Show one session."`
	Delete SkillDeleteCmd `cmd:"" help:"Delete a session."`
	Stats  SkillStatsCmd  `cmd:"" help:"Show practice totals."`
}

type SkillAddCmd struct {
	Topic    string `arg:"" help:"What was practised."`
	Type     string `short:"t" help:"Skill type (Essay|GD|Extempore|Interview|Presentation|'Structured Thinking')." default:"Essay"`
	Duration int    `short:"d" help:"Duration in minutes." required:""`
	Rating   int    `short:"r" help:"Self rating from 1 to 5." required:""`
	Note     string `help:"Optional note."`
	Date     string `help:"Date (YYYY-MM-DD, default: today)."`
}

func (c *SkillAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	form := tracker.NewSoftSkillForm()
	form.Type = normalizeType(c.Type)
	form.Topic = c.Topic
	form.Duration = strconv.Itoa(c.Duration)
	form.Rating = strconv.Itoa(c.Rating)
	form.Note = c.Note
	if c.Date != "" {
		form.Date = c.Date
	}

	if err := form.Validate(); err != nil {
		return err
	}
	s, err := ctx.Client.SoftSkills.Create(ctx.Base, form.Record())
	if err != nil {
		return cli.Fail(err, "Failed to save session")
	}
	ctx.Printf("Added session: %s, %s (ID: %s)\n", s.Type, s.Topic, s.ID)
	return nil
}

// normalizeType accepts skill types in any case
func normalizeType(s string) string {
	for _, t := range models.SkillTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return string(t)
		}
	}
	return s
}

type SkillEditCmd struct {
	ID       string  `arg:"" help:"Session ID to edit."`
	Topic    *string `help:"New topic."`
	Type     *string `short:"t" help:"New skill type."`
	Duration *int    `short:"d" help:"New duration in minutes."`
	Rating   *int    `short:"r" help:"New rating."`
	Note     *string `help:"New note."`
	Date     *string `help:"New date."`
}

func (c *SkillEditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	existing, err := ctx.Client.SoftSkills.Get(ctx.Base, c.ID)
	if err != nil {
		return cli.Fail(err, "Session not found")
	}

	form := tracker.NewSoftSkillForm()
	form.Load(*existing)

	updated := false
	if c.Topic != nil {
		form.Topic = *c.Topic
		updated = true
	}
	if c.Type != nil {
		form.Type = normalizeType(*c.Type)
		updated = true
	}
	if c.Duration != nil {
		form.Duration = strconv.Itoa(*c.Duration)
		updated = true
	}
	if c.Rating != nil {
		form.Rating = strconv.Itoa(*c.Rating)
		updated = true
	}
	if c.Note != nil {
		form.Note = *c.Note
		updated = true
	}
	if c.Date != nil {
		form.Date = *c.Date
		updated = true
	}
	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}

	if err := form.Validate(); err != nil {
		return err
	}
	if _, err := ctx.Client.SoftSkills.Update(ctx.Base, c.ID, form.Record()); err != nil {
		return cli.Fail(err, "Failed to save session")
	}
	ctx.Printf("Updated session: %s (ID: %s)\n", form.Topic, c.ID)
	return nil
}

type SkillListCmd struct {
	Limit int `short:"n" help:"Maximum number of sessions." default:"${skill_page_size}"`
}

func (c *SkillListCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	list, err := ctx.Client.SoftSkills.List(ctx.Base, api.ListOptions{Limit: c.Limit})
	if err != nil {
		return cli.Fail(err, "Failed to load sessions")
	}

	if len(list.Sessions) == 0 {
		ctx.Println("No practice sessions logged yet.")
		return nil
	}

	ctx.Printf("%-24s %-10s %-20s %-28s %-6s %-14s\n", "ID", "Date", "Type", "Topic", "Min", "Rating")
	ctx.Println(strings.Repeat("-", 106))
	for _, s := range list.Sessions {
		ctx.Printf("%-24s %-10s %-20s %-28s %-6d %-14s\n",
			s.ID, models.Day(s.Date), s.Type, cli.Truncate(s.Topic, 28), s.Duration, rating(s.Rating))
	}
	if list.Count > len(list.Sessions) {
		ctx.Printf("\nShowing %d of %d sessions.\n", len(list.Sessions), list.Count)
	}
	return nil
}

func rating(r int) string {
	return fmt.Sprintf("%d %s", r, models.RatingLabel(r))
}

type SkillShowCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SkillShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	s, err := ctx.Client.SoftSkills.Get(ctx.Base, c.ID)
	if err != nil {
		return cli.Fail(err, "Session not found")
	}

	ctx.Printf("%s\n", s.Topic)
	ctx.Printf("  ID:       %s\n", s.ID)
	ctx.Printf("  Type:     %s\n", s.Type)
	ctx.Printf("  Date:     %s\n", models.Day(s.Date))
	ctx.Printf("  Duration: %d min\n", s.Duration)
	ctx.Printf("  Rating:   %s\n", rating(s.Rating))
	if s.Note != "" {
		ctx.Printf("  Note:     %s\n", s.Note)
	}
	return nil
}

type SkillDeleteCmd struct {
	ID  string `arg:"" help:"Session ID to delete."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *SkillDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	if err := ctx.Confirm("Delete this practice session?", c.Yes); err != nil {
		return err
	}
	if err := ctx.Client.SoftSkills.Delete(ctx.Base, c.ID); err != nil {
		return cli.Fail(err, "Failed to delete session")
	}
	ctx.Printf("Deleted session %s\n", c.ID)
	return nil
}

type SkillStatsCmd struct{}

func (c *SkillStatsCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	s, err := ctx.Client.SoftSkills.Stats(ctx.Base, api.ListOptions{})
	if err != nil {
		return cli.Fail(err, "Failed to load stats")
	}

	ctx.Printf("Sessions:       %d\n", s.TotalSessions)
	ctx.Printf("Minutes:        %d\n", s.TotalMinutes)
	ctx.Printf("Average rating: %s\n", s.AverageRating)
	if len(s.ByType) == 0 {
		return nil
	}

	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	ctx.Println("By type:")
	for _, t := range types {
		ctx.Printf("  %-20s %d\n", t, s.ByType[models.SkillType(t)])
	}
	return nil
}
