package daily

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type DailyCmd struct {
	Set    DailySetCmd    `cmd:"" help:"Mark habits done for a day."`
	Show   DailyShowCmd   `cmd:"" help:"Show the checklist for a day."`
	List   DailyListCmd   `cmd:"" help:"List recent entries."`
	Delete DailyDeleteCmd `cmd:"" help:"Delete the entry for a day."`
	Stats  DailyStatsCmd  `cmd:"" help:"Show how many days each habit was done."`
}

// habit keys accepted by --done and --undo, in checklist order
var habitKeys = []string{"quant", "lrdi", "varc", "softskill", "exercise", "gaming"}

var habitLabels = map[string]string{
	"quant":     "Quant practice",
	"lrdi":      "LRDI sets",
	"varc":      "VARC reading",
	"softskill": "Soft skills",
	"exercise":  "Exercise",
	"gaming":    "Gaming (limit)",
}

func habitField(f *tracker.DailyForm, key string) *bool {
	switch key {
	case "quant":
		return &f.Quant
	case "lrdi":
		return &f.LRDI
	case "varc":
		return &f.VARC
	case "softskill", "soft-skill", "softskills":
		return &f.SoftSkill
	case "exercise":
		return &f.Exercise
	case "gaming":
		return &f.Gaming
	}
	return nil
}

func resolveDate(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return models.Today(), nil
	case "yesterday":
		return models.ShiftDay(models.Today(), -1), nil
	}
	if !models.ValidDate(s) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return s, nil
}

// load returns the stored entry for date, or an empty one when none exists
func load(ctx *cli.Context, date string) (*models.DailyEntry, bool, error) {
	e, err := ctx.Client.Tracker.Get(ctx.Base, date)
	if errors.Is(err, api.ErrNotFound) {
		return &models.DailyEntry{Date: date}, false, nil
	}
	if err != nil {
		return nil, false, cli.Fail(err, "Failed to load entry")
	}
	return e, true, nil
}

type DailySetCmd struct {
	Date string   `short:"d" help:"Date in YYYY-MM-DD format, 'today' or 'yesterday'." default:"today"`
	Done []string `short:"x" sep:"," help:"Habits to mark done (quant,lrdi,varc,softskill,exercise,gaming)."`
	Undo []string `short:"u" sep:"," help:"Habits to clear."`
	Mood string   `short:"m" help:"Mood (excellent|good|okay|bad|terrible, or none)."`
}

func (c *DailySetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	existing, _, err := load(ctx, date)
	if err != nil {
		return err
	}
	form := tracker.NewDailyForm()
	form.Load(*existing)
	form.Date = date

	for _, set := range []struct {
		keys []string
		val  bool
	}{{c.Done, true}, {c.Undo, false}} {
		for _, k := range set.keys {
			p := habitField(form, strings.ToLower(strings.TrimSpace(k)))
			if p == nil {
				return fmt.Errorf("unknown habit %q (expected one of %s)", k, strings.Join(habitKeys, ", "))
			}
			*p = set.val
		}
	}
	switch mood := strings.ToLower(strings.TrimSpace(c.Mood)); mood {
	case "":
	case "none":
		form.Mood = ""
	default:
		form.Mood = mood
	}

	if err := form.Validate(); err != nil {
		return err
	}
	saved, err := ctx.Client.Tracker.Upsert(ctx.Base, form.Record())
	if err != nil {
		return cli.Fail(err, "Failed to save entry")
	}
	ctx.Printf("✓ Saved %s: %s\n", models.Day(saved.Date), saved.Summary())
	return nil
}

type DailyShowCmd struct {
	Date string `arg:"" optional:"" help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *DailyShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	e, found, err := load(ctx, date)
	if err != nil {
		return err
	}

	ctx.Printf("Daily checklist for %s\n", date)
	if !found {
		ctx.Println("  (nothing logged yet)")
	}
	form := tracker.NewDailyForm()
	form.Load(*e)
	for _, k := range habitKeys {
		box := "[ ]"
		if *habitField(form, k) {
			box = "[x]"
		}
		ctx.Printf("  %s %s\n", box, habitLabels[k])
	}
	ctx.Printf("  Mood: %s\n", e.Mood.Label())
	ctx.Printf("  %s\n", e.Summary())
	return nil
}

type DailyListCmd struct {
	Limit int    `short:"n" help:"Maximum number of entries." default:"${daily_page_size}"`
	From  string `help:"Only entries on or after this date (YYYY-MM-DD)."`
	To    string `help:"Only entries on or before this date (YYYY-MM-DD)."`
}

func listOptions(limit int, from, to string) (api.ListOptions, error) {
	opts := api.ListOptions{Limit: limit}
	if from != "" {
		t, err := time.ParseInLocation(constants.DateFormat, from, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --from date: %s (expected YYYY-MM-DD)", from)
		}
		opts.StartDate = t
	}
	if to != "" {
		t, err := time.ParseInLocation(constants.DateFormat, to, time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid --to date: %s (expected YYYY-MM-DD)", to)
		}
		opts.EndDate = t
	}
	return opts, nil
}

func (c *DailyListCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	opts, err := listOptions(c.Limit, c.From, c.To)
	if err != nil {
		return err
	}
	entries, err := ctx.Client.Tracker.List(ctx.Base, opts)
	if err != nil {
		return cli.Fail(err, "Failed to load entries")
	}

	if len(entries) == 0 {
		ctx.Println("No entries logged.")
		return nil
	}

	ctx.Printf("%-10s %-6s %-5s %-5s %-6s %-9s %-7s %-11s %-10s\n",
		"Date", "Quant", "LRDI", "VARC", "Skills", "Exercise", "Gaming", "Habits", "Mood")
	ctx.Println(strings.Repeat("-", 80))
	for _, e := range entries {
		ctx.Printf("%-10s %-6s %-5s %-5s %-6s %-9s %-7s %-11s %-10s\n",
			models.Day(e.Date), mark(e.Quant), mark(e.LRDI), mark(e.VARC), mark(e.SoftSkill),
			mark(e.Exercise), mark(e.Gaming), e.Summary(), e.Mood.Label())
	}
	return nil
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return "."
}

type DailyDeleteCmd struct {
	Date string `arg:"" help:"Date of the entry to delete (YYYY-MM-DD)."`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *DailyDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete the entry for %s?", date), c.Yes); err != nil {
		return err
	}
	if err := ctx.Client.Tracker.Delete(ctx.Base, date); err != nil {
		return cli.Fail(err, "Failed to delete entry")
	}
	ctx.Printf("Deleted entry for %s\n", date)
	return nil
}

type DailyStatsCmd struct {
	From string `help:"Count from this date (YYYY-MM-DD)."`
	To   string `help:"Count up to this date (YYYY-MM-DD)."`
}

func (c *DailyStatsCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	opts, err := listOptions(0, c.From, c.To)
	if err != nil {
		return err
	}
	s, err := ctx.Client.Tracker.Stats(ctx.Base, opts)
	if err != nil {
		return cli.Fail(err, "Failed to load stats")
	}

	ctx.Printf("Days logged:   %d\n", s.TotalDays)
	for _, row := range []struct {
		key  string
		days int
	}{
		{"quant", s.QuantDays},
		{"lrdi", s.LRDIDays},
		{"varc", s.VARCDays},
		{"softskill", s.SoftSkillDays},
		{"exercise", s.ExerciseDays},
		{"gaming", s.GamingDays},
	} {
		ctx.Printf("  %-15s %d\n", habitLabels[row.key]+":", row.days)
	}
	return nil
}
