package records

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tracker"
)

// MoodOptions lists "no mood" followed by the selectable moods
func MoodOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("-", string(models.MoodNone))}
	for _, m := range models.Moods {
		opts = append(opts, huh.NewOption(m.Label(), string(m)))
	}
	return opts
}

func slotOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(models.Slots))
	for i, s := range models.Slots {
		opts[i] = huh.NewOption(string(s), string(s))
	}
	return opts
}

func skillOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(models.SkillTypes))
	for i, t := range models.SkillTypes {
		opts[i] = huh.NewOption(string(t), string(t))
	}
	return opts
}

func ratingOptions() []huh.Option[string] {
	var opts []huh.Option[string]
	for r := models.MaxRating; r >= models.MinRating; r-- {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d - %s", r, models.RatingLabel(r)), fmt.Sprint(r)))
	}
	return opts
}

func mockForm(f *tracker.MockForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Mock name").Value(&f.Name),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&f.Date),
			huh.NewSelect[string]().Title("Slot").Options(slotOptions()...).Value(&f.Slot),
			huh.NewSelect[string]().Title("Mood").Options(MoodOptions()...).Value(&f.Mood),
		),
		huh.NewGroup(
			huh.NewInput().Title("VARC").Value(&f.VARC),
			huh.NewInput().Title("LRDI").Value(&f.LRDI),
			huh.NewInput().Title("QA").Value(&f.QA),
			huh.NewInput().Title("Percentile").Value(&f.Percentile),
		),
	).WithTheme(huh.ThemeDracula())
}

func softSkillForm(f *tracker.SoftSkillForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Type").Options(skillOptions()...).Value(&f.Type),
			huh.NewInput().Title("Topic").Value(&f.Topic),
			huh.NewInput().Title("Duration (min)").Value(&f.Duration),
			huh.NewSelect[string]().Title("Rating").Options(ratingOptions()...).Value(&f.Rating),
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(&f.Date),
			huh.NewText().Title("Notes").Value(&f.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

func DescribeMock(m models.MockRecord) (string, string) {
	title := fmt.Sprintf("%s  %s", models.Day(m.Date), m.Name)
	desc := fmt.Sprintf("%.1f%%ile  total %.1f  (VARC %.1f, LRDI %.1f, QA %.1f)  %s",
		m.Percentile, m.TotalScore(), m.Scores.VARC, m.Scores.LRDI, m.Scores.QA, m.Slot)
	return title, desc
}

func DescribeSoftSkill(s models.SoftSkillSession) (string, string) {
	title := fmt.Sprintf("%s  %s: %s", models.Day(s.Date), s.Type, s.Topic)
	desc := fmt.Sprintf("%d min  %d/5 %s", s.Duration, s.Rating, models.RatingLabel(s.Rating))
	return title, desc
}

func NewMocks(ctx context.Context, page *tracker.Page[models.MockRecord]) *Model[models.MockRecord] {
	f := page.Form().(*tracker.MockForm)
	return New(ctx, page, Options[models.MockRecord]{
		Path:          route.MockTracker,
		Empty:         "No mocks recorded yet.",
		Describe:      DescribeMock,
		Key:           func(m models.MockRecord) string { return m.ID },
		NewForm:       func() *huh.Form { return mockForm(f) },
		ConfirmDelete: "Delete this mock record?",
	})
}

func NewSoftSkills(ctx context.Context, page *tracker.Page[models.SoftSkillSession]) *Model[models.SoftSkillSession] {
	f := page.Form().(*tracker.SoftSkillForm)
	return New(ctx, page, Options[models.SoftSkillSession]{
		Path:          route.SoftSkills,
		Empty:         "No practice sessions yet.",
		Describe:      DescribeSoftSkill,
		Key:           func(s models.SoftSkillSession) string { return s.ID },
		NewForm:       func() *huh.Form { return softSkillForm(f) },
		ConfirmDelete: "Delete this session?",
	})
}
