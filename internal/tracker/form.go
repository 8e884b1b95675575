package tracker

import (
	"strconv"
	"strings"

	"github.com/julianstephens/preptrack/internal/models"
)

// Form holds user input for one record type exactly as typed. Validate runs
// before any network call.
type Form[T any] interface {
	Validate() error
	Record() T
	Load(T)
	Reset()
}

// ValidationError is a form rejection shown to the user verbatim
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string       { return e.Message }
func (e *ValidationError) UserMessage() string { return e.Message }
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// DailyForm is the habit checklist for one date
type DailyForm struct {
	Date      string
	Quant     bool
	LRDI      bool
	VARC      bool
	SoftSkill bool
	Exercise  bool
	Gaming    bool
	Mood      string
}

func NewDailyForm() *DailyForm {
	f := &DailyForm{}
	f.Reset()
	return f
}

func (f *DailyForm) Validate() error {
	if !models.ValidDate(strings.TrimSpace(f.Date)) {
		return invalid("date", "Please provide a valid date (YYYY-MM-DD)")
	}
	if !models.Mood(f.Mood).Valid() {
		return invalid("mood", "Invalid mood")
	}
	return nil
}

func (f *DailyForm) Record() models.DailyEntry {
	return models.DailyEntry{
		Date:      strings.TrimSpace(f.Date),
		Quant:     f.Quant,
		LRDI:      f.LRDI,
		VARC:      f.VARC,
		SoftSkill: f.SoftSkill,
		Exercise:  f.Exercise,
		Gaming:    f.Gaming,
		Mood:      models.Mood(f.Mood),
	}
}

func (f *DailyForm) Load(e models.DailyEntry) {
	f.Date = models.Day(e.Date)
	f.Quant = e.Quant
	f.LRDI = e.LRDI
	f.VARC = e.VARC
	f.SoftSkill = e.SoftSkill
	f.Exercise = e.Exercise
	f.Gaming = e.Gaming
	f.Mood = string(e.Mood)
}

// Reset clears the checklist for today
func (f *DailyForm) Reset() {
	f.ResetFor(models.Today())
}

// ResetFor clears every flag and the mood but keeps date
func (f *DailyForm) ResetFor(date string) {
	*f = DailyForm{Date: date}
}

// MockForm is the mock exam entry form
type MockForm struct {
	Name       string
	Date       string
	Slot       string
	VARC       string
	LRDI       string
	QA         string
	Percentile string
	Mood       string
}

func NewMockForm() *MockForm {
	f := &MockForm{}
	f.Reset()
	return f
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func (f *MockForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Mock name is required")
	}
	if !models.ValidDate(strings.TrimSpace(f.Date)) {
		return invalid("date", "Please provide a valid date (YYYY-MM-DD)")
	}
	if !models.Slot(f.Slot).Valid() {
		return invalid("slot", "Invalid slot")
	}
	_, okV := parseFloat(f.VARC)
	_, okL := parseFloat(f.LRDI)
	_, okQ := parseFloat(f.QA)
	if !okV || !okL || !okQ {
		return invalid("scores", "Please provide valid scores")
	}
	if p, ok := parseFloat(f.Percentile); !ok || p < 0 || p > 100 {
		return invalid("percentile", "Please provide a valid percentile (0-100)")
	}
	if !models.Mood(f.Mood).Valid() {
		return invalid("mood", "Invalid mood")
	}
	return nil
}

// Record converts the validated input. Call Validate first.
func (f *MockForm) Record() models.MockRecord {
	varc, _ := parseFloat(f.VARC)
	lrdi, _ := parseFloat(f.LRDI)
	qa, _ := parseFloat(f.QA)
	pct, _ := parseFloat(f.Percentile)
	return models.MockRecord{
		Name:       strings.TrimSpace(f.Name),
		Date:       strings.TrimSpace(f.Date),
		Slot:       models.Slot(f.Slot),
		Scores:     models.SectionScores{VARC: varc, LRDI: lrdi, QA: qa},
		Percentile: pct,
		Mood:       models.Mood(f.Mood),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *MockForm) Load(m models.MockRecord) {
	f.Name = m.Name
	f.Date = models.Day(m.Date)
	f.Slot = string(m.Slot)
	f.VARC = formatFloat(m.Scores.VARC)
	f.LRDI = formatFloat(m.Scores.LRDI)
	f.QA = formatFloat(m.Scores.QA)
	f.Percentile = formatFloat(m.Percentile)
	f.Mood = string(m.Mood)
}

func (f *MockForm) Reset() {
	*f = MockForm{Date: models.Today(), Slot: string(models.SlotMorning)}
}

// SoftSkillForm is the practice session form
type SoftSkillForm struct {
	Type     string
	Topic    string
	Duration string
	Rating   string
	Note     string
	Date     string
}

func NewSoftSkillForm() *SoftSkillForm {
	f := &SoftSkillForm{}
	f.Reset()
	return f
}

func (f *SoftSkillForm) Validate() error {
	if !models.SkillType(f.Type).Valid() {
		return invalid("type", "Invalid skill type")
	}
	if strings.TrimSpace(f.Topic) == "" {
		return invalid("topic", "Topic is required")
	}
	if d, err := strconv.Atoi(strings.TrimSpace(f.Duration)); err != nil || d <= 0 {
		return invalid("duration", "Duration must be a positive number of minutes")
	}
	if r, err := strconv.Atoi(strings.TrimSpace(f.Rating)); err != nil || r < models.MinRating || r > models.MaxRating {
		return invalid("rating", "Rating must be between 1 and 5")
	}
	if !models.ValidDate(strings.TrimSpace(f.Date)) {
		return invalid("date", "Please provide a valid date (YYYY-MM-DD)")
	}
	return nil
}

func (f *SoftSkillForm) Record() models.SoftSkillSession {
	d, _ := strconv.Atoi(strings.TrimSpace(f.Duration))
	r, _ := strconv.Atoi(strings.TrimSpace(f.Rating))
	return models.SoftSkillSession{
		Type:     models.SkillType(f.Type),
		Topic:    strings.TrimSpace(f.Topic),
		Duration: d,
		Rating:   r,
		Note:     strings.TrimSpace(f.Note),
		Date:     strings.TrimSpace(f.Date),
	}
}

func (f *SoftSkillForm) Load(s models.SoftSkillSession) {
	f.Type = string(s.Type)
	f.Topic = s.Topic
	f.Duration = strconv.Itoa(s.Duration)
	f.Rating = strconv.Itoa(s.Rating)
	f.Note = s.Note
	f.Date = models.Day(s.Date)
}

func (f *SoftSkillForm) Reset() {
	*f = SoftSkillForm{Type: string(models.SkillEssay), Date: models.Today()}
}
