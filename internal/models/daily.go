package models

import "fmt"

type Mood string

const (
	MoodNone      Mood = ""
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodOkay      Mood = "okay"
	MoodBad       Mood = "bad"
	MoodTerrible  Mood = "terrible"
)

// Moods lists the selectable moods, best first
var Moods = []Mood{MoodExcellent, MoodGood, MoodOkay, MoodBad, MoodTerrible}

func (m Mood) Valid() bool {
	if m == MoodNone {
		return true
	}
	for _, v := range Moods {
		if m == v {
			return true
		}
	}
	return false
}

func (m Mood) Label() string {
	switch m {
	case MoodExcellent:
		return "Excellent"
	case MoodGood:
		return "Good"
	case MoodOkay:
		return "Okay"
	case MoodBad:
		return "Bad"
	case MoodTerrible:
		return "Terrible"
	}
	return "-"
}

// DailyEntry is one day's habit log. The backend keys it by date per user.
type DailyEntry struct {
	ID        string `json:"_id,omitempty"`
	Date      string `json:"date"`
	Quant     bool   `json:"quant"`
	LRDI      bool   `json:"lrdi"`
	VARC      bool   `json:"varc"`
	SoftSkill bool   `json:"softSkill"`
	Exercise  bool   `json:"exercise"`
	Gaming    bool   `json:"gaming"`
	Mood      Mood   `json:"mood,omitempty"`
}

// HabitCount is the number of tracked habit categories
const HabitCount = 6

// CompletedCount returns how many of the six habit flags are set
func (e DailyEntry) CompletedCount() int {
	n := 0
	for _, done := range []bool{e.Quant, e.LRDI, e.VARC, e.SoftSkill, e.Exercise, e.Gaming} {
		if done {
			n++
		}
	}
	return n
}

func (e DailyEntry) Summary() string {
	return fmt.Sprintf("%d/%d habits", e.CompletedCount(), HabitCount)
}
