package models

type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotEvening   Slot = "evening"
	SlotNight     Slot = "night"
)

var Slots = []Slot{SlotMorning, SlotAfternoon, SlotEvening, SlotNight}

func (s Slot) Valid() bool {
	for _, v := range Slots {
		if s == v {
			return true
		}
	}
	return false
}

type SectionScores struct {
	VARC float64 `json:"varc"`
	LRDI float64 `json:"lrdi"`
	QA   float64 `json:"qa"`
}

func (s SectionScores) Sum() float64 {
	return s.VARC + s.LRDI + s.QA
}

// MockRecord is one mock-exam attempt
type MockRecord struct {
	ID         string        `json:"_id,omitempty"`
	Name       string        `json:"name"`
	Date       string        `json:"date"`
	Slot       Slot          `json:"slot"`
	Scores     SectionScores `json:"scores"`
	Percentile float64       `json:"percentile"`
	Total      float64       `json:"total,omitempty"`
	Mood       Mood          `json:"mood,omitempty"`
}

// TotalScore prefers the server-computed total and falls back to the section sum
func (m MockRecord) TotalScore() float64 {
	if m.Total != 0 {
		return m.Total
	}
	return m.Scores.Sum()
}
