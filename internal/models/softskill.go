package models

type SkillType string

const (
	SkillEssay              SkillType = "Essay"
	SkillGD                 SkillType = "GD"
	SkillExtempore          SkillType = "Extempore"
	SkillInterview          SkillType = "Interview"
	SkillPresentation       SkillType = "Presentation"
	SkillStructuredThinking SkillType = "Structured Thinking"
)

var SkillTypes = []SkillType{
	SkillEssay, SkillGD, SkillExtempore, SkillInterview, SkillPresentation, SkillStructuredThinking,
}

func (t SkillType) Valid() bool {
	for _, v := range SkillTypes {
		if t == v {
			return true
		}
	}
	return false
}

const (
	MinRating = 1
	MaxRating = 5
)

// RatingLabel names a 1-5 self rating
func RatingLabel(r int) string {
	switch r {
	case 5:
		return "Exceptional"
	case 4:
		return "Proficient"
	case 3:
		return "Competent"
	case 2:
		return "Developing"
	case 1:
		return "Foundational"
	}
	return ""
}

type SoftSkillSession struct {
	ID       string    `json:"_id,omitempty"`
	Type     SkillType `json:"type"`
	Topic    string    `json:"topic"`
	Duration int       `json:"duration"`
	Rating   int       `json:"rating"`
	Note     string    `json:"note,omitempty"`
	Date     string    `json:"date"`
}
