package models

type AverageScores struct {
	VARC Number `json:"varc"`
	LRDI Number `json:"lrdi"`
	QA   Number `json:"qa"`
}

type MockStats struct {
	TotalMocks        int           `json:"totalMocks"`
	AveragePercentile Number        `json:"averagePercentile"`
	HighestPercentile Number        `json:"highestPercentile"`
	AverageTotal      Number        `json:"averageTotal"`
	AverageScores     AverageScores `json:"averageScores"`
}

type TrackerStats struct {
	TotalDays     int `json:"totalDays"`
	QuantDays     int `json:"quantDays"`
	LRDIDays      int `json:"lrdiDays"`
	VARCDays      int `json:"varcDays"`
	SoftSkillDays int `json:"softSkillDays"`
	ExerciseDays  int `json:"exerciseDays"`
	GamingDays    int `json:"gamingDays"`
}

type SoftSkillStats struct {
	TotalSessions int               `json:"totalSessions"`
	TotalMinutes  int               `json:"totalMinutes"`
	AverageRating Number            `json:"averageRating"`
	ByType        map[SkillType]int `json:"byType"`
}

type DashboardInsights struct {
	Mocks      MockStats      `json:"mocks"`
	Tracker    TrackerStats   `json:"tracker"`
	SoftSkills SoftSkillStats `json:"softSkills"`
}
