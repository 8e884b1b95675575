// Package insights assembles the dashboard and mock-analysis views from the
// stats endpoints.
package insights

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
)

type MockAPI interface {
	List(ctx context.Context, opts api.ListOptions) ([]models.MockRecord, error)
	Stats(ctx context.Context, opts api.ListOptions) (*models.MockStats, error)
}

type SoftSkillAPI interface {
	List(ctx context.Context, opts api.ListOptions) (*api.SoftSkillList, error)
}

// Tile is one KPI block
type Tile struct {
	Label  string
	Value  float64
	Suffix string
}

// Bar is one bar of a section or series chart
type Bar struct {
	Label string
	Value float64
}

type Dashboard struct {
	Tiles    []Tile
	Sections []Bar
}

type Loader struct {
	mocks  MockAPI
	skills SoftSkillAPI
	now    func() time.Time
}

func NewLoader(mocks MockAPI, skills SoftSkillAPI) *Loader {
	return &Loader{mocks: mocks, skills: skills, now: time.Now}
}

// Dashboard fetches stats over the latest five mocks and the soft-skill
// sessions of the last seven days.
func (l *Loader) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := l.mocks.Stats(ctx, api.ListOptions{Limit: constants.DashboardMockStatsLimit})
	if err != nil {
		logger.Warn("failed to load mock stats", "err", err)
		return nil, err
	}

	since := l.now().AddDate(0, 0, -constants.DashboardSkillsWindowDays)
	skills, err := l.skills.List(ctx, api.ListOptions{StartDate: since, Limit: constants.DashboardSkillsLimit})
	if err != nil {
		logger.Warn("failed to load soft skills", "err", err)
		return nil, err
	}

	return &Dashboard{
		Tiles: []Tile{
			{Label: "Total Mocks", Value: float64(stats.TotalMocks)},
			{Label: "Avg Percentile", Value: stats.AveragePercentile.Float(), Suffix: "%"},
			{Label: "Best Percentile", Value: stats.HighestPercentile.Float(), Suffix: "%"},
			{Label: "Total Practice", Value: float64(skills.Count)},
		},
		Sections: sectionBars(stats.AverageScores),
	}, nil
}

func sectionBars(s models.AverageScores) []Bar {
	return []Bar{
		{Label: "VARC", Value: s.VARC.Float()},
		{Label: "LRDI", Value: s.LRDI.Float()},
		{Label: "QA", Value: s.QA.Float()},
	}
}

// SectionPoint is one mock's section scores
type SectionPoint struct {
	Label string
	VARC  float64
	LRDI  float64
	QA    float64
}

type Analysis struct {
	// Mocks is oldest first
	Mocks       []models.MockRecord
	Tiles       []Tile
	Percentiles []Bar
	Totals      []Bar
	Sections    []SectionPoint
}

// Analysis fetches the latest twenty mocks and their stats, and builds the
// chronological series.
func (l *Loader) Analysis(ctx context.Context) (*Analysis, error) {
	opts := api.ListOptions{Limit: constants.AnalysisLimit}

	type listResult struct {
		mocks []models.MockRecord
		err   error
	}
	listCh := make(chan listResult, 1)
	go func() {
		m, err := l.mocks.List(ctx, opts)
		listCh <- listResult{mocks: m, err: err}
	}()

	stats, statsErr := l.mocks.Stats(ctx, opts)
	res := <-listCh
	if res.err != nil {
		logger.Warn("failed to load mocks", "err", res.err)
		return nil, res.err
	}
	if statsErr != nil {
		logger.Warn("failed to load mock stats", "err", statsErr)
		return nil, statsErr
	}

	return BuildAnalysis(res.mocks, *stats), nil
}

// BuildAnalysis reverses the newest-first list and derives the chart series
func BuildAnalysis(newestFirst []models.MockRecord, stats models.MockStats) *Analysis {
	n := len(newestFirst)
	mocks := make([]models.MockRecord, n)
	for i, m := range newestFirst {
		mocks[n-1-i] = m
	}

	a := &Analysis{
		Mocks: mocks,
		Tiles: []Tile{
			{Label: "Total Mocks", Value: float64(stats.TotalMocks)},
			{Label: "Avg Percentile", Value: stats.AveragePercentile.Float(), Suffix: "%"},
			{Label: "Best Score", Value: stats.HighestPercentile.Float(), Suffix: "%"},
			{Label: "Avg Total", Value: stats.AverageTotal.Float()},
		},
	}
	for i, m := range mocks {
		label := fmt.Sprintf("M%d", i+1)
		a.Percentiles = append(a.Percentiles, Bar{Label: label, Value: m.Percentile})
		a.Totals = append(a.Totals, Bar{Label: label, Value: m.TotalScore()})
	}

	start := max(0, n-constants.AnalysisSectionWindow)
	for i := start; i < n; i++ {
		m := mocks[i]
		a.Sections = append(a.Sections, SectionPoint{
			Label: fmt.Sprintf("M%d", i+1),
			VARC:  m.Scores.VARC,
			LRDI:  m.Scores.LRDI,
			QA:    m.Scores.QA,
		})
	}
	return a
}

// CountUp animates KPI values from zero: at step k of Steps a target shows
// floor(target*k/Steps), and the last step shows the exact target.
type CountUp struct {
	Steps    int
	Duration time.Duration
	step     int
}

func NewCountUp() *CountUp {
	return &CountUp{Steps: constants.CountUpSteps, Duration: constants.CountUpDuration}
}

// Interval is the delay between steps
func (c *CountUp) Interval() time.Duration {
	if c.Steps <= 0 {
		return c.Duration
	}
	return c.Duration / time.Duration(c.Steps)
}

// Tick advances one step and reports whether more steps remain
func (c *CountUp) Tick() bool {
	if c.step < c.Steps {
		c.step++
	}
	return c.step < c.Steps
}

func (c *CountUp) Done() bool {
	return c.step >= c.Steps
}

func (c *CountUp) Step() int {
	return c.step
}

// Finish jumps to the final values
func (c *CountUp) Finish() {
	c.step = c.Steps
}

func (c *CountUp) Reset() {
	c.step = 0
}

func (c *CountUp) Value(target float64) float64 {
	if c.Done() {
		return target
	}
	return math.Floor(target * float64(c.step) / float64(c.Steps))
}
