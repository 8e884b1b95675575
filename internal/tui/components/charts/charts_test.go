package charts

import (
	"strings"
	"testing"

	"github.com/julianstephens/preptrack/internal/insights"
)

func TestBarsScaleToLargest(t *testing.T) {
	out := Bars([]insights.Bar{{Label: "VARC", Value: 30}, {Label: "QA", Value: 15}}, 20, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if got := strings.Count(lines[0], "█"); got != 20 {
		t.Errorf("largest bar = %d blocks, want 20", got)
	}
	if got := strings.Count(lines[1], "█"); got != 10 {
		t.Errorf("half bar = %d blocks, want 10", got)
	}
}

func TestBarsFixedMax(t *testing.T) {
	out := Bars([]insights.Bar{{Label: "M1", Value: 50}}, 20, 100)
	if got := strings.Count(out, "█"); got != 10 {
		t.Errorf("bar = %d blocks, want 10", got)
	}
}

func TestBarsEmpty(t *testing.T) {
	if out := Bars(nil, 20, 0); !strings.Contains(out, "No data yet") {
		t.Errorf("Bars(nil) = %q", out)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3, "3"},
		{94.5, "94.50"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTilesUseDisplayedValue(t *testing.T) {
	out := Tiles([]insights.Tile{{Label: "Avg Percentile", Value: 90, Suffix: "%"}}, func(insights.Tile) float64 { return 45 })
	if !strings.Contains(out, "45%") || strings.Contains(out, "90%") {
		t.Errorf("Tiles() = %q", out)
	}
}
