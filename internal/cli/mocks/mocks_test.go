package mocks

import (
	"strings"
	"testing"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli/clitest"
	"github.com/julianstephens/preptrack/internal/models"
)

func signedIn(t *testing.T) *clitest.Env {
	t.Helper()
	env := clitest.New(t)
	env.SignUp(t, "Asha", "asha@example.com", "secret1")
	return env
}

func addMock(t *testing.T, env *clitest.Env, name string) models.MockRecord {
	t.Helper()
	cmd := &MockAddCmd{Name: name, Date: "2026-02-01", Slot: "evening", VARC: "40", LRDI: "30", QA: "35", Percentile: "92.5"}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	env.Output()
	mocks, err := env.Ctx.Client.Mocks.List(env.Ctx.Base, api.ListOptions{})
	if err != nil || len(mocks) == 0 {
		t.Fatalf("list after add = %v, %v", mocks, err)
	}
	return mocks[0]
}

func TestMockAddCmd_Validate(t *testing.T) {
	tests := []struct {
		name string
		cmd  MockAddCmd
		want string
	}{
		{"blank name", MockAddCmd{Name: " ", VARC: "1", LRDI: "1", QA: "1", Percentile: "50"}, "Mock name is required"},
		{"bad slot", MockAddCmd{Name: "M", Slot: "dawn", VARC: "1", LRDI: "1", QA: "1", Percentile: "50"}, "Invalid slot"},
		{"bad score", MockAddCmd{Name: "M", VARC: "x", LRDI: "1", QA: "1", Percentile: "50"}, "Please provide valid scores"},
		{"percentile range", MockAddCmd{Name: "M", VARC: "1", LRDI: "1", QA: "1", Percentile: "101"}, "valid percentile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := signedIn(t)
			err := tt.cmd.Run(env.Ctx)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestMockAddListShow(t *testing.T) {
	env := signedIn(t)

	if err := (&MockListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "No mocks recorded yet.") {
		t.Errorf("empty output = %q", out)
	}

	m := addMock(t, env, "SIMCAT 4")
	if m.TotalScore() != 105 {
		t.Errorf("total = %v, want 105", m.TotalScore())
	}

	if err := (&MockListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "SIMCAT 4") || !strings.Contains(out, "92.5") {
		t.Errorf("list output = %q", out)
	}

	if err := (&MockShowCmd{ID: m.ID}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	for _, want := range []string{"SIMCAT 4", "2026-02-01 (evening)", "Total:      105"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q: %q", want, out)
		}
	}
}

func TestMockEditAndDelete(t *testing.T) {
	env := signedIn(t)
	m := addMock(t, env, "AIMCAT 1")

	if err := (&MockEditCmd{ID: m.ID}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "No changes specified.") {
		t.Errorf("output = %q", out)
	}

	qa := "50"
	if err := (&MockEditCmd{ID: m.ID, QA: &qa}).Run(env.Ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	got, err := env.Ctx.Client.Mocks.Get(env.Ctx.Base, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scores.QA != 50 || got.Name != "AIMCAT 1" || got.Scores.VARC != 40 {
		t.Errorf("edited mock = %+v", got)
	}

	if err := (&MockDeleteCmd{ID: m.ID, Yes: true}).Run(env.Ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&MockShowCmd{ID: m.ID}).Run(env.Ctx); err == nil {
		t.Error("show after delete should fail")
	}
}

func TestMockStats(t *testing.T) {
	env := signedIn(t)
	addMock(t, env, "M1")
	addMock(t, env, "M2")

	if err := (&MockStatsCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	if !strings.Contains(out, "Mocks taken:        2") || !strings.Contains(out, "Best percentile:    92.5") {
		t.Errorf("stats output = %q", out)
	}
}
