package render

import (
	"strings"
	"testing"
	"time"

	"github.com/TelmenBay/leetlog/internal/analytics"
	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/readiness"
)

func intp(v int) *int { return &v }

func TestBadge(t *testing.T) {
	for _, r := range readiness.All() {
		if got := Badge(r); !strings.Contains(got, r.String()) {
			t.Errorf("Badge(%v) = %q, want it to contain %q", r, got, r.String())
		}
	}
}

func TestDifficultyLabel_Unknown(t *testing.T) {
	if got := DifficultyLabel("extreme"); got != "extreme" {
		t.Errorf("DifficultyLabel = %q, want %q", got, "extreme")
	}
}

func TestDashboard(t *testing.T) {
	if got := Dashboard(nil); !strings.Contains(got, "No problems yet") {
		t.Errorf("empty dashboard = %q", got)
	}

	solved := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	out := Dashboard([]journal.UserProblemView{{
		ID:        "up-1",
		Status:    readiness.Solved,
		TimeSpent: intp(300),
		BestTime:  "5m",
		SolvedAt:  &solved,
		Readiness: readiness.Mastered,
		Problem:   journal.ProblemView{ExternalID: 1, Title: "Two Sum", Difficulty: readiness.Easy},
	}})
	for _, want := range []string{"up-1", "1. Two Sum", "easy", "solved", "5m", "2026-10-02", "mastered"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestLogs(t *testing.T) {
	out := Logs([]journal.LogView{
		{ID: "l-1", TimeSpent: 3723, Status: readiness.LogSolved, Active: true, Notes: "two pointers\nmore"},
		{ID: "l-2", TimeSpent: 42, Status: readiness.LogAttempted},
	})
	for _, want := range []string{"1h 2m 3s", "42s", "two pointers…", "expired"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "more") {
		t.Errorf("notes should be cut at the first line:\n%s", out)
	}
}

func TestAnalytics(t *testing.T) {
	sum := analytics.Summarize([]analytics.Problem{
		{Tags: []string{"Array"}, Difficulty: readiness.Easy, TimeSpent: intp(300), Readiness: readiness.Mastered},
	}, analytics.DefaultTaxonomy())

	out := Analytics(&sum)
	for _, want := range []string{"1 problems, 1 solved", "Data Structures", "Algorithms", "Array & String", "GPA"} {
		if !strings.Contains(out, want) {
			t.Errorf("analytics missing %q:\n%s", want, out)
		}
	}
}
