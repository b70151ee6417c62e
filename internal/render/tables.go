package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/TelmenBay/leetlog/internal/analytics"
	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/readiness"
)

const dateLayout = "2006-01-02"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

// Dashboard renders the user's tracked problems.
func Dashboard(views []journal.UserProblemView) string {
	if len(views) == 0 {
		return Hint.Render("No problems yet. Add one with: leetlog add <url>")
	}
	t := newTable("ID", "Problem", "Difficulty", "Status", "Best", "Solved", "Readiness")
	for _, v := range views {
		t.Row(
			v.ID,
			fmt.Sprintf("%d. %s", v.Problem.ExternalID, v.Problem.Title),
			DifficultyLabel(v.Problem.Difficulty),
			string(v.Status),
			v.BestTime,
			formatDate(v.SolvedAt),
			Badge(v.Readiness),
		)
	}
	return t.String()
}

// Logs renders one problem's attempt history.
func Logs(logs []journal.LogView) string {
	if len(logs) == 0 {
		return Hint.Render("No attempts logged.")
	}
	t := newTable("ID", "Date", "Time", "Status", "Active", "Notes")
	for _, l := range logs {
		secs := l.TimeSpent
		active := "yes"
		if !l.Active {
			active = Hint.Render("expired")
		}
		t.Row(
			l.ID,
			l.CreatedAt.Format(dateLayout),
			readiness.FormatTime(&secs),
			string(l.Status),
			active,
			firstLine(l.Notes),
		)
	}
	return t.String()
}

// Analytics renders the summary, its category scores and the GPA.
func Analytics(s *analytics.Summary) string {
	var b strings.Builder

	avg := readiness.FormatTime(s.AvgTime)
	fmt.Fprintf(&b, "%s  %d problems, %d solved, avg best %s\n\n",
		Title.Render("Overview"), s.TotalProblems, s.Solved, avg)

	counts := make([]string, 0, len(readiness.All()))
	for _, r := range readiness.All() {
		counts = append(counts, fmt.Sprintf("%s %d", Badge(r), s.Readiness[r]))
	}
	b.WriteString(strings.Join(counts, "  "))
	b.WriteString("\n\n")

	dt := newTable("Difficulty", "Total", "Solved", "Avg best")
	for _, d := range s.Difficulties {
		dt.Row(DifficultyLabel(d.Difficulty), strconv.Itoa(d.Total), strconv.Itoa(d.Solved), readiness.FormatTime(d.AvgTime))
	}
	b.WriteString(dt.String())
	b.WriteString("\n\n")

	b.WriteString(categoryTable(analytics.GroupDataStructures, s.DataStructures))
	b.WriteString("\n\n")
	b.WriteString(categoryTable(analytics.GroupAlgorithms, s.Algorithms))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %.2f / %d", Title.Render("GPA"), s.GPA, analytics.MaxScore)
	return b.String()
}

func categoryTable(g analytics.Group, scores []analytics.CategoryScore) string {
	t := newTable(analytics.GroupDisplayName(g), "Score", "Problems")
	for _, c := range scores {
		t.Row(c.Category, strconv.FormatFloat(c.Score, 'f', 2, 64), strconv.Itoa(c.Count))
	}
	return t.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
