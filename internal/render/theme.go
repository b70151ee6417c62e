// Package render formats journal data for the terminal.
package render

import (
	"charm.land/lipgloss/v2"

	"github.com/TelmenBay/leetlog/internal/readiness"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Purple
	Green   = lipgloss.Color("#22C55E")
	Yellow  = lipgloss.Color("#EAB308")
	Orange  = lipgloss.Color("#F97316")
	Red     = lipgloss.Color("#F43F5E")
	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Padding(0, 1)

	cell = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)
)

var badgeColors = map[readiness.Readiness]lipgloss.Style{
	readiness.Mastered: lipgloss.NewStyle().Foreground(Green).Bold(true),
	readiness.Revisit:  lipgloss.NewStyle().Foreground(Yellow).Bold(true),
	readiness.Rusty:    lipgloss.NewStyle().Foreground(Orange).Bold(true),
	readiness.Weak:     lipgloss.NewStyle().Foreground(Red).Bold(true),
	readiness.None:     lipgloss.NewStyle().Foreground(TextDim),
}

// Badge renders a readiness label in its color.
func Badge(r readiness.Readiness) string {
	return badgeColors[r].Render(r.String())
}

var difficultyColors = map[readiness.Difficulty]lipgloss.Style{
	readiness.Easy:   lipgloss.NewStyle().Foreground(Green),
	readiness.Medium: lipgloss.NewStyle().Foreground(Yellow),
	readiness.Hard:   lipgloss.NewStyle().Foreground(Red),
}

// DifficultyLabel renders d in its color.
func DifficultyLabel(d readiness.Difficulty) string {
	s, ok := difficultyColors[d]
	if !ok {
		return string(d)
	}
	return s.Render(string(d))
}
