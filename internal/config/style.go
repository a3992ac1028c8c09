package config

import "github.com/charmbracelet/lipgloss"

// Style groups the lipgloss styles used by the timer TUI.
type Style struct {
	Base      lipgloss.Style
	Main      lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Work      lipgloss.Style
	Break     lipgloss.Style
}

const (
	colorWork  = "#B0DB43"
	colorBreak = "#12EAEA"
	colorHint  = "#6B7280"
)

// DefaultStyle returns the timer styles.
func DefaultStyle() Style {
	return Style{
		Base: lipgloss.NewStyle().Padding(1, 2),
		Main: lipgloss.NewStyle().Bold(true),
		Secondary: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorBreak)),
		Hint: lipgloss.NewStyle().Foreground(lipgloss.Color(colorHint)),
		Work: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorWork)).
			SetString("[Focus]"),
		Break: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorBreak)).
			SetString("[Break]"),
	}
}
