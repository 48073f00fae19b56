// Package console draws the request queue in a terminal, either once or as
// an interactive bubbletea program.
package console

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("#8BC34A")
	colorPre      = lipgloss.Color("#2196F3")
	colorOnDemand = lipgloss.Color("#FFC107")
	colorError    = lipgloss.Color("#e53935")
	colorMuted    = lipgloss.Color("#7d8796")
	colorBorder   = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by the renderer and the TUI.
type Styles struct {
	Title     lipgloss.Style
	BadgeOK   lipgloss.Style
	BadgeFail lipgloss.Style
	Caption   lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Pre       lipgloss.Style
	OnDemand  lipgloss.Style
	Empty     lipgloss.Style
	Error     lipgloss.Style
	Controls  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		BadgeOK:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38")).Background(colorAccent).Padding(0, 1),
		BadgeFail: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorError).Padding(0, 1),
		Caption:   lipgloss.NewStyle().Foreground(colorMuted),
		Header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:      lipgloss.NewStyle().Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(cardWidth),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Pre:       lipgloss.NewStyle().Foreground(colorPre),
		OnDemand:  lipgloss.NewStyle().Foreground(colorOnDemand),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(colorMuted).Padding(1, 2),
		Error:     lipgloss.NewStyle().Foreground(colorError).Padding(1, 2),
		Controls:  lipgloss.NewStyle().Foreground(colorMuted),
	}
}
