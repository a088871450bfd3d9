// Package theme holds the catppuccin palette shared by the line console and
// the full-screen TUI.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
)

// Styles is a style set bound to one lipgloss renderer, so colour support
// follows the writer the text ends up on.
type Styles struct {
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Hot    lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
	Accent lipgloss.Style
	Pane   lipgloss.Style
	Input  lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title:  r.NewStyle().Foreground(Sapphire).Bold(true),
		Muted:  r.NewStyle().Foreground(Subtext0),
		Hot:    r.NewStyle().Foreground(Peach).Bold(true),
		Good:   r.NewStyle().Foreground(Green).Bold(true),
		Bad:    r.NewStyle().Foreground(Red).Bold(true),
		Accent: r.NewStyle().Foreground(Lavender),
		Pane: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Foreground(Text).
			Padding(0, 1),
		Input: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Peach).
			Padding(0, 1),
	}
}
