package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/labelpick/internal/config/colors"
	"github.com/thenoetrevino/labelpick/internal/contrast"
	"github.com/thenoetrevino/labelpick/internal/models"
)

// styles are built once per widget from the color scheme
type styles struct {
	title   lipgloss.Style
	box     lipgloss.Style
	normal  lipgloss.Style
	cursor  lipgloss.Style
	dim     lipgloss.Style
	errText lipgloss.Style
}

func newStyles(c colors.ColorScheme) styles {
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),
		normal:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Normal)),
		cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)).Bold(true),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Subtle)),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color(c.ErrorFg)),
	}
}

// renderSwatch draws the small color block shown before an option name.
// Its edge uses the contrast color so the block stays visible on any
// terminal background.
func renderSwatch(opt models.Option) string {
	s := contrast.For(opt.Color)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Foreground)).
		Background(lipgloss.Color(s.Background)).
		Render("▕▏")
}

// renderChip renders a selected label as a colored chip
func renderChip(opt models.Option) string {
	s := contrast.For(opt.Color)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Foreground)).
		Background(lipgloss.Color(s.Background)).
		Padding(0, 1).
		Render(opt.Label + " ×")
}
