package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/labelpick/internal/selection"
)

// View renders the widget inline, without taking over the whole screen
func (w *Widget) View() tea.View {
	return tea.NewView(w.Render())
}

// Render returns the widget content as a string
func (w *Widget) Render() string {
	var b strings.Builder

	b.WriteString(w.styles.title.Render("Labels") + "\n")

	if w.err != nil {
		b.WriteString(w.styles.errText.Render("Could not load labels: "+w.err.Error()) + "\n")
		return b.String()
	}
	if !w.store.Ready() {
		b.WriteString(w.styles.dim.Render("Loading labels...") + "\n")
		return b.String()
	}

	// Selected chips
	chips := w.chips
	if chips == "" {
		chips = w.styles.dim.Render("No labels selected")
	}
	b.WriteString(w.styles.box.Render(chips+"\n"+w.filter.View()) + "\n")

	// Option list
	items := w.filtered()
	sel := w.store.Selection()
	for i, opt := range items {
		checkbox := "[ ]"
		if sel.Contains(opt.Value) {
			checkbox = "[x]"
		}
		line := checkbox + " " + w.rows[opt.Value]
		if i == w.cursor {
			b.WriteString(w.styles.cursor.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	if len(items) == 0 {
		if w.filter.Value() != "" {
			b.WriteString(w.styles.dim.Render("  No labels match \""+w.filter.Value()+"\"") + "\n")
		} else {
			b.WriteString(w.styles.dim.Render("  No labels available") + "\n")
		}
	}

	b.WriteString("\n" + w.help.View(w.keys) + "\n")
	return b.String()
}

// renderChips joins the chip for every resolved entry of the selection
func (w *Widget) renderChips(sel selection.Selection) string {
	parts := make([]string, 0, len(sel))
	for _, o := range sel {
		if o == nil {
			continue
		}
		parts = append(parts, renderChip(*o))
	}
	return strings.Join(parts, " ")
}
