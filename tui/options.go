package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type toggle struct {
	key   string
	label string
	on    bool
}

func (m Model) renderOptions() string {
	o := m.session.Options
	toggles := []toggle{
		{"d", "Demangle", o.Demangle},
		{"o", "Optimize", o.Optimize},
		{"m", "Module optimize", o.ModuleOptimize},
		{"l", "Parse as library", o.ParseAsLibrary},
	}

	var parts []string
	for _, t := range toggles {
		parts = append(parts, renderToggle(t))
	}
	row := strings.Join(parts, "   ")
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, optionsBarStyle.Render(row))
}

func renderToggle(t toggle) string {
	key := dimStyle.Render("(" + t.key + ")")
	if t.on {
		return toggleOnStyle.Render("[x] "+t.label) + " " + key
	}
	return toggleOffStyle.Render("[ ] "+t.label) + " " + key
}
