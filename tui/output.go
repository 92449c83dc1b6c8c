package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jackwu/silviewer/model"
)

// outputView is the scroll and search position of one output tab.
type outputView struct {
	offset   int
	query    string
	matches  []int // line indices containing query
	matchIdx int
}

func (m Model) outputLines(t model.Tab) []string {
	out := strings.TrimRight(m.session.Output(t), "\n")
	if out == "" {
		return nil
	}
	maxWidth := m.width - 2
	if maxWidth < 20 {
		maxWidth = 20
	}
	return wrapText(out, maxWidth)
}

func (m Model) viewOutput() string {
	var b strings.Builder
	t := m.session.Selected
	v := m.views[t]
	visible := m.outputRows()
	lines := m.outputLines(t)

	if len(lines) == 0 {
		msg := "  No output."
		if m.session.Pending(t) {
			msg = "  Running..."
		}
		b.WriteString(dimStyle.Render(msg))
		b.WriteString("\n")
		for i := 1; i < visible; i++ {
			b.WriteString("\n")
		}
		return b.String()
	}

	end := v.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	current := -1
	if len(v.matches) > 0 {
		current = v.matches[v.matchIdx]
	}
	for i := v.offset; i < end; i++ {
		line := " " + lines[i]
		if i == current {
			line = searchHighlightStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// pad remaining rows
	for i := end - v.offset; i < visible; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) outputHelpBar() string {
	if m.searching {
		return statusBarStyle.Render("Search: ") + m.searchInput.View()
	}
	if m.status != "" {
		return statusBarStyle.Render(m.status)
	}

	t := m.session.Selected
	v := m.views[t]
	info := ""
	if m.session.Pending(t) {
		info += dimStyle.Render("  running...")
	}
	if v.query != "" && len(v.matches) > 0 {
		info += dimStyle.Render(fmt.Sprintf("  Match %d/%d", v.matchIdx+1, len(v.matches)))
	} else if v.query != "" {
		info += dimStyle.Render("  No matches")
	}
	if n := len(m.outputLines(t)); n > m.outputRows() {
		pct := v.offset * 100 / (n - m.outputRows())
		info += dimStyle.Render(fmt.Sprintf("  %d%%", pct))
	}
	return helpStyle.Render("  d/o/m/l: toggle  r: rerun  c: copy command  /: search  j/k: scroll  Esc: source  q: quit") + info
}

func (m Model) outputRows() int {
	// tab bar, options, command and help lines
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) maxOffset() int {
	n := len(m.outputLines(m.session.Selected)) - m.outputRows()
	if n < 0 {
		return 0
	}
	return n
}

func (m *Model) scrollUp(n int) {
	v := &m.views[m.session.Selected]
	v.offset -= n
	if v.offset < 0 {
		v.offset = 0
	}
}

func (m *Model) scrollDown(n int) {
	v := &m.views[m.session.Selected]
	v.offset += n
	if limit := m.maxOffset(); v.offset > limit {
		v.offset = limit
	}
}

func (m *Model) scrollToBottom() {
	m.views[m.session.Selected].offset = m.maxOffset()
}

func (m *Model) clampOffset() {
	v := &m.views[m.session.Selected]
	if limit := m.maxOffset(); v.offset > limit {
		v.offset = limit
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		m.searching = false
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.searching = false
		t := m.session.Selected
		v := &m.views[t]
		v.query = m.searchInput.Value()
		v.matches = findMatches(m.outputLines(t), v.query)
		v.matchIdx = 0
		if len(v.matches) > 0 {
			m.scrollToMatch()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func findMatches(lines []string, query string) []int {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}
	var matches []int
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), query) {
			matches = append(matches, i)
		}
	}
	return matches
}

func (m *Model) nextMatch() {
	v := &m.views[m.session.Selected]
	if len(v.matches) == 0 {
		return
	}
	v.matchIdx = (v.matchIdx + 1) % len(v.matches)
	m.scrollToMatch()
}

func (m *Model) prevMatch() {
	v := &m.views[m.session.Selected]
	if len(v.matches) == 0 {
		return
	}
	v.matchIdx--
	if v.matchIdx < 0 {
		v.matchIdx = len(v.matches) - 1
	}
	m.scrollToMatch()
}

// scrollToMatch centers the current match in the viewport.
func (m *Model) scrollToMatch() {
	v := &m.views[m.session.Selected]
	v.offset = v.matches[v.matchIdx] - m.outputRows()/2
	m.clampOffset()
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}
