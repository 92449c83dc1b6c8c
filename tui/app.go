package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jackwu/silviewer/launcher"
	"github.com/jackwu/silviewer/model"
)

// Runner executes a composed command with source on its stdin.
type Runner interface {
	Run(ctx context.Context, command, source string) string
}

// runFinishedMsg is sent when a compiler run for some tab completes.
type runFinishedMsg struct {
	result model.Result
}

type Model struct {
	session   *model.Session
	runner    Runner
	toolchain launcher.Toolchain
	logger    *log.Logger
	copy      func(string) error
	cancels   map[model.Tab]context.CancelFunc

	editor      textarea.Model
	searchInput textinput.Model
	searching   bool
	views       [model.TabCount]outputView

	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(session *model.Session, runner Runner, tc launcher.Toolchain, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ed := textarea.New()
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.SetValue(session.Source)
	ed.Focus()

	si := textinput.New()
	si.Placeholder = "search..."
	si.CharLimit = 100

	m := Model{
		session:     session,
		runner:      runner,
		toolchain:   tc,
		logger:      logger,
		copy:        clipboard.WriteAll,
		cancels:     make(map[model.Tab]context.CancelFunc),
		editor:      ed,
		searchInput: si,
		width:       120,
		height:      30,
	}
	m.resizeEditor()
	return m
}

// SetClipboard replaces the function used to copy the last command.
func (m *Model) SetClipboard(fn func(string) error) {
	m.copy = fn
}

// Session returns the state the model drives.
func (m Model) Session() *model.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeEditor()
		m.clampOffset()
		return m, nil

	case runFinishedMsg:
		return m.finishRun(msg.result), nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		key := msg.String()
		switch key {
		case "ctrl+c":
			return m.quit()
		case "tab":
			return m.selectTab(m.session.Selected.Next())
		case "shift+tab":
			return m.selectTab(m.session.Selected.Prev())
		}
		if t, ok := tabShortcut(key); ok {
			return m.selectTab(t)
		}

		if m.session.Selected == model.TabSource {
			return m.updateEditor(msg)
		}
		return m.updateOutput(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	if m.session.Selected == model.TabSource {
		return m.updateEditor(msg)
	}
	return m, nil
}

// tabShortcut maps alt+1..alt+8 to tabs in display order.
func tabShortcut(key string) (model.Tab, bool) {
	if len(key) != len("alt+1") || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	n := int(key[4] - '1')
	if n < 0 || n >= int(model.TabCount) {
		return 0, false
	}
	return model.Tab(n), true
}

func (m Model) selectTab(t model.Tab) (tea.Model, tea.Cmd) {
	if t == m.session.Selected {
		return m, nil
	}
	m.session.Selected = t
	m.status = ""

	if t == model.TabSource {
		return m, m.editor.Focus()
	}
	m.editor.Blur()
	return m, m.run(t)
}

// run issues a compiler run for t, superseding any run still in flight
// for the same tab.
func (m *Model) run(t model.Tab) tea.Cmd {
	command := launcher.BuildCommand(m.toolchain, t, m.session.Options)
	if command == "" {
		return nil
	}
	m.session.Command = command
	gen := m.session.Begin(t)

	if cancel := m.cancels[t]; cancel != nil {
		cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancels[t] = cancel

	m.logger.Info("run", "tab", t, "generation", gen, "command", command)

	runner := m.runner
	source := m.session.Source
	return func() tea.Msg {
		start := time.Now()
		out := runner.Run(ctx, command, source)
		return runFinishedMsg{result: model.Result{
			Tab:        t,
			Generation: gen,
			Command:    command,
			Output:     out,
			Elapsed:    time.Since(start),
		}}
	}
}

func (m Model) finishRun(r model.Result) Model {
	if !m.session.Complete(r.Tab, r.Generation, r.Output) {
		m.logger.Debug("dropped stale result", "tab", r.Tab, "generation", r.Generation)
		return m
	}
	if cancel := m.cancels[r.Tab]; cancel != nil {
		cancel()
		delete(m.cancels, r.Tab)
	}
	m.logger.Debug("run finished", "tab", r.Tab, "generation", r.Generation, "elapsed", r.Elapsed)

	v := &m.views[r.Tab]
	if v.query != "" {
		v.matches = findMatches(m.outputLines(r.Tab), v.query)
		v.matchIdx = 0
	}
	if r.Tab == m.session.Selected {
		m.clampOffset()
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	for t, cancel := range m.cancels {
		cancel()
		delete(m.cancels, t)
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	// editing alone never reruns; the next tab or flag change picks it up
	m.session.Source = m.editor.Value()
	return m, cmd
}

func (m Model) updateOutput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc":
		return m.selectTab(model.TabSource)

	case "d", "o", "m", "l":
		m.toggle(msg.String())
		m.status = ""
		return m, m.run(m.session.Selected)

	case "r":
		m.status = ""
		return m, m.run(m.session.Selected)

	case "c":
		m.copyCommand()

	case "up", "k":
		m.scrollUp(1)
	case "down", "j":
		m.scrollDown(1)
	case "pgup", "u":
		m.scrollUp(m.outputRows())
	case "pgdown", "f":
		m.scrollDown(m.outputRows())
	case "home", "g":
		m.views[m.session.Selected].offset = 0
	case "end", "G":
		m.scrollToBottom()

	case "/":
		m.searchInput.SetValue("")
		m.searchInput.Focus()
		m.searching = true
		return m, textinput.Blink

	case "n":
		m.nextMatch()
	case "N":
		m.prevMatch()
	}
	return m, nil
}

func (m *Model) toggle(key string) {
	o := &m.session.Options
	switch key {
	case "d":
		o.Demangle = !o.Demangle
	case "o":
		o.Optimize = !o.Optimize
	case "m":
		o.ModuleOptimize = !o.ModuleOptimize
	case "l":
		o.ParseAsLibrary = !o.ParseAsLibrary
	}
}

func (m *Model) copyCommand() {
	cmd := m.session.Command
	if cmd == "" {
		m.status = "No command to copy"
		return
	}
	if err := m.copy(cmd); err != nil {
		m.logger.Warn("copy to clipboard", "err", err)
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied to clipboard"
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	if m.session.Selected == model.TabSource {
		b.WriteString(m.editor.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("  Tab/Shift+Tab: switch view  Alt+1..8: jump  Ctrl+C: quit"))
		return b.String()
	}

	b.WriteString(m.renderOptions())
	b.WriteString("\n")
	b.WriteString(m.viewOutput())
	b.WriteString(commandStyle.Render(truncate("$ "+m.session.Command, m.width)))
	b.WriteString("\n")
	b.WriteString(m.outputHelpBar())
	return b.String()
}

func (m Model) renderTabBar() string {
	parts := []string{titleStyle.Render("SILViewer")}
	for t := model.TabSource; t < model.TabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t.Title())
		if t == m.session.Selected {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) resizeEditor() {
	m.editor.SetWidth(m.width)
	h := m.height - 2 // tab bar + help
	if h < 1 {
		h = 1
	}
	m.editor.SetHeight(h)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if width < 4 || len(runes) <= width {
		return s
	}
	return string(runes[:width-2]) + ".."
}
