package model

import "fmt"

type Tab int

const (
	TabSource Tab = iota
	TabParse
	TabAST
	TabPrettyAST
	TabRawSIL
	TabCanonicalSIL
	TabIR
	TabAssembly
	TabCount
)

var tabNames = [TabCount]string{
	"source",
	"parse",
	"ast",
	"pretty-ast",
	"raw-sil",
	"canonical-sil",
	"ir",
	"assembly",
}

var tabTitles = [TabCount]string{
	"Source code",
	"Parse",
	"AST",
	"Pre-SIL Swift from AST",
	"Raw SIL",
	"Canonical SIL",
	"IR",
	"Assembly",
}

func (t Tab) String() string {
	if t < 0 || t >= TabCount {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabNames[t]
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	if t < 0 || t >= TabCount {
		return t.String()
	}
	return tabTitles[t]
}

// HasOutput reports whether the tab displays compiler output.
func (t Tab) HasOutput() bool {
	return t > TabSource && t < TabCount
}

func (t Tab) Next() Tab {
	return (t + 1) % TabCount
}

func (t Tab) Prev() Tab {
	return (t - 1 + TabCount) % TabCount
}

// ParseTab maps a CLI name such as "canonical-sil" to its Tab.
func ParseTab(name string) (Tab, error) {
	for i, n := range tabNames {
		if n == name {
			return Tab(i), nil
		}
	}
	return TabSource, fmt.Errorf("unknown tab %q", name)
}

// Options are the four user toggles that shape the compiler command.
type Options struct {
	Demangle       bool
	Optimize       bool
	ModuleOptimize bool
	ParseAsLibrary bool
}

func DefaultOptions() Options {
	return Options{Demangle: true}
}

const DefaultSource = "// Paste or write your Swift code here"

// Session is the in-memory state of one viewer process.
type Session struct {
	Source   string
	Options  Options
	Selected Tab
	Command  string // last command issued, shown and copied

	outputs     [TabCount]string
	generations [TabCount]uint64
	pending     [TabCount]bool
}

func NewSession(opts Options) *Session {
	return &Session{
		Source:   DefaultSource,
		Options:  opts,
		Selected: TabSource,
	}
}

// Begin starts a new request for tab and returns its generation.
func (s *Session) Begin(t Tab) uint64 {
	s.generations[t]++
	s.pending[t] = true
	return s.generations[t]
}

// Complete stores out for tab if gen is still the latest request for it.
func (s *Session) Complete(t Tab, gen uint64, out string) bool {
	if gen != s.generations[t] {
		return false
	}
	s.outputs[t] = out
	s.pending[t] = false
	return true
}

func (s *Session) Output(t Tab) string {
	return s.outputs[t]
}

func (s *Session) Pending(t Tab) bool {
	return s.pending[t]
}
