package launcher

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
)

// Toolchain names the external programs the composed commands invoke.
// Compiler and Demangler are shell fragments, e.g. "xcrun swiftc".
type Toolchain struct {
	Compiler   string
	Demangler  string
	ModuleName string
}

func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler:   "swiftc",
		Demangler:  "xcrun swift-demangle",
		ModuleName: "SILInspector",
	}
}

// Check reports settings that will certainly fail once run. Problems
// are advisory: the runner still shows whatever the shell prints.
func (tc Toolchain) Check() []error {
	var problems []error
	for _, setting := range []struct {
		name  string
		value string
	}{
		{"compiler", tc.Compiler},
		{"demangler", tc.Demangler},
	} {
		words, err := shlex.Split(setting.value)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s %q: %w", setting.name, setting.value, err))
			continue
		}
		if len(words) == 0 {
			problems = append(problems, fmt.Errorf("%s is empty", setting.name))
			continue
		}
		if _, err := exec.LookPath(words[0]); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", setting.name, err))
		}
	}
	if tc.ModuleName == "" {
		problems = append(problems, fmt.Errorf("module name is empty"))
	}
	return problems
}

// DefaultShell returns /bin/bash, falling back to bash or sh on PATH.
func DefaultShell() string {
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash"
	}
	for _, name := range []string{"bash", "sh"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return "/bin/sh"
}
