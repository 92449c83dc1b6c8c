package launcher

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolchainCheck(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	tests := []struct {
		name     string
		tc       Toolchain
		problems int
		contains string
	}{
		{"ok", Toolchain{Compiler: "sh -e", Demangler: "sh", ModuleName: "M"}, 0, ""},
		{"missing compiler", Toolchain{Compiler: "no-such-swiftc-binary", Demangler: "sh", ModuleName: "M"}, 1, "compiler"},
		{"empty demangler", Toolchain{Compiler: "sh", Demangler: "  ", ModuleName: "M"}, 1, "demangler is empty"},
		{"bad quoting", Toolchain{Compiler: `"sh`, Demangler: "sh", ModuleName: "M"}, 1, "compiler"},
		{"empty module", Toolchain{Compiler: "sh", Demangler: "sh"}, 1, "module name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.tc.Check()
			assert.Len(t, problems, tt.problems)
			if tt.contains != "" && len(problems) > 0 {
				assert.Contains(t, problems[0].Error(), tt.contains)
			}
		})
	}
}

func TestDefaultShell(t *testing.T) {
	assert.NotEmpty(t, DefaultShell())
}
