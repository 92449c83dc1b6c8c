package main

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.RunContext(context.Background(), append([]string{"silviewer"}, args...))
	return out.String(), err
}

func TestPrintDryRun(t *testing.T) {
	out, err := runApp(t, "", "--parse-as-library", "--module-optimize", "--demangle=false", "print", "--tab", "canonical-sil", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "swiftc - -emit-sil -parse-as-library -module-name SILInspector -whole-module-optimization\n", out)
}

func TestPrintDryRunFixedTab(t *testing.T) {
	out, err := runApp(t, "", "--optimize", "print", "-t", "ast", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "swiftc - -dump-ast\n", out)
}

func TestPrintRunsCompiler(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	out, err := runApp(t, `print("hi")`, "--shell", sh, "--compiler", "cat", "--demangle=false", "print", "--tab", "parse")
	require.NoError(t, err)
	// cat rejects the "-" "-dump-parse" operands, so its complaint is what shows
	assert.NotEmpty(t, out)

	out, err = runApp(t, `print("hi")`, "--shell", sh, "--compiler", "cat; true", "--demangle=false", "print", "--tab", "parse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `print("hi")`), out)
}

func TestPrintRejectsBadTab(t *testing.T) {
	_, err := runApp(t, "", "print", "--tab", "bitcode", "--dry-run")
	assert.Error(t, err)

	_, err = runApp(t, "", "print", "--tab", "source", "--dry-run")
	assert.Error(t, err)
}
