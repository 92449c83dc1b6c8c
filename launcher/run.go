package launcher

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const waitDelay = time.Second

// ShellRunner runs composed commands through a shell, one process per call.
type ShellRunner struct {
	shell  string
	logger *log.Logger
}

func NewShellRunner(shell string, logger *log.Logger) *ShellRunner {
	if shell == "" {
		shell = DefaultShell()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &ShellRunner{shell: shell, logger: logger}
}

// Run pipes source into `shell -c command` and blocks until it exits.
// The result is stdout, or stderr when the command wrote any.
func (r *ShellRunner) Run(ctx context.Context, command, source string) string {
	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// a canceled shell can leave children holding the pipes open
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("command finished",
		"command", command,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"stdout", stdout.Len(),
		"stderr", stderr.Len(),
		"err", err,
	)
	if ctx.Err() != nil {
		r.logger.Debug("command canceled", "command", command)
	}
	return SelectOutput(stdout.String(), stderr.String(), err)
}

// SelectOutput picks what to display for a finished process. Error text
// replaces the output entirely; the two are never concatenated.
func SelectOutput(stdout, stderr string, err error) string {
	if stderr != "" && stderr != "\n" {
		return stderr
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) && stdout == "" {
		// the process never started, so nothing else will explain it
		return err.Error() + "\n"
	}
	return stdout
}
