package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/jackwu/silviewer/launcher"
	"github.com/jackwu/silviewer/model"
	"github.com/jackwu/silviewer/tui"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := launcher.DefaultToolchain()
	return &cli.App{
		Name:  "silviewer",
		Usage: "inspect swiftc parse, AST, SIL, IR and assembly output for a snippet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "shell", Value: launcher.DefaultShell(), Usage: "shell used to run compiler commands"},
			&cli.StringFlag{Name: "compiler", Value: defaults.Compiler, Usage: "compiler invocation, e.g. \"xcrun swiftc\""},
			&cli.StringFlag{Name: "demangler", Value: defaults.Demangler, Usage: "demangler the output is piped through"},
			&cli.StringFlag{Name: "module-name", Value: defaults.ModuleName, Usage: "module name used with -parse-as-library"},
			&cli.BoolFlag{Name: "demangle", Value: true, Usage: "pipe SIL, IR and assembly through the demangler"},
			&cli.BoolFlag{Name: "optimize", Usage: "compile with -O"},
			&cli.BoolFlag{Name: "module-optimize", Usage: "compile with -whole-module-optimization"},
			&cli.BoolFlag{Name: "parse-as-library", Usage: "compile with -parse-as-library"},
			&cli.StringFlag{Name: "log-file", Usage: "write logs to this file (the UI owns the terminal)"},
			&cli.BoolFlag{Name: "debug", Usage: "log every command with its timing"},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:      "print",
				Usage:     "compile source from stdin for one view and print the result",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tab", Aliases: []string{"t"}, Value: model.TabCanonicalSIL.String(), Usage: "view to render: parse, ast, pretty-ast, raw-sil, canonical-sil, ir, assembly"},
					&cli.BoolFlag{Name: "dry-run", Usage: "print the composed command without running it"},
				},
				Action: runPrint,
			},
		},
	}
}

func toolchainFrom(c *cli.Context) launcher.Toolchain {
	return launcher.Toolchain{
		Compiler:   c.String("compiler"),
		Demangler:  c.String("demangler"),
		ModuleName: c.String("module-name"),
	}
}

func optionsFrom(c *cli.Context) model.Options {
	return model.Options{
		Demangle:       c.Bool("demangle"),
		Optimize:       c.Bool("optimize"),
		ModuleOptimize: c.Bool("module-optimize"),
		ParseAsLibrary: c.Bool("parse-as-library"),
	}
}

func newLogger(c *cli.Context, w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "silviewer",
	})
	if c.Bool("debug") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func runTUI(c *cli.Context) error {
	var w io.Writer = io.Discard
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(c, w)

	tc := toolchainFrom(c)
	for _, problem := range tc.Check() {
		logger.Warn("toolchain", "problem", problem)
	}

	session := model.NewSession(optionsFrom(c))
	runner := launcher.NewShellRunner(c.String("shell"), logger)
	m := tui.NewModel(session, runner, tc, logger)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(c.Context))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func runPrint(c *cli.Context) error {
	tab, err := model.ParseTab(c.String("tab"))
	if err != nil {
		return err
	}
	if !tab.HasOutput() {
		return fmt.Errorf("tab %q has no compiler output", tab)
	}

	tc := toolchainFrom(c)
	command := launcher.BuildCommand(tc, tab, optionsFrom(c))
	if c.Bool("dry-run") {
		fmt.Fprintln(c.App.Writer, command)
		return nil
	}

	logger := newLogger(c, c.App.ErrWriter)
	for _, problem := range tc.Check() {
		logger.Warn("toolchain", "problem", problem)
	}

	source, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	runner := launcher.NewShellRunner(c.String("shell"), logger)
	fmt.Fprint(c.App.Writer, runner.Run(c.Context, command, string(source)))
	return nil
}
