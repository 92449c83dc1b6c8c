package launcher

import "github.com/jackwu/silviewer/model"

// emitFlags are the swiftc dump/emit switches per output tab.
var emitFlags = map[model.Tab]string{
	model.TabParse:        "-dump-parse",
	model.TabAST:          "-dump-ast",
	model.TabPrettyAST:    "-print-ast",
	model.TabRawSIL:       "-emit-silgen",
	model.TabCanonicalSIL: "-emit-sil",
	model.TabIR:           "-emit-ir",
	model.TabAssembly:     "-emit-assembly",
}

// Templated reports whether the tab's command depends on the options.
// Parse, AST and pretty-printed AST always run a fixed command.
func Templated(t model.Tab) bool {
	switch t {
	case model.TabRawSIL, model.TabCanonicalSIL, model.TabIR, model.TabAssembly:
		return true
	default:
		return false
	}
}

// BaseCommand returns the command for tab before any option is applied.
// The source tab has no command.
func BaseCommand(tc Toolchain, t model.Tab) string {
	flag, ok := emitFlags[t]
	if !ok {
		return ""
	}
	return tc.Compiler + " - " + flag
}

// BuildCommand returns the shell command that renders tab with opts.
func BuildCommand(tc Toolchain, t model.Tab, opts model.Options) string {
	cmd := BaseCommand(tc, t)
	if cmd == "" || !Templated(t) {
		return cmd
	}
	cmd = withParseAsLibrary(opts.ParseAsLibrary, tc.ModuleName, cmd)
	cmd = withOptimize(opts.Optimize, cmd)
	cmd = withModuleOptimize(opts.ModuleOptimize, cmd)
	cmd = withDemangle(opts.Demangle, tc.Demangler, cmd)
	return cmd
}

func withParseAsLibrary(on bool, moduleName, cmd string) string {
	if !on {
		return cmd
	}
	return cmd + " -parse-as-library -module-name " + moduleName
}

func withOptimize(on bool, cmd string) string {
	if !on {
		return cmd
	}
	return cmd + " -O"
}

func withModuleOptimize(on bool, cmd string) string {
	if !on {
		return cmd
	}
	return cmd + " -whole-module-optimization"
}

func withDemangle(on bool, demangler, cmd string) string {
	if !on {
		return cmd
	}
	return cmd + " | " + demangler
}
