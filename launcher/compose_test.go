package launcher

import (
	"strings"
	"testing"

	"github.com/jackwu/silviewer/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildCommandExample(t *testing.T) {
	opts := model.Options{ParseAsLibrary: true, ModuleOptimize: true}
	got := BuildCommand(DefaultToolchain(), model.TabCanonicalSIL, opts)
	assert.Equal(t, "swiftc - -emit-sil -parse-as-library -module-name SILInspector -whole-module-optimization", got)
}

func TestBuildCommandAllFlagsOff(t *testing.T) {
	tc := DefaultToolchain()
	for _, tab := range []model.Tab{model.TabRawSIL, model.TabCanonicalSIL, model.TabIR, model.TabAssembly} {
		assert.Equal(t, BaseCommand(tc, tab), BuildCommand(tc, tab, model.Options{}), tab.String())
	}
}

func TestBuildCommandAllFlagsOn(t *testing.T) {
	opts := model.Options{Demangle: true, Optimize: true, ModuleOptimize: true, ParseAsLibrary: true}
	got := BuildCommand(DefaultToolchain(), model.TabIR, opts)
	assert.Equal(t, "swiftc - -emit-ir -parse-as-library -module-name SILInspector -O -whole-module-optimization | xcrun swift-demangle", got)
}

func TestBuildCommandFlagOrder(t *testing.T) {
	tc := DefaultToolchain()
	suffixes := []string{
		" -parse-as-library -module-name SILInspector",
		" -O",
		" -whole-module-optimization",
		" | xcrun swift-demangle",
	}

	for mask := 0; mask < 16; mask++ {
		opts := model.Options{
			ParseAsLibrary: mask&1 != 0,
			Optimize:       mask&2 != 0,
			ModuleOptimize: mask&4 != 0,
			Demangle:       mask&8 != 0,
		}
		want := "swiftc - -emit-assembly"
		for i, s := range suffixes {
			if mask&(1<<i) != 0 {
				want += s
			}
		}
		assert.Equal(t, want, BuildCommand(tc, model.TabAssembly, opts), "mask %04b", mask)
	}
}

func TestBuildCommandFixedTabs(t *testing.T) {
	tc := DefaultToolchain()
	all := model.Options{Demangle: true, Optimize: true, ModuleOptimize: true, ParseAsLibrary: true}
	tests := []struct {
		tab  model.Tab
		want string
	}{
		{model.TabParse, "swiftc - -dump-parse"},
		{model.TabAST, "swiftc - -dump-ast"},
		{model.TabPrettyAST, "swiftc - -print-ast"},
	}
	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			assert.False(t, Templated(tt.tab))
			assert.Equal(t, tt.want, BuildCommand(tc, tt.tab, model.Options{}))
			assert.Equal(t, tt.want, BuildCommand(tc, tt.tab, all))
		})
	}
}

func TestBuildCommandSourceTab(t *testing.T) {
	assert.Empty(t, BuildCommand(DefaultToolchain(), model.TabSource, model.DefaultOptions()))
}

func TestBuildCommandCustomToolchain(t *testing.T) {
	tc := Toolchain{Compiler: "xcrun swiftc", Demangler: "swift-demangle --simplified", ModuleName: "Demo"}
	got := BuildCommand(tc, model.TabRawSIL, model.Options{Demangle: true, ParseAsLibrary: true})
	assert.Equal(t, "xcrun swiftc - -emit-silgen -parse-as-library -module-name Demo | swift-demangle --simplified", got)
	assert.True(t, strings.HasPrefix(BaseCommand(tc, model.TabParse), "xcrun swiftc - "))
}
