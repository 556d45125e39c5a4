package buildconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargets(t *testing.T) {
	targets := ResolveTargets()
	require.Len(t, targets, 2)

	browser, ssr := targets[0], targets[1]

	require.NotEmpty(t, browser.EntryPoints)
	assert.Equal(t, browser.EntryPoints, ssr.EntryPoints)
	assert.Equal(t, []string{"src/Main.svelte"}, browser.EntryPoints)

	assert.Equal(t, "../target/", browser.Output.Dir)
	assert.Empty(t, browser.Output.EntryFileNames)
	assert.False(t, browser.Output.PreserveModules)
	assert.Empty(t, browser.Output.PreserveModulesRoot)

	assert.Equal(t, "../target/ssr/", ssr.Output.Dir)
	assert.Equal(t, "[name].mjs", ssr.Output.EntryFileNames)
	assert.True(t, ssr.Output.PreserveModules)
	assert.Equal(t, "src", ssr.Output.PreserveModulesRoot)
}

func TestResolveTargets_PluginOrder(t *testing.T) {
	targets := ResolveTargets()

	assert.Equal(t, []string{"svelte", "node-resolve", "css-only", "terser"}, targets[0].PluginNames())
	assert.Equal(t, []string{"svelte", "node-resolve"}, targets[1].PluginNames())

	assert.Equal(t, []Plugin{
		TemplateCompile{Generate: GenerateDOM, Hydratable: true, CSS: true},
		ModuleResolve{},
		CSSExtract{Output: "[name].css"},
		Minify{},
	}, targets[0].Plugins)

	assert.Equal(t, []Plugin{
		TemplateCompile{Generate: GenerateSSR, Hydratable: true, CSS: false},
		ModuleResolve{},
	}, targets[1].Plugins)
}

func TestResolveTargets_SSRHasNoStylesOrMinify(t *testing.T) {
	ssr := ResolveTargets()[1]

	assert.False(t, ssr.Has(CSSExtractName))
	assert.False(t, ssr.Has(MinifyName))

	tc, ok := ssr.TemplateCompiler()
	require.True(t, ok)
	assert.False(t, tc.CSS)
	assert.Equal(t, GenerateSSR, tc.Mode())
}

func TestResolveTargets_Idempotent(t *testing.T) {
	first := ResolveTargets()
	second := ResolveTargets()
	assert.Equal(t, first, second)

	// mutating one result must not leak into the next
	first[0].EntryPoints[0] = "src/Other.svelte"
	first[1].Plugins[0] = Minify{}

	third := ResolveTargets()
	assert.Equal(t, second, third)
	assert.Equal(t, "src/Main.svelte", third[1].EntryPoints[0])
}

func TestResolveTargets_Valid(t *testing.T) {
	require.NoError(t, Validate(ResolveTargets()))
}

func TestDeclarations_Resolve(t *testing.T) {
	d := Default()
	d.BrowserDir = "out"
	d.SSRDir = "out/"

	_, err := d.Resolve()
	require.ErrorIs(t, err, ErrDuplicateOutputDir)

	d.SSRDir = "out/ssr"
	targets, err := d.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "out", targets[0].Output.Dir)
	assert.Equal(t, "out/ssr", targets[1].Output.Dir)
}
