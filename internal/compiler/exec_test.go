package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/webbuild/internal/buildconfig"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestNewExec_NoCommand(t *testing.T) {
	_, err := NewExec("")
	require.ErrorIs(t, err, ErrNoCommand)

	_, err = NewExec("", "")
	require.ErrorIs(t, err, ErrNoCommand)
}

func TestExecCompiler_Compile(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	script := `cat > request.json
printf '{"js":"export default 1;","css":".a{color:red}","warnings":["unused"]}'
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compile.sh"), []byte(script), 0600))

	c, err := NewExec(dir, "sh", "compile.sh")
	require.NoError(t, err)

	res, err := c.Compile(context.Background(), Request{
		Filename: "src/Main.svelte",
		Source:   []byte("<h1>hi</h1>"),
		Options:  buildconfig.TemplateCompile{Generate: buildconfig.GenerateSSR, Hydratable: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "export default 1;", res.JS)
	assert.Equal(t, ".a{color:red}", res.CSS)
	assert.Equal(t, []string{"unused"}, res.Warnings)

	sent, err := os.ReadFile(filepath.Join(dir, "request.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"filename": "src/Main.svelte",
		"source": "<h1>hi</h1>",
		"options": {"generate": "ssr", "hydratable": true, "css": false}
	}`, string(sent))
}

func TestExecCompiler_Failure(t *testing.T) {
	requireShell(t)

	c, err := NewExec(t.TempDir(), "sh", "-c", "echo 'unexpected token' >&2; exit 3")
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), Request{Filename: "src/Bad.svelte"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "src/Bad.svelte")
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestExecCompiler_BadOutput(t *testing.T) {
	requireShell(t)

	c, err := NewExec(t.TempDir(), "sh", "-c", "cat >/dev/null; echo not-json")
	require.NoError(t, err)

	_, err = c.Compile(context.Background(), Request{Filename: "src/Main.svelte"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode compiler output")
}
