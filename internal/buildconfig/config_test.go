package buildconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDeclarations(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "webbuild.yaml",
			content: `entryPoints:
  - src/App.svelte
ssrDir: dist/server
`,
		},
		{
			name:    "json",
			file:    "webbuild.json",
			content: `{"entryPoints": ["src/App.svelte"], "ssrDir": "dist/server"}`,
		},
		{
			name: "toml",
			file: "webbuild.toml",
			content: `entryPoints = ["src/App.svelte"]
ssrDir = "dist/server"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			d, err := LoadDeclarations(path)
			require.NoError(t, err)

			assert.Equal(t, []string{"src/App.svelte"}, d.EntryPoints)
			assert.Equal(t, "dist/server", d.SSRDir)
			// untouched fields keep their defaults
			assert.Equal(t, "../target/", d.BrowserDir)
			assert.Equal(t, "src", d.SSRRoot)
		})
	}
}

func TestLoadDeclarations_Errors(t *testing.T) {
	_, err := LoadDeclarations(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read declarations file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err = LoadDeclarations(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON declarations")
}
