package buildconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Declarations are the static inputs the targets are resolved from.
type Declarations struct {
	// Entry modules shared by every target.
	EntryPoints []string `yaml:"entryPoints" json:"entryPoints" toml:"entryPoints"`
	// Output directory of the browser bundle.
	BrowserDir string `yaml:"browserDir" json:"browserDir" toml:"browserDir"`
	// Output directory of the server rendering bundle.
	SSRDir string `yaml:"ssrDir" json:"ssrDir" toml:"ssrDir"`
	// Source root mirrored into SSRDir.
	SSRRoot string `yaml:"ssrRoot" json:"ssrRoot" toml:"ssrRoot"`
}

// Default returns the declarations of the web frontend.
func Default() Declarations {
	return Declarations{
		EntryPoints: []string{"src/Main.svelte"},
		BrowserDir:  "../target/",
		SSRDir:      "../target/ssr/",
		SSRRoot:     "src",
	}
}

// LoadDeclarations reads declaration overrides from path and merges them over
// the defaults. The format is picked by extension: .json, .toml, otherwise YAML.
func LoadDeclarations(path string) (Declarations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Declarations{}, fmt.Errorf("failed to read declarations file: %w", err)
	}

	var overrides Declarations

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &overrides); err != nil {
			return Declarations{}, fmt.Errorf("failed to parse JSON declarations: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &overrides); err != nil {
			return Declarations{}, fmt.Errorf("failed to parse TOML declarations: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return Declarations{}, fmt.Errorf("failed to parse YAML declarations: %w", err)
		}
	}

	return Default().Merge(overrides), nil
}

// Merge returns d with every non-empty field of overrides applied.
func (d Declarations) Merge(overrides Declarations) Declarations {
	if len(overrides.EntryPoints) > 0 {
		d.EntryPoints = slices.Clone(overrides.EntryPoints)
	}
	if overrides.BrowserDir != "" {
		d.BrowserDir = overrides.BrowserDir
	}
	if overrides.SSRDir != "" {
		d.SSRDir = overrides.SSRDir
	}
	if overrides.SSRRoot != "" {
		d.SSRRoot = overrides.SSRRoot
	}
	return d
}
