package buildconfig

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is a wire encoding for a target list.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type targetDoc struct {
	Input   []string    `json:"input" yaml:"input"`
	Output  outputDoc   `json:"output" yaml:"output"`
	Plugins []pluginDoc `json:"plugins" yaml:"plugins"`
}

type outputDoc struct {
	Dir                 string `json:"dir" yaml:"dir"`
	EntryFileNames      string `json:"entryFileNames,omitempty" yaml:"entryFileNames,omitempty"`
	PreserveModules     bool   `json:"preserveModules,omitempty" yaml:"preserveModules,omitempty"`
	PreserveModulesRoot string `json:"preserveModulesRoot,omitempty" yaml:"preserveModulesRoot,omitempty"`
}

type pluginDoc struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

func documents(targets []BuildTarget) []targetDoc {
	docs := make([]targetDoc, 0, len(targets))
	for _, t := range targets {
		doc := targetDoc{
			Input: t.EntryPoints,
			Output: outputDoc{
				Dir:                 t.Output.Dir,
				EntryFileNames:      t.Output.EntryFileNames,
				PreserveModules:     t.Output.PreserveModules,
				PreserveModulesRoot: t.Output.PreserveModulesRoot,
			},
			Plugins: make([]pluginDoc, 0, len(t.Plugins)),
		}
		for _, p := range t.Plugins {
			doc.Plugins = append(doc.Plugins, pluginDoc{Name: p.Name(), Options: p.Options()})
		}
		docs = append(docs, doc)
	}
	return docs
}

// Encode writes targets to w as an array of {input, output, plugins} objects,
// the layout rollup-style engines load their configuration in.
func Encode(w io.Writer, targets []BuildTarget, format Format) error {
	docs := documents(targets)

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
