package buildconfig

import (
	"fmt"
	"strings"
)

const (
	TemplateCompileName = "svelte"
	ModuleResolveName   = "node-resolve"
	CSSExtractName      = "css-only"
	MinifyName          = "terser"
)

// Plugin is one step of a target's transformation chain. The set of
// implementations is closed; each carries its own typed options.
type Plugin interface {
	Name() string
	// Options returns the plugin's options in the shape the plugin expects
	// when invoked by a rollup-style engine.
	Options() map[string]any
	Validate() error

	plugin()
}

// Generate selects the kind of code the template compiler emits.
type Generate string

const (
	GenerateDOM Generate = "dom"
	GenerateSSR Generate = "ssr"
)

// TemplateCompile compiles component templates into JavaScript modules.
type TemplateCompile struct {
	Generate   Generate
	Hydratable bool
	// CSS controls whether component styles are emitted at all.
	CSS bool
}

func (TemplateCompile) Name() string { return TemplateCompileName }

func (t TemplateCompile) Options() map[string]any {
	return map[string]any{
		"compilerOptions": map[string]any{
			"generate":   string(t.Mode()),
			"hydratable": t.Hydratable,
			"css":        t.CSS,
		},
	}
}

// Mode returns the generate mode, defaulting to dom.
func (t TemplateCompile) Mode() Generate {
	if t.Generate == "" {
		return GenerateDOM
	}
	return t.Generate
}

func (t TemplateCompile) Validate() error {
	switch t.Mode() {
	case GenerateDOM, GenerateSSR:
		return nil
	default:
		return fmt.Errorf("%w: %s: unknown generate mode %q", ErrInvalidPlugin, t.Name(), t.Generate)
	}
}

func (TemplateCompile) plugin() {}

// ModuleResolve resolves bare import specifiers against installed packages.
type ModuleResolve struct{}

func (ModuleResolve) Name() string            { return ModuleResolveName }
func (ModuleResolve) Options() map[string]any { return map[string]any{} }
func (ModuleResolve) Validate() error         { return nil }
func (ModuleResolve) plugin()                 {}

// CSSExtract collects component styles into a separate stylesheet named by
// the Output pattern.
type CSSExtract struct {
	Output string
}

func (CSSExtract) Name() string { return CSSExtractName }

func (c CSSExtract) Options() map[string]any {
	return map[string]any{"output": c.Output}
}

func (c CSSExtract) Validate() error {
	switch {
	case c.Output == "":
		return fmt.Errorf("%w: %s: output pattern is required", ErrInvalidPlugin, c.Name())
	case !strings.Contains(c.Output, "[name]"):
		return fmt.Errorf("%w: %s: output pattern %q must contain [name]", ErrInvalidPlugin, c.Name(), c.Output)
	case !strings.HasSuffix(c.Output, ".css"):
		return fmt.Errorf("%w: %s: output pattern %q must end in .css", ErrInvalidPlugin, c.Name(), c.Output)
	}
	return nil
}

// FileName expands the output pattern for the named entry.
func (c CSSExtract) FileName(name string) string {
	return strings.ReplaceAll(c.Output, "[name]", name)
}

func (CSSExtract) plugin() {}

// Minify minifies emitted code.
type Minify struct{}

func (Minify) Name() string            { return MinifyName }
func (Minify) Options() map[string]any { return map[string]any{} }
func (Minify) Validate() error         { return nil }
func (Minify) plugin()                 {}
