package buildconfig

// BuildTarget pairs a set of entry modules with an output descriptor and the
// plugin chain applied to them. Plugin order is significant: each plugin
// consumes the output of the one before it.
type BuildTarget struct {
	EntryPoints []string
	Output      OutputDescriptor
	Plugins     []Plugin
}

// OutputDescriptor describes where and how a target's artifacts are emitted.
type OutputDescriptor struct {
	// Directory artifacts are written to, must be unique per target.
	Dir string
	// Optional file name template for entry chunks (e.g., "[name].mjs").
	EntryFileNames string
	// Emit one output module per source module instead of a single bundle.
	PreserveModules bool
	// Source directory stripped from output paths when preserving modules.
	PreserveModulesRoot string
}

// PluginNames returns the names of the target's plugins in chain order.
func (t BuildTarget) PluginNames() []string {
	names := make([]string, 0, len(t.Plugins))
	for _, p := range t.Plugins {
		names = append(names, p.Name())
	}
	return names
}

// Plugin looks up the first plugin in the chain with the given name.
func (t BuildTarget) Plugin(name string) (Plugin, bool) {
	for _, p := range t.Plugins {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// TemplateCompiler returns the template compile step of the chain, if any.
func (t BuildTarget) TemplateCompiler() (TemplateCompile, bool) {
	p, ok := t.Plugin(TemplateCompileName)
	if !ok {
		return TemplateCompile{}, false
	}
	tc, ok := p.(TemplateCompile)
	return tc, ok
}

// CSSExtractor returns the CSS extraction step of the chain, if any.
func (t BuildTarget) CSSExtractor() (CSSExtract, bool) {
	p, ok := t.Plugin(CSSExtractName)
	if !ok {
		return CSSExtract{}, false
	}
	ce, ok := p.(CSSExtract)
	return ce, ok
}

// Has reports whether a plugin with the given name is in the chain.
func (t BuildTarget) Has(name string) bool {
	_, ok := t.Plugin(name)
	return ok
}
