package buildconfig

import "slices"

// ResolveTargets returns the browser and server rendering targets built from
// the default declarations, browser first.
func ResolveTargets() []BuildTarget {
	return Default().Targets()
}

// Targets builds the target list without validating it. Each call returns
// fresh slices.
func (d Declarations) Targets() []BuildTarget {
	return []BuildTarget{
		{
			EntryPoints: slices.Clone(d.EntryPoints),
			Output: OutputDescriptor{
				Dir: d.BrowserDir,
			},
			Plugins: []Plugin{
				TemplateCompile{Generate: GenerateDOM, Hydratable: true, CSS: true},
				ModuleResolve{},
				CSSExtract{Output: "[name].css"},
				Minify{},
			},
		},
		{
			EntryPoints: slices.Clone(d.EntryPoints),
			Output: OutputDescriptor{
				Dir:                 d.SSRDir,
				EntryFileNames:      "[name].mjs",
				PreserveModules:     true,
				PreserveModulesRoot: d.SSRRoot,
			},
			Plugins: []Plugin{
				// styles are served by the browser bundle
				TemplateCompile{Generate: GenerateSSR, Hydratable: true, CSS: false},
				ModuleResolve{},
			},
		},
	}
}

// Resolve builds and validates the target list.
func (d Declarations) Resolve() ([]BuildTarget, error) {
	targets := d.Targets()
	if err := Validate(targets); err != nil {
		return nil, err
	}
	return targets, nil
}
