package assets

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/webbuild/internal/buildconfig"
	"github.com/wolfeidau/webbuild/internal/compiler"
)

// styleNamespace holds the stylesheets emitted by the template compiler,
// keyed by the path of the component that produced them.
const styleNamespace = "component-css"

// sourceExts are the module extensions mirrored when preserving modules.
var sourceExts = map[string]bool{
	".svelte": true,
	".js":     true,
	".mjs":    true,
	".ts":     true,
}

// templatePlugin compiles components on load. When styles is non-nil the
// component CSS is imported through styleNamespace so esbuild bundles it
// into the entry's stylesheet; otherwise it is discarded.
func templatePlugin(ctx context.Context, c compiler.Compiler, opts buildconfig.TemplateCompile, styles *sync.Map) api.Plugin {
	return api.Plugin{
		Name: buildconfig.TemplateCompileName,
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: `\.svelte$`, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					source, err := os.ReadFile(args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}

					res, err := c.Compile(ctx, compiler.Request{
						Filename: args.Path,
						Source:   source,
						Options:  opts,
					})
					if err != nil {
						return api.OnLoadResult{}, err
					}

					js := res.JS
					if res.CSS != "" {
						if styles != nil {
							styles.Store(args.Path, res.CSS)
							js += "\nimport " + strconv.Quote(styleNamespace+":"+args.Path) + ";\n"
						} else {
							log.Debug().Str("file", args.Path).Msg("Discarding component styles")
						}
					}

					warnings := make([]api.Message, 0, len(res.Warnings))
					for _, w := range res.Warnings {
						warnings = append(warnings, api.Message{Text: w})
					}

					return api.OnLoadResult{
						Contents:   &js,
						Loader:     api.LoaderJS,
						ResolveDir: filepath.Dir(args.Path),
						Warnings:   warnings,
					}, nil
				})
		},
	}
}

// cssExtractPlugin serves the stylesheets collected by templatePlugin.
func cssExtractPlugin(styles *sync.Map) api.Plugin {
	prefix := styleNamespace + ":"

	return api.Plugin{
		Name: buildconfig.CSSExtractName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: "^" + prefix},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      strings.TrimPrefix(args.Path, prefix),
						Namespace: styleNamespace,
					}, nil
				})

			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: styleNamespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					css, ok := styles.Load(args.Path)
					if !ok {
						return api.OnLoadResult{}, fmt.Errorf("no styles collected for %s", args.Path)
					}
					contents := css.(string)

					return api.OnLoadResult{
						Contents:   &contents,
						Loader:     api.LoaderCSS,
						ResolveDir: filepath.Dir(args.Path),
					}, nil
				})
		},
	}
}

// preserveModulesPlugin keeps relative imports between modules under root
// out of the bundle and points them at the sibling output module, so each
// source file maps to one output. Imports leaving root are bundled.
func preserveModulesPlugin(root, outExt string) api.Plugin {
	return api.Plugin{
		Name: "preserve-modules",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `^\.\.?/`, Namespace: "file"},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if args.Kind == api.ResolveEntryPoint {
						return api.OnResolveResult{}, nil
					}
					target := filepath.Join(args.ResolveDir, filepath.FromSlash(args.Path))
					if !within(root, args.Importer) || !within(root, target) {
						return api.OnResolveResult{}, nil
					}
					return api.OnResolveResult{
						Path:     rewriteExt(args.Path, outExt),
						External: true,
					}, nil
				})
		},
	}
}

// within reports whether path lies under root and outside any node_modules.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == "node_modules" {
			return false
		}
	}
	return true
}

// rewriteExt swaps a source module extension for the output one. Import
// specifiers always use forward slashes.
func rewriteExt(specifier, outExt string) string {
	ext := path.Ext(specifier)
	switch {
	case ext == "":
		return specifier + outExt
	case sourceExts[ext]:
		return strings.TrimSuffix(specifier, ext) + outExt
	default:
		return specifier
	}
}

// collectModules lists every source module under root, relative to workDir.
func collectModules(workDir, root string) ([]string, error) {
	var modules []string

	err := filepath.WalkDir(filepath.Join(workDir, root), func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[filepath.Ext(p)] {
			return nil
		}

		rel, err := filepath.Rel(workDir, p)
		if err != nil {
			return err
		}
		modules = append(modules, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect modules under %s: %w", root, err)
	}

	return modules, nil
}
