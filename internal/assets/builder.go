package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/webbuild/internal/buildconfig"
	"golang.org/x/sync/errgroup"
)

// Build runs every target through esbuild, writes the artifacts and loads
// metadata. Targets are built concurrently; output directories never overlap.
func (p *Pipeline) Build(ctx context.Context, targets []buildconfig.BuildTarget) error {
	if err := buildconfig.Validate(targets); err != nil {
		return fmt.Errorf("invalid build targets: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		g.Go(func() error {
			if err := p.buildTarget(ctx, target); err != nil {
				return fmt.Errorf("target %d (%s): %w", i, target.Output.Dir, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (p *Pipeline) buildTarget(ctx context.Context, target buildconfig.BuildTarget) error {
	opts, err := p.buildOptions(ctx, target)
	if err != nil {
		return err
	}

	log.Info().Strs("entrypoints", opts.EntryPoints).Str("outdir", opts.Outdir).Msg("Building assets")

	result := api.Build(opts)

	for _, msg := range result.Warnings {
		log.Warn().Str("warning", formatMessage(msg)).Msg("Build warning")
	}

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Error().Str("error", formatMessage(msg)).Msg("Build error")
		}
		return fmt.Errorf("esbuild failed with %d errors: %s", len(result.Errors), formatMessage(result.Errors[0]))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	extract, hasExtract := target.CSSExtractor()
	renamed := make(map[string]string)

	for _, file := range result.OutputFiles {
		path := file.Path
		if hasExtract && filepath.Ext(path) == ".css" {
			name := strings.TrimSuffix(filepath.Base(path), ".css")
			path = filepath.Join(filepath.Dir(path), extract.FileName(name))
			if path != file.Path {
				if err := p.recordRename(renamed, file.Path, path); err != nil {
					return err
				}
			}
		}

		if err := writeFile(path, file.Contents); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("Built file")
	}

	metafile, err := renameOutputs([]byte(result.Metafile), renamed)
	if err != nil {
		return fmt.Errorf("failed to rewrite metafile: %w", err)
	}

	// Write metafile
	if err := os.WriteFile(filepath.Join(opts.Outdir, p.config.MetafileName), metafile, 0600); err != nil {
		return err
	}

	// Parse and cache metadata
	var metadata BuildMetadata
	if err := json.Unmarshal(metafile, &metadata); err != nil {
		return err
	}

	p.mu.Lock()
	p.metadata[opts.Outdir] = &metadata
	p.mu.Unlock()

	return nil
}

// buildOptions translates a target's output descriptor and plugin chain into
// esbuild options.
func (p *Pipeline) buildOptions(ctx context.Context, target buildconfig.BuildTarget) (api.BuildOptions, error) {
	out := target.Output
	entryNames, outExt := entryFileNames(out)

	opts := api.BuildOptions{
		EntryPoints:   slices.Clone(target.EntryPoints),
		Bundle:        true,
		Splitting:     !out.PreserveModules,
		Write:         false,
		AbsWorkingDir: p.workDir,
		Outdir:        p.outDir(out.Dir),
		EntryNames:    entryNames,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		TreeShaking:   api.TreeShakingTrue,
		Sourcemap:     cond(p.config.SourceMap, api.SourceMapLinked, api.SourceMapNone),
		Metafile:      true,
		LogLevel:      api.LogLevelSilent,
	}

	if outExt != ".js" {
		opts.OutExtension = map[string]string{".js": outExt}
	}

	if !target.Has(buildconfig.ModuleResolveName) {
		opts.Packages = api.PackagesExternal
	}

	if target.Has(buildconfig.MinifyName) {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}

	if out.PreserveModules {
		root := out.PreserveModulesRoot
		if root == "" {
			root = "."
		}

		modules, err := collectModules(p.workDir, root)
		if err != nil {
			return api.BuildOptions{}, err
		}
		opts.EntryPoints = mergeEntryPoints(opts.EntryPoints, modules)
		opts.Outbase = filepath.Join(p.workDir, root)
		opts.Plugins = append(opts.Plugins, preserveModulesPlugin(opts.Outbase, outExt))
		// packages stay imports so every mirrored module shares one instance
		opts.Packages = api.PackagesExternal
	}

	var styles *sync.Map
	if _, ok := target.CSSExtractor(); ok {
		styles = &sync.Map{}
	}

	if tc, ok := target.TemplateCompiler(); ok {
		if p.compiler == nil {
			return api.BuildOptions{}, ErrNoCompiler
		}
		if tc.Mode() == buildconfig.GenerateSSR {
			opts.Platform = api.PlatformNode
		}
		opts.Plugins = append(opts.Plugins, templatePlugin(ctx, p.compiler, tc, styles))
	}

	if styles != nil {
		opts.Plugins = append(opts.Plugins, cssExtractPlugin(styles))
	}

	return opts, nil
}

// entryFileNames splits an entry file name pattern into the esbuild entry
// names template and the output extension.
func entryFileNames(out buildconfig.OutputDescriptor) (string, string) {
	pattern := out.EntryFileNames
	if pattern == "" {
		pattern = "[name].js"
	}

	ext := filepath.Ext(pattern)
	names := strings.TrimSuffix(pattern, ext)
	if ext == "" {
		ext = ".js"
	}

	if out.PreserveModules && !strings.Contains(names, "[dir]") {
		names = "[dir]/" + names
	}

	return names, ext
}

// mergeEntryPoints keeps the declared entries first and appends the
// remaining modules in sorted order.
func mergeEntryPoints(declared, modules []string) []string {
	seen := make(map[string]bool, len(declared)+len(modules))
	merged := make([]string, 0, len(declared)+len(modules))

	for _, e := range declared {
		key := filepath.Clean(filepath.FromSlash(e))
		if !seen[key] {
			seen[key] = true
			merged = append(merged, e)
		}
	}

	rest := slices.Clone(modules)
	slices.Sort(rest)
	for _, m := range rest {
		key := filepath.Clean(m)
		if !seen[key] {
			seen[key] = true
			merged = append(merged, m)
		}
	}

	return merged
}

// recordRename maps a renamed output to its metafile key, which is relative
// to the working directory with forward slashes.
func (p *Pipeline) recordRename(renamed map[string]string, from, to string) error {
	fromKey, err := filepath.Rel(p.workDir, from)
	if err != nil {
		return err
	}
	toKey, err := filepath.Rel(p.workDir, to)
	if err != nil {
		return err
	}
	renamed[filepath.ToSlash(fromKey)] = filepath.ToSlash(toKey)
	return nil
}

// renameOutputs rewrites output keys and cssBundle references of an esbuild
// metafile. Everything else in the metafile is kept as is.
func renameOutputs(metafile []byte, renamed map[string]string) ([]byte, error) {
	if len(renamed) == 0 {
		return metafile, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(metafile, &doc); err != nil {
		return nil, err
	}

	var outputs map[string]map[string]json.RawMessage
	if err := json.Unmarshal(doc["outputs"], &outputs); err != nil {
		return nil, err
	}

	rewritten := make(map[string]map[string]json.RawMessage, len(outputs))
	for key, output := range outputs {
		if raw, ok := output["cssBundle"]; ok {
			var bundle string
			if err := json.Unmarshal(raw, &bundle); err != nil {
				return nil, err
			}
			if to, ok := renamed[bundle]; ok {
				encoded, err := json.Marshal(to)
				if err != nil {
					return nil, err
				}
				output["cssBundle"] = encoded
			}
		}

		if to, ok := renamed[key]; ok {
			key = to
		}
		rewritten[key] = output
	}

	encoded, err := json.Marshal(rewritten)
	if err != nil {
		return nil, err
	}
	doc["outputs"] = encoded

	return json.Marshal(doc)
}

func writeFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - build output is served publicly
		return err
	}
	return os.WriteFile(path, contents, 0o644) // #nosec G306 - build output is served publicly
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}

// Load reads the metafile of a previously built target directory.
func (p *Pipeline) Load(dir string) error {
	outDir := p.outDir(dir)

	data, err := os.ReadFile(filepath.Join(outDir, p.config.MetafileName))
	if err != nil {
		return fmt.Errorf("failed to read metafile: %w", err)
	}

	var metadata BuildMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return fmt.Errorf("failed to parse metafile: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.metadata[outDir] = &metadata

	return nil
}

// LoadScripts returns the ordered list of script paths needed for the given
// entrypoint of the target written to dir, and the main entrypoint file path.
// Paths are rooted at the output directory.
func (p *Pipeline) LoadScripts(dir, entryPointPath string) ([]string, string, error) {
	outDir := p.outDir(dir)

	p.mu.RLock()
	defer p.mu.RUnlock()

	metadata, ok := p.metadata[outDir]
	if !ok {
		return nil, "", ErrNotBuilt
	}

	scripts := []string{}
	visited := make(map[string]bool)

	// Find the script output for this entrypoint, stylesheets share the entryPoint
	for outputPath, info := range metadata.Outputs {
		if info.EntryPoint != entryPointPath || !isScript(outputPath) {
			continue
		}

		entrypoint, err := p.publicPath(outDir, outputPath)
		if err != nil {
			return nil, "", err
		}
		scripts = append(scripts, entrypoint)
		visited[outputPath] = true

		if err := p.addDependencies(metadata, outDir, info, &scripts, visited); err != nil {
			return nil, "", err
		}
		return scripts, entrypoint, nil
	}

	return nil, "", fmt.Errorf("%w: %s", ErrEntryPointNotFound, entryPointPath)
}

// LoadStyles returns the stylesheet path extracted for the given entrypoint
// of the target written to dir, or "" when the entrypoint has no styles.
func (p *Pipeline) LoadStyles(dir, entryPointPath string) (string, error) {
	outDir := p.outDir(dir)

	p.mu.RLock()
	defer p.mu.RUnlock()

	metadata, ok := p.metadata[outDir]
	if !ok {
		return "", ErrNotBuilt
	}

	for outputPath, info := range metadata.Outputs {
		if info.EntryPoint != entryPointPath || !isScript(outputPath) {
			continue
		}
		if info.CSSBundle == "" {
			return "", nil
		}
		return p.publicPath(outDir, info.CSSBundle)
	}

	return "", fmt.Errorf("%w: %s", ErrEntryPointNotFound, entryPointPath)
}

func (p *Pipeline) addDependencies(metadata *BuildMetadata, outDir string, output OutputInfo, scripts *[]string, visited map[string]bool) error {
	for _, imp := range output.Imports {
		if imp.External || visited[imp.Path] {
			continue
		}
		visited[imp.Path] = true

		public, err := p.publicPath(outDir, imp.Path)
		if err != nil {
			return err
		}
		*scripts = append(*scripts, public)

		if chunkInfo, exists := metadata.Outputs[imp.Path]; exists {
			if err := p.addDependencies(metadata, outDir, chunkInfo, scripts, visited); err != nil {
				return err
			}
		}
	}
	return nil
}

// publicPath maps a metafile output path, relative to the working
// directory, to a URL path rooted at the output directory.
func (p *Pipeline) publicPath(outDir, outputPath string) (string, error) {
	rel, err := filepath.Rel(outDir, filepath.Join(p.workDir, filepath.FromSlash(outputPath)))
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("output %s is outside %s", outputPath, outDir)
	}
	return "/" + filepath.ToSlash(rel), nil
}

func isScript(outputPath string) bool {
	switch filepath.Ext(outputPath) {
	case ".js", ".mjs", ".cjs":
		return true
	default:
		return false
	}
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
