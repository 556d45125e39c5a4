package assets

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/wolfeidau/webbuild/internal/compiler"
)

var (
	ErrNotBuilt           = errors.New("assets not built yet, call Build() or Load() first")
	ErrEntryPointNotFound = errors.New("entrypoint not found in metadata")
	ErrNoCompiler         = errors.New("target compiles templates but no compiler is configured")
)

type BuildMetadata struct {
	Outputs map[string]OutputInfo `json:"outputs"`
}

type OutputInfo struct {
	EntryPoint string       `json:"entryPoint"`
	Imports    []ImportInfo `json:"imports"`
	CSSBundle  string       `json:"cssBundle,omitempty"`
}

type ImportInfo struct {
	Path     string `json:"path"`
	External bool   `json:"external,omitempty"`
}

// Pipeline runs build targets through esbuild and keeps the resulting
// metadata per output directory for script loading.
type Pipeline struct {
	config   Config
	compiler compiler.Compiler
	workDir  string
	metadata map[string]*BuildMetadata
	mu       sync.RWMutex
}

// New creates a new asset pipeline with the given configuration. The compiler
// is used by targets that compile component templates and may be nil otherwise.
func New(config Config, c compiler.Compiler) (*Pipeline, error) {
	workDir, err := filepath.Abs(config.WorkDir)
	if err != nil {
		return nil, err
	}
	if config.MetafileName == "" {
		config.MetafileName = DefaultConfig().MetafileName
	}

	return &Pipeline{
		config:   config,
		compiler: c,
		workDir:  workDir,
		metadata: make(map[string]*BuildMetadata),
	}, nil
}

// outDir resolves a target directory against the working directory.
func (p *Pipeline) outDir(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(p.workDir, dir)
}
