package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/webbuild/internal/assets"
	"github.com/wolfeidau/webbuild/internal/compiler"
)

// BuildCmd builds every resolved target.
type BuildCmd struct {
	Config    string   `help:"YAML/JSON/TOML declarations file overriding the defaults" env:"WEBBUILD_CONFIG"`
	WorkDir   string   `help:"directory entry points and output directories are relative to" default:"." env:"WEBBUILD_WORKDIR"`
	Compiler  []string `help:"template compiler command, receives JSON on stdin" default:"node,svelte-compile.mjs" env:"WEBBUILD_COMPILER"`
	SourceMap bool     `help:"emit linked source maps" default:"false" env:"WEBBUILD_SOURCEMAP"`
}

func (c *BuildCmd) Run(ctx context.Context, globals *Globals) error {
	decl, err := loadDeclarations(c.Config)
	if err != nil {
		return err
	}

	targets, err := decl.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}

	comp, err := compiler.NewExec(c.WorkDir, c.Compiler...)
	if err != nil {
		return fmt.Errorf("failed to configure compiler: %w", err)
	}

	cfg := assets.DefaultConfig()
	cfg.WorkDir = c.WorkDir
	cfg.SourceMap = c.SourceMap

	pipeline, err := assets.New(cfg, comp)
	if err != nil {
		return fmt.Errorf("failed to create asset pipeline: %w", err)
	}

	started := time.Now()
	if err := pipeline.Build(ctx, targets); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("targets", len(targets)).Dur("duration", time.Since(started)).Msg("Build finished")

	return nil
}
