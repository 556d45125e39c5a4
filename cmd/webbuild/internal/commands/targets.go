package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/webbuild/internal/buildconfig"
)

// TargetsCmd prints the resolved build targets.
type TargetsCmd struct {
	Config string `help:"YAML/JSON/TOML declarations file overriding the defaults" env:"WEBBUILD_CONFIG"`
	Format string `help:"Output format" default:"json" enum:"json,yaml"`
}

func (c *TargetsCmd) Run(ctx context.Context, globals *Globals) error {
	decl, err := loadDeclarations(c.Config)
	if err != nil {
		return err
	}

	targets, err := decl.Resolve()
	if err != nil {
		return fmt.Errorf("failed to resolve targets: %w", err)
	}

	return buildconfig.Encode(stdout, targets, buildconfig.Format(c.Format))
}
