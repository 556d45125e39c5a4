package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/webbuild/internal/assets"
)

// ScriptsCmd lists the scripts a page must load to hydrate an entry point.
type ScriptsCmd struct {
	Entry   string `arg:"" help:"entry point as declared (e.g., src/Main.svelte)"`
	Dir     string `help:"output directory of the target" default:"../target/"`
	WorkDir string `help:"directory the build ran from" default:"." env:"WEBBUILD_WORKDIR"`
}

func (c *ScriptsCmd) Run(ctx context.Context, globals *Globals) error {
	cfg := assets.DefaultConfig()
	cfg.WorkDir = c.WorkDir

	pipeline, err := assets.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to create asset pipeline: %w", err)
	}

	if err := pipeline.Load(c.Dir); err != nil {
		return err
	}

	scripts, _, err := pipeline.LoadScripts(c.Dir, c.Entry)
	if err != nil {
		return err
	}

	for _, script := range scripts {
		fmt.Fprintln(stdout, script)
	}

	return nil
}
