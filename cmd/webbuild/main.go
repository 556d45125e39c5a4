package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/webbuild/cmd/webbuild/internal/commands"
	"github.com/wolfeidau/webbuild/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Targets commands.TargetsCmd `cmd:"" help:"Print the resolved build targets"`
		Build   commands.BuildCmd   `cmd:"" help:"Build the browser and server rendering bundles"`
		Scripts commands.ScriptsCmd `cmd:"" help:"List the scripts an entry point needs, in load order"`
		Debug   bool                `help:"Enable debug mode." env:"WEBBUILD_DEBUG"`
		Version kong.VersionFlag
	}
)

func main() {
	kctx := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		})

	l := logger.Setup(cli.Debug)
	log.Logger = l
	ctx := l.WithContext(context.Background())

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	kctx.FatalIfErrorf(err)
}
