package commands

import (
	"io"
	"os"

	"github.com/wolfeidau/webbuild/internal/buildconfig"
)

type Globals struct {
	Debug   bool
	Version string
}

var stdout io.Writer = os.Stdout

// loadDeclarations returns the default declarations, overridden by the
// file at path when one is given.
func loadDeclarations(path string) (buildconfig.Declarations, error) {
	if path == "" {
		return buildconfig.Default(), nil
	}
	return buildconfig.LoadDeclarations(path)
}
