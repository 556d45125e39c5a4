package buildconfig

import "errors"

var (
	ErrNoTargets          = errors.New("no build targets")
	ErrNoEntryPoints      = errors.New("no entry points")
	ErrNoOutputDir        = errors.New("output directory is required")
	ErrDuplicateOutputDir = errors.New("output directory used by more than one target")
	ErrInvalidOutput      = errors.New("invalid output descriptor")
	ErrInvalidPlugin      = errors.New("invalid plugin options")
)
