package buildconfig

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validate checks the invariants the engine relies on: every target has entry
// points and its own output directory, and every plugin's options are valid.
// All problems are reported together.
func Validate(targets []BuildTarget) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}

	var errs []error
	seen := make(map[string]int, len(targets))

	for i, t := range targets {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("target %d: %w", i, err))
		}

		if t.Output.Dir == "" {
			continue
		}
		dir := filepath.Clean(t.Output.Dir)
		if prev, ok := seen[dir]; ok {
			errs = append(errs, fmt.Errorf("target %d: %w: %s (also target %d)", i, ErrDuplicateOutputDir, dir, prev))
			continue
		}
		seen[dir] = i
	}

	return errors.Join(errs...)
}

// Validate checks a single target in isolation.
func (t BuildTarget) Validate() error {
	var errs []error

	if len(t.EntryPoints) == 0 {
		errs = append(errs, ErrNoEntryPoints)
	}
	for _, entry := range t.EntryPoints {
		if entry == "" {
			errs = append(errs, fmt.Errorf("%w: empty entry point", ErrNoEntryPoints))
		}
	}

	if t.Output.Dir == "" {
		errs = append(errs, ErrNoOutputDir)
	}
	if t.Output.PreserveModulesRoot != "" && !t.Output.PreserveModules {
		errs = append(errs, fmt.Errorf("%w: preserve modules root set without preserve modules", ErrInvalidOutput))
	}

	for _, p := range t.Plugins {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
