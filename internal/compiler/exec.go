package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultCommand runs the node wrapper around the svelte compiler shipped with the web frontend.
var DefaultCommand = []string{"node", "svelte-compile.mjs"}

var ErrNoCommand = errors.New("compiler command is required")

type execRequest struct {
	Filename string      `json:"filename"`
	Source   string      `json:"source"`
	Options  execOptions `json:"options"`
}

type execOptions struct {
	Generate   string `json:"generate"`
	Hydratable bool   `json:"hydratable"`
	CSS        bool   `json:"css"`
}

type execResponse struct {
	JS       string   `json:"js"`
	CSS      string   `json:"css"`
	Warnings []string `json:"warnings"`
}

// ExecCompiler compiles components by running an external process once per
// component. The request is written to stdin as JSON and the process answers
// with {"js", "css", "warnings"} on stdout.
type ExecCompiler struct {
	command []string
	dir     string
}

// NewExec creates an ExecCompiler running command from dir.
func NewExec(dir string, command ...string) (*ExecCompiler, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, ErrNoCommand
	}
	return &ExecCompiler{command: command, dir: dir}, nil
}

func (c *ExecCompiler) Compile(ctx context.Context, req Request) (*Result, error) {
	payload, err := json.Marshal(execRequest{
		Filename: req.Filename,
		Source:   string(req.Source),
		Options: execOptions{
			Generate:   string(req.Options.Mode()),
			Hydratable: req.Options.Hydratable,
			CSS:        req.Options.CSS,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode compile request: %w", err)
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...) // #nosec G204 - command comes from operator config
	cmd.Dir = c.dir
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("compile %s: %w: %s", req.Filename, err, strings.TrimSpace(stderr.String()))
	}

	var resp execResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("compile %s: failed to decode compiler output: %w", req.Filename, err)
	}

	for _, w := range resp.Warnings {
		zerolog.Ctx(ctx).Warn().Str("file", req.Filename).Str("warning", w).Msg("Compiler warning")
	}

	return &Result{JS: resp.JS, CSS: resp.CSS, Warnings: resp.Warnings}, nil
}
