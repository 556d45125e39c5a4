package compiler

import (
	"context"

	"github.com/wolfeidau/webbuild/internal/buildconfig"
)

// Request is a single component to compile.
type Request struct {
	Filename string
	Source   []byte
	Options  buildconfig.TemplateCompile
}

// Result is the compiled form of a component.
type Result struct {
	JS       string
	CSS      string
	Warnings []string
}

// Compiler turns component template source into an executable module.
type Compiler interface {
	Compile(ctx context.Context, req Request) (*Result, error)
}

// Func adapts a function to the Compiler interface.
type Func func(ctx context.Context, req Request) (*Result, error)

func (f Func) Compile(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}
