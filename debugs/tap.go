package debugs

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/reusee/taicc/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func toStringDict(globals map[string]any) starlark.StringDict {
	mappings := make(starlark.StringDict)
	for name, value := range globals {
		mappings[name] = toStarlarkValue(value)
	}
	return mappings
}

// Tap opens an interactive Starlark session on stdin with globals bound.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "tap",
		}
		repl.REPLOptions(fileOptions, thread, toStringDict(globals))
	}
}

// Probe runs a Starlark script with globals bound and returns the globals the
// script defines.
type Probe func(ctx context.Context, filename string, src any, globals map[string]any) (starlark.StringDict, error)

func (Module) Probe(
	logger logs.Logger,
	writer logs.Writer,
) Probe {
	return func(ctx context.Context, filename string, src any, globals map[string]any) (starlark.StringDict, error) {
		logger.DebugContext(ctx, "probe",
			"script", filename,
		)
		thread := &starlark.Thread{
			Name: "probe",
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(writer, msg)
			},
		}
		return starlark.ExecFileOptions(fileOptions, thread, filename, src, toStringDict(globals))
	}
}
