package taicc

import (
	"context"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/logs"
)

type Module struct {
	dscope.Module
}

type CompileFunc func(ctx context.Context, src *Source) (*Unit, error)

func (Module) Compile(
	logger logs.Logger,
	newSpan logs.NewSpan,
	options Options,
) CompileFunc {
	return func(ctx context.Context, src *Source) (*Unit, error) {
		ctx, _ = newSpan(ctx, "")
		start := time.Now()
		unit, err := Compile(src, options)
		if err != nil {
			logger.DebugContext(ctx, "compile failed",
				"source", src.Name,
				"error", err,
			)
			return nil, err
		}
		logger.DebugContext(ctx, "compiled",
			"source", src.Name,
			"tokens", len(unit.Tokens),
			"instructions", len(unit.Code),
			"duration", time.Since(start),
		)
		return unit, nil
	}
}
