package taiconfigs

import (
	"github.com/reusee/taicc/cmds"
	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/taicc"
)

// MaxDepth bounds expression nesting in the parser.
type MaxDepth int

var maxDepthFlag = cmds.Var[int]("-max-depth")

func (Module) MaxDepth(
	loader configs.Loader,
) MaxDepth {
	maxDepth := taicc.DefaultMaxDepth

	// flag
	if *maxDepthFlag > 0 {
		maxDepth = *maxDepthFlag
	} else if n := configs.First[int](loader, "max_depth"); n > 0 {
		// config
		maxDepth = n
	}

	return MaxDepth(maxDepth)
}

func (Module) CompileOptions(
	maxDepth MaxDepth,
) taicc.Options {
	return taicc.Options{
		MaxDepth: int(maxDepth),
	}
}
