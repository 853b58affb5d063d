package taiconfigs

import (
	"github.com/reusee/taicc/cmds"
	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/vars"
)

// Entry is the symbol the listing exports and labels.
type Entry string

const DefaultEntry = "main"

var entryFlag = cmds.Var[string]("-entry")

func (Module) Entry(
	loader configs.Loader,
) Entry {
	return Entry(vars.FirstNonZero(
		*entryFlag,
		configs.First[string](loader, "entry"),
		DefaultEntry,
	))
}
