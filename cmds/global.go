package cmds

import (
	"fmt"
	"os"
)

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

func Fallback(command *Command) {
	GlobalExecutor.Fallback(command)
}

// Execute runs args against the global executor and exits on error.
func Execute(args []string) {
	if err := GlobalExecutor.Execute(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
