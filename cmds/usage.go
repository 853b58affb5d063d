package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share one *Command; list each command once under its sorted names
	names := make(map[*Command][]string)
	var order []*Command
	for name, command := range commands {
		if command == nil {
			continue
		}
		if _, ok := names[command]; !ok {
			order = append(order, command)
		}
		names[command] = append(names[command], name)
	}
	for _, command := range order {
		slices.Sort(names[command])
	}
	slices.SortFunc(order, func(a, b *Command) int {
		return strings.Compare(names[a][0], names[b][0])
	})

	indent := strings.Repeat("  ", depth)
	for _, command := range order {
		line := indent + strings.Join(names[command], ", ")
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}
