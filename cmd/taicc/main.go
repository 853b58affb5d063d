package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/cmds"
	"github.com/reusee/taicc/debugs"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
	"github.com/reusee/taicc/taicc"
	"github.com/reusee/taicc/taiconfigs"
	"golang.org/x/term"
)

var (
	runFlag   = cmds.Switch("-run")
	tapFlag   = cmds.Switch("-tap")
	probeFlag = cmds.Var[string]("-probe")
	replFlag  = cmds.Switch("repl")

	inputs []string
)

var errArgCount = errors.New("wrong number of arguments")

func init() {
	cmds.Fallback(cmds.Func(func(expr string) {
		inputs = append(inputs, expr)
	}).Desc("expression to compile"))
}

func newScope() dscope.Scope {
	return dscope.New(
		new(logs.Module),
		new(taiconfigs.Module),
		new(taicc.Module),
		new(debugs.Module),
		modes.ForProduction(),
	)
}

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()
	scope := newScope()

	if *replFlag {
		scope.Call(runREPL)
		return
	}

	expr, err := readInput(inputs, os.Stdin)
	if err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		os.Exit(1)
	}

	scope.Call(func(
		logger logs.Logger,
		compile taicc.CompileFunc,
		entry taiconfigs.Entry,
		tap debugs.Tap,
		probe debugs.Probe,
	) {
		unit, err := compile(ctx, taicc.NewSource("", expr))
		if err != nil {
			os.Stderr.WriteString(err.Error())
			os.Stderr.WriteString("\n")
			os.Exit(1)
		}

		if *probeFlag != "" {
			if _, err := probe(ctx, *probeFlag, nil, artifacts(unit)); err != nil {
				os.Stderr.WriteString(err.Error())
				os.Stderr.WriteString("\n")
				os.Exit(1)
			}
		}
		if *tapFlag {
			tap(ctx, "compiled", artifacts(unit))
		}

		program := newProgram(unit, string(entry))

		if *runFlag {
			value, err := evaluate(ctx, logger, program)
			if err != nil {
				os.Stderr.WriteString(err.Error())
				os.Stderr.WriteString("\n")
				os.Exit(1)
			}
			fmt.Println(value)
			return
		}

		if _, err := program.WriteTo(os.Stdout); err != nil {
			os.Stderr.WriteString(err.Error())
			os.Stderr.WriteString("\n")
			os.Exit(1)
		}
	})
}

// readInput returns the single expression argument, or the whole of stdin when
// no argument is given and stdin is not a terminal.
func readInput(args []string, stdin *os.File) (string, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 0:
		if stdin == nil || term.IsTerminal(int(stdin.Fd())) {
			return "", errArgCount
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		// the final line break belongs to the input stream, not the expression
		expr := strings.TrimSuffix(string(content), "\n")
		expr = strings.TrimSuffix(expr, "\r")
		return expr, nil
	}
	return "", fmt.Errorf("%w: want 1, got %d", errArgCount, len(args))
}

func artifacts(unit *taicc.Unit) map[string]any {
	return map[string]any{
		"source":  unit.Source.Content,
		"tokens":  unit.Tokens,
		"ast":     unit.AST,
		"code":    unit.Code,
		"listing": taicc.Listing(unit.Code),
		"format_ast": func() string {
			return taicc.Format(unit.AST)
		},
	}
}
