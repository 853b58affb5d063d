package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/taicc"
	"github.com/reusee/taicc/taiconfigs"
)

func runREPL(
	logger logs.Logger,
	compile taicc.CompileFunc,
	entry taiconfigs.Entry,
) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".taicc_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	ctx := context.Background()
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		out, err := replEval(ctx, logger, compile, string(entry), line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		fmt.Print(out)
	}
}

// replEval compiles one line and returns its listing body followed by the value.
func replEval(ctx context.Context, logger logs.Logger, compile taicc.CompileFunc, entry string, line string) (string, error) {
	unit, err := compile(ctx, taicc.NewSource("", line))
	if err != nil {
		return "", err
	}
	value, err := evaluate(ctx, logger, newProgram(unit, entry))
	if err != nil {
		return "", err
	}
	return taicc.Listing(unit.Code) + fmt.Sprintf("= %d\n", value), nil
}
