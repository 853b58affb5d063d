package logs

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/cmds"
)

func TestLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Info("hidden")
		logger.Warn("shown", "hello", "world!")
	})
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "hello=world!") {
		t.Fatalf("got %s", buf.String())
	}
}

func TestLoggerLevelCommand(t *testing.T) {
	withLevel(t, slog.LevelWarn)
	if err := cmds.GlobalExecutor.Execute([]string{"-log-debug"}); err != nil {
		t.Fatal(err)
	}
	if level.Level() != slog.LevelDebug {
		t.Fatalf("got %v", level.Level())
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "LOGS_SPAN" {
		t.Fatalf("got %v", got)
	}
}
