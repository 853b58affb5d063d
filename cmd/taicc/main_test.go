package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taicc/debugs"
	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/modes"
	"github.com/reusee/taicc/taicc"
	"github.com/reusee/taicc/taiconfigs"
	"github.com/reusee/taicc/taivm"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(logs.Module),
		new(taiconfigs.Module),
		new(taicc.Module),
		new(debugs.Module),
		modes.ForTest(t),
	)
}

func TestProgramListing(t *testing.T) {
	testScope(t).Call(func(
		compile taicc.CompileFunc,
		entry taiconfigs.Entry,
	) {
		unit, err := compile(t.Context(), taicc.NewSource("", "5+20-4"))
		if err != nil {
			t.Fatal(err)
		}
		buf := new(bytes.Buffer)
		if _, err := newProgram(unit, string(entry)).WriteTo(buf); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, ".intel_syntax noprefix\n.globl "+string(entry)+"\n"+string(entry)+":\n  push 5\n") {
			t.Fatalf("got %s", out)
		}
		if !strings.HasSuffix(out, "  push rax\n  pop rax\n  ret\n") {
			t.Fatalf("got %s", out)
		}

		// the listing runs as a whole program and returns the value in rax
		program, err := taivm.Assemble(buf)
		if err != nil {
			t.Fatal(err)
		}
		vm := taivm.NewVM(program)
		for _, err := range vm.Run {
			if err != nil {
				t.Fatal(err)
			}
		}
		if !vm.Halted || vm.SP != 0 || vm.Reg(taivm.RAX) != 21 {
			t.Fatalf("got halted=%v sp=%d rax=%d", vm.Halted, vm.SP, vm.Reg(taivm.RAX))
		}
	})
}

func TestEvaluate(t *testing.T) {
	testScope(t).Call(func(
		logger logs.Logger,
		compile taicc.CompileFunc,
	) {
		unit, err := compile(t.Context(), taicc.NewSource("", "(1+2)*3"))
		if err != nil {
			t.Fatal(err)
		}
		value, err := evaluate(t.Context(), logger, newProgram(unit, "main"))
		if err != nil {
			t.Fatal(err)
		}
		if value != 9 {
			t.Fatalf("got %v", value)
		}

		unit, err = compile(t.Context(), taicc.NewSource("", "1/0"))
		if err != nil {
			t.Fatal(err)
		}
		_, err = evaluate(t.Context(), logger, newProgram(unit, "main"))
		if !errors.Is(err, taivm.ErrDivisionByZero) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestReplEval(t *testing.T) {
	testScope(t).Call(func(
		logger logs.Logger,
		compile taicc.CompileFunc,
	) {
		out, err := replEval(t.Context(), logger, compile, "main", "10-2-3")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasSuffix(out, "  push rax\n= 5\n") {
			t.Fatalf("got %s", out)
		}

		_, err = replEval(t.Context(), logger, compile, "main", "1+")
		if err == nil || err.Error() != "1+\n  ^ expected a number" {
			t.Fatalf("got %v", err)
		}
	})
}

func TestReadInput(t *testing.T) {
	expr, err := readInput([]string{"1+2"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if expr != "1+2" {
		t.Fatalf("got %q", expr)
	}

	if _, err := readInput([]string{"1", "2"}, nil); !errors.Is(err, errArgCount) {
		t.Fatalf("got %v", err)
	}
	if _, err := readInput(nil, nil); !errors.Is(err, errArgCount) {
		t.Fatalf("got %v", err)
	}

	for _, test := range []struct {
		stdin string
		want  string
	}{
		{"6*7\n", "6*7"},
		{"6*7", "6*7"},
		{"1+\r\n", "1+"},
		{"1+\n2\n", "1+\n2"},
	} {
		expr, err := readInput(nil, pipeInput(t, test.stdin))
		if err != nil {
			t.Fatal(err)
		}
		if expr != test.want {
			t.Fatalf("%q: got %q", test.stdin, expr)
		}
	}
}

func pipeInput(t *testing.T, content string) *os.File {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatal(err)
	}
	w.Close()
	t.Cleanup(func() {
		r.Close()
	})
	return r
}

func TestStdinDiagnostics(t *testing.T) {
	testScope(t).Call(func(
		compile taicc.CompileFunc,
	) {
		for _, test := range []struct {
			stdin string
			want  string
		}{
			{"1+\n", "1+\n  ^ expected a number"},
			{"(1+2\n", "(1+2\n    ^ expected ')'"},
		} {
			expr, err := readInput(nil, pipeInput(t, test.stdin))
			if err != nil {
				t.Fatal(err)
			}
			_, err = compile(t.Context(), taicc.NewSource("", expr))
			if err == nil {
				t.Fatalf("%q: should fail", test.stdin)
			}
			if err.Error() != test.want {
				t.Fatalf("%q: got\n%s", test.stdin, err.Error())
			}
		}
	})
}

func TestArtifacts(t *testing.T) {
	unit, err := taicc.CompileString("1+2")
	if err != nil {
		t.Fatal(err)
	}
	testScope(t).Call(func(
		probe debugs.Probe,
	) {
		globals, err := probe(t.Context(), "check.star", `
if len(code) != 6:
    fail("bad code")
if format_ast() != "(+ 1 2)":
    fail("bad ast")
if source != "1+2":
    fail("bad source")
`, artifacts(unit))
		if err != nil {
			t.Fatal(err)
		}
		_ = globals
	})
}
