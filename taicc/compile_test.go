package taicc

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime/debug"
	"strconv"
	"strings"
	"testing"

	"github.com/reusee/taicc/taivm"
)

func eval(t *testing.T, input string) int64 {
	t.Helper()
	unit, err := CompileString(input)
	if err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	value, err := taivm.Eval(&taivm.Program{Code: unit.Code})
	if err != nil {
		t.Fatalf("%q: %v", input, err)
	}
	return value
}

func TestCompileEval(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"  42  ", 42},
		{"10-2-3", 5},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{" 12 + 3 ", 15},
		{"12+3", 15},
		{"5+20-4", 21},
		{"5 - 9", -4},
		{"7/2", 3},
		{"(0-7)/2", -3},
		{"7/(0-2)", -3},
		{"(0-7)/(0-2)", 3},
		{"100/10/5", 2},
		{"2*3*4", 24},
		{"(3+5)/2", 4},
		{"2147483647*2147483647", 2147483647 * 2147483647},
	}
	for _, test := range tests {
		if got := eval(t, test.input); got != test.want {
			t.Fatalf("%q: got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestCompileWhitespaceInsensitive(t *testing.T) {
	a, err := CompileString(" 12 + 3 ")
	if err != nil {
		t.Fatal(err)
	}
	b, err := CompileString("12+3")
	if err != nil {
		t.Fatal(err)
	}
	if Listing(a.Code) != Listing(b.Code) {
		t.Fatalf("got\n%s\n%s", Listing(a.Code), Listing(b.Code))
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		input  string
		class  error
		offset int
	}{
		{"1+", ErrSyntax, 2},
		{"1+$", ErrLexical, 2},
		{"(1+2", ErrSyntax, 4},
		{"+1", ErrSyntax, 0},
		{"1 1", ErrSyntax, 2},
		{"4294967296", ErrLexical, 0},
	}
	for _, test := range tests {
		unit, err := CompileString(test.input)
		if unit != nil {
			t.Fatalf("%q: should produce nothing", test.input)
		}
		if !errors.Is(err, test.class) {
			t.Fatalf("%q: got %v", test.input, err)
		}
		var posErr PosError
		if !errors.As(err, &posErr) {
			t.Fatalf("%q: got %T", test.input, err)
		}
		if posErr.Pos.Offset != test.offset {
			t.Fatalf("%q: got offset %d", test.input, posErr.Pos.Offset)
		}
	}
}

func TestCompileDivisionByZero(t *testing.T) {
	// not folded, the machine faults at run time
	unit, err := CompileString("1/(2-2)")
	if err != nil {
		t.Fatal(err)
	}
	_, err = taivm.Eval(&taivm.Program{Code: unit.Code})
	if !errors.Is(err, taivm.ErrDivisionByZero) {
		t.Fatalf("got %v", err)
	}
}

func TestCompileListingRoundTrip(t *testing.T) {
	unit, err := CompileString("(8-2)*(3+4)/(1+1)")
	if err != nil {
		t.Fatal(err)
	}
	program, err := taivm.Assemble(strings.NewReader(Listing(unit.Code)))
	if err != nil {
		t.Fatal(err)
	}
	value, err := taivm.Eval(program)
	if err != nil {
		t.Fatal(err)
	}
	if value != 21 {
		t.Fatalf("got %v", value)
	}
}

// randomExpr builds a random well-formed expression and its value under
// 64-bit wrapping arithmetic with truncating division. ok is false when the
// expression divides by zero or overflows a division.
func randomExpr(rnd *rand.Rand, depth int) (src string, value int64, ok bool) {
	if depth == 0 || rnd.IntN(4) == 0 {
		n := rnd.Int64N(1000)
		if rnd.IntN(10) == 0 {
			n = rnd.Int64N(1 << 31)
		}
		space := strings.Repeat(" ", rnd.IntN(2))
		return space + strconv.FormatInt(n, 10) + space, n, true
	}

	lsrc, lval, lok := randomExpr(rnd, depth-1)
	rsrc, rval, rok := randomExpr(rnd, depth-1)
	ok = lok && rok
	// parenthesize operands so the generated tree is the parsed tree
	lsrc = "(" + lsrc + ")"
	rsrc = "(" + rsrc + ")"

	switch rnd.IntN(4) {
	case 0:
		return lsrc + "+" + rsrc, lval + rval, ok
	case 1:
		return lsrc + "-" + rsrc, lval - rval, ok
	case 2:
		return lsrc + "*" + rsrc, lval * rval, ok
	default:
		if rval == 0 || rval == -1 && lval == -1<<63 {
			return lsrc + "/" + rsrc, 0, false
		}
		return lsrc + "/" + rsrc, lval / rval, ok
	}
}

func TestCompileRandom(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))
	checked := 0
	for range 2000 {
		src, want, ok := randomExpr(rnd, 5)
		unit, err := CompileString(src)
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		got, err := taivm.Eval(&taivm.Program{Code: unit.Code})
		if !ok {
			if err == nil {
				t.Fatalf("%q: should fault", src)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", src, err)
		}
		if got != want {
			t.Fatalf("%q: got %v, want %v", src, got, want)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("nothing checked")
	}
}

func TestCompileLeftAssociativeChains(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		// same-precedence chains without parentheses evaluate left to right
		n := 2 + rnd.IntN(6)
		acc := rnd.Int64N(100) + 1
		src := fmt.Sprint(acc)
		for range n {
			v := rnd.Int64N(9) + 1
			if rnd.IntN(2) == 0 {
				src += "-" + fmt.Sprint(v)
				acc -= v
			} else {
				src += "+" + fmt.Sprint(v)
				acc += v
			}
		}
		if got := eval(t, src); got != acc {
			t.Fatalf("%q: got %v, want %v", src, got, acc)
		}
	}
}

func TestCompileLongChain(t *testing.T) {
	// chains are not bounded by the nesting limit; walking them must not
	// grow the stack with their length
	old := debug.SetMaxStack(4 << 20)
	t.Cleanup(func() {
		debug.SetMaxStack(old)
	})

	const n = 1 << 18
	input := strings.Repeat("1+", n-1) + "1"
	unit, err := CompileString(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(unit.Code) != 1+(n-1)*5 {
		t.Fatalf("got %d instructions", len(unit.Code))
	}
	value, err := taivm.Eval(&taivm.Program{Code: unit.Code})
	if err != nil {
		t.Fatal(err)
	}
	if value != n {
		t.Fatalf("got %v", value)
	}

	formatted := Format(unit.AST)
	if !strings.HasPrefix(formatted, "(+ (+ (+ ") ||
		!strings.HasSuffix(formatted, " 1) 1) 1)") ||
		len(formatted) != (n-1)*len("(+  )")+n {
		t.Fatalf("got %d bytes", len(formatted))
	}

	nodes := 0
	Walk(unit.AST, func(Node) {
		nodes++
	})
	if nodes != 2*n-1 {
		t.Fatalf("got %d", nodes)
	}
}

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"1+2*3",
		"(1+2",
		"10-2-3",
		"1+$",
		" 12 + 3 ",
		"((((7))))/2",
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		unit, err := CompileString(input)
		if err != nil {
			var posErr PosError
			if !errors.As(err, &posErr) {
				t.Fatalf("%q: unpositioned error %v", input, err)
			}
			if !errors.Is(err, ErrLexical) && !errors.Is(err, ErrSyntax) {
				t.Fatalf("%q: unclassified error %v", input, err)
			}
			return
		}
		vm := taivm.NewVM(&taivm.Program{Code: unit.Code})
		for _, err := range vm.Run {
			if err != nil {
				// division faults are the only run time errors
				if !errors.Is(err, taivm.ErrDivisionByZero) && !errors.Is(err, taivm.ErrDivisionOverflow) {
					t.Fatalf("%q: %v", input, err)
				}
				return
			}
		}
		if vm.SP != 1 {
			t.Fatalf("%q: got stack %v", input, vm.Stack())
		}
	})
}

func BenchmarkCompile(b *testing.B) {
	src := NewSource("", strings.Repeat("(1+2)*3-4/5+", 100)+"6")
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Compile(src, Options{}); err != nil {
			b.Fatal(err)
		}
	}
}
