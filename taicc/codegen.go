package taicc

import (
	"fmt"
	"strings"

	"github.com/reusee/taicc/taivm"
)

type generator struct {
	code []taivm.OpCode
}

func (g *generator) emit(op taivm.OpCode) {
	g.code = append(g.code, op)
}

// Generate emits stack machine code that leaves the value of node as the only
// value on the stack. Operands are popped right first into rdi, then left into rax.
func Generate(node Node) []taivm.OpCode {
	g := new(generator)
	g.gen(node)
	return g.code
}

func (g *generator) gen(node Node) {
	// operator chains build left-deep trees of any length; only right
	// children recurse, and those are bounded by parenthesis nesting
	spine, leaf := leftSpine(node)
	number, ok := leaf.(*Number)
	if !ok {
		panic(fmt.Errorf("bad node type: %T", leaf))
	}
	g.emit(taivm.OpPush.With(number.Value))

	for i := len(spine) - 1; i >= 0; i-- {
		bin := spine[i]
		g.gen(bin.Right)
		g.binary(bin.Op)
	}
}

func (g *generator) binary(op Op) {
	g.emit(taivm.OpPop.With(int64(taivm.RDI)))
	g.emit(taivm.OpPop.With(int64(taivm.RAX)))

	switch op {
	case OpAdd:
		g.emit(taivm.OpAdd)
	case OpSub:
		g.emit(taivm.OpSub)
	case OpMul:
		g.emit(taivm.OpMul)
	case OpDiv:
		g.emit(taivm.OpCqo)
		g.emit(taivm.OpDiv)
	default:
		panic(fmt.Errorf("bad operator: %v", op))
	}

	g.emit(taivm.OpPushReg.With(int64(taivm.RAX)))
}

// Listing renders code one instruction per line, as in the body of an
// assembler listing.
func Listing(code []taivm.OpCode) string {
	var sb strings.Builder
	if _, err := taivm.WriteBody(&sb, code); err != nil {
		// strings.Builder never fails
		panic(err)
	}
	return sb.String()
}
