package taicc

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is either *Number or *BinaryOp.
type Node interface {
	node()
}

type Number struct {
	Value  int64
	Offset int
}

type BinaryOp struct {
	Op     Op
	Left   Node
	Right  Node
	Offset int
}

func (*Number) node()   {}
func (*BinaryOp) node() {}

type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
)

var opSymbols = [...]byte{
	OpAdd: '+',
	OpSub: '-',
	OpMul: '*',
	OpDiv: '/',
}

func (o Op) Symbol() byte {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return '?'
}

func (o Op) String() string {
	return string(o.Symbol())
}

// Format renders the tree as an S-expression, e.g. (- (- 10 2) 3).
func Format(node Node) string {
	var sb strings.Builder
	format(&sb, node)
	return sb.String()
}

func format(sb *strings.Builder, node Node) {
	spine, leaf := leftSpine(node)
	for _, bin := range spine {
		sb.WriteByte('(')
		sb.WriteByte(bin.Op.Symbol())
		sb.WriteByte(' ')
	}
	number, ok := leaf.(*Number)
	if !ok {
		panic(fmt.Errorf("bad node type: %T", leaf))
	}
	sb.WriteString(strconv.FormatInt(number.Value, 10))
	for i := len(spine) - 1; i >= 0; i-- {
		sb.WriteByte(' ')
		format(sb, spine[i].Right)
		sb.WriteByte(')')
	}
}

// leftSpine returns the binary nodes from node down its left children, outermost
// first, and the node that ends the spine.
func leftSpine(node Node) (spine []*BinaryOp, leaf Node) {
	for {
		bin, ok := node.(*BinaryOp)
		if !ok {
			return spine, node
		}
		spine = append(spine, bin)
		node = bin.Left
	}
}

// Walk visits the tree in postorder. Recursion follows right children only.
func Walk(node Node, fn func(Node)) {
	spine, leaf := leftSpine(node)
	fn(leaf)
	for i := len(spine) - 1; i >= 0; i-- {
		Walk(spine[i].Right, fn)
		fn(spine[i])
	}
}
