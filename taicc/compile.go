package taicc

import (
	"github.com/reusee/taicc/taivm"
)

// Unit holds the artifacts of one compilation. Each stage's output is
// read-only once the next stage has started.
type Unit struct {
	Source *Source
	Tokens []Token
	AST    Node
	Code   []taivm.OpCode
}

// Compile runs tokenizer, parser and code generator in sequence and stops at
// the first error.
func Compile(src *Source, options Options) (*Unit, error) {
	unit := &Unit{
		Source: src,
	}

	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	unit.Tokens = tokens

	p := NewParser(src, tokens)
	p.SetMaxDepth(options.MaxDepth)
	node, err := p.parseAll()
	if err != nil {
		return nil, err
	}
	unit.AST = node

	unit.Code = Generate(node)
	return unit, nil
}

func CompileString(expr string) (*Unit, error) {
	return Compile(NewSource("", expr), Options{})
}
