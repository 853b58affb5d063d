package taicc

import (
	"fmt"
	"strconv"
)

type Token struct {
	Kind   TokenKind
	Value  int64
	Symbol byte
	Offset int
}

type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenOperator
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatInt(t.Value, 10)
	case TokenOperator:
		return string(t.Symbol)
	}
	return t.Kind.String()
}

// Is reports whether the token is the operator sym.
func (t Token) Is(sym byte) bool {
	return t.Kind == TokenOperator && t.Symbol == sym
}
