package taicc

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const operators = "+-*/()"

// Tokenize scans the whole source. The result always ends with exactly one
// TokenEOF, positioned at the end of the content.
func Tokenize(src *Source) ([]Token, error) {
	var tokens []Token
	content := src.Content
	p := 0
	for p < len(content) {
		c := content[p]

		if isSpace(c) {
			p++
			continue
		}

		if isOperator(c) {
			tokens = append(tokens, Token{
				Kind:   TokenOperator,
				Symbol: c,
				Offset: p,
			})
			p++
			continue
		}

		if isDigit(c) {
			start := p
			for p < len(content) && isDigit(content[p]) {
				p++
			}
			literal := content[start:p]
			value, err := strconv.ParseInt(literal, 10, 32)
			if err != nil {
				return nil, WithPos(&RangeError{
					Offset:  start,
					Literal: literal,
				}, Pos{Source: src, Offset: start})
			}
			tokens = append(tokens, Token{
				Kind:   TokenNumber,
				Value:  value,
				Offset: start,
			})
			continue
		}

		r, _ := utf8.DecodeRuneInString(content[p:])
		return nil, WithPos(&LexicalError{
			Offset: p,
			Char:   r,
		}, Pos{Source: src, Offset: p})
	}

	tokens = append(tokens, Token{
		Kind:   TokenEOF,
		Offset: len(content),
	})
	return tokens, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOperator(c byte) bool {
	return strings.IndexByte(operators, c) >= 0
}
