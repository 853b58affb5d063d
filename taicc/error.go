package taicc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLexical        = errors.New("lexical error")
	ErrSyntax         = errors.New("syntax error")
	ErrNestingTooDeep = errors.New("expression nested too deeply")
)

type LexicalError struct {
	Offset int
	Char   rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("invalid token %q", e.Char)
}

func (e *LexicalError) Is(target error) bool {
	return target == ErrLexical
}

// RangeError reports a number literal that does not fit a 32-bit immediate.
type RangeError struct {
	Offset  int
	Literal string
}

func (e *RangeError) Error() string {
	return "number out of range: " + e.Literal
}

func (e *RangeError) Is(target error) bool {
	return target == ErrLexical
}

type SyntaxError struct {
	Offset   int
	Expected string
}

func (e *SyntaxError) Error() string {
	return "expected " + e.Expected
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// NestingError is a syntax error raised when parentheses nest deeper than the
// parser allows.
type NestingError struct {
	Offset int
	Limit  int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("%s (limit %d)", ErrNestingTooDeep.Error(), e.Limit)
}

func (e *NestingError) Is(target error) bool {
	return target == ErrSyntax || target == ErrNestingTooDeep
}

type Pos struct {
	Source *Source
	Offset int
}

// PosError renders its cause under the offending source line:
//
//	1+$
//	  ^ invalid token '$'
type PosError struct {
	Err error
	Pos Pos
}

func (p PosError) Error() string {
	if p.Pos.Source == nil {
		return p.Err.Error()
	}

	var sb strings.Builder
	line, column := p.Pos.Source.Position(p.Pos.Offset)

	// end of input after trailing newlines is shown at the end of the last
	// non-blank line
	lines := p.Pos.Source.Lines
	if p.Pos.Offset >= len(p.Pos.Source.Content) {
		for line > 1 && line <= len(lines) && strings.TrimSpace(lines[line-1]) == "" {
			line--
			column = len(strings.TrimSuffix(lines[line-1], "\r")) + 1
		}
	}

	if p.Pos.Source.Name != "" {
		sb.WriteString(fmt.Sprintf("%s:%d:%d:\n", p.Pos.Source.Name, line, column))
	}

	idx := line - 1
	if idx >= 0 && idx < len(lines) {
		text := strings.TrimSuffix(lines[idx], "\r")
		sb.WriteString(text)
		sb.WriteString("\n")

		// everything left of an error offset is ASCII, so bytes line up with columns
		for i := 0; i < min(column-1, len(text)); i++ {
			if text[i] == '\t' {
				sb.WriteByte('\t')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("^ ")
		sb.WriteString(p.Err.Error())
	}

	return sb.String()
}

func (p PosError) Unwrap() error {
	return p.Err
}

func WithPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(PosError); ok {
		return err
	}
	return PosError{
		Err: err,
		Pos: pos,
	}
}
