package taivm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const Indent = "  "

// WriteBody writes one instruction per line, without directives or label.
func WriteBody(w io.Writer, code []OpCode) (n int64, err error) {
	bw := bufio.NewWriter(w)
	for _, inst := range code {
		m, err := bw.WriteString(Indent + inst.String() + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// WriteTo writes a complete assembler listing with the entry symbol exported.
func (p *Program) WriteTo(w io.Writer) (n int64, err error) {
	header := ".intel_syntax noprefix\n" +
		".globl " + p.Name + "\n" +
		p.Name + ":\n"
	m, err := io.WriteString(w, header)
	n += int64(m)
	if err != nil {
		return n, err
	}
	m2, err := WriteBody(w, p.Code)
	n += m2
	return n, err
}

// Assemble reads a listing in the format produced by WriteTo or WriteBody.
// Directives are skipped, the first label names the program.
func Assemble(r io.Reader) (*Program, error) {
	program := new(Program)
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "."):
			continue
		case strings.HasSuffix(line, ":"):
			if program.Name == "" {
				program.Name = strings.TrimSuffix(line, ":")
			}
			continue
		}

		inst, err := parseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		program.Code = append(program.Code, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

func parseInstruction(line string) (OpCode, error) {
	mnemonic, rest, _ := strings.Cut(line, " ")
	var operands []string
	for operand := range strings.SplitSeq(rest, ",") {
		operand = strings.TrimSpace(operand)
		if operand != "" {
			operands = append(operands, operand)
		}
	}

	regs := func(want ...Reg) error {
		if len(operands) != len(want) {
			return fmt.Errorf("%s: want %d operands, got %d", mnemonic, len(want), len(operands))
		}
		for i, operand := range operands {
			if r, ok := parseReg(operand); !ok || r != want[i] {
				return fmt.Errorf("%s: unsupported operand %q", mnemonic, operand)
			}
		}
		return nil
	}

	switch mnemonic {
	case "push":
		if len(operands) != 1 {
			return 0, fmt.Errorf("push: want 1 operand, got %d", len(operands))
		}
		if r, ok := parseReg(operands[0]); ok {
			return OpPushReg.With(int64(r)), nil
		}
		imm, err := strconv.ParseInt(operands[0], 0, 32)
		if err != nil {
			return 0, fmt.Errorf("push: bad immediate %q: %w", operands[0], err)
		}
		return OpPush.With(imm), nil

	case "pop":
		if len(operands) != 1 {
			return 0, fmt.Errorf("pop: want 1 operand, got %d", len(operands))
		}
		r, ok := parseReg(operands[0])
		if !ok {
			return 0, fmt.Errorf("pop: unsupported operand %q", operands[0])
		}
		return OpPop.With(int64(r)), nil

	case "add":
		return OpAdd, regs(RAX, RDI)
	case "sub":
		return OpSub, regs(RAX, RDI)
	case "imul":
		return OpMul, regs(RAX, RDI)
	case "idiv":
		return OpDiv, regs(RDI)
	case "cqo":
		return OpCqo, regs()
	case "ret":
		return OpRet, regs()
	}

	return 0, fmt.Errorf("unknown instruction %q", mnemonic)
}
