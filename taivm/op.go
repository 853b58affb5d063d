package taivm

import (
	"fmt"
	"strconv"
)

// OpCode is one encoded instruction: the operation in the low byte and a
// signed operand (immediate or register) in the remaining bits.
type OpCode uint64

const (
	OpPush OpCode = iota + 8
	OpPushReg
	OpPop
	OpAdd
	OpSub
	OpMul
	OpCqo
	OpDiv
	OpRet
)

func (o OpCode) With(arg int64) OpCode {
	return o | (OpCode(arg) << 8)
}

func (o OpCode) Op() OpCode {
	return o & 0xff
}

func (o OpCode) Arg() int64 {
	return int64(o) >> 8
}

func (o OpCode) String() string {
	switch o.Op() {
	case OpPush:
		return "push " + strconv.FormatInt(o.Arg(), 10)
	case OpPushReg:
		return "push " + Reg(o.Arg()).String()
	case OpPop:
		return "pop " + Reg(o.Arg()).String()
	case OpAdd:
		return "add rax, rdi"
	case OpSub:
		return "sub rax, rdi"
	case OpMul:
		return "imul rax, rdi"
	case OpCqo:
		return "cqo"
	case OpDiv:
		return "idiv rdi"
	case OpRet:
		return "ret"
	}
	return fmt.Sprintf("<bad opcode %#x>", uint64(o))
}

type Reg uint8

const (
	RAX Reg = iota
	RDI
	RDX
	numRegs
)

var regNames = [numRegs]string{
	RAX: "rax",
	RDI: "rdi",
	RDX: "rdx",
}

func (r Reg) String() string {
	if r < numRegs {
		return regNames[r]
	}
	return fmt.Sprintf("r?%d", r)
}

func parseReg(s string) (Reg, bool) {
	for i, name := range regNames {
		if name == s {
			return Reg(i), true
		}
	}
	return 0, false
}
