package taivm

import "errors"

var (
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrDivisionOverflow = errors.New("division overflow")
	ErrBadOpCode        = errors.New("bad opcode")
	ErrNotHalted        = errors.New("program did not return")
)

type VM struct {
	Program      *Program
	IP           int
	Regs         [numRegs]int64
	OperandStack []int64
	SP           int
	Halted       bool
}

func NewVM(program *Program) *VM {
	return &VM{
		Program:      program,
		OperandStack: make([]int64, 64),
	}
}

func (v *VM) Reg(r Reg) int64 {
	return v.Regs[r]
}

// Stack returns the live part of the operand stack, bottom first.
func (v *VM) Stack() []int64 {
	return v.OperandStack[:v.SP]
}

// Result is the value the program leaves behind: rax after ret, or the sole
// remaining stack value for a bare expression body.
func (v *VM) Result() (int64, error) {
	if v.Halted {
		return v.Regs[RAX], nil
	}
	if v.SP == 1 {
		return v.OperandStack[0], nil
	}
	return 0, ErrNotHalted
}

func (v *VM) push(val int64) {
	if v.SP >= len(v.OperandStack) {
		v.growOperandStack()
	}
	v.OperandStack[v.SP] = val
	v.SP++
}

func (v *VM) growOperandStack() {
	newCap := len(v.OperandStack) * 2
	if newCap == 0 {
		newCap = 8
	}
	newStack := make([]int64, newCap)
	copy(newStack, v.OperandStack)
	v.OperandStack = newStack
}

func (v *VM) pop() (int64, bool) {
	if v.SP <= 0 {
		return 0, false
	}
	v.SP--
	return v.OperandStack[v.SP], true
}
