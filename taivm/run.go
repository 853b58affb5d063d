package taivm

import (
	"fmt"
	"math"
)

// Run executes the program, yielding every executed instruction. A fault is
// yielded with its error and stops the machine.
func (v *VM) Run(yield func(OpCode, error) bool) {
	fault := func(inst OpCode, err error) {
		yield(inst, fmt.Errorf("%w at %d: %s", err, v.IP-1, inst))
	}

	for !v.Halted {
		if v.IP < 0 || v.IP >= len(v.Program.Code) {
			return
		}

		inst := v.Program.Code[v.IP]
		v.IP++

		switch inst.Op() {
		case OpPush:
			v.push(inst.Arg())

		case OpPushReg:
			r := Reg(inst.Arg())
			if r >= numRegs {
				fault(inst, ErrBadOpCode)
				return
			}
			v.push(v.Regs[r])

		case OpPop:
			r := Reg(inst.Arg())
			if r >= numRegs {
				fault(inst, ErrBadOpCode)
				return
			}
			val, ok := v.pop()
			if !ok {
				fault(inst, ErrStackUnderflow)
				return
			}
			v.Regs[r] = val

		case OpAdd:
			v.Regs[RAX] += v.Regs[RDI]

		case OpSub:
			v.Regs[RAX] -= v.Regs[RDI]

		case OpMul:
			v.Regs[RAX] *= v.Regs[RDI]

		case OpCqo:
			if v.Regs[RAX] < 0 {
				v.Regs[RDX] = -1
			} else {
				v.Regs[RDX] = 0
			}

		case OpDiv:
			// the dividend is rax alone; emitted code sign-extends it into rdx with cqo first
			a, b := v.Regs[RAX], v.Regs[RDI]
			if b == 0 {
				fault(inst, ErrDivisionByZero)
				return
			}
			if a == math.MinInt64 && b == -1 {
				fault(inst, ErrDivisionOverflow)
				return
			}
			v.Regs[RAX] = a / b
			v.Regs[RDX] = a % b

		case OpRet:
			v.Halted = true

		default:
			fault(inst, ErrBadOpCode)
			return
		}

		if !yield(inst, nil) {
			return
		}
	}
}

// Eval runs the program to completion and returns its result.
func Eval(program *Program) (int64, error) {
	vm := NewVM(program)
	for _, err := range vm.Run {
		if err != nil {
			return 0, err
		}
	}
	return vm.Result()
}
