package main

import (
	"context"

	"github.com/reusee/taicc/logs"
	"github.com/reusee/taicc/taicc"
	"github.com/reusee/taicc/taivm"
)

// newProgram appends the return sequence: the value left on the stack becomes
// rax, the exit value of the entry function.
func newProgram(unit *taicc.Unit, entry string) *taivm.Program {
	code := make([]taivm.OpCode, 0, len(unit.Code)+2)
	code = append(code, unit.Code...)
	code = append(code,
		taivm.OpPop.With(int64(taivm.RAX)),
		taivm.OpRet,
	)
	return &taivm.Program{
		Name: entry,
		Code: code,
	}
}

func evaluate(ctx context.Context, logger logs.Logger, program *taivm.Program) (int64, error) {
	vm := taivm.NewVM(program)
	for inst, err := range vm.Run {
		if err != nil {
			return 0, err
		}
		logger.DebugContext(ctx, "step",
			"ip", vm.IP-1,
			"inst", inst.String(),
			"rax", vm.Reg(taivm.RAX),
			"rdi", vm.Reg(taivm.RDI),
			"sp", vm.SP,
		)
	}
	return vm.Result()
}
