// Package optimize implements three non-iterated IR passes: constant
// folding, constant propagation, dead-code elimination, applied in that
// fixed order over a single linear scan each. None of the passes reorder
// instructions, remove non-ASSIGN instructions, or rewrite jump targets.
package optimize

import "minic/ir"

// Optimize runs the fixed pass pipeline over a copy of instrs, leaving
// the caller's slice untouched.
func Optimize(instrs []ir.Instruction) []ir.Instruction {
	working := make([]ir.Instruction, len(instrs))
	copy(working, instrs)

	working = fold(working)
	working = propagate(working)
	working = eliminateDeadCode(working)
	return working
}

func isArithmeticOp(op ir.Op) bool {
	switch op {
	case ir.ADD, ir.SUB, ir.MUL, ir.DIV, ir.MOD:
		return true
	default:
		return false
	}
}

func isComparisonOp(op ir.Op) bool {
	switch op {
	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		return true
	default:
		return false
	}
}
