package optimize

import (
	"math"
	"strconv"

	"minic/ir"
)

// fold replaces arithmetic and comparison instructions whose operands are
// both numeric literals with an equivalent ASSIGN. Division or modulo by
// zero is left untouched.
func fold(instrs []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(instrs))
	for i, in := range instrs {
		out[i] = in

		if !isNumeric(in.Arg1) || !isNumeric(in.Arg2) {
			continue
		}

		switch {
		case isArithmeticOp(in.Op):
			if v, ok := computeArith(in.Op, in.Arg1, in.Arg2); ok {
				out[i] = ir.Instruction{Op: ir.ASSIGN, Result: in.Result, Arg1: v}
			}
		case isComparisonOp(in.Op):
			v := computeCompare(in.Op, in.Arg1, in.Arg2)
			out[i] = ir.Instruction{Op: ir.ASSIGN, Result: in.Result, Arg1: v}
		}
	}
	return out
}

func computeArith(op ir.Op, a, b string) (string, bool) {
	if isIntLiteral(a) && isIntLiteral(b) {
		ai, _ := strconv.ParseInt(a, 10, 64)
		bi, _ := strconv.ParseInt(b, 10, 64)
		switch op {
		case ir.ADD:
			return strconv.FormatInt(ai+bi, 10), true
		case ir.SUB:
			return strconv.FormatInt(ai-bi, 10), true
		case ir.MUL:
			return strconv.FormatInt(ai*bi, 10), true
		case ir.DIV:
			if bi == 0 {
				return "", false
			}
			return strconv.FormatInt(ai/bi, 10), true
		case ir.MOD:
			if bi == 0 {
				return "", false
			}
			return strconv.FormatInt(ai%bi, 10), true
		}
	}

	af, _ := strconv.ParseFloat(a, 64)
	bf, _ := strconv.ParseFloat(b, 64)
	switch op {
	case ir.ADD:
		return formatFloat(af + bf), true
	case ir.SUB:
		return formatFloat(af - bf), true
	case ir.MUL:
		return formatFloat(af * bf), true
	case ir.DIV:
		if bf == 0 {
			return "", false
		}
		return formatFloat(af / bf), true
	case ir.MOD:
		if bf == 0 {
			return "", false
		}
		return formatFloat(math.Mod(af, bf)), true
	}
	return "", false
}

func computeCompare(op ir.Op, a, b string) string {
	af, _ := strconv.ParseFloat(a, 64)
	bf, _ := strconv.ParseFloat(b, 64)

	var result bool
	switch op {
	case ir.EQ:
		result = af == bf
	case ir.NE:
		result = af != bf
	case ir.LT:
		result = af < bf
	case ir.GT:
		result = af > bf
	case ir.LE:
		result = af <= bf
	case ir.GE:
		result = af >= bf
	}
	if result {
		return "true"
	}
	return "false"
}
