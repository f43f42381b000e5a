package optimize

import "minic/ir"

// propagate runs a single forward scan maintaining a var -> constant map,
// substituting tracked variables into operands as it goes. It does not
// iterate to a fixed point: a substitution made late in the stream never
// triggers a re-scan of earlier instructions.
func propagate(instrs []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(instrs))
	consts := map[string]string{}

	for i, in := range instrs {
		cur := in
		if v, ok := consts[cur.Arg1]; ok {
			cur.Arg1 = v
		}
		if v, ok := consts[cur.Arg2]; ok {
			cur.Arg2 = v
		}
		out[i] = cur

		if cur.Op == ir.ASSIGN {
			if isNumeric(cur.Arg1) {
				consts[cur.Result] = cur.Arg1
			} else if v, ok := consts[cur.Arg1]; ok {
				consts[cur.Result] = v
			} else {
				delete(consts, cur.Result)
			}
			continue
		}

		if cur.Result != "" {
			delete(consts, cur.Result)
		}
	}
	return out
}
