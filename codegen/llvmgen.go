package codegen

import (
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	llvmir "github.com/llir/llvm/ir"

	"minic/ir"
)

// GenerateLLVM lowers instrs into an LLVM IR module and returns its text
// form, as an additive LLVM backend. Every named value (variable
// or temporary) becomes an i32 stack slot defaulting to zero: the
// three-address form carries no parameter-binding
// instruction, so a function's formal parameters cannot be reconstructed
// from its IR alone -- this backend therefore declares every minic
// function with zero LLVM parameters and drops evaluated call arguments
// after evaluating them for side effects, exactly mirroring the x86
// x86 backend's own illustrative, non-linkable stance.
func GenerateLLVM(instrs []ir.Instruction) string {
	g := &llvmGenerator{
		module: llvmir.NewModule(),
		funcs:  map[string]*llvmir.Func{},
	}
	g.run(instrs)

	var sb strings.Builder
	sb.WriteString(g.module.String())
	return sb.String()
}

type llvmGenerator struct {
	module    *llvmir.Module
	funcs     map[string]*llvmir.Func
	printfFn  *llvmir.Func
	fmtGlobal *llvmir.Global

	fn     *llvmir.Func
	block  *llvmir.Block
	blocks map[string]*llvmir.Block
	slots  map[string]value.Value
}

func (g *llvmGenerator) run(instrs []ir.Instruction) {
	i := 0
	for i < len(instrs) {
		in := instrs[i]
		if in.Op == ir.LABEL && i+1 < len(instrs) && instrs[i+1].Op == ir.ENTER {
			end := g.genFunction(in.Result, instrs[i+2:])
			i += 2 + end
			continue
		}
		i++
	}
}

// genFunction lowers one function's body (the slice starting right after
// ENTER) and returns how many instructions it consumed, including the
// closing LEAVE/RET pair.
func (g *llvmGenerator) genFunction(name string, body []ir.Instruction) int {
	end := len(body)
	for j, in := range body {
		if in.Op == ir.LEAVE {
			end = j
			break
		}
	}
	fnBody := body[:end]
	consumed := end + 2 // LEAVE, RET

	fn := g.getOrDeclareFunc(name)
	fn.Blocks = nil
	entry := fn.NewBlock("entry")

	g.fn = fn
	g.block = entry
	g.blocks = map[string]*llvmir.Block{}
	g.slots = map[string]value.Value{}

	for _, name := range collectNames(fnBody) {
		slot := entry.NewAlloca(types.I32)
		entry.NewStore(constant.NewInt(types.I32, 0), slot)
		g.slots[name] = slot
	}
	for _, in := range fnBody {
		if in.Op == ir.LABEL {
			g.blocks[in.Result] = fn.NewBlock(blockName(name, in.Result))
		}
	}

	var pendingParams []value.Value
	for _, in := range fnBody {
		pendingParams = g.genInstruction(in, pendingParams)
	}

	if g.block.Term == nil {
		g.block.NewRet(constant.NewInt(types.I32, 0))
	}

	return consumed
}

func blockName(fn, label string) string {
	return fn + "." + label
}

func (g *llvmGenerator) getOrDeclareFunc(name string) *llvmir.Func {
	if fn, ok := g.funcs[name]; ok {
		return fn
	}
	fn := g.module.NewFunc(name, types.I32)
	fn.Linkage = enum.LinkageExternal
	g.funcs[name] = fn
	return fn
}

func (g *llvmGenerator) getPrintf() *llvmir.Func {
	if g.printfFn != nil {
		return g.printfFn
	}
	fn := g.module.NewFunc("printf", types.I32, llvmir.NewParam("fmt", types.I8Ptr))
	fn.Sig.Variadic = true
	fn.Linkage = enum.LinkageExternal
	g.printfFn = fn
	return fn
}

func (g *llvmGenerator) getFmtGlobal() *llvmir.Global {
	if g.fmtGlobal != nil {
		return g.fmtGlobal
	}
	data := constant.NewCharArrayFromString("%d\n\x00")
	glob := g.module.NewGlobalDef("fmt", data)
	g.fmtGlobal = glob
	return glob
}

// collectNames returns every distinct non-numeric, non-label name that
// needs a stack slot: every ASSIGN/arithmetic/comparison result, plus
// every non-numeric operand read anywhere in the body.
func collectNames(body []ir.Instruction) []string {
	seen := map[string]bool{}
	var names []string
	add := func(n string) {
		if n == "" || seen[n] || isNumericOperand(n) {
			return
		}
		seen[n] = true
		names = append(names, n)
	}

	for _, in := range body {
		switch in.Op {
		case ir.LABEL, ir.JUMP:
			// no variable operands
		case ir.JUMPTRUE, ir.JUMPFALSE:
			add(in.Arg1)
		default:
			if in.Op != ir.CALL {
				add(in.Result)
			} else if in.Result != "" {
				add(in.Result)
			}
			add(in.Arg1)
			add(in.Arg2)
		}
	}
	return names
}

func (g *llvmGenerator) slot(name string) value.Value {
	if s, ok := g.slots[name]; ok {
		return s
	}
	// referenced but never declared in this body (e.g. a global) --
	// allocate a zero-valued slot lazily so the lowering stays total.
	s := g.fn.Blocks[0].NewAlloca(types.I32)
	g.fn.Blocks[0].NewStore(constant.NewInt(types.I32, 0), s)
	g.slots[name] = s
	return s
}

func (g *llvmGenerator) load(operand string) value.Value {
	if n, err := strconv.ParseInt(operand, 10, 64); err == nil {
		return constant.NewInt(types.I32, n)
	}
	if operand == "true" {
		return constant.NewInt(types.I32, 1)
	}
	if operand == "false" {
		return constant.NewInt(types.I32, 0)
	}
	return g.block.NewLoad(types.I32, g.slot(operand))
}

func (g *llvmGenerator) store(name string, v value.Value) {
	g.block.NewStore(v, g.slot(name))
}

// genInstruction lowers a single instruction and returns the (possibly
// updated) queue of evaluated-but-not-yet-bound call arguments.
func (g *llvmGenerator) genInstruction(in ir.Instruction, pendingParams []value.Value) []value.Value {
	switch in.Op {
	case ir.ENTER, ir.LEAVE:
		// function prologue/epilogue is implicit in LLVM IR.

	case ir.LABEL:
		target := g.blocks[in.Result]
		if g.block.Term == nil {
			g.block.NewBr(target)
		}
		g.block = target

	case ir.ASSIGN:
		g.store(in.Result, g.load(in.Arg1))

	case ir.ADD:
		g.store(in.Result, g.block.NewAdd(g.load(in.Arg1), g.load(in.Arg2)))
	case ir.SUB:
		g.store(in.Result, g.block.NewSub(g.load(in.Arg1), g.load(in.Arg2)))
	case ir.MUL:
		g.store(in.Result, g.block.NewMul(g.load(in.Arg1), g.load(in.Arg2)))
	case ir.DIV:
		g.store(in.Result, g.block.NewSDiv(g.load(in.Arg1), g.load(in.Arg2)))
	case ir.MOD:
		g.store(in.Result, g.block.NewSRem(g.load(in.Arg1), g.load(in.Arg2)))

	case ir.NEG:
		g.store(in.Result, g.block.NewSub(constant.NewInt(types.I32, 0), g.load(in.Arg1)))
	case ir.NOT:
		cmp := g.block.NewICmp(enum.IPredEQ, g.load(in.Arg1), constant.NewInt(types.I32, 0))
		g.store(in.Result, g.block.NewZExt(cmp, types.I32))

	case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
		cmp := g.block.NewICmp(predicateFor(in.Op), g.load(in.Arg1), g.load(in.Arg2))
		g.store(in.Result, g.block.NewZExt(cmp, types.I32))

	case ir.JUMP:
		g.block.NewBr(g.blocks[in.Arg2])

	case ir.JUMPTRUE:
		cond := g.block.NewICmp(enum.IPredNE, g.load(in.Arg1), constant.NewInt(types.I32, 0))
		cont := g.fn.NewBlock("")
		g.block.NewCondBr(cond, g.blocks[in.Arg2], cont)
		g.block = cont

	case ir.JUMPFALSE:
		cond := g.block.NewICmp(enum.IPredNE, g.load(in.Arg1), constant.NewInt(types.I32, 0))
		cont := g.fn.NewBlock("")
		g.block.NewCondBr(cond, cont, g.blocks[in.Arg2])
		g.block = cont

	case ir.PARAM:
		pendingParams = append(pendingParams, g.load(in.Arg1))

	case ir.CALL:
		callee := g.getOrDeclareFunc(in.Arg1)
		result := g.block.NewCall(callee)
		if in.Result != "" {
			g.store(in.Result, result)
		}
		pendingParams = nil

	case ir.PRINT:
		v := g.load(in.Arg1)
		fmtPtr := g.block.NewGetElementPtr(g.getFmtGlobal().ContentType, g.getFmtGlobal(),
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
		g.block.NewCall(g.getPrintf(), fmtPtr, v)

	case ir.RET:
		if in.Arg1 != "" {
			g.block.NewRet(g.load(in.Arg1))
		} else {
			g.block.NewRet(constant.NewInt(types.I32, 0))
		}
	}
	return pendingParams
}

func predicateFor(op ir.Op) enum.IPred {
	switch op {
	case ir.EQ:
		return enum.IPredEQ
	case ir.NE:
		return enum.IPredNE
	case ir.LT:
		return enum.IPredSLT
	case ir.GT:
		return enum.IPredSGT
	case ir.LE:
		return enum.IPredSLE
	case ir.GE:
		return enum.IPredSGE
	default:
		return enum.IPredEQ
	}
}
