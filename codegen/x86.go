// Package codegen implements two textual backends: an
// illustrative x86 assembly emitter, and an additive LLVM IR emitter used
// when a caller wants text a real toolchain can consume.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"minic/ir"
)

// GenerateX86 lowers instrs into a single x86 assembly text. The output is
// illustrative: register allocation, the calling convention mismatch
// between pushed arguments and printf, and non-relocatable labels are all
// exactly as documented -- not meant to assemble cleanly.
func GenerateX86(instrs []ir.Instruction) string {
	e := &x86Emitter{registers: map[string]string{}}
	e.emitBody(instrs)
	return e.render()
}

type x86Emitter struct {
	body       strings.Builder
	registers  map[string]string
	regCounter int
	variables  []string
	seenVar    map[string]bool
}

func (e *x86Emitter) render() string {
	var out strings.Builder
	out.WriteString("section .data\n")
	out.WriteString("    fmt db \"%d\", 10, 0\n")
	for _, v := range e.variables {
		fmt.Fprintf(&out, "    %s dd 0\n", v)
	}
	out.WriteString("\nsection .text\n")
	out.WriteString(e.body.String())
	out.WriteString(startTrampoline)
	return out.String()
}

const startTrampoline = `
global _start
extern printf
_start:
    call main
    mov ebx, eax
    mov eax, 1
    int 0x80
`

func (e *x86Emitter) line(format string, args ...interface{}) {
	e.body.WriteString("    ")
	fmt.Fprintf(&e.body, format, args...)
	e.body.WriteString("\n")
}

func (e *x86Emitter) reg(name string) string {
	if r, ok := e.registers[name]; ok {
		return r
	}
	r := "r" + strconv.Itoa((e.regCounter%6)+1)
	e.regCounter++
	e.registers[name] = r
	return r
}

func (e *x86Emitter) release(name string) {
	delete(e.registers, name)
}

func isNumericOperand(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// operand renders a source operand: numeric literals pass through as
// immediates, everything else resolves to its assigned register and is
// tracked as a `.data` variable if not already known to be one.
func (e *x86Emitter) operand(name string) string {
	if isNumericOperand(name) {
		return name
	}
	e.trackVariable(name)
	return e.reg(name)
}

func (e *x86Emitter) trackVariable(name string) {
	if e.seenVar == nil {
		e.seenVar = map[string]bool{}
	}
	if e.seenVar[name] {
		return
	}
	e.seenVar[name] = true
	e.variables = append(e.variables, name)
}

func (e *x86Emitter) emitBody(instrs []ir.Instruction) {
	for _, in := range instrs {
		switch in.Op {
		case ir.LABEL:
			e.body.WriteString(in.Result + ":\n")

		case ir.ENTER:
			e.line("push ebp")
			e.line("mov ebp, esp")

		case ir.LEAVE:
			e.line("mov esp, ebp")
			e.line("pop ebp")

		case ir.RET:
			if in.Arg1 != "" {
				e.line("mov eax, %s", e.operand(in.Arg1))
				if !isNumericOperand(in.Arg1) {
					e.release(in.Arg1)
				}
			}
			e.line("ret")

		case ir.ASSIGN:
			e.line("mov %s, %s", e.reg(in.Result), e.operand(in.Arg1))

		case ir.ADD:
			e.line("mov %s, %s", e.reg(in.Result), e.operand(in.Arg1))
			e.line("add %s, %s", e.reg(in.Result), e.operand(in.Arg2))

		case ir.SUB:
			e.line("mov %s, %s", e.reg(in.Result), e.operand(in.Arg1))
			e.line("sub %s, %s", e.reg(in.Result), e.operand(in.Arg2))

		case ir.MUL:
			e.line("mov eax, %s", e.operand(in.Arg1))
			e.line("imul %s", e.operand(in.Arg2))
			e.line("mov %s, eax", e.reg(in.Result))

		case ir.DIV:
			e.line("mov eax, %s", e.operand(in.Arg1))
			e.line("cdq")
			e.line("idiv %s", e.operand(in.Arg2))
			e.line("mov %s, eax", e.reg(in.Result))

		case ir.MOD:
			e.line("mov eax, %s", e.operand(in.Arg1))
			e.line("cdq")
			e.line("idiv %s", e.operand(in.Arg2))
			e.line("mov %s, edx", e.reg(in.Result))

		case ir.NEG:
			e.line("mov %s, %s", e.reg(in.Result), e.operand(in.Arg1))
			e.line("neg %s", e.reg(in.Result))

		case ir.NOT:
			e.line("cmp %s, 0", e.operand(in.Arg1))
			e.line("sete al")
			e.line("movzx %s, al", e.reg(in.Result))

		case ir.EQ, ir.NE, ir.LT, ir.GT, ir.LE, ir.GE:
			e.line("cmp %s, %s", e.operand(in.Arg1), e.operand(in.Arg2))
			e.line("set%s al", conditionSuffix(in.Op))
			e.line("movzx %s, al", e.reg(in.Result))

		case ir.JUMP:
			e.line("jmp %s", in.Arg2)

		case ir.JUMPTRUE:
			e.line("cmp %s, 0", e.operand(in.Arg1))
			e.line("jne %s", in.Arg2)

		case ir.JUMPFALSE:
			e.line("cmp %s, 0", e.operand(in.Arg1))
			e.line("je %s", in.Arg2)

		case ir.PARAM:
			e.line("push %s", e.operand(in.Arg1))

		case ir.CALL:
			e.line("call %s", in.Arg1)
			if n, err := strconv.Atoi(in.Arg2); err == nil && n > 0 {
				e.line("add esp, %d", n*4)
			}
			if in.Result != "" {
				e.line("mov %s, eax", e.reg(in.Result))
			}

		case ir.PRINT:
			e.line("push %s", e.operand(in.Arg1))
			e.line("call printf")
			e.line("add esp, 4")
		}
	}
}

func conditionSuffix(op ir.Op) string {
	switch op {
	case ir.EQ:
		return "e"
	case ir.NE:
		return "ne"
	case ir.LT:
		return "l"
	case ir.GT:
		return "g"
	case ir.LE:
		return "le"
	case ir.GE:
		return "ge"
	default:
		return "e"
	}
}
