package compiler

import (
	"testing"

	"minic/ast"
	"minic/ir"
)

func TestCompileMinimalProgram(t *testing.T) {
	res := Compile("int main() { return 0; }")

	if len(res.Errors.Lexical)+len(res.Errors.Syntax)+len(res.Errors.Semantic) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", res.Errors)
	}
	if res.AST.Kind != ast.Program || len(res.AST.Children) != 1 {
		t.Fatalf("expected a single top-level declaration, got %+v", res.AST)
	}
	main := res.AST.Children[0]
	if main.Kind != ast.FunctionDeclaration || main.Child(1).Value != "main" {
		t.Fatalf("expected a FunctionDeclaration named main, got %+v", main)
	}

	if len(res.IR) < 4 {
		t.Fatalf("expected at least LABEL/ENTER/.../RET/LEAVE/RET, got %+v", res.IR)
	}
	if res.IR[0].Op != ir.LABEL || res.IR[0].Result != "main" || res.IR[1].Op != ir.ENTER {
		t.Errorf("expected IR to open with LABEL main, ENTER; got %+v, %+v", res.IR[0], res.IR[1])
	}
	last := res.IR[len(res.IR)-1]
	secondToLast := res.IR[len(res.IR)-2]
	if last.Op != ir.RET || last.Arg1 != "" {
		t.Errorf("expected a trailing bare RET, got %+v", last)
	}
	if secondToLast.Op != ir.LEAVE {
		t.Errorf("expected LEAVE immediately before the trailing RET, got %+v", secondToLast)
	}

	foundExplicitReturn := false
	for _, in := range res.IR {
		if in.Op == ir.RET && in.Arg1 == "0" {
			foundExplicitReturn = true
		}
	}
	if !foundExplicitReturn {
		t.Errorf("expected an explicit RET arg1=0 for `return 0;`, got %+v", res.IR)
	}

	if len(res.OptimizedIR) != len(res.IR) {
		t.Errorf("expected DCE to remove nothing from a program with no dead assignments, got %+v", res.OptimizedIR)
	}
}

func TestCompileConstantFolding(t *testing.T) {
	res := Compile("int main() { int a = 2 + 3 * 4; return a; }")

	if len(res.Errors.Lexical)+len(res.Errors.Syntax)+len(res.Errors.Semantic) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", res.Errors)
	}

	foundMul := false
	for _, in := range res.IR {
		if in.Op == ir.MUL && in.Arg1 == "3" && in.Arg2 == "4" {
			foundMul = true
		}
	}
	if !foundMul {
		t.Errorf("expected raw IR to contain MUL t0, 3, 4, got %+v", res.IR)
	}

	for _, in := range res.OptimizedIR {
		if in.Op == ir.MUL {
			t.Errorf("expected folding to collapse the MUL into a constant, still found %+v", in)
		}
	}
	foundAdd := false
	for _, in := range res.OptimizedIR {
		if in.Op == ir.ADD && in.Result == "t1" && in.Arg1 == "2" && in.Arg2 == "12" {
			foundAdd = true
		}
	}
	if !foundAdd {
		t.Errorf("expected the single-scan optimizer to leave ADD t1, 2, 12 in place (folding+propagation are not iterated to a fixed point), got %+v", res.OptimizedIR)
	}
	foundFinalAssign := false
	for _, in := range res.OptimizedIR {
		if in.Op == ir.ASSIGN && in.Result == "a" && in.Arg1 == "t1" {
			foundFinalAssign = true
		}
	}
	if !foundFinalAssign {
		t.Errorf("expected optimized IR to still assign 'a' from t1, got %+v", res.OptimizedIR)
	}
}

func TestCompileUndefinedSymbol(t *testing.T) {
	res := Compile("int main() { return x; }")

	if len(res.Errors.Lexical) != 0 || len(res.Errors.Syntax) != 0 {
		t.Fatalf("expected lexing and parsing to be clean, got %+v", res.Errors)
	}
	if len(res.Errors.Semantic) != 1 || res.Errors.Semantic[0].Message != "Undefined symbol 'x'" {
		t.Fatalf("expected exactly one Undefined symbol diagnostic, got %+v", res.Errors.Semantic)
	}

	foundX := false
	for _, in := range res.IR {
		if in.Arg1 == "x" || in.Result == "x" {
			foundX = true
		}
	}
	if !foundX {
		t.Errorf("expected IR generation to proceed and reference x literally, got %+v", res.IR)
	}
}

func TestCompileTypeMismatch(t *testing.T) {
	res := Compile("int main() { bool b = 1 + 1; return 0; }")

	found := false
	for _, d := range res.Errors.Semantic {
		if d.Message == "Cannot initialize variable of type 'bool' with value of type 'int'" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type-mismatch diagnostic, got %+v", res.Errors.Semantic)
	}
}

func TestCompileMissingMain(t *testing.T) {
	res := Compile("int f() { return 0; }")

	if len(res.Errors.Semantic) != 1 {
		t.Fatalf("expected exactly one semantic diagnostic, got %+v", res.Errors.Semantic)
	}
	d := res.Errors.Semantic[0]
	if d.Message != "Program must have a main function" || d.Line != 0 || d.Column != 0 {
		t.Errorf("expected the missing-main diagnostic at (0,0), got %+v", d)
	}
}

func TestCompileControlFlow(t *testing.T) {
	res := Compile("int main() { int i = 0; while (i < 3) { i = i + 1; } return i; }")

	if len(res.Errors.Lexical)+len(res.Errors.Syntax)+len(res.Errors.Semantic) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", res.Errors)
	}

	var labels, jumpFalses, jumps int
	for _, in := range res.IR {
		switch in.Op {
		case ir.LABEL:
			labels++
		case ir.JUMPFALSE:
			jumpFalses++
		case ir.JUMP:
			jumps++
		}
	}
	// The while loop contributes exactly Lstart/Lend labels beyond the
	// function's own entry label, one guard JUMPFALSE, and one back-edge
	// JUMP -- see genWhile.
	if labels < 3 {
		t.Errorf("expected at least 3 labels (main, Lstart, Lend), got %d in %+v", labels, res.IR)
	}
	if jumpFalses != 1 {
		t.Errorf("expected exactly one loop-guard JUMPFALSE, got %d in %+v", jumpFalses, res.IR)
	}
	if jumps != 1 {
		t.Errorf("expected exactly one back-edge JUMP, got %d in %+v", jumps, res.IR)
	}

	iAssignedAfterOpt := false
	for _, in := range res.OptimizedIR {
		if in.Op == ir.ASSIGN && in.Result == "i" {
			iAssignedAfterOpt = true
		}
	}
	if !iAssignedAfterOpt {
		t.Errorf("expected i's assignment to survive DCE since it is read by the final RET, got %+v", res.OptimizedIR)
	}
}

func TestCompileAlwaysPopulatesAssemblyAndLLVMIR(t *testing.T) {
	res := Compile("int main() { print(1); return 0; }")

	if res.Assembly == "" {
		t.Error("expected a non-empty x86 assembly rendering")
	}
	if res.LLVMIR == "" {
		t.Error("expected a non-empty LLVM IR rendering")
	}
}

func TestCompileNeverReturnsNilContainers(t *testing.T) {
	res := Compile("")

	if res.Tokens == nil {
		t.Error("expected an empty, non-nil Tokens slice for empty source")
	}
	if res.Errors.Lexical == nil || res.Errors.Syntax == nil || res.Errors.Semantic == nil {
		t.Error("expected empty, non-nil diagnostic slices for empty source")
	}
	if res.IR == nil {
		t.Error("expected an empty, non-nil IR slice for empty source")
	}
	if res.OptimizedIR == nil {
		t.Error("expected an empty, non-nil OptimizedIR slice for empty source")
	}
}
