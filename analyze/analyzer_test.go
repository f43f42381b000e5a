package analyze

import (
	"testing"

	"minic/ast"
	"minic/lexer"
	"minic/logging"
	"minic/parser"
	"minic/sem"
)

func mustAnalyze(t *testing.T, src string) (*sem.SymbolTable, []string) {
	t.Helper()
	tokens, lexDiags := lexer.Lex(src)
	if len(lexDiags) != 0 {
		t.Fatalf("unexpected lexical diagnostics for %q: %+v", src, lexDiags)
	}
	root, synDiags := parser.Parse(tokens)
	if len(synDiags) != 0 {
		t.Fatalf("unexpected syntax diagnostics for %q: %+v", src, synDiags)
	}
	table, semDiags := Analyze(root)
	messages := make([]string, len(semDiags))
	for i, d := range semDiags {
		messages[i] = d.Message
	}
	return table, messages
}

func TestAnalyzeCleanProgramProducesNoDiagnostics(t *testing.T) {
	_, msgs := mustAnalyze(t, "int main() { return 0; }")
	if len(msgs) != 0 {
		t.Errorf("expected no diagnostics, got %v", msgs)
	}
}

func TestAnalyzeMissingMainReportsAtOrigin(t *testing.T) {
	tokens, _ := lexer.Lex("int helper() { return 0; }")
	root, _ := parser.Parse(tokens)
	_, diags := Analyze(root)
	if len(diags) != 1 || diags[0].Message != "Program must have a main function" {
		t.Fatalf("expected exactly the missing-main diagnostic, got %+v", diags)
	}
	if diags[0].Line != 0 || diags[0].Column != 0 {
		t.Errorf("expected the missing-main diagnostic at 0:0, got %d:%d", diags[0].Line, diags[0].Column)
	}
}

func TestAnalyzeParametersAreBoundInFunctionScope(t *testing.T) {
	_, msgs := mustAnalyze(t, "int add(int a, int b) { return a + b; } int main() { return add(1, 2); }")
	if len(msgs) != 0 {
		t.Errorf("expected parameters a, b to resolve inside the function body, got %v", msgs)
	}
}

func TestAnalyzeFunctionRedeclarationIsReported(t *testing.T) {
	_, msgs := mustAnalyze(t, "int main() { return 0; } int main() { return 1; }")
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one redeclaration diagnostic, got %v", msgs)
	}
	if got := msgs[0]; got[:len("Redeclaration of 'main'")] != "Redeclaration of 'main'" {
		t.Errorf("expected a redeclaration message naming 'main', got %q", got)
	}
}

func TestAnalyzeBlockScopeDoesNotLeakToSiblingBlocks(t *testing.T) {
	_, msgs := mustAnalyze(t, "int main() { { int x = 1; } { int x = 2; } return 0; }")
	if len(msgs) != 0 {
		t.Errorf("expected sibling blocks to each get their own scope, got %v", msgs)
	}
}

func TestAnalyzeVariableRedeclarationWithinSameBlockIsReported(t *testing.T) {
	_, msgs := mustAnalyze(t, "int main() { int x = 1; int x = 2; return 0; }")
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one redeclaration diagnostic, got %v", msgs)
	}
}

func TestAnalyzeUnaryMinusRejectsNonNumericOperand(t *testing.T) {
	_, msgs := mustAnalyze(t, `int main() { bool b = true; int x = -b; return 0; }`)
	found := false
	for _, m := range msgs {
		if m == "Invalid operand type for unary '-': 'bool'" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic for unary '-' on a bool, got %v", msgs)
	}
}

func TestAnalyzeUnaryNotAlwaysProducesBool(t *testing.T) {
	table, msgs := mustAnalyze(t, "int main() { bool b = !true; return 0; }")
	if len(msgs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", msgs)
	}
	if table == nil {
		t.Fatal("expected a non-nil symbol table")
	}
}

func TestAnalyzeVoidFunctionCannotReturnAValue(t *testing.T) {
	_, msgs := mustAnalyze(t, "void f() { return 1; } int main() { return 0; }")
	found := false
	for _, m := range msgs {
		if m == "Void function 'f' cannot return a value" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a void-return diagnostic, got %v", msgs)
	}
}

func TestAnalyzeNonVoidFunctionMustReturnAValue(t *testing.T) {
	_, msgs := mustAnalyze(t, "int f() { return; } int main() { return 0; }")
	found := false
	for _, m := range msgs {
		if m == "Non-void function 'f' must return a value" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a missing-return-value diagnostic, got %v", msgs)
	}
}

func TestAnalyzeBareReturnOutsideAnyFunctionIsIgnored(t *testing.T) {
	root := ast.New(ast.ReturnStatement, 1, 1)
	a := &analyzer{table: sem.NewSymbolTable(), sink: logging.NewSink()}
	a.analyzeReturn(root)
	if len(a.sink.Semantic) != 0 {
		t.Errorf("expected no diagnostic for a bare return with no enclosing function, got %+v", a.sink.Semantic)
	}
}

func TestAnalyzeCallArgumentCountMismatchIsReported(t *testing.T) {
	_, msgs := mustAnalyze(t, "int add(int a, int b) { return a + b; } int main() { return add(1); }")
	found := false
	for _, m := range msgs {
		if m == "Function 'add' expects 2 argument(s), got 1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an argument-count diagnostic, got %v", msgs)
	}
}

func TestAnalyzeCallToNonFunctionIsReported(t *testing.T) {
	_, msgs := mustAnalyze(t, "int main() { int x = 1; return x(); }")
	found := false
	for _, m := range msgs {
		if m == "'x' is not a function" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a not-a-function diagnostic, got %v", msgs)
	}
}

func TestAnalyzeAssignmentToFunctionIsReported(t *testing.T) {
	_, msgs := mustAnalyze(t, "int f() { return 0; } int main() { f = 1; return 0; }")
	found := false
	for _, m := range msgs {
		if m == "Cannot assign to function 'f'" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an assign-to-function diagnostic, got %v", msgs)
	}
}
