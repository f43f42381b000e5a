package compiler

import (
	"minic/analyze"
	"minic/codegen"
	"minic/ir"
	"minic/lexer"
	"minic/optimize"
	"minic/parser"
)

// Compile runs the full pipeline over source and returns every artifact
// produced along the way. It never panics on malformed input and never
// aborts partway: each stage runs against whatever the previous stage
// produced, however incomplete.
func Compile(source string) CompilationResult {
	var result CompilationResult

	tokens, lexDiags := lexer.Lex(source)
	result.Tokens = tokens
	result.Errors.Lexical = lexDiags

	root, synDiags := parser.Parse(tokens)
	result.AST = root
	result.Errors.Syntax = synDiags

	table, semDiags := analyze.Analyze(root)
	result.SymbolTable = table
	result.Errors.Semantic = semDiags

	rawIR := ir.Generate(root)
	result.IR = rawIR
	result.OptimizedIR = optimize.Optimize(rawIR)

	result.Assembly = codegen.GenerateX86(result.OptimizedIR)
	result.LLVMIR = codegen.GenerateLLVM(result.OptimizedIR)

	return result
}
