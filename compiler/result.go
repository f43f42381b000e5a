// Package compiler wires the lexer, parser, semantic analyzer, IR
// generator, optimizer, and code generators into the single pure entry
// point: Compile(source) -> CompilationResult.
package compiler

import (
	"minic/ast"
	"minic/ir"
	"minic/logging"
	"minic/sem"
	"minic/token"
)

// Errors partitions diagnostics into the three analysis stages that can
// produce them.
type Errors struct {
	Lexical  []logging.Diagnostic
	Syntax   []logging.Diagnostic
	Semantic []logging.Diagnostic
}

// CompilationResult is the sole return value of Compile. Every field is
// always present; a stage that never ran because an earlier one produced
// nothing to work with still yields an empty container, never nil-panics
// downstream.
type CompilationResult struct {
	Tokens      []token.Token
	AST         *ast.Node
	SymbolTable *sem.SymbolTable
	IR          []ir.Instruction
	OptimizedIR []ir.Instruction
	Assembly    string
	// LLVMIR is the additive LLVM backend's output, populated
	// alongside Assembly on every call.
	LLVMIR string
	Errors Errors
}
