// Package logging holds the pure diagnostic data model shared by every
// pipeline stage, plus (in render.go) a stateless pterm-based CLI renderer.
//
// The pipeline stages only ever touch this file: each stage call creates
// its own Sink, appends to it, and returns the slice for its category.
// The types in this file keep no global mutable state; the only
// package-level mutable state is the CLI phase spinner in render.go.
package logging

// Diagnostic is a single reported issue at a source position.
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

// Sink partitions diagnostics into the three pipeline stages that can
// produce them: lexical, syntax, semantic. The lexer, parser and analyzer
// each create a fresh Sink per call and return only their own category;
// compiler.Compile collects those slices into CompilationResult.Errors.
type Sink struct {
	Lexical  []Diagnostic
	Syntax   []Diagnostic
	Semantic []Diagnostic
}

// NewSink returns an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{
		Lexical:  []Diagnostic{},
		Syntax:   []Diagnostic{},
		Semantic: []Diagnostic{},
	}
}

func (s *Sink) Lex(message string, line, col int) {
	s.Lexical = append(s.Lexical, Diagnostic{Message: message, Line: line, Column: col})
}

func (s *Sink) Syn(message string, line, col int) {
	s.Syntax = append(s.Syntax, Diagnostic{Message: message, Line: line, Column: col})
}

func (s *Sink) Sem(message string, line, col int) {
	s.Semantic = append(s.Semantic, Diagnostic{Message: message, Line: line, Column: col})
}

// Clean reports whether no diagnostics of any category were recorded.
func (s *Sink) Clean() bool {
	return len(s.Lexical) == 0 && len(s.Syntax) == 0 && len(s.Semantic) == 0
}
