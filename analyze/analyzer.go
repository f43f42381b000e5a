// Package analyze implements the single-pass semantic analyzer: scope
// discipline, declaration/redeclaration checking, type rules (with int
// -> float widening), and the program-level requirement that a `main`
// function exist.
package analyze

import (
	"minic/ast"
	"minic/logging"
	"minic/sem"
	"minic/typing"
)

// Analyze walks root once and returns the resulting symbol table plus any
// semantic diagnostics. It tolerates a partial AST (missing subtrees from
// parser error recovery) and unresolved symbols throughout.
func Analyze(root *ast.Node) (*sem.SymbolTable, []logging.Diagnostic) {
	a := &analyzer{table: sem.NewSymbolTable(), sink: logging.NewSink()}
	a.analyzeProgram(root)
	return a.table, a.sink.Semantic
}

type analyzer struct {
	table *sem.SymbolTable
	sink  *logging.Sink
}

func (a *analyzer) analyzeProgram(root *ast.Node) {
	if root != nil {
		for _, decl := range root.Children {
			a.analyzeTopLevel(decl)
		}
	}

	if sym, ok := a.table.Scopes[sem.GlobalScope].Symbols["main"]; !ok || sym.Kind != sem.FunctionSymbol {
		a.sink.Sem("Program must have a main function", 0, 0)
	}
}

func (a *analyzer) analyzeTopLevel(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.FunctionDeclaration:
		a.analyzeFunctionDecl(node)
	case ast.VarDeclaration:
		a.analyzeVarDecl(node)
	}
}

func (a *analyzer) analyzeFunctionDecl(node *ast.Node) {
	typeNode, nameNode, paramsNode, bodyNode := node.Child(0), node.Child(1), node.Child(2), node.Child(3)
	returnType, _ := typing.FromKeyword(typeNode.Value)

	var params []sem.Param
	if paramsNode != nil {
		for _, p := range paramsNode.Children {
			pt, _ := typing.FromKeyword(p.Child(0).Value)
			pname := ""
			if id := p.Child(1); id != nil {
				pname = id.Value
			}
			params = append(params, sem.Param{Name: pname, Type: pt})
		}
	}

	fnSym := &sem.Symbol{
		Name:       nameNode.Value,
		Type:       typing.Void,
		Kind:       sem.FunctionSymbol,
		Line:       nameNode.Line,
		Column:     nameNode.Column,
		Params:     params,
		ReturnType: returnType,
	}
	if existing, ok := a.table.Declare(fnSym); !ok {
		a.sink.Sem(
			"Redeclaration of '"+nameNode.Value+"' (previously declared at line "+itoa(existing.Line)+", column "+itoa(existing.Column)+")",
			nameNode.Line, nameNode.Column,
		)
		return
	}

	a.table.EnterFunctionScope(nameNode.Value)
	for _, p := range params {
		a.table.Declare(&sem.Symbol{
			Name: p.Name, Type: p.Type, Kind: sem.ParameterSymbol, Initialized: true,
		})
	}

	a.analyzeStatement(bodyNode)
	a.table.ExitScope()
}

func (a *analyzer) analyzeVarDecl(node *ast.Node) {
	typeNode, nameNode := node.Child(0), node.Child(1)
	if nameNode == nil {
		// parser error recovery already reported the missing identifier
		return
	}
	declType, _ := typing.FromKeyword(typeNode.Value)

	sym := &sem.Symbol{
		Name: nameNode.Value, Type: declType, Kind: sem.VariableSymbol,
		Line: nameNode.Line, Column: nameNode.Column,
	}
	if existing, ok := a.table.Declare(sym); !ok {
		a.sink.Sem(
			"Redeclaration of '"+nameNode.Value+"' (previously declared at line "+itoa(existing.Line)+", column "+itoa(existing.Column)+")",
			nameNode.Line, nameNode.Column,
		)
		return
	}

	if init := node.Child(2); init != nil {
		initType := a.analyzeExpr(init)
		if !typing.Widens(initType, declType) {
			a.sink.Sem(
				"Cannot initialize variable of type '"+declType.String()+"' with value of type '"+initType.String()+"'",
				init.Line, init.Column,
			)
		}
		sym.Initialized = true
	}
}
