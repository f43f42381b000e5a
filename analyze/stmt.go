package analyze

import (
	"minic/ast"
	"minic/typing"
)

func (a *analyzer) analyzeStatement(node *ast.Node) {
	if node == nil {
		return
	}

	switch node.Kind {
	case ast.Block:
		a.table.EnterBlockScope()
		for _, stmt := range node.Children {
			a.analyzeStatement(stmt)
		}
		a.table.ExitScope()

	case ast.VarDeclaration:
		a.analyzeVarDecl(node)

	case ast.IfStatement:
		a.checkCondition(node.Child(0))
		a.analyzeStatement(node.Child(1))
		a.analyzeStatement(node.Child(2))

	case ast.WhileStatement:
		a.checkCondition(node.Child(0))
		a.analyzeStatement(node.Child(1))

	case ast.ForStatement:
		init, cond, step, body := node.Child(0), node.Child(1), node.Child(2), node.Child(3)
		if init != nil && init.Kind != ast.Empty {
			a.analyzeStatement(init)
		}
		if cond != nil && cond.Kind != ast.Empty {
			a.checkCondition(cond)
		}
		if step != nil && step.Kind != ast.Empty {
			a.analyzeExpr(step)
		}
		a.analyzeStatement(body)

	case ast.ReturnStatement:
		a.analyzeReturn(node)

	case ast.PrintStatement:
		if expr := node.Child(0); expr != nil {
			a.analyzeExpr(expr)
		}

	case ast.ExprStatement:
		if expr := node.Child(0); expr != nil {
			a.analyzeExpr(expr)
		}

	case ast.Empty:
		// nothing to check

	default:
		// an expression used directly as a statement (defensive; the
		// grammar always wraps these in ExprStatement)
		a.analyzeExpr(node)
	}
}

func (a *analyzer) checkCondition(cond *ast.Node) {
	if cond == nil {
		return
	}
	t := a.analyzeExpr(cond)
	if t != typing.Bool && t != typing.Unknown {
		a.sink.Sem("Condition must be of type 'bool', got '"+t.String()+"'", cond.Line, cond.Column)
	}
}

func (a *analyzer) analyzeReturn(node *ast.Node) {
	fn, ok := a.table.EnclosingFunction()

	if len(node.Children) == 0 {
		if ok && fn.ReturnType != typing.Void {
			a.sink.Sem("Non-void function '"+fn.Name+"' must return a value", node.Line, node.Column)
		}
		return
	}

	expr := node.Child(0)
	exprType := a.analyzeExpr(expr)
	if !ok {
		return
	}
	if fn.ReturnType == typing.Void {
		a.sink.Sem("Void function '"+fn.Name+"' cannot return a value", expr.Line, expr.Column)
		return
	}
	if !typing.Widens(exprType, fn.ReturnType) {
		a.sink.Sem(
			"Cannot return value of type '"+exprType.String()+"' from function returning '"+fn.ReturnType.String()+"'",
			expr.Line, expr.Column,
		)
	}
}
