package ir

import "minic/ast"

func (g *generator) genStatement(node *ast.Node) {
	if node == nil {
		return
	}

	switch node.Kind {
	case ast.Block:
		for _, stmt := range node.Children {
			g.genStatement(stmt)
		}

	case ast.VarDeclaration:
		g.genVarDecl(node)

	case ast.IfStatement:
		g.genIf(node)

	case ast.WhileStatement:
		g.genWhile(node)

	case ast.ForStatement:
		g.genFor(node)

	case ast.ReturnStatement:
		if len(node.Children) == 0 {
			g.emit(RET, "", "", "")
		} else {
			v := g.genExpr(node.Child(0))
			g.emit(RET, "", v, "")
		}

	case ast.PrintStatement:
		v := g.genExpr(node.Child(0))
		g.emit(PRINT, "", v, "")

	case ast.ExprStatement:
		g.genExpr(node.Child(0))

	case ast.Empty:
		// nothing to lower

	default:
		g.genExpr(node)
	}
}

func (g *generator) genVarDecl(node *ast.Node) {
	nameNode := node.Child(1)
	init := node.Child(2)
	if init == nil {
		return
	}
	v := g.genExpr(init)
	g.emit(ASSIGN, nameNode.Value, v, "")
}

func (g *generator) genIf(node *ast.Node) {
	cond, then, els := node.Child(0), node.Child(1), node.Child(2)

	c := g.genExpr(cond)
	lelse := g.newLabel()
	lend := g.newLabel()

	g.emit(JUMPFALSE, "", c, lelse)
	g.genStatement(then)
	g.emit(JUMP, "", "", lend)
	g.emit(LABEL, lelse, "", "")
	if els != nil {
		g.genStatement(els)
	}
	g.emit(LABEL, lend, "", "")
}

func (g *generator) genWhile(node *ast.Node) {
	cond, body := node.Child(0), node.Child(1)

	lstart := g.newLabel()
	lend := g.newLabel()

	g.emit(LABEL, lstart, "", "")
	c := g.genExpr(cond)
	g.emit(JUMPFALSE, "", c, lend)
	g.genStatement(body)
	g.emit(JUMP, "", "", lstart)
	g.emit(LABEL, lend, "", "")
}

func (g *generator) genFor(node *ast.Node) {
	init, cond, step, body := node.Child(0), node.Child(1), node.Child(2), node.Child(3)

	if init != nil && init.Kind != ast.Empty {
		g.genStatement(init)
	}

	lstart := g.newLabel()
	lend := g.newLabel()

	g.emit(LABEL, lstart, "", "")
	if cond != nil && cond.Kind != ast.Empty {
		c := g.genExpr(cond)
		g.emit(JUMPFALSE, "", c, lend)
	}
	g.genStatement(body)
	if step != nil && step.Kind != ast.Empty {
		g.genExpr(step)
	}
	g.emit(JUMP, "", "", lstart)
	g.emit(LABEL, lend, "", "")
}
