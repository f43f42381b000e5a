package ir

import "minic/ast"

// genExpr lowers an expression and returns the operand -- a literal, an
// identifier, or a freshly minted temporary -- that holds its value.
func (g *generator) genExpr(node *ast.Node) string {
	if node == nil {
		return ""
	}

	switch node.Kind {
	case ast.NumberLiteral, ast.StringLiteral, ast.BoolLiteral, ast.Identifier:
		return node.Value

	case ast.Grouping:
		return g.genExpr(node.Child(0))

	case ast.Unary:
		return g.genUnary(node)

	case ast.Binary:
		return g.genBinary(node, arithOp(node.Value))

	case ast.Comparison, ast.Equality:
		return g.genBinary(node, compareOp(node.Value))

	case ast.LogicalAnd:
		return g.genLogicalAnd(node)

	case ast.LogicalOr:
		return g.genLogicalOr(node)

	case ast.Assignment:
		return g.genAssignment(node)

	case ast.FunctionCall:
		return g.genCall(node)

	case ast.Empty:
		return ""

	default:
		return ""
	}
}

func (g *generator) genUnary(node *ast.Node) string {
	v := g.genExpr(node.Child(0))
	t := g.newTemp()
	op := NEG
	if node.Value == "!" {
		op = NOT
	}
	g.emit(op, t, v, "")
	return t
}

func (g *generator) genBinary(node *ast.Node, op Op) string {
	l := g.genExpr(node.Child(0))
	r := g.genExpr(node.Child(1))
	t := g.newTemp()
	g.emit(op, t, l, r)
	return t
}

func (g *generator) genLogicalAnd(node *ast.Node) string {
	l := g.genExpr(node.Child(0))
	t := g.newTemp()
	g.emit(ASSIGN, t, l, "")
	lend := g.newLabel()
	g.emit(JUMPFALSE, "", t, lend)
	r := g.genExpr(node.Child(1))
	g.emit(ASSIGN, t, r, "")
	g.emit(LABEL, lend, "", "")
	return t
}

func (g *generator) genLogicalOr(node *ast.Node) string {
	l := g.genExpr(node.Child(0))
	t := g.newTemp()
	g.emit(ASSIGN, t, l, "")
	lend := g.newLabel()
	g.emit(JUMPTRUE, "", t, lend)
	r := g.genExpr(node.Child(1))
	g.emit(ASSIGN, t, r, "")
	g.emit(LABEL, lend, "", "")
	return t
}

func (g *generator) genAssignment(node *ast.Node) string {
	target := node.Child(0)
	value := g.genExpr(node.Child(1))
	g.emit(ASSIGN, target.Value, value, "")
	return target.Value
}

func (g *generator) genCall(node *ast.Node) string {
	callee := node.Child(0)
	args := node.Children[1:]

	for _, arg := range args {
		v := g.genExpr(arg)
		g.emit(PARAM, "", v, "")
	}

	t := g.newTemp()
	g.emit(CALL, t, callee.Value, itoa(len(args)))
	return t
}

func arithOp(lexeme string) Op {
	switch lexeme {
	case "+":
		return ADD
	case "-":
		return SUB
	case "*":
		return MUL
	case "/":
		return DIV
	case "%":
		return MOD
	default:
		return NOP
	}
}

func compareOp(lexeme string) Op {
	switch lexeme {
	case "==":
		return EQ
	case "!=":
		return NE
	case "<":
		return LT
	case ">":
		return GT
	case "<=":
		return LE
	case ">=":
		return GE
	default:
		return NOP
	}
}
