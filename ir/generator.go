package ir

import "minic/ast"

// Generate lowers a program's AST into a single, flat instruction stream.
// Temporary and label counters start fresh for every call so repeated
// compilations never leak numbering from one run into the next.
func Generate(root *ast.Node) []Instruction {
	g := &generator{instrs: []Instruction{}}
	if root != nil {
		for _, decl := range root.Children {
			g.genTopLevel(decl)
		}
	}
	return g.instrs
}

type generator struct {
	tempCounter  int
	labelCounter int
	instrs       []Instruction
}

func (g *generator) newTemp() string {
	t := "t" + itoa(g.tempCounter)
	g.tempCounter++
	return t
}

func (g *generator) newLabel() string {
	l := "L" + itoa(g.labelCounter)
	g.labelCounter++
	return l
}

func (g *generator) emit(op Op, result, arg1, arg2 string) {
	g.instrs = append(g.instrs, Instruction{Op: op, Result: result, Arg1: arg1, Arg2: arg2})
}

func (g *generator) genTopLevel(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.FunctionDeclaration:
		g.genFunction(node)
	case ast.VarDeclaration:
		g.genVarDecl(node)
	}
}

func (g *generator) genFunction(node *ast.Node) {
	name := node.Child(1).Value
	body := node.Child(3)

	g.emit(LABEL, name, "", "")
	g.emit(ENTER, "", "", "")
	g.genStatement(body)
	g.emit(LEAVE, "", "", "")
	g.emit(RET, "", "", "")
}
