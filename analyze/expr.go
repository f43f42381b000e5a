package analyze

import (
	"strings"

	"minic/ast"
	"minic/sem"
	"minic/typing"
)

// analyzeExpr type-checks node and returns its resulting type, recording
// diagnostics for any violation of the language's type rules. It always
// returns a type -- Unknown on error -- so callers never need a nil check.
func (a *analyzer) analyzeExpr(node *ast.Node) typing.Type {
	if node == nil {
		return typing.Unknown
	}

	switch node.Kind {
	case ast.NumberLiteral:
		if strings.Contains(node.Value, ".") {
			return typing.Float
		}
		return typing.Int

	case ast.StringLiteral:
		return typing.String

	case ast.BoolLiteral:
		return typing.Bool

	case ast.Identifier:
		sym, ok := a.table.Lookup(node.Value)
		if !ok {
			a.sink.Sem("Undefined symbol '"+node.Value+"'", node.Line, node.Column)
			return typing.Unknown
		}
		return sym.Type

	case ast.Grouping:
		return a.analyzeExpr(node.Child(0))

	case ast.Unary:
		return a.analyzeUnary(node)

	case ast.Binary:
		return a.analyzeArithmetic(node)

	case ast.Comparison, ast.Equality:
		a.analyzeExpr(node.Child(0))
		a.analyzeExpr(node.Child(1))
		return typing.Bool

	case ast.LogicalAnd, ast.LogicalOr:
		a.analyzeExpr(node.Child(0))
		a.analyzeExpr(node.Child(1))
		return typing.Bool

	case ast.Assignment:
		return a.analyzeAssignment(node)

	case ast.FunctionCall:
		return a.analyzeCall(node)

	case ast.Empty:
		return typing.Unknown

	default:
		return typing.Unknown
	}
}

func (a *analyzer) analyzeUnary(node *ast.Node) typing.Type {
	operand := a.analyzeExpr(node.Child(0))
	switch node.Value {
	case "!":
		return typing.Bool
	case "-":
		if operand == typing.Unknown {
			return typing.Unknown
		}
		if !typing.IsNumeric(operand) {
			a.sink.Sem("Invalid operand type for unary '-': '"+operand.String()+"'", node.Line, node.Column)
			return typing.Unknown
		}
		return operand
	default:
		return typing.Unknown
	}
}

func (a *analyzer) analyzeArithmetic(node *ast.Node) typing.Type {
	left := a.analyzeExpr(node.Child(0))
	right := a.analyzeExpr(node.Child(1))
	result, ok := typing.ArithmeticResult(left, right)
	if !ok {
		a.sink.Sem("invalid operand types", node.Line, node.Column)
	}
	return result
}

func (a *analyzer) analyzeAssignment(node *ast.Node) typing.Type {
	target := node.Child(0)
	value := node.Child(1)
	valueType := a.analyzeExpr(value)

	if target == nil || target.Kind != ast.Identifier {
		if target != nil {
			a.sink.Sem("Invalid assignment target", target.Line, target.Column)
		}
		return typing.Unknown
	}

	sym, ok := a.table.Lookup(target.Value)
	if !ok {
		a.sink.Sem("Undefined symbol '"+target.Value+"'", target.Line, target.Column)
		return typing.Unknown
	}
	if sym.Kind == sem.FunctionSymbol {
		a.sink.Sem("Cannot assign to function '"+target.Value+"'", target.Line, target.Column)
		return typing.Unknown
	}
	if !typing.Widens(valueType, sym.Type) {
		a.sink.Sem(
			"Cannot assign value of type '"+valueType.String()+"' to variable of type '"+sym.Type.String()+"'",
			value.Line, value.Column,
		)
	}
	sym.Initialized = true
	return sym.Type
}

func (a *analyzer) analyzeCall(node *ast.Node) typing.Type {
	callee := node.Child(0)
	args := node.Children[1:]

	argTypes := make([]typing.Type, len(args))
	for i, arg := range args {
		argTypes[i] = a.analyzeExpr(arg)
	}

	if callee == nil || callee.Kind != ast.Identifier {
		return typing.Unknown
	}

	sym, ok := a.table.Lookup(callee.Value)
	if !ok {
		a.sink.Sem("Undefined symbol '"+callee.Value+"'", callee.Line, callee.Column)
		return typing.Unknown
	}
	if sym.Kind != sem.FunctionSymbol {
		a.sink.Sem("'"+callee.Value+"' is not a function", callee.Line, callee.Column)
		return typing.Unknown
	}
	if len(args) != len(sym.Params) {
		a.sink.Sem(
			"Function '"+callee.Value+"' expects "+itoa(len(sym.Params))+" argument(s), got "+itoa(len(args)),
			node.Line, node.Column,
		)
		return sym.ReturnType
	}
	for i, param := range sym.Params {
		if !typing.Widens(argTypes[i], param.Type) {
			a.sink.Sem(
				"Argument "+itoa(i+1)+": cannot pass value of type '"+argTypes[i].String()+"' as '"+param.Type.String()+"'",
				args[i].Line, args[i].Column,
			)
		}
	}
	return sym.ReturnType
}
