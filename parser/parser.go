// Package parser implements the recursive-descent, single-lookahead parser
// described below, including its error-recovery discipline:
// production failures are reported and the token stream is resynchronized
// to the next ';' or '}' rather than aborting the parse.
package parser

import (
	"minic/ast"
	"minic/logging"
	"minic/token"
)

// Parse consumes a token stream and returns a (possibly partial) Program
// AST alongside any syntax diagnostics collected during recovery.
func Parse(tokens []token.Token) (*ast.Node, []logging.Diagnostic) {
	p := &parser{tokens: tokens, sink: logging.NewSink()}
	root := p.parseProgram()
	return root, p.sink.Syntax
}

type parser struct {
	tokens []token.Token
	pos    int
	sink   *logging.Sink
}

var eofToken = token.Token{Kind: token.EOF, Lexeme: ""}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			last := p.tokens[len(p.tokens)-1]
			return token.Token{Kind: token.EOF, Line: last.Line, Column: last.Column + len(last.Lexeme)}
		}
		return eofToken
	}
	return p.tokens[p.pos]
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) advance() token.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *parser) checkLexeme(lexeme string) bool {
	return p.peek().Lexeme == lexeme && !p.atEnd()
}

func (p *parser) checkKind(k token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == k
}

func (p *parser) isTypeKeyword(tok token.Token) bool {
	if tok.Kind != token.Keyword {
		return false
	}
	switch tok.Lexeme {
	case "int", "float", "bool", "void":
		return true
	default:
		return false
	}
}

// consume advances past an expected lexeme, or reports a diagnostic and
// leaves the cursor in place -- missing tokens do not abort the parse.
func (p *parser) consume(lexeme string) (token.Token, bool) {
	if p.checkLexeme(lexeme) {
		return p.advance(), true
	}
	tok := p.peek()
	p.sink.Syn("Expected '"+lexeme+"' but got '"+tok.Lexeme+"'", tok.Line, tok.Column)
	return tok, false
}

// synchronize discards tokens until the next ';' (consumed) or '}' (left
// for the caller) or end of input.
func (p *parser) synchronize() {
	for !p.atEnd() {
		tok := p.peek()
		if tok.Lexeme == ";" {
			p.advance()
			return
		}
		if tok.Lexeme == "}" {
			return
		}
		p.advance()
	}
}

// -----------------------------------------------------------------------------
// program / declarations

func (p *parser) parseProgram() *ast.Node {
	var decls []*ast.Node
	for !p.atEnd() {
		before := p.pos
		if d := p.parseDeclaration(); d != nil {
			decls = append(decls, d)
		}
		if p.pos == before {
			p.advance()
		}
	}
	return ast.New(ast.Program, 1, 1, decls...)
}

func (p *parser) parseDeclaration() *ast.Node {
	if !p.isTypeKeyword(p.peek()) {
		tok := p.peek()
		p.sink.Syn("Expected a type keyword to begin a declaration, got '"+tok.Lexeme+"'", tok.Line, tok.Column)
		p.synchronize()
		return nil
	}

	typeTok := p.advance()
	typeNode := ast.Leaf(ast.Type, typeTok.Lexeme, typeTok.Line, typeTok.Column)

	if !p.checkKind(token.Identifier) {
		tok := p.peek()
		p.sink.Syn("Expected an identifier after type '"+typeTok.Lexeme+"'", tok.Line, tok.Column)
		p.synchronize()
		return nil
	}
	nameTok := p.advance()
	nameNode := ast.Leaf(ast.Identifier, nameTok.Lexeme, nameTok.Line, nameTok.Column)

	if p.checkLexeme("(") {
		return p.parseFunctionRest(typeNode, nameNode)
	}
	return p.parseVarRest(typeNode, nameNode)
}

func (p *parser) parseFunctionRest(typeNode, nameNode *ast.Node) *ast.Node {
	p.consume("(")
	var params *ast.Node
	if p.checkLexeme(")") {
		params = ast.New(ast.Parameters, p.peek().Line, p.peek().Column)
	} else {
		params = p.parseParamList()
	}
	p.consume(")")
	body := p.parseBlock()
	return ast.New(ast.FunctionDeclaration, typeNode.Line, typeNode.Column, typeNode, nameNode, params, body)
}

func (p *parser) parseParamList() *ast.Node {
	line, col := p.peek().Line, p.peek().Column
	var params []*ast.Node
	if param := p.parseParam(); param != nil {
		params = append(params, param)
	}
	for p.checkLexeme(",") {
		p.advance()
		if param := p.parseParam(); param != nil {
			params = append(params, param)
		}
	}
	return ast.New(ast.Parameters, line, col, params...)
}

func (p *parser) parseParam() *ast.Node {
	if !p.isTypeKeyword(p.peek()) {
		tok := p.peek()
		p.sink.Syn("Expected a parameter type, got '"+tok.Lexeme+"'", tok.Line, tok.Column)
		return nil
	}
	typeTok := p.advance()
	typeNode := ast.Leaf(ast.Type, typeTok.Lexeme, typeTok.Line, typeTok.Column)

	if !p.checkKind(token.Identifier) {
		tok := p.peek()
		p.sink.Syn("Expected a parameter name after type '"+typeTok.Lexeme+"'", tok.Line, tok.Column)
		return ast.New(ast.Parameter, typeNode.Line, typeNode.Column, typeNode)
	}
	nameTok := p.advance()
	nameNode := ast.Leaf(ast.Identifier, nameTok.Lexeme, nameTok.Line, nameTok.Column)
	return ast.New(ast.Parameter, typeNode.Line, typeNode.Column, typeNode, nameNode)
}

func (p *parser) parseVarRest(typeNode, nameNode *ast.Node) *ast.Node {
	children := []*ast.Node{typeNode, nameNode}
	if p.checkLexeme("=") {
		p.advance()
		init := p.parseExpression()
		children = append(children, init)
	}
	p.consume(";")
	return ast.New(ast.VarDeclaration, typeNode.Line, typeNode.Column, children...)
}

// -----------------------------------------------------------------------------
// statements

func (p *parser) parseStatement() *ast.Node {
	switch {
	case p.checkLexeme("{"):
		return p.parseBlock()
	case p.checkLexeme("if"):
		return p.parseIf()
	case p.checkLexeme("while"):
		return p.parseWhile()
	case p.checkLexeme("for"):
		return p.parseFor()
	case p.checkLexeme("return"):
		return p.parseReturn()
	case p.checkLexeme("print"):
		return p.parsePrint()
	case p.isTypeKeyword(p.peek()):
		return p.parseVarDeclStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *parser) parseBlock() *ast.Node {
	openTok, _ := p.consume("{")
	var stmts []*ast.Node
	for !p.checkLexeme("}") && !p.atEnd() {
		before := p.pos
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.consume("}")
	return ast.New(ast.Block, openTok.Line, openTok.Column, stmts...)
}

func (p *parser) parseVarDeclStatement() *ast.Node {
	typeTok := p.advance()
	typeNode := ast.Leaf(ast.Type, typeTok.Lexeme, typeTok.Line, typeTok.Column)
	if !p.checkKind(token.Identifier) {
		tok := p.peek()
		p.sink.Syn("Expected an identifier after type '"+typeTok.Lexeme+"'", tok.Line, tok.Column)
		p.synchronize()
		return ast.New(ast.VarDeclaration, typeNode.Line, typeNode.Column, typeNode)
	}
	nameTok := p.advance()
	nameNode := ast.Leaf(ast.Identifier, nameTok.Lexeme, nameTok.Line, nameTok.Column)
	return p.parseVarRest(typeNode, nameNode)
}

func (p *parser) parseIf() *ast.Node {
	ifTok, _ := p.consume("if")
	p.consume("(")
	cond := p.parseExpression()
	p.consume(")")
	then := p.parseStatement()
	children := []*ast.Node{cond, then}
	if p.checkLexeme("else") {
		p.advance()
		els := p.parseStatement()
		children = append(children, els)
	}
	return ast.New(ast.IfStatement, ifTok.Line, ifTok.Column, children...)
}

func (p *parser) parseWhile() *ast.Node {
	whileTok, _ := p.consume("while")
	p.consume("(")
	cond := p.parseExpression()
	p.consume(")")
	body := p.parseStatement()
	return ast.New(ast.WhileStatement, whileTok.Line, whileTok.Column, cond, body)
}

func (p *parser) parseFor() *ast.Node {
	forTok, _ := p.consume("for")
	p.consume("(")

	var init *ast.Node
	if p.checkLexeme(";") {
		tok := p.advance()
		init = ast.NewEmpty(tok.Line, tok.Column)
	} else if p.isTypeKeyword(p.peek()) {
		init = p.parseVarDeclStatement()
	} else {
		init = p.parseExprStatement()
	}

	var cond *ast.Node
	if p.checkLexeme(";") {
		tok := p.peek()
		cond = ast.NewEmpty(tok.Line, tok.Column)
	} else {
		cond = p.parseExpression()
	}
	p.consume(";")

	var step *ast.Node
	if p.checkLexeme(")") {
		tok := p.peek()
		step = ast.NewEmpty(tok.Line, tok.Column)
	} else {
		step = p.parseExpression()
	}
	p.consume(")")

	body := p.parseStatement()
	return ast.New(ast.ForStatement, forTok.Line, forTok.Column, init, cond, step, body)
}

func (p *parser) parseReturn() *ast.Node {
	retTok, _ := p.consume("return")
	var children []*ast.Node
	if !p.checkLexeme(";") {
		children = append(children, p.parseExpression())
	}
	p.consume(";")
	return ast.New(ast.ReturnStatement, retTok.Line, retTok.Column, children...)
}

func (p *parser) parsePrint() *ast.Node {
	printTok, _ := p.consume("print")
	p.consume("(")
	expr := p.parseExpression()
	p.consume(")")
	p.consume(";")
	return ast.New(ast.PrintStatement, printTok.Line, printTok.Column, expr)
}

func (p *parser) parseExprStatement() *ast.Node {
	tok := p.peek()
	expr := p.parseExpression()
	p.consume(";")
	return ast.New(ast.ExprStatement, tok.Line, tok.Column, expr)
}

// -----------------------------------------------------------------------------
// expressions (lowest to highest precedence)

func (p *parser) parseExpression() *ast.Node {
	return p.parseAssignment()
}

func (p *parser) parseAssignment() *ast.Node {
	left := p.parseLogicalOr()
	if p.checkLexeme("=") {
		eqTok := p.advance()
		right := p.parseAssignment()
		node := ast.New(ast.Assignment, left.Line, left.Column, left, right)
		node.Value = eqTok.Lexeme
		return node
	}
	return left
}

func (p *parser) parseLogicalOr() *ast.Node {
	left := p.parseLogicalAnd()
	for p.checkLexeme("||") {
		op := p.advance()
		right := p.parseLogicalAnd()
		node := ast.New(ast.LogicalOr, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseLogicalAnd() *ast.Node {
	left := p.parseEquality()
	for p.checkLexeme("&&") {
		op := p.advance()
		right := p.parseEquality()
		node := ast.New(ast.LogicalAnd, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseEquality() *ast.Node {
	left := p.parseComparison()
	for p.checkLexeme("==") || p.checkLexeme("!=") {
		op := p.advance()
		right := p.parseComparison()
		node := ast.New(ast.Equality, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseComparison() *ast.Node {
	left := p.parseTerm()
	for p.checkLexeme("<") || p.checkLexeme(">") || p.checkLexeme("<=") || p.checkLexeme(">=") {
		op := p.advance()
		right := p.parseTerm()
		node := ast.New(ast.Comparison, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseTerm() *ast.Node {
	left := p.parseFactor()
	for p.checkLexeme("+") || p.checkLexeme("-") {
		op := p.advance()
		right := p.parseFactor()
		node := ast.New(ast.Binary, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseFactor() *ast.Node {
	left := p.parseUnary()
	for p.checkLexeme("*") || p.checkLexeme("/") || p.checkLexeme("%") {
		op := p.advance()
		right := p.parseUnary()
		node := ast.New(ast.Binary, left.Line, left.Column, left, right)
		node.Value = op.Lexeme
		left = node
	}
	return left
}

func (p *parser) parseUnary() *ast.Node {
	if p.checkLexeme("!") || p.checkLexeme("-") {
		op := p.advance()
		operand := p.parseUnary()
		node := ast.New(ast.Unary, op.Line, op.Column, operand)
		node.Value = op.Lexeme
		return node
	}
	return p.parseCall()
}

func (p *parser) parseCall() *ast.Node {
	expr := p.parsePrimary()
	for p.checkLexeme("(") {
		p.advance()
		var args []*ast.Node
		if !p.checkLexeme(")") {
			args = append(args, p.parseExpression())
			for p.checkLexeme(",") {
				p.advance()
				args = append(args, p.parseExpression())
			}
		}
		p.consume(")")
		children := append([]*ast.Node{expr}, args...)
		expr = ast.New(ast.FunctionCall, expr.Line, expr.Column, children...)
	}
	return expr
}

func (p *parser) parsePrimary() *ast.Node {
	tok := p.peek()
	switch {
	case tok.Kind == token.Number:
		p.advance()
		return ast.Leaf(ast.NumberLiteral, tok.Lexeme, tok.Line, tok.Column)
	case tok.Kind == token.String:
		p.advance()
		return ast.Leaf(ast.StringLiteral, tok.Lexeme, tok.Line, tok.Column)
	case tok.Lexeme == "true" || tok.Lexeme == "false":
		p.advance()
		return ast.Leaf(ast.BoolLiteral, tok.Lexeme, tok.Line, tok.Column)
	case tok.Kind == token.Identifier:
		p.advance()
		return ast.Leaf(ast.Identifier, tok.Lexeme, tok.Line, tok.Column)
	case tok.Lexeme == "(":
		p.advance()
		inner := p.parseExpression()
		p.consume(")")
		return ast.New(ast.Grouping, tok.Line, tok.Column, inner)
	default:
		p.sink.Syn("Expected an expression, got '"+tok.Lexeme+"'", tok.Line, tok.Column)
		if !p.atEnd() && tok.Lexeme != "}" && tok.Lexeme != ";" {
			p.advance()
		}
		return ast.NewEmpty(tok.Line, tok.Column)
	}
}
