// Package parser implements a recursive-descent parser for BabyDuck.
//
// Parsing is not the hard part of this project — semantic analysis and
// quad generation are — but a real syntax tree is needed to drive
// them, so the parser here uses a straightforward two-token-lookahead,
// error-accumulating style.
//
// Grammar:
//
//	program    := "program" IDENT ";" vars* func* "main" block "end"
//	vars       := "var" varGroup+
//	varGroup   := IDENT ("," IDENT)* ":" type ";"
//	type       := "int" | "float" | "bool"
//	func       := "void" IDENT "(" params? ")" "[" vars* block "]" ";"
//	params     := param ("," param)*
//	param      := IDENT ":" type
//	block      := "{" stmt* "}"
//	stmt       := assign | print | if | while | call
//	assign     := IDENT "=" expr ";"
//	print      := "print" "(" printArg ("," printArg)* ")" ";"
//	printArg   := expr | STRING
//	if         := "if" "(" expr ")" block ("else" block)?
//	while      := "while" "(" expr ")" "do" block ";"
//	call       := IDENT "(" (expr ("," expr)*)? ")" ";"
//	expr       := addExpr (compOp addExpr)?
//	addExpr    := mulExpr (("+" | "-") mulExpr)*
//	mulExpr    := factor (("*" | "/") factor)*
//	factor     := "(" expr ")" | IDENT | INT | FLOAT | "true" | "false"
package parser

import (
	"fmt"
	"strconv"

	"github.com/babyduck-lang/babyduck/pkg/ast"
	"github.com/babyduck-lang/babyduck/pkg/lexer"
	"github.com/babyduck-lang/babyduck/pkg/token"
)

// Parser is a stateful, single-use recursive-descent parser.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token
	errors  []string
}

// New creates a parser for the given BabyDuck source text.
func New(input string) *Parser {
	p := &Parser{l: lexer.New(input), errors: []string{}}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curTok.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekTok.Kind == k }

// expect checks that curTok has kind k, consumes it, and returns ok.
func (p *Parser) expect(k token.Kind) bool {
	if !p.curIs(k) {
		p.addError("expected %s, got %s (%q)", k, p.curTok.Kind, p.curTok.Literal)
		return false
	}
	p.nextToken()
	return true
}

// Parse parses a complete BabyDuck program.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}

	if !p.expect(token.Program) {
		return prog, p.err()
	}
	prog.Name = p.curTok.Literal
	p.expect(token.Ident)
	p.expect(token.Semicolon)

	for p.curIs(token.Var) {
		prog.Globals = append(prog.Globals, p.parseVarSection()...)
	}

	for p.curIs(token.Void) {
		prog.Functions = append(prog.Functions, p.parseFunction())
	}

	if !p.expect(token.Main) {
		return prog, p.err()
	}
	prog.MainBody = p.parseBlock()
	p.expect(token.End)

	return prog, p.err()
}

// ParseStatement parses a single statement (assign, print, if, while,
// or call) without a surrounding program/main wrapper, for the REPL to
// compile one line at a time against a persistent symbol table.
func (p *Parser) ParseStatement() (ast.Stmt, error) {
	stmt := p.parseStatement()
	return stmt, p.err()
}

// ParseVarDecl parses a single `var` declaration group (e.g.
// "x, y : int;") without a surrounding program, for the REPL to extend
// global scope mid-session.
func (p *Parser) ParseVarDecl() (ast.VarDecl, error) {
	if !p.curIs(token.Var) {
		p.addError("expected 'var', got %q", p.curTok.Literal)
		return ast.VarDecl{}, p.err()
	}
	p.nextToken()
	decl := p.parseVarGroup()
	return decl, p.err()
}

// AtEOF reports whether the parser has consumed all of its input.
func (p *Parser) AtEOF() bool { return p.curIs(token.EOF) }

func (p *Parser) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return fmt.Errorf("%d parse error(s): %s", len(p.errors), p.errors[0])
}

// parseVarSection parses one `var` keyword followed by one or more
// comma-separated name groups, each typed and semicolon-terminated.
func (p *Parser) parseVarSection() []ast.VarDecl {
	var decls []ast.VarDecl
	p.expect(token.Var)
	for p.curIs(token.Ident) {
		decls = append(decls, p.parseVarGroup())
	}
	return decls
}

func (p *Parser) parseVarGroup() ast.VarDecl {
	var names []string
	names = append(names, p.curTok.Literal)
	p.expect(token.Ident)
	for p.curIs(token.Comma) {
		p.nextToken()
		names = append(names, p.curTok.Literal)
		p.expect(token.Ident)
	}
	p.expect(token.Colon)
	typ := p.parseType()
	p.expect(token.Semicolon)
	return ast.VarDecl{Names: names, Type: typ}
}

func (p *Parser) parseType() token.Kind {
	switch p.curTok.Kind {
	case token.IntType, token.FloatType, token.BoolType:
		k := p.curTok.Kind
		p.nextToken()
		return k
	default:
		p.addError("expected a type (int/float/bool), got %q", p.curTok.Literal)
		p.nextToken()
		return token.Illegal
	}
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	fn := &ast.FunctionDecl{}
	p.expect(token.Void)
	fn.Name = p.curTok.Literal
	p.expect(token.Ident)

	p.expect(token.LParen)
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		name := p.curTok.Literal
		p.expect(token.Ident)
		p.expect(token.Colon)
		typ := p.parseType()
		fn.Params = append(fn.Params, ast.Param{Name: name, Type: typ})
		if p.curIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expect(token.RParen)

	p.expect(token.LBracket)
	for p.curIs(token.Var) {
		fn.Vars = append(fn.Vars, p.parseVarSection()...)
	}
	fn.Body = p.parseBlock()
	p.expect(token.RBracket)
	p.expect(token.Semicolon)

	return fn
}

func (p *Parser) parseBlock() []ast.Stmt {
	var stmts []ast.Stmt
	p.expect(token.LBrace)
	for !p.curIs(token.RBrace) && !p.curIs(token.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBrace)
	return stmts
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.curTok.Kind {
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Print:
		return p.parsePrint()
	case token.Ident:
		if p.peekIs(token.LParen) {
			return p.parseCall()
		}
		return p.parseAssign()
	default:
		p.addError("unexpected token %q at start of statement", p.curTok.Literal)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseAssign() ast.Stmt {
	name := p.curTok.Literal
	p.expect(token.Ident)
	p.expect(token.Assign)
	value := p.parseExpr()
	p.expect(token.Semicolon)
	return &ast.AssignStmt{Name: name, Value: value}
}

func (p *Parser) parsePrint() ast.Stmt {
	p.expect(token.Print)
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		if p.curIs(token.StringLit) {
			args = append(args, &ast.StringLiteral{Value: p.curTok.Literal})
			p.nextToken()
		} else {
			args = append(args, p.parseExpr())
		}
		if p.curIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return &ast.PrintStmt{Args: args}
}

func (p *Parser) parseIf() ast.Stmt {
	p.expect(token.If)
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	then := p.parseBlock()
	var els []ast.Stmt
	if p.curIs(token.Else) {
		p.nextToken()
		els = p.parseBlock()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile() ast.Stmt {
	p.expect(token.While)
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expect(token.RParen)
	p.expect(token.Do)
	body := p.parseBlock()
	p.expect(token.Semicolon)
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) parseCall() ast.Stmt {
	name := p.curTok.Literal
	p.expect(token.Ident)
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.curIs(token.RParen) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpr())
		if p.curIs(token.Comma) {
			p.nextToken()
		}
	}
	p.expect(token.RParen)
	p.expect(token.Semicolon)
	return &ast.CallStmt{Name: name, Args: args}
}

// parseExpr implements the precedence levels: a comparison binds at
// most once, around an arbitrarily deep +/- and */ chain.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseAddExpr()
	if p.isCompareOp(p.curTok.Kind) {
		op := p.curTok.Kind
		p.nextToken()
		right := p.parseAddExpr()
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) isCompareOp(k token.Kind) bool {
	switch k {
	case token.Greater, token.Less, token.Equal, token.NotEqual:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAddExpr() ast.Expr {
	left := p.parseMulExpr()
	for p.curIs(token.Plus) || p.curIs(token.Minus) {
		op := p.curTok.Kind
		p.nextToken()
		right := p.parseMulExpr()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMulExpr() ast.Expr {
	left := p.parseFactor()
	for p.curIs(token.Star) || p.curIs(token.Slash) {
		op := p.curTok.Kind
		p.nextToken()
		right := p.parseFactor()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expr {
	switch p.curTok.Kind {
	case token.LParen:
		p.nextToken()
		e := p.parseExpr()
		p.expect(token.RParen)
		return e
	case token.Ident:
		name := p.curTok.Literal
		p.nextToken()
		return &ast.Identifier{Name: name}
	case token.Int:
		v, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
		if err != nil {
			p.addError("invalid integer literal %q", p.curTok.Literal)
		}
		p.nextToken()
		return &ast.IntLiteral{Value: v}
	case token.Float:
		v, err := strconv.ParseFloat(p.curTok.Literal, 64)
		if err != nil {
			p.addError("invalid float literal %q", p.curTok.Literal)
		}
		p.nextToken()
		return &ast.FloatLiteral{Value: v}
	case token.True:
		p.nextToken()
		return &ast.BoolLiteral{Value: true}
	case token.False:
		p.nextToken()
		return &ast.BoolLiteral{Value: false}
	default:
		p.addError("unexpected token %q in expression", p.curTok.Literal)
		p.nextToken()
		return &ast.IntLiteral{Value: 0}
	}
}
