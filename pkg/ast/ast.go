// Package ast defines the Abstract Syntax Tree nodes for BabyDuck.
package ast

import "github.com/babyduck-lang/babyduck/pkg/token"

// Node is the interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
}

// Expr is an expression node: something that evaluates to a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node: something executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// VarDecl is one `var name1, name2 : type;` declaration group.
type VarDecl struct {
	Names []string
	Type  token.Kind // token.IntType, token.FloatType, or token.BoolType
}

func (v *VarDecl) TokenLiteral() string { return "var" }

// Param is one formal parameter of a function declaration.
type Param struct {
	Name string
	Type token.Kind
}

// FunctionDecl is a `void name(params) [ vars; { body } ];` declaration.
type FunctionDecl struct {
	Name   string
	Params []Param
	Vars   []VarDecl
	Body   []Stmt
}

func (f *FunctionDecl) TokenLiteral() string { return "void" }

// Program is the root node: the global var section, the procedure
// declarations, and the main body.
type Program struct {
	Name      string
	Globals   []VarDecl
	Functions []*FunctionDecl
	MainBody  []Stmt
}

func (p *Program) TokenLiteral() string { return "program" }

// Identifier references a declared variable.
type Identifier struct {
	Name string
}

func (i *Identifier) TokenLiteral() string { return i.Name }
func (i *Identifier) exprNode()            {}

// IntLiteral is an integer constant.
type IntLiteral struct {
	Value int64
}

func (l *IntLiteral) TokenLiteral() string { return "int-literal" }
func (l *IntLiteral) exprNode()            {}

// FloatLiteral is a floating-point constant.
type FloatLiteral struct {
	Value float64
}

func (l *FloatLiteral) TokenLiteral() string { return "float-literal" }
func (l *FloatLiteral) exprNode()            {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
}

func (l *BoolLiteral) TokenLiteral() string { return "bool-literal" }
func (l *BoolLiteral) exprNode()            {}

// StringLiteral appears only as a bare argument to print(); it never
// participates in arithmetic or comparison expressions.
type StringLiteral struct {
	Value string
}

func (l *StringLiteral) TokenLiteral() string { return "string-literal" }
func (l *StringLiteral) exprNode()            {}

// BinaryExpr is a two-operand arithmetic or comparison expression.
type BinaryExpr struct {
	Op    token.Kind // one of + - * / > < == !=
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) TokenLiteral() string { return b.Op.String() }
func (b *BinaryExpr) exprNode()            {}

// AssignStmt is `id = expr;`.
type AssignStmt struct {
	Name  string
	Value Expr
}

func (a *AssignStmt) TokenLiteral() string { return "=" }
func (a *AssignStmt) stmtNode()            {}

// PrintStmt is `print(arg1, arg2, ...);`; each argument is either an
// expression or a bare string literal.
type PrintStmt struct {
	Args []Expr
}

func (p *PrintStmt) TokenLiteral() string { return "print" }
func (p *PrintStmt) stmtNode()            {}

// IfStmt is `if (cond) { then } [else { else }]`.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if there is no else clause
}

func (i *IfStmt) TokenLiteral() string { return "if" }
func (i *IfStmt) stmtNode()            {}

// WhileStmt is `while (cond) do { body };`.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
}

func (w *WhileStmt) TokenLiteral() string { return "while" }
func (w *WhileStmt) stmtNode()            {}

// CallStmt is a procedure invocation `name(args);` used as a statement.
type CallStmt struct {
	Name string
	Args []Expr
}

func (c *CallStmt) TokenLiteral() string { return c.Name }
func (c *CallStmt) stmtNode()            {}
