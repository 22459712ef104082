package quad

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/babyduck-lang/babyduck/pkg/ast"
	"github.com/babyduck-lang/babyduck/pkg/symbols"
	"github.com/babyduck-lang/babyduck/pkg/token"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// Program is the compiled object: the quad stream, the string table
// print statements reference, and the symbol tables the VM needs to
// size and label memory.
type Program struct {
	Quads     []Quad
	Strings   []string
	Directory *symbols.FunctionDirectory
	MainStart int32
}

// operand is a compile-time value: the address it lives at and its
// type, the payload of the generator's operand/type stack.
type operand struct {
	addr symbols.Address
	typ  types.Type
}

// QuadGenerator performs a single pass over a parsed program, driving
// an operand stack, a type stack (folded into operand above, one push
// per value produced), a jump stack for if/while backpatching, and a
// call-staging stack for ERA/PARAM/GOSUB.
type QuadGenerator struct {
	fd         *symbols.FunctionDirectory
	funcIndex  map[string]int32
	numFuncs   int32
	scopeIndex int32
	quads      []Quad
	strings    []string
	stringIdx  map[string]int32
	scope      string
	errs       []error
	log        *zap.Logger
}

// Generate compiles a parsed program into a quad Program.
func Generate(program *ast.Program, log *zap.Logger) (*Program, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &QuadGenerator{
		fd:        symbols.NewFunctionDirectory(),
		funcIndex: make(map[string]int32),
		numFuncs:  int32(len(program.Functions)),
		stringIdx: make(map[string]int32),
		log:       log,
	}

	for _, vd := range program.Globals {
		g.declareVars(g.fd.Global(), vd)
	}
	log.Info("globals declared", zap.Int("count", len(program.Globals)))

	gotoMain := g.emit(Quad{Op: OpGoto, Arg1: NoOperand, Arg2: NoOperand, Res: NoOperand})

	for i, fn := range program.Functions {
		g.compileFunction(fn, int32(i))
	}
	log.Info("function directory built", zap.Int("functions", len(program.Functions)))

	mainStart := int32(len(g.quads))
	g.patch(gotoMain, mainStart)

	g.scope = "global"
	g.scopeIndex = g.numFuncs
	for _, stmt := range program.MainBody {
		g.compileStmt(stmt)
	}
	g.emit(Quad{Op: OpEnd, Arg1: NoOperand, Arg2: NoOperand, Res: NoOperand})

	log.Info("quads emitted", zap.Int("count", len(g.quads)))

	if len(g.errs) > 0 {
		return nil, g.errs[0]
	}

	return &Program{
		Quads:     g.quads,
		Strings:   g.strings,
		Directory: g.fd,
		MainStart: mainStart,
	}, nil
}

// addError records an internal-bug message with no corresponding
// diagnostics.Kind (e.g. an unreachable AST node type).
func (g *QuadGenerator) addError(format string, args ...interface{}) {
	g.errs = append(g.errs, fmt.Errorf(format, args...))
}

// addErr records a typed semantic error, preserving its concrete type
// so diagnostics.Kind can classify it later.
func (g *QuadGenerator) addErr(err error) {
	g.errs = append(g.errs, err)
}

func (g *QuadGenerator) emit(q Quad) int {
	g.quads = append(g.quads, q)
	return len(g.quads) - 1
}

func (g *QuadGenerator) patch(idx int, target int32) {
	g.quads[idx].Res = target
}

func tokenType(k token.Kind) types.Type {
	switch k {
	case token.FloatType:
		return types.Float
	case token.BoolType:
		return types.Bool
	default:
		return types.Int
	}
}

func (g *QuadGenerator) declareVars(fi *symbols.FunctionInfo, vd ast.VarDecl) {
	t := tokenType(vd.Type)
	for _, name := range vd.Names {
		if err := fi.DeclareLocal(name, t); err != nil {
			g.addErr(err)
		}
	}
}

func (g *QuadGenerator) currentScope() *symbols.FunctionInfo {
	if g.scope == "global" {
		return g.fd.Global()
	}
	fi, _ := g.fd.Lookup(g.scope)
	return fi
}

func (g *QuadGenerator) compileFunction(fn *ast.FunctionDecl, index int32) {
	fi, err := g.fd.DeclareFunction(fn.Name)
	if err != nil {
		g.addErr(err)
		return
	}
	g.funcIndex[fn.Name] = index
	for _, p := range fn.Params {
		if err := fi.DeclareParam(p.Name, tokenType(p.Type)); err != nil {
			g.addErr(err)
		}
	}
	for _, vd := range fn.Vars {
		g.declareVars(fi, vd)
	}

	fi.StartQuad = len(g.quads)
	g.scope = fn.Name
	g.scopeIndex = index
	for _, stmt := range fn.Body {
		g.compileStmt(stmt)
	}
	g.emit(Quad{Op: OpEndFunc, Arg1: NoOperand, Arg2: NoOperand, Res: NoOperand})
}

func (g *QuadGenerator) compileStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		g.compileAssign(s)
	case *ast.PrintStmt:
		g.compilePrint(s)
	case *ast.IfStmt:
		g.compileIf(s)
	case *ast.WhileStmt:
		g.compileWhile(s)
	case *ast.CallStmt:
		g.compileCall(s)
	default:
		g.addError("internal: unhandled statement %T", stmt)
	}
}

func (g *QuadGenerator) compileAssign(s *ast.AssignStmt) {
	target, ok := g.fd.Resolve(g.scope, s.Name)
	if !ok {
		g.addErr(&UndeclaredVariableError{Name: s.Name, Scope: g.scope})
		return
	}
	val, ok := g.compileExpr(s.Value)
	if !ok {
		return
	}
	if !types.IsAssignable(target.Type, val.typ) {
		g.addErr(&AssignmentError{Context: fmt.Sprintf("assignment to %q", s.Name), Target: target.Type, Source: val.typ})
		return
	}
	g.emit(Quad{Op: OpAssign, Arg1: int32(val.addr), Arg2: NoOperand, Res: int32(target.Address)})
}

func (g *QuadGenerator) compilePrint(s *ast.PrintStmt) {
	for _, arg := range s.Args {
		if lit, ok := arg.(*ast.StringLiteral); ok {
			idx, seen := g.stringIdx[lit.Value]
			if !seen {
				idx = int32(len(g.strings))
				g.strings = append(g.strings, lit.Value)
				g.stringIdx[lit.Value] = idx
			}
			g.emit(Quad{Op: OpPrintStr, Arg1: idx, Arg2: NoOperand, Res: NoOperand})
			continue
		}
		val, ok := g.compileExpr(arg)
		if !ok {
			continue
		}
		g.emit(Quad{Op: OpPrint, Arg1: int32(val.addr), Arg2: NoOperand, Res: NoOperand})
	}
}

func (g *QuadGenerator) compileIf(s *ast.IfStmt) {
	cond, ok := g.compileExpr(s.Cond)
	if !ok {
		return
	}
	if cond.typ != types.Bool {
		g.addErr(&NotBoolError{Context: "if", Got: cond.typ})
		return
	}
	gotoF := g.emit(Quad{Op: OpGotoF, Arg1: int32(cond.addr), Arg2: NoOperand, Res: NoOperand})
	for _, stmt := range s.Then {
		g.compileStmt(stmt)
	}
	if s.Else != nil {
		gotoEnd := g.emit(Quad{Op: OpGoto, Arg1: NoOperand, Arg2: NoOperand, Res: NoOperand})
		g.patch(gotoF, int32(len(g.quads)))
		for _, stmt := range s.Else {
			g.compileStmt(stmt)
		}
		g.patch(gotoEnd, int32(len(g.quads)))
		return
	}
	g.patch(gotoF, int32(len(g.quads)))
}

func (g *QuadGenerator) compileWhile(s *ast.WhileStmt) {
	top := int32(len(g.quads))
	cond, ok := g.compileExpr(s.Cond)
	if !ok {
		return
	}
	if cond.typ != types.Bool {
		g.addErr(&NotBoolError{Context: "while", Got: cond.typ})
		return
	}
	gotoF := g.emit(Quad{Op: OpGotoF, Arg1: int32(cond.addr), Arg2: NoOperand, Res: NoOperand})
	for _, stmt := range s.Body {
		g.compileStmt(stmt)
	}
	g.emit(Quad{Op: OpGoto, Arg1: NoOperand, Arg2: NoOperand, Res: top})
	g.patch(gotoF, int32(len(g.quads)))
}

func (g *QuadGenerator) compileCall(s *ast.CallStmt) {
	if s.Name == "global" || s.Name == "main" {
		g.addErr(&UndeclaredFunctionError{Name: s.Name})
		return
	}
	fi, ok := g.fd.Lookup(s.Name)
	if !ok {
		g.addErr(&UndeclaredFunctionError{Name: s.Name})
		return
	}
	idx, ok := g.funcIndex[s.Name]
	if !ok || idx >= g.scopeIndex {
		g.addErr(&CallNotAllowedError{Func: s.Name})
		return
	}
	if len(s.Args) != len(fi.Parameters) {
		g.addErr(&ArgumentCountError{Func: s.Name, Want: len(fi.Parameters), Got: len(s.Args)})
		return
	}
	g.emit(Quad{Op: OpEra, Arg1: idx, Arg2: NoOperand, Res: NoOperand})
	for i, arg := range s.Args {
		val, ok := g.compileExpr(arg)
		if !ok {
			continue
		}
		param := fi.Parameters[i]
		if !types.IsAssignable(param.Type, val.typ) {
			g.addErr(&AssignmentError{
				Context: fmt.Sprintf("argument %d of %q", i+1, s.Name),
				Target:  param.Type, Source: val.typ,
			})
			continue
		}
		g.emit(Quad{Op: OpParam, Arg1: int32(val.addr), Arg2: int32(i), Res: NoOperand})
	}
	g.emit(Quad{Op: OpGosub, Arg1: idx, Arg2: NoOperand, Res: int32(fi.StartQuad)})
}

func (g *QuadGenerator) compileExpr(expr ast.Expr) (operand, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		v, ok := g.fd.Resolve(g.scope, e.Name)
		if !ok {
			g.addErr(&UndeclaredVariableError{Name: e.Name, Scope: g.scope})
			return operand{}, false
		}
		return operand{addr: v.Address, typ: v.Type}, true
	case *ast.IntLiteral:
		addr, err := g.fd.Constants().Intern(types.Int, e.Value)
		if err != nil {
			g.addErr(err)
			return operand{}, false
		}
		return operand{addr: addr, typ: types.Int}, true
	case *ast.FloatLiteral:
		addr, err := g.fd.Constants().Intern(types.Float, e.Value)
		if err != nil {
			g.addErr(err)
			return operand{}, false
		}
		return operand{addr: addr, typ: types.Float}, true
	case *ast.BoolLiteral:
		addr, err := g.fd.Constants().Intern(types.Bool, e.Value)
		if err != nil {
			g.addErr(err)
			return operand{}, false
		}
		return operand{addr: addr, typ: types.Bool}, true
	case *ast.BinaryExpr:
		return g.compileBinary(e)
	default:
		g.addError("internal: unhandled expression %T", expr)
		return operand{}, false
	}
}

func (g *QuadGenerator) compileBinary(e *ast.BinaryExpr) (operand, bool) {
	left, ok := g.compileExpr(e.Left)
	if !ok {
		return operand{}, false
	}
	right, ok := g.compileExpr(e.Right)
	if !ok {
		return operand{}, false
	}
	op, cubeOp := binOp(e.Op)
	resultType, err := types.ResultOf(cubeOp, left.typ, right.typ)
	if err != nil {
		g.addErr(err)
		return operand{}, false
	}
	temp, err := g.currentScope().Allocator.NewTemp(resultType)
	if err != nil {
		g.addErr(err)
		return operand{}, false
	}
	g.emit(Quad{Op: op, Arg1: int32(left.addr), Arg2: int32(right.addr), Res: int32(temp)})
	return operand{addr: temp, typ: resultType}, true
}

func binOp(k token.Kind) (Op, types.Op) {
	switch k {
	case token.Plus:
		return OpAdd, types.Add
	case token.Minus:
		return OpSub, types.Sub
	case token.Star:
		return OpMul, types.Mul
	case token.Slash:
		return OpDiv, types.Div
	case token.Greater:
		return OpGt, types.Gt
	case token.Less:
		return OpLt, types.Lt
	case token.Equal:
		return OpEq, types.Eq
	case token.NotEqual:
		return OpNeq, types.Neq
	default:
		return OpAdd, types.Add
	}
}
