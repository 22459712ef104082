package quad

import (
	"go.uber.org/zap"

	"github.com/babyduck-lang/babyduck/pkg/ast"
	"github.com/babyduck-lang/babyduck/pkg/symbols"
)

// Incremental drives a QuadGenerator across many separate inputs
// instead of one whole ast.Program: one FunctionDirectory and one
// growing quad/string stream live for the whole REPL session, so a
// variable declared in one line is visible in the next. Only
// global-scoped statements and global var declarations are accepted —
// no new `void f(...)` mid-session, since DuplicateFunction is checked
// globally.
type Incremental struct {
	g *QuadGenerator
}

// NewIncremental starts a fresh REPL compilation session.
func NewIncremental(log *zap.Logger) *Incremental {
	if log == nil {
		log = zap.NewNop()
	}
	return &Incremental{g: &QuadGenerator{
		fd:        symbols.NewFunctionDirectory(),
		funcIndex: make(map[string]int32),
		stringIdx: make(map[string]int32),
		scope:     "global",
		log:       log,
	}}
}

// Directory exposes the session's symbol table.
func (inc *Incremental) Directory() *symbols.FunctionDirectory { return inc.g.fd }

// DeclareVars extends global scope with a new `var` group.
func (inc *Incremental) DeclareVars(vd ast.VarDecl) error {
	inc.g.declareVars(inc.g.fd.Global(), vd)
	return inc.drainErrors()
}

// CompileStmt appends one statement's quads to the session's stream
// and returns a Program runnable from that statement's start quad
// through a freshly emitted OpEnd. Earlier statements' quads are left
// untouched in the stream — each snapshot's OpEnd only halts execution
// of that one Run, it does not truncate history.
func (inc *Incremental) CompileStmt(stmt ast.Stmt) (*Program, error) {
	start := int32(len(inc.g.quads))
	inc.g.compileStmt(stmt)
	if err := inc.drainErrors(); err != nil {
		inc.g.quads = inc.g.quads[:start]
		return nil, err
	}
	inc.g.emit(Quad{Op: OpEnd, Arg1: NoOperand, Arg2: NoOperand, Res: NoOperand})
	return &Program{
		Quads:     inc.g.quads,
		Strings:   inc.g.strings,
		Directory: inc.g.fd,
		MainStart: start,
	}, nil
}

func (inc *Incremental) drainErrors() error {
	if len(inc.g.errs) == 0 {
		return nil
	}
	first := inc.g.errs[0]
	inc.g.errs = nil
	return first
}
