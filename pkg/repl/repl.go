// Package repl implements an interactive BabyDuck shell: one line (or
// one `var` declaration) at a time is parsed, compiled onto a
// persistent quad stream, and executed on a persistent VM, using
// github.com/chzyer/readline for history and line editing.
//
// BabyDuck procedures cannot be declared mid-session: a duplicate
// function check is global, and every call site must resolve against
// a function whose body is already fully compiled, so the REPL only
// accepts `var` declarations and main-scoped statements.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/babyduck-lang/babyduck/pkg/diagnostics"
	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/parser"
	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/vm"
)

const version = "0.1.0"

// REPL is one interactive session: a persistent Incremental compiler
// and a persistent VM, so a variable assigned on one line is still
// there on the next.
type REPL struct {
	inc     *quad.Incremental
	machine *vm.VM
	out     io.Writer
	log     *zap.Logger
}

// New creates a REPL session writing program output to out.
func New(out io.Writer, log *zap.Logger) *REPL {
	if log == nil {
		log = zap.NewNop()
	}
	machine := vm.New()
	machine.SetOutput(out)
	machine.SetLogger(log)
	return &REPL{
		inc:     quad.NewIncremental(log),
		machine: machine,
		out:     out,
		log:     log,
	}
}

// Run drives the interactive loop until the user quits or stdin
// closes. It owns its own readline.Instance so history and line
// editing work against the real terminal.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "babyduck> ",
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(r.out, "babyduckc REPL v%s\n", version)
	fmt.Fprintln(r.out, "Type ':help' for help, ':quit' to exit.")

	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt("babyduck> ")
		} else {
			rl.SetPrompt("   ...> ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buf.Len() == 0 {
				continue
			}
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if buf.Len() == 0 {
			switch strings.TrimSpace(line) {
			case ":quit", ":exit":
				return nil
			case ":help":
				r.printHelp()
				continue
			case "":
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteString("\n")

		trimmed := strings.TrimSpace(buf.String())
		if !strings.HasSuffix(trimmed, ";") && !strings.HasSuffix(trimmed, "}") {
			continue
		}

		r.eval(trimmed)
		buf.Reset()
	}
}

// eval compiles and runs one complete input, reporting any error
// through diagnostics.Report without stopping the session.
func (r *REPL) eval(input string) {
	p := parser.New(input)

	if strings.HasPrefix(strings.TrimSpace(input), "var") {
		decl, err := p.ParseVarDecl()
		if err != nil {
			diagnostics.Report(r.out, err)
			return
		}
		if err := r.inc.DeclareVars(decl); err != nil {
			diagnostics.Report(r.out, err)
		}
		return
	}

	stmt, err := p.ParseStatement()
	if err != nil {
		diagnostics.Report(r.out, err)
		return
	}
	if stmt == nil {
		return
	}

	prog, err := r.inc.CompileStmt(stmt)
	if err != nil {
		diagnostics.Report(r.out, err)
		return
	}

	objProg, err := object.FromQuadProgram(prog)
	if err != nil {
		diagnostics.Report(r.out, err)
		return
	}

	if err := r.machine.Run(objProg); err != nil {
		diagnostics.Report(r.out, err)
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Commands:")
	fmt.Fprintln(r.out, "  :help     show this message")
	fmt.Fprintln(r.out, "  :quit     exit the REPL")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Enter a var declaration (var x : int;) or a statement")
	fmt.Fprintln(r.out, "(assignment, print, if/else, while, procedure call).")
	fmt.Fprintln(r.out, "Statements run against main/global scope only.")
}
