// Package vm implements the quadruple virtual machine for BabyDuck.
//
// The VM is a direct-addressed interpreter, not a stack machine: every
// quad's operands are addresses into one of three typed memory
// vectors. It is the final stage in the pipeline:
//
//	Source -> Lexer -> Parser -> AST -> QuadGenerator -> Object Program -> VM
//
// Execution Model:
//
// The VM walks the quad stream with an instruction pointer, dispatching
// on Op. Arithmetic and comparison quads read two operand addresses,
// look up the value's type implicitly from which segment the address
// falls in, and write the result to a third address. Control flow
// (GOTO/GOTOF) sets the instruction pointer directly; there is no call
// stack of value frames, only a stack of return addresses for
// GOSUB/ENDFUNC, because BabyDuck procedures never recurse and their
// locals/temps are a flat overlay shared across every call.
package vm

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/babyduck-lang/babyduck/pkg/object"
	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// VM executes a compiled object.Program.
type VM struct {
	mem   *Memory
	quads []quad.Quad

	strings   []string
	functions []object.FunctionEntry

	ip          int
	returnStack []int32
	scopeStack  []string
	pendingFunc int

	out io.Writer
	log *zap.Logger
}

// New creates a VM with fresh, zeroed memory. The VM is reusable
// across multiple Load+Run cycles since BabyDuck's globals live in the
// same Memory, so a fresh New() per program run is the normal way to
// use it, while the REPL keeps one VM (and one Memory) alive for its
// whole session.
func New() *VM {
	return &VM{
		mem:        NewMemory(),
		out:        os.Stdout,
		log:        zap.NewNop(),
		scopeStack: []string{"main"},
	}
}

// SetOutput redirects PRINT output (default os.Stdout).
func (vm *VM) SetOutput(w io.Writer) { vm.out = w }

// SetLogger installs a structured logger for verbose execution tracing.
// Passing nil restores the no-op logger.
func (vm *VM) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	vm.log = log
}

// Memory exposes the VM's memory image, for the REPL and disassembler
// to inspect variable values between runs.
func (vm *VM) Memory() *Memory { return vm.mem }

func (vm *VM) currentScope() string {
	if len(vm.scopeStack) == 0 {
		return "main"
	}
	return vm.scopeStack[len(vm.scopeStack)-1]
}

// Run loads an object program's quads/strings/functions and executes
// it starting at MainStart. Constants are preloaded into memory before
// execution; global and local memory already present (e.g. from a
// prior REPL statement) is left untouched.
func (vm *VM) Run(p *object.Program) error {
	vm.quads = p.Quads
	vm.strings = p.Strings
	vm.functions = p.Functions
	vm.returnStack = vm.returnStack[:0]
	vm.scopeStack = []string{"main"}

	for _, c := range p.Constants {
		switch v := c.Value.(type) {
		case int64:
			vm.mem.SetInt(int32(c.Address), v)
		case float64:
			vm.mem.SetFloat(int32(c.Address), v)
		case bool:
			vm.mem.SetBool(int32(c.Address), v)
		}
	}

	vm.ip = int(p.MainStart)
	return vm.dispatch()
}

func (vm *VM) dispatch() error {
	for vm.ip < len(vm.quads) {
		q := vm.quads[vm.ip]
		vm.log.Debug("exec", zap.Int("ip", vm.ip), zap.String("op", q.Op.String()))

		switch q.Op {
		case quad.OpAdd, quad.OpSub, quad.OpMul, quad.OpDiv:
			if err := vm.execArith(q); err != nil {
				return vm.wrapMemErr(err)
			}
			vm.ip++

		case quad.OpGt, quad.OpLt, quad.OpEq, quad.OpNeq:
			if err := vm.execCompare(q); err != nil {
				return vm.wrapMemErr(err)
			}
			vm.ip++

		case quad.OpAssign:
			if err := vm.execAssign(q); err != nil {
				return vm.wrapMemErr(err)
			}
			vm.ip++

		case quad.OpGoto:
			vm.ip = int(q.Res)

		case quad.OpGotoF:
			cond, err := vm.mem.Bool(q.Arg1)
			if err != nil {
				return vm.wrapMemErr(err)
			}
			if !cond {
				vm.ip = int(q.Res)
			} else {
				vm.ip++
			}

		case quad.OpPrint:
			if err := vm.execPrint(q); err != nil {
				return vm.wrapMemErr(err)
			}
			vm.ip++

		case quad.OpPrintStr:
			if int(q.Arg1) < 0 || int(q.Arg1) >= len(vm.strings) {
				return vm.runtimeError(KindInvalidAddress, "string index %d out of range", q.Arg1)
			}
			fmt.Fprintln(vm.out, vm.strings[q.Arg1])
			vm.ip++

		case quad.OpEra:
			if err := vm.execEra(q); err != nil {
				return err
			}
			vm.ip++

		case quad.OpParam:
			if err := vm.execParam(q); err != nil {
				return vm.wrapMemErr(err)
			}
			vm.ip++

		case quad.OpGosub:
			vm.returnStack = append(vm.returnStack, int32(vm.ip+1))
			vm.scopeStack = append(vm.scopeStack, vm.functionName(int(q.Arg1)))
			vm.ip = int(q.Res)

		case quad.OpEndFunc:
			if len(vm.returnStack) == 0 {
				return vm.runtimeError(KindStackUnderflow, "ENDFUNC with no pending call")
			}
			ret := vm.returnStack[len(vm.returnStack)-1]
			vm.returnStack = vm.returnStack[:len(vm.returnStack)-1]
			if len(vm.scopeStack) > 1 {
				vm.scopeStack = vm.scopeStack[:len(vm.scopeStack)-1]
			}
			vm.ip = int(ret)

		case quad.OpEnd:
			return nil

		default:
			return vm.runtimeError(KindInvalidAddress, "unknown opcode %v", q.Op)
		}
	}
	return nil
}

func (vm *VM) functionName(idx int) string {
	if idx < 0 || idx >= len(vm.functions) {
		return "?"
	}
	return vm.functions[idx].Name
}

// execEra prepares the callee's activation: it clears the callee's
// parameter/local/temp cells to uninitialised (spec.md §4.5) so that a
// function reading one of its own locals before assigning it fails
// with KindUninitialisedRead instead of observing another scope's
// value left over from a previous call, since every scope's local/temp
// bands alias the same addresses (pkg/symbols).
func (vm *VM) execEra(q quad.Quad) error {
	idx := int(q.Arg1)
	if idx < 0 || idx >= len(vm.functions) {
		return vm.runtimeError(KindInvalidAddress, "ERA references unknown function index %d", idx)
	}
	vm.pendingFunc = idx
	vm.mem.ClearActivation(vm.functions[idx].Resources)
	return nil
}

// wrapMemErr stamps the failing quad's index and current scope onto a
// *RuntimeError raised by pkg/vm/memory.go, which has no access to the
// dispatch loop's ip/scope (spec.md §6: "runtime errors carry
// (kind, ip)"). Non-RuntimeError values and already-stamped errors
// (Scope is never "" once runtimeError has set it) pass through
// unchanged.
func (vm *VM) wrapMemErr(err error) error {
	re, ok := err.(*RuntimeError)
	if !ok || re.Scope != "" {
		return err
	}
	re.IP = vm.ip
	re.Scope = vm.currentScope()
	return re
}

func (vm *VM) execArith(q quad.Quad) error {
	resultType, err := vm.mem.TypeOf(q.Res)
	if err != nil {
		return err
	}
	if resultType == types.Int {
		a, err := vm.mem.Int(q.Arg1)
		if err != nil {
			return err
		}
		b, err := vm.mem.Int(q.Arg2)
		if err != nil {
			return err
		}
		if q.Op == quad.OpDiv && b == 0 {
			return vm.runtimeError(KindDivisionByZero, "integer division by zero")
		}
		vm.mem.SetInt(q.Res, intArith(q.Op, a, b))
		return nil
	}
	a, err := vm.mem.Float(q.Arg1)
	if err != nil {
		return err
	}
	b, err := vm.mem.Float(q.Arg2)
	if err != nil {
		return err
	}
	if q.Op == quad.OpDiv && b == 0 {
		return vm.runtimeError(KindDivisionByZero, "float division by zero")
	}
	vm.mem.SetFloat(q.Res, floatArith(q.Op, a, b))
	return nil
}

func intArith(op quad.Op, a, b int64) int64 {
	switch op {
	case quad.OpAdd:
		return a + b
	case quad.OpSub:
		return a - b
	case quad.OpMul:
		return a * b
	default:
		return a / b
	}
}

func floatArith(op quad.Op, a, b float64) float64 {
	switch op {
	case quad.OpAdd:
		return a + b
	case quad.OpSub:
		return a - b
	case quad.OpMul:
		return a * b
	default:
		return a / b
	}
}

func (vm *VM) execCompare(q quad.Quad) error {
	argType, err := vm.mem.TypeOf(q.Arg1)
	if err != nil {
		return err
	}
	var result bool
	if argType == types.Bool {
		a, err := vm.mem.Bool(q.Arg1)
		if err != nil {
			return err
		}
		b, err := vm.mem.Bool(q.Arg2)
		if err != nil {
			return err
		}
		switch q.Op {
		case quad.OpEq:
			result = a == b
		case quad.OpNeq:
			result = a != b
		default:
			return vm.runtimeError(KindInvalidAddress, "operator %v not defined over bool", q.Op)
		}
	} else {
		a, err := vm.mem.Float(q.Arg1)
		if err != nil {
			return err
		}
		b, err := vm.mem.Float(q.Arg2)
		if err != nil {
			return err
		}
		switch q.Op {
		case quad.OpGt:
			result = a > b
		case quad.OpLt:
			result = a < b
		case quad.OpEq:
			result = a == b
		case quad.OpNeq:
			result = a != b
		}
	}
	vm.mem.SetBool(q.Res, result)
	return nil
}

func (vm *VM) execAssign(q quad.Quad) error {
	targetType, err := vm.mem.TypeOf(q.Res)
	if err != nil {
		return err
	}
	switch targetType {
	case types.Int:
		v, err := vm.mem.Int(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetInt(q.Res, v)
	case types.Float:
		v, err := vm.mem.Float(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetFloat(q.Res, v)
	case types.Bool:
		v, err := vm.mem.Bool(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetBool(q.Res, v)
	}
	return nil
}

func (vm *VM) execPrint(q quad.Quad) error {
	t, err := vm.mem.TypeOf(q.Arg1)
	if err != nil {
		return err
	}
	switch t {
	case types.Int:
		v, err := vm.mem.Int(q.Arg1)
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.out, v)
	case types.Float:
		v, err := vm.mem.Float(q.Arg1)
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.out, formatFloat(v))
	case types.Bool:
		v, err := vm.mem.Bool(q.Arg1)
		if err != nil {
			return err
		}
		fmt.Fprintln(vm.out, v)
	}
	return nil
}

// formatFloat renders a float with at least one digit after the
// decimal point (spec.md §6): strconv's shortest round-trip form drops
// the "." entirely for whole numbers (10 -> "10"), so a bare ".0" is
// appended when that happens.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (vm *VM) execParam(q quad.Quad) error {
	if vm.pendingFunc < 0 || vm.pendingFunc >= len(vm.functions) {
		return vm.runtimeError(KindInvalidAddress, "PARAM with no pending call")
	}
	fn := vm.functions[vm.pendingFunc]
	pos := int(q.Arg2)
	if pos < 0 || pos >= len(fn.Params) {
		return vm.runtimeError(KindInvalidAddress, "parameter position %d out of range for %q", pos, fn.Name)
	}
	param := fn.Params[pos]
	target := int32(param.Address)
	switch param.Type {
	case types.Int:
		v, err := vm.mem.Int(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetInt(target, v)
	case types.Float:
		v, err := vm.mem.Float(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetFloat(target, v)
	case types.Bool:
		v, err := vm.mem.Bool(q.Arg1)
		if err != nil {
			return err
		}
		vm.mem.SetBool(target, v)
	}
	return nil
}
