// Package symbols implements BabyDuck's compile-time symbol tables: the
// segmented address space (address.go), the per-scope memory allocator
// and program-wide constant table (allocator.go), and the function
// directory that ties scopes together (directory.go).
package symbols

import (
	"fmt"

	"github.com/babyduck-lang/babyduck/pkg/types"
)

// DuplicateFunctionError reports a second declaration of the same
// function name, or an attempt to declare a function named "global".
type DuplicateFunctionError struct{ Name string }

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("function %q already declared", e.Name)
}

// DuplicateVariableError reports a second declaration of the same
// variable or parameter name within one scope.
type DuplicateVariableError struct{ Scope, Name string }

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("variable %q already declared in scope %q", e.Name, e.Scope)
}

// VarInfo is a resolved variable or parameter: its declared type and
// the address the allocator gave it.
type VarInfo struct {
	Name    string
	Type    types.Type
	Address Address
}

// FunctionInfo is one scope's entry in the function directory: its
// parameters (in declaration order, for call-site arity/type checking),
// its locals (including parameters, by name), where its code starts in
// the quad stream, and the allocator that owns its address space.
type FunctionInfo struct {
	Name       string
	Parameters []VarInfo
	Locals     map[string]VarInfo
	StartQuad  int
	Allocator  *MemoryAllocator
}

// DeclareParam adds a parameter to the scope, in order, allocating its
// address in the local segment.
func (f *FunctionInfo) DeclareParam(name string, t types.Type) error {
	if _, exists := f.Locals[name]; exists {
		return &DuplicateVariableError{Scope: f.Name, Name: name}
	}
	addr, err := f.Allocator.NewParam(t)
	if err != nil {
		return err
	}
	v := VarInfo{Name: name, Type: t, Address: addr}
	f.Locals[name] = v
	f.Parameters = append(f.Parameters, v)
	return nil
}

// DeclareLocal adds a plain variable to the scope. Used both for
// function-local variables and, on the `global` scope's FunctionInfo,
// for program-level variables — the global scope's allocator was built
// with NewGlobalAllocator, so the same call routes to the right segment.
func (f *FunctionInfo) DeclareLocal(name string, t types.Type) error {
	if _, exists := f.Locals[name]; exists {
		return &DuplicateVariableError{Scope: f.Name, Name: name}
	}
	addr, err := f.Allocator.NewVar(t)
	if err != nil {
		return err
	}
	f.Locals[name] = VarInfo{Name: name, Type: t, Address: addr}
	return nil
}

// Lookup resolves a name within this scope only; callers needing
// global fallback should also consult FunctionDirectory.Global().
func (f *FunctionInfo) Lookup(name string) (VarInfo, bool) {
	v, ok := f.Locals[name]
	return v, ok
}

// ResourceCounts reports how many locals, parameters, and temporaries
// this scope ended up using, for the object file's per-scope size
// descriptors.
func (f *FunctionInfo) ResourceCounts() ResourceCounts {
	return f.Allocator.Snapshot()
}

// FunctionDirectory is the compiler's table of scopes: the reserved
// `global` scope plus one entry per declared procedure. All scopes
// share one ConstantTable so that a literal used in two different
// functions gets a single address.
type FunctionDirectory struct {
	constants *ConstantTable
	scopes    map[string]*FunctionInfo
	order     []string
}

// NewFunctionDirectory creates a directory with only the `global` scope
// present.
func NewFunctionDirectory() *FunctionDirectory {
	constants := NewConstantTable()
	fd := &FunctionDirectory{
		constants: constants,
		scopes:    make(map[string]*FunctionInfo),
	}
	fd.scopes["global"] = &FunctionInfo{
		Name:      "global",
		Locals:    make(map[string]VarInfo),
		Allocator: NewGlobalAllocator(constants),
	}
	return fd
}

// DeclareFunction registers a new scope. "global" is reserved; any
// other name, "main" included, may be declared exactly once. The quad
// generator never declares a `main` scope: it compiles main's body in
// the `global` scope.
func (fd *FunctionDirectory) DeclareFunction(name string) (*FunctionInfo, error) {
	if name == "global" {
		return nil, &DuplicateFunctionError{Name: name}
	}
	if _, exists := fd.scopes[name]; exists {
		return nil, &DuplicateFunctionError{Name: name}
	}
	fi := &FunctionInfo{
		Name:      name,
		Locals:    make(map[string]VarInfo),
		Allocator: NewLocalAllocator(fd.constants),
	}
	fd.scopes[name] = fi
	fd.order = append(fd.order, name)
	return fi, nil
}

// Lookup resolves a function/scope name.
func (fd *FunctionDirectory) Lookup(name string) (*FunctionInfo, bool) {
	fi, ok := fd.scopes[name]
	return fi, ok
}

// Global returns the reserved global scope.
func (fd *FunctionDirectory) Global() *FunctionInfo { return fd.scopes["global"] }

// Functions returns declared procedure names (excluding "global"), in
// declaration order.
func (fd *FunctionDirectory) Functions() []string { return fd.order }

// Constants returns the program-wide constant table shared by every
// scope in this directory.
func (fd *FunctionDirectory) Constants() *ConstantTable { return fd.constants }

// Resolve looks a name up in scope, falling back to the global scope —
// the lookup rule used throughout expression and statement compilation:
// an identifier resolves to the innermost of {current function scope,
// global scope}; BabyDuck has no nested block scopes.
func (fd *FunctionDirectory) Resolve(scope, name string) (VarInfo, bool) {
	if fi, ok := fd.scopes[scope]; ok {
		if v, ok := fi.Lookup(name); ok {
			return v, true
		}
	}
	if scope != "global" {
		return fd.Global().Lookup(name)
	}
	return VarInfo{}, false
}
