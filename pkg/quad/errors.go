package quad

import (
	"fmt"

	"github.com/babyduck-lang/babyduck/pkg/types"
)

// UndeclaredVariableError reports a reference to a name that resolves
// in neither the current scope nor the global scope.
type UndeclaredVariableError struct {
	Name, Scope string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable %q in scope %q", e.Name, e.Scope)
}

// UndeclaredFunctionError reports a call to a name with no matching
// function declaration.
type UndeclaredFunctionError struct{ Name string }

func (e *UndeclaredFunctionError) Error() string {
	return fmt.Sprintf("undeclared function %q", e.Name)
}

// ArgumentCountError reports a call whose argument count does not
// match the callee's parameter count.
type ArgumentCountError struct {
	Func      string
	Want, Got int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("function %q expects %d argument(s), got %d", e.Func, e.Want, e.Got)
}

// NotBoolError reports an if/while condition that did not evaluate to
// Bool.
type NotBoolError struct {
	Context string
	Got     types.Type
}

func (e *NotBoolError) Error() string {
	return fmt.Sprintf("%s condition must be bool, got %s", e.Context, e.Got)
}

// CallNotAllowedError reports a call to a procedure that is not yet
// fully compiled at the call site — itself (direct recursion) or a
// procedure declared later in the program. BabyDuck procedures never
// recurse, so a call is legal only to a procedure whose StartQuad is
// already known: one declared earlier, or (from main) any procedure at
// all, since every procedure compiles before main's body does.
type CallNotAllowedError struct{ Func string }

func (e *CallNotAllowedError) Error() string {
	return fmt.Sprintf("call to %q not allowed here: procedures may only call earlier-declared procedures, never themselves", e.Func)
}

// AssignmentError reports an assignment or argument pass whose source
// type cannot convert to its target type.
type AssignmentError struct {
	Context        string
	Target, Source types.Type
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s: cannot assign %s to %s", e.Context, e.Source, e.Target)
}
