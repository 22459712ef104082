package diagnostics

import (
	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/symbols"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// Compile-time error kind names, used for display and for test
// assertions that a given source triggers a specific kind.
const (
	KindDuplicateVariable      = "DuplicateVariable"
	KindDuplicateFunction      = "DuplicateFunction"
	KindUndeclaredVariable     = "UndeclaredVariable"
	KindUndeclaredFunction     = "UndeclaredFunction"
	KindTypeMismatch           = "TypeMismatch"
	KindArgumentCountMismatch  = "ArgumentCountMismatch"
	KindAssignmentTypeMismatch = "AssignmentTypeMismatch"
	KindCallNotAllowed         = "CallNotAllowed"
)

// Kind maps a compile-time error produced anywhere in the pipeline
// (pkg/symbols, pkg/types, pkg/quad) to its kind name. It returns "" for
// an error it does not recognize, so callers can fall back to a plain
// message.
func Kind(err error) string {
	switch err.(type) {
	case *symbols.DuplicateVariableError:
		return KindDuplicateVariable
	case *symbols.DuplicateFunctionError:
		return KindDuplicateFunction
	case *quad.UndeclaredVariableError:
		return KindUndeclaredVariable
	case *quad.UndeclaredFunctionError:
		return KindUndeclaredFunction
	case *types.MismatchError:
		return KindTypeMismatch
	case *quad.ArgumentCountError:
		return KindArgumentCountMismatch
	case *quad.AssignmentError:
		return KindAssignmentTypeMismatch
	case *quad.CallNotAllowedError:
		return KindCallNotAllowed
	case *quad.NotBoolError:
		return KindTypeMismatch
	default:
		return ""
	}
}
