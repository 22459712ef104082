// Package types defines the BabyDuck value types and the semantic cube:
// the total lookup (op, left, right) -> result type | error that the
// quad generator consults.
package types

import "fmt"

// Type is one of the three BabyDuck value types.
type Type int

const (
	Int Type = iota
	Float
	Bool
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Op is an operator code used to index the semantic cube. It mirrors,
// but is distinct from, the operator codes emitted into quads
// (pkg/quad.Op) — the cube only needs to know about value-producing and
// assignment operators.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Gt
	Lt
	Eq
	Neq
	Assign
)

func (o Op) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Assign:
		return "="
	default:
		return "?"
	}
}

// MismatchError reports that an operator has no defined result for a
// given pair of operand types.
type MismatchError struct {
	Op          Op
	Left, Right Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s %s %s", e.Left, e.Op, e.Right)
}

// cube is the total function (op, left, right) -> result type. Missing
// entries are type errors.
var cube = map[Op]map[Type]map[Type]Type{
	Add: arithmetic(),
	Sub: arithmetic(),
	Mul: arithmetic(),
	Div: arithmetic(),
	Gt:  comparison(false),
	Lt:  comparison(false),
	Eq:  comparison(true),
	Neq: comparison(true),
}

// arithmetic builds the +, -, *, / entries: Int op Int -> Int; any
// combination involving Float (and no Bool) -> Float; Bool is invalid.
func arithmetic() map[Type]map[Type]Type {
	return map[Type]map[Type]Type{
		Int:   {Int: Int, Float: Float},
		Float: {Int: Float, Float: Float},
	}
}

// comparison builds the >, <, ==, != entries. allowBool additionally
// accepts (Bool, Bool), required for == and !=.
func comparison(allowBool bool) map[Type]map[Type]Type {
	m := map[Type]map[Type]Type{
		Int:   {Int: Bool, Float: Bool},
		Float: {Int: Bool, Float: Bool},
	}
	if allowBool {
		m[Bool] = map[Type]Type{Bool: Bool}
	}
	return m
}

// ResultOf looks up the semantic cube for (op, left, right), returning
// the result type or a *MismatchError.
func ResultOf(op Op, left, right Type) (Type, error) {
	if op == Assign {
		return assignResult(left, right)
	}
	byLeft, ok := cube[op]
	if !ok {
		return 0, &MismatchError{Op: op, Left: left, Right: right}
	}
	byRight, ok := byLeft[left]
	if !ok {
		return 0, &MismatchError{Op: op, Left: left, Right: right}
	}
	result, ok := byRight[right]
	if !ok {
		return 0, &MismatchError{Op: op, Left: left, Right: right}
	}
	return result, nil
}

// assignResult implements the assignment-compatibility rule: same
// type, or Int -> Float widening, or Bool -> Bool. Float -> Int is
// always an error, even though the arithmetic cube's Int/Float entry
// would otherwise suggest a result.
func assignResult(target, source Type) (Type, error) {
	switch {
	case target == source:
		return target, nil
	case target == Float && source == Int:
		return Float, nil
	default:
		return 0, &MismatchError{Op: Assign, Left: target, Right: source}
	}
}

// IsAssignable reports whether a value of type source can be assigned
// (or passed as a parameter) to a location of type target.
func IsAssignable(target, source Type) bool {
	_, err := assignResult(target, source)
	return err == nil
}
