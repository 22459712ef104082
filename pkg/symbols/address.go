package symbols

import (
	"fmt"

	"github.com/babyduck-lang/babyduck/pkg/types"
)

// Address identifies a cell in the VM's segmented virtual memory. Its
// numeric value carries its segment implicitly.
type Address int32

// Segment is one of the twelve disjoint address bands BabyDuck uses:
// one band per (scope, type) pair, so a segment can be recovered from
// a bare address without any side table.
type Segment int

const (
	GlobalInt Segment = iota
	GlobalFloat
	GlobalBool
	ConstInt
	ConstFloat
	ConstBool
	LocalInt
	LocalFloat
	LocalBool
	TempInt
	TempFloat
	TempBool
)

func (s Segment) String() string {
	names := [...]string{
		"global-int", "global-float", "global-bool",
		"const-int", "const-float", "const-bool",
		"local-int", "local-float", "local-bool",
		"temp-int", "temp-float", "temp-bool",
	}
	if int(s) < 0 || int(s) >= len(names) {
		return "unknown-segment"
	}
	return names[s]
}

// segmentBase is the lowest address in each segment; every segment is
// 1000 addresses wide.
const segmentWidth = 1000

var segmentBase = [...]Address{
	GlobalInt:   1000,
	GlobalFloat: 2000,
	GlobalBool:  3000,
	ConstInt:    4000,
	ConstFloat:  5000,
	ConstBool:   6000,
	LocalInt:    7000,
	LocalFloat:  8000,
	LocalBool:   9000,
	TempInt:     10000,
	TempFloat:   11000,
	TempBool:    12000,
}

// Base returns the lowest address of a segment.
func (s Segment) Base() Address { return segmentBase[s] }

// MemorySize returns one past the highest address any segment can
// produce — the size a flat, directly-indexed memory vector needs to
// hold every address in every segment.
func MemorySize() Address { return TempBool.Base() + segmentWidth }

// ErrSegmentFull is returned by the allocator when a segment's 1000
// addresses are exhausted.
type ErrSegmentFull struct{ Segment Segment }

func (e *ErrSegmentFull) Error() string {
	return fmt.Sprintf("address space exhausted: segment %s has no addresses left", e.Segment)
}

// SegmentOf recovers the segment that an address belongs to.
func SegmentOf(addr Address) (Segment, error) {
	for s := GlobalInt; s <= TempBool; s++ {
		base := segmentBase[s]
		if addr >= base && addr < base+segmentWidth {
			return s, nil
		}
	}
	return 0, fmt.Errorf("address %d falls in no declared segment", addr)
}

// VariableSegment returns the global-variable segment for a type.
func VariableSegment(t types.Type) Segment {
	switch t {
	case types.Int:
		return GlobalInt
	case types.Float:
		return GlobalFloat
	default:
		return GlobalBool
	}
}

// LocalSegment returns the local-variable/parameter segment for a type.
func LocalSegment(t types.Type) Segment {
	switch t {
	case types.Int:
		return LocalInt
	case types.Float:
		return LocalFloat
	default:
		return LocalBool
	}
}

// ConstSegment returns the constant segment for a type.
func ConstSegment(t types.Type) Segment {
	switch t {
	case types.Int:
		return ConstInt
	case types.Float:
		return ConstFloat
	default:
		return ConstBool
	}
}

// TempSegment returns the temporary segment for a type.
func TempSegment(t types.Type) Segment {
	switch t {
	case types.Int:
		return TempInt
	case types.Float:
		return TempFloat
	default:
		return TempBool
	}
}

// TypeOfSegment returns the value type stored in a segment.
func TypeOfSegment(s Segment) types.Type {
	switch s {
	case GlobalInt, ConstInt, LocalInt, TempInt:
		return types.Int
	case GlobalFloat, ConstFloat, LocalFloat, TempFloat:
		return types.Float
	default:
		return types.Bool
	}
}
