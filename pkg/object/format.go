package object

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/babyduck-lang/babyduck/pkg/quad"
	"github.com/babyduck-lang/babyduck/pkg/symbols"
	"github.com/babyduck-lang/babyduck/pkg/types"
)

// File format constants: a fixed header, then one section per table,
// each prefixed with its own element count.
const (
	// MagicNumber is the file signature for .bdo files: "BDOP".
	MagicNumber uint32 = 0x42444F50

	// FormatVersion is the current object file format version.
	FormatVersion uint32 = 1

	formatFlags uint32 = 0
)

const (
	constTypeInt   byte = 0x01
	constTypeFloat byte = 0x02
	constTypeBool  byte = 0x03
)

// Encode serializes an object Program to w in the .bdo binary format.
func Encode(p *Program, w io.Writer) error {
	if err := writeHeader(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, p.MainStart); err != nil {
		return fmt.Errorf("write main start: %w", err)
	}
	if err := writeResourceCounts(w, p.Globals); err != nil {
		return fmt.Errorf("write global resources: %w", err)
	}
	if err := writeQuads(w, p.Quads); err != nil {
		return fmt.Errorf("write quads: %w", err)
	}
	if err := writeStrings(w, p.Strings); err != nil {
		return fmt.Errorf("write strings: %w", err)
	}
	if err := writeConstants(w, p.Constants); err != nil {
		return fmt.Errorf("write constants: %w", err)
	}
	if err := writeFunctions(w, p.Functions); err != nil {
		return fmt.Errorf("write functions: %w", err)
	}
	return nil
}

// Decode reads a .bdo file from r and reconstructs its object Program.
func Decode(r io.Reader) (*Program, error) {
	version, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported object file version: %d (expected %d)", version, FormatVersion)
	}

	p := &Program{}
	if err := binary.Read(r, binary.LittleEndian, &p.MainStart); err != nil {
		return nil, fmt.Errorf("read main start: %w", err)
	}
	if p.Globals, err = readResourceCounts(r); err != nil {
		return nil, fmt.Errorf("read global resources: %w", err)
	}
	if p.Quads, err = readQuads(r); err != nil {
		return nil, fmt.Errorf("read quads: %w", err)
	}
	if p.Strings, err = readStrings(r); err != nil {
		return nil, fmt.Errorf("read strings: %w", err)
	}
	if p.Constants, err = readConstants(r); err != nil {
		return nil, fmt.Errorf("read constants: %w", err)
	}
	if p.Functions, err = readFunctions(r); err != nil {
		return nil, fmt.Errorf("read functions: %w", err)
	}
	return p, nil
}

func writeHeader(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, MagicNumber); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, FormatVersion); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, formatFlags)
}

func readHeader(r io.Reader) (uint32, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return 0, err
	}
	if magic != MagicNumber {
		return 0, fmt.Errorf("invalid magic number: 0x%08X (expected 0x%08X)", magic, MagicNumber)
	}
	var version, flags uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &flags); err != nil {
		return 0, err
	}
	return version, nil
}

func writeQuads(w io.Writer, quads []quad.Quad) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(quads))); err != nil {
		return err
	}
	for i, q := range quads {
		if err := binary.Write(w, binary.LittleEndian, byte(q.Op)); err != nil {
			return fmt.Errorf("quad %d op: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, q.Arg1); err != nil {
			return fmt.Errorf("quad %d arg1: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, q.Arg2); err != nil {
			return fmt.Errorf("quad %d arg2: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, q.Res); err != nil {
			return fmt.Errorf("quad %d res: %w", i, err)
		}
	}
	return nil
}

func readQuads(r io.Reader) ([]quad.Quad, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	quads := make([]quad.Quad, count)
	for i := uint32(0); i < count; i++ {
		var op byte
		if err := binary.Read(r, binary.LittleEndian, &op); err != nil {
			return nil, fmt.Errorf("quad %d op: %w", i, err)
		}
		q := quad.Quad{Op: quad.Op(op)}
		if err := binary.Read(r, binary.LittleEndian, &q.Arg1); err != nil {
			return nil, fmt.Errorf("quad %d arg1: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &q.Arg2); err != nil {
			return nil, fmt.Errorf("quad %d arg2: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &q.Res); err != nil {
			return nil, fmt.Errorf("quad %d res: %w", i, err)
		}
		quads[i] = q
	}
	return quads, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readString(r io.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeStrings(w io.Writer, strs []string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(strs))); err != nil {
		return err
	}
	for i, s := range strs {
		if err := writeString(w, s); err != nil {
			return fmt.Errorf("string %d: %w", i, err)
		}
	}
	return nil
}

func readStrings(r io.Reader) ([]string, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	strs := make([]string, count)
	for i := uint32(0); i < count; i++ {
		s, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("string %d: %w", i, err)
		}
		strs[i] = s
	}
	return strs, nil
}

func writeConstType(t types.Type) byte {
	switch t {
	case types.Float:
		return constTypeFloat
	case types.Bool:
		return constTypeBool
	default:
		return constTypeInt
	}
}

func readConstType(b byte) types.Type {
	switch b {
	case constTypeFloat:
		return types.Float
	case constTypeBool:
		return types.Bool
	default:
		return types.Int
	}
}

func writeConstants(w io.Writer, entries []ConstEntry) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}
	for i, e := range entries {
		if err := binary.Write(w, binary.LittleEndian, int32(e.Address)); err != nil {
			return fmt.Errorf("constant %d address: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, writeConstType(e.Type)); err != nil {
			return fmt.Errorf("constant %d type: %w", i, err)
		}
		switch v := e.Value.(type) {
		case int64:
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("constant %d value: %w", i, err)
			}
		case float64:
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("constant %d value: %w", i, err)
			}
		case bool:
			var b byte
			if v {
				b = 1
			}
			if err := binary.Write(w, binary.LittleEndian, b); err != nil {
				return fmt.Errorf("constant %d value: %w", i, err)
			}
		default:
			return fmt.Errorf("constant %d: unsupported value type %T", i, e.Value)
		}
	}
	return nil
}

func readConstants(r io.Reader) ([]ConstEntry, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	entries := make([]ConstEntry, count)
	for i := uint32(0); i < count; i++ {
		var addr int32
		if err := binary.Read(r, binary.LittleEndian, &addr); err != nil {
			return nil, fmt.Errorf("constant %d address: %w", i, err)
		}
		var typeByte byte
		if err := binary.Read(r, binary.LittleEndian, &typeByte); err != nil {
			return nil, fmt.Errorf("constant %d type: %w", i, err)
		}
		t := readConstType(typeByte)
		e := ConstEntry{Address: symbols.Address(addr), Type: t}
		switch t {
		case types.Float:
			var v float64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("constant %d value: %w", i, err)
			}
			e.Value = v
		case types.Bool:
			var b byte
			if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
				return nil, fmt.Errorf("constant %d value: %w", i, err)
			}
			e.Value = b != 0
		default:
			var v int64
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, fmt.Errorf("constant %d value: %w", i, err)
			}
			e.Value = v
		}
		entries[i] = e
	}
	return entries, nil
}

func writeResourceCounts(w io.Writer, rc symbols.ResourceCounts) error {
	for _, v := range [][3]int{rc.Vars, rc.Params, rc.Temps} {
		for _, n := range v {
			if err := binary.Write(w, binary.LittleEndian, int32(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readResourceCounts(r io.Reader) (symbols.ResourceCounts, error) {
	var rc symbols.ResourceCounts
	for _, group := range []*[3]int{&rc.Vars, &rc.Params, &rc.Temps} {
		for i := range group {
			var n int32
			if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
				return rc, err
			}
			group[i] = int(n)
		}
	}
	return rc, nil
}

func writeFunctions(w io.Writer, fns []FunctionEntry) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(fns))); err != nil {
		return err
	}
	for i, fn := range fns {
		if err := writeString(w, fn.Name); err != nil {
			return fmt.Errorf("function %d name: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, fn.StartQuad); err != nil {
			return fmt.Errorf("function %d start quad: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(fn.Params))); err != nil {
			return fmt.Errorf("function %d param count: %w", i, err)
		}
		for _, p := range fn.Params {
			if err := binary.Write(w, binary.LittleEndian, writeConstType(p.Type)); err != nil {
				return fmt.Errorf("function %d param type: %w", i, err)
			}
			if err := binary.Write(w, binary.LittleEndian, int32(p.Address)); err != nil {
				return fmt.Errorf("function %d param address: %w", i, err)
			}
		}
		if err := writeResourceCounts(w, fn.Resources); err != nil {
			return fmt.Errorf("function %d resources: %w", i, err)
		}
	}
	return nil
}

func readFunctions(r io.Reader) ([]FunctionEntry, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	fns := make([]FunctionEntry, count)
	for i := uint32(0); i < count; i++ {
		name, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("function %d name: %w", i, err)
		}
		fn := FunctionEntry{Name: name}
		if err := binary.Read(r, binary.LittleEndian, &fn.StartQuad); err != nil {
			return nil, fmt.Errorf("function %d start quad: %w", i, err)
		}
		var paramCount uint32
		if err := binary.Read(r, binary.LittleEndian, &paramCount); err != nil {
			return nil, fmt.Errorf("function %d param count: %w", i, err)
		}
		for j := uint32(0); j < paramCount; j++ {
			var typeByte byte
			if err := binary.Read(r, binary.LittleEndian, &typeByte); err != nil {
				return nil, fmt.Errorf("function %d param %d type: %w", i, j, err)
			}
			var addr int32
			if err := binary.Read(r, binary.LittleEndian, &addr); err != nil {
				return nil, fmt.Errorf("function %d param %d address: %w", i, j, err)
			}
			fn.Params = append(fn.Params, ParamEntry{Type: readConstType(typeByte), Address: symbols.Address(addr)})
		}
		if fn.Resources, err = readResourceCounts(r); err != nil {
			return nil, fmt.Errorf("function %d resources: %w", i, err)
		}
		fns[i] = fn
	}
	return fns, nil
}
