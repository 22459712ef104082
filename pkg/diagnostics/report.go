package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/babyduck-lang/babyduck/pkg/symbols"
)

var (
	kindColor  = color.New(color.FgRed, color.Bold)
	indexColor = color.New(color.FgHiBlack)
	opColor    = color.New(color.FgCyan)
)

// Report writes a one-line, colorized rendering of a compile or
// runtime error to w: the error's kind in bold red, followed by its
// plain Error() text. Output degrades to plain text automatically when
// w is not a terminal (fatih/color detects this for os.Stdout/Stderr;
// for any other writer color codes are stripped by NoColor callers).
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	if kind := Kind(err); kind != "" {
		fmt.Fprintf(w, "%s: %s\n", kindColor.Sprint(kind), err.Error())
		return
	}
	fmt.Fprintf(w, "%s: %s\n", kindColor.Sprint("error"), err.Error())
}

// AddressLabel renders an address the way the disassembler does: an
// abbreviated segment tag plus the offset within it, e.g. "G.int[3]",
// "T.float[12]", "C.bool[0]". NoOperand (-1) renders as "-".
const noOperand = -1

var segmentTag = map[symbols.Segment]string{
	symbols.GlobalInt:   "G.int",
	symbols.GlobalFloat: "G.float",
	symbols.GlobalBool:  "G.bool",
	symbols.ConstInt:    "C.int",
	symbols.ConstFloat:  "C.float",
	symbols.ConstBool:   "C.bool",
	symbols.LocalInt:    "L.int",
	symbols.LocalFloat:  "L.float",
	symbols.LocalBool:   "L.bool",
	symbols.TempInt:     "T.int",
	symbols.TempFloat:   "T.float",
	symbols.TempBool:    "T.bool",
}

func AddressLabel(addr int32) string {
	if addr == noOperand {
		return "-"
	}
	seg, err := symbols.SegmentOf(symbols.Address(addr))
	if err != nil {
		return indexColor.Sprintf("?%d", addr)
	}
	offset := int32(addr) - int32(seg.Base())
	return fmt.Sprintf("%s[%d]", segmentTag[seg], offset)
}
