package machine

import (
	"fmt"

	"github.com/ondrejsv/ippcode22/lang/types"
)

func init() {
	registerHandler(DPRINT, opDprint)
	registerHandler(BREAK, opBreak)
}

// opDprint writes a human-readable rendering of its operand to stderr. It
// never touches engine state and never fails on the value itself.
func opDprint(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 0)
	if err != nil {
		return ctrl{}, err
	}
	switch vv := v.(type) {
	case types.NilType:
	case types.Str:
		fmt.Fprintln(e.errOut, types.FormatEscapes(vv))
	default:
		fmt.Fprintln(e.errOut, v.String())
	}
	return next, nil
}

// opBreak dumps interpreter state to stderr: the current position, the
// instruction's declared order, and every addressable frame's variable
// names, sorted for reproducibility.
func opBreak(e *Engine, instr Instruction) (ctrl, error) {
	fmt.Fprintf(e.errOut, "-- BREAK at position %d --\n", e.pos)
	fmt.Fprintf(e.errOut, "current order: %d\n", instr.Order)
	fmt.Fprintf(e.errOut, "call stack depth: %d\n", e.Calls.Len())
	fmt.Fprintf(e.errOut, "operand stack depth: %d\n", e.Operands.Len())
	fmt.Fprintf(e.errOut, "local frame depth: %d\n", e.Frames.LocalDepth())
	for _, snap := range e.Frames.DebugFrames() {
		fmt.Fprintf(e.errOut, "%s: %v\n", snap.Tag, snap.Names)
	}
	return next, nil
}
