package machine

import (
	"bufio"
	"io"

	"github.com/ondrejsv/ippcode22/lang/types"
)

// Engine bundles every piece of mutable interpreter state — frames, the
// operand and call stacks, the instruction table and pointer — into one
// owned value, rather than the module-level singletons of the source this
// was adapted from. Handlers take the Engine and the Instruction explicitly;
// there is no hidden global state, which makes running multiple independent
// programs in one process trivial.
type Engine struct {
	Table    *InstructionTable
	Frames   *FrameRegistry
	Operands *OperandStack
	Calls    *CallStack

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	pos int // index into Table's sorted instruction slice
}

// NewEngine returns an Engine ready to Run table, reading READ input from in
// and writing WRITE/DPRINT/BREAK output to out/errOut.
func NewEngine(table *InstructionTable, in io.Reader, out, errOut io.Writer) *Engine {
	return &Engine{
		Table:    table,
		Frames:   NewFrameRegistry(),
		Operands: &OperandStack{},
		Calls:    &CallStack{},
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
	}
}

// Run executes the program to completion: it dispatches the instruction at
// the current position, honours any control transfer the handler requests,
// and otherwise advances by one. It returns nil if execution runs past the
// last instruction, *ExitError if an EXIT instruction ran, or a *Diagnostic
// on the first runtime failure.
func (e *Engine) Run() error {
	for e.pos < e.Table.Len() {
		instr := e.Table.At(e.pos)
		h, ok := handlers[instr.Op]
		if !ok {
			return newDiagnostic(CodeXMLStructure, "unknown opcode %s", instr.Op)
		}
		c, err := h(e, instr)
		if err != nil {
			return err
		}
		switch c.kind {
		case ctrlNext:
			e.pos++
		case ctrlJump:
			pos, ok := e.Table.PosOf(c.order)
			if !ok {
				return newDiagnostic(CodeSemantic, "jump target order %d does not exist", c.order)
			}
			e.pos = pos
		case ctrlJumpPos:
			e.pos = c.pos
		case ctrlExit:
			return &ExitError{Code: c.exitCode}
		}
	}
	return nil
}

// resolve returns the value denoted by operand i of instr: if it is a
// variable reference, it is read from the frame registry (undeclared and
// missing-value both fail here, undeclared taking precedence); otherwise
// the argument already carries its value.
func (e *Engine) resolve(instr Instruction, i int) (types.Value, error) {
	arg := instr.Args[i]
	switch arg.Kind {
	case ArgVar:
		v, err := e.Frames.Read(arg.Var)
		if err != nil {
			return nil, err
		}
		if v == types.Unset {
			return nil, newDiagnostic(CodeMissingValue, "variable %s has no value", arg.Var)
		}
		return v, nil
	case ArgLiteral:
		return arg.Value, nil
	default:
		return nil, newDiagnostic(CodeXMLStructure, "operand %d is not a value", i)
	}
}

// resolveAllowUnset is like resolve but returns types.Unset rather than
// failing when a variable was declared but never assigned. Only TYPE uses
// this: it must distinguish "no value yet" ("") from every other type.
func (e *Engine) resolveAllowUnset(instr Instruction, i int) (types.Value, error) {
	arg := instr.Args[i]
	switch arg.Kind {
	case ArgVar:
		return e.Frames.Read(arg.Var)
	case ArgLiteral:
		return arg.Value, nil
	default:
		return nil, newDiagnostic(CodeXMLStructure, "operand %d is not a value", i)
	}
}

func (e *Engine) dst(instr Instruction) VarRef { return instr.Args[0].Var }
