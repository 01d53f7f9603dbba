package machine

import "github.com/ondrejsv/ippcode22/lang/types"

func init() {
	registerHandler(LT, opLt)
	registerHandler(GT, opGt)
	registerHandler(EQ, opEq)
	registerHandler(LTS, opLts)
	registerHandler(GTS, opGts)
	registerHandler(EQS, opEqs)
}

// cmpOp is which ordering relation a comparison handler computes.
type cmpOp byte

const (
	cmpLt cmpOp = iota
	cmpGt
	cmpEq
)

// compareValues implements the shared rules of LT/GT/EQ (spec.md §4.3
// Comparisons): LT/GT accept (int,int), (bool,bool), (string,string) of
// matching type and reject nil outright; EQ additionally accepts nil
// against anything, equal iff both sides are nil.
func compareValues(op cmpOp, x, y types.Value) (bool, error) {
	_, xNil := x.(types.NilType)
	_, yNil := y.(types.NilType)
	if xNil || yNil {
		if op != cmpEq {
			return false, newDiagnostic(CodeTypeMismatch, "nil is not an ordered operand")
		}
		return xNil && yNil, nil
	}

	if x.Type() != y.Type() {
		return false, newDiagnostic(CodeTypeMismatch, "cannot compare %s with %s", x.Type(), y.Type())
	}

	switch a := x.(type) {
	case types.Int:
		b := y.(types.Int)
		switch op {
		case cmpLt:
			return a < b, nil
		case cmpGt:
			return a > b, nil
		default:
			return a == b, nil
		}
	case types.Bool:
		b := y.(types.Bool)
		switch op {
		case cmpLt:
			return !bool(a) && bool(b), nil
		case cmpGt:
			return bool(a) && !bool(b), nil
		default:
			return a == b, nil
		}
	case types.Str:
		b := y.(types.Str)
		cmp := compareRunes(a, b)
		switch op {
		case cmpLt:
			return cmp < 0, nil
		case cmpGt:
			return cmp > 0, nil
		default:
			return cmp == 0, nil
		}
	default:
		return false, newDiagnostic(CodeTypeMismatch, "type %s is not comparable", x.Type())
	}
}

// compareRunes compares two code-point sequences lexicographically, as
// required for string LT/GT/EQ.
func compareRunes(a, b types.Str) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func binCompare(e *Engine, instr Instruction, op cmpOp) (ctrl, error) {
	x, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	y, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	result, err := compareValues(op, x, y)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), types.Bool(result)); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opLt(e *Engine, instr Instruction) (ctrl, error) { return binCompare(e, instr, cmpLt) }
func opGt(e *Engine, instr Instruction) (ctrl, error) { return binCompare(e, instr, cmpGt) }
func opEq(e *Engine, instr Instruction) (ctrl, error) { return binCompare(e, instr, cmpEq) }

func stackCompare(e *Engine, op cmpOp) (ctrl, error) {
	y, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	x, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	result, err := compareValues(op, x, y)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(types.Bool(result))
	return next, nil
}

func opLts(e *Engine, _ Instruction) (ctrl, error) { return stackCompare(e, cmpLt) }
func opGts(e *Engine, _ Instruction) (ctrl, error) { return stackCompare(e, cmpGt) }
func opEqs(e *Engine, _ Instruction) (ctrl, error) { return stackCompare(e, cmpEq) }
