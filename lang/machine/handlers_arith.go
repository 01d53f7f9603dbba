package machine

import "github.com/ondrejsv/ippcode22/lang/types"

func init() {
	registerHandler(ADD, opAdd)
	registerHandler(SUB, opSub)
	registerHandler(MUL, opMul)
	registerHandler(IDIV, opIdiv)
	registerHandler(ADDS, opAdds)
	registerHandler(SUBS, opSubs)
	registerHandler(MULS, opMuls)
	registerHandler(IDIVS, opIdivs)
}

func asInt(v types.Value) (int64, error) {
	i, ok := v.(types.Int)
	if !ok {
		return 0, newDiagnostic(CodeTypeMismatch, "expected int operand, got %s", v.Type())
	}
	return int64(i), nil
}

func add(a, b int64) (int64, error) { return a + b, nil }
func sub(a, b int64) (int64, error) { return a - b, nil }
func mul(a, b int64) (int64, error) { return a * b, nil }

// idiv implements integer division with the division-by-zero check
// required by the spec. Results are floored, matching the original
// implementation's use of Python's `//`.
func idiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, newDiagnostic(CodeBadValue, "IDIV: division by zero")
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q, nil
}

func arithTernary(e *Engine, instr Instruction, f func(a, b int64) (int64, error)) (ctrl, error) {
	x, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	a, err := asInt(x)
	if err != nil {
		return ctrl{}, err
	}
	y, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	b, err := asInt(y)
	if err != nil {
		return ctrl{}, err
	}
	r, err := f(a, b)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), types.Int(r)); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opAdd(e *Engine, instr Instruction) (ctrl, error)  { return arithTernary(e, instr, add) }
func opSub(e *Engine, instr Instruction) (ctrl, error)  { return arithTernary(e, instr, sub) }
func opMul(e *Engine, instr Instruction) (ctrl, error)  { return arithTernary(e, instr, mul) }
func opIdiv(e *Engine, instr Instruction) (ctrl, error) { return arithTernary(e, instr, idiv) }

// arithStack pops the right-hand operand first, then the left-hand operand,
// and pushes one result, as required for the *S opcode forms.
func arithStack(e *Engine, f func(a, b int64) (int64, error)) (ctrl, error) {
	y, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	x, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	a, err := asInt(x)
	if err != nil {
		return ctrl{}, err
	}
	b, err := asInt(y)
	if err != nil {
		return ctrl{}, err
	}
	r, err := f(a, b)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(types.Int(r))
	return next, nil
}

func opAdds(e *Engine, _ Instruction) (ctrl, error)  { return arithStack(e, add) }
func opSubs(e *Engine, _ Instruction) (ctrl, error)  { return arithStack(e, sub) }
func opMuls(e *Engine, _ Instruction) (ctrl, error)  { return arithStack(e, mul) }
func opIdivs(e *Engine, _ Instruction) (ctrl, error) { return arithStack(e, idiv) }
