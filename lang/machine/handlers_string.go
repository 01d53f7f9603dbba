package machine

import (
	"unicode/utf8"

	"github.com/ondrejsv/ippcode22/lang/types"
)

func init() {
	registerHandler(INT2CHAR, opInt2char)
	registerHandler(STRI2INT, opStri2int)
	registerHandler(INT2CHARS, opInt2chars)
	registerHandler(STRI2INTS, opStri2ints)
	registerHandler(CONCAT, opConcat)
	registerHandler(STRLEN, opStrlen)
	registerHandler(GETCHAR, opGetchar)
	registerHandler(SETCHAR, opSetchar)
}

func asStr(v types.Value) (types.Str, error) {
	s, ok := v.(types.Str)
	if !ok {
		return nil, newDiagnostic(CodeTypeMismatch, "expected string operand, got %s", v.Type())
	}
	return s, nil
}

// int2char converts an integer code point to a one-rune string. n must be a
// valid Unicode scalar value (0..0x10FFFF, excluding surrogates).
func int2char(n int64) (types.Str, error) {
	r := rune(n)
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(r) {
		return nil, newDiagnostic(CodeStringOp, "INT2CHAR: %d is not a valid Unicode scalar value", n)
	}
	return types.Str{r}, nil
}

func opInt2char(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	n, err := asInt(v)
	if err != nil {
		return ctrl{}, err
	}
	r, err := int2char(n)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), r); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opInt2chars(e *Engine, _ Instruction) (ctrl, error) {
	v, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	n, err := asInt(v)
	if err != nil {
		return ctrl{}, err
	}
	r, err := int2char(n)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(r)
	return next, nil
}

// stri2int returns the code point at position i of s. i must be within
// [0, len(s)).
func stri2int(s types.Str, i int64) (types.Int, error) {
	if i < 0 || i >= int64(len(s)) {
		return 0, newDiagnostic(CodeStringOp, "STRI2INT: index %d out of range", i)
	}
	return types.Int(s[i]), nil
}

func opStri2int(e *Engine, instr Instruction) (ctrl, error) {
	sv, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	s, err := asStr(sv)
	if err != nil {
		return ctrl{}, err
	}
	iv, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	i, err := asInt(iv)
	if err != nil {
		return ctrl{}, err
	}
	r, err := stri2int(s, i)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), r); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opStri2ints(e *Engine, _ Instruction) (ctrl, error) {
	iv, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	i, err := asInt(iv)
	if err != nil {
		return ctrl{}, err
	}
	sv, err := e.Operands.Pop()
	if err != nil {
		return ctrl{}, err
	}
	s, err := asStr(sv)
	if err != nil {
		return ctrl{}, err
	}
	r, err := stri2int(s, i)
	if err != nil {
		return ctrl{}, err
	}
	e.Operands.Push(r)
	return next, nil
}

func opConcat(e *Engine, instr Instruction) (ctrl, error) {
	av, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	a, err := asStr(av)
	if err != nil {
		return ctrl{}, err
	}
	bv, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	b, err := asStr(bv)
	if err != nil {
		return ctrl{}, err
	}
	r := make(types.Str, 0, len(a)+len(b))
	r = append(r, a...)
	r = append(r, b...)
	if err := e.Frames.Assign(e.dst(instr), r); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opStrlen(e *Engine, instr Instruction) (ctrl, error) {
	sv, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	s, err := asStr(sv)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), types.Int(s.Len())); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opGetchar(e *Engine, instr Instruction) (ctrl, error) {
	sv, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	s, err := asStr(sv)
	if err != nil {
		return ctrl{}, err
	}
	iv, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	i, err := asInt(iv)
	if err != nil {
		return ctrl{}, err
	}
	if i < 0 || i >= int64(len(s)) {
		return ctrl{}, newDiagnostic(CodeStringOp, "GETCHAR: index %d out of range", i)
	}
	if err := e.Frames.Assign(e.dst(instr), types.Str{s[i]}); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

// SETCHAR requires the destination variable to already hold a string; type
// mismatch is reported as 53, an out-of-range index or empty replacement
// string as 58 (spec.md §9 Open Question #3).
func opSetchar(e *Engine, instr Instruction) (ctrl, error) {
	dst := e.dst(instr)
	cur, err := e.Frames.Read(dst)
	if err != nil {
		return ctrl{}, err
	}
	if cur == types.Unset {
		return ctrl{}, newDiagnostic(CodeMissingValue, "variable %s has no value", dst)
	}
	v, err := asStr(cur)
	if err != nil {
		return ctrl{}, err
	}

	iv, err := e.resolve(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	i, err := asInt(iv)
	if err != nil {
		return ctrl{}, err
	}

	cv, err := e.resolve(instr, 2)
	if err != nil {
		return ctrl{}, err
	}
	c, err := asStr(cv)
	if err != nil {
		return ctrl{}, err
	}

	if i < 0 || i >= int64(len(v)) {
		return ctrl{}, newDiagnostic(CodeStringOp, "SETCHAR: index %d out of range", i)
	}
	if len(c) == 0 {
		return ctrl{}, newDiagnostic(CodeStringOp, "SETCHAR: replacement string is empty")
	}

	result := make(types.Str, len(v))
	copy(result, v)
	result[i] = c[0]
	if err := e.Frames.Assign(dst, result); err != nil {
		return ctrl{}, err
	}
	return next, nil
}
