package machine

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ondrejsv/ippcode22/lang/types"
)

func init() {
	registerHandler(TYPE, opType)
	registerHandler(READ, opRead)
	registerHandler(WRITE, opWrite)
}

func opType(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolveAllowUnset(instr, 1)
	if err != nil {
		return ctrl{}, err
	}
	if err := e.Frames.Assign(e.dst(instr), types.NewStr(v.Type())); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

// readLine returns the next input line (without its trailing newline) and
// whether one was available. At end of stream it returns ok=false.
func (e *Engine) readLine() (string, bool) {
	line, err := e.in.ReadString('\n')
	if line == "" && err != nil {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	return line, true
}

func opRead(e *Engine, instr Instruction) (ctrl, error) {
	typeTag := instr.Args[1].Type

	line, ok := e.readLine()
	var v types.Value = types.Nil
	if ok {
		switch typeTag {
		case types.TypeInt:
			if n, err := strconv.ParseInt(line, 10, 64); err == nil {
				v = types.Int(n)
			}
		case types.TypeBool:
			v = types.Bool(strings.EqualFold(line, "true"))
		case types.TypeString:
			v = types.NewStr(line)
		}
	}
	if err := e.Frames.Assign(e.dst(instr), v); err != nil {
		return ctrl{}, err
	}
	return next, nil
}

func opWrite(e *Engine, instr Instruction) (ctrl, error) {
	v, err := e.resolve(instr, 0)
	if err != nil {
		return ctrl{}, err
	}
	writeValue(e.out, v)
	return next, nil
}

func writeValue(w io.Writer, v types.Value) {
	switch vv := v.(type) {
	case types.NilType:
		// prints as the empty string
	case types.Bool:
		fmt.Fprint(w, vv.String())
	case types.Int:
		fmt.Fprint(w, vv.String())
	case types.Str:
		fmt.Fprint(w, vv.String())
	default:
		fmt.Fprint(w, v.String())
	}
}
