package machine_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ondrejsv/ippcode22/lang/loader"
	"github.com/ondrejsv/ippcode22/lang/machine"
	"github.com/stretchr/testify/require"
)

// run decodes src as an IPPcode22 XML program, executes it against stdin,
// and returns its stdout and the error returned by Run (nil,
// *machine.Diagnostic or *machine.ExitError); exitCode maps that error to the
// exit code a CLI wrapper would report for it.
func run(t *testing.T, src, stdin string) (stdout string, err error) {
	t.Helper()
	table, lerr := loader.Decode(strings.NewReader(src))
	require.NoError(t, lerr)

	var out, errOut bytes.Buffer
	eng := machine.NewEngine(table, strings.NewReader(stdin), &out, &errOut)
	err = eng.Run()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *machine.ExitError
	if e, ok := err.(*machine.ExitError); ok {
		ee = e
		return ee.Code
	}
	code, ok := machine.DiagnosticCode(err)
	require.True(t, ok, "error %v is neither ExitError nor Diagnostic", err)
	return code
}

func TestScenarioHelloWorld(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@g</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@g</arg1><arg2 type="string">hi</arg2></instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@g</arg1></instruction>
		<instruction order="4" opcode="EXIT"><arg1 type="int">0</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.IsType(t, &machine.ExitError{}, err)
	require.Equal(t, 0, exitCode(t, err))
	require.Equal(t, "hi", out)
}

func TestScenarioArithmeticAndCompare(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@a</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@a</arg1><arg2 type="int">7</arg2></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@b</arg1></instruction>
		<instruction order="4" opcode="MOVE"><arg1 type="var">GF@b</arg1><arg2 type="int">5</arg2></instruction>
		<instruction order="5" opcode="DEFVAR"><arg1 type="var">GF@c</arg1></instruction>
		<instruction order="6" opcode="SUB"><arg1 type="var">GF@c</arg1><arg2 type="var">GF@a</arg2><arg3 type="var">GF@b</arg3></instruction>
		<instruction order="7" opcode="WRITE"><arg1 type="var">GF@c</arg1></instruction>
		<instruction order="8" opcode="DEFVAR"><arg1 type="var">GF@d</arg1></instruction>
		<instruction order="9" opcode="LT"><arg1 type="var">GF@d</arg1><arg2 type="var">GF@a</arg2><arg3 type="var">GF@b</arg3></instruction>
		<instruction order="10" opcode="WRITE"><arg1 type="var">GF@d</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "2false", out)
}

func TestScenarioFramesAndLabels(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="int">1</arg2></instruction>
		<instruction order="3" opcode="CREATEFRAME"></instruction>
		<instruction order="4" opcode="DEFVAR"><arg1 type="var">TF@y</arg1></instruction>
		<instruction order="5" opcode="PUSHFRAME"></instruction>
		<instruction order="6" opcode="MOVE"><arg1 type="var">LF@y</arg1><arg2 type="int">2</arg2></instruction>
		<instruction order="7" opcode="ADD"><arg1 type="var">GF@x</arg1><arg2 type="var">GF@x</arg2><arg3 type="var">LF@y</arg3></instruction>
		<instruction order="8" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "3", out)
}

func TestScenarioCallReturn(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="JUMP"><arg1 type="label">main</arg1></instruction>
		<instruction order="2" opcode="LABEL"><arg1 type="label">f</arg1></instruction>
		<instruction order="3" opcode="ADD"><arg1 type="var">GF@x</arg1><arg2 type="var">GF@x</arg2><arg3 type="int">10</arg3></instruction>
		<instruction order="4" opcode="RETURN"></instruction>
		<instruction order="5" opcode="LABEL"><arg1 type="label">main</arg1></instruction>
		<instruction order="6" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="7" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="int">5</arg2></instruction>
		<instruction order="8" opcode="CALL"><arg1 type="label">f</arg1></instruction>
		<instruction order="9" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "15", out)
}

func TestScenarioStringOps(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@s</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@s</arg1><arg2 type="string">ab\092c</arg2></instruction>
		<instruction order="3" opcode="WRITE"><arg1 type="var">GF@s</arg1></instruction>
		<instruction order="4" opcode="DEFVAR"><arg1 type="var">GF@n</arg1></instruction>
		<instruction order="5" opcode="STRLEN"><arg1 type="var">GF@n</arg1><arg2 type="var">GF@s</arg2></instruction>
		<instruction order="6" opcode="WRITE"><arg1 type="var">GF@n</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, `ab\c4`, out)
}

func TestScenarioDivByZero(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@q</arg1></instruction>
		<instruction order="2" opcode="IDIV"><arg1 type="var">GF@q</arg1><arg2 type="int">1</arg2><arg3 type="int">0</arg3></instruction>
	</program>`
	_, err := run(t, src, "")
	require.Equal(t, machine.CodeBadValue, exitCode(t, err))
}

func TestBoundaryBehaviors(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		code int
	}{
		{"int2char negative", withUnary("INT2CHAR", `<arg2 type="int">-1</arg2>`), machine.CodeStringOp},
		{"int2char too large", withUnary("INT2CHAR", `<arg2 type="int">1114112</arg2>`), machine.CodeStringOp},
		{"stri2int out of range high", withStri2int(3), machine.CodeStringOp},
		{"stri2int negative", withStri2int(-1), machine.CodeStringOp},
		{"exit too high", withExit(50), machine.CodeBadValue},
		{"exit negative", withExit(-1), machine.CodeBadValue},
		{"pops empty stack", `<program language="IPPcode22">
			<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
			<instruction order="2" opcode="POPS"><arg1 type="var">GF@x</arg1></instruction>
		</program>`, machine.CodeMissingValue},
		{"return empty call stack", `<program language="IPPcode22">
			<instruction order="1" opcode="RETURN"></instruction>
		</program>`, machine.CodeMissingValue},
		{"lf before pushframe", `<program language="IPPcode22">
			<instruction order="1" opcode="DEFVAR"><arg1 type="var">LF@x</arg1></instruction>
		</program>`, machine.CodeFrame},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, err := run(t, c.src, "")
			require.Equal(t, c.code, exitCode(t, err))
		})
	}
}

func withUnary(opcode, arg2 string) string {
	return `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="` + opcode + `"><arg1 type="var">GF@x</arg1>` + arg2 + `</instruction>
	</program>`
}

func withStri2int(idx int) string {
	idxStr := "3"
	if idx < 0 {
		idxStr = "-1"
	}
	return `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@s</arg1></instruction>
		<instruction order="2" opcode="MOVE"><arg1 type="var">GF@s</arg1><arg2 type="string">abc</arg2></instruction>
		<instruction order="3" opcode="DEFVAR"><arg1 type="var">GF@n</arg1></instruction>
		<instruction order="4" opcode="STRI2INT"><arg1 type="var">GF@n</arg1><arg2 type="var">GF@s</arg2><arg3 type="int">` + idxStr + `</arg3></instruction>
	</program>`
}

func withExit(n int) string {
	var s string
	if n < 0 {
		s = "-1"
	} else {
		s = "50"
	}
	return `<program language="IPPcode22">
		<instruction order="1" opcode="EXIT"><arg1 type="int">` + s + `</arg1></instruction>
	</program>`
}

func TestReadFallsBackToNilOnEOF(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="2" opcode="READ"><arg1 type="var">GF@x</arg1><arg2 type="type">int</arg2></instruction>
		<instruction order="3" opcode="DPRINT"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="4" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "", out)
}

func TestPushsPopsRoundTrip(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="1" opcode="PUSHS"><arg1 type="int">42</arg1></instruction>
		<instruction order="2" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="3" opcode="POPS"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="4" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	out, err := run(t, src, "")
	require.NoError(t, err)
	require.Equal(t, "42", out)
}
