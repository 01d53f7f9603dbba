package loader_test

import (
	"strings"
	"testing"

	"github.com/ondrejsv/ippcode22/lang/loader"
	"github.com/ondrejsv/ippcode22/lang/machine"
	"github.com/stretchr/testify/require"
)

func TestDecodeValidProgram(t *testing.T) {
	src := `<program language="IPPcode22">
		<instruction order="2" opcode="WRITE"><arg1 type="var">GF@x</arg1></instruction>
		<instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
	</program>`
	table, err := loader.Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	require.Equal(t, machine.DEFVAR, table.At(0).Op, "instructions must be sorted by declared order")
	require.Equal(t, machine.WRITE, table.At(1).Op)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		desc string
		src  string
		code int
	}{
		{"malformed xml", `<program><instruction`, machine.CodeXMLMalformed},
		{"unknown opcode", `<program><instruction order="1" opcode="FROB"></instruction></program>`, machine.CodeXMLStructure},
		{"non-positive order", `<program><instruction order="0" opcode="CREATEFRAME"></instruction></program>`, machine.CodeXMLStructure},
		{"non-integer order", `<program><instruction order="x" opcode="CREATEFRAME"></instruction></program>`, machine.CodeXMLStructure},
		{"wrong arity", `<program><instruction order="1" opcode="CREATEFRAME"><arg1 type="int">1</arg1></instruction></program>`, machine.CodeXMLStructure},
		{"missing operand", `<program><instruction order="1" opcode="MOVE"><arg1 type="var">GF@x</arg1></instruction></program>`, machine.CodeXMLStructure},
		{"unknown type tag", `<program><instruction order="1" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="bogus">1</arg2></instruction></program>`, machine.CodeXMLStructure},
		{"bad var ref", `<program><instruction order="1" opcode="DEFVAR"><arg1 type="var">nope</arg1></instruction></program>`, machine.CodeXMLStructure},
		{"bad bool literal", `<program><instruction order="1" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="bool">True</arg2></instruction></program>`, machine.CodeXMLStructure},
		{
			"duplicate order",
			`<program>
				<instruction order="1" opcode="CREATEFRAME"></instruction>
				<instruction order="1" opcode="PUSHFRAME"></instruction>
			</program>`,
			machine.CodeXMLStructure,
		},
		{
			"duplicate label",
			`<program>
				<instruction order="1" opcode="LABEL"><arg1 type="label">l</arg1></instruction>
				<instruction order="2" opcode="LABEL"><arg1 type="label">l</arg1></instruction>
			</program>`,
			machine.CodeSemantic,
		},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			_, err := loader.Decode(strings.NewReader(c.src))
			require.Error(t, err)
			code, ok := machine.DiagnosticCode(err)
			require.True(t, ok)
			require.Equal(t, c.code, code)
		})
	}
}

func TestDecodeEscapesStringLiteralAtLoadTime(t *testing.T) {
	src := `<program><instruction order="1" opcode="MOVE"><arg1 type="var">GF@x</arg1><arg2 type="string">a\035b</arg2></instruction></program>`
	table, err := loader.Decode(strings.NewReader(src))
	require.NoError(t, err)
	arg := table.At(0).Args[1]
	require.Equal(t, machine.ArgLiteral, arg.Kind)
	require.Equal(t, "a#b", arg.Value.String())
}

func TestDecodeEmptyProgram(t *testing.T) {
	table, err := loader.Decode(strings.NewReader(`<program></program>`))
	require.NoError(t, err)
	require.Equal(t, 0, table.Len())
}
