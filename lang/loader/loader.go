// Package loader parses an IPPcode22 source document and builds the
// machine.InstructionTable the engine runs. It performs the structural
// validation of the load phase — opcode names, arity, operand type-tags,
// order positivity/uniqueness, label registration. It does not check that an
// operand's kind fits its position or that a jump target label exists; the
// engine reports those at run time.
package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/ondrejsv/ippcode22/lang/machine"
	"github.com/ondrejsv/ippcode22/lang/types"
)

// xmlProgram mirrors the root element: a program with zero or more
// instructions in document order (their relative order in the file carries
// no semantic meaning; only the order attribute does).
type xmlProgram struct {
	XMLName      xml.Name         `xml:"program"`
	Language     string           `xml:"language,attr"`
	Instructions []xmlInstruction `xml:"instruction"`
}

type xmlInstruction struct {
	Order  string   `xml:"order,attr"`
	Opcode string   `xml:"opcode,attr"`
	Args   []xmlArg `xml:",any"`
}

type xmlArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Value   string `xml:",chardata"`
}

// Decode reads an entire IPPcode22 XML document from r and returns a
// finalized InstructionTable ready for machine.NewEngine. It reports
// malformed XML as machine.CodeXMLMalformed and every structural violation
// (bad arity, unknown opcode, bad order, bad type-tag, duplicate label) as
// machine.CodeXMLStructure or machine.CodeSemantic, matching §7 of the
// diagnostic taxonomy.
func Decode(r io.Reader) (*machine.InstructionTable, error) {
	var doc xmlProgram
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, diag(machine.CodeXMLMalformed, "malformed XML: %v", err)
	}

	table := machine.NewInstructionTable()
	for _, xi := range doc.Instructions {
		instr, err := decodeInstruction(xi)
		if err != nil {
			return nil, err
		}
		if err := table.Append(instr); err != nil {
			return nil, err
		}
		if instr.Op == machine.LABEL {
			if err := table.AddLabel(instr.Args[0].Label, instr.Order); err != nil {
				return nil, err
			}
		}
	}
	table.Finalize()
	return table, nil
}

func diag(code int, format string, args ...any) error {
	return machine.NewDiagnostic(code, fmt.Sprintf(format, args...))
}

func decodeInstruction(xi xmlInstruction) (machine.Instruction, error) {
	op, ok := machine.ParseOpcode(xi.Opcode)
	if !ok {
		return machine.Instruction{}, diag(machine.CodeXMLStructure, "unknown opcode %q", xi.Opcode)
	}

	order, err := strconv.Atoi(xi.Order)
	if err != nil || order <= 0 {
		return machine.Instruction{}, diag(machine.CodeXMLStructure, "instruction order %q is not a positive integer", xi.Order)
	}

	wantArity, _ := machine.Arity(op)
	args, err := decodeArgs(op, xi.Args, wantArity)
	if err != nil {
		return machine.Instruction{}, err
	}

	return machine.Instruction{Op: op, Order: order, Args: args}, nil
}

// argElemNames are the only legal argument element names, in operand
// position order.
var argElemNames = [3]string{"arg1", "arg2", "arg3"}

func decodeArgs(op machine.Opcode, raw []xmlArg, want int) ([]machine.Argument, error) {
	if len(raw) != want {
		return nil, diag(machine.CodeXMLStructure, "%s expects %d operand(s), got %d", op, want, len(raw))
	}
	if want == 0 {
		return nil, nil
	}

	sorted := make([]xmlArg, want)
	seen := make([]bool, want)
	for _, a := range raw {
		pos := -1
		for i := 0; i < want; i++ {
			if a.XMLName.Local == argElemNames[i] {
				pos = i
				break
			}
		}
		if pos == -1 || seen[pos] {
			return nil, diag(machine.CodeXMLStructure, "%s: unexpected or duplicate operand element %q", op, a.XMLName.Local)
		}
		seen[pos] = true
		sorted[pos] = a
	}
	for i, ok := range seen {
		if !ok {
			return nil, diag(machine.CodeXMLStructure, "%s: missing operand element %q", op, argElemNames[i])
		}
	}

	args := make([]machine.Argument, want)
	for i, a := range sorted {
		arg, err := decodeArg(op, a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

func decodeArg(op machine.Opcode, a xmlArg) (machine.Argument, error) {
	switch a.Type {
	case "var":
		ref, err := parseVarRef(a.Value)
		if err != nil {
			return machine.Argument{}, diag(machine.CodeXMLStructure, "%s: %v", op, err)
		}
		return machine.Argument{Kind: machine.ArgVar, Var: ref}, nil
	case "label":
		return machine.Argument{Kind: machine.ArgLabel, Label: a.Value}, nil
	case "type":
		switch a.Value {
		case types.TypeInt, types.TypeString, types.TypeBool:
		default:
			return machine.Argument{}, diag(machine.CodeXMLStructure, "%s: invalid type-tag %q", op, a.Value)
		}
		return machine.Argument{Kind: machine.ArgType, Type: a.Value}, nil
	case "int":
		n, err := strconv.ParseInt(a.Value, 10, 64)
		if err != nil {
			return machine.Argument{}, diag(machine.CodeXMLStructure, "%s: invalid int literal %q", op, a.Value)
		}
		return machine.Argument{Kind: machine.ArgLiteral, Value: types.Int(n)}, nil
	case "string":
		return machine.Argument{Kind: machine.ArgLiteral, Value: types.DecodeEscapes(a.Value)}, nil
	case "bool":
		switch a.Value {
		case "true":
			return machine.Argument{Kind: machine.ArgLiteral, Value: types.True}, nil
		case "false":
			return machine.Argument{Kind: machine.ArgLiteral, Value: types.False}, nil
		default:
			return machine.Argument{}, diag(machine.CodeXMLStructure, "%s: invalid bool literal %q", op, a.Value)
		}
	case "nil":
		return machine.Argument{Kind: machine.ArgLiteral, Value: types.Nil}, nil
	default:
		return machine.Argument{}, diag(machine.CodeXMLStructure, "%s: unknown operand type-tag %q", op, a.Type)
	}
}

func parseVarRef(s string) (machine.VarRef, error) {
	if len(s) < 4 || s[2] != '@' {
		return machine.VarRef{}, fmt.Errorf("malformed variable reference %q", s)
	}
	tag, ok := machine.ParseFrameTag(s[:2])
	if !ok {
		return machine.VarRef{}, fmt.Errorf("unknown frame qualifier in %q", s)
	}
	return machine.VarRef{Frame: tag, Name: s[3:]}, nil
}
