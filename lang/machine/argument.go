package machine

import "github.com/ondrejsv/ippcode22/lang/types"

// ArgKind is the kind of operand an Argument carries, decided once at load
// time from the XML arg's type attribute.
type ArgKind byte

const (
	// ArgVar is a variable reference (GF@x, LF@x, TF@x).
	ArgVar ArgKind = iota
	// ArgLabel names a LABEL, as used by JUMP/CALL/JUMPIFEQ/JUMPIFNEQ.
	ArgLabel
	// ArgType carries a type-name symbol, as used by READ's second operand.
	ArgType
	// ArgLiteral is an already-typed value: int, string, bool, or nil.
	ArgLiteral
)

// Argument is one operand of an Instruction, parsed once at load time.
// String literals are escape-decoded at this point, never during
// execution.
type Argument struct {
	Kind ArgKind

	Var   VarRef      // valid when Kind == ArgVar
	Label string      // valid when Kind == ArgLabel
	Type  string       // valid when Kind == ArgType
	Value types.Value // valid when Kind == ArgLiteral
}
