// Package types implements the runtime value model of IPPcode22: a small
// tagged union of Int, Str, Bool, Nil and Unset, each a Value.
package types

// Value is the interface implemented by every value the machine can hold in
// a frame slot, on the operand stack, or as an instruction's literal
// operand.
type Value interface {
	// String returns the value's textual representation, as printed by WRITE
	// for every type except nil, which WRITE prints as the empty string.
	String() string

	// Type returns the type name as used by the TYPE instruction: "int",
	// "string", "bool", "nil", or "" for Unset.
	Type() string
}

// Named type constants, returned by Value.Type.
const (
	TypeInt    = "int"
	TypeString = "string"
	TypeBool   = "bool"
	TypeNil    = "nil"
	TypeUnset  = ""
)
