package types

// NilType is the type of nil. Its only legal value is Nil. (Represented as a
// number, not struct{}, so that Nil may be a constant.)
type NilType byte

const Nil = NilType(0)

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return TypeNil }
