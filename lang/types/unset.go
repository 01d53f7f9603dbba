package types

// UnsetType is the type of a declared-but-undefined variable slot. Its only
// legal value is Unset. It is distinct from Nil: a variable holding Unset
// was never assigned, while a variable holding Nil was explicitly assigned
// the nil literal.
type UnsetType byte

const Unset = UnsetType(0)

var _ Value = Unset

func (UnsetType) String() string { return "" }
func (UnsetType) Type() string   { return TypeUnset }
