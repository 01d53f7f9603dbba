package machine

import "golang.org/x/exp/slices"

// Instruction is a decoded opcode with its declared order and operands.
type Instruction struct {
	Op    Opcode
	Order int
	Args  []Argument
}

// InstructionTable is the set of decoded instructions, indexed by their
// declared order, plus the label-to-order mapping registered while
// instructions are added. Build one with NewInstructionTable, Append every
// instruction (and AddLabel for each LABEL), then call Finalize once before
// running.
type InstructionTable struct {
	instrs     []Instruction
	seenOrders map[int]bool
	posByOrder map[int]int
	labels     map[string]int
}

// NewInstructionTable returns an empty table ready to accept instructions.
func NewInstructionTable() *InstructionTable {
	return &InstructionTable{
		seenOrders: make(map[int]bool),
		labels:     make(map[string]int),
	}
}

// Append adds instr to the table. It fails if instr's order was already
// used by a previously-added instruction.
func (t *InstructionTable) Append(instr Instruction) error {
	if t.seenOrders[instr.Order] {
		return newDiagnostic(CodeXMLStructure, "duplicate instruction order %d", instr.Order)
	}
	t.seenOrders[instr.Order] = true
	t.instrs = append(t.instrs, instr)
	return nil
}

// AddLabel registers name as bound to order. It fails if name is already
// bound to a (necessarily different) order.
func (t *InstructionTable) AddLabel(name string, order int) error {
	if _, exists := t.labels[name]; exists {
		return newDiagnostic(CodeSemantic, "label %q is already defined", name)
	}
	t.labels[name] = order
	return nil
}

// LabelOrder returns the order bound to name. It fails if name is not a
// registered label.
func (t *InstructionTable) LabelOrder(name string) (int, error) {
	order, ok := t.labels[name]
	if !ok {
		return 0, newDiagnostic(CodeSemantic, "label %q is not defined", name)
	}
	return order, nil
}

// Finalize sorts the accumulated instructions by ascending order and builds
// the order-to-position index. Call it exactly once, after every
// instruction has been Append-ed.
func (t *InstructionTable) Finalize() {
	slices.SortFunc(t.instrs, func(a, b Instruction) int { return a.Order - b.Order })
	t.posByOrder = make(map[int]int, len(t.instrs))
	for i, instr := range t.instrs {
		t.posByOrder[instr.Order] = i
	}
}

// Sorted reports whether the table's instructions are currently in
// ascending order, for use by callers that want to confirm Finalize did
// its job.
func (t *InstructionTable) Sorted() bool {
	return slices.IsSortedFunc(t.instrs, func(a, b Instruction) int { return a.Order - b.Order })
}

// Len returns the number of instructions in the table.
func (t *InstructionTable) Len() int { return len(t.instrs) }

// At returns the instruction at sorted position pos.
func (t *InstructionTable) At(pos int) Instruction { return t.instrs[pos] }

// PosOf returns the sorted position of the instruction declared at order.
func (t *InstructionTable) PosOf(order int) (int, bool) {
	pos, ok := t.posByOrder[order]
	return pos, ok
}
