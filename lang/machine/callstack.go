package machine

// CallStack is the LIFO of return positions maintained by CALL/RETURN. A
// position is an index into the InstructionTable's sorted instruction
// sequence, not a declared order, so that RETURN resumes exactly at the
// instruction immediately after its matching CALL regardless of any gaps
// between declared order values.
type CallStack struct {
	orders []int
}

// Push pushes position onto the call stack.
func (s *CallStack) Push(position int) { s.orders = append(s.orders, position) }

// Pop pops and returns the top of the call stack. It fails if the stack is
// empty.
func (s *CallStack) Pop() (int, error) {
	if len(s.orders) == 0 {
		return 0, newDiagnostic(CodeMissingValue, "call stack is empty")
	}
	n := len(s.orders) - 1
	order := s.orders[n]
	s.orders = s.orders[:n]
	return order, nil
}

// Len returns the number of entries currently on the call stack.
func (s *CallStack) Len() int { return len(s.orders) }
