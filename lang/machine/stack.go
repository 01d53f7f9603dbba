package machine

import "github.com/ondrejsv/ippcode22/lang/types"

// OperandStack is the LIFO used by the stack-variant opcodes (PUSHS/POPS and
// the *S arithmetic/comparison/boolean/control forms).
type OperandStack struct {
	vals []types.Value
}

// Push pushes v onto the stack.
func (s *OperandStack) Push(v types.Value) { s.vals = append(s.vals, v) }

// Pop pops and returns the top of the stack. It fails if the stack is
// empty.
func (s *OperandStack) Pop() (types.Value, error) {
	if len(s.vals) == 0 {
		return nil, newDiagnostic(CodeMissingValue, "operand stack is empty")
	}
	n := len(s.vals) - 1
	v := s.vals[n]
	s.vals = s.vals[:n]
	return v, nil
}

// Clear empties the stack.
func (s *OperandStack) Clear() { s.vals = s.vals[:0] }

// Len returns the number of values currently on the stack.
func (s *OperandStack) Len() int { return len(s.vals) }
