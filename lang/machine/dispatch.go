package machine

// handlerFunc implements one opcode's contract: given the Engine and the
// Instruction being executed, it mutates engine state and reports how the
// instruction pointer should move next.
type handlerFunc func(e *Engine, instr Instruction) (ctrl, error)

// handlers is the dispatch table mapping each Opcode to its handler. Each
// opcode group registers its handlers from an init function in its own
// file, rather than one giant switch, so the per-opcode contracts in
// §4.3 stay easy to find individually.
var handlers = make(map[Opcode]handlerFunc, int(OpcodeMax)+1)

func registerHandler(op Opcode, h handlerFunc) { handlers[op] = h }

type ctrlKind byte

const (
	ctrlNext ctrlKind = iota
	ctrlJump    // jump to a label's declared order; looked up via InstructionTable
	ctrlJumpPos // jump directly to a table position; used by RETURN
	ctrlExit
)

// ctrl is a handler's verdict on how the instruction pointer should move.
type ctrl struct {
	kind     ctrlKind
	order    int // valid when kind == ctrlJump
	pos      int // valid when kind == ctrlJumpPos
	exitCode int // valid when kind == ctrlExit
}

var next = ctrl{kind: ctrlNext}

func jumpTo(order int) ctrl { return ctrl{kind: ctrlJump, order: order} }

func jumpToPos(pos int) ctrl { return ctrl{kind: ctrlJumpPos, pos: pos} }

func exitWith(code int) ctrl { return ctrl{kind: ctrlExit, exitCode: code} }
