package machine

import (
	"github.com/ondrejsv/ippcode22/lang/types"
)

// FrameTag identifies which frame a variable reference addresses: the
// global frame, the top of the local-frame stack, or the current temporary
// frame.
type FrameTag byte

const (
	GF FrameTag = iota
	LF
	TF
)

func (t FrameTag) String() string {
	switch t {
	case GF:
		return "GF"
	case LF:
		return "LF"
	case TF:
		return "TF"
	default:
		return "??"
	}
}

// ParseFrameTag decodes a two-letter frame prefix. It fails (ok=false) for
// anything else; the loader rejects malformed refs before the engine ever
// sees them, but the engine defends in depth.
func ParseFrameTag(s string) (tag FrameTag, ok bool) {
	switch s {
	case "GF":
		return GF, true
	case "LF":
		return LF, true
	case "TF":
		return TF, true
	default:
		return 0, false
	}
}

// VarRef identifies a variable by frame qualifier and short-name.
type VarRef struct {
	Frame FrameTag
	Name  string
}

func (r VarRef) String() string { return r.Frame.String() + "@" + r.Name }

// FrameRegistry owns the global frame, the current temporary frame (if any),
// and the stack of local frames, and implements their lifecycle.
type FrameRegistry struct {
	gf      *Frame
	tf      *Frame
	lfStack []*Frame
}

// NewFrameRegistry returns a registry with a fresh, empty global frame and
// no temporary or local frames.
func NewFrameRegistry() *FrameRegistry {
	return &FrameRegistry{gf: NewFrame()}
}

// resolve returns the concrete Frame addressed by ref's frame qualifier.
func (r *FrameRegistry) resolve(tag FrameTag) (*Frame, error) {
	switch tag {
	case GF:
		return r.gf, nil
	case LF:
		if len(r.lfStack) == 0 {
			return nil, newDiagnostic(CodeFrame, "local frame stack is empty")
		}
		return r.lfStack[len(r.lfStack)-1], nil
	case TF:
		if r.tf == nil {
			return nil, newDiagnostic(CodeFrame, "no temporary frame exists")
		}
		return r.tf, nil
	default:
		return nil, newDiagnostic(CodeFrame, "invalid frame qualifier")
	}
}

// Declare declares ref's short-name in ref's frame.
func (r *FrameRegistry) Declare(ref VarRef) error {
	f, err := r.resolve(ref.Frame)
	if err != nil {
		return err
	}
	return f.Declare(ref.Name)
}

// Assign assigns v to ref's short-name in ref's frame.
func (r *FrameRegistry) Assign(ref VarRef, v types.Value) error {
	f, err := r.resolve(ref.Frame)
	if err != nil {
		return err
	}
	return f.Assign(ref.Name, v)
}

// Read returns the current value held by ref, which may be types.Unset.
func (r *FrameRegistry) Read(ref VarRef) (types.Value, error) {
	f, err := r.resolve(ref.Frame)
	if err != nil {
		return nil, err
	}
	return f.Read(ref.Name)
}

// CreateFrame replaces any current temporary frame with a fresh, empty one.
func (r *FrameRegistry) CreateFrame() {
	r.tf = NewFrame()
}

// PushFrame moves the current temporary frame onto the local-frame stack,
// making it the new LF, and clears TF. It fails if there is no current
// temporary frame.
func (r *FrameRegistry) PushFrame() error {
	if r.tf == nil {
		return newDiagnostic(CodeFrame, "no temporary frame to push")
	}
	r.lfStack = append(r.lfStack, r.tf)
	r.tf = nil
	return nil
}

// PopFrame pops the top of the local-frame stack and installs it as the new
// TF. It fails if the local-frame stack is empty.
func (r *FrameRegistry) PopFrame() error {
	if len(r.lfStack) == 0 {
		return newDiagnostic(CodeFrame, "local frame stack is empty")
	}
	n := len(r.lfStack) - 1
	r.tf = r.lfStack[n]
	r.lfStack = r.lfStack[:n]
	return nil
}

// FrameSnapshot is a point-in-time, read-only view of one frame's contents,
// used only by the BREAK diagnostic opcode.
type FrameSnapshot struct {
	Tag   string
	Names []string
}

// DebugFrames returns a deterministic snapshot of every currently
// addressable frame (GF always, TF and LF@top when present), for BREAK.
func (r *FrameRegistry) DebugFrames() []FrameSnapshot {
	snaps := []FrameSnapshot{{Tag: "GF", Names: r.gf.Names()}}
	if r.tf != nil {
		snaps = append(snaps, FrameSnapshot{Tag: "TF", Names: r.tf.Names()})
	}
	if len(r.lfStack) > 0 {
		snaps = append(snaps, FrameSnapshot{Tag: "LF", Names: r.lfStack[len(r.lfStack)-1].Names()})
	}
	return snaps
}

// LocalDepth reports how many frames are on the local-frame stack.
func (r *FrameRegistry) LocalDepth() int { return len(r.lfStack) }
