package machine

import (
	"sort"

	"github.com/dolthub/swiss"

	"github.com/ondrejsv/ippcode22/lang/types"
)

// Frame is a namespace of variables: a mapping from variable short-name to
// an optional value (including types.Unset, the declared-but-undefined
// state). A name may be declared at most once per Frame.
//
// The mapping is backed by a swiss map, as the teacher repository does for
// its own associative value type; for the small variable counts typical of
// an IPPcode22 frame this is mostly a style choice carried over from the
// teacher rather than a perf requirement.
type Frame struct {
	vars *swiss.Map[string, types.Value]
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{vars: swiss.NewMap[string, types.Value](8)}
}

// Declare adds name to the frame, initialized to types.Unset. It fails if
// name is already declared in this frame.
func (f *Frame) Declare(name string) error {
	if _, ok := f.vars.Get(name); ok {
		return newDiagnostic(CodeSemantic, "redefinition of variable %q", name)
	}
	f.vars.Put(name, types.Unset)
	return nil
}

// Assign replaces the value held by name. It fails if name was never
// declared in this frame.
func (f *Frame) Assign(name string, v types.Value) error {
	if _, ok := f.vars.Get(name); !ok {
		return newDiagnostic(CodeUndeclaredVar, "variable %q is not declared", name)
	}
	f.vars.Put(name, v)
	return nil
}

// Read returns the current value of name, which may be types.Unset. It
// fails if name was never declared in this frame; the caller decides
// whether an Unset result is acceptable.
func (f *Frame) Read(name string) (types.Value, error) {
	v, ok := f.vars.Get(name)
	if !ok {
		return nil, newDiagnostic(CodeUndeclaredVar, "variable %q is not declared", name)
	}
	return v, nil
}

// Names returns the frame's declared variable names sorted lexically, for
// deterministic BREAK output (a swiss map has no defined iteration order).
func (f *Frame) Names() []string {
	names := make([]string, 0, f.vars.Count())
	f.vars.Iter(func(k string, _ types.Value) (stop bool) {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	return names
}
