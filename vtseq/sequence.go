// Package vtseq implements the semantic layer of the VT core: it consumes
// parser events, classifies them against a FunctionRegistry, and dispatches
// to a Handler implementing the terminal's screen operations.
package vtseq

// Category identifies which escape-sequence family a Sequence belongs to.
type Category int

const (
	CategoryC0 Category = iota
	CategoryEsc
	CategoryCsi
	CategoryOsc
	CategoryDcs
)

func (c Category) String() string {
	switch c {
	case CategoryC0:
		return "C0"
	case CategoryEsc:
		return "ESC"
	case CategoryCsi:
		return "CSI"
	case CategoryOsc:
		return "OSC"
	case CategoryDcs:
		return "DCS"
	default:
		return "?"
	}
}

// Sequence is an immutable value object describing one recognized escape
// sequence, built by the Sequencer from parser events before dispatch.
type Sequence struct {
	Category      Category
	Leader        byte // one of 0, '?', '>', '=', '<'
	Intermediates []byte
	Params        [][]int64
	Final         byte
	Ignored       bool // true if parameter/intermediate caps were exceeded
}

// Param returns the sub-parameter list for parameter index i, or a default
// single-element list {def} if the parameter was omitted or out of range.
func (s Sequence) Param(i int, def int64) []int64 {
	if i < 0 || i >= len(s.Params) {
		return []int64{def}
	}
	p := s.Params[i]
	if len(p) == 0 {
		return []int64{def}
	}
	return p
}

// ParamN returns the first sub-parameter of parameter index i as a scalar,
// or def when omitted. A parameter present but explicitly zero-valued
// (e.g. "CSI 0 H") is distinguished from an omitted one by the caller
// checking len(s.Params) directly when that distinction matters (ParamN
// folds the common "0 means default" VT convention in automatically via
// zeroIsDefault).
func (s Sequence) ParamN(i int, def int64, zeroIsDefault bool) int64 {
	p := s.Param(i, def)
	v := p[0]
	if zeroIsDefault && v == 0 {
		return def
	}
	return v
}

// NumParams returns the number of top-level parameters present.
func (s Sequence) NumParams() int { return len(s.Params) }
