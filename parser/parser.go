// Package parser implements a VT500-series byte-level state machine for
// decoding the DEC/ECMA-48/xterm escape sequence grammar, following the
// Williams model used by vt100/xterm and by the various terminal
// implementations in the wild (go-vte, vte.rs, libvterm).
//
// The parser never performs I/O and never blocks: it consumes a finite byte
// slice and emits a finite sequence of events to a Listener. It is the
// leaf-most component of the VT core — the Sequencer builds semantic
// Sequences out of the events emitted here.
package parser

// State is one state of the VT500-series parser state machine.
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCsiEntry
	StateCsiParam
	StateCsiIntermediate
	StateCsiIgnore
	StateDcsEntry
	StateDcsParam
	StateDcsIntermediate
	StateDcsPassthrough
	StateDcsIgnore
	StateOscString
	StateSosPmApcString
)

// Caps bound the resources a malformed stream can make the parser consume.
const (
	MaxParameters    = 16
	MaxSubParameters = 8
	MaxOscLength     = 1 << 20 // 1 MiB
	MaxIntermediates = 2
)

// Listener receives events produced while consuming bytes. Every method
// is called synchronously from within Parser.Advance/Parser.WriteByte; a
// Listener must not block or perform I/O directly (replies are expected to
// be queued, not written eagerly).
type Listener interface {
	// Print is called once per decoded codepoint in Ground/CsiIgnore-free
	// text state. Malformed UTF-8 bytes are reported as U+FFFD.
	Print(r rune)

	// Execute is called for a C0 (or C1) control byte.
	Execute(b byte)

	// EscDispatch is called when an ESC sequence completes with a final
	// byte. intermediates holds any collected intermediate bytes (0x20-0x2F).
	EscDispatch(intermediates []byte, ignored bool, final byte)

	// CsiDispatch is called when a CSI sequence completes.
	// params is a list of parameters, each itself a list of sub-parameters
	// (colon-separated); leader is one of 0, '?', '>', '=', '<'.
	CsiDispatch(leader byte, intermediates []byte, params [][]int64, ignored bool, final byte)

	// OscDispatch is called when an OSC string terminates (ST or BEL).
	// data is the raw payload between "ESC ]" and the terminator.
	OscDispatch(data []byte, bellTerminated bool)

	// HookDcs is called when a DCS sequence's parameter/intermediate
	// collection completes and byte passthrough begins.
	HookDcs(leader byte, intermediates []byte, params [][]int64, final byte)

	// PutDcs is called for each passthrough byte of a hooked DCS sequence.
	PutDcs(b byte)

	// UnhookDcs is called when the hooked DCS sequence terminates.
	UnhookDcs()

	// SosPmApcDispatch is called when a SOS/PM/APC string terminates.
	// kind is the byte that introduced the string ('X', '^', or '_').
	SosPmApcDispatch(kind byte, data []byte)
}

// Parser is a total, deterministic byte-level state machine: for every
// byte fed to it, exactly one transition fires. An unrecognized terminator
// in a non-ground state returns to Ground with no side effect.
type Parser struct {
	state State

	intermediates []byte
	intermediateOverflow bool

	leader byte

	params       [][]int64
	currentParam []int64
	paramOverflow bool
	subParamOverflow bool
	hasParam     bool

	oscData         []byte
	oscOverflow     bool

	dcsActive bool

	sosKind byte

	utf8 utf8Decoder

	listener Listener
}

// New creates a Parser that reports events to listener.
func New(listener Listener) *Parser {
	return &Parser{listener: listener}
}

// Reset returns the parser to the Ground state, clears all transient
// buffers, and discards any bytes pending in the UTF-8 decoder.
func (p *Parser) Reset() {
	p.state = StateGround
	p.clear()
	p.utf8.reset()
}

func (p *Parser) clear() {
	p.intermediates = p.intermediates[:0]
	p.intermediateOverflow = false
	p.leader = 0
	p.params = nil
	p.currentParam = p.currentParam[:0]
	p.paramOverflow = false
	p.subParamOverflow = false
	p.hasParam = false
	p.oscData = nil
	p.oscOverflow = false
}

// Write feeds bytes to the parser. It always returns (len(data), nil);
// the parser never fails on malformed input, per its error-handling
// contract (malformed sequences are dropped, not rejected).
func (p *Parser) Write(data []byte) (int, error) {
	for _, b := range data {
		p.advance(b)
	}
	return len(data), nil
}

// byte classification helpers, named after the VT500 grammar's ranges.

func isC0(b byte) bool      { return b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) }
func isPrintable(b byte) bool { return b >= 0x20 && b <= 0x7e || b >= 0xa0 }
func isIntermediate(b byte) bool { return b >= 0x20 && b <= 0x2f }
func isParamByte(b byte) bool    { return b >= 0x30 && b <= 0x3f }
func isDigit(b byte) bool        { return b >= '0' && b <= '9' }
func isCsiFinal(b byte) bool     { return b >= 0x40 && b <= 0x7e }
func isEscFinal(b byte) bool     { return b >= 0x30 && b <= 0x7e }
func isLeaderByte(b byte) bool {
	switch b {
	case '?', '>', '=', '<':
		return true
	}
	return false
}

// advance runs one byte through the state machine.
func (p *Parser) advance(b byte) {
	// C1 controls (0x80-0x9f) are treated as their 7-bit equivalents by
	// convention in Ground and most states; UTF-8 continuation bytes in
	// that range inside Ground are handled by the UTF-8 decoder instead,
	// so we only special-case C1 outside of string-collecting states.
	switch p.state {
	case StateGround:
		p.advanceGround(b)
	case StateEscape:
		p.advanceEscape(b)
	case StateEscapeIntermediate:
		p.advanceEscapeIntermediate(b)
	case StateCsiEntry:
		p.advanceCsiEntry(b)
	case StateCsiParam:
		p.advanceCsiParam(b)
	case StateCsiIntermediate:
		p.advanceCsiIntermediate(b)
	case StateCsiIgnore:
		p.advanceCsiIgnore(b)
	case StateDcsEntry:
		p.advanceDcsEntry(b)
	case StateDcsParam:
		p.advanceDcsParam(b)
	case StateDcsIntermediate:
		p.advanceDcsIntermediate(b)
	case StateDcsPassthrough:
		p.advanceDcsPassthrough(b)
	case StateDcsIgnore:
		p.advanceDcsIgnore(b)
	case StateOscString:
		p.advanceOscString(b)
	case StateSosPmApcString:
		p.advanceSosPmApcString(b)
	}
}

func (p *Parser) toGround() {
	p.state = StateGround
	p.clear()
}

func (p *Parser) enterEscape(b byte) {
	p.state = StateEscape
	p.clear()
	p.utf8.reset()
	if b == 0x1b {
		return
	}
}

// --- Ground ---

func (p *Parser) advanceGround(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b) || b == 0x18 || b == 0x1a:
		p.utf8.reset()
		p.listener.Execute(b)
	case b == 0x7f:
		// DEL: ignored in Ground per xterm convention.
	default:
		if r, ok := p.utf8.feed(b); ok {
			p.listener.Print(r)
		}
	}
}

// --- Escape ---

func (p *Parser) advanceEscape(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case b == '[':
		p.state = StateCsiEntry
		p.clear()
	case b == ']':
		p.state = StateOscString
		p.clear()
	case b == 'P':
		p.state = StateDcsEntry
		p.clear()
	case b == 'X' || b == '^' || b == '_':
		p.state = StateSosPmApcString
		p.sosKind = b
		p.oscData = nil
		p.oscOverflow = false
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = StateEscapeIntermediate
	case isEscFinal(b):
		p.listener.EscDispatch(p.intermediates, p.intermediateOverflow, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) advanceEscapeIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isEscFinal(b):
		p.listener.EscDispatch(p.intermediates, p.intermediateOverflow, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) collectIntermediate(b byte) {
	if len(p.intermediates) >= MaxIntermediates {
		p.intermediateOverflow = true
		return
	}
	p.intermediates = append(p.intermediates, b)
}

// --- CSI ---

func (p *Parser) advanceCsiEntry(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case isLeaderByte(b):
		p.leader = b
		p.state = StateCsiParam
	case isDigit(b) || b == ';' || b == ':':
		p.state = StateCsiParam
		p.advanceCsiParam(b)
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = StateCsiIntermediate
	case isCsiFinal(b):
		p.finishParam()
		p.listener.CsiDispatch(p.leader, p.intermediates, p.params, p.paramOverflow || p.intermediateOverflow, b)
		p.toGround()
	case b == 0x7f:
		// ignore
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) advanceCsiParam(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case isDigit(b):
		p.hasParam = true
		if len(p.currentParam) == 0 {
			p.currentParam = append(p.currentParam, 0)
		}
		last := len(p.currentParam) - 1
		if len(p.params) >= MaxParameters {
			p.paramOverflow = true
		} else {
			p.currentParam[last] = p.currentParam[last]*10 + int64(b-'0')
		}
	case b == ':':
		if len(p.currentParam) >= MaxSubParameters {
			p.subParamOverflow = true
		} else {
			p.currentParam = append(p.currentParam, 0)
		}
	case b == ';':
		p.finishParam()
	case isLeaderByte(b) && p.leader == 0 && len(p.params) == 0 && len(p.currentParam) == 0:
		p.leader = b
	case isIntermediate(b):
		p.finishParam()
		p.collectIntermediate(b)
		p.state = StateCsiIntermediate
	case isCsiFinal(b):
		p.finishParam()
		p.listener.CsiDispatch(p.leader, p.intermediates, p.params, p.paramOverflow || p.intermediateOverflow || p.subParamOverflow, b)
		p.toGround()
	case b == 0x7f:
		// ignore
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) finishParam() {
	if !p.hasParam && len(p.currentParam) == 0 {
		return
	}
	if len(p.currentParam) == 0 {
		p.currentParam = append(p.currentParam, 0)
	}
	if len(p.params) < MaxParameters {
		cp := make([]int64, len(p.currentParam))
		copy(cp, p.currentParam)
		p.params = append(p.params, cp)
	} else {
		p.paramOverflow = true
	}
	p.currentParam = p.currentParam[:0]
	p.hasParam = false
}

func (p *Parser) advanceCsiIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isCsiFinal(b):
		p.listener.CsiDispatch(p.leader, p.intermediates, p.params, p.paramOverflow || p.intermediateOverflow, b)
		p.toGround()
	case b == 0x7f:
		// ignore
	default:
		p.state = StateCsiIgnore
	}
}

func (p *Parser) advanceCsiIgnore(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		p.listener.Execute(b)
	case isCsiFinal(b):
		p.toGround()
	default:
		// stay in CsiIgnore until a final byte or ESC arrives
	}
}

// --- DCS ---

func (p *Parser) advanceDcsEntry(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isC0(b):
		// ignored inside DCS entry per spec
	case isLeaderByte(b):
		p.leader = b
		p.state = StateDcsParam
	case isDigit(b) || b == ';' || b == ':':
		p.state = StateDcsParam
		p.advanceDcsParam(b)
	case isIntermediate(b):
		p.collectIntermediate(b)
		p.state = StateDcsIntermediate
	case isCsiFinal(b):
		p.finishParam()
		p.state = StateDcsPassthrough
		p.dcsActive = true
		p.listener.HookDcs(p.leader, p.intermediates, p.params, b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsParam(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isDigit(b):
		p.hasParam = true
		if len(p.currentParam) == 0 {
			p.currentParam = append(p.currentParam, 0)
		}
		last := len(p.currentParam) - 1
		if len(p.params) >= MaxParameters {
			p.paramOverflow = true
		} else {
			p.currentParam[last] = p.currentParam[last]*10 + int64(b-'0')
		}
	case b == ':':
		if len(p.currentParam) >= MaxSubParameters {
			p.subParamOverflow = true
		} else {
			p.currentParam = append(p.currentParam, 0)
		}
	case b == ';':
		p.finishParam()
	case isIntermediate(b):
		p.finishParam()
		p.collectIntermediate(b)
		p.state = StateDcsIntermediate
	case isCsiFinal(b):
		p.finishParam()
		p.state = StateDcsPassthrough
		p.dcsActive = true
		p.listener.HookDcs(p.leader, p.intermediates, p.params, b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case isIntermediate(b):
		p.collectIntermediate(b)
	case isCsiFinal(b):
		p.state = StateDcsPassthrough
		p.dcsActive = true
		p.listener.HookDcs(p.leader, p.intermediates, p.params, b)
	default:
		p.state = StateDcsIgnore
	}
}

func (p *Parser) advanceDcsPassthrough(b byte) {
	switch {
	case b == 0x1b:
		// Could be the ST terminator (ESC \) or a fresh escape; we must
		// peek the next byte, which the state machine can't do without
		// look-ahead. We treat ESC as a tentative terminator: the next
		// byte decides. To keep the machine total and single-pass, DCS
		// passthrough unhooks on ESC and replays ESC through Escape.
		if p.dcsActive {
			p.listener.UnhookDcs()
			p.dcsActive = false
		}
		p.enterEscape(b)
	case isC0(b) && b != 0x1b:
		// C0 controls (other than ESC/CAN/SUB) are passed through raw
		// per DEC practice for DCS payloads such as Sixel and DECRQSS.
		p.listener.PutDcs(b)
	case b == 0x18 || b == 0x1a:
		if p.dcsActive {
			p.listener.UnhookDcs()
			p.dcsActive = false
		}
		p.toGround()
	default:
		p.listener.PutDcs(b)
	}
}

func (p *Parser) advanceDcsIgnore(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape(b)
	case b == 0x18 || b == 0x1a:
		p.toGround()
	default:
		// discard
	}
}

// --- OSC ---

func (p *Parser) advanceOscString(b byte) {
	switch {
	case b == 0x07:
		p.listener.OscDispatch(p.oscData, true)
		p.toGround()
	case b == 0x1b:
		// Tentative ST; Escape state will dispatch on '\\', otherwise
		// this OSC is aborted and a fresh escape sequence begins.
		p.listener.OscDispatch(p.oscData, false)
		p.enterEscape(b)
	case b == 0x18 || b == 0x1a:
		p.toGround()
	case isC0(b):
		// ignored within OSC string
	default:
		if len(p.oscData) >= MaxOscLength {
			p.oscOverflow = true
			return
		}
		p.oscData = append(p.oscData, b)
	}
}

// --- SOS/PM/APC ---

func (p *Parser) advanceSosPmApcString(b byte) {
	switch {
	case b == 0x1b:
		p.listener.SosPmApcDispatch(p.sosKind, p.oscData)
		p.enterEscape(b)
	case b == 0x07:
		p.listener.SosPmApcDispatch(p.sosKind, p.oscData)
		p.toGround()
	case b == 0x18 || b == 0x1a:
		p.toGround()
	default:
		if len(p.oscData) >= MaxOscLength {
			p.oscOverflow = true
			return
		}
		p.oscData = append(p.oscData, b)
	}
}
