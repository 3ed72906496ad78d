package vtseq

import "github.com/contourterm/vtcore/parser"

// Logger receives diagnostic messages for unknown/unsupported/invalid
// dispatches. Implementations must not block; the default NoopLogger
// discards everything, so a caller that never installs one pays nothing
// for diagnostics it doesn't want.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NoopLogger discards all messages.
type NoopLogger struct{}

func (NoopLogger) Debugf(format string, args ...any) {}
func (NoopLogger) Errorf(format string, args ...any) {}

// dcsHook is the capability plugged in by the Sequencer while a DCS
// sequence is being passed through (Sixel, DECRQSS, XTGETTCAP, STP). It
// never outlives a single DCS sequence: constructed on Hook, destroyed on
// Unhook, per the sub-parser lifecycle design note.
type dcsHook interface {
	feed(b byte)
	finalize(h Handler)
}

// Sequencer consumes parser events, builds Sequences, resolves them against
// a FunctionRegistry, and dispatches into a Handler. It implements
// parser.Listener directly so it can be wired straight into a parser.Parser.
type Sequencer struct {
	registry *FunctionRegistry
	handler  Handler
	logger   Logger

	activeHook dcsHook

	// Charset shift state is not kept here: SO/SI/SS2/SS3 are forwarded to
	// the Handler, which holds the active charset.
}

// NewSequencer creates a Sequencer dispatching into handler using the
// standard FunctionRegistry.
func NewSequencer(handler Handler) *Sequencer {
	return &Sequencer{
		registry: NewRegistry(),
		handler:  handler,
		logger:   NoopLogger{},
	}
}

// SetLogger overrides the diagnostic logger.
func (s *Sequencer) SetLogger(l Logger) {
	if l == nil {
		l = NoopLogger{}
	}
	s.logger = l
}

var _ parser.Listener = (*Sequencer)(nil)

// --- parser.Listener ---

func (s *Sequencer) Print(r rune) {
	s.handler.Print(r)
}

func (s *Sequencer) Execute(b byte) {
	switch b {
	case 0x07:
		s.handler.Bell()
	case 0x08:
		s.handler.Backspace()
	case 0x09:
		s.handler.Tab(1)
	case 0x0a, 0x0b, 0x0c:
		// LF, VT, FF: the source's documented (and intentionally kept)
		// quirk is treating VT/FF as IND rather than a bare line feed;
		// see the Open Question in the design notes.
		s.handler.Index()
	case 0x0d:
		s.handler.CarriageReturn()
	case 0x0e:
		s.handler.ShiftOut()
	case 0x0f:
		s.handler.ShiftIn()
	default:
		s.logger.Debugf("unhandled C0 execute 0x%02x", b)
	}
}

func (s *Sequencer) EscDispatch(intermediates []byte, ignored bool, final byte) {
	if len(intermediates) == 0 && final == '\\' {
		// Stray ST (ESC \) terminating an OSC/DCS/SOS string; the
		// Sequencer already handled that in OscDispatch/UnhookDcs.
		return
	}

	seq := Sequence{Category: CategoryEsc, Intermediates: intermediates, Final: final, Ignored: ignored}
	def, ok := s.registry.Lookup(seq)
	if !ok {
		s.logger.Debugf("unknown ESC sequence: %q %c", intermediates, final)
		return
	}

	switch def.ID {
	case FuncIND:
		s.handler.Index()
	case FuncNEL:
		s.handler.NextLine()
	case FuncHTS:
		s.handler.HorizontalTabSet()
	case FuncRI:
		s.handler.ReverseIndex()
	case FuncDECSC:
		s.handler.SaveCursor()
	case FuncDECRC:
		s.handler.RestoreCursor()
	case FuncRIS:
		s.handler.ResetState()
	case FuncDECALN:
		s.handler.ScreenAlignmentPattern()
	case FuncSS2:
		s.handler.SingleShift2()
	case FuncSS3:
		s.handler.SingleShift3()
	case FuncDECPAM:
		s.handler.SetDecMode(0, true) // application keypad has no DEC mode number in this model; Screen tracks it directly.
	case FuncDECPNM:
		s.handler.SetDecMode(0, false)
	case FuncG0ASCII:
		s.handler.ConfigureCharset(CharsetIndexG0, CharsetASCII)
	case FuncG0DECGraphics:
		s.handler.ConfigureCharset(CharsetIndexG0, CharsetDECSpecialGraphics)
	case FuncG0UK:
		s.handler.ConfigureCharset(CharsetIndexG0, CharsetUK)
	case FuncG1ASCII:
		s.handler.ConfigureCharset(CharsetIndexG1, CharsetASCII)
	case FuncG1DECGraphics:
		s.handler.ConfigureCharset(CharsetIndexG1, CharsetDECSpecialGraphics)
	case FuncG1UK:
		s.handler.ConfigureCharset(CharsetIndexG1, CharsetUK)
	default:
		s.logger.Debugf("unsupported ESC function %s", def.ID)
	}
}

func (s *Sequencer) CsiDispatch(leader byte, intermediates []byte, params [][]int64, ignored bool, final byte) {
	seq := Sequence{Category: CategoryCsi, Leader: leader, Intermediates: intermediates, Params: params, Final: final, Ignored: ignored}
	def, ok := s.registry.Lookup(seq)
	if !ok {
		s.logger.Debugf("unknown CSI sequence: leader=%c interm=%q params=%v final=%c", leader, intermediates, params, final)
		return
	}
	if seq.NumParams() < def.MinParams {
		s.logger.Errorf("invalid parameter count for %s", def.ID)
		return
	}
	s.dispatchCSI(def, seq)
}

func (s *Sequencer) dispatchCSI(def FunctionDefinition, seq Sequence) {
	h := s.handler
	p1 := func(def int64) int { return int(seq.ParamN(0, def, true)) }
	p2 := func(def int64) int { return int(seq.ParamN(1, def, true)) }

	switch def.ID {
	case FuncCUU:
		h.MoveUp(p1(1))
	case FuncCUD:
		h.MoveDown(p1(1))
	case FuncCUF:
		h.MoveForward(p1(1))
	case FuncCUB:
		h.MoveBackward(p1(1))
	case FuncCNL:
		h.MoveDownCR(p1(1))
	case FuncCPL:
		h.MoveUpCR(p1(1))
	case FuncCHA:
		h.GotoCol(p1(1) - 1)
	case FuncVPA:
		h.GotoLine(p1(1) - 1)
	case FuncHPA:
		h.GotoCol(p1(1) - 1)
	case FuncCUP, FuncHVP:
		h.Goto(p1(1)-1, p2(1)-1)
	case FuncCHT:
		h.Tab(p1(1))
	case FuncCBT:
		h.BackwardTabs(p1(1))
	case FuncED:
		h.ClearScreen(ClearMode(p1(0)))
	case FuncEL:
		h.ClearLine(LineClearMode(p1(0)))
	case FuncECH:
		h.EraseChars(p1(1))
	case FuncDCH:
		h.DeleteChars(p1(1))
	case FuncICH:
		h.InsertBlank(p1(1))
	case FuncIL:
		h.InsertLines(p1(1))
	case FuncDL:
		h.DeleteLines(p1(1))
	case FuncDECIC:
		h.InsertColumns(p1(1))
	case FuncDECDC:
		h.DeleteColumns(p1(1))
	case FuncSU:
		h.ScrollUp(p1(1))
	case FuncSD:
		h.ScrollDown(p1(1))
	case FuncDECCRA:
		h.CopyRectangle(p1(1), p2(1), int(seq.ParamN(2, 1, true)), int(seq.ParamN(3, 1, true)), int(seq.ParamN(4, 1, true)), int(seq.ParamN(5, 1, true)), int(seq.ParamN(6, 1, true)), int(seq.ParamN(7, 1, true)))
	case FuncDECERA:
		h.EraseRectangle(p1(1), p2(1), int(seq.ParamN(2, 1, true)), int(seq.ParamN(3, 1, true)))
	case FuncDECFRA:
		h.FillRectangle(rune(p1(0)), p2(1), int(seq.ParamN(2, 1, true)), int(seq.ParamN(3, 1, true)), int(seq.ParamN(4, 1, true)))
	case FuncSM, FuncRM:
		set := def.ID == FuncSM
		for _, p := range seq.Params {
			h.SetAnsiMode(AnsiMode(p[0]), set)
		}
	case FuncDECSET, FuncDECRST:
		set := def.ID == FuncDECSET
		for _, p := range seq.Params {
			h.SetDecMode(DecMode(p[0]), set)
		}
	case FuncSGR:
		dispatchSGR(h, seq.Params)
	case FuncDSR:
		h.DeviceStatus(p1(0))
	case FuncDECXCPR:
		h.ReportCursorPosition(true)
	case FuncDECSCUSR:
		// Ps 0 and 1 both select a blinking block; Ps 2..6 follow in
		// CursorStyle order, so the style value is Ps-1.
		style := p1(0)
		if style > 0 {
			style--
		}
		h.SetCursorStyle(CursorStyle(style))
	case FuncDECSCA:
		// character protection is recognized but not applied; the request
		// is only logged.
		s.logger.Debugf("DECSCA n=%d", p1(0))
	case FuncDECSTBM:
		h.SetScrollingRegion(p1(1), p2(0))
	case FuncDECRQM:
		h.RequestDecMode(DecMode(p1(0)))
	case FuncRQM:
		h.RequestAnsiMode(AnsiMode(p1(0)))
	case FuncDECSLRM:
		h.SetLeftRightMargins(p1(1), p2(0))
	case FuncXTWINOPS:
		h.ReportWindowOp(flattenFirst(seq.Params))
	case FuncDA1:
		h.IdentifyTerminalPrimary()
	case FuncDA2:
		h.IdentifyTerminalSecondary()
	case FuncDA3:
		h.IdentifyTerminalTertiary()
	case FuncXTVERSION:
		h.ReportXTVersion()
	default:
		s.logger.Debugf("unsupported CSI function %s", def.ID)
	}
}

func flattenFirst(params [][]int64) []int64 {
	out := make([]int64, 0, len(params))
	for _, p := range params {
		if len(p) > 0 {
			out = append(out, p[0])
		} else {
			out = append(out, 0)
		}
	}
	return out
}

func (s *Sequencer) OscDispatch(data []byte, bellTerminated bool) {
	dispatchOSC(s.handler, s.logger, data)
}

func (s *Sequencer) SosPmApcDispatch(kind byte, data []byte) {
	s.logger.Debugf("%c string of %d bytes ignored", kind, len(data))
}

func (s *Sequencer) HookDcs(leader byte, intermediates []byte, params [][]int64, final byte) {
	seq := Sequence{Category: CategoryDcs, Leader: leader, Intermediates: intermediates, Params: params, Final: final}
	def, ok := s.registry.Lookup(seq)
	if !ok {
		s.activeHook = nil
		return
	}
	switch def.ID {
	case FuncDECSIXEL:
		s.activeHook = newSixelHook(params)
	case FuncDECRQSS:
		s.activeHook = &statusStringHook{}
	case FuncXTGETTCAP:
		s.activeHook = &capabilityHook{}
	case FuncSTP:
		s.activeHook = &profileHook{}
	default:
		s.activeHook = nil
	}
}

func (s *Sequencer) PutDcs(b byte) {
	if s.activeHook != nil {
		s.activeHook.feed(b)
	}
}

func (s *Sequencer) UnhookDcs() {
	if s.activeHook != nil {
		s.activeHook.finalize(s.handler)
		s.activeHook = nil
	}
}
