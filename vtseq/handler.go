package vtseq

// LineClearMode selects which part of a line EL erases.
type LineClearMode int

const (
	LineClearRight LineClearMode = iota // cursor to end of line
	LineClearLeft                       // start of line to cursor
	LineClearAll                        // entire line
)

// ClearMode selects which part of the screen ED erases.
type ClearMode int

const (
	ClearBelow ClearMode = iota // cursor to end of screen
	ClearAbove                  // start of screen to cursor
	ClearAll                    // entire screen
	ClearSaved                  // entire screen plus scrollback
)

// TabulationClearMode selects which tab stops TBC clears.
type TabulationClearMode int

const (
	TabClearCurrent TabulationClearMode = iota // the stop at the cursor
	TabClearAll                                // every stop
)

// Color is a tagged color value passed to the Handler; see vtcore.Color for
// the concrete representation. Kept as an opaque interface{} here so vtseq
// has no dependency on vtcore (the dependency runs the other way).
type Color = any

// CharAttribute is one parsed SGR group (e.g. bold, a color spec, or reset).
type CharAttribute struct {
	Kind  SGRAttrKind
	Color Color // valid when Kind is one of the *Color kinds
}

// SGRAttrKind enumerates the distinct effects an SGR parameter group can
// have on a cell's rendering attributes.
type SGRAttrKind int

const (
	AttrReset SGRAttrKind = iota
	AttrBold
	AttrDim
	AttrItalic
	AttrUnderline
	AttrDoubleUnderline
	AttrCurlyUnderline
	AttrDottedUnderline
	AttrDashedUnderline
	AttrBlinkSlow
	AttrBlinkFast
	AttrReverse
	AttrHidden
	AttrStrike
	AttrOverline
	AttrFramed
	AttrEncircled
	AttrNoBoldDim
	AttrNoItalic
	AttrNoUnderline
	AttrNoBlink
	AttrNoReverse
	AttrNoHidden
	AttrNoStrike
	AttrNoOverline
	AttrNoFramed
	AttrForeground // Color is the new foreground
	AttrBackground // Color is the new background
	AttrUnderlineColor
	AttrDefaultForeground
	AttrDefaultBackground
	AttrDefaultUnderlineColor
)

// CursorStyle enumerates DECSCUSR's cursor shapes. Its value is DECSCUSR's
// Ps minus one; Ps 0 and Ps 1 both give CursorStyleBlinkingBlock.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// CharsetIndex selects one of the four G0-G3 charset slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// Charset selects a character-set translation table.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetDECSpecialGraphics
	CharsetUK
)

// AnsiMode / DecMode identify the ANSI- and DEC-namespaced modes that
// SM/RM and DECSET/DECRST toggle. Numeric values match the real CSI
// parameter numbers so the Sequencer can pass them through unchanged.
type AnsiMode int

const (
	AnsiModeIRM AnsiMode = 4  // Insert/Replace Mode
	AnsiModeLNM AnsiMode = 20 // Line Feed/New Line Mode
)

type DecMode int

const (
	DecModeDECCKM    DecMode = 1
	DecModeDECCOLM   DecMode = 3
	DecModeDECSCLM   DecMode = 4
	DecModeDECOM     DecMode = 6
	DecModeDECAWM    DecMode = 7
	DecModeDECARM    DecMode = 8
	DecModeX10Mouse  DecMode = 9
	DecModeDECTCEM   DecMode = 25
	DecModeX11Mouse  DecMode = 1000
	DecModeCellMotionMouse DecMode = 1002
	DecModeAllMotionMouse  DecMode = 1003
	DecModeFocusEvent DecMode = 1004
	DecModeUTF8Mouse  DecMode = 1005
	DecModeSGRMouse   DecMode = 1006
	DecModeAlternateScroll DecMode = 1007
	DecModeDECLRMM    DecMode = 69
	DecModeOptClear47 DecMode = 47
	DecModeOptClear1047 DecMode = 1047
	DecModeOptClear1049 DecMode = 1049
	DecModeBracketedPaste DecMode = 2004
)

// DispatchResult is the discriminated outcome of dispatching one Sequence,
// per the error-handling design: no exceptions ever escape the core.
type DispatchResult int

const (
	ResultOk DispatchResult = iota
	ResultUnsupported
	ResultInvalid
)

// Handler is implemented by the Screen: it is the semantic target every
// recognized VT function dispatches into. The method set covers the full
// operation surface a VT core needs to expose: rectangle ops, horizontal
// margins, and DECRQSS/XTGETTCAP replies alongside the usual cursor/SGR/
// erase/scroll primitives.
type Handler interface {
	// Text and control
	Print(r rune)
	Bell()
	Backspace()
	CarriageReturn()
	LineFeed()
	VerticalTab()
	FormFeed()
	Tab(n int)
	BackwardTabs(n int)
	HorizontalTabSet()
	ClearTabs(mode TabulationClearMode)
	ShiftOut()
	ShiftIn()

	// Cursor motion
	MoveUp(n int)
	MoveDown(n int)
	MoveForward(n int)
	MoveBackward(n int)
	MoveDownCR(n int)
	MoveUpCR(n int)
	GotoCol(col int)
	GotoLine(row int)
	Goto(row, col int)
	Index()
	ReverseIndex()
	NextLine()
	SaveCursor()
	RestoreCursor()

	// Erase / insert / delete
	ClearLine(mode LineClearMode)
	ClearScreen(mode ClearMode)
	EraseChars(n int)
	DeleteChars(n int)
	InsertBlank(n int)
	InsertLines(n int)
	DeleteLines(n int)
	InsertColumns(n int)
	DeleteColumns(n int)

	// Scrolling
	ScrollUp(n int)
	ScrollDown(n int)

	// Rectangles (coordinates are 1-based, inclusive, as received)
	CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, srcPage, dstTop, dstLeft, dstPage int)
	EraseRectangle(top, left, bottom, right int)
	FillRectangle(ch rune, top, left, bottom, right int)

	// Modes
	SetAnsiMode(mode AnsiMode, set bool)
	SetDecMode(mode DecMode, set bool)
	RequestAnsiMode(mode AnsiMode) // handler must call Reply with the CSI Ps ; Pm $ y response
	RequestDecMode(mode DecMode)   // handler must call Reply with the DECRQM response
	SaveDecModes(modes []DecMode)
	RestoreDecModes(modes []DecMode)

	// Attributes
	SetCharAttribute(attr CharAttribute)
	SetCursorStyle(style CursorStyle)
	SetScrollingRegion(top, bottom int)
	SetLeftRightMargins(left, right int)

	// Charsets
	ConfigureCharset(index CharsetIndex, charset Charset)
	SetActiveCharset(index CharsetIndex)
	SingleShift2()
	SingleShift3()

	// Reports (handler replies via Reply)
	IdentifyTerminalPrimary()
	IdentifyTerminalSecondary()
	IdentifyTerminalTertiary()
	DeviceStatus(n int)
	ReportCursorPosition(extended bool)
	ReportXTVersion()
	ReportWindowOp(params []int64)

	// Titles
	SetTitle(title string)
	PushTitle()
	PopTitle()

	// Colors
	SetColor(index int, rgba [4]uint8)
	ResetColor(index int)
	SetDynamicColor(which int, rgba [4]uint8)
	ResetDynamicColor(which int)
	QueryDynamicColor(which int) (rgba [4]uint8, ok bool)
	QueryIndexedColor(index int) (rgba [4]uint8, ok bool)

	// Hyperlinks
	SetHyperlink(id, uri string)
	ClearHyperlink()

	// Working directory / clipboard / notify
	SetWorkingDirectory(uri string)
	ClipboardStore(selection byte, data []byte)
	ClipboardLoad(selection byte, terminator string)
	Notify(title, body string)
	SetUserVar(name, value string)

	// Misc screen-wide
	ResetState()
	ScreenAlignmentPattern()
	Substitute()

	// DCS hook results
	SixelImage(width, height uint32, rgba []byte)
	ReplyStatusString(valid bool, payload string)
	ReplyCapability(entries map[string]string)
	SetTerminalProfile(name string)

	// Write-back
	Reply(data []byte)
}
