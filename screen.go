package vtcore

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/contourterm/vtcore/vtseq"
)

// underlineMask covers every underline style flag; attributes that switch
// the underline style clear the whole mask before setting their own bit, so
// at most one style is ever active at a time.
const underlineMask = CellFlagUnderline | CellFlagDoubleUnderline |
	CellFlagCurlyUnderline | CellFlagDottedUnderline | CellFlagDashedUnderline

// sixelCellWidth and sixelCellHeight are the assumed pixel dimensions of one
// grid cell, used only to decide how many rows/columns a decoded Sixel
// image covers. Real cell metrics are a font/rendering concern this package
// doesn't own; a host application with an actual cell size in pixels should
// adjust placements after the fact.
const (
	sixelCellWidth  = 10
	sixelCellHeight = 20
)

// Screen implements vtseq.Handler: it is where every recognized VT function
// actually lands. It owns the primary and alternate Grid, cursor and saved
// cursor state, the SGR attribute template applied to newly printed cells,
// scrolling/margin state, mode state, the color palette, and the hyperlink
// and image registries. A single sync.RWMutex guards all of it: readers
// (resize planning, snapshots, tests) take RLock, and Handler methods that
// change state take the full Lock. Handler methods that only read state and
// then call out (Bell, Reply, DeviceStatus, RequestAnsiMode, RequestDecMode,
// Notify, the clipboard calls, SetTerminalProfile) take RLock instead.
type Screen struct {
	mu sync.RWMutex

	primary   *Grid
	alternate *Grid
	active    *Grid
	onAlt     bool

	cursor      *Cursor
	savedCursor *SavedCursor

	template CellTemplate

	charsets        [4]Charset
	activeCharset   CharsetIndex
	pendingShift    CharsetIndex
	hasPendingShift bool

	scrollTop, scrollBottom int
	leftMargin, rightMargin int

	modes      *ModeManager
	palette    *Palette
	hyperlinks *HyperlinkRegistry
	curLink    uint32
	images     *ImageManager

	title      string
	titleStack []string

	userVars   map[string]string
	workingDir string

	response ResponseProvider
	bell     BellProvider
	titleP   TitleProvider
	clip     ClipboardProvider
	notify   NotifyProvider
	font     FontProvider
	profile  ProfileProvider

	logger Logger
}

// NewScreen creates a Screen of the given size with noop providers; callers
// wire real providers with the Set*Provider methods (Terminal's option
// pattern does this).
func NewScreen(rows, cols int) *Screen {
	s := &Screen{
		primary:       NewGrid(rows, cols),
		alternate:     NewGridWithStorage(rows, cols, NoopScrollback{}),
		cursor:        NewCursor(),
		template:      NewCellTemplate(),
		activeCharset: CharsetIndexG0,
		scrollTop:     0,
		scrollBottom:  rows - 1,
		leftMargin:    0,
		rightMargin:   cols - 1,
		modes:         NewModeManager(),
		palette:       NewPalette(),
		hyperlinks:    NewHyperlinkRegistry(),
		images:        NewImageManager(),
		userVars:      make(map[string]string),
		response:      NoopResponse{},
		bell:          NoopBell{},
		titleP:        NoopTitle{},
		clip:          NoopClipboard{},
		notify:        NoopNotify{},
		font:          NoopFont{},
		profile:       NoopProfile{},
		logger:        NoopLogger{},
	}
	s.active = s.primary
	return s
}

// --- Provider wiring ---

func (s *Screen) SetResponseProvider(p ResponseProvider) { s.mu.Lock(); s.response = p; s.mu.Unlock() }
func (s *Screen) SetBellProvider(p BellProvider)          { s.mu.Lock(); s.bell = p; s.mu.Unlock() }
func (s *Screen) SetTitleProvider(p TitleProvider)        { s.mu.Lock(); s.titleP = p; s.mu.Unlock() }
func (s *Screen) SetClipboardProvider(p ClipboardProvider) { s.mu.Lock(); s.clip = p; s.mu.Unlock() }
func (s *Screen) SetNotifyProvider(p NotifyProvider)      { s.mu.Lock(); s.notify = p; s.mu.Unlock() }
func (s *Screen) SetFontProvider(p FontProvider)          { s.mu.Lock(); s.font = p; s.mu.Unlock() }
func (s *Screen) SetProfileProvider(p ProfileProvider)    { s.mu.Lock(); s.profile = p; s.mu.Unlock() }
func (s *Screen) SetLogger(l Logger)                      { s.mu.Lock(); s.logger = l; s.mu.Unlock() }
func (s *Screen) SetScrollbackProvider(p ScrollbackProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary.SetScrollbackProvider(p)
}

// --- Bounds helpers ---

func (s *Screen) rows() int { return s.active.Rows() }
func (s *Screen) cols() int { return s.active.Cols() }

func (s *Screen) topBound() int {
	if s.modes.Dec(vtseq.DecModeDECOM) {
		return s.scrollTop
	}
	return 0
}

func (s *Screen) bottomBound() int {
	if s.modes.Dec(vtseq.DecModeDECOM) {
		return s.scrollBottom
	}
	return s.rows() - 1
}

func (s *Screen) leftBound() int {
	if s.modes.Dec(vtseq.DecModeDECLRMM) {
		return s.leftMargin
	}
	return 0
}

func (s *Screen) rightBound() int {
	if s.modes.Dec(vtseq.DecModeDECLRMM) {
		return s.rightMargin
	}
	return s.cols() - 1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Text and control ---

func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

func (s *Screen) currentCharset() Charset {
	idx := s.activeCharset
	if s.hasPendingShift {
		idx = s.pendingShift
	}
	return s.charsets[idx]
}

func (s *Screen) translate(r rune) rune {
	if s.currentCharset() == CharsetDECSpecialGraphics {
		if g, ok := decSpecialGraphics[r]; ok {
			return g
		}
	}
	return r
}

func (s *Screen) attachCombining(r rune) {
	col := s.cursor.Col - 1
	if col < 0 {
		return
	}
	cell := s.active.Cell(s.cursor.Row, col)
	if cell != nil && cell.IsWideSpacer() && col > 0 {
		col--
		cell = s.active.Cell(s.cursor.Row, col)
	}
	if cell != nil {
		cell.AddCombining(r)
		s.active.MarkDirty(s.cursor.Row, col)
	}
}

func (s *Screen) Print(r rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printLocked(r)
}

func (s *Screen) printLocked(r rune) {
	if isCombiningMark(r) {
		s.attachCombining(r)
		return
	}

	r = s.translate(r)
	s.hasPendingShift = false

	w := runeWidth(r)
	if w == 0 {
		w = 1
	}

	right := s.rightBound()
	if s.cursor.Col > right {
		if s.modes.Dec(vtseq.DecModeDECAWM) {
			s.active.SetWrapped(s.cursor.Row, true)
			s.indexLocked()
			s.cursor.Col = s.leftBound()
		} else {
			s.cursor.Col = right
		}
	}

	if w == 2 && s.cursor.Col == right {
		s.active.SetCell(s.cursor.Row, s.cursor.Col, NewCell())
		if s.modes.Dec(vtseq.DecModeDECAWM) {
			s.active.SetWrapped(s.cursor.Row, true)
			s.indexLocked()
			s.cursor.Col = s.leftBound()
		}
	}

	if s.modes.Ansi(vtseq.AnsiModeIRM) {
		s.active.InsertBlanks(s.cursor.Row, s.cursor.Col, w)
	}

	cell := s.template.Cell
	cell.SetChar(r)
	if w == 2 {
		cell.SetFlag(CellFlagWideChar)
	}
	if s.curLink != 0 {
		cell.HyperlinkID = s.curLink
	}
	s.active.SetCell(s.cursor.Row, s.cursor.Col, cell)
	s.cursor.Col++

	if w == 2 {
		spacer := s.template.Cell
		spacer.SetFlag(CellFlagWideChar | CellFlagWideCharSpacer)
		if s.curLink != 0 {
			spacer.HyperlinkID = s.curLink
		}
		s.active.SetCell(s.cursor.Row, s.cursor.Col, spacer)
		s.cursor.Col++
	}
}

func (s *Screen) Bell() { s.mu.RLock(); b := s.bell; s.mu.RUnlock(); b.Ring() }

func (s *Screen) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Col > s.leftBound() {
		s.cursor.Col--
	}
}

func (s *Screen) CarriageReturn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = s.leftBound()
}

func (s *Screen) scrollRegionUp(n int)   { s.active.ScrollUp(s.scrollTop, s.scrollBottom+1, n) }
func (s *Screen) scrollRegionDown(n int) { s.active.ScrollDown(s.scrollTop, s.scrollBottom+1, n) }

func (s *Screen) indexLocked() {
	if s.cursor.Row == s.scrollBottom {
		s.scrollRegionUp(1)
	} else if s.cursor.Row < s.rows()-1 {
		s.cursor.Row++
	}
}

func (s *Screen) reverseIndexLocked() {
	if s.cursor.Row == s.scrollTop {
		s.scrollRegionDown(1)
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}

func (s *Screen) LineFeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexLocked()
	if s.modes.Ansi(vtseq.AnsiModeLNM) {
		s.cursor.Col = s.leftBound()
	}
}

// VerticalTab and FormFeed behave identically to LineFeed: ECMA-48 defines
// them as pure IND (no carriage return), but every shell and full-screen
// program in practice relies on the common terminal convention that VT/FF
// act just like LF, so that is what this implements.
func (s *Screen) VerticalTab() { s.LineFeed() }
func (s *Screen) FormFeed()    { s.LineFeed() }

func (s *Screen) Tab(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = 1
	}
	right := s.rightBound()
	for i := 0; i < n; i++ {
		next := s.active.NextTabStop(s.cursor.Col)
		if next <= s.cursor.Col {
			break
		}
		s.cursor.Col = next
	}
	if s.cursor.Col > right {
		s.cursor.Col = right
	}
}

func (s *Screen) BackwardTabs(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		prev := s.active.PrevTabStop(s.cursor.Col)
		if prev >= s.cursor.Col {
			break
		}
		s.cursor.Col = prev
	}
}

func (s *Screen) HorizontalTabSet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.SetTabStop(s.cursor.Col)
}

func (s *Screen) ClearTabs(mode vtseq.TabulationClearMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == vtseq.TabClearAll {
		s.active.ClearAllTabStops()
	} else {
		s.active.ClearTabStop(s.cursor.Col)
	}
}

func (s *Screen) ShiftOut() { s.mu.Lock(); s.activeCharset = CharsetIndexG1; s.mu.Unlock() }
func (s *Screen) ShiftIn()  { s.mu.Lock(); s.activeCharset = CharsetIndexG0; s.mu.Unlock() }

// --- Cursor motion ---

func (s *Screen) MoveUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.cursor.Row-n, s.topBound(), s.bottomBound())
}

func (s *Screen) MoveDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.cursor.Row+n, s.topBound(), s.bottomBound())
}

func (s *Screen) MoveForward(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clampInt(s.cursor.Col+n, s.leftBound(), s.rightBound())
}

func (s *Screen) MoveBackward(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clampInt(s.cursor.Col-n, s.leftBound(), s.rightBound())
}

func (s *Screen) MoveDownCR(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.cursor.Row+n, s.topBound(), s.bottomBound())
	s.cursor.Col = s.leftBound()
}

func (s *Screen) MoveUpCR(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.cursor.Row-n, s.topBound(), s.bottomBound())
	s.cursor.Col = s.leftBound()
}

func (s *Screen) GotoCol(col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Col = clampInt(s.leftBound()+col, s.leftBound(), s.rightBound())
}

func (s *Screen) GotoLine(row int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.topBound()+row, s.topBound(), s.bottomBound())
}

func (s *Screen) Goto(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Row = clampInt(s.topBound()+row, s.topBound(), s.bottomBound())
	s.cursor.Col = clampInt(s.leftBound()+col, s.leftBound(), s.rightBound())
}

func (s *Screen) Index() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexLocked()
}

func (s *Screen) ReverseIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reverseIndexLocked()
}

func (s *Screen) NextLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexLocked()
	s.cursor.Col = s.leftBound()
}

func (s *Screen) saveCursorLocked() {
	s.savedCursor = &SavedCursor{
		Row:           s.cursor.Row,
		Col:           s.cursor.Col,
		Attrs:         s.template,
		OriginMode:    s.modes.Dec(vtseq.DecModeDECOM),
		ActiveCharset: s.activeCharset,
		Charsets:      s.charsets,
	}
}

func (s *Screen) restoreCursorLocked() {
	sc := s.savedCursor
	if sc == nil {
		return
	}
	s.cursor.Row, s.cursor.Col = sc.Row, sc.Col
	s.template = sc.Attrs
	s.modes.SetDec(vtseq.DecModeDECOM, sc.OriginMode)
	s.activeCharset = sc.ActiveCharset
	s.charsets = sc.Charsets
}

func (s *Screen) SaveCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCursorLocked()
}

func (s *Screen) RestoreCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreCursorLocked()
}

// --- Erase / insert / delete ---

func (s *Screen) ClearLine(mode vtseq.LineClearMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case vtseq.LineClearRight:
		s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols())
	case vtseq.LineClearLeft:
		s.active.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case vtseq.LineClearAll:
		s.active.ClearRow(s.cursor.Row)
	}
}

func (s *Screen) ClearScreen(mode vtseq.ClearMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case vtseq.ClearBelow:
		s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cols())
		for r := s.cursor.Row + 1; r < s.rows(); r++ {
			s.active.ClearRow(r)
		}
	case vtseq.ClearAbove:
		for r := 0; r < s.cursor.Row; r++ {
			s.active.ClearRow(r)
		}
		s.active.ClearRowRange(s.cursor.Row, 0, s.cursor.Col+1)
	case vtseq.ClearAll:
		s.active.ClearAll()
	case vtseq.ClearSaved:
		s.active.ClearAll()
		s.active.ClearScrollback()
	}
}

func (s *Screen) EraseChars(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.ClearRowRange(s.cursor.Row, s.cursor.Col, s.cursor.Col+n)
}

func (s *Screen) DeleteChars(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.DeleteChars(s.cursor.Row, s.cursor.Col, n)
}

func (s *Screen) InsertBlank(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.InsertBlanks(s.cursor.Row, s.cursor.Col, n)
}

func (s *Screen) InsertLines(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.active.InsertLines(s.cursor.Row, n, s.scrollBottom+1)
}

func (s *Screen) DeleteLines(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	s.active.DeleteLines(s.cursor.Row, n, s.scrollBottom+1)
}

func (s *Screen) InsertColumns(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	top, bottom := s.scrollTop, s.scrollBottom
	left, right := s.leftBound(), s.rightBound()
	if n <= 0 {
		return
	}
	for row := top; row <= bottom; row++ {
		for c := right; c >= left+n; c-- {
			if cell := s.active.Cell(row, c-n); cell != nil {
				s.active.SetCell(row, c, *cell)
			}
		}
		for c := left; c < left+n && c <= right; c++ {
			s.active.SetCell(row, c, NewCell())
		}
	}
}

func (s *Screen) DeleteColumns(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	top, bottom := s.scrollTop, s.scrollBottom
	left, right := s.leftBound(), s.rightBound()
	if n <= 0 {
		return
	}
	for row := top; row <= bottom; row++ {
		for c := left; c <= right-n; c++ {
			if cell := s.active.Cell(row, c+n); cell != nil {
				s.active.SetCell(row, c, *cell)
			}
		}
		for c := right - n + 1; c <= right; c++ {
			if c >= left {
				s.active.SetCell(row, c, NewCell())
			}
		}
	}
}

// --- Scrolling ---

func (s *Screen) ScrollUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollRegionUp(n)
}

func (s *Screen) ScrollDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollRegionDown(n)
}

// --- Rectangles ---

func (s *Screen) CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, srcPage, dstTop, dstLeft, dstPage int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, sl, sb, sr := srcTop-1, srcLeft-1, srcBottom-1, srcRight-1
	dt, dl := dstTop-1, dstLeft-1
	if st > sb || sl > sr {
		return
	}
	h, w := sb-st+1, sr-sl+1
	buf := make([][]Cell, h)
	for i := 0; i < h; i++ {
		buf[i] = make([]Cell, w)
		for j := 0; j < w; j++ {
			if c := s.active.Cell(st+i, sl+j); c != nil {
				buf[i][j] = c.Copy()
				if buf[i][j].HyperlinkID != 0 {
					s.hyperlinks.Retain(buf[i][j].HyperlinkID)
				}
			}
		}
	}
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			s.active.SetCell(dt+i, dl+j, buf[i][j])
		}
	}
}

func (s *Screen) EraseRectangle(top, left, bottom, right int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := top - 1; r <= bottom-1; r++ {
		s.active.ClearRowRange(r, left-1, right)
	}
}

func (s *Screen) FillRectangle(ch rune, top, left, bottom, right int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := top - 1; r <= bottom-1; r++ {
		for c := left - 1; c <= right-1; c++ {
			cell := s.template.Cell
			cell.SetChar(ch)
			s.active.SetCell(r, c, cell)
		}
	}
}

// --- Modes ---

func (s *Screen) switchToAlternateLocked() {
	if s.onAlt {
		return
	}
	s.alternate.ClearAll()
	s.active = s.alternate
	s.onAlt = true
}

func (s *Screen) switchToPrimaryLocked() {
	if !s.onAlt {
		return
	}
	s.active = s.primary
	s.onAlt = false
}

func (s *Screen) SetAnsiMode(mode vtseq.AnsiMode, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes.SetAnsi(mode, set)
}

func (s *Screen) SetDecMode(mode vtseq.DecMode, set bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch mode {
	case vtseq.DecModeOptClear1049:
		if set {
			s.saveCursorLocked()
			s.switchToAlternateLocked()
		} else {
			s.switchToPrimaryLocked()
			s.restoreCursorLocked()
		}
	case vtseq.DecModeOptClear47, vtseq.DecModeOptClear1047:
		if set {
			s.switchToAlternateLocked()
		} else {
			s.switchToPrimaryLocked()
		}
	case vtseq.DecModeDECCOLM:
		cols := 80
		if set {
			cols = 132
		}
		s.primary.ReflowResize(s.primary.Rows(), cols)
		s.alternate.Resize(s.alternate.Rows(), cols)
		s.scrollTop, s.scrollBottom = 0, s.active.Rows()-1
		s.leftMargin, s.rightMargin = 0, cols-1
		s.cursor.Row, s.cursor.Col = 0, 0
		s.active.ClearAll()
	}
	s.modes.SetDec(mode, set)
}

func (s *Screen) RequestAnsiMode(mode vtseq.AnsiMode) {
	s.mu.RLock()
	set := s.modes.Ansi(mode)
	s.mu.RUnlock()
	ps := 2
	if set {
		ps = 1
	}
	s.Reply([]byte(fmt.Sprintf("\x1b[%d;%d$y", int(mode), ps)))
}

func (s *Screen) RequestDecMode(mode vtseq.DecMode) {
	s.mu.RLock()
	set := s.modes.Dec(mode)
	s.mu.RUnlock()
	ps := 2
	if set {
		ps = 1
	}
	s.Reply([]byte(fmt.Sprintf("\x1b[?%d;%d$y", int(mode), ps)))
}

func (s *Screen) SaveDecModes(modes []vtseq.DecMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes.Save(modes)
}

func (s *Screen) RestoreDecModes(modes []vtseq.DecMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes.Restore(modes)
}

// --- Attributes ---

func (s *Screen) SetCharAttribute(attr vtseq.CharAttribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &s.template.Cell
	switch attr.Kind {
	case vtseq.AttrReset:
		*c = NewCell()
	case vtseq.AttrBold:
		c.SetFlag(CellFlagBold)
	case vtseq.AttrDim:
		c.SetFlag(CellFlagDim)
	case vtseq.AttrItalic:
		c.SetFlag(CellFlagItalic)
	case vtseq.AttrUnderline:
		c.ClearFlag(underlineMask)
		c.SetFlag(CellFlagUnderline)
	case vtseq.AttrDoubleUnderline:
		c.ClearFlag(underlineMask)
		c.SetFlag(CellFlagDoubleUnderline)
	case vtseq.AttrCurlyUnderline:
		c.ClearFlag(underlineMask)
		c.SetFlag(CellFlagCurlyUnderline)
	case vtseq.AttrDottedUnderline:
		c.ClearFlag(underlineMask)
		c.SetFlag(CellFlagDottedUnderline)
	case vtseq.AttrDashedUnderline:
		c.ClearFlag(underlineMask)
		c.SetFlag(CellFlagDashedUnderline)
	case vtseq.AttrBlinkSlow:
		c.SetFlag(CellFlagBlinkSlow)
	case vtseq.AttrBlinkFast:
		c.SetFlag(CellFlagBlinkFast)
	case vtseq.AttrReverse:
		c.SetFlag(CellFlagReverse)
	case vtseq.AttrHidden:
		c.SetFlag(CellFlagHidden)
	case vtseq.AttrStrike:
		c.SetFlag(CellFlagStrike)
	case vtseq.AttrOverline:
		c.SetFlag(CellFlagOverline)
	case vtseq.AttrFramed, vtseq.AttrEncircled:
		// not modeled as distinct cell flags
	case vtseq.AttrNoBoldDim:
		c.ClearFlag(CellFlagBold | CellFlagDim)
	case vtseq.AttrNoItalic:
		c.ClearFlag(CellFlagItalic)
	case vtseq.AttrNoUnderline:
		c.ClearFlag(underlineMask)
	case vtseq.AttrNoBlink:
		c.ClearFlag(CellFlagBlinkSlow | CellFlagBlinkFast)
	case vtseq.AttrNoReverse:
		c.ClearFlag(CellFlagReverse)
	case vtseq.AttrNoHidden:
		c.ClearFlag(CellFlagHidden)
	case vtseq.AttrNoStrike:
		c.ClearFlag(CellFlagStrike)
	case vtseq.AttrNoOverline:
		c.ClearFlag(CellFlagOverline)
	case vtseq.AttrNoFramed:
		// no-op, see AttrFramed
	case vtseq.AttrForeground:
		if col, ok := colorFromSpec(attr.Color); ok {
			c.Fg = col
		}
	case vtseq.AttrBackground:
		if col, ok := colorFromSpec(attr.Color); ok {
			c.Bg = col
		}
	case vtseq.AttrUnderlineColor:
		if col, ok := colorFromSpec(attr.Color); ok {
			c.UnderlineColor = col
		}
	case vtseq.AttrDefaultForeground:
		c.Fg = namedColor(NamedForeground)
	case vtseq.AttrDefaultBackground:
		c.Bg = namedColor(NamedBackground)
	case vtseq.AttrDefaultUnderlineColor:
		c.UnderlineColor = Color{}
	}
}

func (s *Screen) SetCursorStyle(style vtseq.CursorStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Style = style
}

func (s *Screen) SetScrollingRegion(top, bottom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rows()
	if top < 0 {
		top = 0
	}
	if bottom <= 0 || bottom >= rows {
		bottom = rows - 1
	}
	if top >= bottom {
		top, bottom = 0, rows-1
	}
	s.scrollTop, s.scrollBottom = top, bottom
	s.cursor.Row, s.cursor.Col = s.topBound(), s.leftBound()
}

func (s *Screen) SetLeftRightMargins(left, right int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cols := s.cols()
	if left < 0 {
		left = 0
	}
	if right <= left || right >= cols {
		right = cols - 1
	}
	s.leftMargin, s.rightMargin = left, right
	s.cursor.Row, s.cursor.Col = s.topBound(), s.leftBound()
}

// --- Charsets ---

func (s *Screen) ConfigureCharset(index vtseq.CharsetIndex, charset vtseq.Charset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charsets[index] = charset
}

func (s *Screen) SetActiveCharset(index vtseq.CharsetIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCharset = index
}

func (s *Screen) SingleShift2() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingShift, s.hasPendingShift = CharsetIndexG2, true
}

func (s *Screen) SingleShift3() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingShift, s.hasPendingShift = CharsetIndexG3, true
}

// --- Reports ---

func (s *Screen) IdentifyTerminalPrimary() {
	s.Reply([]byte("\x1b[?62;1;2;6;8;9;15;18;21;22c"))
}

func (s *Screen) IdentifyTerminalSecondary() {
	s.Reply([]byte("\x1b[>1;10;0c"))
}

func (s *Screen) IdentifyTerminalTertiary() {
	s.Reply([]byte("\x1bP!|00000000\x1b\\"))
}

func (s *Screen) DeviceStatus(n int) {
	switch n {
	case 5:
		s.Reply([]byte("\x1b[0n"))
	case 6:
		s.mu.RLock()
		row, col := s.cursor.Row-s.topBound(), s.cursor.Col-s.leftBound()
		s.mu.RUnlock()
		s.Reply([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)))
	}
}

func (s *Screen) ReportCursorPosition(extended bool) {
	s.mu.RLock()
	row, col := s.cursor.Row-s.topBound(), s.cursor.Col-s.leftBound()
	s.mu.RUnlock()
	if extended {
		s.Reply([]byte(fmt.Sprintf("\x1b[%d;%d;1R", row+1, col+1)))
	} else {
		s.Reply([]byte(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1)))
	}
}

func (s *Screen) ReportXTVersion() {
	s.Reply([]byte("\x1bP>|vtcore(0.1.0)\x1b\\"))
}

func (s *Screen) ReportWindowOp(params []int64) {
	if len(params) == 0 {
		return
	}
	s.mu.RLock()
	rows, cols := s.rows(), s.cols()
	s.mu.RUnlock()
	switch params[0] {
	case 11:
		s.Reply([]byte("\x1b[1t"))
	case 13:
		s.Reply([]byte("\x1b[3;0;0t"))
	case 18:
		s.Reply([]byte(fmt.Sprintf("\x1b[8;%d;%dt", rows, cols)))
	case 19:
		s.Reply([]byte(fmt.Sprintf("\x1b[9;%d;%dt", rows, cols)))
	}
}

// --- Titles ---

func (s *Screen) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	p := s.titleP
	s.mu.Unlock()
	p.SetTitle(title)
}

func (s *Screen) PushTitle() {
	s.mu.Lock()
	s.titleStack = append(s.titleStack, s.title)
	p := s.titleP
	s.mu.Unlock()
	p.PushTitle()
}

func (s *Screen) PopTitle() {
	s.mu.Lock()
	if n := len(s.titleStack); n > 0 {
		s.title = s.titleStack[n-1]
		s.titleStack = s.titleStack[:n-1]
	}
	p := s.titleP
	s.mu.Unlock()
	p.PopTitle()
}

// --- Colors ---

func (s *Screen) SetColor(index int, rgba [4]uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette.Set(index, rgba)
}

func (s *Screen) ResetColor(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette.Reset(index)
}

func (s *Screen) SetDynamicColor(which int, rgba [4]uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette.SetDynamic(which, rgba)
}

func (s *Screen) ResetDynamicColor(which int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.palette.ResetDynamic(which)
}

func (s *Screen) QueryDynamicColor(which int) ([4]uint8, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette.QueryDynamic(which)
}

func (s *Screen) QueryIndexedColor(index int) ([4]uint8, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette.QueryIndexed(index)
}

// --- Hyperlinks ---

func (s *Screen) SetHyperlink(id, uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.curLink = s.hyperlinks.Open(uri, id)
}

func (s *Screen) ClearHyperlink() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curLink != 0 {
		s.hyperlinks.Release(s.curLink)
		s.curLink = 0
	}
}

// --- Working directory / clipboard / notify ---

func (s *Screen) SetWorkingDirectory(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workingDir = uri
}

func (s *Screen) ClipboardStore(selection byte, data []byte) {
	s.mu.RLock()
	c := s.clip
	s.mu.RUnlock()
	c.Write(selection, data)
}

func (s *Screen) ClipboardLoad(selection byte, terminator string) {
	s.mu.RLock()
	c := s.clip
	s.mu.RUnlock()
	data := c.Read(selection)
	encoded := base64.StdEncoding.EncodeToString(data)
	s.Reply([]byte(fmt.Sprintf("\x1b]52;%c;%s%s", selection, encoded, terminator)))
}

func (s *Screen) Notify(title, body string) {
	s.mu.RLock()
	n := s.notify
	s.mu.RUnlock()
	n.Notify(title, body)
}

func (s *Screen) SetUserVar(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userVars[name] = value
}

// GetUserVar, GetUserVars, and ClearUserVars round out the OSC 1337 surface;
// they aren't part of vtseq.Handler since nothing in the VT byte stream
// queries them back (shells read them back out-of-band via the Terminal
// facade).
func (s *Screen) GetUserVar(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.userVars[name]
	return v, ok
}

func (s *Screen) GetUserVars() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.userVars))
	for k, v := range s.userVars {
		out[k] = v
	}
	return out
}

func (s *Screen) ClearUserVars() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userVars = make(map[string]string)
}

// --- Misc screen-wide ---

func (s *Screen) ResetState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary.ClearAll()
	s.alternate.ClearAll()
	s.active = s.primary
	s.onAlt = false
	s.cursor = NewCursor()
	s.savedCursor = nil
	s.template = NewCellTemplate()
	s.charsets = [4]Charset{}
	s.activeCharset = CharsetIndexG0
	s.hasPendingShift = false
	s.scrollTop, s.scrollBottom = 0, s.rows()-1
	s.leftMargin, s.rightMargin = 0, s.cols()-1
	s.modes = NewModeManager()
	s.palette = NewPalette()
	s.title = ""
	s.titleStack = nil
	s.userVars = make(map[string]string)
	s.workingDir = ""
}

func (s *Screen) ScreenAlignmentPattern() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.FillWithE()
}

func (s *Screen) Substitute() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printLocked('�')
}

// --- DCS hook results ---

func (s *Screen) SixelImage(width, height uint32, rgba []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.images.Store(width, height, rgba)

	cols := int(width) / sixelCellWidth
	if cols < 1 {
		cols = 1
	}
	rows := int(height) / sixelCellHeight
	if rows < 1 {
		rows = 1
	}
	if s.cursor.Col+cols > s.cols() {
		cols = s.cols() - s.cursor.Col
	}
	if cols < 1 {
		cols = 1
	}

	s.images.Place(&ImagePlacement{
		ImageID: id,
		Row:     s.cursor.Row,
		Col:     s.cursor.Col,
		Rows:    rows,
		Cols:    cols,
		SrcW:    width,
		SrcH:    height,
	})
	for r := 0; r < rows && s.cursor.Row+r < s.rows(); r++ {
		for c := 0; c < cols; c++ {
			cell := NewCell()
			cell.ImageID = id
			s.active.SetCell(s.cursor.Row+r, s.cursor.Col+c, cell)
		}
	}
	s.cursor.Row += rows
	if s.cursor.Row >= s.rows() {
		s.cursor.Row = s.rows() - 1
	}
	s.cursor.Col = s.leftBound()
}

func (s *Screen) ReplyStatusString(valid bool, payload string) {
	if valid {
		s.Reply([]byte("\x1bP1$r" + payload + "\x1b\\"))
	} else {
		s.Reply([]byte("\x1bP0$r\x1b\\"))
	}
}

func (s *Screen) ReplyCapability(entries map[string]string) {
	if len(entries) == 0 {
		s.Reply([]byte("\x1bP0+r\x1b\\"))
		return
	}
	parts := make([]string, 0, len(entries))
	for name, value := range entries {
		parts = append(parts, fmt.Sprintf("%s=%s", hex.EncodeToString([]byte(name)), hex.EncodeToString([]byte(value))))
	}
	s.Reply([]byte("\x1bP1+r" + strings.Join(parts, ";") + "\x1b\\"))
}

func (s *Screen) SetTerminalProfile(name string) {
	s.mu.RLock()
	p := s.profile
	s.mu.RUnlock()
	p.SetProfile(name)
}

// Reply writes data back to the PTY. Never called while holding s.mu, so a
// provider is free to call back into the Screen without deadlocking.
func (s *Screen) Reply(data []byte) {
	s.mu.RLock()
	r := s.response
	s.mu.RUnlock()
	if r != nil {
		r.Write(data)
	}
}

var _ vtseq.Handler = (*Screen)(nil)
