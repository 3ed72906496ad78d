package vtcore

import "github.com/contourterm/vtcore/vtseq"

// decSpecialGraphics maps ASCII 0x60-0x7e to the VT100 DEC Special Graphics
// character set (line-drawing glyphs), selected via ESC ( 0 / ESC ) 0 onto
// a G-set and then shifted in with SI/SO or LS2/LS3.
var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
	'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£', '~': '·',
}

// Rows and Cols report the active screen's dimensions.
func (s *Screen) Rows() int { s.mu.RLock(); defer s.mu.RUnlock(); return s.rows() }
func (s *Screen) Cols() int { s.mu.RLock(); defer s.mu.RUnlock(); return s.cols() }

// CursorPosition returns the cursor's 0-based row and column within the
// active screen (not adjusted for origin mode: this is the raw physical
// position, matching what a renderer needs).
func (s *Screen) CursorPosition() (row, col int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Row, s.cursor.Col
}

func (s *Screen) CursorVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Visible && s.modes.Dec(vtseq.DecModeDECTCEM)
}

func (s *Screen) SetCursorVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor.Visible = visible
	s.modes.SetDec(vtseq.DecModeDECTCEM, visible)
}

func (s *Screen) CursorStyle() vtseq.CursorStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor.Style
}

// Title returns the current window title.
func (s *Screen) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// WorkingDirectory returns the last URI reported via OSC 7, or "" if none.
func (s *Screen) WorkingDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workingDir
}

// IsAlternateScreen reports whether the alternate screen buffer is active.
func (s *Screen) IsAlternateScreen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onAlt
}

// HasAnsiMode and HasDecMode expose mode state for callers (e.g. a resize
// policy that only reflows when DECAWM is set).
func (s *Screen) HasAnsiMode(mode vtseq.AnsiMode) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes.Ansi(mode)
}

func (s *Screen) HasDecMode(mode vtseq.DecMode) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes.Dec(mode)
}

// ScrollRegion returns the current top/bottom scrolling margins (0-based,
// inclusive).
func (s *Screen) ScrollRegion() (top, bottom int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scrollTop, s.scrollBottom
}

// Margins returns the current left/right margins (0-based, inclusive),
// meaningful only while DECLRMM is enabled.
func (s *Screen) Margins() (left, right int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leftMargin, s.rightMargin
}

// ActiveGrid, PrimaryGrid, and AlternateGrid give read access to the
// underlying Grid for callers that need to inspect cells, dirty state, or
// scrollback directly (e.g. a renderer or the Terminal facade's Snapshot).
func (s *Screen) ActiveGrid() *Grid    { s.mu.RLock(); defer s.mu.RUnlock(); return s.active }
func (s *Screen) PrimaryGrid() *Grid   { s.mu.RLock(); defer s.mu.RUnlock(); return s.primary }
func (s *Screen) AlternateGrid() *Grid { s.mu.RLock(); defer s.mu.RUnlock(); return s.alternate }

func (s *Screen) Palette() *Palette               { return s.palette }
func (s *Screen) Images() *ImageManager           { return s.images }
func (s *Screen) Hyperlinks() *HyperlinkRegistry  { return s.hyperlinks }

// Resize changes both screens' dimensions. reflow controls whether the
// primary screen rewraps logical lines (live terminal resize) or just
// truncates/pads (no reflow); the alternate screen is
// never reflowed, matching xterm.
func (s *Screen) Resize(rows, cols int, reflow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reflow {
		s.primary.ReflowResize(rows, cols)
	} else {
		s.primary.Resize(rows, cols)
	}
	s.alternate.Resize(rows, cols)

	if s.scrollBottom >= rows {
		s.scrollBottom = rows - 1
	}
	if s.scrollTop >= rows {
		s.scrollTop = 0
	}
	if s.rightMargin >= cols {
		s.rightMargin = cols - 1
	}
	if s.leftMargin >= cols {
		s.leftMargin = 0
	}
	if s.cursor.Row >= rows {
		s.cursor.Row = rows - 1
	}
	if s.cursor.Col >= cols {
		s.cursor.Col = cols - 1
	}
}

// DirtyCells, HasDirty, ClearAllDirty, and LineContent pass through to the
// active grid for incremental-rendering callers.
func (s *Screen) DirtyCells() []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.DirtyCells()
}

func (s *Screen) HasDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.HasDirty()
}

func (s *Screen) ClearAllDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active.ClearAllDirty()
}

func (s *Screen) LineContent(row int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active.LineContent(row)
}
