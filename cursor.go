package vtcore

import "github.com/contourterm/vtcore/vtseq"

// CursorStyle, CharsetIndex, and Charset are the vtseq enums re-exported
// under vtcore's own names: the Handler interface already pins their
// numeric meaning, so Screen has no reason to keep a second, divergent
// copy of them.
type CursorStyle = vtseq.CursorStyle

const (
	CursorStyleBlinkingBlock     = vtseq.CursorStyleBlinkingBlock
	CursorStyleSteadyBlock       = vtseq.CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline = vtseq.CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline   = vtseq.CursorStyleSteadyUnderline
	CursorStyleBlinkingBar       = vtseq.CursorStyleBlinkingBar
	CursorStyleSteadyBar         = vtseq.CursorStyleSteadyBar
)

type CharsetIndex = vtseq.CharsetIndex

const (
	CharsetIndexG0 = vtseq.CharsetIndexG0
	CharsetIndexG1 = vtseq.CharsetIndexG1
	CharsetIndexG2 = vtseq.CharsetIndexG2
	CharsetIndexG3 = vtseq.CharsetIndexG3
)

type Charset = vtseq.Charset

const (
	CharsetASCII              = vtseq.CharsetASCII
	CharsetDECSpecialGraphics = vtseq.CharsetDECSpecialGraphics
	CharsetUK                 = vtseq.CharsetUK
)

// Cursor tracks the current position and rendering style (0-based
// coordinates).
type Cursor struct {
	Row     int
	Col     int
	Style   CursorStyle
	Visible bool
}

// NewCursor creates a cursor at (0, 0) with blinking block style, visible.
func NewCursor() *Cursor {
	return &Cursor{
		Style:   CursorStyleBlinkingBlock,
		Visible: true,
	}
}

// SavedCursor stores cursor position, cell attributes, and charset state
// for restoration (DECSC/DECRC, and the implicit save/restore around
// switching to/from the alternate screen).
type SavedCursor struct {
	Row          int
	Col          int
	Attrs        CellTemplate
	OriginMode   bool
	ActiveCharset CharsetIndex
	Charsets     [4]Charset
}

// CellTemplate defines default attributes applied to newly written
// characters, modified by SGR escape sequences.
type CellTemplate struct {
	Cell
}

// NewCellTemplate creates a template with default attributes (no colors,
// no flags).
func NewCellTemplate() CellTemplate {
	return CellTemplate{Cell: NewCell()}
}
