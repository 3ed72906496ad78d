package vtcore

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint16

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoubleUnderline
	CellFlagCurlyUnderline
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlinkSlow
	CellFlagBlinkFast
	CellFlagReverse
	CellFlagHidden
	CellFlagStrike
	CellFlagOverline
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// maxInlineCombining bounds how many combining marks a Cell stores inline
// in Codepoints before spilling to the rarely-used overflow slice. Six
// covers the overwhelming majority of real combining-mark sequences (most
// text uses zero or one); a cell with more than that is a degenerate input
// and only pays an allocation in that case.
const maxInlineCombining = 6

// Cell stores the character, colors, and formatting attributes for one
// grid position. Wide characters (2 columns) use a spacer cell in the
// second position. The primary codepoint plus up to maxInlineCombining
// combining marks are stored inline in Codepoints so that printing
// ordinary text never allocates; overflow is the rare spill path for
// degenerate inputs with more combining marks than that.
type Cell struct {
	Codepoints [1 + maxInlineCombining]rune
	numCombining uint8
	overflow     []rune

	Fg             Color
	Bg             Color
	UnderlineColor Color
	Flags          CellFlags

	// HyperlinkID and ImageID index into the Grid's Hyperlink/Image
	// registries; 0 means "none". Using an index instead of a pointer
	// keeps Cell copyable without per-cell heap references.
	HyperlinkID uint32
	ImageID     uint32
}

// NewCell creates a cell initialized with a space character and default
// colors.
func NewCell() Cell {
	c := Cell{
		Fg: namedColor(NamedForeground),
		Bg: namedColor(NamedBackground),
	}
	c.Codepoints[0] = ' '
	return c
}

// Reset clears all attributes and sets the cell back to NewCell's state.
func (c *Cell) Reset() {
	*c = NewCell()
}

// Char returns the cell's primary (non-combining) codepoint.
func (c *Cell) Char() rune {
	return c.Codepoints[0]
}

// SetChar replaces the primary codepoint and discards any combining marks
// accumulated against the previous one.
func (c *Cell) SetChar(r rune) {
	c.Codepoints[0] = r
	c.numCombining = 0
	c.overflow = nil
}

// AddCombining appends a combining mark to the primary codepoint (Unicode
// grapheme clustering, e.g. a base letter followed by U+0301 COMBINING
// ACUTE ACCENT landing in the same cell instead of advancing the cursor).
func (c *Cell) AddCombining(r rune) {
	if int(c.numCombining) < maxInlineCombining {
		c.Codepoints[1+c.numCombining] = r
		c.numCombining++
		return
	}
	c.overflow = append(c.overflow, r)
}

// CombiningMarks returns every combining mark attached to this cell's
// primary codepoint, inline ones first.
func (c *Cell) CombiningMarks() []rune {
	if c.numCombining == 0 && len(c.overflow) == 0 {
		return nil
	}
	out := make([]rune, 0, int(c.numCombining)+len(c.overflow))
	out = append(out, c.Codepoints[1:1+c.numCombining]...)
	out = append(out, c.overflow...)
	return out
}

// Runes returns the primary codepoint followed by its combining marks, the
// full grapheme this cell renders.
func (c *Cell) Runes() []rune {
	out := make([]rune, 0, 1+int(c.numCombining)+len(c.overflow))
	out = append(out, c.Codepoints[0])
	out = append(out, c.Codepoints[1:1+c.numCombining]...)
	out = append(out, c.overflow...)
	return out
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWide returns true if this cell contains a wide character (CJK, emoji,
// etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character
// (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// HasHyperlink returns true if this cell is associated with a hyperlink.
func (c *Cell) HasHyperlink() bool {
	return c.HyperlinkID != 0
}

// HasImage returns true if this cell is associated with an image
// placement.
func (c *Cell) HasImage() bool {
	return c.ImageID != 0
}

// Copy returns a copy of the cell. The overflow slice (present only for
// cells with more than maxInlineCombining marks) is copied too, so
// mutating one cell's overflow never affects the other's.
func (c Cell) Copy() Cell {
	if len(c.overflow) > 0 {
		c.overflow = append([]rune(nil), c.overflow...)
	}
	return c
}
