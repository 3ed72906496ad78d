package vtcore

import "github.com/contourterm/vtcore/vtseq"

// ColorKind distinguishes the four forms a cell's foreground, background,
// or underline color can take. Color is a small value type rather than an
// image/color.Color interface so that setting a cell's color never
// allocates: Cell.Fg and Cell.Bg are stored inline.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
	ColorNamed
)

// Color is a tagged color value. Only the fields relevant to Kind are
// meaningful: Index for Indexed/Named, R/G/B for RGB.
type Color struct {
	Kind    ColorKind
	Index   uint16
	R, G, B uint8
}

// RGBColor builds a truecolor Color.
func RGBColor(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// IndexColor builds a 256-color-palette Color.
func IndexColor(index uint8) Color { return Color{Kind: ColorIndexed, Index: uint16(index)} }

// namedColor builds a Color referring to one of the semantic slots below
// (default fg/bg, cursor, dim variants).
func namedColor(index uint16) Color { return Color{Kind: ColorNamed, Index: index} }

// Named color indices for semantic colors.
const (
	NamedForeground       = 256 // Default foreground text color
	NamedBackground       = 257 // Default background color
	NamedCursor           = 258 // Cursor color
	NamedDimBlack         = 259
	NamedDimRed           = 260
	NamedDimGreen         = 261
	NamedDimYellow        = 262
	NamedDimBlue          = 263
	NamedDimMagenta       = 264
	NamedDimCyan          = 265
	NamedDimWhite         = 266
	NamedBrightForeground = 267
	NamedDimForeground    = 268
)

// RGBA is a plain 8-bit-per-channel color, used only at the point where a
// Color is resolved for rendering or for a DSR/OSC reply.
type RGBA struct{ R, G, B, A uint8 }

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15),
// a 216 color cube (16-231), and 24 grayscale steps (232-255).
var DefaultPalette [256]RGBA

func init() {
	standard := []RGBA{
		{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
		{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
		{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
		{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
	}
	copy(DefaultPalette[:16], standard)

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = RGBA{uint8(r * 51), uint8(g * 51), uint8(b * 51), 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground, DefaultBackground, and DefaultCursorColor seed a new
// Palette's semantic slots.
var (
	DefaultForeground  = RGBA{229, 229, 229, 255}
	DefaultBackground  = RGBA{0, 0, 0, 255}
	DefaultCursorColor = RGBA{229, 229, 229, 255}
)

// Palette holds the mutable color state a Screen owns: the 256-slot
// indexed table (mutated by OSC 4) plus the dynamic default/cursor colors
// (mutated by OSC 10-19). It starts as a copy of DefaultPalette so resets
// (RIS, OSC 104) can restore it cheaply.
type Palette struct {
	table      [256]RGBA
	foreground RGBA
	background RGBA
	cursor     RGBA
}

// NewPalette returns a Palette seeded from DefaultPalette.
func NewPalette() *Palette {
	return &Palette{
		table:      DefaultPalette,
		foreground: DefaultForeground,
		background: DefaultBackground,
		cursor:     DefaultCursorColor,
	}
}

// Set stores an explicit RGBA at a 256-color index (OSC 4).
func (p *Palette) Set(index int, rgba [4]uint8) {
	if index < 0 || index > 255 {
		return
	}
	p.table[index] = RGBA{rgba[0], rgba[1], rgba[2], rgba[3]}
}

// Reset restores one 256-color index to its default, or the whole table
// when index is negative (OSC 104 with no arguments).
func (p *Palette) Reset(index int) {
	if index < 0 {
		p.table = DefaultPalette
		return
	}
	if index > 255 {
		return
	}
	p.table[index] = DefaultPalette[index]
}

// SetDynamic stores a semantic color: which follows OSC 10-19 numbering
// (0 = foreground, 1 = background, 2 = cursor; other slots are accepted
// but not currently distinguished).
func (p *Palette) SetDynamic(which int, rgba [4]uint8) {
	c := RGBA{rgba[0], rgba[1], rgba[2], rgba[3]}
	switch which {
	case 0:
		p.foreground = c
	case 1:
		p.background = c
	case 2:
		p.cursor = c
	}
}

// QueryDynamic returns the current value of an OSC 10-19 semantic slot.
func (p *Palette) QueryDynamic(which int) ([4]uint8, bool) {
	var c RGBA
	switch which {
	case 0:
		c = p.foreground
	case 1:
		c = p.background
	case 2:
		c = p.cursor
	default:
		return [4]uint8{}, false
	}
	return [4]uint8{c.R, c.G, c.B, c.A}, true
}

// ResetDynamic restores one OSC 10-19 semantic slot to its startup default.
func (p *Palette) ResetDynamic(which int) {
	switch which {
	case 0:
		p.foreground = DefaultForeground
	case 1:
		p.background = DefaultBackground
	case 2:
		p.cursor = DefaultCursorColor
	}
}

// QueryIndexed returns the current 256-color table entry (OSC 4 "?" form).
func (p *Palette) QueryIndexed(index int) ([4]uint8, bool) {
	if index < 0 || index > 255 {
		return [4]uint8{}, false
	}
	c := p.table[index]
	return [4]uint8{c.R, c.G, c.B, c.A}, true
}

// Resolve turns a Color into a concrete RGBA using this palette's current
// state. fg selects the default slot when c is ColorDefault.
func (p *Palette) Resolve(c Color, fg bool) RGBA {
	switch c.Kind {
	case ColorRGB:
		return RGBA{c.R, c.G, c.B, 255}
	case ColorIndexed:
		if c.Index < 256 {
			return p.table[c.Index]
		}
	case ColorNamed:
		return p.resolveNamed(c.Index)
	}
	if fg {
		return p.foreground
	}
	return p.background
}

func (p *Palette) resolveNamed(name uint16) RGBA {
	switch {
	case name < 16:
		return p.table[name]
	case name == NamedForeground:
		return p.foreground
	case name == NamedBackground:
		return p.background
	case name == NamedCursor:
		return p.cursor
	case name >= NamedDimBlack && name <= NamedDimWhite:
		return dim(p.table[name-NamedDimBlack])
	case name == NamedBrightForeground:
		return p.table[15]
	case name == NamedDimForeground:
		return dim(p.foreground)
	}
	return p.foreground
}

func dim(c RGBA) RGBA {
	return RGBA{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
		A: 255,
	}
}

// colorFromSpec converts the vtseq color representation (produced by the
// SGR mini-parser, which knows nothing about vtcore) into our Color.
func colorFromSpec(v vtseq.Color) (Color, bool) {
	spec, ok := v.(vtseq.ColorSpec)
	if !ok {
		return Color{}, false
	}
	switch spec.Kind {
	case vtseq.ColorIndexed:
		return IndexColor(spec.Index), true
	case vtseq.ColorRGB:
		return RGBColor(spec.R, spec.G, spec.B), true
	}
	return Color{}, false
}
