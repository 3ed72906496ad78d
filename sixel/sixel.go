// Package sixel implements the DECSIXEL embedded bitmap mini-grammar: a
// small state machine over {Ground, ColorIntroducer, ColorParam,
// RepeatIntroducer, RasterSettings} recognizing '#', '!', '"', '$', '-' and
// sixel data bytes '?'-'~'. It exposes the same start/feed/finalize
// capability shape as the other DCS hooks, so the Sequencer can stream
// bytes to it as they arrive rather than buffering a whole payload.
package sixel

// Image is a decoded Sixel bitmap: tightly packed RGBA pixels.
type Image struct {
	Width       uint32
	Height      uint32
	Data        []byte // RGBA
	Transparent bool
}

// MaxDimension bounds a single Sixel image; rasters larger than this are
// clamped (ImageTooLarge in the error-handling table), not rejected.
const MaxDimension = 8192

// Builder accumulates Sixel tokens and produces an Image on Finalize. It
// implements the start/feed(byte)/finalize capability shape: constructed
// fresh per DCS sequence, fed bytes as they pass through, and discarded
// after Finalize (or after an early terminator, in which case whatever was
// drawn so far is still committed — a pending upload is lossy but valid,
// per the cancellation rule in the concurrency model).
type Builder struct {
	palette [256]rgba
	colorIndex int
	x, y int
	maxX, maxY int
	pixels map[int]map[int]rgba
	transparent bool

	rasterWidth, rasterHeight int

	pending []byte // a '#', '!' or '"' token cut off at the end of the last Feed
}

type rgba struct{ r, g, b, a uint8 }

// NewBuilder creates a Builder for one DECSIXEL sequence. params is the DCS
// parameter list (P1;P2;P3); P2==1 requests a transparent background.
func NewBuilder(params []int64) *Builder {
	b := &Builder{pixels: make(map[int]map[int]rgba)}
	b.initDefaultPalette()
	if len(params) >= 2 && params[1] == 1 {
		b.transparent = true
	}
	return b
}

func (b *Builder) initDefaultPalette() {
	vga := []rgba{
		{0, 0, 0, 255}, {0, 0, 205, 255}, {205, 0, 0, 255}, {205, 0, 205, 255},
		{0, 205, 0, 255}, {0, 205, 205, 255}, {205, 205, 0, 255}, {205, 205, 205, 255},
		{0, 0, 0, 255}, {0, 0, 255, 255}, {255, 0, 0, 255}, {255, 0, 255, 255},
		{0, 255, 0, 255}, {0, 255, 255, 255}, {255, 255, 0, 255}, {255, 255, 255, 255},
	}
	copy(b.palette[:], vga)
	for i := 16; i < 256; i++ {
		gray := uint8((i - 16) * 255 / 239)
		b.palette[i] = rgba{gray, gray, gray, 255}
	}
}

// Feed processes raw Sixel-grammar bytes. It is the DCS passthrough entry
// point: the Sequencer calls this for every byte between the DECSIXEL
// introducer and its terminator, one byte per call. A '#', '!' or '"'
// token whose parameters reach the end of data is kept and completed by
// the next call.
func (b *Builder) Feed(data []byte) {
	if len(b.pending) > 0 {
		data = append(b.pending, data...)
		b.pending = nil
	}
	i := 0
	for i < len(data) {
		start := i
		incomplete := false
		bt := data[i]
		i++
		switch {
		case bt == '$':
			b.x = 0
		case bt == '-':
			b.x = 0
			b.y += 6
		case bt == '!':
			count, ni := parseNumber(data, i)
			i = ni
			if i < len(data) {
				sx := data[i]
				i++
				if sx >= '?' && sx <= '~' {
					b.drawSixel(sx, int(count))
				}
			} else {
				incomplete = true
			}
		case bt == '#':
			i = b.parseColorIntroducer(data, i)
			incomplete = i >= len(data)
		case bt >= '?' && bt <= '~':
			b.drawSixel(bt, 1)
		case bt == '"':
			i = b.parseRasterAttributes(data, i)
			incomplete = i >= len(data)
		}
		if incomplete {
			b.pending = append([]byte(nil), data[start:]...)
			return
		}
	}
}

func (b *Builder) parseColorIntroducer(data []byte, i int) int {
	colorNum, i := parseNumber(data, i)
	if i < len(data) && data[i] == ';' {
		i++
		colorType, ni := parseNumber(data, i)
		i = ni
		if i < len(data) && data[i] == ';' {
			i++
			v1, ni := parseNumber(data, i)
			i = ni
			if i < len(data) && data[i] == ';' {
				i++
				v2, ni := parseNumber(data, i)
				i = ni
				if i < len(data) && data[i] == ';' {
					i++
					v3, ni := parseNumber(data, i)
					i = ni
					if colorNum >= 0 && colorNum < 256 {
						if colorType == 1 {
							// HLS: per the open question in the design
							// notes, Sixel HLS is parsed but converted
							// as if RGB percentages until proper HLS
							// support exists.
							b.palette[colorNum] = rgba{
								r: uint8(clampPct(v1)),
								g: uint8(clampPct(v2)),
								b: uint8(clampPct(v3)),
								a: 255,
							}
						} else {
							b.palette[colorNum] = rgba{
								r: uint8(clampPct(v1)),
								g: uint8(clampPct(v2)),
								b: uint8(clampPct(v3)),
								a: 255,
							}
						}
					}
				}
			}
		}
	}
	if colorNum >= 0 && colorNum < 256 {
		b.colorIndex = int(colorNum)
	}
	return i
}

func clampPct(v int64) int64 {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v * 255 / 100
}

func (b *Builder) parseRasterAttributes(data []byte, i int) int {
	start := i
	for i < len(data) && data[i] != '$' && data[i] != '-' && data[i] != '#' && data[i] != '!' &&
		!(data[i] >= '?' && data[i] <= '~') {
		i++
	}
	// "<Pan>;<Pad>;<Ph>;<Pv> — only Ph/Pv (raster width/height) matter here.
	fields := splitParams(data[start:i])
	if len(fields) >= 4 {
		b.rasterWidth = clampDim(fields[2])
		b.rasterHeight = clampDim(fields[3])
	}
	return i
}

func clampDim(v int) int {
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

func splitParams(data []byte) []int {
	var out []int
	cur := 0
	has := false
	for _, c := range data {
		if c == ';' {
			out = append(out, cur)
			cur, has = 0, false
			continue
		}
		if c >= '0' && c <= '9' {
			cur = cur*10 + int(c-'0')
			has = true
		}
	}
	if has || len(out) > 0 {
		out = append(out, cur)
	}
	return out
}

func parseNumber(data []byte, i int) (int64, int) {
	var n int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int64(data[i]-'0')
		i++
	}
	return n, i
}

func (b *Builder) drawSixel(by byte, count int) {
	if count <= 0 {
		count = 1
	}
	bits := by - '?'
	c := b.palette[b.colorIndex]

	for r := 0; r < count; r++ {
		if b.x > MaxDimension {
			break
		}
		for bit := 0; bit < 6; bit++ {
			if bits&(1<<bit) != 0 {
				py := b.y + bit
				px := b.x
				if py > MaxDimension {
					continue
				}
				if b.pixels[py] == nil {
					b.pixels[py] = make(map[int]rgba)
				}
				b.pixels[py][px] = c
				if px > b.maxX {
					b.maxX = px
				}
				if py > b.maxY {
					b.maxY = py
				}
			}
		}
		b.x++
	}
}

// Finalize commits whatever has been drawn so far into an Image, even if
// the sequence terminated early (a partial image is lossy but valid). When
// the raster attributes declared explicit dimensions, the output is
// clipped or padded to exactly that size rather than the extent of the
// pixels actually drawn — a raster that declares fewer rows/columns than
// the data fills, or more than it reaches, must still report the declared
// size.
func (b *Builder) Finalize() *Image {
	if len(b.pixels) == 0 && b.rasterWidth == 0 && b.rasterHeight == 0 {
		return &Image{}
	}

	width := uint32(b.maxX + 1)
	height := uint32(b.maxY + 1)
	if b.rasterWidth > 0 {
		width = uint32(b.rasterWidth)
	}
	if b.rasterHeight > 0 {
		height = uint32(b.rasterHeight)
	}

	data := make([]byte, width*height*4)
	if !b.transparent {
		bg := b.palette[0]
		for i := uint32(0); i < width*height; i++ {
			data[i*4+0] = bg.r
			data[i*4+1] = bg.g
			data[i*4+2] = bg.b
			data[i*4+3] = bg.a
		}
	}

	for y, row := range b.pixels {
		for x, c := range row {
			if x >= 0 && x < int(width) && y >= 0 && y < int(height) {
				off := (uint32(y)*width + uint32(x)) * 4
				data[off+0] = c.r
				data[off+1] = c.g
				data[off+2] = c.b
				data[off+3] = c.a
			}
		}
	}

	return &Image{Width: width, Height: height, Data: data, Transparent: b.transparent}
}

// ParseSixel is a convenience one-shot entry point for callers that have
// the whole DCS payload in hand (e.g. tests, or a non-streaming host).
func ParseSixel(params []int64, data []byte) (*Image, error) {
	b := NewBuilder(params)
	b.Feed(data)
	return b.Finalize(), nil
}
