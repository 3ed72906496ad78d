package vtcore

import (
	"encoding/base64"
	"fmt"

	"github.com/contourterm/vtcore/vtseq"
)

// DumpDetail selects how much information Screen.Inspect includes.
type DumpDetail string

const (
	// DumpDetailText returns plain text only.
	DumpDetailText DumpDetail = "text"
	// DumpDetailStyled returns text with style segments per line.
	DumpDetailStyled DumpDetail = "styled"
	// DumpDetailFull returns full cell-by-cell data.
	DumpDetailFull DumpDetail = "full"
)

// DebugDump is a point-in-time capture of a Screen's visible grid, for
// serialization, HTML rendering, or test assertions.
type DebugDump struct {
	Size   DumpSize    `json:"size"`
	Cursor DumpCursor  `json:"cursor"`
	Lines  []DumpLine  `json:"lines"`
	Images []DumpImage `json:"images,omitempty"`
}

// DumpSize holds the grid's dimensions.
type DumpSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// DumpCursor holds cursor state.
type DumpCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Style   string `json:"style"`
}

// DumpLine is a single row of the dump.
type DumpLine struct {
	Text     string        `json:"text"`
	Segments []DumpSegment `json:"segments,omitempty"`
	Cells    []DumpCell    `json:"cells,omitempty"`
}

// DumpSegment is a run of cells sharing identical style (DumpDetailStyled).
type DumpSegment struct {
	Text       string     `json:"text"`
	Fg         string     `json:"fg,omitempty"`
	Bg         string     `json:"bg,omitempty"`
	Attributes DumpAttrs  `json:"attrs,omitempty"`
	Hyperlink  *DumpLink  `json:"hyperlink,omitempty"`
}

// DumpCell is one cell with full attributes (DumpDetailFull).
type DumpCell struct {
	Char       string    `json:"char"`
	Fg         string    `json:"fg"`
	Bg         string    `json:"bg"`
	Attributes DumpAttrs `json:"attrs,omitempty"`
	Hyperlink  *DumpLink `json:"hyperlink,omitempty"`
	Wide       bool      `json:"wide,omitempty"`
	WideSpacer bool      `json:"wide_spacer,omitempty"`
}

// DumpAttrs holds the boolean rendering attributes of a cell or segment.
type DumpAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Overline      bool `json:"overline,omitempty"`
}

// DumpLink holds hyperlink metadata for a dumped cell or segment.
type DumpLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// DumpImage describes one image placement (without pixel data).
type DumpImage struct {
	ID          uint32 `json:"id"`
	PlacementID uint32 `json:"placement_id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	PixelWidth  int    `json:"pixel_width"`
	PixelHeight int    `json:"pixel_height"`
	ZIndex      int32  `json:"z_index"`
}

// ImageBlob holds the full pixel data of a stored image, base64 encoded.
type ImageBlob struct {
	ID     uint32 `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Data   string `json:"data"`
}

// ImageBlob returns the full pixel data for a stored image ID, or nil if no
// such image exists.
func (s *Screen) ImageBlob(id uint32) *ImageBlob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img := s.images.Image(id)
	if img == nil {
		return nil
	}
	return &ImageBlob{
		ID:     id,
		Width:  int(img.Width),
		Height: int(img.Height),
		Format: "rgba",
		Data:   base64.StdEncoding.EncodeToString(img.Data),
	}
}

// Inspect captures the active grid's current state at the requested level
// of detail.
func (s *Screen) Inspect(detail DumpDetail) *DebugDump {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grid := s.active
	dump := &DebugDump{
		Size: DumpSize{Rows: grid.Rows(), Cols: grid.Cols()},
		Cursor: DumpCursor{
			Row:     s.cursor.Row,
			Col:     s.cursor.Col,
			Visible: s.cursor.Visible,
			Style:   cursorStyleToString(s.cursor.Style),
		},
		Lines: make([]DumpLine, grid.Rows()),
	}

	for row := 0; row < grid.Rows(); row++ {
		dump.Lines[row] = s.inspectLine(grid, row, detail)
	}
	dump.Images = s.inspectImages()

	return dump
}

func (s *Screen) inspectImages() []DumpImage {
	placements := s.images.Placements()
	if len(placements) == 0 {
		return nil
	}
	out := make([]DumpImage, 0, len(placements))
	for _, p := range placements {
		img := s.images.Image(p.ImageID)
		if img == nil {
			continue
		}
		out = append(out, DumpImage{
			ID:          p.ImageID,
			PlacementID: p.ID,
			Row:         p.Row,
			Col:         p.Col,
			Rows:        p.Rows,
			Cols:        p.Cols,
			PixelWidth:  int(img.Width),
			PixelHeight: int(img.Height),
			ZIndex:      p.ZIndex,
		})
	}
	return out
}

func (s *Screen) inspectLine(grid *Grid, row int, detail DumpDetail) DumpLine {
	line := DumpLine{Text: grid.LineContent(row)}
	switch detail {
	case DumpDetailStyled:
		line.Segments = s.lineToSegments(grid, row)
	case DumpDetailFull:
		line.Cells = s.lineToCells(grid, row)
	}
	return line
}

func (s *Screen) lineToSegments(grid *Grid, row int) []DumpSegment {
	var segments []DumpSegment
	var current *DumpSegment
	var chars []rune

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for col := 0; col < grid.Cols(); col++ {
		cell := grid.Cell(row, col)
		if cell == nil || cell.IsWideSpacer() {
			continue
		}

		fg := s.colorToHex(cell.Fg, true)
		bg := s.colorToHex(cell.Bg, false)
		attrs := cellAttrsToDump(cell)
		link := s.cellHyperlinkToDump(cell)

		if current == nil || !segmentMatches(current, fg, bg, attrs, link) {
			flush()
			current = &DumpSegment{Fg: fg, Bg: bg, Attributes: attrs, Hyperlink: link}
			chars = nil
		}
		chars = append(chars, cell.Char())
	}
	flush()
	return segments
}

func (s *Screen) lineToCells(grid *Grid, row int) []DumpCell {
	cells := make([]DumpCell, 0, grid.Cols())
	for col := 0; col < grid.Cols(); col++ {
		cell := grid.Cell(row, col)
		if cell == nil {
			cells = append(cells, DumpCell{Char: " "})
			continue
		}
		cells = append(cells, DumpCell{
			Char:       string(cell.Char()),
			Fg:         s.colorToHex(cell.Fg, true),
			Bg:         s.colorToHex(cell.Bg, false),
			Attributes: cellAttrsToDump(cell),
			Hyperlink:  s.cellHyperlinkToDump(cell),
			Wide:       cell.IsWide(),
			WideSpacer: cell.IsWideSpacer(),
		})
	}
	return cells
}

func segmentMatches(seg *DumpSegment, fg, bg string, attrs DumpAttrs, link *DumpLink) bool {
	if seg.Fg != fg || seg.Bg != bg || seg.Attributes != attrs {
		return false
	}
	if seg.Hyperlink == nil || link == nil {
		return seg.Hyperlink == link
	}
	return seg.Hyperlink.URI == link.URI && seg.Hyperlink.ID == link.ID
}

func (s *Screen) colorToHex(c Color, fg bool) string {
	if c.Kind == ColorDefault {
		return ""
	}
	rgba := s.palette.Resolve(c, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func cellAttrsToDump(cell *Cell) DumpAttrs {
	return DumpAttrs{
		Bold:   cell.HasFlag(CellFlagBold),
		Dim:    cell.HasFlag(CellFlagDim),
		Italic: cell.HasFlag(CellFlagItalic),
		Underline: cell.HasFlag(CellFlagUnderline) || cell.HasFlag(CellFlagDoubleUnderline) ||
			cell.HasFlag(CellFlagCurlyUnderline) || cell.HasFlag(CellFlagDottedUnderline) ||
			cell.HasFlag(CellFlagDashedUnderline),
		Blink:         cell.HasFlag(CellFlagBlinkSlow) || cell.HasFlag(CellFlagBlinkFast),
		Reverse:       cell.HasFlag(CellFlagReverse),
		Hidden:        cell.HasFlag(CellFlagHidden),
		Strikethrough: cell.HasFlag(CellFlagStrike),
		Overline:      cell.HasFlag(CellFlagOverline),
	}
}

func (s *Screen) cellHyperlinkToDump(cell *Cell) *DumpLink {
	if !cell.HasHyperlink() {
		return nil
	}
	link := s.hyperlinks.Lookup(cell.HyperlinkID)
	if link == nil {
		return nil
	}
	return &DumpLink{ID: link.Key, URI: link.URI}
}

func cursorStyleToString(style vtseq.CursorStyle) string {
	switch style {
	case vtseq.CursorStyleBlinkingBlock, vtseq.CursorStyleSteadyBlock:
		return "block"
	case vtseq.CursorStyleBlinkingUnderline, vtseq.CursorStyleSteadyUnderline:
		return "underline"
	case vtseq.CursorStyleBlinkingBar, vtseq.CursorStyleSteadyBar:
		return "bar"
	default:
		return "block"
	}
}
