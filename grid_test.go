package vtcore

import "testing"

func TestNewGrid(t *testing.T) {
	g := NewGrid(24, 80)

	if g.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", g.Rows())
	}
	if g.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", g.Cols())
	}
}

func TestGridCell(t *testing.T) {
	g := NewGrid(24, 80)

	cell := g.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}

	cell.SetChar('A')

	retrieved := g.Cell(0, 0)
	if retrieved.Char() != 'A' {
		t.Errorf("expected 'A', got '%c'", retrieved.Char())
	}
}

func TestGridCellOutOfBounds(t *testing.T) {
	g := NewGrid(24, 80)

	if g.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if g.Cell(0, -1) != nil {
		t.Error("expected nil for negative col")
	}
	if g.Cell(24, 0) != nil {
		t.Error("expected nil for row >= rows")
	}
	if g.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}
}

func TestGridClearRow(t *testing.T) {
	g := NewGrid(24, 80)

	g.Cell(0, 0).SetChar('A')
	g.Cell(0, 1).SetChar('B')

	g.ClearRow(0)

	if g.Cell(0, 0).Char() != ' ' {
		t.Error("expected cell to be cleared")
	}
	if g.Cell(0, 1).Char() != ' ' {
		t.Error("expected cell to be cleared")
	}
}

func TestGridScrollUp(t *testing.T) {
	g := NewGrid(5, 10)

	for row := 0; row < 5; row++ {
		g.Cell(row, 0).SetChar(rune('0' + row))
	}

	g.ScrollUp(0, 5, 1)

	if g.Cell(0, 0).Char() != '1' {
		t.Errorf("expected '1', got '%c'", g.Cell(0, 0).Char())
	}
	if g.Cell(4, 0).Char() != ' ' {
		t.Errorf("expected space, got '%c'", g.Cell(4, 0).Char())
	}
}

func TestGridScrollDown(t *testing.T) {
	g := NewGrid(5, 10)

	for row := 0; row < 5; row++ {
		g.Cell(row, 0).SetChar(rune('0' + row))
	}

	g.ScrollDown(0, 5, 1)

	if g.Cell(1, 0).Char() != '0' {
		t.Errorf("expected '0', got '%c'", g.Cell(1, 0).Char())
	}
	if g.Cell(0, 0).Char() != ' ' {
		t.Errorf("expected space, got '%c'", g.Cell(0, 0).Char())
	}
}

func TestGridScrollback(t *testing.T) {
	storage := &testScrollbackBuffer{lines: make([][]Cell, 0), maxLines: 100}
	g := NewGridWithStorage(5, 10, storage)

	for row := 0; row < 5; row++ {
		g.Cell(row, 0).SetChar(rune('A' + row))
	}

	g.ScrollUp(0, 5, 1)

	if g.ScrollbackLen() != 1 {
		t.Errorf("expected 1 scrollback line, got %d", g.ScrollbackLen())
	}

	line := g.ScrollbackLine(0)
	if line == nil {
		t.Fatal("expected scrollback line")
	}
	if line[0].Char() != 'A' {
		t.Errorf("expected 'A' in scrollback, got '%c'", line[0].Char())
	}
}

// testScrollbackBuffer is a test implementation of ScrollbackProvider.
type testScrollbackBuffer struct {
	lines    [][]Cell
	maxLines int
}

func (s *testScrollbackBuffer) Push(line []Cell) {
	lineCopy := make([]Cell, len(line))
	copy(lineCopy, line)
	s.lines = append(s.lines, lineCopy)
	if s.maxLines > 0 && len(s.lines) > s.maxLines {
		s.lines = s.lines[len(s.lines)-s.maxLines:]
	}
}

func (s *testScrollbackBuffer) Len() int              { return len(s.lines) }
func (s *testScrollbackBuffer) Line(index int) []Cell { return s.lines[index] }
func (s *testScrollbackBuffer) Clear()                { s.lines = make([][]Cell, 0) }
func (s *testScrollbackBuffer) SetMaxLines(max int)   { s.maxLines = max }
func (s *testScrollbackBuffer) MaxLines() int         { return s.maxLines }

func TestGridLineContent(t *testing.T) {
	g := NewGrid(24, 80)

	g.Cell(0, 0).SetChar('H')
	g.Cell(0, 1).SetChar('e')
	g.Cell(0, 2).SetChar('l')
	g.Cell(0, 3).SetChar('l')
	g.Cell(0, 4).SetChar('o')

	content := g.LineContent(0)
	if content != "Hello" {
		t.Errorf("expected 'Hello', got '%s'", content)
	}
}

func TestGridTabStops(t *testing.T) {
	g := NewGrid(24, 80)

	next := g.NextTabStop(0)
	if next != 8 {
		t.Errorf("expected next tab at 8, got %d", next)
	}

	next = g.NextTabStop(8)
	if next != 16 {
		t.Errorf("expected next tab at 16, got %d", next)
	}

	prev := g.PrevTabStop(16)
	if prev != 8 {
		t.Errorf("expected prev tab at 8, got %d", prev)
	}
}

func TestGridResize(t *testing.T) {
	g := NewGrid(10, 20)

	g.Cell(0, 0).SetChar('A')
	g.Cell(5, 10).SetChar('B')

	g.Resize(20, 40)

	if g.Rows() != 20 || g.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", g.Rows(), g.Cols())
	}

	if g.Cell(0, 0).Char() != 'A' {
		t.Error("expected content to be preserved")
	}
	if g.Cell(5, 10).Char() != 'B' {
		t.Error("expected content to be preserved")
	}
}

func TestGridReflowResizeNarrower(t *testing.T) {
	g := NewGrid(3, 10)

	line := "Hello World"
	for i, r := range line {
		if i >= 10 {
			break
		}
		g.Cell(0, i).SetChar(r)
	}
	g.SetWrapped(0, false)

	g.ReflowResize(3, 5)

	if g.Cols() != 5 {
		t.Fatalf("expected 5 cols, got %d", g.Cols())
	}
	if g.LineContent(0) != "Hello" {
		t.Errorf("expected 'Hello' on first reflowed row, got %q", g.LineContent(0))
	}
	if !g.IsWrapped(0) {
		t.Error("expected first reflowed row to be marked wrapped")
	}
}

func TestGridDirtyTracking(t *testing.T) {
	g := NewGrid(24, 80)

	g.ClearAllDirty()

	if g.HasDirty() {
		t.Error("expected no dirty cells")
	}

	g.MarkDirty(0, 0)

	if !g.HasDirty() {
		t.Error("expected dirty cells")
	}

	dirty := g.DirtyCells()
	if len(dirty) != 1 {
		t.Errorf("expected 1 dirty cell, got %d", len(dirty))
	}
	if dirty[0].Row != 0 || dirty[0].Col != 0 {
		t.Error("expected dirty cell at (0,0)")
	}
}

func TestGridInsertBlanks(t *testing.T) {
	g := NewGrid(24, 80)

	g.Cell(0, 0).SetChar('A')
	g.Cell(0, 1).SetChar('B')
	g.Cell(0, 2).SetChar('C')

	g.InsertBlanks(0, 1, 2)

	if g.Cell(0, 0).Char() != 'A' {
		t.Errorf("expected 'A', got '%c'", g.Cell(0, 0).Char())
	}
	if g.Cell(0, 1).Char() != ' ' {
		t.Errorf("expected space, got '%c'", g.Cell(0, 1).Char())
	}
	if g.Cell(0, 2).Char() != ' ' {
		t.Errorf("expected space, got '%c'", g.Cell(0, 2).Char())
	}
	if g.Cell(0, 3).Char() != 'B' {
		t.Errorf("expected 'B', got '%c'", g.Cell(0, 3).Char())
	}
}

func TestGridDeleteChars(t *testing.T) {
	g := NewGrid(24, 80)

	g.Cell(0, 0).SetChar('A')
	g.Cell(0, 1).SetChar('B')
	g.Cell(0, 2).SetChar('C')
	g.Cell(0, 3).SetChar('D')

	g.DeleteChars(0, 1, 2)

	if g.Cell(0, 0).Char() != 'A' {
		t.Errorf("expected 'A', got '%c'", g.Cell(0, 0).Char())
	}
	if g.Cell(0, 1).Char() != 'D' {
		t.Errorf("expected 'D', got '%c'", g.Cell(0, 1).Char())
	}
}

func TestGridWrappedLineTracking(t *testing.T) {
	g := NewGrid(5, 10)

	if g.IsWrapped(0) {
		t.Error("expected line 0 not wrapped initially")
	}

	g.SetWrapped(0, true)
	if !g.IsWrapped(0) {
		t.Error("expected line 0 to be wrapped")
	}

	g.SetWrapped(0, false)
	if g.IsWrapped(0) {
		t.Error("expected line 0 not wrapped after clear")
	}

	g.SetWrapped(-1, true)
	g.SetWrapped(100, true)
	if g.IsWrapped(-1) {
		t.Error("expected false for out of bounds")
	}
	if g.IsWrapped(100) {
		t.Error("expected false for out of bounds")
	}
}

func TestGridWrappedLineTrackingWithScroll(t *testing.T) {
	g := NewGrid(5, 10)

	g.SetWrapped(0, true)
	g.SetWrapped(1, false)
	g.SetWrapped(2, true)

	g.ScrollUp(0, 5, 1)

	if g.IsWrapped(0) != false {
		t.Error("expected line 0 not wrapped after scroll")
	}
	if g.IsWrapped(1) != true {
		t.Error("expected line 1 wrapped after scroll")
	}
	if g.IsWrapped(4) {
		t.Error("expected new line not wrapped")
	}
}

func TestGridGrowRows(t *testing.T) {
	g := NewGrid(5, 10)

	g.Cell(0, 0).SetChar('A')
	g.Cell(4, 0).SetChar('E')

	g.GrowRows(3)

	if g.Rows() != 8 {
		t.Errorf("expected 8 rows, got %d", g.Rows())
	}

	if g.Cell(0, 0).Char() != 'A' {
		t.Error("expected content preserved")
	}
	if g.Cell(4, 0).Char() != 'E' {
		t.Error("expected content preserved")
	}

	if g.Cell(7, 0).Char() != ' ' {
		t.Error("expected new row to be empty")
	}
}
