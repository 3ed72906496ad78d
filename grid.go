package vtcore

// Grid stores a 2D array of cells for one screen (primary or alternate)
// and tracks line-wrap state, tab stops, and dirty cells for incremental
// rendering. Scrollback storage is pluggable via ScrollbackProvider; the
// alternate screen is constructed with NoopScrollback so it never
// accumulates history.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	wrapped    []bool
	dirty      [][]bool
	tabStop    []bool
	scrollback ScrollbackProvider
	hasDirty   bool
}

// NewGrid creates a grid with the given dimensions and no scrollback.
func NewGrid(rows, cols int) *Grid {
	return NewGridWithStorage(rows, cols, NoopScrollback{})
}

// NewGridWithStorage creates a grid with custom scrollback storage. Tab
// stops are initialized every 8 columns.
func NewGridWithStorage(rows, cols int, storage ScrollbackProvider) *Grid {
	g := &Grid{
		rows:       rows,
		cols:       cols,
		cells:      make([][]Cell, rows),
		wrapped:    make([]bool, rows),
		dirty:      make([][]bool, rows),
		tabStop:    make([]bool, cols),
		scrollback: storage,
	}
	for i := range g.cells {
		g.cells[i] = newRow(cols)
		g.dirty[i] = make([]bool, cols)
	}
	for i := 0; i < cols; i += 8 {
		g.tabStop[i] = true
	}
	return g
}

func newRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// Rows returns the grid height in character rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width in character columns.
func (g *Grid) Cols() int { return g.cols }

// Cell returns a pointer to the cell at (row, col), or nil if out of
// bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return nil
	}
	return &g.cells[row][col]
}

// SetCell replaces the cell at (row, col) and marks it dirty. Does
// nothing if coordinates are out of bounds.
func (g *Grid) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row][col] = cell
	g.MarkDirty(row, col)
}

// MarkDirty marks the cell at (row, col) as modified. Does nothing if
// coordinates are out of bounds.
func (g *Grid) MarkDirty(row, col int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.dirty[row][col] = true
	g.hasDirty = true
}

// HasDirty returns true if any cell has been modified since the last
// ClearAllDirty call.
func (g *Grid) HasDirty() bool { return g.hasDirty }

// DirtyCells returns positions of all modified cells.
func (g *Grid) DirtyCells() []Position {
	var positions []Position
	for row := range g.dirty {
		for col := range g.dirty[row] {
			if g.dirty[row][col] {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}
	return positions
}

// ClearAllDirty resets the dirty state of every cell.
func (g *Grid) ClearAllDirty() {
	for row := range g.dirty {
		for col := range g.dirty[row] {
			g.dirty[row][col] = false
		}
	}
	g.hasDirty = false
}

// ClearRow resets all cells in the row to default state and marks them
// dirty.
func (g *Grid) ClearRow(row int) {
	g.ClearRowRange(row, 0, g.cols)
}

// ClearRowRange resets cells in the row from startCol (inclusive) to
// endCol (exclusive).
func (g *Grid) ClearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= g.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > g.cols {
		endCol = g.cols
	}
	for col := startCol; col < endCol; col++ {
		g.cells[row][col].Reset()
		g.MarkDirty(row, col)
	}
}

// ClearAll resets every cell in the grid to default state.
func (g *Grid) ClearAll() {
	for row := range g.cells {
		g.ClearRow(row)
	}
}

// ScrollUp shifts lines up by n positions within [top, bottom). Lines
// scrolled off the top are pushed to scrollback if enabled and top==0.
// Bottom lines are cleared and marked dirty.
func (g *Grid) ScrollUp(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	if g.scrollback != nil && g.scrollback.MaxLines() > 0 && top == 0 {
		for i := 0; i < n; i++ {
			g.scrollback.Push(g.cells[i])
		}
	}

	for row := top; row < bottom-n; row++ {
		g.cells[row] = g.cells[row+n]
		g.wrapped[row] = g.wrapped[row+n]
		for col := 0; col < g.cols; col++ {
			g.MarkDirty(row, col)
		}
	}
	for row := bottom - n; row < bottom; row++ {
		g.cells[row] = newRow(g.cols)
		g.wrapped[row] = false
		for col := 0; col < g.cols; col++ {
			g.MarkDirty(row, col)
		}
	}
}

// ScrollDown shifts lines down by n positions within [top, bottom). Top
// lines are cleared and marked dirty.
func (g *Grid) ScrollDown(top, bottom, n int) {
	if n <= 0 || top >= bottom {
		return
	}
	if top < 0 {
		top = 0
	}
	if bottom > g.rows {
		bottom = g.rows
	}
	if n > bottom-top {
		n = bottom - top
	}

	for row := bottom - 1; row >= top+n; row-- {
		g.cells[row] = g.cells[row-n]
		g.wrapped[row] = g.wrapped[row-n]
		for col := 0; col < g.cols; col++ {
			g.MarkDirty(row, col)
		}
	}
	for row := top; row < top+n; row++ {
		g.cells[row] = newRow(g.cols)
		g.wrapped[row] = false
		for col := 0; col < g.cols; col++ {
			g.MarkDirty(row, col)
		}
	}
}

// InsertLines inserts n blank lines at row, shifting existing lines down.
func (g *Grid) InsertLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	g.ScrollDown(row, bottom, n)
}

// DeleteLines removes n lines at row, shifting remaining lines up.
func (g *Grid) DeleteLines(row, n, bottom int) {
	if row < 0 || row >= bottom || n <= 0 {
		return
	}
	g.ScrollUp(row, bottom, n)
}

// InsertBlanks inserts n blank cells at (row, col), shifting existing
// characters right within the row.
func (g *Grid) InsertBlanks(row, col, n int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}
	for c := g.cols - 1; c >= col+n; c-- {
		g.cells[row][c] = g.cells[row][c-n]
		g.MarkDirty(row, c)
	}
	for c := col; c < col+n && c < g.cols; c++ {
		g.cells[row][c].Reset()
		g.MarkDirty(row, c)
	}
}

// DeleteChars removes n characters at (row, col), shifting the remainder
// of the row left.
func (g *Grid) DeleteChars(row, col, n int) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}
	for c := col; c < g.cols-n; c++ {
		g.cells[row][c] = g.cells[row][c+n]
		g.MarkDirty(row, c)
	}
	for c := g.cols - n; c < g.cols; c++ {
		if c >= 0 {
			g.cells[row][c].Reset()
			g.MarkDirty(row, c)
		}
	}
}

// Resize changes grid dimensions in place, truncating or padding rows and
// columns without reshaping wrapped logical lines. Content stays pinned to
// the top-left corner.
func (g *Grid) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}

	newCells := make([][]Cell, rows)
	newDirty := make([][]bool, rows)
	for i := range newCells {
		newCells[i] = make([]Cell, cols)
		newDirty[i] = make([]bool, cols)
		for j := range newCells[i] {
			if i < g.rows && j < g.cols {
				newCells[i][j] = g.cells[i][j]
			} else {
				newCells[i][j] = NewCell()
			}
			newDirty[i][j] = true
		}
	}

	newWrapped := make([]bool, rows)
	copy(newWrapped, g.wrapped)

	g.cells = newCells
	g.dirty = newDirty
	g.wrapped = newWrapped
	g.rows = rows
	g.cols = cols
	g.hasDirty = true

	newTabStop := make([]bool, cols)
	copy(newTabStop, g.tabStop)
	for i := len(g.tabStop); i < cols; i += 8 {
		newTabStop[i] = true
	}
	g.tabStop = newTabStop
}

// ReflowResize changes grid dimensions while preserving logical lines: runs
// of rows joined by the wrapped flag are first unwrapped into one
// continuous stream of cells, then rewrapped at the new column width. This
// is what DECCOLM and live window resizes use; Resize (no reflow) remains
// available for callers that only want truncate/pad semantics, e.g. the
// alternate screen buffer which xterm never reflows.
func (g *Grid) ReflowResize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if cols == g.cols {
		g.Resize(rows, cols)
		return
	}

	logical := g.logicalLines()
	rewrapped := rewrapLines(logical, cols)

	newCells := make([][]Cell, rows)
	newDirty := make([][]bool, rows)
	newWrapped := make([]bool, rows)

	// Blank lines at the bottom go first, so they never push content out.
	for len(rewrapped) > rows && len(rewrapped[len(rewrapped)-1].cells) == 0 {
		rewrapped = rewrapped[:len(rewrapped)-1]
	}
	start := 0
	if len(rewrapped) > rows {
		start = len(rewrapped) - rows
	}
	for i := 0; i < rows; i++ {
		newDirty[i] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			newDirty[i][c] = true
		}
		src := start + i
		if src < len(rewrapped) {
			newCells[i] = padRow(rewrapped[src].cells, cols)
			newWrapped[i] = rewrapped[src].wrapped
		} else {
			newCells[i] = newRow(cols)
		}
	}

	g.cells = newCells
	g.dirty = newDirty
	g.wrapped = newWrapped
	g.rows = rows
	g.cols = cols
	g.hasDirty = true

	newTabStop := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		newTabStop[i] = true
	}
	g.tabStop = newTabStop
}

type logicalLine struct {
	cells   []Cell
	wrapped bool // the final physical row produced from this line was itself wrapped-continued (always false for the last fragment)
}

// logicalLines joins runs of physically wrapped rows into one cell slice
// per logical line, trimming trailing blank cells off of non-wrapped rows
// (a hard newline never needs to preserve its trailing padding).
func (g *Grid) logicalLines() [][]Cell {
	var lines [][]Cell
	var current []Cell
	for row := 0; row < g.rows; row++ {
		current = append(current, g.cells[row]...)
		if !g.wrapped[row] {
			lines = append(lines, trimTrailingBlank(current))
			current = nil
		}
	}
	if len(current) > 0 {
		lines = append(lines, trimTrailingBlank(current))
	}
	return lines
}

func trimTrailingBlank(cells []Cell) []Cell {
	end := len(cells)
	for end > 0 && cells[end-1].Char() == ' ' && !cells[end-1].HasFlag(CellFlagWideChar|CellFlagWideCharSpacer) {
		end--
	}
	return cells[:end]
}

// rewrapLines splits each logical line into rows of at most cols cells,
// marking every row but the last fragment of a line as wrapped.
func rewrapLines(lines [][]Cell, cols int) []logicalLine {
	var out []logicalLine
	for _, line := range lines {
		if len(line) == 0 {
			out = append(out, logicalLine{})
			continue
		}
		for start := 0; start < len(line); start += cols {
			end := start + cols
			if end > len(line) {
				end = len(line)
			}
			out = append(out, logicalLine{cells: line[start:end], wrapped: end < len(line)})
		}
	}
	return out
}

func padRow(cells []Cell, cols int) []Cell {
	row := make([]Cell, cols)
	copy(row, cells)
	for i := len(cells); i < cols; i++ {
		row[i] = NewCell()
	}
	return row
}

// SetTabStop enables a tab stop at the specified column.
func (g *Grid) SetTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = true
	}
}

// ClearTabStop disables the tab stop at the specified column.
func (g *Grid) ClearTabStop(col int) {
	if col >= 0 && col < g.cols {
		g.tabStop[col] = false
	}
}

// ClearAllTabStops disables all tab stops.
func (g *Grid) ClearAllTabStops() {
	for i := range g.tabStop {
		g.tabStop[i] = false
	}
}

// NextTabStop returns the column of the next enabled tab stop after col,
// or the last column if none is found.
func (g *Grid) NextTabStop(col int) int {
	for c := col + 1; c < g.cols; c++ {
		if g.tabStop[c] {
			return c
		}
	}
	return g.cols - 1
}

// PrevTabStop returns the column of the previous enabled tab stop before
// col, or 0 if none is found.
func (g *Grid) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if g.tabStop[c] {
			return c
		}
	}
	return 0
}

// FillWithE fills every cell with 'E' (the DECALN screen alignment
// pattern).
func (g *Grid) FillWithE() {
	for row := range g.cells {
		for col := range g.cells[row] {
			g.cells[row][col].Reset()
			g.cells[row][col].SetChar('E')
			g.MarkDirty(row, col)
		}
	}
}

// ScrollbackLen returns the number of lines stored in scrollback.
func (g *Grid) ScrollbackLen() int {
	if g.scrollback == nil {
		return 0
	}
	return g.scrollback.Len()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest
// line.
func (g *Grid) ScrollbackLine(index int) []Cell {
	if g.scrollback == nil {
		return nil
	}
	return g.scrollback.Line(index)
}

// ClearScrollback removes all stored scrollback lines.
func (g *Grid) ClearScrollback() {
	if g.scrollback != nil {
		g.scrollback.Clear()
	}
}

// SetMaxScrollback sets the maximum number of scrollback lines to retain.
func (g *Grid) SetMaxScrollback(max int) {
	if g.scrollback != nil {
		g.scrollback.SetMaxLines(max)
	}
}

// MaxScrollback returns the current maximum scrollback capacity.
func (g *Grid) MaxScrollback() int {
	if g.scrollback == nil {
		return 0
	}
	return g.scrollback.MaxLines()
}

// SetScrollbackProvider replaces the scrollback storage implementation.
func (g *Grid) SetScrollbackProvider(storage ScrollbackProvider) {
	g.scrollback = storage
}

// ScrollbackProvider returns the current scrollback storage implementation.
func (g *Grid) ScrollbackProvider() ScrollbackProvider {
	return g.scrollback
}

// LineContent returns the text content of a line, trimming trailing
// spaces. Wide character spacers are skipped.
func (g *Grid) LineContent(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}

	lastNonSpace := -1
	for col := g.cols - 1; col >= 0; col-- {
		cell := &g.cells[row][col]
		if cell.Char() != ' ' && cell.Char() != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}
	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := 0; col <= lastNonSpace; col++ {
		cell := &g.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char() == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Runes()...)
		}
	}
	return string(runes)
}

// GrowRows appends n new rows to the bottom of the grid.
func (g *Grid) GrowRows(n int) {
	if n <= 0 {
		return
	}
	newRows := g.rows + n
	newCells := make([][]Cell, newRows)
	newDirty := make([][]bool, newRows)
	newWrapped := make([]bool, newRows)

	copy(newCells, g.cells)
	copy(newDirty, g.dirty)
	copy(newWrapped, g.wrapped)

	for i := g.rows; i < newRows; i++ {
		newCells[i] = newRow(g.cols)
		newDirty[i] = make([]bool, g.cols)
		for j := range newDirty[i] {
			newDirty[i][j] = true
		}
	}

	g.cells = newCells
	g.dirty = newDirty
	g.wrapped = newWrapped
	g.rows = newRows
	g.hasDirty = true
}

// IsWrapped returns true if the line was wrapped due to column overflow
// (as opposed to ending with an explicit newline).
func (g *Grid) IsWrapped(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	return g.wrapped[row]
}

// SetWrapped records whether the line wrapped or ended with an explicit
// newline.
func (g *Grid) SetWrapped(row int, wrapped bool) {
	if row < 0 || row >= g.rows {
		return
	}
	g.wrapped[row] = wrapped
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}

// Before returns true if this position comes before other in reading
// order (top-to-bottom, left-to-right).
func (p Position) Before(other Position) bool {
	if p.Row < other.Row {
		return true
	}
	return p.Row == other.Row && p.Col < other.Col
}

// Equal returns true if both row and column match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}
