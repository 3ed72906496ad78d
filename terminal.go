// Package vtcore implements the VT core of a terminal emulator: a
// byte-level escape-sequence parser, a semantic Sequencer that dispatches
// recognized VT functions, and a Screen that applies them to a grid of
// cells. Terminal ties the three together into the single type a host
// application embeds.
package vtcore

import (
	"strings"
	"sync"

	"github.com/contourterm/vtcore/parser"
	"github.com/contourterm/vtcore/vtseq"
)

// DefaultRows and DefaultCols size a Terminal created without WithSize.
const (
	DefaultRows = 24
	DefaultCols = 80

	// DefaultMaxScrollback is how many lines Terminal retains by default;
	// callers wanting disk-backed or unbounded history supply their own
	// ScrollbackProvider via WithScrollback.
	DefaultMaxScrollback = 10000
)

// Terminal is a VT core instance: feed it raw PTY output with Write, read
// the resulting screen state back through its accessor methods. All screen
// mutation is funneled through the Sequencer into a single Screen, so
// Terminal's own lock only needs to serialize byte-stream decoding (the
// Screen is already safe for concurrent readers) and its own selection
// state.
type Terminal struct {
	mu sync.Mutex

	screen *Screen
	seq    *vtseq.Sequencer
	parser *parser.Parser

	recording RecordingProvider
	reflow    bool
	selection Selection
}

type terminalConfig struct {
	rows, cols    int
	response      ResponseProvider
	bell          BellProvider
	title         TitleProvider
	clipboard     ClipboardProvider
	notify        NotifyProvider
	font          FontProvider
	profile       ProfileProvider
	scrollback    ScrollbackProvider
	recording     RecordingProvider
	maxScrollback int
	reflow        bool
	logger        Logger
}

// Option configures a Terminal at construction time.
type Option func(*terminalConfig)

// WithSize sets the initial screen dimensions (default 24x80).
func WithSize(rows, cols int) Option {
	return func(c *terminalConfig) { c.rows, c.cols = rows, cols }
}

// WithResponse installs the provider that receives DSR/DA/OSC reply bytes
// (normally the PTY master write end).
func WithResponse(p ResponseProvider) Option { return func(c *terminalConfig) { c.response = p } }

// WithBell installs the BEL provider.
func WithBell(p BellProvider) Option { return func(c *terminalConfig) { c.bell = p } }

// WithTitle installs the window title provider.
func WithTitle(p TitleProvider) Option { return func(c *terminalConfig) { c.title = p } }

// WithClipboard installs the OSC 52 clipboard provider.
func WithClipboard(p ClipboardProvider) Option { return func(c *terminalConfig) { c.clipboard = p } }

// WithNotify installs the desktop notification provider.
func WithNotify(p NotifyProvider) Option { return func(c *terminalConfig) { c.notify = p } }

// WithFont installs the font provider. No escape sequence calls it; OSC 50
// and OSC 60 are not supported.
func WithFont(p FontProvider) Option { return func(c *terminalConfig) { c.font = p } }

// WithProfile installs the soft terminal profile provider.
func WithProfile(p ProfileProvider) Option { return func(c *terminalConfig) { c.profile = p } }

// WithScrollback replaces the default in-memory scrollback ring buffer with
// a caller-supplied implementation.
func WithScrollback(p ScrollbackProvider) Option {
	return func(c *terminalConfig) { c.scrollback = p }
}

// WithMaxScrollback sets the capacity of the default in-memory scrollback
// buffer; ignored if WithScrollback is also given.
func WithMaxScrollback(n int) Option {
	return func(c *terminalConfig) { c.maxScrollback = n }
}

// WithRecording installs a provider that captures raw input bytes as they
// arrive, before parsing.
func WithRecording(p RecordingProvider) Option { return func(c *terminalConfig) { c.recording = p } }

// WithReflow controls whether Resize rewraps long logical lines (true,
// the default) or just truncates/pads in place (false, matching the
// alternate screen's always-truncate behavior).
func WithReflow(reflow bool) Option { return func(c *terminalConfig) { c.reflow = reflow } }

// WithLogger installs a Logger the Sequencer uses to report malformed or
// unsupported sequences.
func WithLogger(l Logger) Option { return func(c *terminalConfig) { c.logger = l } }

// New creates a Terminal with the given options.
func New(opts ...Option) *Terminal {
	cfg := &terminalConfig{
		rows: DefaultRows, cols: DefaultCols,
		maxScrollback: DefaultMaxScrollback,
		reflow:        true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	screen := NewScreen(cfg.rows, cfg.cols)
	if cfg.response != nil {
		screen.SetResponseProvider(cfg.response)
	}
	if cfg.bell != nil {
		screen.SetBellProvider(cfg.bell)
	}
	if cfg.title != nil {
		screen.SetTitleProvider(cfg.title)
	}
	if cfg.clipboard != nil {
		screen.SetClipboardProvider(cfg.clipboard)
	}
	if cfg.notify != nil {
		screen.SetNotifyProvider(cfg.notify)
	}
	if cfg.font != nil {
		screen.SetFontProvider(cfg.font)
	}
	if cfg.profile != nil {
		screen.SetProfileProvider(cfg.profile)
	}
	if cfg.scrollback != nil {
		screen.SetScrollbackProvider(cfg.scrollback)
	} else {
		screen.SetScrollbackProvider(NewMemoryScrollback(cfg.maxScrollback))
	}
	if cfg.logger != nil {
		screen.SetLogger(cfg.logger)
	}

	t := &Terminal{
		screen:    screen,
		recording: cfg.recording,
		reflow:    cfg.reflow,
	}
	t.seq = vtseq.NewSequencer(screen)
	if cfg.logger != nil {
		t.seq.SetLogger(cfg.logger)
	}
	t.parser = parser.New(t.seq)
	return t
}

// Write feeds raw PTY output through the parser, dispatching every
// recognized function into the Screen. It never returns a non-nil error;
// the signature matches io.Writer so a Terminal can sit directly on a PTY
// read loop.
func (t *Terminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.recording != nil {
		t.recording.Record(data)
	}
	return t.parser.Write(data)
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// Resize changes the screen dimensions, reflowing the primary screen's
// logical lines unless WithReflow(false) was given.
func (t *Terminal) Resize(rows, cols int) {
	t.screen.Resize(rows, cols, t.reflow)
}

// Screen returns the underlying Screen for callers that need direct access
// (e.g. a renderer walking cells every frame).
func (t *Terminal) Screen() *Screen { return t.screen }

// --- Passthrough accessors ---

func (t *Terminal) Rows() int                         { return t.screen.Rows() }
func (t *Terminal) Cols() int                         { return t.screen.Cols() }
func (t *Terminal) Cell(row, col int) *Cell           { return t.screen.ActiveGrid().Cell(row, col) }
func (t *Terminal) CursorPosition() (int, int)        { return t.screen.CursorPosition() }
func (t *Terminal) CursorVisible() bool               { return t.screen.CursorVisible() }
func (t *Terminal) CursorStyle() vtseq.CursorStyle    { return t.screen.CursorStyle() }
func (t *Terminal) Title() string                     { return t.screen.Title() }
func (t *Terminal) WorkingDirectory() string          { return t.screen.WorkingDirectory() }

// WorkingDirectoryPath extracts the filesystem path from the OSC 7 URI,
// stripping the "file://hostname" prefix. Returns "" if no OSC 7 sequence
// has been seen or the URI isn't a file:// URI.
func (t *Terminal) WorkingDirectoryPath() string {
	uri := t.screen.WorkingDirectory()
	const prefix = "file://"
	if len(uri) <= len(prefix) || uri[:len(prefix)] != prefix {
		return ""
	}
	rest := uri[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[i:]
		}
	}
	return ""
}
func (t *Terminal) IsAlternateScreen() bool           { return t.screen.IsAlternateScreen() }
func (t *Terminal) HasAnsiMode(m vtseq.AnsiMode) bool { return t.screen.HasAnsiMode(m) }
func (t *Terminal) HasDecMode(m vtseq.DecMode) bool   { return t.screen.HasDecMode(m) }
func (t *Terminal) ScrollRegion() (int, int)          { return t.screen.ScrollRegion() }

func (t *Terminal) DirtyCells() []Position     { return t.screen.DirtyCells() }
func (t *Terminal) HasDirty() bool             { return t.screen.HasDirty() }
func (t *Terminal) ClearAllDirty()             { t.screen.ClearAllDirty() }
func (t *Terminal) LineContent(row int) string { return t.screen.ActiveGrid().LineContent(row) }

func (t *Terminal) ScrollbackLen() int              { return t.screen.PrimaryGrid().ScrollbackLen() }
func (t *Terminal) ScrollbackLine(index int) []Cell { return t.screen.PrimaryGrid().ScrollbackLine(index) }
func (t *Terminal) ClearScrollback()                { t.screen.PrimaryGrid().ClearScrollback() }
func (t *Terminal) SetMaxScrollback(max int)        { t.screen.PrimaryGrid().SetMaxScrollback(max) }
func (t *Terminal) MaxScrollback() int              { return t.screen.PrimaryGrid().MaxScrollback() }

func (t *Terminal) GetUserVar(name string) (string, bool) { return t.screen.GetUserVar(name) }
func (t *Terminal) GetUserVars() map[string]string        { return t.screen.GetUserVars() }
func (t *Terminal) ClearUserVars()                        { t.screen.ClearUserVars() }

func (t *Terminal) Palette() *Palette              { return t.screen.Palette() }
func (t *Terminal) Images() *ImageManager          { return t.screen.Images() }
func (t *Terminal) Hyperlinks() *HyperlinkRegistry { return t.screen.Hyperlinks() }

// Recording returns the captured raw bytes, or nil if no recording
// provider was configured.
func (t *Terminal) Recording() []byte {
	if t.recording == nil {
		return nil
	}
	return t.recording.Data()
}

// ClearRecording discards captured recording bytes, if a provider is set.
func (t *Terminal) ClearRecording() {
	if t.recording != nil {
		t.recording.Clear()
	}
}

// SetRecordingProvider replaces the recording sink.
func (t *Terminal) SetRecordingProvider(p RecordingProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recording = p
}

// String renders the visible screen as plain text, one line per row,
// trailing spaces trimmed.
func (t *Terminal) String() string {
	grid := t.screen.ActiveGrid()
	lines := make([]string, grid.Rows())
	for r := range lines {
		lines[r] = grid.LineContent(r)
	}
	return strings.Join(lines, "\n")
}

// --- Absolute/viewport row conversion ---

// ViewportRowToAbsolute converts a 0-based on-screen row into an absolute
// row number where 0 is the oldest scrollback line and rows at or beyond
// ScrollbackLen() are the current viewport.
func (t *Terminal) ViewportRowToAbsolute(row int) int {
	return t.screen.PrimaryGrid().ScrollbackLen() + row
}

// AbsoluteRowToViewport converts an absolute row number back to a 0-based
// viewport row, or -1 if it falls outside the currently visible screen.
func (t *Terminal) AbsoluteRowToViewport(absRow int) int {
	sbLen := t.screen.PrimaryGrid().ScrollbackLen()
	row := absRow - sbLen
	if row < 0 || row >= t.screen.PrimaryGrid().Rows() {
		return -1
	}
	return row
}

// --- Search ---

func cellsToText(line []Cell) string {
	var b strings.Builder
	for i := range line {
		if line[i].IsWideSpacer() {
			continue
		}
		b.WriteRune(line[i].Char())
	}
	return b.String()
}

func findAllIndices(s, query string) []int {
	if query == "" {
		return nil
	}
	var out []int
	start := 0
	for {
		idx := strings.Index(s[start:], query)
		if idx < 0 {
			break
		}
		out = append(out, start+idx)
		start += idx + len(query)
	}
	return out
}

// Search returns every match of query within the visible screen, as
// (row, column) positions.
func (t *Terminal) Search(query string) []Position {
	grid := t.screen.ActiveGrid()
	var results []Position
	for r := 0; r < grid.Rows(); r++ {
		for _, col := range findAllIndices(grid.LineContent(r), query) {
			results = append(results, Position{Row: r, Col: col})
		}
	}
	return results
}

// SearchScrollback searches stored scrollback lines, returning matches with
// negative row numbers: -1 is the most recently scrolled-off line, -2 the
// one before it, and so on.
func (t *Terminal) SearchScrollback(query string) []Position {
	grid := t.screen.PrimaryGrid()
	n := grid.ScrollbackLen()
	var results []Position
	for i := 0; i < n; i++ {
		text := cellsToText(grid.ScrollbackLine(i))
		row := -(n - i)
		for _, col := range findAllIndices(text, query) {
			results = append(results, Position{Row: row, Col: col})
		}
	}
	return results
}

// --- Selection ---

// Selection marks a highlighted text range by inclusive start/end grid
// positions.
type Selection struct {
	Start, End Position
	Active     bool
}

// SetSelection marks [start, end] (normalized to reading order) as
// selected.
func (t *Terminal) SetSelection(start, end Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if end.Before(start) {
		start, end = end, start
	}
	t.selection = Selection{Start: start, End: end, Active: true}
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Active = false
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection
}

// HasSelection reports whether a selection is currently active.
func (t *Terminal) HasSelection() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection.Active
}

// IsSelected reports whether (row, col) falls within the active selection.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.Lock()
	sel := t.selection
	t.mu.Unlock()
	if !sel.Active {
		return false
	}
	p := Position{Row: row, Col: col}
	return !p.Before(sel.Start) && !sel.End.Before(p)
}

// GetSelectedText returns the text of the active selection, or "" if none.
func (t *Terminal) GetSelectedText() string {
	t.mu.Lock()
	sel := t.selection
	t.mu.Unlock()
	if !sel.Active {
		return ""
	}
	grid := t.screen.ActiveGrid()
	var b strings.Builder
	for row := sel.Start.Row; row <= sel.End.Row; row++ {
		line := grid.LineContent(row)
		runes := []rune(line)
		startCol, endCol := 0, len(runes)
		if row == sel.Start.Row {
			startCol = sel.Start.Col
		}
		if row == sel.End.Row {
			endCol = sel.End.Col + 1
		}
		if startCol < 0 {
			startCol = 0
		}
		if endCol > len(runes) {
			endCol = len(runes)
		}
		if startCol < endCol {
			b.WriteString(string(runes[startCol:endCol]))
		}
		if row != sel.End.Row {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
