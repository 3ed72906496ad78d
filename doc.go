// Package vtcore implements the core of a VT220/xterm-compatible terminal
// emulator: a byte-level escape sequence parser, a semantic dispatcher, and
// a screen model, without any display. This makes it suitable for:
//   - Driving a terminal UI without a real PTY attached to a display
//   - Building terminal multiplexers and session recorders
//   - Automated testing of CLI tools and screen-scraping
//
// # Quick Start
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.LineContent(0)) // "Hello World!"
//
// # Architecture
//
// Three layers do the work, each its own package:
//
//   - [parser.Parser]: a VT500-series state machine that turns raw bytes
//     into print/execute/escape/CSI/OSC/DCS events
//   - [vtseq.Sequencer]: parses CSI/OSC parameters and dispatches each
//     recognized function to a [vtseq.Handler]
//   - [Screen]: the Handler implementation — owns the primary and alternate
//     [Grid]s, cursor, modes, palette, and every other piece of terminal
//     state a sequence can touch
//
// [Terminal] wires all three together behind a single type that accepts raw
// bytes and exposes the resulting screen state:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),
//	    vtcore.WithScrollback(storage),
//	    vtcore.WithResponse(ptyWriter),
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Dual Grids
//
// Terminal maintains two grids:
//
//   - Primary grid: normal mode, with optional scrollback storage
//   - Alternate grid: used by full-screen apps (vim, less, htop); xterm
//     never gives it scrollback, and neither does this package
//
// Applications switch grids via CSI ?1049h/l. Check which is active:
//
//	if term.IsAlternateScreen() {
//	    // full-screen app is running
//	}
//
// # Cells and Attributes
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("Char: %c\n", cell.Char())
//	    fmt.Printf("Bold: %v\n", cell.HasFlag(vtcore.CellFlagBold))
//	    fmt.Printf("FG: %+v\n", cell.Fg)
//	}
//
// # Colors
//
// Color is a small tagged value (default / 256-indexed / truecolor / named
// semantic slot), resolved against a [Palette]:
//
//	rgba := term.Palette().Resolve(cell.Fg, true)
//
// # Scrollback
//
// Terminal wires up [MemoryScrollback], a bounded ring buffer, by default.
// Supply your own via [WithScrollback] to spill to disk or elsewhere:
//
//	storage := vtcore.NewMemoryScrollback(10000)
//	term := vtcore.New(vtcore.WithScrollback(storage))
//
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // []Cell
//	}
//
// # Providers
//
// Providers handle side effects and replies. All are optional, with no-op
// defaults so an unconfigured Terminal never panics:
//
//   - [ResponseProvider]: receives DSR/DA/OSC reply bytes
//   - [BellProvider]: bell events
//   - [TitleProvider]: window title changes (OSC 0/2, plus the push/pop stack)
//   - [ClipboardProvider]: OSC 52 clipboard store/load
//   - [NotifyProvider]: OSC 9/777 desktop notifications
//   - [FontProvider]: a font name held for the host; OSC 50/60 are logged
//     as unsupported and do not reach it
//   - [ProfileProvider]: DECSTP soft terminal profile switches
//   - [ScrollbackProvider]: storage for lines scrolled off the primary grid
//   - [RecordingProvider]: captures raw input bytes before parsing
//
//	term := vtcore.New(
//	    vtcore.WithResponse(os.Stdout),
//	    vtcore.WithBell(&MyBellHandler{}),
//	    vtcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Terminal Modes
//
//	term.HasDecMode(vtseq.DecModeDECAWM)  // auto-wrap enabled?
//	term.HasDecMode(vtseq.DecModeDECTCEM) // cursor visible?
//	term.HasAnsiMode(vtseq.AnsiModeIRM)   // insert mode?
//
// # Dirty Tracking
//
//	if term.HasDirty() {
//	    for _, pos := range term.DirtyCells() {
//	        // redraw cell at pos.Row, pos.Col
//	    }
//	    term.ClearAllDirty()
//	}
//
// # Selection
//
//	term.SetSelection(vtcore.Position{Row: 0, Col: 0}, vtcore.Position{Row: 2, Col: 10})
//	text := term.GetSelectedText()
//	term.ClearSelection()
//
// # Search
//
//	matches := term.Search("error")
//	for _, pos := range matches {
//	    fmt.Printf("found at row %d, col %d\n", pos.Row, pos.Col)
//	}
//
//	// negative row numbers address scrollback, oldest-to-newest toward 0
//	scrollbackMatches := term.SearchScrollback("error")
//
// # Inspecting State
//
// [Screen.Inspect] produces a [DebugDump] snapshot of the active grid at a
// chosen level of detail — useful for serialization, HTML rendering, or
// test assertions:
//
//	dump := term.Screen().Inspect(vtcore.DumpDetailStyled)
//	data, _ := json.Marshal(dump)
//
// # Images
//
// Sixel graphics are decoded by the [sixel] package and stored through
// [ImageManager]; each placement covers a rectangle of grid cells that
// reference the stored image by ID:
//
//	for _, placement := range term.Images().Placements() {
//	    img := term.Images().Image(placement.ImageID)
//	    // img.Data holds RGBA pixels
//	}
//
// # Hyperlinks
//
// OSC 8 hyperlinks are tracked by [HyperlinkRegistry] with reference
// counting. Links that carry the same id= key and URI share one entry;
// each link without an id= key gets an entry of its own.
//
// # Thread Safety
//
// Terminal serializes writes with an internal lock; Screen's own lock
// additionally protects concurrent readers (e.g. a renderer goroutine)
// against in-flight Write calls. Callers needing multiple operations to
// appear atomic should still hold their own lock around the sequence.
//
// # Supported Sequences
//
// Cursor movement and save/restore, erase/insert/delete, scrolling regions
// and left/right margins, SGR character attributes with full color support,
// ANSI and DEC private modes, device status and identification reports,
// the alternate screen buffer, bracketed paste, window title, clipboard,
// hyperlinks, user variables, working directory tracking, and Sixel
// graphics.
package vtcore
