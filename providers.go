package vtcore

import "io"

// ResponseProvider writes terminal responses (e.g., cursor position
// reports) back to the PTY. Typically an io.Writer connected to the PTY
// input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful when responses are not
// needed, e.g. when feeding a recorded session with no live PTY).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// --- Bell Provider ---

// BellProvider handles bell/beep events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// --- Title Provider ---

// TitleProvider handles window title changes (OSC 0, 2) and the
// xterm title stack (XTWINOPS 22/23).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// --- Clipboard Provider ---

// ClipboardProvider handles clipboard read/write operations (OSC 52).
type ClipboardProvider interface {
	// Read returns content from the specified clipboard ('c' for
	// clipboard, 'p' for primary selection).
	Read(selection byte) []byte
	// Write stores content to the specified clipboard.
	Write(selection byte, data []byte)
}

// NoopClipboard ignores all clipboard operations.
type NoopClipboard struct{}

func (NoopClipboard) Read(selection byte) []byte        { return nil }
func (NoopClipboard) Write(selection byte, data []byte) {}

// --- Scrollback Provider ---

// ScrollbackProvider stores lines scrolled off the top of the primary
// buffer. Implementations can use in-memory storage, disk, a database,
// etc.
type ScrollbackProvider interface {
	// Push appends a line to scrollback. Oldest lines are discarded once
	// MaxLines is exceeded.
	Push(line []Cell)
	// Len returns the current number of stored lines.
	Len() int
	// Line returns the line at index, where 0 is the oldest line. Returns
	// nil if out of range.
	Line(index int) []Cell
	// Clear removes all stored lines.
	Clear()
	// SetMaxLines sets the maximum capacity, trimming oldest lines if the
	// new capacity is smaller than the current length.
	SetMaxLines(max int)
	// MaxLines returns the current maximum capacity.
	MaxLines() int
}

// NoopScrollback discards all scrollback lines (used by the alternate
// screen, which never accumulates history).
type NoopScrollback struct{}

func (NoopScrollback) Push(line []Cell)      {}
func (NoopScrollback) Len() int              { return 0 }
func (NoopScrollback) Line(index int) []Cell { return nil }
func (NoopScrollback) Clear()                {}
func (NoopScrollback) SetMaxLines(max int)   {}
func (NoopScrollback) MaxLines() int         { return 0 }

// --- Recording Provider ---

// RecordingProvider captures raw input bytes before ANSI parsing, for
// replay or debugging.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards all input recordings.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

// --- Notify Provider ---

// NotifyProvider surfaces desktop notification requests (OSC 777, and the
// iTerm2 OSC 9 equivalent some shells emit).
type NotifyProvider interface {
	Notify(title, body string)
}

// NoopNotify discards all notification requests.
type NoopNotify struct{}

func (NoopNotify) Notify(title, body string) {}

// --- Font Provider ---

// FontProvider holds a font name the host can set and query. The Screen
// stores it, but no escape sequence reaches it: OSC 50 and OSC 60 are
// logged as unsupported and change nothing.
type FontProvider interface {
	SetFont(name string)
	Font() string
}

// NoopFont reports an empty font name and ignores font changes.
type NoopFont struct{}

func (NoopFont) SetFont(name string) {}
func (NoopFont) Font() string        { return "" }

// --- Profile Provider ---

// ProfileProvider handles the Soft Terminal Profile DCS (switching the
// emulation the Screen should present, e.g. "vt100" vs "vt220").
type ProfileProvider interface {
	SetProfile(name string)
}

// NoopProfile ignores all profile switch requests.
type NoopProfile struct{}

func (NoopProfile) SetProfile(name string) {}

var (
	_ ResponseProvider   = NoopResponse{}
	_ BellProvider       = (*NoopBell)(nil)
	_ TitleProvider      = (*NoopTitle)(nil)
	_ ClipboardProvider  = (*NoopClipboard)(nil)
	_ ScrollbackProvider = (*NoopScrollback)(nil)
	_ RecordingProvider  = (*NoopRecording)(nil)
	_ NotifyProvider     = (*NoopNotify)(nil)
	_ ProfileProvider    = (*NoopProfile)(nil)
	_ FontProvider       = (*NoopFont)(nil)
)
