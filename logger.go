package vtcore

import "github.com/contourterm/vtcore/vtseq"

// Logger receives diagnostic messages from the Screen and from the
// Sequencer it drives. Re-exported from vtseq so callers only import one
// interface regardless of which layer emits the message.
type Logger = vtseq.Logger

// NoopLogger discards everything; it is the default when no logger is
// configured via WithLogger.
type NoopLogger = vtseq.NoopLogger
