package vtseq

import (
	"testing"

	"github.com/contourterm/vtcore/parser"
)

func feed(h *recordingHandler, data string) {
	seq := NewSequencer(h)
	p := parser.New(seq)
	p.Write([]byte(data))
}

func TestSequencerCUPDispatchesGoto(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b[5;10H")
	if len(h.calls) != 1 || h.calls[0] != "Goto" {
		t.Fatalf("expected a single Goto call, got %v", h.calls)
	}
}

func TestSequencerSGRDispatchesThroughSGRTable(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b[1;31m")
	if len(h.attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %v", h.attrs)
	}
}

func TestSequencerModeSequences(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b[?25h\x1b[?25l")
	count := 0
	for _, c := range h.calls {
		if c == "SetDecMode" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 SetDecMode calls, got %d", count)
	}
}

func TestSequencerOSCSetsTitle(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b]2;hello\x07")
	if h.title != "hello" {
		t.Errorf("expected title %q, got %q", "hello", h.title)
	}
}

func TestSequencerDCSSixelHook(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1bPq#0;2;100;0;0#0~\x1b\\")
	found := false
	for _, c := range h.calls {
		if c == "SixelImage" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected SixelImage to be called, got %v", h.calls)
	}
}

func TestSequencerPrintAndC0(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "hi\x07")
	if h.calls[0] != "Print" || h.calls[1] != "Print" || h.calls[2] != "Bell" {
		t.Errorf("unexpected call sequence %v", h.calls)
	}
}

func TestSequencerRectangleOps(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b[1;1;5;5$z")
	found := false
	for _, c := range h.calls {
		if c == "EraseRectangle" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected EraseRectangle call, got %v", h.calls)
	}
}

func TestSequencerUnknownCSIIsIgnored(t *testing.T) {
	h := &recordingHandler{}
	feed(h, "\x1b[99999\"\"y")
	if len(h.calls) != 0 {
		t.Errorf("expected no handler calls for unrecognized sequence, got %v", h.calls)
	}
}
