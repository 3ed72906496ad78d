package vtseq

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/contourterm/vtcore/sixel"
)

// sixelHook adapts sixel.Builder to the Sequencer's dcsHook shape. It is
// installed by HookDcs when the recognized function is DECSIXEL and
// destroyed on UnhookDcs, per the sub-parser lifecycle design note.
type sixelHook struct {
	b *sixel.Builder
}

func newSixelHook(params [][]int64) *sixelHook {
	flat := flattenFirst(params)
	return &sixelHook{b: sixel.NewBuilder(flat)}
}

func (h *sixelHook) feed(b byte) {
	h.b.Feed([]byte{b})
}

func (h *sixelHook) finalize(handler Handler) {
	img := h.b.Finalize()
	if img.Width == 0 || img.Height == 0 {
		return
	}
	handler.SixelImage(img.Width, img.Height, img.Data)
}

// statusStringHook implements DECRQSS: the payload is an ANSI mnemonic
// (e.g. "m" for SGR, "r" for DECSTBM). The mnemonic is not resolved to a
// current value; every request is answered in the invalid form
// `ESC P 0 $ r ESC \`.
type statusStringHook struct {
	data []byte
}

func (h *statusStringHook) feed(b byte) { h.data = append(h.data, b) }

func (h *statusStringHook) finalize(handler Handler) {
	// No mnemonic is looked up, so the request is always reported as
	// invalid; Screen.ReplyStatusString only formats the reply.
	handler.ReplyStatusString(false, string(h.data))
}

// capabilityHook implements XTGETTCAP: a semicolon-separated list of
// hex-encoded termcap/terminfo capability names is requested. No capability
// table is consulted: every name that decodes as hex is echoed back as a
// hex-encoded "name=" pair with an empty value, and names that do not
// decode are dropped.
type capabilityHook struct {
	data []byte
}

func (h *capabilityHook) feed(b byte) { h.data = append(h.data, b) }

func (h *capabilityHook) finalize(handler Handler) {
	names := strings.Split(string(h.data), ";")
	entries := make(map[string]string, len(names))
	for _, n := range names {
		decoded, err := hex.DecodeString(n)
		if err != nil {
			continue
		}
		entries[string(decoded)] = ""
	}
	handler.ReplyCapability(entries)
}

// profileHook implements the Soft Terminal Profile (STP) DCS: the payload,
// with surrounding white space trimmed, is passed to SetTerminalProfile as
// the profile name; an empty payload is ignored.
type profileHook struct {
	data []byte
}

func (h *profileHook) feed(b byte) { h.data = append(h.data, b) }

func (h *profileHook) finalize(handler Handler) {
	name := strings.TrimSpace(string(h.data))
	if _, err := strconv.Atoi(name); err != nil && name == "" {
		return
	}
	handler.SetTerminalProfile(name)
}
