package vtseq

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// sanitizeText returns s unchanged if it is already valid UTF-8. Otherwise
// it assumes the payload was mis-encoded Latin-1 (the common case for
// OSC/DCS strings written by tools that never considered multi-byte
// terminals) and transcodes it, rather than passing through the raw bytes
// as a text/utf8.RuneError-laden string. This only runs on the already-rare
// malformed path; well-formed UTF-8 payloads never touch the decoder.
func sanitizeText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
