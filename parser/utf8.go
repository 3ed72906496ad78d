package parser

// utf8Decoder incrementally decodes UTF-8 byte sequences one byte at a
// time. Malformed sequences are mapped to U+FFFD. The decoder owns its own
// pending-byte state; it is reset whenever the parser executes a C0 control
// or crosses a sequence boundary (Ground<->Escape), per spec.
type utf8Decoder struct {
	need    int // remaining continuation bytes expected
	have    int // continuation bytes consumed so far
	r       rune
	lowerBound rune
}

const replacementChar = '�'

func (d *utf8Decoder) reset() {
	d.need = 0
	d.have = 0
	d.r = 0
	d.lowerBound = 0
}

// feed consumes one byte and returns (rune, true) whenever a complete
// codepoint (valid or substituted) is available.
func (d *utf8Decoder) feed(b byte) (rune, bool) {
	if d.need == 0 {
		switch {
		case b < 0x80:
			return rune(b), true
		case b&0xe0 == 0xc0:
			d.r = rune(b & 0x1f)
			d.need = 1
			d.lowerBound = 0x80
			return 0, false
		case b&0xf0 == 0xe0:
			d.r = rune(b & 0x0f)
			d.need = 2
			d.lowerBound = 0x800
			return 0, false
		case b&0xf8 == 0xf0:
			d.r = rune(b & 0x07)
			d.need = 3
			d.lowerBound = 0x10000
			return 0, false
		default:
			// stray continuation byte or invalid leading byte
			return replacementChar, true
		}
	}

	if b&0xc0 != 0x80 {
		// expected a continuation byte but didn't get one: the malformed
		// sequence so far yields U+FFFD, and this byte is reprocessed as
		// if it started a fresh sequence.
		d.reset()
		return d.feed(b)
	}

	d.r = d.r<<6 | rune(b&0x3f)
	d.have++
	if d.have < d.need {
		return 0, false
	}

	r := d.r
	lower := d.lowerBound
	d.reset()

	if r < lower || r > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return replacementChar, true
	}
	return r, true
}
