package vtseq

// ColorKind distinguishes the color forms SGR (and OSC 4/10-19) can
// produce.
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// ColorSpec is the concrete value carried in CharAttribute.Color and in
// the color-query Handler methods.
type ColorSpec struct {
	Kind  ColorKind
	Index uint8
	R, G, B uint8
}

// dispatchSGR iterates SGR parameter groups and emits one SetCharAttribute
// call per recognized group. A group that is itself malformed (e.g. an
// out-of-range color component) is dropped without aborting the remaining
// groups in the same sequence, per the "Invalid yields a result for that
// group only" rule.
func dispatchSGR(h Handler, params [][]int64) {
	if len(params) == 0 {
		h.SetCharAttribute(CharAttribute{Kind: AttrReset})
		return
	}

	i := 0
	for i < len(params) {
		group := params[i]
		n := int64(0)
		if len(group) > 0 {
			n = group[0]
		}

		switch {
		case n == 0:
			h.SetCharAttribute(CharAttribute{Kind: AttrReset})
		case n == 1:
			h.SetCharAttribute(CharAttribute{Kind: AttrBold})
		case n == 2:
			h.SetCharAttribute(CharAttribute{Kind: AttrDim})
		case n == 3:
			h.SetCharAttribute(CharAttribute{Kind: AttrItalic})
		case n == 4:
			// Sub-parameter selects the underline style: 4:0 none,
			// 4:1 single, 4:2 double, 4:3 curly, 4:4 dotted, 4:5 dashed.
			style := int64(1)
			if len(group) > 1 {
				style = group[1]
			}
			switch style {
			case 0:
				h.SetCharAttribute(CharAttribute{Kind: AttrNoUnderline})
			case 2:
				h.SetCharAttribute(CharAttribute{Kind: AttrDoubleUnderline})
			case 3:
				h.SetCharAttribute(CharAttribute{Kind: AttrCurlyUnderline})
			case 4:
				h.SetCharAttribute(CharAttribute{Kind: AttrDottedUnderline})
			case 5:
				h.SetCharAttribute(CharAttribute{Kind: AttrDashedUnderline})
			default:
				h.SetCharAttribute(CharAttribute{Kind: AttrUnderline})
			}
		case n == 5:
			h.SetCharAttribute(CharAttribute{Kind: AttrBlinkSlow})
		case n == 6:
			h.SetCharAttribute(CharAttribute{Kind: AttrBlinkFast})
		case n == 7:
			h.SetCharAttribute(CharAttribute{Kind: AttrReverse})
		case n == 8:
			h.SetCharAttribute(CharAttribute{Kind: AttrHidden})
		case n == 9:
			h.SetCharAttribute(CharAttribute{Kind: AttrStrike})
		case n == 21:
			h.SetCharAttribute(CharAttribute{Kind: AttrDoubleUnderline})
		case n == 22:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoBoldDim})
		case n == 23:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoItalic})
		case n == 24:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoUnderline})
		case n == 25:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoBlink})
		case n == 27:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoReverse})
		case n == 28:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoHidden})
		case n == 29:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoStrike})
		case n == 53:
			h.SetCharAttribute(CharAttribute{Kind: AttrOverline})
		case n == 55:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoOverline})
		case n == 51:
			h.SetCharAttribute(CharAttribute{Kind: AttrFramed})
		case n == 52:
			h.SetCharAttribute(CharAttribute{Kind: AttrEncircled})
		case n == 54:
			h.SetCharAttribute(CharAttribute{Kind: AttrNoFramed})
		case n >= 30 && n <= 37:
			h.SetCharAttribute(CharAttribute{Kind: AttrForeground, Color: ColorSpec{Kind: ColorIndexed, Index: uint8(n - 30)}})
		case n == 39:
			h.SetCharAttribute(CharAttribute{Kind: AttrDefaultForeground})
		case n >= 40 && n <= 47:
			h.SetCharAttribute(CharAttribute{Kind: AttrBackground, Color: ColorSpec{Kind: ColorIndexed, Index: uint8(n - 40)}})
		case n == 49:
			h.SetCharAttribute(CharAttribute{Kind: AttrDefaultBackground})
		case n >= 90 && n <= 97:
			h.SetCharAttribute(CharAttribute{Kind: AttrForeground, Color: ColorSpec{Kind: ColorIndexed, Index: uint8(n-90) + 8}})
		case n >= 100 && n <= 107:
			h.SetCharAttribute(CharAttribute{Kind: AttrBackground, Color: ColorSpec{Kind: ColorIndexed, Index: uint8(n-100) + 8}})
		case n == 38 || n == 48 || n == 58:
			var kind SGRAttrKind
			switch n {
			case 38:
				kind = AttrForeground
			case 48:
				kind = AttrBackground
			case 58:
				kind = AttrUnderlineColor
			}
			color, consumed, ok := parseSGRColor(group, params[i+1:])
			if ok {
				h.SetCharAttribute(CharAttribute{Kind: kind, Color: color})
			}
			i += consumed
		case n == 59:
			switch {
			case false: // placeholder to keep switch exhaustive-looking
			}
			h.SetCharAttribute(CharAttribute{Kind: AttrDefaultUnderlineColor})
		}
		i++
	}
}

// parseSGRColor parses the color-specification that follows a 38/48/58
// introducer. It supports both the colon sub-parameter form (one group,
// e.g. "38:2::R:G:B") and the legacy semicolon form spread across
// subsequent top-level parameters (e.g. "38;2;R;G;B"). consumed is the
// number of *additional* top-level parameters absorbed from rest (0 when
// everything was in the colon sub-parameters of group itself).
func parseSGRColor(group []int64, rest [][]int64) (ColorSpec, int, bool) {
	// Colon form: group already holds [38, mode, ...].
	if len(group) > 1 {
		mode := group[1]
		switch mode {
		case 2:
			// 38:2::R:G:B or 38:2:cs:R:G:B — skip an optional colorspace id.
			vals := group[2:]
			if len(vals) == 4 {
				vals = vals[1:] // drop colorspace id
			}
			if len(vals) == 3 {
				if c, ok := rgbFromInt64(vals); ok {
					return c, 0, true
				}
			}
			return ColorSpec{}, 0, false
		case 5:
			if len(group) >= 3 && inRange(group[2], 0, 255) {
				return ColorSpec{Kind: ColorIndexed, Index: uint8(group[2])}, 0, true
			}
			return ColorSpec{}, 0, false
		case 3, 4:
			// CMY/CMYK: parsed but unsupported per spec §4.3.
			return ColorSpec{}, 0, false
		}
		return ColorSpec{}, 0, false
	}

	// Semicolon form: mode is the next top-level parameter.
	if len(rest) == 0 {
		return ColorSpec{}, 0, false
	}
	mode := first(rest[0])
	switch mode {
	case 5:
		if len(rest) < 2 {
			return ColorSpec{}, 1, false
		}
		idx := first(rest[1])
		if !inRange(idx, 0, 255) {
			return ColorSpec{}, 2, false
		}
		return ColorSpec{Kind: ColorIndexed, Index: uint8(idx)}, 2, true
	case 2:
		if len(rest) < 4 {
			return ColorSpec{}, len(rest), false
		}
		vals := []int64{first(rest[1]), first(rest[2]), first(rest[3])}
		if c, ok := rgbFromInt64(vals); ok {
			return c, 4, true
		}
		return ColorSpec{}, 4, false
	}
	return ColorSpec{}, 1, false
}

func first(p []int64) int64 {
	if len(p) == 0 {
		return 0
	}
	return p[0]
}

func inRange(v int64, lo, hi int64) bool { return v >= lo && v <= hi }

func rgbFromInt64(vals []int64) (ColorSpec, bool) {
	for _, v := range vals {
		if !inRange(v, 0, 255) {
			return ColorSpec{}, false
		}
	}
	return ColorSpec{Kind: ColorRGB, R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2])}, true
}
