package vtseq

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// dispatchOSC parses the "Ps;Pt[;Pt...]" OSC payload and routes it to the
// matching Handler method. Unrecognized codes are logged and otherwise
// ignored, matching the "Unsupported produces a diagnostic, never aborts
// the stream" rule.
func dispatchOSC(h Handler, logger Logger, data []byte) {
	code, rest, ok := splitOSC(data)
	if !ok {
		logger.Debugf("malformed OSC payload: %q", data)
		return
	}

	switch code {
	case 0, 2:
		h.SetTitle(sanitizeText(rest))
	case 1:
		// icon-name-only form; the core has no separate icon/title state.
	case 4:
		dispatchOSC4(h, logger, rest)
	case 7:
		h.SetWorkingDirectory(sanitizeText(rest))
	case 8:
		dispatchOSC8(h, rest)
	case 50:
		logger.Debugf("OSC 50 (set font) not supported by the core")
	case 60:
		logger.Debugf("OSC 60 (font query) not supported by the core")
	case 52:
		dispatchOSC52(h, rest)
	case 104:
		dispatchOSC104(h, rest)
	case 9:
		h.Notify("", sanitizeText(rest))
	case 777:
		dispatchOSC777(h, rest)
	case 1337:
		dispatchOSC1337(h, rest)
	default:
		if code >= 10 && code <= 19 {
			dispatchDynamicColor(h, logger, code, rest)
			return
		}
		logger.Debugf("unrecognized OSC code %d", code)
	}
}

func splitOSC(data []byte) (int64, string, bool) {
	s := string(data)
	semi := strings.IndexByte(s, ';')
	var codeStr, rest string
	if semi < 0 {
		codeStr, rest = s, ""
	} else {
		codeStr, rest = s[:semi], s[semi+1:]
	}
	code, err := strconv.ParseInt(codeStr, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return code, rest, true
}

// dispatchOSC4 handles "4;index;spec[;index;spec...]".
func dispatchOSC4(h Handler, logger Logger, rest string) {
	fields := strings.Split(rest, ";")
	for i := 0; i+1 < len(fields); i += 2 {
		idx, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		spec := fields[i+1]
		if spec == "?" {
			rgba, ok := h.QueryIndexedColor(idx)
			if ok {
				h.Reply([]byte(formatColorReply("4;"+fields[i], rgba)))
			}
			continue
		}
		rgba, ok := parseColorSpec(spec)
		if !ok {
			logger.Debugf("malformed OSC 4 color spec %q", spec)
			continue
		}
		h.SetColor(idx, rgba)
	}
}

// dispatchDynamicColor handles OSC 10-19: one color spec per code, "?"
// queries the current value instead of setting it.
func dispatchDynamicColor(h Handler, logger Logger, code int64, rest string) {
	which := int(code - 10)
	if rest == "?" {
		rgba, ok := h.QueryDynamicColor(which)
		if ok {
			h.Reply([]byte(formatColorReply(strconv.FormatInt(code, 10), rgba)))
		}
		return
	}
	rgba, ok := parseColorSpec(rest)
	if !ok {
		logger.Debugf("malformed dynamic color spec %q for OSC %d", rest, code)
		return
	}
	h.SetDynamicColor(which, rgba)
}

func formatColorReply(prefix string, rgba [4]uint8) string {
	return "\x1b]" + prefix + ";rgb:" + hex2(rgba[0]) + hex2(rgba[0]) + "/" + hex2(rgba[1]) + hex2(rgba[1]) + "/" + hex2(rgba[2]) + hex2(rgba[2]) + "\x07"
}

func hex2(v uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0xf]})
}

// dispatchOSC8 handles "8;params;uri". params holds "key=value" pairs
// separated by ':'; only "id" is meaningful here. An empty uri clears the
// active hyperlink.
func dispatchOSC8(h Handler, rest string) {
	parts := strings.SplitN(rest, ";", 2)
	var id, uri string
	if len(parts) == 2 {
		uri = parts[1]
		for _, kv := range strings.Split(parts[0], ":") {
			if strings.HasPrefix(kv, "id=") {
				id = strings.TrimPrefix(kv, "id=")
			}
		}
	}
	if uri == "" {
		h.ClearHyperlink()
		return
	}
	h.SetHyperlink(id, sanitizeText(uri))
}

// dispatchOSC52 handles "52;selection;base64data". A payload of "?"
// requests the current clipboard contents instead of storing new ones.
func dispatchOSC52(h Handler, rest string) {
	parts := strings.SplitN(rest, ";", 2)
	if len(parts) != 2 {
		return
	}
	selection := byte('c')
	if len(parts[0]) > 0 {
		selection = parts[0][0]
	}
	if parts[1] == "?" {
		h.ClipboardLoad(selection, "?")
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return
	}
	h.ClipboardStore(selection, decoded)
}

// dispatchOSC104 handles "104" (reset every indexed color) and
// "104;i1;i2;..." (reset specific indices). -1 signals "reset all" to
// ResetColor.
func dispatchOSC104(h Handler, rest string) {
	if rest == "" {
		h.ResetColor(-1)
		return
	}
	for _, f := range strings.Split(rest, ";") {
		idx, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		h.ResetColor(idx)
	}
}

// dispatchOSC777 handles the urxvt-derived "777;notify;title;body" form.
func dispatchOSC777(h Handler, rest string) {
	parts := strings.SplitN(rest, ";", 3)
	if len(parts) < 1 || parts[0] != "notify" {
		return
	}
	title, body := "", ""
	if len(parts) > 1 {
		title = parts[1]
	}
	if len(parts) > 2 {
		body = parts[2]
	}
	h.Notify(sanitizeText(title), sanitizeText(body))
}

// dispatchOSC1337 handles the subset of the iTerm2 proprietary protocol
// this core supports: "SetUserVar=name=base64value".
func dispatchOSC1337(h Handler, rest string) {
	const prefix = "SetUserVar="
	if !strings.HasPrefix(rest, prefix) {
		return
	}
	kv := strings.SplitN(strings.TrimPrefix(rest, prefix), "=", 2)
	if len(kv) != 2 {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(kv[1])
	if err != nil {
		return
	}
	h.SetUserVar(kv[0], string(decoded))
}

// parseColorSpec recognizes the two forms the core accepts: "#rrggbb" and
// "rgb:rr../gg../bb.." (each component 1-4 hex digits, scaled to 8 bits).
func parseColorSpec(spec string) ([4]uint8, bool) {
	var out [4]uint8
	out[3] = 255

	if strings.HasPrefix(spec, "#") {
		hexDigits := spec[1:]
		if len(hexDigits)%3 != 0 {
			return out, false
		}
		n := len(hexDigits) / 3
		r, ok1 := parseHexComponent(hexDigits[0:n])
		g, ok2 := parseHexComponent(hexDigits[n : 2*n])
		b, ok3 := parseHexComponent(hexDigits[2*n : 3*n])
		if !ok1 || !ok2 || !ok3 {
			return out, false
		}
		out[0], out[1], out[2] = r, g, b
		return out, true
	}

	if strings.HasPrefix(spec, "rgb:") {
		comps := strings.Split(strings.TrimPrefix(spec, "rgb:"), "/")
		if len(comps) != 3 {
			return out, false
		}
		r, ok1 := parseHexComponent(comps[0])
		g, ok2 := parseHexComponent(comps[1])
		b, ok3 := parseHexComponent(comps[2])
		if !ok1 || !ok2 || !ok3 {
			return out, false
		}
		out[0], out[1], out[2] = r, g, b
		return out, true
	}

	return out, false
}

func parseHexComponent(s string) (uint8, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	maxVal := uint64(1)<<(4*len(s)) - 1
	scaled := uint64(v) * 255 / maxVal
	return uint8(scaled), true
}
