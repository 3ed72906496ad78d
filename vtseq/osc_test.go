package vtseq

import "testing"

func TestOSCSetTitle(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("2;my title"))
	if h.title != "my title" {
		t.Errorf("expected title to be set, got %q", h.title)
	}
}

func TestOSCSetColorHex(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("4;5;#ff0080"))
	found := false
	for _, c := range h.calls {
		if c == "SetColor" {
			found = true
		}
	}
	if !found {
		t.Error("expected SetColor to be called")
	}
}

func TestOSCSetColorRGBSpec(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("10;rgb:ffff/0000/8080"))
	found := false
	for _, c := range h.calls {
		if c == "SetDynamicColor" {
			found = true
		}
	}
	if !found {
		t.Error("expected SetDynamicColor to be called")
	}
}

func TestOSCHyperlinkSetAndClear(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("8;id=abc;https://example.com"))
	dispatchOSC(h, NoopLogger{}, []byte("8;;"))

	wantSeq := []string{"SetHyperlink", "ClearHyperlink"}
	var got []string
	for _, c := range h.calls {
		if c == "SetHyperlink" || c == "ClearHyperlink" {
			got = append(got, c)
		}
	}
	if len(got) != 2 || got[0] != wantSeq[0] || got[1] != wantSeq[1] {
		t.Errorf("expected %v, got %v", wantSeq, got)
	}
}

func TestOSCClipboardStoreDecodesBase64(t *testing.T) {
	h := &recordingHandler{}
	// base64("hi") == "aGk="
	dispatchOSC(h, NoopLogger{}, []byte("52;c;aGk="))
	found := false
	for _, c := range h.calls {
		if c == "ClipboardStore" {
			found = true
		}
	}
	if !found {
		t.Error("expected ClipboardStore to be called")
	}
}

func TestOSCClipboardQuery(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("52;c;?"))
	found := false
	for _, c := range h.calls {
		if c == "ClipboardLoad" {
			found = true
		}
	}
	if !found {
		t.Error("expected ClipboardLoad to be called")
	}
}

func TestOSCResetColorAll(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("104"))
	count := 0
	for _, c := range h.calls {
		if c == "ResetColor" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected a single ResetColor(-1) call, got %d", count)
	}
}

func TestOSCNotify(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("777;notify;Build done;all green"))
	found := false
	for _, c := range h.calls {
		if c == "Notify" {
			found = true
		}
	}
	if !found {
		t.Error("expected Notify to be called")
	}
}

func TestOSCSetUserVar(t *testing.T) {
	h := &recordingHandler{}
	// base64("bar") == "YmFy"
	dispatchOSC(h, NoopLogger{}, []byte("1337;SetUserVar=foo=YmFy"))
	found := false
	for _, c := range h.calls {
		if c == "SetUserVar" {
			found = true
		}
	}
	if !found {
		t.Error("expected SetUserVar to be called")
	}
}

func TestOSCMalformedPayloadLogsAndReturns(t *testing.T) {
	h := &recordingHandler{}
	dispatchOSC(h, NoopLogger{}, []byte("not-a-number;x"))
	if len(h.calls) != 0 {
		t.Errorf("expected no handler calls for malformed payload, got %v", h.calls)
	}
}
