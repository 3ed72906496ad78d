package vtseq

import "testing"

func TestSGRReset(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, nil)
	if len(h.attrs) != 1 || h.attrs[0].Kind != AttrReset {
		t.Fatalf("expected a single reset attribute, got %v", h.attrs)
	}
}

func TestSGRBoldAndForeground(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{1}, {31}})
	if len(h.attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(h.attrs))
	}
	if h.attrs[0].Kind != AttrBold {
		t.Errorf("expected bold first, got %v", h.attrs[0].Kind)
	}
	if h.attrs[1].Kind != AttrForeground {
		t.Fatalf("expected foreground, got %v", h.attrs[1].Kind)
	}
	c := h.attrs[1].Color.(ColorSpec)
	if c.Kind != ColorIndexed || c.Index != 1 {
		t.Errorf("expected indexed color 1, got %+v", c)
	}
}

func TestSGRForegroundRGBColon(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{38, 2, 0, 10, 20, 30}})
	if len(h.attrs) != 1 || h.attrs[0].Kind != AttrForeground {
		t.Fatalf("expected foreground attribute, got %v", h.attrs)
	}
	c := h.attrs[0].Color.(ColorSpec)
	if c.Kind != ColorRGB || c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("unexpected rgb spec %+v", c)
	}
}

func TestSGRForegroundRGBSemicolon(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{38}, {2}, {10}, {20}, {30}})
	if len(h.attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d: %v", len(h.attrs), h.attrs)
	}
	c := h.attrs[0].Color.(ColorSpec)
	if c.Kind != ColorRGB || c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("unexpected rgb spec %+v", c)
	}
}

func TestSGRBackgroundIndexedColon(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{48, 5, 200}})
	if len(h.attrs) != 1 || h.attrs[0].Kind != AttrBackground {
		t.Fatalf("expected background attribute, got %v", h.attrs)
	}
	c := h.attrs[0].Color.(ColorSpec)
	if c.Kind != ColorIndexed || c.Index != 200 {
		t.Errorf("unexpected indexed spec %+v", c)
	}
}

func TestSGRInvalidColorComponentDropsGroupOnly(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{1}, {38, 2, 0, 999, 20, 30}, {4}})
	if len(h.attrs) != 2 {
		t.Fatalf("expected bold and underline only, got %v", h.attrs)
	}
	if h.attrs[0].Kind != AttrBold || h.attrs[1].Kind != AttrUnderline {
		t.Errorf("unexpected surviving attributes: %v", h.attrs)
	}
}

func TestSGRUnderlineStyles(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{4, 3}})
	if len(h.attrs) != 1 || h.attrs[0].Kind != AttrCurlyUnderline {
		t.Fatalf("expected curly underline, got %v", h.attrs)
	}
}

func TestSGRBrightColors(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{91}, {102}})
	if len(h.attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(h.attrs))
	}
	fg := h.attrs[0].Color.(ColorSpec)
	bg := h.attrs[1].Color.(ColorSpec)
	if fg.Index != 9 || bg.Index != 10 {
		t.Errorf("unexpected bright indices fg=%d bg=%d", fg.Index, bg.Index)
	}
}

func TestSGRCMYKUnsupported(t *testing.T) {
	h := &recordingHandler{}
	dispatchSGR(h, [][]int64{{58, 4, 0, 10, 20, 30, 40}})
	if len(h.attrs) != 0 {
		t.Fatalf("expected CMYK group to be dropped, got %v", h.attrs)
	}
}
