package sixel

import "testing"

func TestParseSixel_SimplePixel(t *testing.T) {
	img, err := ParseSixel(nil, []byte("~"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 1 || img.Height != 6 {
		t.Errorf("expected 1x6, got %dx%d", img.Width, img.Height)
	}
}

func TestParseSixel_MultipleColumns(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("~~~"))
	if img.Width != 3 || img.Height != 6 {
		t.Errorf("expected 3x6, got %dx%d", img.Width, img.Height)
	}
}

func TestParseSixel_NewLine(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("~-~"))
	if img.Width != 1 || img.Height != 12 {
		t.Errorf("expected 1x12, got %dx%d", img.Width, img.Height)
	}
}

func TestParseSixel_CarriageReturn(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("~$~"))
	if img.Width != 1 {
		t.Errorf("expected width 1, got %d", img.Width)
	}
}

func TestParseSixel_Repeat(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("!5~"))
	if img.Width != 5 {
		t.Errorf("expected width 5, got %d", img.Width)
	}
}

func TestParseSixel_ColorRGB(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("#1;2;100;0;0#1~"))
	if img.Width != 1 || img.Height != 6 {
		t.Errorf("unexpected dimensions: %dx%d", img.Width, img.Height)
	}
	if len(img.Data) >= 4 {
		r, g, b := img.Data[0], img.Data[1], img.Data[2]
		if r != 255 || g != 0 || b != 0 {
			t.Errorf("expected red, got (%d,%d,%d)", r, g, b)
		}
	}
}

func TestParseSixel_Transparent(t *testing.T) {
	img, _ := ParseSixel([]int64{0, 1, 0}, []byte("~"))
	if !img.Transparent {
		t.Error("expected transparent background")
	}
}

func TestParseSixel_Empty(t *testing.T) {
	img, _ := ParseSixel(nil, []byte(""))
	if img.Width != 0 || img.Height != 0 {
		t.Errorf("expected 0x0, got %dx%d", img.Width, img.Height)
	}
}

func TestParseSixel_ComplexImage(t *testing.T) {
	img, _ := ParseSixel(nil, []byte("#0;2;0;0;0#1;2;100;0;0#0!10~-#1!10~"))
	if img.Width != 10 || img.Height != 12 {
		t.Errorf("expected 10x12, got %dx%d", img.Width, img.Height)
	}
}

func TestBuilderFeedIncrementally(t *testing.T) {
	b := NewBuilder(nil)
	for _, by := range []byte("!4~") {
		b.Feed([]byte{by})
	}
	img := b.Finalize()
	if img.Width != 4 || img.Height != 6 {
		t.Errorf("expected 4x6, got %dx%d", img.Width, img.Height)
	}
}

// A raster header declaring 4x2 followed by a repeated 6-bit-tall sixel
// column: the declared raster size must win over the taller extent the
// repeated column actually draws.
func TestScenarioRasterAndRepeat(t *testing.T) {
	b := NewBuilder([]int64{1, 0})
	b.Feed([]byte(`"1;1;4;2#0;2;100;0;0#0!4~-`))
	img := b.Finalize()
	if img.Width != 4 {
		t.Errorf("expected width 4, got %d", img.Width)
	}
	if img.Height != 2 {
		t.Errorf("expected height 2 (from the raster attributes, not the 6-bit-tall sixel column drawn), got %d", img.Height)
	}
	for i := 0; i < int(img.Width); i++ {
		off := i * 4
		if img.Data[off] != 255 || img.Data[off+1] != 0 || img.Data[off+2] != 0 {
			t.Errorf("expected red pixel at %d, got %v", i, img.Data[off:off+4])
		}
	}
}
