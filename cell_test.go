package vtcore

import "testing"

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char() != ' ' {
		t.Errorf("expected space, got '%c'", cell.Char())
	}
	if cell.Fg.Kind != ColorNamed || cell.Fg.Index != NamedForeground {
		t.Errorf("expected default foreground, got %+v", cell.Fg)
	}
	if cell.Bg.Kind != ColorNamed || cell.Bg.Index != NamedBackground {
		t.Errorf("expected default background, got %+v", cell.Bg)
	}
	if cell.Flags != 0 {
		t.Error("expected no flags")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.SetChar('A')
	cell.SetFlag(CellFlagBold)

	cell.Reset()

	if cell.Char() != ' ' {
		t.Errorf("expected space after reset, got '%c'", cell.Char())
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWideChar)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	spacer := NewCell()
	spacer.SetFlag(CellFlagWideCharSpacer)
	if !spacer.IsWideSpacer() {
		t.Error("expected cell to be spacer")
	}
}

func TestCellCopy(t *testing.T) {
	cell := NewCell()
	cell.SetChar('X')
	cell.SetFlag(CellFlagBold | CellFlagItalic)

	copied := cell.Copy()

	if copied.Char() != 'X' {
		t.Errorf("expected 'X', got '%c'", copied.Char())
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}

	cell.SetChar('Y')
	if copied.Char() != 'X' {
		t.Error("copy should be independent")
	}
}

func TestCellCombiningMarksInline(t *testing.T) {
	cell := NewCell()
	cell.SetChar('e')
	cell.AddCombining('́') // combining acute accent

	if len(cell.CombiningMarks()) != 1 || cell.CombiningMarks()[0] != '́' {
		t.Errorf("expected one combining mark, got %v", cell.CombiningMarks())
	}
	runes := cell.Runes()
	if len(runes) != 2 || runes[0] != 'e' || runes[1] != '́' {
		t.Errorf("unexpected grapheme runes %v", runes)
	}
}

func TestCellCombiningMarksOverflow(t *testing.T) {
	cell := NewCell()
	cell.SetChar('a')
	for i := 0; i < maxInlineCombining+3; i++ {
		cell.AddCombining(rune('̀' + i))
	}

	marks := cell.CombiningMarks()
	if len(marks) != maxInlineCombining+3 {
		t.Fatalf("expected %d combining marks, got %d", maxInlineCombining+3, len(marks))
	}
}

func TestCellCopyIsolatesOverflow(t *testing.T) {
	cell := NewCell()
	cell.SetChar('a')
	for i := 0; i < maxInlineCombining+2; i++ {
		cell.AddCombining(rune('̀' + i))
	}

	copied := cell.Copy()
	cell.AddCombining('̐')

	if len(copied.CombiningMarks()) == len(cell.CombiningMarks()) {
		t.Error("expected copy's overflow to be independent of the original's")
	}
}

func TestCellHyperlinkAndImageRefs(t *testing.T) {
	cell := NewCell()
	if cell.HasHyperlink() || cell.HasImage() {
		t.Error("new cell should reference neither a hyperlink nor an image")
	}

	cell.HyperlinkID = 1
	cell.ImageID = 2
	if !cell.HasHyperlink() || !cell.HasImage() {
		t.Error("expected both references to be set")
	}

	cell.Reset()
	if cell.HasHyperlink() || cell.HasImage() {
		t.Error("expected reset to clear both references")
	}
}
