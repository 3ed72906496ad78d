package vtseq

// recordingHandler implements Handler, capturing every call as a string so
// tests can assert on call sequences without a mock-generation step.
type recordingHandler struct {
	calls []string
	attrs []CharAttribute
	title string
	reply []byte
}

func (r *recordingHandler) log(s string) { r.calls = append(r.calls, s) }

func (r *recordingHandler) Print(ru rune)              { r.log("Print") }
func (r *recordingHandler) Bell()                      { r.log("Bell") }
func (r *recordingHandler) Backspace()                 { r.log("Backspace") }
func (r *recordingHandler) CarriageReturn()             { r.log("CarriageReturn") }
func (r *recordingHandler) LineFeed()                   { r.log("LineFeed") }
func (r *recordingHandler) VerticalTab()                { r.log("VerticalTab") }
func (r *recordingHandler) FormFeed()                   { r.log("FormFeed") }
func (r *recordingHandler) Tab(n int)                   { r.log("Tab") }
func (r *recordingHandler) BackwardTabs(n int)          { r.log("BackwardTabs") }
func (r *recordingHandler) HorizontalTabSet()           { r.log("HorizontalTabSet") }
func (r *recordingHandler) ClearTabs(mode TabulationClearMode) { r.log("ClearTabs") }
func (r *recordingHandler) ShiftOut()                   { r.log("ShiftOut") }
func (r *recordingHandler) ShiftIn()                    { r.log("ShiftIn") }

func (r *recordingHandler) MoveUp(n int)       { r.log("MoveUp") }
func (r *recordingHandler) MoveDown(n int)     { r.log("MoveDown") }
func (r *recordingHandler) MoveForward(n int)  { r.log("MoveForward") }
func (r *recordingHandler) MoveBackward(n int) { r.log("MoveBackward") }
func (r *recordingHandler) MoveDownCR(n int)   { r.log("MoveDownCR") }
func (r *recordingHandler) MoveUpCR(n int)     { r.log("MoveUpCR") }
func (r *recordingHandler) GotoCol(col int)    { r.log("GotoCol") }
func (r *recordingHandler) GotoLine(row int)   { r.log("GotoLine") }
func (r *recordingHandler) Goto(row, col int)  { r.log("Goto") }
func (r *recordingHandler) Index()             { r.log("Index") }
func (r *recordingHandler) ReverseIndex()      { r.log("ReverseIndex") }
func (r *recordingHandler) NextLine()          { r.log("NextLine") }
func (r *recordingHandler) SaveCursor()        { r.log("SaveCursor") }
func (r *recordingHandler) RestoreCursor()     { r.log("RestoreCursor") }

func (r *recordingHandler) ClearLine(mode LineClearMode)   { r.log("ClearLine") }
func (r *recordingHandler) ClearScreen(mode ClearMode)     { r.log("ClearScreen") }
func (r *recordingHandler) EraseChars(n int)               { r.log("EraseChars") }
func (r *recordingHandler) DeleteChars(n int)              { r.log("DeleteChars") }
func (r *recordingHandler) InsertBlank(n int)               { r.log("InsertBlank") }
func (r *recordingHandler) InsertLines(n int)              { r.log("InsertLines") }
func (r *recordingHandler) DeleteLines(n int)              { r.log("DeleteLines") }
func (r *recordingHandler) InsertColumns(n int)            { r.log("InsertColumns") }
func (r *recordingHandler) DeleteColumns(n int)            { r.log("DeleteColumns") }

func (r *recordingHandler) ScrollUp(n int)   { r.log("ScrollUp") }
func (r *recordingHandler) ScrollDown(n int) { r.log("ScrollDown") }

func (r *recordingHandler) CopyRectangle(srcTop, srcLeft, srcBottom, srcRight, srcPage, dstTop, dstLeft, dstPage int) {
	r.log("CopyRectangle")
}
func (r *recordingHandler) EraseRectangle(top, left, bottom, right int) { r.log("EraseRectangle") }
func (r *recordingHandler) FillRectangle(ch rune, top, left, bottom, right int) {
	r.log("FillRectangle")
}

func (r *recordingHandler) SetAnsiMode(mode AnsiMode, set bool) { r.log("SetAnsiMode") }
func (r *recordingHandler) SetDecMode(mode DecMode, set bool)   { r.log("SetDecMode") }
func (r *recordingHandler) RequestAnsiMode(mode AnsiMode)       { r.log("RequestAnsiMode") }
func (r *recordingHandler) RequestDecMode(mode DecMode)         { r.log("RequestDecMode") }
func (r *recordingHandler) SaveDecModes(modes []DecMode)        { r.log("SaveDecModes") }
func (r *recordingHandler) RestoreDecModes(modes []DecMode)     { r.log("RestoreDecModes") }

func (r *recordingHandler) SetCharAttribute(attr CharAttribute) {
	r.log("SetCharAttribute")
	r.attrs = append(r.attrs, attr)
}
func (r *recordingHandler) SetCursorStyle(style CursorStyle)      { r.log("SetCursorStyle") }
func (r *recordingHandler) SetScrollingRegion(top, bottom int)    { r.log("SetScrollingRegion") }
func (r *recordingHandler) SetLeftRightMargins(left, right int)   { r.log("SetLeftRightMargins") }

func (r *recordingHandler) ConfigureCharset(index CharsetIndex, charset Charset) { r.log("ConfigureCharset") }
func (r *recordingHandler) SetActiveCharset(index CharsetIndex)                  { r.log("SetActiveCharset") }
func (r *recordingHandler) SingleShift2()                                       { r.log("SingleShift2") }
func (r *recordingHandler) SingleShift3()                                       { r.log("SingleShift3") }

func (r *recordingHandler) IdentifyTerminalPrimary()   { r.log("IdentifyTerminalPrimary") }
func (r *recordingHandler) IdentifyTerminalSecondary() { r.log("IdentifyTerminalSecondary") }
func (r *recordingHandler) IdentifyTerminalTertiary()  { r.log("IdentifyTerminalTertiary") }
func (r *recordingHandler) DeviceStatus(n int)         { r.log("DeviceStatus") }
func (r *recordingHandler) ReportCursorPosition(extended bool) { r.log("ReportCursorPosition") }
func (r *recordingHandler) ReportXTVersion()           { r.log("ReportXTVersion") }
func (r *recordingHandler) ReportWindowOp(params []int64) { r.log("ReportWindowOp") }

func (r *recordingHandler) SetTitle(title string) { r.log("SetTitle"); r.title = title }
func (r *recordingHandler) PushTitle()            { r.log("PushTitle") }
func (r *recordingHandler) PopTitle()             { r.log("PopTitle") }

func (r *recordingHandler) SetColor(index int, rgba [4]uint8)        { r.log("SetColor") }
func (r *recordingHandler) ResetColor(index int)                     { r.log("ResetColor") }
func (r *recordingHandler) SetDynamicColor(which int, rgba [4]uint8)  { r.log("SetDynamicColor") }
func (r *recordingHandler) ResetDynamicColor(which int)               { r.log("ResetDynamicColor") }
func (r *recordingHandler) QueryDynamicColor(which int) ([4]uint8, bool) {
	return [4]uint8{1, 2, 3, 255}, true
}
func (r *recordingHandler) QueryIndexedColor(index int) ([4]uint8, bool) {
	return [4]uint8{4, 5, 6, 255}, true
}

func (r *recordingHandler) SetHyperlink(id, uri string) { r.log("SetHyperlink") }
func (r *recordingHandler) ClearHyperlink()              { r.log("ClearHyperlink") }

func (r *recordingHandler) SetWorkingDirectory(uri string)             { r.log("SetWorkingDirectory") }
func (r *recordingHandler) ClipboardStore(selection byte, data []byte) { r.log("ClipboardStore") }
func (r *recordingHandler) ClipboardLoad(selection byte, terminator string) { r.log("ClipboardLoad") }
func (r *recordingHandler) Notify(title, body string)                  { r.log("Notify") }
func (r *recordingHandler) SetUserVar(name, value string)              { r.log("SetUserVar") }

func (r *recordingHandler) ResetState()              { r.log("ResetState") }
func (r *recordingHandler) ScreenAlignmentPattern()   { r.log("ScreenAlignmentPattern") }
func (r *recordingHandler) Substitute()               { r.log("Substitute") }

func (r *recordingHandler) SixelImage(width, height uint32, rgba []byte) { r.log("SixelImage") }
func (r *recordingHandler) ReplyStatusString(valid bool, payload string) { r.log("ReplyStatusString") }
func (r *recordingHandler) ReplyCapability(entries map[string]string)    { r.log("ReplyCapability") }
func (r *recordingHandler) SetTerminalProfile(name string)               { r.log("SetTerminalProfile") }

func (r *recordingHandler) Reply(data []byte) { r.log("Reply"); r.reply = data }

var _ Handler = (*recordingHandler)(nil)
