package vtcore

import "github.com/contourterm/vtcore/vtseq"

// maxSavedModeDepth bounds the DECSET/DECRST private-mode save stack (CSI
// ? Ps s / CSI ? Ps r): xterm itself keeps no more than a handful of save
// levels in practice, so a misbehaving program pushing forever is capped
// rather than allowed to grow the stack without limit.
const maxSavedModeDepth = 8

// ModeManager tracks ANSI-namespaced (SM/RM) and DEC-namespaced (DECSET/
// DECRST) terminal modes as two separate sets, since the two namespaces
// share no numbering and a mode query or save/restore always applies to
// exactly one of them.
type ModeManager struct {
	ansi map[vtseq.AnsiMode]bool
	dec  map[vtseq.DecMode]bool

	savedDec [][]vtseq.DecMode
}

// NewModeManager returns a ModeManager with the startup defaults: DECAWM
// (autowrap) and DECTCEM (cursor visible) set, matching a freshly reset
// real terminal.
func NewModeManager() *ModeManager {
	m := &ModeManager{
		ansi: make(map[vtseq.AnsiMode]bool),
		dec:  make(map[vtseq.DecMode]bool),
	}
	m.dec[vtseq.DecModeDECAWM] = true
	m.dec[vtseq.DecModeDECTCEM] = true
	return m
}

// SetAnsi sets or clears an ANSI-namespaced mode (SM/RM).
func (m *ModeManager) SetAnsi(mode vtseq.AnsiMode, set bool) {
	m.ansi[mode] = set
}

// Ansi reports whether an ANSI-namespaced mode is currently set.
func (m *ModeManager) Ansi(mode vtseq.AnsiMode) bool {
	return m.ansi[mode]
}

// SetDec sets or clears a DEC private mode (DECSET/DECRST).
func (m *ModeManager) SetDec(mode vtseq.DecMode, set bool) {
	m.dec[mode] = set
}

// Dec reports whether a DEC private mode is currently set.
func (m *ModeManager) Dec(mode vtseq.DecMode) bool {
	return m.dec[mode]
}

// Save pushes the current values of the listed DEC modes onto the save
// stack (CSI ? Pm s). Once maxSavedModeDepth levels are in use, the oldest
// save is discarded to make room, same as xterm's bounded behavior.
func (m *ModeManager) Save(modes []vtseq.DecMode) {
	snapshot := make([]vtseq.DecMode, 0, len(modes)*2)
	for _, mode := range modes {
		snapshot = append(snapshot, mode)
		if m.dec[mode] {
			snapshot = append(snapshot, -1) // sentinel marking "was set"
		} else {
			snapshot = append(snapshot, -2) // sentinel marking "was clear"
		}
	}
	m.savedDec = append(m.savedDec, snapshot)
	if len(m.savedDec) > maxSavedModeDepth {
		m.savedDec = m.savedDec[1:]
	}
}

// Restore pops the most recent save for the listed DEC modes (CSI ? Pm r).
// Modes not present in any save are left unchanged. If the stack is empty,
// this is a no-op.
func (m *ModeManager) Restore(modes []vtseq.DecMode) {
	if len(m.savedDec) == 0 {
		return
	}
	snapshot := m.savedDec[len(m.savedDec)-1]
	m.savedDec = m.savedDec[:len(m.savedDec)-1]

	wasSet := make(map[vtseq.DecMode]bool)
	for i := 0; i+1 < len(snapshot); i += 2 {
		wasSet[snapshot[i]] = snapshot[i+1] == -1
	}
	for _, mode := range modes {
		if set, ok := wasSet[mode]; ok {
			m.dec[mode] = set
		}
	}
}
