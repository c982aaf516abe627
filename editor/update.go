package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/textpos"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.goalX = -1
		_ = m.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		return m, nil
	}

	km := m.cfg.KeyMap
	goalX := m.goalX
	m.goalX = -1

	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.goalX = m.moveVertical(buffer.DirUp, goalX, false)
	case key.Matches(msg, km.Down):
		m.goalX = m.moveVertical(buffer.DirDown, goalX, false)

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveGrapheme, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.goalX = m.moveVertical(buffer.DirUp, goalX, true)
	case key.Matches(msg, km.ShiftDown):
		m.goalX = m.moveVertical(buffer.DirDown, goalX, true)

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})
	case key.Matches(msg, km.ShiftWordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftWordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight, Extend: true})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.SelectWord):
		m.buf.SelectWord()
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectAll()

	case key.Matches(msg, km.Backspace):
		_ = m.buf.DeleteBackward()
	case key.Matches(msg, km.Delete):
		_ = m.buf.DeleteForward()
	case key.Matches(msg, km.Enter):
		_ = m.buf.InsertNewline()

	case key.Matches(msg, km.Bold):
		_ = m.buf.ToggleBold(m.buf.SelectedRange())
	case key.Matches(msg, km.Italic):
		_ = m.buf.ToggleItalic(m.buf.SelectedRange())
	case key.Matches(msg, km.Underline):
		_ = m.buf.ToggleUnderline(m.buf.SelectedRange())
	case key.Matches(msg, km.List):
		_ = m.buf.ToggleList(m.buf.SelectedRange())

	case key.Matches(msg, km.Undo):
		_ = m.buf.Undo()
	case key.Matches(msg, km.Redo):
		_ = m.buf.Redo()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if m.cfg.ReadOnly {
			m.copySelection()
		} else {
			m.cutSelection()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyTab {
			_ = m.buf.InsertText("\t")
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			_ = m.buf.InsertText(" ")
			return m, nil
		}

		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			_ = m.buf.InsertText(string(msg.Runes))
		}
	}

	return m, nil
}

// moveVertical moves the caret one display line up or down, keeping the cell
// column of the first move in a run. Past the first or last line the caret
// goes to the document edge. It returns the goal column to keep.
func (m Model) moveVertical(dir buffer.MoveDir, goalX int, extend bool) int {
	cur, aff := m.buf.Cursor(), m.buf.Affinity()
	if goalX < 0 {
		x, _, ok := m.lay.CellForPosition(cur, aff)
		if !ok {
			return -1
		}
		goalX = x
	}

	var (
		p      textpos.Position
		nextAf textpos.Affinity
		ok     bool
	)
	if dir == buffer.DirUp {
		p, nextAf, ok = m.lay.PositionAbove(cur, aff, goalX)
	} else {
		p, nextAf, ok = m.lay.PositionBelow(cur, aff, goalX)
	}
	if !ok {
		edge := buffer.DirHome
		if dir == buffer.DirDown {
			edge = buffer.DirEnd
		}
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: edge, Extend: extend})
		return -1
	}

	anchor, _ := m.buf.SelectionRaw()
	if !extend {
		anchor = p
	}
	if err := m.buf.Select(anchor, p); err != nil {
		return -1
	}
	m.buf.SetAffinity(nextAf)
	return goalX
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	s, ok := m.buf.PlainText(m.buf.SelectedRange())
	if !ok || s == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	s, ok := m.buf.PlainText(m.buf.SelectedRange())
	if !ok || s == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
	_ = m.buf.DeleteSelection()
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.buf == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	_ = m.buf.InsertText(normalizeNewlines(s))
}

// normalizeNewlines folds newlines from external sources to '\n'.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
