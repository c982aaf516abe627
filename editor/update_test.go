package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s), Alt: true}
}

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{}, // keep styles minimal for this test
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(runes("X"))
	if got := m.buf.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != 2 {
		t.Fatalf("cursor after insert: got %v, want %v", got, 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after backspace: got %v, want %v", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{
		Text:     "ab",
		ReadOnly: true,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after move: got %v, want %v", got, 1)
	}

	m, _ = m.Update(runes("X"))
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after insert in read-only: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after insert in read-only: got %v, want %v", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace in read-only: got %q, want %q", got, "ab")
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(runes("a"))
	m, _ = m.Update(runes("b"))
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after typing: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_VerticalMoveKeepsGoalColumn(t *testing.T) {
	m := New(Config{Text: "abcd\nx\nabcd"})
	m.buf.SetCursor(3)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.buf.Cursor(); got != 6 {
		t.Fatalf("cursor on short line: got %v, want 6", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.buf.Cursor(); got != 10 {
		t.Fatalf("cursor after second down: got %v, want 10", got)
	}

	// Past the last line the caret goes to the document end.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.buf.Cursor(); got != 11 {
		t.Fatalf("cursor past last line: got %v, want 11", got)
	}

	m.buf.SetCursor(2)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.buf.Cursor(); got != 0 {
		t.Fatalf("cursor past first line: got %v, want 0", got)
	}
}

func TestUpdate_VerticalMoveFollowsSoftWrap(t *testing.T) {
	m := New(Config{Text: "abcdef", Wrap: layout.WrapGrapheme})
	m = m.SetSize(3, 5)
	m.buf.SetCursor(1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.buf.Cursor(); got != 4 {
		t.Fatalf("cursor after down: got %v, want 4", got)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after up: got %v, want 1", got)
	}
}

func TestUpdate_ShiftDownExtendsSelection(t *testing.T) {
	m := New(Config{Text: "ab\ncd"})
	m.buf.SetCursor(1)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	anchor, head := m.buf.SelectionRaw()
	if anchor != 1 || head != 4 {
		t.Fatalf("selection raw: got (%v,%v), want (1,4)", anchor, head)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got, want := m.buf.SelectedRange(), textpos.NewRange(1, 3); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}
}

func TestUpdate_SelectWordAndToggleBold(t *testing.T) {
	m := New(Config{Text: "hello world"})

	m, _ = m.Update(alt("w"))
	if got, want := m.buf.SelectedRange(), textpos.NewRange(0, 5); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}

	m, _ = m.Update(alt("b"))
	d := m.buf.Document()
	if !d.AttrsAt(0).Bold || !d.AttrsAt(4).Bold || d.AttrsAt(5).Bold {
		t.Fatalf("bold not applied to the word: %s", d)
	}

	m, _ = m.Update(alt("a"))
	if got, want := m.buf.SelectedRange(), textpos.NewRange(0, 11); got != want {
		t.Fatalf("select all: got %v, want %v", got, want)
	}
	m, _ = m.Update(alt("i"))
	if !d.AllHave(0, 11, func(a document.Attrs) bool { return a.Italic }) {
		t.Fatalf("italic not applied to all: %s", d)
	}
}

func TestUpdate_ToggleListKey(t *testing.T) {
	m := New(Config{Text: "milk\neggs"})

	m, _ = m.Update(alt("a"))
	m, _ = m.Update(alt("l"))
	if got, want := m.buf.Text(), "• milk\n• eggs"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got, want := m.buf.Text(), "milk\neggs"; got != want {
		t.Fatalf("after undo: got %q, want %q", got, want)
	}
}

func TestUpdate_ClipboardCopyCutPaste(t *testing.T) {
	clip := &memClipboard{}
	m := New(Config{Text: "hello world", Clipboard: clip})

	m, _ = m.Update(alt("w"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if clip.s != "hello" {
		t.Fatalf("clipboard after copy: got %q, want %q", clip.s, "hello")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != " world" {
		t.Fatalf("text after cut: got %q, want %q", got, " world")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	clip.s = "a\r\nb"
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != " worlda\nb" {
		t.Fatalf("text after paste: got %q, want %q", got, " worlda\nb")
	}
}

func TestUpdate_BracketedPasteInsertsLiterally(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\ry"), Paste: true})
	if got := m.buf.Text(); got != "x\ny" {
		t.Fatalf("text after paste: got %q, want %q", got, "x\ny")
	}
}

func TestUpdate_Blurred_IgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m, _ = m.Update(runes("X"))
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
}

func TestUpdate_MouseClickAndDrag(t *testing.T) {
	m := New(Config{Text: "hello\nworld", ShowLineNums: true})
	m = m.SetSize(20, 5)

	m, _ = m.Update(tea.MouseMsg{X: 4, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.buf.Cursor(); got != 8 {
		t.Fatalf("cursor after click: got %v, want 8", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 6, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if got, want := m.buf.SelectedRange(), textpos.NewRange(4, 8); got != want {
		t.Fatalf("selection after drag: got %v, want %v", got, want)
	}
	anchor, _ := m.buf.SelectionRaw()
	if anchor != 8 {
		t.Fatalf("anchor after drag: got %v, want 8", anchor)
	}

	m, _ = m.Update(tea.MouseMsg{X: 6, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionMotion})
	if got, want := m.buf.SelectedRange(), textpos.NewRange(4, 8); got != want {
		t.Fatalf("motion after release moved selection: got %v", got)
	}
}
