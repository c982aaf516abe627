package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/textpos"
)

// ReplaceRange replaces r with text styled with the typing attributes.
//
// The range is validated before anything changes: an invalid range returns
// an error wrapping textpos.ErrInvalidRange and leaves text, selection and
// version untouched. Selection and marked range follow the performed edit;
// an endpoint inside the replaced span lands after the inserted text.
func (b *Buffer) ReplaceRange(r textpos.Range, text string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if !b.Mapper().ValidRange(r) {
		return fmt.Errorf("replace %v (len %d): %w", r, b.doc.Len(), textpos.ErrInvalidRange)
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	applied, changed := b.replace(r, text, b.TypingAttributes())
	if !changed {
		return nil
	}
	change.addAppliedEdit(applied)
	b.finishEdit(prev, change)
	return nil
}

// InsertText types s over the marked text, or else over the selection, and
// leaves the caret after it. Marked text is committed.
func (b *Buffer) InsertText(s string) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	target := b.SelectedRange()
	if b.marked.Valid() {
		target = b.marked
	}
	if s == "" && target.IsEmpty() {
		return b.UnmarkText()
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	applied, changed := b.replace(target, s, b.TypingAttributes())
	caret := target.Start + textpos.Position(utf8.RuneCountInString(s))
	b.anchor, b.head = caret, caret
	b.marked = textpos.InvalidRange
	if changed {
		change.addAppliedEdit(applied)
	}
	b.finishEdit(prev, change)
	return nil
}

// InsertNewline starts a new paragraph, or a new line within the paragraph
// when ReplaceParagraphsWithLineFeeds is set.
func (b *Buffer) InsertNewline() error {
	if b.opt.ReplaceParagraphsWithLineFeeds {
		return b.InsertText(string(document.LineSeparator))
	}
	return b.InsertText("\n")
}

// DeleteBackward deletes the selection, or the grapheme cluster before the
// caret.
func (b *Buffer) DeleteBackward() error {
	return b.deleteAdjacent(textpos.Left)
}

// DeleteForward deletes the selection, or the grapheme cluster after the
// caret.
func (b *Buffer) DeleteForward() error {
	return b.deleteAdjacent(textpos.Right)
}

func (b *Buffer) deleteAdjacent(dir textpos.Direction) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if !b.SelectedRange().IsEmpty() {
		return b.DeleteSelection()
	}
	r := b.Mapper().CharacterRangeAt(b.head, dir)
	if !r.Valid() {
		return nil
	}
	return b.deleteRange(r)
}

// DeleteSelection removes the selected text. A caret deletes nothing.
func (b *Buffer) DeleteSelection() error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	r := b.SelectedRange()
	if r.IsEmpty() {
		return nil
	}
	return b.deleteRange(r)
}

func (b *Buffer) deleteRange(r textpos.Range) error {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	applied, changed := b.replace(r, "", document.Attrs{})
	if !changed {
		return nil
	}
	b.anchor, b.head = r.Start, r.Start
	change.addAppliedEdit(applied)
	b.finishEdit(prev, change)
	return nil
}

// SetMarkedText replaces the marked text (or the selection when nothing is
// marked) with provisional input-method text. relSel is the selection inside
// the new marked text, relative to its start; an out-of-range relSel puts the
// caret at the end. Empty text removes the marked text.
func (b *Buffer) SetMarkedText(text string, relSel textpos.Range) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	target := b.SelectedRange()
	if b.marked.Valid() {
		target = b.marked
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	applied, changed := b.replace(target, text, b.TypingAttributes())
	if changed {
		change.addAppliedEdit(applied)
	}

	n := utf8.RuneCountInString(text)
	if n == 0 {
		b.marked = textpos.InvalidRange
		b.anchor, b.head = target.Start, target.Start
	} else {
		b.marked = textpos.Range{Start: target.Start, End: target.Start + textpos.Position(n)}
		if !relSel.Valid() || int(relSel.End) > n {
			relSel = textpos.Caret(textpos.Position(n))
		}
		b.anchor = target.Start + relSel.Start
		b.head = target.Start + relSel.End
	}
	b.finishEdit(prev, change)
	return nil
}

// UnmarkText commits the marked text as ordinary text.
func (b *Buffer) UnmarkText() error {
	if !b.marked.Valid() {
		return nil
	}
	b.marked = textpos.InvalidRange
	b.version++
	return nil
}

// TypingAttributes is the style the next typed character gets: the pending
// attributes set by a style toggle on a caret, or else the style of the
// character before the selection.
func (b *Buffer) TypingAttributes() document.Attrs {
	if b.hasTyping {
		return b.typing
	}
	return b.attrsBefore(b.SelectedRange().Start)
}

func (b *Buffer) attrsBefore(p textpos.Position) document.Attrs {
	if p > 0 {
		return b.doc.AttrsAt(int(p) - 1)
	}
	return b.doc.AttrsAt(0)
}

// replace performs one validated edit and shifts every tracked position.
func (b *Buffer) replace(r textpos.Range, text string, a document.Attrs) (AppliedEdit, bool) {
	deleted := b.doc.Slice(int(r.Start), int(r.End))
	if deleted == text && (text == "" || b.doc.AllHave(int(r.Start), int(r.End), func(x document.Attrs) bool { return x == a })) {
		return AppliedEdit{}, false
	}
	edit, err := b.doc.Replace(int(r.Start), int(r.End), text, a)
	if err != nil {
		return AppliedEdit{}, false
	}
	b.anchor = edit.Shift(b.anchor)
	b.head = edit.Shift(b.head)
	if b.marked.Valid() {
		b.marked = edit.ShiftRange(b.marked)
	}
	return AppliedEdit{Edit: edit, InsertText: text, DeletedText: deleted}, true
}

func (b *Buffer) finishEdit(prev bufferSnapshot, change changeBuilder) {
	b.hasTyping = false
	b.affinity = textpos.Downstream
	b.version++
	if len(change.appliedEdits) > 0 {
		b.textVersion++
		b.recordUndo(prev)
	}
	b.commitChange(change)
}
