package buffer

import (
	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/textpos"
)

type bufferSnapshot struct {
	doc    *document.Document
	anchor textpos.Position
	head   textpos.Position
	marked textpos.Range
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		doc:    b.doc.Clone(),
		anchor: b.anchor,
		head:   b.head,
		marked: b.marked,
	}
}

// restore swaps the document content for s and returns the edit that did it.
// Anchors held on the document survive outside the differing region.
func (b *Buffer) restore(s bufferSnapshot) (AppliedEdit, bool) {
	before := b.doc.Clone()
	edit := b.doc.Restore(s.doc)
	b.anchor, b.head = s.anchor, s.head
	b.marked = s.marked
	b.hasTyping = false
	if edit.IsNoop() {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		Edit:        edit,
		DeletedText: before.Slice(int(edit.Start), int(edit.OldEnd)),
		InsertText:  b.doc.Slice(int(edit.Start), int(edit.Start)+edit.NewLen),
	}, true
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores text, styles and selection as they were before the last
// mutation.
func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 || b.opt.ReadOnly {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	applied, ok := b.restore(prev)
	b.version++
	b.textVersion++
	if ok {
		change.addAppliedEdit(applied)
	} else {
		change.styleOnly = true
	}
	b.commitChange(change)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 || b.opt.ReadOnly {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	applied, ok := b.restore(next)
	b.version++
	b.textVersion++
	if ok {
		change.addAppliedEdit(applied)
	} else {
		change.styleOnly = true
	}
	b.commitChange(change)
	return true
}
