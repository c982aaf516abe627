package buffer

import (
	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/textpos"
)

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, moves the head and keeps the anchor; if false collapses the selection
}

// Move moves the caret. Up and down here step between hard lines by rune
// column; display-line motion belongs to the layout.
func (b *Buffer) Move(m Move) {
	sel := b.SelectedRange()
	if !m.Extend && !sel.IsEmpty() && m.Unit == MoveGrapheme {
		switch m.Dir {
		case DirLeft:
			b.setSelection(sel.Start, sel.Start)
			return
		case DirRight:
			b.setSelection(sel.End, sel.End)
			return
		}
	}

	next := b.moveCursor(b.head, m)
	if m.Extend {
		b.setSelection(b.anchor, next)
		return
	}
	b.setSelection(next, next)
}

func (b *Buffer) moveCursor(p textpos.Position, m Move) textpos.Position {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(p, m.Dir)
	case MoveWord:
		return b.moveWord(p, m.Dir)
	case MoveLine:
		return b.moveLine(p, m.Dir)
	case MoveDoc:
		return b.moveDoc(p, m.Dir)
	default:
		return p
	}
}

func (b *Buffer) moveGrapheme(p textpos.Position, dir MoveDir) textpos.Position {
	m := b.Mapper()
	switch dir {
	case DirLeft:
		if next := m.PositionInDirection(p, textpos.Left, 1); next.Valid() {
			return next
		}
		return p
	case DirRight:
		if next := m.PositionInDirection(p, textpos.Right, 1); next.Valid() {
			return next
		}
		return p
	default:
		return b.moveLine(p, dir)
	}
}

// moveWord jumps to the start of the previous word or the end of the next
// one. A paragraph edge is a stop of its own.
func (b *Buffer) moveWord(p textpos.Position, dir MoveDir) textpos.Position {
	m := b.Mapper()
	para := m.ParagraphRange(p)
	switch dir {
	case DirLeft:
		if p == para.Start {
			return max(p-1, 0)
		}
		next := para.Start
		for _, w := range m.Words(textpos.Range{Start: para.Start, End: p}) {
			if w.Start < p {
				next = w.Start
			}
		}
		return next
	case DirRight:
		if p == para.End {
			return min(p+1, m.End())
		}
		for _, w := range m.Words(textpos.Range{Start: p, End: para.End}) {
			if w.End > p {
				return w.End
			}
		}
		return para.End
	default:
		return b.moveLine(p, dir)
	}
}

func (b *Buffer) moveLine(p textpos.Position, dir MoveDir) textpos.Position {
	start, end := b.hardLine(p)
	switch dir {
	case DirHome:
		return start
	case DirEnd:
		return end
	case DirUp:
		if start == 0 {
			return p
		}
		ps, pe := b.hardLine(start - 1)
		return min(ps+(p-start), pe)
	case DirDown:
		if int(end) >= b.doc.Len() {
			return p
		}
		ns, ne := b.hardLine(end + 1)
		return min(ns+(p-start), ne)
	default:
		return p
	}
}

func (b *Buffer) moveDoc(p textpos.Position, dir MoveDir) textpos.Position {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return textpos.Position(b.doc.Len())
	default:
		return p
	}
}

// hardLine returns the bounds of the line around p, delimited by paragraph
// and line separators; end excludes the separator.
func (b *Buffer) hardLine(p textpos.Position) (start, end textpos.Position) {
	n := b.doc.Len()
	s := clampInt(int(p), 0, n)
	for s > 0 && !isLineBreak(b.doc.RuneAt(s-1)) {
		s--
	}
	e := clampInt(int(p), 0, n)
	for e < n && !isLineBreak(b.doc.RuneAt(e)) {
		e++
	}
	return textpos.Position(s), textpos.Position(e)
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == document.LineSeparator
}
