package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/textpos"
)

func (b *Buffer) ToggleBold(r textpos.Range) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Bold },
		func(a document.Attrs, on bool) document.Attrs { a.Bold = on; return a })
}

func (b *Buffer) ToggleItalic(r textpos.Range) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Italic },
		func(a document.Attrs, on bool) document.Attrs { a.Italic = on; return a })
}

func (b *Buffer) ToggleUnderline(r textpos.Range) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Underline },
		func(a document.Attrs, on bool) document.Attrs { a.Underline = on; return a })
}

func (b *Buffer) ToggleStrike(r textpos.Range) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Strike },
		func(a document.Attrs, on bool) document.Attrs { a.Strike = on; return a })
}

// ToggleHighlight sets the highlight color on r, or clears it when all of r
// already has that color.
func (b *Buffer) ToggleHighlight(r textpos.Range, color string) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Highlight == color },
		func(a document.Attrs, on bool) document.Attrs {
			a.Highlight = ""
			if on {
				a.Highlight = color
			}
			return a
		})
}

// ToggleHyperlink links r to url, or unlinks it when all of r already
// points there.
func (b *Buffer) ToggleHyperlink(r textpos.Range, url string) error {
	return b.toggle(r, func(a document.Attrs) bool { return a.Link == url },
		func(a document.Attrs, on bool) document.Attrs {
			a.Link = ""
			if on {
				a.Link = url
			}
			return a
		})
}

// toggle flips one attribute over r: set when any character lacks it,
// cleared when all have it. On a caret it flips the pending typing
// attributes instead.
func (b *Buffer) toggle(r textpos.Range, has func(document.Attrs) bool, set func(document.Attrs, bool) document.Attrs) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if !b.Mapper().ValidRange(r) {
		return fmt.Errorf("style %v (len %d): %w", r, b.doc.Len(), textpos.ErrInvalidRange)
	}
	if r.IsEmpty() {
		a := b.TypingAttributes()
		b.typing = set(a, !has(a))
		b.hasTyping = true
		b.version++
		return nil
	}

	on := !b.doc.AllHave(int(r.Start), int(r.End), has)
	return b.restyle(int(r.Start), int(r.End), func(a document.Attrs) document.Attrs { return set(a, on) })
}

// ApplyAlignment aligns every paragraph touched by r.
func (b *Buffer) ApplyAlignment(r textpos.Range, align document.Alignment) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	m := b.Mapper()
	if !m.ValidRange(r) {
		return fmt.Errorf("align %v (len %d): %w", r, b.doc.Len(), textpos.ErrInvalidRange)
	}
	start := m.ParagraphRange(r.Start).Start
	end := m.ParagraphRange(r.End).End
	if end < m.End() {
		end++ // the separator carries the alignment of an empty paragraph
	}

	a := b.TypingAttributes()
	a.Align = align
	b.typing = a
	if start == end {
		b.hasTyping = true
		b.version++
		return nil
	}
	if err := b.restyle(int(start), int(end), func(a document.Attrs) document.Attrs {
		a.Align = align
		return a
	}); err != nil {
		return err
	}
	b.hasTyping = true
	return nil
}

func (b *Buffer) restyle(start, end int, fn func(document.Attrs) document.Attrs) error {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	change.styleOnly = true
	if err := b.doc.UpdateAttrs(start, end, fn); err != nil {
		return err
	}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
	return nil
}

// ToggleList starts every paragraph touched by r with a Bullet, or removes
// the bullets when all of them already have one. The whole toggle is one
// undo step; selection and marked text shift with each edit.
func (b *Buffer) ToggleList(r textpos.Range) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	m := b.Mapper()
	if !m.ValidRange(r) {
		return fmt.Errorf("list %v (len %d): %w", r, b.doc.Len(), textpos.ErrInvalidRange)
	}

	var starts []textpos.Position
	p := m.ParagraphRange(r.Start).Start
	for {
		starts = append(starts, p)
		end := m.ParagraphRange(p).End
		if end >= r.End || end >= m.End() {
			break
		}
		p = end + 1
	}
	n := textpos.Position(utf8.RuneCountInString(document.Bullet))
	hasBullet := func(p textpos.Position) bool {
		return b.doc.Slice(int(p), min(int(p+n), b.doc.Len())) == document.Bullet
	}
	remove := true
	for _, p := range starts {
		if !hasBullet(p) {
			remove = false
			break
		}
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)
	// Back to front, so earlier paragraph starts stay put.
	for i := len(starts) - 1; i >= 0; i-- {
		p := starts[i]
		var (
			applied AppliedEdit
			changed bool
		)
		switch {
		case remove:
			applied, changed = b.replace(textpos.Range{Start: p, End: p + n}, "", document.Attrs{})
		case !hasBullet(p):
			a := document.Attrs{Align: b.doc.AttrsAt(int(p)).Align}
			applied, changed = b.replace(textpos.Caret(p), document.Bullet, a)
		}
		if changed {
			change.addAppliedEdit(applied)
		}
	}
	if len(change.appliedEdits) == 0 {
		return nil
	}
	b.finishEdit(prev, change)
	return nil
}
