package document

import "github.com/iw2rmb/caret/textpos"

// Anchor is a position that follows the text around it as the document
// changes. Anchors are the only positions that survive a mutation; plain
// textpos.Position values must be shifted by hand.
type Anchor struct {
	doc *Document
	pos textpos.Position
}

// NewAnchor tracks offset. It answers nil for an offset outside
// [0, Len].
func (d *Document) NewAnchor(offset int) *Anchor {
	if offset < 0 || offset > len(d.text) {
		return nil
	}
	a := &Anchor{doc: d, pos: textpos.Position(offset)}
	d.anchors = append(d.anchors, a)
	return a
}

// Position is the anchor's current position, or InvalidPosition once
// released.
func (a *Anchor) Position() textpos.Position {
	if a == nil || a.doc == nil {
		return textpos.InvalidPosition
	}
	return a.pos
}

// Release stops tracking.
func (a *Anchor) Release() {
	if a == nil || a.doc == nil {
		return
	}
	d := a.doc
	for i, x := range d.anchors {
		if x == a {
			d.anchors = append(d.anchors[:i], d.anchors[i+1:]...)
			break
		}
	}
	a.doc = nil
}

func (d *Document) shiftAnchors(e textpos.Edit) {
	for _, a := range d.anchors {
		a.pos = e.Shift(a.pos)
	}
}
