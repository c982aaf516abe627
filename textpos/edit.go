package textpos

// Edit describes one performed mutation: the old text in [Start, OldEnd)
// was replaced by NewLen runes.
type Edit struct {
	Start  Position
	OldEnd Position
	NewLen int
}

// Insertion returns the edit for inserting n runes at p.
func Insertion(p Position, n int) Edit {
	return Edit{Start: p, OldEnd: p, NewLen: n}
}

// Deletion returns the edit for removing r.
func Deletion(r Range) Edit {
	return Edit{Start: r.Start, OldEnd: r.End}
}

// Delta is the change in document length caused by e.
func (e Edit) Delta() int {
	return e.NewLen - int(e.OldEnd-e.Start)
}

// OldRange is the replaced span in pre-edit coordinates.
func (e Edit) OldRange() Range { return Range{Start: e.Start, End: e.OldEnd} }

// NewRange is the inserted span in post-edit coordinates.
func (e Edit) NewRange() Range {
	return Range{Start: e.Start, End: e.Start + Position(e.NewLen)}
}

func (e Edit) IsNoop() bool {
	return e.Start == e.OldEnd && e.NewLen == 0
}

// Shift carries a position captured before e to the matching position after
// it. Positions before Start are unchanged; positions at or after OldEnd move
// by Delta (for an insertion that includes Start itself); positions inside a
// replaced span collapse to the end of the inserted text.
func (e Edit) Shift(p Position) Position {
	if !p.Valid() {
		return p
	}
	switch {
	case p < e.Start:
		return p
	case p >= e.OldEnd:
		return p + Position(e.Delta())
	default:
		return e.Start + Position(e.NewLen)
	}
}

// ShiftRange shifts both endpoints of r; the result stays ordered.
func (e Edit) ShiftRange(r Range) Range {
	if !r.Valid() {
		return r
	}
	return Range{Start: e.Shift(r.Start), End: e.Shift(r.End)}
}

// DiffEdit returns the single edit that turns before into after, trimmed to
// the span between their common prefix and suffix.
func DiffEdit(before, after []rune) Edit {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	return Edit{
		Start:  Position(prefix),
		OldEnd: Position(len(before) - suffix),
		NewLen: len(after) - suffix - prefix,
	}
}
