package textpos

import (
	"github.com/iw2rmb/caret/internal/grapheme"
)

// Text is the read side of a document as the mapper needs it. Offsets are
// runes.
type Text interface {
	Len() int
	RuneAt(i int) rune
	Slice(start, end int) string
}

// Runes adapts a rune slice to Text.
type Runes []rune

func (r Runes) Len() int { return len(r) }

func (r Runes) RuneAt(i int) rune { return r[i] }

func (r Runes) Slice(start, end int) string { return string(r[start:end]) }

// Mapper answers position and range queries against the current state of a
// Text. It holds no state of its own beyond the text and the word policy.
type Mapper struct {
	text  Text
	words WordPolicy
}

func NewMapper(t Text, words WordPolicy) Mapper {
	return Mapper{text: t, words: words}
}

func (m Mapper) Len() int {
	if m.text == nil {
		return 0
	}
	return m.text.Len()
}

// Valid reports whether p lies in [0, Len].
func (m Mapper) Valid(p Position) bool {
	return p.Valid() && int(p) <= m.Len()
}

// ValidRange reports whether r is ordered and both endpoints are valid.
func (m Mapper) ValidRange(r Range) bool {
	return r.Valid() && m.Valid(r.Start) && m.Valid(r.End)
}

// Start is the position before the first character.
func (m Mapper) Start() Position { return 0 }

// End is the position after the last character.
func (m Mapper) End() Position { return Position(m.Len()) }

// PositionFrom returns base moved by delta characters, or InvalidPosition if
// base is invalid or the result falls outside [0, Len].
func (m Mapper) PositionFrom(base Position, delta int) Position {
	if !m.Valid(base) {
		return InvalidPosition
	}
	next := int(base) + delta
	if next < 0 || next > m.Len() {
		return InvalidPosition
	}
	return Position(next)
}

// ClampedPositionFrom is PositionFrom with the result clamped into [0, Len].
func (m Mapper) ClampedPositionFrom(base Position, delta int) Position {
	if !m.Valid(base) {
		return InvalidPosition
	}
	return Position(clampInt(int(base)+delta, 0, m.Len()))
}

// Compare orders two positions of this document. Invalid positions sort
// before every valid one so the order stays total.
func (m Mapper) Compare(a, b Position) Ordering {
	return ComparePositions(a, b)
}

// OffsetFrom returns the signed distance from one position to another.
func (m Mapper) OffsetFrom(from, to Position) (int, bool) {
	if !m.Valid(from) || !m.Valid(to) {
		return 0, false
	}
	return int(to - from), true
}

// RangeFrom returns the range spanning a and b in document order.
func (m Mapper) RangeFrom(a, b Position) Range {
	if !m.Valid(a) || !m.Valid(b) {
		return InvalidRange
	}
	return NewRange(a, b)
}

// RangeEnclosingAllText is [0, Len].
func (m Mapper) RangeEnclosingAllText() Range {
	return Range{Start: 0, End: m.End()}
}

// TextInRange returns the characters covered by r.
func (m Mapper) TextInRange(r Range) (string, bool) {
	if !m.ValidRange(r) {
		return "", false
	}
	if r.IsEmpty() {
		return "", true
	}
	return m.text.Slice(int(r.Start), int(r.End)), true
}

// PositionWithin returns the edge of r facing dir: Start for Left/Up, End
// for Right/Down.
func (m Mapper) PositionWithin(r Range, dir Direction) Position {
	if !m.ValidRange(r) {
		return InvalidPosition
	}
	switch dir {
	case Left, Up:
		return r.Start
	case Right, Down:
		return r.End
	default:
		return InvalidPosition
	}
}

// PositionInDirection steps n grapheme clusters left or right of p, never
// landing inside a cluster. It answers InvalidPosition if the walk would
// leave the document. Vertical motion depends on line geometry and is
// answered by the layout package.
func (m Mapper) PositionInDirection(p Position, dir Direction, n int) Position {
	if !m.Valid(p) || n < 0 {
		return InvalidPosition
	}
	switch dir {
	case Left:
		for i := 0; i < n; i++ {
			r := m.CharacterRangeAt(p, Left)
			if !r.Valid() {
				return InvalidPosition
			}
			p = r.Start
		}
		return p
	case Right:
		for i := 0; i < n; i++ {
			r := m.CharacterRangeAt(p, Right)
			if !r.Valid() {
				return InvalidPosition
			}
			p = r.End
		}
		return p
	default:
		return InvalidPosition
	}
}

// CharacterRangeAt returns the grapheme cluster adjacent to p on the given
// side (Left: ending at or spanning p, Right: starting at or spanning p).
// It answers InvalidRange at the document edges.
func (m Mapper) CharacterRangeAt(p Position, dir Direction) Range {
	if !m.Valid(p) {
		return InvalidRange
	}
	off := int(p)
	ps, pe := m.paragraphBounds(off)
	switch dir {
	case Left:
		if off == 0 {
			return InvalidRange
		}
		if off == ps {
			// The paragraph separator before p.
			return Range{Start: p - 1, End: p}
		}
		for _, c := range grapheme.Clusters(m.text.Slice(ps, pe)) {
			if ps+c.Start < off && off <= ps+c.End {
				return Range{Start: Position(ps + c.Start), End: Position(ps + c.End)}
			}
		}
	case Right:
		if off == m.Len() {
			return InvalidRange
		}
		if off == pe {
			return Range{Start: p, End: p + 1}
		}
		for _, c := range grapheme.Clusters(m.text.Slice(ps, pe)) {
			if ps+c.Start <= off && off < ps+c.End {
				return Range{Start: Position(ps + c.Start), End: Position(ps + c.End)}
			}
		}
	}
	return InvalidRange
}

func (m Mapper) slice(start, end int) string {
	if m.text == nil {
		return ""
	}
	return m.text.Slice(start, end)
}

// paragraphBounds returns the '\n'-delimited paragraph around off; end
// excludes the separator.
func (m Mapper) paragraphBounds(off int) (start, end int) {
	n := m.Len()
	start = clampInt(off, 0, n)
	for start > 0 && m.text.RuneAt(start-1) != '\n' {
		start--
	}
	end = clampInt(off, 0, n)
	for end < n && m.text.RuneAt(end) != '\n' {
		end++
	}
	return start, end
}

// ParagraphRange returns the paragraph containing p, excluding its trailing
// separator.
func (m Mapper) ParagraphRange(p Position) Range {
	if !m.Valid(p) {
		return InvalidRange
	}
	s, e := m.paragraphBounds(int(p))
	return Range{Start: Position(s), End: Position(e)}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
