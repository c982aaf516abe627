package textpos

import "unicode/utf16"

type OffsetClampMode uint8

const (
	// OffsetError rejects out-of-range lines and columns.
	OffsetError OffsetClampMode = iota
	// OffsetClamp clamps them into the document.
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// ColumnUnit selects what a column counts.
type ColumnUnit uint8

const (
	ColumnRunes ColumnUnit = iota
	ColumnUTF16
)

// LineColumn returns the zero-based paragraph line and rune column of p.
func (m Mapper) LineColumn(p Position) (line, col int, ok bool) {
	return m.lineColumn(p, ColumnRunes)
}

// UTF16LineColumn is LineColumn with the column counted in UTF-16 code
// units, as the Language Server Protocol expects.
func (m Mapper) UTF16LineColumn(p Position) (line, col int, ok bool) {
	return m.lineColumn(p, ColumnUTF16)
}

// PositionFromLineColumn resolves a rune column on a line.
func (m Mapper) PositionFromLineColumn(line, col int, policy ConvertPolicy) Position {
	return m.positionFromLineColumn(line, col, ColumnRunes, policy)
}

// PositionFromUTF16 resolves a UTF-16 column on a line. A column that splits
// a surrogate pair is invalid under OffsetError and rounds down under
// OffsetClamp.
func (m Mapper) PositionFromUTF16(line, col int, policy ConvertPolicy) Position {
	return m.positionFromLineColumn(line, col, ColumnUTF16, policy)
}

func (m Mapper) lineColumn(p Position, unit ColumnUnit) (line, col int, ok bool) {
	if !m.Valid(p) {
		return 0, 0, false
	}
	start := 0
	for i := 0; i < int(p); i++ {
		if m.text.RuneAt(i) == '\n' {
			line++
			start = i + 1
		}
	}
	for i := start; i < int(p); i++ {
		col += runeUnits(m.text.RuneAt(i), unit)
	}
	return line, col, true
}

func (m Mapper) positionFromLineColumn(line, col int, unit ColumnUnit, policy ConvertPolicy) Position {
	if policy.ClampMode != OffsetError && policy.ClampMode != OffsetClamp {
		return InvalidPosition
	}
	clamp := policy.ClampMode == OffsetClamp
	n := m.Len()

	if line < 0 {
		if !clamp {
			return InvalidPosition
		}
		line, col = 0, 0
	}

	off := 0
	for cur := 0; cur < line; cur++ {
		for off < n && m.text.RuneAt(off) != '\n' {
			off++
		}
		if off == n {
			// Fewer lines than asked for.
			if !clamp {
				return InvalidPosition
			}
			return Position(n)
		}
		off++
	}

	if col < 0 {
		if !clamp {
			return InvalidPosition
		}
		col = 0
	}

	units := 0
	for units < col {
		if m.lineEnd(off) {
			if !clamp {
				return InvalidPosition
			}
			return Position(off)
		}
		w := runeUnits(m.text.RuneAt(off), unit)
		if units+w > col {
			// Column splits a surrogate pair.
			if !clamp {
				return InvalidPosition
			}
			return Position(off)
		}
		units += w
		off++
	}
	return Position(off)
}

func runeUnits(r rune, unit ColumnUnit) int {
	if unit == ColumnUTF16 {
		if n := utf16.RuneLen(r); n > 0 {
			return n
		}
		return 1
	}
	return 1
}

// lineEnd reports whether off is where its line's text stops: the end of the
// document, a '\n', or the '\r' of a "\r\n" pair.
func (m Mapper) lineEnd(off int) bool {
	n := m.Len()
	if off >= n {
		return true
	}
	switch m.text.RuneAt(off) {
	case '\n':
		return true
	case '\r':
		return off+1 < n && m.text.RuneAt(off+1) == '\n'
	}
	return false
}
