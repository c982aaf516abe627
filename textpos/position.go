package textpos

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition reports an offset outside [0, document length].
	ErrInvalidPosition = errors.New("invalid text position")
	// ErrInvalidRange reports a range with Start > End or an invalid endpoint.
	ErrInvalidRange = errors.New("invalid text range")
)

// Position is a rune offset into a document.
type Position int

// InvalidPosition is the "no such position" sentinel.
const InvalidPosition Position = -1

// At returns the position for off, or InvalidPosition when off is negative.
func At(off int) Position {
	if off < 0 {
		return InvalidPosition
	}
	return Position(off)
}

func (p Position) Offset() int { return int(p) }

// Valid reports whether p is a non-negative offset. Whether it lies inside a
// particular document is answered by Mapper.Valid.
func (p Position) Valid() bool { return p >= 0 }

func (p Position) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%d", int(p))
}

// Ordering is the result of comparing two positions.
type Ordering int

const (
	Before Ordering = -1
	Same   Ordering = 0
	After  Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case Same:
		return "same"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// ComparePositions orders a and b by offset.
func ComparePositions(a, b Position) Ordering {
	switch {
	case a < b:
		return Before
	case a > b:
		return After
	default:
		return Same
	}
}

// Range is a half-open span [Start, End) of positions.
type Range struct {
	Start Position
	End   Position
}

// InvalidRange is the "no such range" sentinel.
var InvalidRange = Range{Start: InvalidPosition, End: InvalidPosition}

// Caret returns the empty range at p.
func Caret(p Position) Range { return Range{Start: p, End: p} }

// NewRange returns the range between a and b in document order, or
// InvalidRange if either endpoint is invalid.
func NewRange(a, b Position) Range {
	if !a.Valid() || !b.Valid() {
		return InvalidRange
	}
	if b < a {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Valid reports whether both endpoints are valid and Start <= End.
func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid() && r.Start <= r.End
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) Len() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End - r.Start)
}

// Contains reports whether p lies in [Start, End).
func (r Range) Contains(p Position) bool {
	return r.Valid() && p >= r.Start && p < r.End
}

// Touches reports whether p lies in [Start, End]; a caret touches itself.
func (r Range) Touches(p Position) bool {
	return r.Valid() && p >= r.Start && p <= r.End
}

// Overlaps reports whether r and o share at least one character.
func (r Range) Overlaps(o Range) bool {
	return r.Valid() && o.Valid() && r.Start < o.End && o.Start < r.End
}

func (r Range) String() string {
	if !r.Valid() {
		return "[invalid)"
	}
	return fmt.Sprintf("[%d,%d)", int(r.Start), int(r.End))
}

// Direction is a layout direction used by input-protocol queries.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Affinity says which side of a boundary a caret belongs to, e.g. at a
// soft line wrap where one offset ends one line and starts the next.
type Affinity uint8

const (
	Downstream Affinity = iota
	Upstream
)
