package textpos

import "testing"

func mapperFor(s string) Mapper {
	return NewMapper(Runes([]rune(s)), WordsUnicode)
}

func TestMapper_OffsetFromStartRoundTrips(t *testing.T) {
	m := mapperFor("hello\nworld")
	for o := 0; o <= m.Len(); o++ {
		got, ok := m.OffsetFrom(m.Start(), Position(o))
		if !ok {
			t.Fatalf("OffsetFrom(0, %d) not ok", o)
		}
		if got != o {
			t.Fatalf("OffsetFrom(0, %d)=%d, want %d", o, got, o)
		}
		if back := m.PositionFrom(m.Start(), got); back != Position(o) {
			t.Fatalf("PositionFrom(0, %d)=%v, want %d", got, back, o)
		}
	}
}

func TestMapper_OffsetFromIsInverseOfPositionFrom(t *testing.T) {
	m := mapperFor("abcdef")
	for from := 0; from <= m.Len(); from++ {
		for to := 0; to <= m.Len(); to++ {
			d, ok := m.OffsetFrom(Position(from), Position(to))
			if !ok {
				t.Fatalf("OffsetFrom(%d,%d) not ok", from, to)
			}
			if got := m.PositionFrom(Position(from), d); got != Position(to) {
				t.Fatalf("PositionFrom(%d, %d)=%v, want %d", from, d, got, to)
			}
		}
	}
}

func TestMapper_PositionFromOutOfRangeIsInvalid(t *testing.T) {
	m := mapperFor("abc")

	if got := m.PositionFrom(m.Start(), -1); got != InvalidPosition {
		t.Fatalf("PositionFrom(0,-1)=%v, want invalid", got)
	}
	if got := m.PositionFrom(m.Start(), 4); got != InvalidPosition {
		t.Fatalf("PositionFrom(0,4)=%v, want invalid", got)
	}
	if got := m.PositionFrom(Position(9), 0); got != InvalidPosition {
		t.Fatalf("PositionFrom from out-of-range base=%v, want invalid", got)
	}
	if got := m.PositionFrom(InvalidPosition, 1); got != InvalidPosition {
		t.Fatalf("PositionFrom from invalid base=%v, want invalid", got)
	}
	if got := m.PositionFrom(m.End(), 0); got != 3 {
		t.Fatalf("PositionFrom(end,0)=%v, want 3", got)
	}
}

func TestMapper_ClampedPositionFrom(t *testing.T) {
	m := mapperFor("abc")
	if got := m.ClampedPositionFrom(1, -5); got != 0 {
		t.Fatalf("clamped low=%v, want 0", got)
	}
	if got := m.ClampedPositionFrom(1, 10); got != 3 {
		t.Fatalf("clamped high=%v, want 3", got)
	}
	if got := m.ClampedPositionFrom(InvalidPosition, 1); got != InvalidPosition {
		t.Fatalf("clamped from invalid=%v, want invalid", got)
	}
}

func TestMapper_CompareIsTotalOrder(t *testing.T) {
	m := mapperFor("abcd")
	for a := 0; a <= m.Len(); a++ {
		if got := m.Compare(Position(a), Position(a)); got != Same {
			t.Fatalf("Compare(%d,%d)=%v, want same", a, a, got)
		}
		for b := 0; b <= m.Len(); b++ {
			ab := m.Compare(Position(a), Position(b))
			ba := m.Compare(Position(b), Position(a))
			if ab != -ba {
				t.Fatalf("Compare not antisymmetric for %d,%d: %v vs %v", a, b, ab, ba)
			}
			want := Same
			if a < b {
				want = Before
			} else if a > b {
				want = After
			}
			if ab != want {
				t.Fatalf("Compare(%d,%d)=%v, want %v", a, b, ab, want)
			}
		}
	}
}

func TestMapper_RangeEnclosingAllText(t *testing.T) {
	m := mapperFor("h\u00e9llo")
	if got, want := m.RangeEnclosingAllText(), (Range{Start: 0, End: 5}); got != want {
		t.Fatalf("all text=%v, want %v", got, want)
	}
	empty := mapperFor("")
	if got := empty.RangeEnclosingAllText(); got != Caret(0) {
		t.Fatalf("all text of empty doc=%v, want caret at 0", got)
	}
}

func TestMapper_TextInRange(t *testing.T) {
	m := mapperFor("the cat sat")
	if got, ok := m.TextInRange(Range{Start: 4, End: 7}); !ok || got != "cat" {
		t.Fatalf("TextInRange=%q,%v, want cat,true", got, ok)
	}
	if _, ok := m.TextInRange(Range{Start: 7, End: 4}); ok {
		t.Fatalf("reversed range should be rejected")
	}
	if _, ok := m.TextInRange(Range{Start: 4, End: 40}); ok {
		t.Fatalf("range past end should be rejected")
	}
}

func TestMapper_PositionWithin(t *testing.T) {
	m := mapperFor("abcdef")
	r := Range{Start: 1, End: 4}
	if got := m.PositionWithin(r, Left); got != 1 {
		t.Fatalf("left edge=%v, want 1", got)
	}
	if got := m.PositionWithin(r, Down); got != 4 {
		t.Fatalf("down edge=%v, want 4", got)
	}
	if got := m.PositionWithin(InvalidRange, Left); got != InvalidPosition {
		t.Fatalf("invalid range edge=%v, want invalid", got)
	}
}

func TestMapper_PositionInDirection_StepsWholeClusters(t *testing.T) {
	// "a", "e\u0301", "\n", "b" (the accent is a combining mark)
	m := mapperFor("ae\u0301\nb")

	if got := m.PositionInDirection(1, Right, 1); got != 3 {
		t.Fatalf("right over combining cluster=%v, want 3", got)
	}
	if got := m.PositionInDirection(3, Left, 1); got != 1 {
		t.Fatalf("left over combining cluster=%v, want 1", got)
	}
	if got := m.PositionInDirection(3, Right, 1); got != 4 {
		t.Fatalf("right over newline=%v, want 4", got)
	}
	if got := m.PositionInDirection(4, Left, 1); got != 3 {
		t.Fatalf("left over newline=%v, want 3", got)
	}
	if got := m.PositionInDirection(0, Left, 1); got != InvalidPosition {
		t.Fatalf("left of start=%v, want invalid", got)
	}
	if got := m.PositionInDirection(5, Right, 1); got != InvalidPosition {
		t.Fatalf("right of end=%v, want invalid", got)
	}
	if got := m.PositionInDirection(0, Right, 3); got != 4 {
		t.Fatalf("right by 3=%v, want 4", got)
	}
	if got := m.PositionInDirection(2, Down, 1); got != InvalidPosition {
		t.Fatalf("vertical motion=%v, want invalid", got)
	}
}

func TestMapper_CharacterRangeAt_InsideCluster(t *testing.T) {
	m := mapperFor("ae\u0301b")
	// Offset 2 sits between 'e' and the combining accent.
	if got, want := m.CharacterRangeAt(2, Right), (Range{Start: 1, End: 3}); got != want {
		t.Fatalf("right cluster=%v, want %v", got, want)
	}
	if got, want := m.CharacterRangeAt(2, Left), (Range{Start: 1, End: 3}); got != want {
		t.Fatalf("left cluster=%v, want %v", got, want)
	}
}

func TestMapper_ParagraphRange(t *testing.T) {
	m := mapperFor("ab\ncd\n")
	cases := []struct {
		p    Position
		want Range
	}{
		{p: 0, want: Range{Start: 0, End: 2}},
		{p: 2, want: Range{Start: 0, End: 2}},
		{p: 3, want: Range{Start: 3, End: 5}},
		{p: 6, want: Range{Start: 6, End: 6}},
		{p: 7, want: InvalidRange},
	}
	for _, tc := range cases {
		if got := m.ParagraphRange(tc.p); got != tc.want {
			t.Fatalf("ParagraphRange(%v)=%v, want %v", tc.p, got, tc.want)
		}
	}
}
