package textpos

import "testing"

func TestEdit_InsertionShiftsAtOrAfterPoint(t *testing.T) {
	// Length-10 document, 3 characters inserted at offset 4.
	e := Insertion(4, 3)

	if got := e.Shift(7); got != 10 {
		t.Fatalf("shift(7)=%v, want 10", got)
	}
	if got := e.Shift(2); got != 2 {
		t.Fatalf("shift(2)=%v, want 2", got)
	}
	if got := e.Shift(4); got != 7 {
		t.Fatalf("shift(4)=%v, want 7", got)
	}
	for p := 0; p <= 10; p++ {
		got := e.Shift(Position(p))
		want := Position(p)
		if p >= 4 {
			want = Position(p + 3)
		}
		if got != want {
			t.Fatalf("shift(%d)=%v, want %v", p, got, want)
		}
	}
}

func TestEdit_DeletionCollapsesInside(t *testing.T) {
	e := Deletion(Range{Start: 2, End: 5})
	cases := []struct {
		in, want Position
	}{
		{in: 1, want: 1},
		{in: 2, want: 2},
		{in: 3, want: 2},
		{in: 5, want: 2},
		{in: 8, want: 5},
	}
	for _, tc := range cases {
		if got := e.Shift(tc.in); got != tc.want {
			t.Fatalf("shift(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
	if got := e.Delta(); got != -3 {
		t.Fatalf("delta=%d, want -3", got)
	}
}

func TestEdit_ReplacementMovesInsideToEndOfNewText(t *testing.T) {
	e := Edit{Start: 2, OldEnd: 5, NewLen: 1}
	if got := e.Shift(3); got != 3 {
		t.Fatalf("inside=%v, want 3", got)
	}
	if got := e.Shift(6); got != 4 {
		t.Fatalf("after=%v, want 4", got)
	}
	if got, want := e.NewRange(), (Range{Start: 2, End: 3}); got != want {
		t.Fatalf("new range=%v, want %v", got, want)
	}
	if got, want := e.ShiftRange(Range{Start: 1, End: 6}), (Range{Start: 1, End: 4}); got != want {
		t.Fatalf("shift range=%v, want %v", got, want)
	}
}

func TestEdit_InvalidPositionsPassThrough(t *testing.T) {
	e := Insertion(0, 2)
	if got := e.Shift(InvalidPosition); got != InvalidPosition {
		t.Fatalf("shift(invalid)=%v", got)
	}
	if got := e.ShiftRange(InvalidRange); got != InvalidRange {
		t.Fatalf("shift range(invalid)=%v", got)
	}
}

func TestDiffEdit(t *testing.T) {
	cases := []struct {
		before, after string
		want          Edit
	}{
		{before: "hello", after: "hello", want: Edit{Start: 5, OldEnd: 5, NewLen: 0}},
		{before: "hello", after: "help", want: Edit{Start: 3, OldEnd: 5, NewLen: 1}},
		{before: "abc", after: "aXbc", want: Edit{Start: 1, OldEnd: 1, NewLen: 1}},
		{before: "aaa", after: "aa", want: Edit{Start: 2, OldEnd: 3, NewLen: 0}},
		{before: "", after: "xy", want: Edit{Start: 0, OldEnd: 0, NewLen: 2}},
	}
	for _, tc := range cases {
		got := DiffEdit([]rune(tc.before), []rune(tc.after))
		if got != tc.want {
			t.Fatalf("DiffEdit(%q,%q)=%+v, want %+v", tc.before, tc.after, got, tc.want)
		}
		if !got.IsNoop() && len([]rune(tc.before))+got.Delta() != len([]rune(tc.after)) {
			t.Fatalf("DiffEdit(%q,%q) delta mismatch", tc.before, tc.after)
		}
	}
}
