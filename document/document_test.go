package document

import (
	"errors"
	"testing"

	"github.com/iw2rmb/caret/textpos"
)

func TestDocument_ReplaceKeepsStylesOutsideRange(t *testing.T) {
	d := NewStyled("hello", Attrs{Bold: true})

	edit, err := d.Replace(1, 3, "EY", Attrs{Italic: true})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got, want := d.Text(), "hEYlo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := edit, (textpos.Edit{Start: 1, OldEnd: 3, NewLen: 2}); got != want {
		t.Fatalf("edit=%+v, want %+v", got, want)
	}
	if !d.AttrsAt(0).Bold || !d.AttrsAt(1).Italic || d.AttrsAt(1).Bold || !d.AttrsAt(3).Bold {
		t.Fatalf("unexpected styles: %s", d)
	}
}

func TestDocument_InvalidMutationLeavesDocumentUntouched(t *testing.T) {
	d := New("abc")

	if _, err := d.Replace(2, 1, "x", Attrs{}); !errors.Is(err, textpos.ErrInvalidRange) {
		t.Fatalf("reversed replace err=%v, want ErrInvalidRange", err)
	}
	if _, err := d.Delete(0, 9); !errors.Is(err, textpos.ErrInvalidRange) {
		t.Fatalf("delete past end err=%v, want ErrInvalidRange", err)
	}
	if _, err := d.Insert(-1, "x", Attrs{}); !errors.Is(err, textpos.ErrInvalidPosition) {
		t.Fatalf("insert before start err=%v, want ErrInvalidPosition", err)
	}
	if got := d.Text(); got != "abc" {
		t.Fatalf("text=%q, want unchanged", got)
	}
}

func TestDocument_AnchorsFollowMutations(t *testing.T) {
	d := New("0123456789")
	at7 := d.NewAnchor(7)
	at2 := d.NewAnchor(2)
	at4 := d.NewAnchor(4)

	if _, err := d.Insert(4, "abc", Attrs{}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := at7.Position(); got != 10 {
		t.Fatalf("anchor at 7 moved to %v, want 10", got)
	}
	if got := at2.Position(); got != 2 {
		t.Fatalf("anchor at 2 moved to %v, want 2", got)
	}
	if got := at4.Position(); got != 7 {
		t.Fatalf("anchor at insertion point moved to %v, want 7", got)
	}

	if _, err := d.Delete(1, 8); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := at4.Position(); got != 1 {
		t.Fatalf("anchor inside deletion=%v, want 1", got)
	}
	if got := at7.Position(); got != 3 {
		t.Fatalf("anchor after deletion=%v, want 3", got)
	}

	at2.Release()
	if got := at2.Position(); got != textpos.InvalidPosition {
		t.Fatalf("released anchor=%v, want invalid", got)
	}
	if d.NewAnchor(99) != nil {
		t.Fatalf("anchor past end should be nil")
	}
}

func TestDocument_RestoreKeepsAnchorsOutsideDiff(t *testing.T) {
	d := New("hello world")
	before := d.NewAnchor(2)
	after := d.NewAnchor(8)

	d.Restore(New("hello, world"))
	if got := d.Text(); got != "hello, world" {
		t.Fatalf("text=%q", got)
	}
	if got := before.Position(); got != 2 {
		t.Fatalf("anchor before diff=%v, want 2", got)
	}
	if got := after.Position(); got != 9 {
		t.Fatalf("anchor after diff=%v, want 9", got)
	}
}

func TestDocument_RunsCoalesce(t *testing.T) {
	d := New("abcdef")
	if err := d.UpdateAttrs(2, 4, func(a Attrs) Attrs { a.Bold = true; return a }); err != nil {
		t.Fatalf("update: %v", err)
	}
	runs := d.Runs(0, d.Len())
	want := []Run{
		{Start: 0, End: 2},
		{Start: 2, End: 4, Attrs: Attrs{Bold: true}},
		{Start: 4, End: 6},
	}
	if len(runs) != len(want) {
		t.Fatalf("runs=%v, want %v", runs, want)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("run[%d]=%v, want %v", i, runs[i], want[i])
		}
	}
	if got := d.Runs(3, 5); len(got) != 2 || got[0].Start != 3 || got[1].End != 5 {
		t.Fatalf("clipped runs=%v", got)
	}
	if d.Runs(4, 4) != nil {
		t.Fatalf("empty span should have no runs")
	}
}

func TestDocument_AllHave(t *testing.T) {
	d := New("abcd")
	_ = d.UpdateAttrs(0, 2, func(a Attrs) Attrs { a.Italic = true; return a })
	italic := func(a Attrs) bool { return a.Italic }
	if !d.AllHave(0, 2, italic) {
		t.Fatalf("expected [0,2) italic")
	}
	if d.AllHave(0, 3, italic) {
		t.Fatalf("expected [0,3) mixed")
	}
	if d.AllHave(1, 1, italic) {
		t.Fatalf("empty span should report false")
	}
}

func TestDocument_AttrsAtEdges(t *testing.T) {
	d := NewStyled("ab", Attrs{Underline: true})
	if !d.AttrsAt(2).Underline {
		t.Fatalf("end of doc should report last character's style")
	}
	if !New("").AttrsAt(0).IsZero() {
		t.Fatalf("empty doc should have zero attrs")
	}
}

func TestDocument_ParagraphRange(t *testing.T) {
	d := New("one\ntwo\u2028more\n")
	cases := []struct {
		off        int
		start, end int
	}{
		{off: 0, start: 0, end: 3},
		{off: 3, start: 0, end: 3},
		{off: 4, start: 4, end: 12},
		{off: 13, start: 13, end: 13},
	}
	for _, tc := range cases {
		s, e := d.ParagraphRange(tc.off)
		if s != tc.start || e != tc.end {
			t.Fatalf("ParagraphRange(%d)=(%d,%d), want (%d,%d)", tc.off, s, e, tc.start, tc.end)
		}
	}
}

func TestDocument_LinkRangeAt(t *testing.T) {
	d := New("see docs here")
	_ = d.UpdateAttrs(4, 8, func(a Attrs) Attrs { a.Link = "https://example.com"; return a })

	for _, off := range []int{4, 6, 8} {
		s, e, url, ok := d.LinkRangeAt(off)
		if !ok || s != 4 || e != 8 || url != "https://example.com" {
			t.Fatalf("LinkRangeAt(%d)=(%d,%d,%q,%v)", off, s, e, url, ok)
		}
	}
	if _, _, _, ok := d.LinkRangeAt(1); ok {
		t.Fatalf("no link expected at 1")
	}
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	d := New("abc")
	c := d.Clone()
	if _, err := c.Insert(0, "x", Attrs{}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if d.Text() != "abc" || c.Text() != "xabc" {
		t.Fatalf("clone shares state: %q vs %q", d.Text(), c.Text())
	}
}
