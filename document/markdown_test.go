package document

import (
	"bytes"
	"testing"
)

func TestFromMarkdown_InlineStyles(t *testing.T) {
	d, err := FromMarkdown([]byte("plain *it* **bold** `code` [link](https://x.test)"))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if got, want := d.Text(), "plain it bold code link"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	checks := []struct {
		off  int
		want Attrs
	}{
		{off: 0, want: Attrs{}},
		{off: 6, want: Attrs{Italic: true}},
		{off: 9, want: Attrs{Bold: true}},
		{off: 14, want: Attrs{Code: true}},
		{off: 19, want: Attrs{Link: "https://x.test"}},
	}
	for _, c := range checks {
		if got := d.AttrsAt(c.off); got != c.want {
			t.Fatalf("AttrsAt(%d)=%+v, want %+v", c.off, got, c.want)
		}
	}
}

func TestFromMarkdown_Blocks(t *testing.T) {
	src := "# Title\n\nfirst\nline\n\n- one\n- two\n\n```\na\nb\n```\n"
	d, err := FromMarkdown([]byte(src))
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	want := "Title\nfirst line\n• one\n• two\na\u2028b"
	if got := d.Text(); got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if !d.AttrsAt(0).Bold {
		t.Fatalf("heading should be bold")
	}
	if !d.AttrsAt(d.Len() - 1).Code {
		t.Fatalf("code block should carry the code attribute")
	}
}

func TestWriteMarkdown(t *testing.T) {
	d := New("hi bold\nnext*")
	_ = d.UpdateAttrs(3, 7, func(a Attrs) Attrs { a.Bold = true; return a })

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, d); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if got, want := buf.String(), "hi **bold**\n\nnext\\*\n"; got != want {
		t.Fatalf("markdown=%q, want %q", got, want)
	}
}

func TestMarkdown_RoundTripKeepsTextAndStyles(t *testing.T) {
	d := New("a link and code")
	_ = d.UpdateAttrs(2, 6, func(a Attrs) Attrs { a.Link = "https://x.test"; return a })
	_ = d.UpdateAttrs(11, 15, func(a Attrs) Attrs { a.Code = true; return a })

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, d); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	back, err := FromMarkdown(buf.Bytes())
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if back.Text() != d.Text() {
		t.Fatalf("text=%q, want %q", back.Text(), d.Text())
	}
	for i := 0; i < d.Len(); i++ {
		if back.AttrsAt(i) != d.AttrsAt(i) {
			t.Fatalf("AttrsAt(%d)=%+v, want %+v", i, back.AttrsAt(i), d.AttrsAt(i))
		}
	}
}

func TestMarkdown_RoundTripTable(t *testing.T) {
	bold := func(a Attrs) Attrs { a.Bold = true; return a }
	italic := func(a Attrs) Attrs { a.Italic = true; return a }
	strike := func(a Attrs) Attrs { a.Strike = true; return a }
	link := func(a Attrs) Attrs { a.Link = "https://x.test/a b"; return a }

	type span struct {
		start, end int
		fn         func(Attrs) Attrs
	}
	cases := []struct {
		name  string
		text  string
		spans []span
		want  string
	}{
		{name: "intraword italic", text: "abc", spans: []span{{1, 2, italic}}, want: "a*b*c\n"},
		{name: "bold ends in space", text: "foo bar", spans: []span{{0, 4, bold}}, want: "**foo** bar\n"},
		{name: "empty paragraph", text: "a\n\nb"},
		{name: "leading empty paragraph", text: "\nb"},
		{name: "heading marker", text: "# not a heading", want: "\\# not a heading\n"},
		{name: "block markers", text: "> quote\n- dash\n+ plus\n1. one\n2) two\n==="},
		{name: "overlapping styles", text: "one two three", spans: []span{{0, 7, bold}, {4, 13, italic}}},
		{name: "strike", text: "gone now", spans: []span{{0, 4, strike}}},
		{name: "link with space", text: "see here", spans: []span{{4, 8, link}}},
		{name: "punctuation", text: "a&b <c> !x ~y |z \\w `q`"},
		{name: "edge whitespace", text: "  indented \n\ttab"},
		{name: "line separators", text: "a\u2028\u2028b\u2028"},
	}
	for _, c := range cases {
		d := New(c.text)
		for _, s := range c.spans {
			_ = d.UpdateAttrs(s.start, s.end, s.fn)
		}

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, d); err != nil {
			t.Fatalf("%s: WriteMarkdown: %v", c.name, err)
		}
		if c.want != "" && buf.String() != c.want {
			t.Fatalf("%s: markdown=%q, want %q", c.name, buf.String(), c.want)
		}
		back, err := FromMarkdown(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: FromMarkdown: %v", c.name, err)
		}
		if back.Text() != c.text {
			t.Fatalf("%s: text=%q, want %q (markdown %q)", c.name, back.Text(), c.text, buf.String())
		}
		// Styles on whitespace at a marker edge move outside the markers.
		for i, r := range []rune(c.text) {
			if r == ' ' {
				continue
			}
			if got, want := back.AttrsAt(i), d.AttrsAt(i); got != want {
				t.Fatalf("%s: AttrsAt(%d)=%+v, want %+v (markdown %q)", c.name, i, got, want, buf.String())
			}
		}
	}
}

func TestWriteMarkdown_EmptyDocumentWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, New("")); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("markdown=%q, want empty", buf.String())
	}
}
