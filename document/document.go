// Package document holds attributed text: a rune sequence with one style
// record per character. Paragraphs are separated by '\n' and LineSeparator
// breaks a line inside a paragraph. Anchors track positions across edits,
// and FromMarkdown and WriteMarkdown convert to and from Markdown.
package document

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/caret/textpos"
)

// Document is a mutable sequence of styled characters. Offsets are runes.
// '\n' separates paragraphs; U+2028 breaks a line inside a paragraph.
//
// A Document is owned by one editing session and is not safe for concurrent
// use.
type Document struct {
	text   []rune
	styles []Attrs

	anchors []*Anchor
}

// LineSeparator breaks a line without starting a new paragraph.
const LineSeparator = '\u2028'

// Bullet starts a list paragraph.
const Bullet = "• "

func New(text string) *Document {
	return NewStyled(text, Attrs{})
}

func NewStyled(text string, a Attrs) *Document {
	rs := []rune(text)
	styles := make([]Attrs, len(rs))
	for i := range styles {
		styles[i] = a
	}
	return &Document{text: rs, styles: styles}
}

// Clone copies text and styles. Anchors stay with the original.
func (d *Document) Clone() *Document {
	return &Document{
		text:   append([]rune(nil), d.text...),
		styles: append([]Attrs(nil), d.styles...),
	}
}

func (d *Document) Len() int { return len(d.text) }

func (d *Document) Text() string { return string(d.text) }

func (d *Document) RuneAt(i int) rune { return d.text[i] }

func (d *Document) Slice(start, end int) string {
	return string(d.text[start:end])
}

// Insert adds text styled with a at offset at.
func (d *Document) Insert(at int, text string, a Attrs) (textpos.Edit, error) {
	if at < 0 || at > len(d.text) {
		return textpos.Edit{}, fmt.Errorf("insert at %d (len %d): %w", at, len(d.text), textpos.ErrInvalidPosition)
	}
	return d.Replace(at, at, text, a)
}

// Delete removes [start, end).
func (d *Document) Delete(start, end int) (textpos.Edit, error) {
	return d.Replace(start, end, "", Attrs{})
}

// Replace swaps [start, end) for text styled with a. The document is left
// untouched when the range is invalid.
func (d *Document) Replace(start, end int, text string, a Attrs) (textpos.Edit, error) {
	if start < 0 || end < start || end > len(d.text) {
		return textpos.Edit{}, fmt.Errorf("replace [%d,%d) (len %d): %w", start, end, len(d.text), textpos.ErrInvalidRange)
	}
	ins := []rune(text)
	edit := textpos.Edit{
		Start:  textpos.Position(start),
		OldEnd: textpos.Position(end),
		NewLen: len(ins),
	}
	if edit.IsNoop() {
		return edit, nil
	}

	nextText := make([]rune, 0, len(d.text)+edit.Delta())
	nextText = append(nextText, d.text[:start]...)
	nextText = append(nextText, ins...)
	nextText = append(nextText, d.text[end:]...)

	nextStyles := make([]Attrs, 0, len(nextText))
	nextStyles = append(nextStyles, d.styles[:start]...)
	for range ins {
		nextStyles = append(nextStyles, a)
	}
	nextStyles = append(nextStyles, d.styles[end:]...)

	d.text = nextText
	d.styles = nextStyles
	d.shiftAnchors(edit)
	return edit, nil
}

// Restore replaces the whole content with src's text and styles. Anchors
// outside the region that actually differs keep their place.
func (d *Document) Restore(src *Document) textpos.Edit {
	edit := textpos.DiffEdit(d.text, src.text)
	d.text = append([]rune(nil), src.text...)
	d.styles = append([]Attrs(nil), src.styles...)
	d.shiftAnchors(edit)
	return edit
}

// AttrsAt is the style of the character at offset. At the end of the
// document it reports the last character's style; an empty document has
// none.
func (d *Document) AttrsAt(offset int) Attrs {
	switch {
	case len(d.styles) == 0 || offset < 0:
		return Attrs{}
	case offset >= len(d.styles):
		return d.styles[len(d.styles)-1]
	default:
		return d.styles[offset]
	}
}

// UpdateAttrs rewrites the style of every character in [start, end).
func (d *Document) UpdateAttrs(start, end int, fn func(Attrs) Attrs) error {
	if start < 0 || end < start || end > len(d.text) {
		return fmt.Errorf("update attrs [%d,%d) (len %d): %w", start, end, len(d.text), textpos.ErrInvalidRange)
	}
	for i := start; i < end; i++ {
		d.styles[i] = fn(d.styles[i])
	}
	return nil
}

// AllHave reports whether every character in [start, end) satisfies pred.
// An empty or invalid span reports false.
func (d *Document) AllHave(start, end int, pred func(Attrs) bool) bool {
	if start < 0 || end <= start || end > len(d.text) {
		return false
	}
	for i := start; i < end; i++ {
		if !pred(d.styles[i]) {
			return false
		}
	}
	return true
}

// Runs returns the style runs covering [start, end), clipped to it.
func (d *Document) Runs(start, end int) []Run {
	start = max(start, 0)
	end = min(end, len(d.text))
	if end <= start {
		return nil
	}
	var out []Run
	cur := Run{Start: start, End: start + 1, Attrs: d.styles[start]}
	for i := start + 1; i < end; i++ {
		if d.styles[i] == cur.Attrs {
			cur.End = i + 1
			continue
		}
		out = append(out, cur)
		cur = Run{Start: i, End: i + 1, Attrs: d.styles[i]}
	}
	return append(out, cur)
}

// ParagraphRange returns the paragraph containing offset; end excludes the
// separator.
func (d *Document) ParagraphRange(offset int) (start, end int) {
	offset = min(max(offset, 0), len(d.text))
	start = offset
	for start > 0 && d.text[start-1] != '\n' {
		start--
	}
	end = offset
	for end < len(d.text) && d.text[end] != '\n' {
		end++
	}
	return start, end
}

// LinkRangeAt returns the extent of the hyperlink under offset, looking at
// the character after offset first and then the one before it.
func (d *Document) LinkRangeAt(offset int) (start, end int, url string, ok bool) {
	var probe int
	switch {
	case offset >= 0 && offset < len(d.styles) && d.styles[offset].Link != "":
		probe = offset
	case offset > 0 && offset <= len(d.styles) && d.styles[offset-1].Link != "":
		probe = offset - 1
	default:
		return 0, 0, "", false
	}
	url = d.styles[probe].Link
	start, end = probe, probe+1
	for start > 0 && d.styles[start-1].Link == url {
		start--
	}
	for end < len(d.styles) && d.styles[end].Link == url {
		end++
	}
	return start, end, url, true
}

func (d *Document) String() string {
	var sb strings.Builder
	for _, r := range d.Runs(0, d.Len()) {
		if r.Attrs.IsZero() {
			sb.WriteString(d.Slice(r.Start, r.End))
			continue
		}
		fmt.Fprintf(&sb, "{%+v}%s", r.Attrs, d.Slice(r.Start, r.End))
	}
	return sb.String()
}
