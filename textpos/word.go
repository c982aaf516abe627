package textpos

import (
	"fmt"

	"github.com/iw2rmb/caret/internal/grapheme"
)

// WordPolicy selects how a paragraph is cut into words.
type WordPolicy uint8

const (
	// WordsUnicode uses Unicode word boundaries (UAX #29). Segments carrying
	// a letter or number are words; whitespace and punctuation are not.
	WordsUnicode WordPolicy = iota
	// WordsSimple treats every run of grapheme clusters that are neither
	// whitespace nor punctuation as one word.
	WordsSimple
)

func (p WordPolicy) String() string {
	switch p {
	case WordsUnicode:
		return "unicode"
	case WordsSimple:
		return "simple"
	default:
		return fmt.Sprintf("WordPolicy(%d)", uint8(p))
	}
}

// ParseWordPolicy maps a config name to a policy.
func ParseWordPolicy(s string) (WordPolicy, error) {
	switch s {
	case "", "unicode":
		return WordsUnicode, nil
	case "simple":
		return WordsSimple, nil
	default:
		return 0, fmt.Errorf("unknown word policy %q", s)
	}
}

// RangeForWord returns the word containing p.
//
// Words never cross a paragraph separator. When p sits on a boundary the
// word ending at p wins over the word starting at p (left preference, the
// usual caret affinity). When no word touches p the empty range at p is
// returned; an invalid p yields InvalidRange.
func (m Mapper) RangeForWord(p Position) Range {
	if !m.Valid(p) {
		return InvalidRange
	}
	ps, pe := m.paragraphBounds(int(p))
	off := int(p) - ps

	var left, right *grapheme.Segment
	words := m.wordSegments(m.slice(ps, pe))
	for i := range words {
		w := &words[i]
		switch {
		case w.Start < off && off < w.End:
			return Range{Start: Position(ps + w.Start), End: Position(ps + w.End)}
		case w.End == off:
			left = w
		case w.Start == off && right == nil:
			right = w
		}
	}
	if left != nil {
		return Range{Start: Position(ps + left.Start), End: Position(ps + left.End)}
	}
	if right != nil {
		return Range{Start: Position(ps + right.Start), End: Position(ps + right.End)}
	}
	return Caret(p)
}

// Words returns the word ranges that overlap r, in document order. For an
// empty r, a word touching the caret is included.
func (m Mapper) Words(r Range) []Range {
	if !m.ValidRange(r) {
		return nil
	}
	ps, _ := m.paragraphBounds(int(r.Start))
	_, pe := m.paragraphBounds(int(r.End))

	var out []Range
	for _, w := range m.wordSegments(m.slice(ps, pe)) {
		wr := Range{Start: Position(ps + w.Start), End: Position(ps + w.End)}
		if wr.Overlaps(r) || (r.IsEmpty() && wr.Touches(r.Start)) {
			out = append(out, wr)
		}
	}
	return out
}

// wordSegments returns only the word segments of text, with rune offsets
// relative to text.
func (m Mapper) wordSegments(text string) []grapheme.Segment {
	if text == "" {
		return nil
	}
	switch m.words {
	case WordsSimple:
		return simpleWords(text)
	default:
		segs := grapheme.Words(text)
		out := segs[:0]
		for _, s := range segs {
			if grapheme.IsWord(s.Text) {
				out = append(out, s)
			}
		}
		return out
	}
}

func simpleWords(text string) []grapheme.Segment {
	var out []grapheme.Segment
	inWord := false
	var cur grapheme.Segment
	for _, c := range grapheme.Clusters(text) {
		word := !grapheme.IsSpace(c.Text) && !grapheme.IsPunct(c.Text)
		switch {
		case word && !inWord:
			cur = grapheme.Segment{Start: c.Start, End: c.End, Text: c.Text}
			inWord = true
		case word:
			cur.End = c.End
			cur.Text += c.Text
		case inWord:
			out = append(out, cur)
			inWord = false
		}
	}
	if inWord {
		out = append(out, cur)
	}
	return out
}
