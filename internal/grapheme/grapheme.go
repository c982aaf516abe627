package grapheme

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Segment is a slice of text addressed by rune offsets relative to the
// string it was cut from: [Start, End).
type Segment struct {
	Start int
	End   int
	Text  string
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Clusters returns the grapheme clusters of text with their rune offsets.
func Clusters(text string) []Segment {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]Segment, 0, utf8.RuneCountInString(text))
	off := 0
	for g.Next() {
		n := len(g.Runes())
		out = append(out, Segment{Start: off, End: off + n, Text: g.Str()})
		off += n
	}
	return out
}

// Words splits text into Unicode (UAX #29) word segments, including the
// whitespace and punctuation segments between words. Offsets are runes.
func Words(text string) []Segment {
	var out []Segment
	off := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		out = append(out, Segment{Start: off, End: off + n, Text: word})
		off += n
	}
	return out
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}

// IsWord reports whether text carries at least one letter or number, which
// is what separates a word segment from spacing and punctuation.
func IsWord(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}
