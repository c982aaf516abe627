package layout

import (
	"fmt"

	graphemeutil "github.com/iw2rmb/caret/internal/grapheme"
)

// WrapMode controls how hard lines longer than the width are displayed.
//
// WrapNone keeps one display line per hard line. WrapWord and WrapGrapheme
// soft-wrap; WrapWord prefers to break after whitespace.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGrapheme
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapWord:
		return "word"
	case WrapGrapheme:
		return "grapheme"
	default:
		return "unknown"
	}
}

// ParseWrapMode accepts the names produced by String.
func ParseWrapMode(s string) (WrapMode, error) {
	switch s {
	case "none", "":
		return WrapNone, nil
	case "word":
		return WrapWord, nil
	case "grapheme":
		return WrapGrapheme, nil
	default:
		return WrapNone, fmt.Errorf("unknown wrap mode %q", s)
	}
}

// span is a half-open run of cluster indexes forming one display line.
type span struct {
	start, end int
}

// wrapClusters splits the clusters of one hard line into display lines no
// wider than width. A single cluster wider than width gets a line of its own.
func wrapClusters(cls []Cluster, mode WrapMode, width int) []span {
	if width <= 0 || mode == WrapNone || len(cls) == 0 {
		return []span{{start: 0, end: len(cls)}}
	}

	out := make([]span, 0, 1+len(cls)/width)
	for start := 0; start < len(cls); {
		used := 0
		overflow := start
		for overflow < len(cls) {
			w := max(cls[overflow].Width, 1)
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if mode == WrapWord && overflow < len(cls) {
			if br, ok := findWordBreak(cls, start, overflow); ok {
				end = br
			} else {
				end = avoidLeadingPunct(cls, start, overflow)
			}
		}
		if end <= start {
			end = min(start+1, len(cls))
		}

		out = append(out, span{start: start, end: end})
		start = end
	}
	return out
}

// findWordBreak returns the index just past the last whitespace run in
// [start, overflow), so trailing spaces stay on the upper line.
func findWordBreak(cls []Cluster, start, overflow int) (int, bool) {
	lastBreak := -1
	for i := start; i < overflow; {
		if !graphemeutil.IsSpace(cls[i].Text) {
			i++
			continue
		}
		j := i + 1
		for j < overflow && graphemeutil.IsSpace(cls[j].Text) {
			j++
		}
		lastBreak = j
		i = j
	}
	if lastBreak <= start {
		return 0, false
	}
	return lastBreak, true
}

// avoidLeadingPunct moves a forced break back one cluster when the next line
// would otherwise start with punctuation.
func avoidLeadingPunct(cls []Cluster, start, overflow int) int {
	if overflow-1 > start && graphemeutil.IsPunct(cls[overflow].Text) {
		return overflow - 1
	}
	return overflow
}
