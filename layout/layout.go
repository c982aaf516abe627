package layout

import (
	"sort"

	"github.com/iw2rmb/caret/document"
	graphemeutil "github.com/iw2rmb/caret/internal/grapheme"
	"github.com/iw2rmb/caret/textpos"
)

type Options struct {
	// Width is the wrap width in cells. Zero or less disables wrapping.
	Width    int
	TabWidth int
	Wrap     WrapMode
}

// Cluster is one grapheme cluster placed on a display line. Start and End are
// document rune offsets; X is the first cell relative to the line.
type Cluster struct {
	Start int
	End   int
	Text  string
	X     int
	Width int
}

// Line is one display line.
//
// End excludes the hard break ('\n' or U+2028) that terminates the line, if
// any. For a soft-wrapped line End equals the next line's Start.
type Line struct {
	Index int
	Start textpos.Position
	End   textpos.Position
	Cells int

	// Paragraph is the zero-based index of the '\n'-delimited paragraph.
	Paragraph int
	// EndsParagraph is set on the last display line of a paragraph.
	EndsParagraph bool
	// Wrapped is set when the line ends at a soft wrap.
	Wrapped bool

	Clusters []Cluster
}

// Layout is an immutable snapshot of display lines. Rebuild it after every
// document change.
type Layout struct {
	opt   Options
	lines []Line
	n     int
}

// Build lays out src. An empty text has exactly one empty line.
func Build(src textpos.Text, opt Options) *Layout {
	l := &Layout{opt: opt, n: src.Len()}
	para := 0
	start := 0
	for i := 0; i <= l.n; i++ {
		if i < l.n {
			r := src.RuneAt(i)
			if r != '\n' && r != document.LineSeparator {
				continue
			}
		}
		endsPara := i == l.n || src.RuneAt(i) == '\n'
		l.addHardLine(src.Slice(start, i), start, para, endsPara)
		if endsPara {
			para++
		}
		start = i + 1
	}
	return l
}

func (l *Layout) addHardLine(text string, base, para int, endsPara bool) {
	segs := graphemeutil.Clusters(text)
	cls := make([]Cluster, 0, len(segs))
	x := 0
	for _, s := range segs {
		w := cellWidth(s.Text, x, l.opt.TabWidth)
		cls = append(cls, Cluster{
			Start: base + s.Start,
			End:   base + s.End,
			Text:  s.Text,
			X:     x,
			Width: w,
		})
		x += w
	}

	spans := wrapClusters(cls, l.opt.Wrap, l.opt.Width)
	for i, sp := range spans {
		line := Line{
			Index:     len(l.lines),
			Paragraph: para,
			Wrapped:   i < len(spans)-1,
		}
		line.EndsParagraph = endsPara && !line.Wrapped
		if sp.end > sp.start {
			part := make([]Cluster, sp.end-sp.start)
			copy(part, cls[sp.start:sp.end])
			x0 := part[0].X
			for j := range part {
				part[j].X -= x0
			}
			last := part[len(part)-1]
			line.Start = textpos.Position(part[0].Start)
			line.End = textpos.Position(last.End)
			line.Cells = last.X + last.Width
			line.Clusters = part
		} else {
			line.Start = textpos.Position(base)
			line.End = textpos.Position(base)
		}
		l.lines = append(l.lines, line)
	}
}

func (l *Layout) Options() Options { return l.opt }

func (l *Layout) LineCount() int { return len(l.lines) }

func (l *Layout) Line(i int) (Line, bool) {
	if i < 0 || i >= len(l.lines) {
		return Line{}, false
	}
	return l.lines[i], true
}

func (l *Layout) Lines() []Line { return l.lines }

// LineContaining returns the display line that shows p. At a soft-wrap
// boundary Upstream picks the earlier line and Downstream the later one.
func (l *Layout) LineContaining(p textpos.Position, aff textpos.Affinity) (Line, bool) {
	if !p.Valid() || int(p) > l.n {
		return Line{}, false
	}
	i := sort.Search(len(l.lines), func(i int) bool { return l.lines[i].Start > p }) - 1
	if i < 0 {
		return Line{}, false
	}
	if aff == textpos.Upstream && i > 0 && l.lines[i].Start == p && l.lines[i-1].Wrapped {
		i--
	}
	return l.lines[i], true
}

// CellForPosition returns the cell of the caret at p: x relative to the line
// start, y the display line index. A position inside a cluster reports the
// cluster's first cell.
func (l *Layout) CellForPosition(p textpos.Position, aff textpos.Affinity) (x, y int, ok bool) {
	line, ok := l.LineContaining(p, aff)
	if !ok {
		return 0, 0, false
	}
	return xInLine(line, p), line.Index, true
}

func xInLine(line Line, p textpos.Position) int {
	for _, c := range line.Clusters {
		if int(p) < c.End {
			return c.X
		}
	}
	return line.Cells
}

// PositionForCell returns the position under cell (x, y). Coordinates are
// clamped into the layout; a cell inside a wide cluster maps to the cluster
// start and a cell past the line end maps to the line end.
func (l *Layout) PositionForCell(x, y int) textpos.Position {
	p, _ := l.HitTest(x, y)
	return p
}

// HitTest is PositionForCell plus the affinity that keeps the caret on row
// y: Upstream when the hit is the end of a soft-wrapped line.
func (l *Layout) HitTest(x, y int) (textpos.Position, textpos.Affinity) {
	y = min(max(y, 0), len(l.lines)-1)
	line := l.lines[y]
	if x <= 0 {
		return line.Start, textpos.Downstream
	}
	for _, c := range line.Clusters {
		if x < c.X+c.Width {
			return textpos.Position(c.Start), textpos.Downstream
		}
	}
	if line.Wrapped {
		return line.End, textpos.Upstream
	}
	return line.End, textpos.Downstream
}

// PositionAbove returns the position on the previous display line closest to
// goalX. ok is false on the first line.
func (l *Layout) PositionAbove(p textpos.Position, aff textpos.Affinity, goalX int) (textpos.Position, textpos.Affinity, bool) {
	line, ok := l.LineContaining(p, aff)
	if !ok || line.Index == 0 {
		return p, aff, false
	}
	next, nextAff := l.HitTest(goalX, line.Index-1)
	return next, nextAff, true
}

// PositionBelow returns the position on the next display line closest to
// goalX. ok is false on the last line.
func (l *Layout) PositionBelow(p textpos.Position, aff textpos.Affinity, goalX int) (textpos.Position, textpos.Affinity, bool) {
	line, ok := l.LineContaining(p, aff)
	if !ok || line.Index >= len(l.lines)-1 {
		return p, aff, false
	}
	next, nextAff := l.HitTest(goalX, line.Index+1)
	return next, nextAff, true
}
