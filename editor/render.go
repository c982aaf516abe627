package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

func (m *Model) renderContent() string {
	if m.buf == nil || m.lay == nil {
		return ""
	}

	doc := m.buf.Document()
	st := m.cfg.Style
	cursor := m.buf.Cursor()
	sel := m.buf.SelectedRange()
	marked := m.buf.MarkedRange()

	cursorRow := -1
	cursorPara := -1
	if m.focused {
		if line, ok := m.lay.LineContaining(cursor, m.buf.Affinity()); ok {
			cursorRow = line.Index
			cursorPara = line.Paragraph
		}
	}

	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = gutterDigits(paragraphCount(doc))
	}

	lines := m.lay.Lines()
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			first := i == 0 || lines[i-1].EndsParagraph
			numStyle := st.LineNum
			if first && line.Paragraph == cursorPara {
				numStyle = st.LineNumActive
			}
			num := fmt.Sprintf("%*s", digitCount, "")
			if first {
				num = fmt.Sprintf("%*d", digitCount, line.Paragraph+1)
			}
			sb.WriteString(numStyle.Render(num))
			sb.WriteString(st.Gutter.Render(" "))
		}

		if indent := m.lineIndent(line); indent > 0 {
			sb.WriteString(st.Text.Render(strings.Repeat(" ", indent)))
		}

		cursorDrawn := false
		for _, c := range line.Clusters {
			p := textpos.Position(c.Start)
			s := st.attrStyle(doc.AttrsAt(c.Start))
			if !sel.IsEmpty() && sel.Contains(p) {
				s = st.Selection.Inherit(s)
			}
			if marked.Contains(p) {
				s = st.Marked.Inherit(s)
			}
			if i == cursorRow && cursor >= p && int(cursor) < c.End {
				s = st.Cursor.Inherit(s)
				cursorDrawn = true
			}
			sb.WriteString(s.Render(clusterText(c)))
		}
		if i == cursorRow && !cursorDrawn {
			sb.WriteString(st.Cursor.Inherit(st.Text).Render(" "))
		}

		out = append(out, sb.String())
	}

	return strings.Join(out, "\n")
}

// clusterText is what a cluster draws as; tabs expand to their cells.
func clusterText(c layout.Cluster) string {
	if c.Text == "\t" {
		return strings.Repeat(" ", c.Width)
	}
	return c.Text
}

// lineIndent is the number of blank cells drawn before a line to honour the
// paragraph alignment.
func (m Model) lineIndent(line layout.Line) int {
	w := m.contentWidth()
	if w <= 0 || line.Cells >= w {
		return 0
	}
	switch m.buf.Document().AttrsAt(int(line.Start)).Align {
	case document.AlignCenter:
		return (w - line.Cells) / 2
	case document.AlignRight:
		return w - line.Cells
	default:
		return 0
	}
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return gutterDigits(paragraphCount(m.buf.Document())) + 1
}

func paragraphCount(d *document.Document) int {
	n := 1
	for i := 0; i < d.Len(); i++ {
		if d.RuneAt(i) == '\n' {
			n++
		}
	}
	return n
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	n := 0
	for lineCount > 0 {
		n++
		lineCount /= 10
	}
	return n
}
