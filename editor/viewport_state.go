package editor

import (
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

// ViewportState is a stable host-facing snapshot of editor camera state.
type ViewportState struct {
	// TopRow is the display line rendered at viewport screen row 0.
	TopRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// Wrap is the active wrapping mode used to interpret coordinates.
	Wrap layout.WrapMode
}

// ViewportState returns the current host-facing viewport state.
func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopRow:      max(m.viewport.YOffset, 0),
		VisibleRows: m.visibleRowCount(),
		Wrap:        m.cfg.Wrap,
	}
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
// The affinity keeps a hit at the end of a soft-wrapped row on that row.
func (m Model) ScreenToDoc(x, y int) (textpos.Position, textpos.Affinity) {
	y += m.viewport.YOffset
	y = min(max(y, 0), m.lay.LineCount()-1)
	x -= m.gutterWidth()
	if line, ok := m.lay.Line(y); ok {
		x -= m.lineIndent(line)
	}
	return m.lay.HitTest(x, y)
}

// DocToScreen maps a document position to viewport-local screen coordinates.
//
// ok is false when the position is outside the visible viewport content.
func (m Model) DocToScreen(p textpos.Position, aff textpos.Affinity) (x, y int, ok bool) {
	x, row, ok := m.lay.CellForPosition(p, aff)
	if !ok {
		return 0, 0, false
	}
	line, _ := m.lay.Line(row)
	y = row - m.viewport.YOffset
	if y < 0 || y >= m.visibleRowCount() {
		return 0, 0, false
	}
	return x + m.gutterWidth() + m.lineIndent(line), y, true
}
