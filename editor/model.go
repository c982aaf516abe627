package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

// Model is a Bubble Tea component that renders and interacts with a buffer.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	lay *layout.Layout

	focused bool

	viewport viewport.Model

	lastBufVersion  uint64
	lastTextVersion uint64
	lastCursor      textpos.Position
	lastChange      uint64

	// goalX is the cell column kept across consecutive vertical moves; -1
	// when unset.
	goalX int

	mouseAnchor   textpos.Position
	mouseDragging bool
}

func New(cfg Config) Model {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	doc := cfg.Document
	if doc == nil {
		doc = document.New(cfg.Text)
	}
	m := Model{
		cfg: cfg,
		buf: buffer.New(doc, buffer.Options{
			HistoryLimit:                   cfg.HistoryLimit,
			ReadOnly:                       cfg.ReadOnly,
			ReplaceParagraphsWithLineFeeds: cfg.ReplaceParagraphsWithLineFeeds,
			WordPolicy:                     cfg.WordPolicy,
		}),
		focused:  true,
		viewport: viewport.New(0, 0),
		goalX:    -1,
	}
	m.lastBufVersion = m.buf.Version()
	m.lastTextVersion = m.buf.TextVersion()
	m.lastCursor = m.buf.Cursor()
	m.relayout()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Layout is the display layout of the current text at the current width.
func (m Model) Layout() *layout.Layout { return m.lay }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.relayout()
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.mouseDragging = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.afterInput()
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		m.goalX = -1
		// Don't force-follow the cursor on wheel scrolling.
		if m.syncFromBuffer() && m.mouseDragging {
			m.followCursor()
		}
		m.emitChange()
		return m, cmd
	default:
		// Hosts may drive edits by mutating the buffer directly.
		m.afterInput()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) afterInput() {
	if m.syncFromBuffer() {
		m.followCursor()
	}
	m.emitChange()
}

func (m *Model) syncFromBuffer() (cursorChanged bool) {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur
	if tv := m.buf.TextVersion(); tv != m.lastTextVersion {
		m.lastTextVersion = tv
		m.relayout()
	}
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) emitChange() {
	if m.cfg.OnChange == nil || m.buf == nil {
		return
	}
	ch, ok := m.buf.LastChange()
	if !ok || ch.VersionAfter == m.lastChange {
		return
	}
	m.lastChange = ch.VersionAfter
	if len(ch.AppliedEdits) == 0 && !ch.StyleOnly {
		return
	}
	m.cfg.OnChange(buildChangeEvent(m.buf, ch))
}

func (m *Model) relayout() {
	m.lay = layout.Build(m.buf.Document(), layout.Options{
		Width:    m.contentWidth(),
		TabWidth: m.cfg.TabWidth,
		Wrap:     m.cfg.Wrap,
	})
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil || m.lay == nil {
		return
	}
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}
	_, row, ok := m.lay.CellForPosition(m.buf.Cursor(), m.buf.Affinity())
	if !ok {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
		return
	}
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

// contentWidth is the text area width in cells; zero means unbounded.
func (m Model) contentWidth() int {
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth()
	if w < 0 {
		return 0
	}
	return w
}
