package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/caret/document"
)

// Style controls the editor's rendering.
//
// Character attributes from the document are layered over Text; Selection,
// Marked and Cursor are layered over that.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Marked styles provisional input-method text.
	Marked lipgloss.Style
	Code   lipgloss.Style
	Link   lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Marked:        lipgloss.NewStyle().Underline(true),
		Code:          lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
	}
}

// attrStyle derives the style of one character from its attributes.
func (st Style) attrStyle(a document.Attrs) lipgloss.Style {
	s := st.Text
	if a.Bold {
		s = s.Bold(true)
	}
	if a.Italic {
		s = s.Italic(true)
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Strike {
		s = s.Strikethrough(true)
	}
	if a.Highlight != "" {
		s = s.Background(lipgloss.Color(a.Highlight))
	}
	if a.Code {
		s = s.Inherit(st.Code)
	}
	if a.Link != "" {
		s = s.Inherit(st.Link)
	}
	return s
}
