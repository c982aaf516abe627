package editor

import (
	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/layout"
	"github.com/iw2rmb/caret/textpos"
)

// Config configures the editor Model.
type Config struct {
	// Document is edited in place. When nil, an unstyled document is built
	// from Text.
	Document *document.Document
	Text     string

	// Forwarded to buffer.Options.
	HistoryLimit                   int
	ReadOnly                       bool
	ReplaceParagraphsWithLineFeeds bool
	WordPolicy                     textpos.WordPolicy

	// Layout.
	Wrap     layout.WrapMode
	TabWidth int

	// Rendering options.
	ShowLineNums bool
	Style        Style

	// KeyMap defaults to DefaultKeyMap when no binding is set.
	KeyMap       KeyMap
	ScrollPolicy ScrollPolicy
	Clipboard    Clipboard

	// OnChange is called after every edit that changed text or styles.
	OnChange func(ChangeEvent)
}
