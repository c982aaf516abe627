package editor

import (
	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/textpos"
)

// ChangeEvent reports one effective edit to the host.
type ChangeEvent struct {
	Version   uint64
	Source    buffer.ChangeSource
	Cursor    textpos.Position
	Selection textpos.Range

	// Edits are in application order; offsets refer to the text as it was
	// when each edit applied.
	Edits     []buffer.AppliedEdit
	StyleOnly bool

	Text string
}

func buildChangeEvent(b *buffer.Buffer, ch buffer.Change) ChangeEvent {
	return ChangeEvent{
		Version:   ch.VersionAfter,
		Source:    ch.Source,
		Cursor:    b.Cursor(),
		Selection: ch.SelectionAfter,
		Edits:     ch.AppliedEdits,
		StyleOnly: ch.StyleOnly,
		Text:      b.Text(),
	}
}
