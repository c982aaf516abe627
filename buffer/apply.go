package buffer

import (
	"fmt"
	"unicode/utf8"

	"github.com/iw2rmb/caret/textpos"
)

// TextEdit replaces the text in Range with Text.
type TextEdit struct {
	Range textpos.Range
	Text  string
}

// Apply applies a sequence of text edits in order. Each edit's range is
// interpreted against the buffer state left by the edits before it.
//
// The whole batch is validated first: if any range is invalid the buffer is
// not touched and the error wraps textpos.ErrInvalidRange. Inserted text
// takes the style of the character before it. The selection follows the
// edits; the batch is one undo step.
func (b *Buffer) Apply(edits ...TextEdit) error {
	return b.apply(ChangeSourceLocal, edits)
}

// ApplyRemote is Apply for edits that originate outside this session, such
// as a language client. The resulting Change carries ChangeSourceRemote.
func (b *Buffer) ApplyRemote(edits ...TextEdit) error {
	return b.apply(ChangeSourceRemote, edits)
}

func (b *Buffer) apply(source ChangeSource, edits []TextEdit) error {
	if err := b.checkWritable(); err != nil {
		return err
	}
	if err := validateEdits(b.doc.Len(), edits); err != nil {
		return err
	}
	if len(edits) == 0 {
		return nil
	}

	prev := b.snapshot()
	change := b.beginChange(source)
	for _, e := range edits {
		applied, ok := b.replace(e.Range, e.Text, b.attrsBefore(e.Range.Start))
		if ok {
			change.addAppliedEdit(applied)
		}
	}
	if len(change.appliedEdits) == 0 {
		return nil
	}
	b.finishEdit(prev, change)
	return nil
}

// validateEdits checks every edit against the length the document will have
// when that edit runs.
func validateEdits(n int, edits []TextEdit) error {
	for i, e := range edits {
		if !e.Range.Valid() || int(e.Range.End) > n {
			return fmt.Errorf("edit %d: range %v (len %d): %w", i, e.Range, n, textpos.ErrInvalidRange)
		}
		n += utf8.RuneCountInString(e.Text) - e.Range.Len()
	}
	return nil
}
