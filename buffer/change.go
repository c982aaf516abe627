package buffer

import "github.com/iw2rmb/caret/textpos"

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceRemote
)

func (s ChangeSource) String() string {
	if s == ChangeSourceRemote {
		return "remote"
	}
	return "local"
}

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	Edit        textpos.Edit
	InsertText  string
	DeletedText string
}

// Change is a versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore textpos.Range
	SelectionAfter  textpos.Range
	AppliedEdits    []AppliedEdit
	// StyleOnly is set when only character attributes changed.
	StyleOnly bool
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	selectionBefore textpos.Range
	appliedEdits    []AppliedEdit
	styleOnly       bool
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		selectionBefore: b.SelectedRange(),
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  b.SelectedRange(),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
		StyleOnly:       cb.styleOnly,
	}
	b.hasLastChange = true
}
