package buffer

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/caret/document"
	"github.com/iw2rmb/caret/textpos"
)

// ErrReadOnly is returned by every mutation of a read-only buffer.
var ErrReadOnly = errors.New("buffer is read-only")

type Options struct {
	HistoryLimit int // default: 1000; negative disables history
	ReadOnly     bool

	// ReplaceParagraphsWithLineFeeds makes InsertNewline insert a line
	// separator instead of starting a new paragraph.
	ReplaceParagraphsWithLineFeeds bool

	WordPolicy textpos.WordPolicy
}

// Buffer is one editing session. It is not safe for concurrent use.
type Buffer struct {
	doc         *document.Document
	version     uint64
	textVersion uint64

	// anchor is the fixed end of the selection, head the moving one.
	anchor   textpos.Position
	head     textpos.Position
	affinity textpos.Affinity
	marked   textpos.Range

	typing    document.Attrs
	hasTyping bool

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

// New starts a session over doc with the caret at the start. A nil doc is an
// empty document.
func New(doc *document.Document, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if doc == nil {
		doc = document.New("")
	}
	return &Buffer{
		doc:    doc,
		marked: textpos.InvalidRange,
		opt:    opt,
	}
}

// NewFromText is New over an unstyled document.
func NewFromText(text string, opt Options) *Buffer {
	return New(document.New(text), opt)
}

func (b *Buffer) Document() *document.Document { return b.doc }

func (b *Buffer) Options() Options { return b.opt }

// Mapper answers position queries against the current text. It must not be
// kept across mutations.
func (b *Buffer) Mapper() textpos.Mapper {
	return textpos.NewMapper(b.doc, b.opt.WordPolicy)
}

func (b *Buffer) Text() string { return b.doc.Text() }

func (b *Buffer) Len() int { return b.doc.Len() }

// Version changes on every observable state change, including selection.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion changes only when text or styles change.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// SelectedRange is the current selection in document order.
func (b *Buffer) SelectedRange() textpos.Range {
	return textpos.NewRange(b.anchor, b.head)
}

// SelectionRaw returns the selection as (anchor, head), preserving
// direction.
func (b *Buffer) SelectionRaw() (anchor, head textpos.Position) {
	return b.anchor, b.head
}

// Cursor is the moving end of the selection.
func (b *Buffer) Cursor() textpos.Position { return b.head }

func (b *Buffer) Affinity() textpos.Affinity { return b.affinity }

// SetAffinity picks the line a caret at a soft-wrap boundary belongs to.
func (b *Buffer) SetAffinity(a textpos.Affinity) {
	if a == b.affinity {
		return
	}
	b.affinity = a
	b.version++
}

// SetSelectedRange replaces the selection. An invalid range is rejected
// and the selection is left unchanged.
func (b *Buffer) SetSelectedRange(r textpos.Range) error {
	if !b.Mapper().ValidRange(r) {
		return fmt.Errorf("select %v (len %d): %w", r, b.doc.Len(), textpos.ErrInvalidRange)
	}
	b.setSelection(r.Start, r.End)
	return nil
}

// Select sets the selection keeping its direction: anchor stays fixed and
// head is the caret.
func (b *Buffer) Select(anchor, head textpos.Position) error {
	m := b.Mapper()
	if !m.Valid(anchor) || !m.Valid(head) {
		return fmt.Errorf("select %v..%v (len %d): %w", anchor, head, b.doc.Len(), textpos.ErrInvalidPosition)
	}
	b.setSelection(anchor, head)
	return nil
}

// SetCursor collapses the selection to p, clamped into the document.
func (b *Buffer) SetCursor(p textpos.Position) {
	p = textpos.Position(clampInt(int(p), 0, b.doc.Len()))
	b.setSelection(p, p)
}

func (b *Buffer) setSelection(anchor, head textpos.Position) {
	if anchor == b.anchor && head == b.head {
		return
	}
	b.anchor, b.head = anchor, head
	b.affinity = textpos.Downstream
	b.hasTyping = false
	b.version++
}

// SelectAll selects the whole document.
func (b *Buffer) SelectAll() {
	r := b.Mapper().RangeEnclosingAllText()
	b.setSelection(r.Start, r.End)
}

// SelectWord selects the word at the caret. It reports false and leaves the
// selection alone when no word touches the caret.
func (b *Buffer) SelectWord() bool {
	r := b.Mapper().RangeForWord(b.head)
	if !r.Valid() || r.IsEmpty() {
		return false
	}
	b.setSelection(r.Start, r.End)
	return true
}

// MarkedRange is the provisional input-method text, or InvalidRange.
func (b *Buffer) MarkedRange() textpos.Range { return b.marked }

// HasMarkedText reports whether a composition is in progress.
func (b *Buffer) HasMarkedText() bool { return b.marked.Valid() }

// PlainText returns the text in r, or false for an invalid range.
func (b *Buffer) PlainText(r textpos.Range) (string, bool) {
	return b.Mapper().TextInRange(r)
}

// LinkRangeAt returns the hyperlink around p.
func (b *Buffer) LinkRangeAt(p textpos.Position) (textpos.Range, string, bool) {
	if !b.Mapper().Valid(p) {
		return textpos.InvalidRange, "", false
	}
	s, e, url, ok := b.doc.LinkRangeAt(int(p))
	if !ok {
		return textpos.InvalidRange, "", false
	}
	return textpos.Range{Start: textpos.Position(s), End: textpos.Position(e)}, url, true
}

func (b *Buffer) checkWritable() error {
	if b.opt.ReadOnly {
		return ErrReadOnly
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
