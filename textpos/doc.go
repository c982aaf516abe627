// Package textpos maps between opaque text positions and the rune offsets of
// a mutable document.
//
// Positions are rune offsets into the document's linear character sequence.
// Ranges are half-open in document order: [Start, End). An empty range is a
// caret. Every answer is computed from the current text; nothing is cached,
// so a position captured before a mutation must be carried across it with
// Edit.Shift.
//
// Out-of-range input never panics: queries answer InvalidPosition or
// InvalidRange, and mutation entry points built on this package report
// ErrInvalidPosition or ErrInvalidRange.
package textpos
