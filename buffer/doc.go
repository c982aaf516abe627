// Package buffer implements the editing session over a styled document:
// selection, marked text, typing attributes, undo history and the mutation
// entry points that keep every tracked position consistent with the text.
//
// Positions are textpos rune offsets. Ranges are half-open: [Start, End).
// An empty selection is a caret.
package buffer
