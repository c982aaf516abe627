// Package editor provides a Bubble Tea text editor component backed by the
// buffer package.
//
// The package is responsible for input handling, viewport behavior, styled
// grapheme-aware rendering through the layout package, and change events.
// Text semantics (selection, undo, word boundaries) live in buffer and
// textpos; the editor only translates keys and mouse events into buffer
// calls.
package editor
