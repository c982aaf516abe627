// Package layout breaks a document into display lines measured in terminal
// cells and answers the geometric questions a caret needs: which line holds a
// position, where it is drawn, which position sits under a cell, and what lies
// directly above or below.
//
// Positions are textpos rune offsets. A position at a soft-wrap boundary is
// ambiguous; textpos.Affinity picks the line.
package layout
