package document

import "fmt"

// Alignment is a paragraph-level attribute. It is stored on every character
// of the paragraph, including its separator.
type Alignment uint8

const (
	AlignNatural Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustified
)

func (a Alignment) String() string {
	switch a {
	case AlignNatural:
		return "natural"
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustified:
		return "justified"
	default:
		return fmt.Sprintf("Alignment(%d)", uint8(a))
	}
}

// Attrs is the style of one character.
type Attrs struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Code      bool

	// Highlight is a background color name; empty means none.
	Highlight string
	// Link is a hyperlink target; empty means none.
	Link string

	Align Alignment
}

func (a Attrs) IsZero() bool { return a == Attrs{} }

// Inline returns a with paragraph-level attributes cleared.
func (a Attrs) Inline() Attrs {
	a.Align = AlignNatural
	return a
}

// Run is a maximal span of characters sharing one Attrs value.
type Run struct {
	Start int
	End   int
	Attrs Attrs
}
