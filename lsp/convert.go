package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/iw2rmb/caret/textpos"
)

// Client positions past the end of a line or document are clamped, as the
// protocol asks servers to do.
var clampPolicy = textpos.ConvertPolicy{ClampMode: textpos.OffsetClamp}

func toPosition(m textpos.Mapper, p protocol.Position) textpos.Position {
	return m.PositionFromUTF16(int(p.Line), int(p.Character), clampPolicy)
}

func toRange(m textpos.Mapper, r protocol.Range) textpos.Range {
	return textpos.NewRange(toPosition(m, r.Start), toPosition(m, r.End))
}

func fromPosition(m textpos.Mapper, p textpos.Position) protocol.Position {
	line, col, ok := m.UTF16LineColumn(p)
	if !ok {
		return protocol.Position{}
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func fromRange(m textpos.Mapper, r textpos.Range) protocol.Range {
	return protocol.Range{Start: fromPosition(m, r.Start), End: fromPosition(m, r.End)}
}
