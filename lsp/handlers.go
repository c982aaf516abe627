package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/internal/logging"
	"github.com/iw2rmb/caret/textpos"
)

func (s *Server) initialize(
	ctx *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.SelectionRangeProvider = true
	capabilities.DocumentHighlightProvider = true

	version := s.opt.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(
	ctx *glsp.Context,
	params *protocol.InitializedParams,
) error {
	s.log.Debug("client initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.log.Debug("server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)

	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.docs)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	s.log.Debug("trace set", "value", params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(
	ctx *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	item := params.TextDocument

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[item.URI] = &openDocument{
		buf:     buffer.NewFromText(item.Text, s.opt.Buffer),
		version: item.Version,
	}
	s.log.Debug("document opened",
		logging.FieldURI, item.URI,
		logging.FieldDocVersion, item.Version,
		logging.FieldLength, len(item.Text),
	)
	return nil
}

// textDocumentDidChange applies the changes in order; each one is expressed
// against the text left by the previous.
func (s *Server) textDocumentDidChange(
	ctx *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	return s.withDocument(uri, func(doc *openDocument) error {
		for i, raw := range params.ContentChanges {
			edit, err := changeToEdit(doc.buf.Mapper(), raw)
			if err != nil {
				return fmt.Errorf("change %d of %s: %w", i, uri, err)
			}
			if err := doc.buf.ApplyRemote(edit); err != nil {
				return fmt.Errorf("change %d of %s: %w", i, uri, err)
			}
		}
		doc.version = params.TextDocument.Version
		s.log.Debug("document changed",
			logging.FieldURI, uri,
			logging.FieldDocVersion, doc.version,
			logging.FieldEdits, len(params.ContentChanges),
		)
		return nil
	})
}

func changeToEdit(m textpos.Mapper, raw any) (buffer.TextEdit, error) {
	switch change := raw.(type) {
	case protocol.TextDocumentContentChangeEvent:
		if change.Range == nil {
			return buffer.TextEdit{Range: m.RangeEnclosingAllText(), Text: change.Text}, nil
		}
		return buffer.TextEdit{Range: toRange(m, *change.Range), Text: change.Text}, nil
	case protocol.TextDocumentContentChangeEventWhole:
		return buffer.TextEdit{Range: m.RangeEnclosingAllText(), Text: change.Text}, nil
	default:
		return buffer.TextEdit{}, fmt.Errorf("unexpected change event type %T", raw)
	}
}

func (s *Server) textDocumentDidClose(
	ctx *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[uri]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	delete(s.docs, uri)
	s.log.Debug("document closed", logging.FieldURI, uri)
	return nil
}

// textDocumentSelectionRange answers word, then paragraph, then the whole
// document for each position. Levels equal to their child are skipped.
func (s *Server) textDocumentSelectionRange(
	ctx *glsp.Context,
	params *protocol.SelectionRangeParams,
) ([]protocol.SelectionRange, error) {
	var out []protocol.SelectionRange
	err := s.withDocument(params.TextDocument.URI, func(doc *openDocument) error {
		m := doc.buf.Mapper()
		out = make([]protocol.SelectionRange, 0, len(params.Positions))
		for _, pp := range params.Positions {
			out = append(out, selectionRangeAt(m, toPosition(m, pp)))
		}
		return nil
	})
	return out, err
}

func selectionRangeAt(m textpos.Mapper, p textpos.Position) protocol.SelectionRange {
	levels := []textpos.Range{
		m.RangeForWord(p),
		m.ParagraphRange(p),
		m.RangeEnclosingAllText(),
	}

	var chain []textpos.Range
	for _, r := range levels {
		if !r.Valid() {
			continue
		}
		if n := len(chain); n > 0 && chain[n-1] == r {
			continue
		}
		chain = append(chain, r)
	}

	var parent *protocol.SelectionRange
	for i := len(chain) - 1; i > 0; i-- {
		parent = &protocol.SelectionRange{Range: fromRange(m, chain[i]), Parent: parent}
	}
	return protocol.SelectionRange{Range: fromRange(m, chain[0]), Parent: parent}
}

// textDocumentDocumentHighlight marks every occurrence of the word under the
// position. No word there means no highlights.
func (s *Server) textDocumentDocumentHighlight(
	ctx *glsp.Context,
	params *protocol.DocumentHighlightParams,
) ([]protocol.DocumentHighlight, error) {
	var out []protocol.DocumentHighlight
	err := s.withDocument(params.TextDocument.URI, func(doc *openDocument) error {
		m := doc.buf.Mapper()
		word := m.RangeForWord(toPosition(m, params.Position))
		if !word.Valid() || word.IsEmpty() {
			return nil
		}
		target, _ := m.TextInRange(word)

		kind := protocol.DocumentHighlightKindText
		for _, r := range m.Words(m.RangeEnclosingAllText()) {
			if text, _ := m.TextInRange(r); text == target {
				out = append(out, protocol.DocumentHighlight{Range: fromRange(m, r), Kind: &kind})
			}
		}
		return nil
	})
	return out, err
}
