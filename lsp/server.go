// Package lsp serves caret's position queries over the Language Server
// Protocol. Each open document is a buffer.Buffer; client positions are
// UTF-16 line/column pairs translated through textpos.
package lsp

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/iw2rmb/caret/buffer"
	"github.com/iw2rmb/caret/internal/logging"
)

const serverName = "caret"

// ErrUnknownDocument is returned for requests naming a URI that is not open.
var ErrUnknownDocument = errors.New("unknown document")

type Options struct {
	Version string
	Buffer  buffer.Options
	Logger  *log.Logger
	// Debug turns on glsp's own protocol logging.
	Debug bool
}

type openDocument struct {
	buf     *buffer.Buffer
	version protocol.Integer
}

// Server holds the open documents. Handlers may run concurrently; every
// buffer is only touched under mu.
type Server struct {
	opt     Options
	log     *log.Logger
	handler protocol.Handler

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*openDocument
}

func NewServer(opt Options) *Server {
	if opt.Logger == nil {
		opt.Logger = logging.Default()
	}
	// The client owns the text and its undo; every change it sends must
	// apply and none is kept for undo.
	opt.Buffer.ReadOnly = false
	opt.Buffer.HistoryLimit = -1
	s := &Server{
		opt:  opt,
		log:  opt.Logger,
		docs: make(map[protocol.DocumentUri]*openDocument),
	}
	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentSelectionRange:    s.textDocumentSelectionRange,
		TextDocumentDocumentHighlight: s.textDocumentDocumentHighlight,
	}
	return s
}

// Handler exposes the protocol handler for other transports.
func (s *Server) Handler() *protocol.Handler { return &s.handler }

// RunStdio serves on stdin/stdout until the client exits. Logs go to stderr.
func (s *Server) RunStdio() error {
	verbosity := 0
	if s.opt.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil) // logger used by glsp
	return server.NewServer(&s.handler, serverName, s.opt.Debug).RunStdio()
}

// Open reports the number of open documents.
func (s *Server) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

// withDocument runs fn on the buffer for uri under the server lock.
func (s *Server) withDocument(uri protocol.DocumentUri, fn func(*openDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, uri)
	}
	return fn(doc)
}
