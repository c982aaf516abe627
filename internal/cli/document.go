package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iw2rmb/caret/document"
)

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// loadDocument reads path as markdown or plain text. A missing file is an
// empty document so that edit can create it.
func loadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return document.New(""), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if isMarkdown(path) {
		doc, err := document.FromMarkdown(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return doc, nil
	}
	return document.New(strings.ReplaceAll(string(data), "\r\n", "\n")), nil
}

// saveDocument writes doc back in the format loadDocument reads.
func saveDocument(path string, doc *document.Document) error {
	var data []byte
	if isMarkdown(path) {
		var buf bytes.Buffer
		if err := document.WriteMarkdown(&buf, doc); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		data = buf.Bytes()
	} else {
		data = []byte(doc.Text())
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
