package document

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)


// FromMarkdown builds a document from CommonMark source. Blocks become
// paragraphs; emphasis, strong emphasis, code spans and links become
// character attributes; headings are bold; list items start with a bullet.
// Strikethrough (~~text~~) is read as well. Raw HTML is dropped.
func FromMarkdown(src []byte) (*Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	root := md.Parser().Parse(text.NewReader(src))
	b := &mdBuilder{src: src, doc: New("")}
	if err := ast.Walk(root, b.visit); err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}
	return b.doc, nil
}

type mdBuilder struct {
	src []byte
	doc *Document

	stack []Attrs
	// started is set once the first paragraph began; each later one is
	// preceded by a separator.
	started bool
	// itemOpen is set after a list item wrote its bullet, so the item's
	// first block continues on the bullet's line.
	itemOpen bool
}

func (b *mdBuilder) attrs() Attrs {
	if len(b.stack) == 0 {
		return Attrs{}
	}
	return b.stack[len(b.stack)-1]
}

func (b *mdBuilder) push(fn func(Attrs) Attrs) {
	b.stack = append(b.stack, fn(b.attrs()))
}

func (b *mdBuilder) pop() {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *mdBuilder) write(s string, a Attrs) {
	if s == "" {
		return
	}
	// Appending at the end cannot fail.
	_, _ = b.doc.Insert(b.doc.Len(), s, a)
}

func (b *mdBuilder) breakParagraph() {
	if b.started {
		b.write("\n", Attrs{})
	}
	b.started = true
}

func (b *mdBuilder) startBlock() {
	if b.itemOpen {
		b.itemOpen = false
		return
	}
	b.breakParagraph()
}

func (b *mdBuilder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			b.startBlock()
		}
	case *ast.Heading:
		if entering {
			b.startBlock()
			b.push(func(a Attrs) Attrs { a.Bold = true; return a })
		} else {
			b.pop()
		}
	case *ast.ListItem:
		if entering {
			b.breakParagraph()
			b.write(Bullet, Attrs{})
			b.itemOpen = true
		} else {
			b.itemOpen = false
		}
	case *ast.CodeBlock, *ast.FencedCodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		b.startBlock()
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
			if i > 0 {
				b.write(string(LineSeparator), Attrs{Code: true})
			}
			b.write(line, Attrs{Code: true})
		}
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock, *ast.RawHTML:
		return ast.WalkSkipChildren, nil
	case *ast.Emphasis:
		if entering {
			level := n.Level
			b.push(func(a Attrs) Attrs {
				if level >= 2 {
					a.Bold = true
				} else {
					a.Italic = true
				}
				return a
			})
		} else {
			b.pop()
		}
	case *extast.Strikethrough:
		if entering {
			b.push(func(a Attrs) Attrs { a.Strike = true; return a })
		} else {
			b.pop()
		}
	case *ast.CodeSpan:
		if entering {
			b.push(func(a Attrs) Attrs { a.Code = true; return a })
		} else {
			b.pop()
		}
	case *ast.Link:
		if entering {
			dest := string(n.Destination)
			b.push(func(a Attrs) Attrs { a.Link = dest; return a })
		} else {
			b.pop()
		}
	case *ast.AutoLink:
		if entering {
			a := b.attrs()
			a.Link = string(n.URL(b.src))
			b.write(string(n.Label(b.src)), a)
		}
		return ast.WalkSkipChildren, nil
	case *ast.Text:
		if !entering {
			return ast.WalkContinue, nil
		}
		v := n.Segment.Value(b.src)
		switch {
		case n.IsRaw():
		case string(v) == emptyParagraph:
			v = nil
		default:
			v = util.ResolveEntityNames(util.ResolveNumericReferences(v))
			v = util.UnescapePunctuations(v)
		}
		b.write(string(v), b.attrs())
		switch {
		case n.HardLineBreak():
			b.write(string(LineSeparator), b.attrs())
		case n.SoftLineBreak():
			b.write(" ", b.attrs())
		}
	case *ast.String:
		if entering {
			b.write(string(n.Value), b.attrs())
		}
	}
	return ast.WalkContinue, nil
}

// WriteMarkdown serializes d as Markdown that FromMarkdown reads back to the
// same text. Paragraphs are separated by a blank line and line separators
// become hard breaks. Whitespace at the edge of a styled run is written
// outside the emphasis markers. Highlight, underline and alignment have no
// Markdown form and are dropped.
func WriteMarkdown(w io.Writer, d *Document) error {
	if d.Len() == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)
	start := 0
	for start <= d.Len() {
		_, end := d.ParagraphRange(start)
		if start > 0 {
			if _, err := bw.WriteString("\n\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(markdownParagraph(d, start, end)); err != nil {
			return err
		}
		start = end + 1
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// emptyParagraph holds the place of an empty paragraph or line, which
// Markdown would otherwise drop. FromMarkdown reads it back as nothing.
const emptyParagraph = "&#8203;"

type mdMarker string

const (
	mdBold   mdMarker = "**"
	mdItalic mdMarker = "*"
	mdStrike mdMarker = "~~"
)

func (m mdMarker) in(a Attrs) bool {
	switch m {
	case mdBold:
		return a.Bold
	case mdItalic:
		return a.Italic
	default:
		return a.Strike
	}
}

// mdWriter renders one paragraph. Emphasis markers are kept on a stack so
// styles shared by neighboring runs stay open across them.
type mdWriter struct {
	sb        strings.Builder
	open      []mdMarker
	lineStart bool
}

func markdownParagraph(d *Document, start, end int) string {
	w := &mdWriter{lineStart: true}
	runs := markdownRuns(d.Runs(start, end))
	for i := 0; i < len(runs); {
		link := runs[i].Attrs.Link
		j := i
		for j < len(runs) && runs[j].Attrs.Link == link {
			j++
		}
		if link != "" {
			w.close(0)
			w.sb.WriteString("[")
			w.lineStart = false
		}
		for _, r := range runs[i:j] {
			w.run(d.Slice(r.Start, r.End), r.Attrs)
		}
		w.close(0)
		if link != "" {
			w.sb.WriteString("](<" + markdownURL(link) + ">)")
		}
		i = j
	}
	w.endLine()
	return w.sb.String()
}

// markdownRuns merges neighboring runs that only differ in attributes
// Markdown cannot express.
func markdownRuns(runs []Run) []Run {
	var out []Run
	for _, r := range runs {
		r.Attrs = Attrs{Bold: r.Attrs.Bold, Italic: r.Attrs.Italic, Strike: r.Attrs.Strike, Code: r.Attrs.Code, Link: r.Attrs.Link}
		if n := len(out); n > 0 && out[n-1].Attrs == r.Attrs && out[n-1].End == r.Start {
			out[n-1].End = r.End
			continue
		}
		out = append(out, r)
	}
	return out
}

func (w *mdWriter) run(s string, a Attrs) {
	for i, line := range strings.Split(s, string(LineSeparator)) {
		if i > 0 {
			w.endLine()
			w.sb.WriteString("  \n")
			w.lineStart = true
		}
		if a.Code {
			if line != "" {
				w.mark(a)
				w.code(line)
			}
			continue
		}
		w.text(line, a)
	}
}

func (w *mdWriter) text(s string, a Attrs) {
	body := strings.TrimLeft(s, " \t")
	w.spaces(s[:len(s)-len(body)])
	trimmed := strings.TrimRight(body, " \t")
	if trimmed == "" {
		return
	}
	w.mark(a)
	if w.lineStart {
		w.sb.WriteString(escapeLineStart(trimmed))
	} else {
		w.sb.WriteString(escapeMarkdown(trimmed))
	}
	w.lineStart = false
	w.spaces(body[len(trimmed):])
}

// spaces writes raw whitespace, or character references at the start of a
// line where Markdown would strip it.
func (w *mdWriter) spaces(s string) {
	if w.lineStart {
		w.sb.WriteString(spaceRefs(s))
		return
	}
	w.sb.WriteString(s)
}

func (w *mdWriter) code(s string) {
	longest, cur := 0, 0
	for _, r := range s {
		if r == '`' {
			cur++
			longest = max(longest, cur)
		} else {
			cur = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") ||
		(strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.Trim(s, " ") != "") {
		s = " " + s + " "
	}
	w.sb.WriteString(fence + s + fence)
	w.lineStart = false
}

// mark closes markers a no longer carries and opens the ones it adds.
func (w *mdWriter) mark(a Attrs) {
	for i, m := range w.open {
		if !m.in(a) {
			w.close(i)
			break
		}
	}
	for _, m := range []mdMarker{mdBold, mdItalic, mdStrike} {
		if m.in(a) && !slices.Contains(w.open, m) {
			w.open = append(w.open, m)
			w.sb.WriteString(string(m))
			w.lineStart = false
		}
	}
}

// close pops the marker stack down to depth n. Closing markers go before
// any trailing whitespace so they still close.
func (w *mdWriter) close(n int) {
	if len(w.open) <= n {
		return
	}
	s := w.sb.String()
	body := strings.TrimRight(s, " \t")
	w.sb.Reset()
	w.sb.WriteString(body)
	for i := len(w.open) - 1; i >= n; i-- {
		w.sb.WriteString(string(w.open[i]))
	}
	w.sb.WriteString(s[len(body):])
	w.open = w.open[:n]
}

// endLine keeps whitespace at the end of a line, which Markdown strips, and
// holds the place of an empty line.
func (w *mdWriter) endLine() {
	w.close(0)
	s := w.sb.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		w.sb.WriteString(emptyParagraph)
		return
	}
	body := strings.TrimRight(s, " \t")
	if len(body) == len(s) {
		return
	}
	w.sb.Reset()
	w.sb.WriteString(body)
	w.sb.WriteString(spaceRefs(s[len(body):]))
}

func spaceRefs(s string) string {
	return strings.NewReplacer(" ", "&#32;", "\t", "&#9;").Replace(s)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`~`, `\~`,
	`|`, `\|`,
	`!`, `\!`,
	`&`, `&amp;`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// escapeLineStart also escapes the list, heading underline and ordered list
// markers that only mean something at the start of a line.
func escapeLineStart(s string) string {
	switch s[0] {
	case '-', '+', '=':
		return `\` + escapeMarkdown(s)
	}
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + `\` + escapeMarkdown(s[digits:])
	}
	return escapeMarkdown(s)
}

func markdownURL(u string) string {
	return strings.NewReplacer("<", "%3C", ">", "%3E", "\n", "%0A").Replace(u)
}
