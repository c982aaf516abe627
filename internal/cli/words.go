package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/caret/internal/logging"
	"github.com/iw2rmb/caret/textpos"
)

// ErrPositionOutOfRange is returned when --at names an offset past the text.
var ErrPositionOutOfRange = errors.New("position out of range")

func newWordsCommand(opts *rootOptions) *cobra.Command {
	var (
		at    int
		utf16 bool
	)

	cmd := &cobra.Command{
		Use:   "words FILE",
		Short: "Print the word ranges of a file",
		Long: `Print every word of FILE as a half-open range of rune offsets,
one per line: start, end and the word text, tab separated.

With --at N only the word containing offset N is printed. On a boundary the
word ending at N wins over the word starting there; when no word touches N
an empty range is printed. Markdown files (.md) are read as styled text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			m := textpos.NewMapper(doc, opts.cfg.BufferOptions().WordPolicy)

			var ranges []textpos.Range
			if cmd.Flags().Changed("at") {
				p := textpos.Position(at)
				if !m.Valid(p) {
					return fmt.Errorf("%w: %d not in [0,%d]", ErrPositionOutOfRange, at, m.Len())
				}
				ranges = []textpos.Range{m.RangeForWord(p)}
				logging.FromContext(cmd.Context()).Debug("word at", logging.FieldPosition, at)
			} else {
				ranges = m.Words(m.RangeEnclosingAllText())
			}

			logging.FromContext(cmd.Context()).Debug("words",
				logging.FieldPath, args[0],
				logging.FieldLength, m.Len(),
				logging.FieldWords, len(ranges),
			)
			return writeWords(cmd.OutOrStdout(), m, ranges, utf16)
		},
	}

	cmd.Flags().IntVar(&at, "at", 0, "print only the word containing this rune offset")
	cmd.Flags().BoolVar(&utf16, "utf16", false, "print line:column positions in UTF-16 code units")

	return cmd
}

func writeWords(w io.Writer, m textpos.Mapper, ranges []textpos.Range, utf16 bool) error {
	for _, r := range ranges {
		text, _ := m.TextInRange(r)
		var err error
		if utf16 {
			sl, sc, _ := m.UTF16LineColumn(r.Start)
			el, ec, _ := m.UTF16LineColumn(r.End)
			_, err = fmt.Fprintf(w, "%d:%d\t%d:%d\t%s\n", sl, sc, el, ec, text)
		} else {
			_, err = fmt.Fprintf(w, "%d\t%d\t%s\n", r.Start, r.End, text)
		}
		if err != nil {
			return fmt.Errorf("write words: %w", err)
		}
	}
	return nil
}
