package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/caret/editor"
	"github.com/iw2rmb/caret/internal/grapheme"
	"github.com/iw2rmb/caret/internal/logging"
)

// ErrNotTerminal is returned by edit when stdout is not a terminal.
var ErrNotTerminal = errors.New("edit needs a terminal")

func newEditCommand(opts *rootOptions) *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a file in the terminal",
		Long: `Open FILE in a full-screen terminal editor. A missing file is created on
save. Markdown files (.md) keep bold, italic, code and links.

Keys: ctrl+s saves, ctrl+q quits (saving pending changes), alt+b/alt+i/alt+u
toggle bold, italic and underline, alt+w selects a word, ctrl+z/ctrl+y undo
and redo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}

			path := args[0]
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}

			ecfg := opts.cfg.EditorOptions()
			ecfg.Document = doc
			ecfg.ReadOnly = ecfg.ReadOnly || readOnly

			logger := logging.FromContext(cmd.Context())
			logger.Debug("opening editor",
				logging.FieldPath, path,
				logging.FieldLength, doc.Len(),
				logging.FieldWrap, ecfg.Wrap,
			)

			app := newEditApp(ecfg, path, opts.cfg.Editor.Width, logger)
			p := tea.NewProgram(app,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
				tea.WithContext(cmd.Context()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if a, ok := final.(editApp); ok && a.state.err != nil {
				return a.state.err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&readOnly, "read-only", false, "open without allowing edits")

	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// editState is shared by the copies of editApp that Bubble Tea passes
// around; the editor's OnChange callback writes to it.
type editState struct {
	dirty  bool
	status string
	err    error
}

type editApp struct {
	editor   editor.Model
	path     string
	maxWidth int
	readOnly bool
	state    *editState
	log      *log.Logger
}

func newEditApp(cfg editor.Config, path string, maxWidth int, logger *log.Logger) editApp {
	state := &editState{}
	onChange := cfg.OnChange
	cfg.OnChange = func(ev editor.ChangeEvent) {
		state.dirty = true
		state.status = ""
		if onChange != nil {
			onChange(ev)
		}
	}
	return editApp{
		editor:   editor.New(cfg),
		path:     path,
		maxWidth: maxWidth,
		readOnly: cfg.ReadOnly,
		state:    state,
		log:      logger,
	}
}

func (a editApp) Init() tea.Cmd { return nil }

func (a editApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width
		if a.maxWidth > 0 && w > a.maxWidth {
			w = a.maxWidth
		}
		a.editor = a.editor.SetSize(w, max(msg.Height-1, 0))
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			a.save()
			return a, nil
		case "ctrl+q":
			a.save()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// save writes the document when it has unsaved edits.
func (a editApp) save() {
	if a.readOnly || !a.state.dirty {
		return
	}
	if err := saveDocument(a.path, a.editor.Buffer().Document()); err != nil {
		a.log.Error("save failed", logging.FieldPath, a.path, logging.FieldError, err)
		a.state.status = "save failed"
		a.state.err = err
		return
	}
	a.log.Debug("saved", logging.FieldPath, a.path)
	a.state.dirty = false
	a.state.err = nil
	a.state.status = "saved"
}

var statusStyle = lipgloss.NewStyle().Faint(true)

func (a editApp) View() string {
	return a.editor.View() + "\n" + statusStyle.Render(a.statusLine())
}

func (a editApp) statusLine() string {
	buf := a.editor.Buffer()
	line := a.path
	switch {
	case a.readOnly:
		line += " [read-only]"
	case a.state.dirty:
		line += " [modified]"
	}

	m := buf.Mapper()
	if l, c, ok := m.LineColumn(buf.Cursor()); ok {
		line += fmt.Sprintf("  %d:%d", l+1, c+1)
	}
	if r := buf.SelectedRange(); !r.IsEmpty() {
		sel, _ := m.TextInRange(r)
		line += fmt.Sprintf("  (%d selected)", grapheme.Count(sel))
	}
	if a.state.status != "" {
		line += "  " + a.state.status
	}
	return line
}
