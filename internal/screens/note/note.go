// Package note is the full-screen editor for block and task notes.
package note

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// SaveFunc persists the edited note.
type SaveFunc func(ctx context.Context, content string) error

// EditorScreen edits one note. Saving replaces the stored note entirely.
type EditorScreen struct {
	ctx     context.Context
	title   string
	heading string
	area    textarea.Model
	save    SaveFunc
	err     error
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.InputCapturer = (*EditorScreen)(nil)

// New creates an editor prefilled with content.
func New(ctx context.Context, title, heading, content string, save SaveFunc) *EditorScreen {
	ta := textarea.New()
	ta.Placeholder = "Write your notes here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(content)
	ta.Focus()

	return &EditorScreen{
		ctx:     ctx,
		title:   title,
		heading: heading,
		area:    ta,
		save:    save,
	}
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.area.Focus()
}

func (e *EditorScreen) Title() string {
	return e.title
}

func (e *EditorScreen) CapturingInput() bool {
	return true
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Discard"},
	}
}

// Value returns the text being edited.
func (e *EditorScreen) Value() string {
	return e.area.Value()
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+s":
			if err := e.save(e.ctx, e.area.Value()); err != nil {
				e.err = err
				return e, nil
			}
			return e, router.Pop()
		case "esc":
			return e, router.Pop()
		}
	}

	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return e, cmd
}

func (e *EditorScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(e.heading))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(theme.Warning.Render("Could not save: " + e.err.Error()))
		b.WriteString("\n\n")
	}

	used := strings.Count(b.String(), "\n")
	e.area.SetWidth(max(width-6, 20))
	e.area.SetHeight(max(height-used-3, 3))
	b.WriteString(theme.Card.Render(e.area.View()))
	return b.String()
}
