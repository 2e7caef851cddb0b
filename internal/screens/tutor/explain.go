package tutor

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// ExplainScreen asks the tutor to explain a concept. Opened without a
// concept it starts with a prompt for one.
type ExplainScreen struct {
	env        screen.Env
	req        request
	input      components.TextInput
	editing    bool
	concept    string
	background string
	answer     string
	scroll     scroller
}

var _ screen.Screen = (*ExplainScreen)(nil)
var _ screen.KeyHintProvider = (*ExplainScreen)(nil)
var _ screen.InputCapturer = (*ExplainScreen)(nil)

// NewExplain creates an ExplainScreen. background is passed to the model as
// extra context, typically the week the concept belongs to.
func NewExplain(env screen.Env, concept, background string) *ExplainScreen {
	return &ExplainScreen{
		env:        env,
		req:        newRequest(),
		input:      components.NewTextInput("e.g. Kelly criterion", false, 50),
		editing:    strings.TrimSpace(concept) == "",
		concept:    strings.TrimSpace(concept),
		background: background,
	}
}

func (s *ExplainScreen) Init() tea.Cmd {
	if s.editing {
		return s.input.Init()
	}
	return s.ask()
}

func (s *ExplainScreen) Title() string {
	return "Explain"
}

func (s *ExplainScreen) CapturingInput() bool {
	return s.editing
}

func (s *ExplainScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "/", Description: "New concept"},
		{Key: "r", Description: "Ask again"},
		{Key: "Esc", Description: "Back"},
	}
}

// ask sends the current concept to the gateway.
func (s *ExplainScreen) ask() tea.Cmd {
	env, concept, background := s.env, s.concept, s.background
	return s.req.start(func() tea.Msg {
		return explainDoneMsg{
			Concept: concept,
			Text:    env.Gateway.ExplainConcept(env.Ctx, concept, background),
		}
	})
}

func (s *ExplainScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainDoneMsg:
		s.req.finish()
		s.concept = msg.Concept
		s.answer = msg.Text
		s.scroll.reset()
		return s, nil

	case spinner.TickMsg:
		return s, s.req.update(msg)

	case tea.KeyMsg:
		if s.editing {
			return s.updateInput(msg)
		}
		key := msg.String()
		if s.scroll.key(key) {
			return s, nil
		}
		switch key {
		case "/":
			s.editing = true
			s.input.Reset()
			return s, s.input.Init()
		case "r":
			return s, s.ask()
		}
	}
	return s, nil
}

func (s *ExplainScreen) updateInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		concept := s.input.Value()
		if concept == "" {
			return s, nil
		}
		s.concept = concept
		s.background = ""
		s.editing = false
		return s, s.ask()
	case "esc":
		if s.answer == "" {
			return s, router.Pop()
		}
		s.editing = false
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ExplainScreen) View(width, height int) string {
	var b strings.Builder

	if s.editing {
		b.WriteString(theme.Heading.Render("Which concept should be explained?"))
		b.WriteString("\n\n" + s.input.View() + "\n\n")
	} else {
		b.WriteString(theme.Heading.Render(s.concept))
		if s.background != "" {
			b.WriteString("  " + theme.Hint.Render(s.background))
		}
		b.WriteString("\n\n")
	}

	if st := s.req.view("Asking the tutor..."); st != "" {
		b.WriteString(st + "\n\n")
	}

	used := strings.Count(b.String(), "\n")
	if s.answer != "" {
		b.WriteString(s.scroll.view(s.answer, width-4, height-used-1))
	}
	return b.String()
}
