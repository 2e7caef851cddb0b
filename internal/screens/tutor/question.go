package tutor

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/screen"
	tutorsvc "github.com/abhisek/quantpath/internal/tutor"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// QuestionScreen shows a generated interview question with its answer
// hidden until revealed.
type QuestionScreen struct {
	env      screen.Env
	req      request
	question tutorsvc.InterviewQuestion
	revealed bool
	asked    int
	scroll   scroller
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// NewQuestion creates a QuestionScreen that fetches its first question on Init.
func NewQuestion(env screen.Env) *QuestionScreen {
	return &QuestionScreen{env: env, req: newRequest()}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.next()
}

func (s *QuestionScreen) Title() string {
	return "Interview Question"
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Reveal answer"},
		{Key: "n", Description: "Next question"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuestionScreen) next() tea.Cmd {
	env := s.env
	return s.req.start(func() tea.Msg {
		return questionDoneMsg{Question: env.Gateway.GenerateInterviewQuestion(env.Ctx)}
	})
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionDoneMsg:
		s.req.finish()
		s.question = msg.Question
		s.revealed = false
		s.asked++
		s.scroll.reset()
		return s, nil

	case spinner.TickMsg:
		return s, s.req.update(msg)

	case tea.KeyMsg:
		key := msg.String()
		if s.scroll.key(key) {
			return s, nil
		}
		switch key {
		case "space", "a":
			if s.question.Question != "" {
				s.revealed = !s.revealed
			}
		case "n":
			return s, s.next()
		}
	}
	return s, nil
}

// Question returns the question currently shown.
func (s *QuestionScreen) Question() tutorsvc.InterviewQuestion {
	return s.question
}

// Revealed reports whether the answer is visible.
func (s *QuestionScreen) Revealed() bool {
	return s.revealed
}

func (s *QuestionScreen) View(width, height int) string {
	var b strings.Builder

	if st := s.req.view("Drafting a question..."); st != "" {
		b.WriteString(st + "\n\n")
	}

	if s.question.Question != "" {
		var body strings.Builder
		body.WriteString(theme.Heading.Render("Q. ") + s.question.Question)
		body.WriteString("\n\n")
		if s.revealed {
			answer := s.question.Answer
			if strings.TrimSpace(answer) == "" {
				answer = tutorsvc.MsgNoAnswer
			}
			body.WriteString(theme.Done.Render("A. ") + answer)
		} else {
			body.WriteString(theme.Hint.Render("Work it out first, then press space to reveal the answer."))
		}

		used := strings.Count(b.String(), "\n")
		b.WriteString(s.scroll.view(body.String(), width-4, height-used-1))
	}
	return b.String()
}
