package tutor

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// RecapScreen summarizes one day's notes.
type RecapScreen struct {
	env    screen.Env
	req    request
	day    curriculum.DailyTask
	text   string
	scroll scroller
}

var _ screen.Screen = (*RecapScreen)(nil)
var _ screen.KeyHintProvider = (*RecapScreen)(nil)

// NewRecap creates a RecapScreen for day.
func NewRecap(env screen.Env, day curriculum.DailyTask) *RecapScreen {
	return &RecapScreen{env: env, req: newRequest(), day: day}
}

func (s *RecapScreen) Init() tea.Cmd {
	return s.summarize()
}

func (s *RecapScreen) Title() string {
	return "Daily Recap"
}

func (s *RecapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Regenerate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RecapScreen) summarize() tea.Cmd {
	env, day := s.env, s.day
	logs := env.Tracker.DayLogs(day)
	return s.req.start(func() tea.Msg {
		return recapDoneMsg{Text: env.Gateway.SummarizeDailyLogs(env.Ctx, logs, day.Title)}
	})
}

func (s *RecapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recapDoneMsg:
		s.req.finish()
		s.text = msg.Text
		s.scroll.reset()
		return s, nil

	case spinner.TickMsg:
		return s, s.req.update(msg)

	case tea.KeyMsg:
		key := msg.String()
		if s.scroll.key(key) {
			return s, nil
		}
		if key == "r" {
			return s, s.summarize()
		}
	}
	return s, nil
}

// Text returns the last recap received.
func (s *RecapScreen) Text() string {
	return s.text
}

func (s *RecapScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(s.day.Title))
	b.WriteString("\n\n")

	if st := s.req.view("Summarizing your notes..."); st != "" {
		b.WriteString(st + "\n\n")
	}

	used := strings.Count(b.String(), "\n")
	b.WriteString(s.scroll.view(s.text, width-4, height-used-1))
	return b.String()
}
