package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/screens/apikey"
	"github.com/abhisek/quantpath/internal/screens/roadmap"
	"github.com/abhisek/quantpath/internal/screens/skillradar"
	tutorscreen "github.com/abhisek/quantpath/internal/screens/tutor"
	"github.com/abhisek/quantpath/internal/screens/week"
	"github.com/abhisek/quantpath/internal/skills"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

const banner = `╔═╗ ┬ ┬┌─┐┌┐┌┌┬┐╔═╗┌─┐┌┬┐┬ ┬
║═╬╗│ │├─┤│││ │ ╠═╝├─┤ │ ├─┤
╚═╝╚└─┘┴ ┴┘└┘ ┴ ╩  ┴ ┴ ┴ ┴ ┴`

// HomeScreen is the main menu.
type HomeScreen struct {
	env  screen.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	items := []components.MenuItem{
		{Label: "Roadmap", Key: "r", Action: func() tea.Cmd {
			return router.Push(roadmap.New(env))
		}},
		{Label: "Continue", Key: "c", Action: func() tea.Cmd {
			return router.Push(week.New(env, h.currentWeek()))
		}},
		{Label: "Skill radar", Key: "s", Action: func() tea.Cmd {
			return router.Push(skillradar.New(env))
		}},
		{Label: "Interview question", Key: "q", Action: func() tea.Cmd {
			return router.Push(tutorscreen.NewQuestion(env))
		}},
		{Label: "Explain a concept", Key: "e", Action: func() tea.Cmd {
			return router.Push(tutorscreen.NewExplain(env, "", ""))
		}},
		{Label: "API key", Key: "k", Action: func() tea.Cmd {
			return router.Push(apikey.New(env))
		}},
		{Label: "Quit", Key: "x", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

// currentWeek is the first week that still has open tasks, or week 1.
func (h *HomeScreen) currentWeek() curriculum.Week {
	weeks := curriculum.Weeks()
	for _, w := range weeks {
		done, total := skills.WeekProgress(w, h.env.Tracker.IsCompleted)
		if total > 0 && done < total {
			return w
		}
	}
	return weeks[0]
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	if height >= 22 {
		sections = append(sections, theme.Title.Render(banner))
	} else {
		sections = append(sections, theme.Title.Render("QuantPath"))
	}
	sections = append(sections, theme.Subtitle.Render("12 weeks from probability to a live market-making strategy"))

	cur := h.currentWeek()
	done, total := skills.WeekProgress(cur, h.env.Tracker.IsCompleted)
	status := fmt.Sprintf("Current: Week %d · %s", cur.ID, cur.Title)
	if total > 0 {
		status += fmt.Sprintf("  (%d/%d tasks)", done, total)
	}
	sections = append(sections, theme.Body.Render(status))

	key := theme.Done.Render("AI ready · " + h.env.Gateway.ModelID())
	if !h.env.Gateway.HasKey() {
		key = theme.Warning.Render("No API key set, press k to add one")
	}
	sections = append(sections, key)

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
