package roadmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/screens/week"
	"github.com/abhisek/quantpath/internal/skills"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

type row struct {
	phase *curriculum.Phase
	week  *curriculum.Week
}

// RoadmapScreen lists every week grouped by phase.
type RoadmapScreen struct {
	env    screen.Env
	rows   []row
	cursor int
	offset int
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)

// New creates a new RoadmapScreen.
func New(env screen.Env) *RoadmapScreen {
	r := &RoadmapScreen{env: env}
	for _, p := range curriculum.Phases() {
		r.rows = append(r.rows, row{phase: &p})
		for _, w := range curriculum.WeeksInPhase(p.ID) {
			r.rows = append(r.rows, row{week: &w})
		}
	}
	r.cursor = r.nextWeek(-1, 1)
	return r
}

func (r *RoadmapScreen) Init() tea.Cmd {
	return nil
}

func (r *RoadmapScreen) Title() string {
	return "Roadmap"
}

func (r *RoadmapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open week"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the week under the cursor.
func (r *RoadmapScreen) Selected() curriculum.Week {
	return *r.rows[r.cursor].week
}

func (r *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "up", "k":
		r.cursor = r.nextWeek(r.cursor, -1)
	case "down", "j":
		r.cursor = r.nextWeek(r.cursor, 1)
	case "enter":
		return r, router.Push(week.New(r.env, r.Selected()))
	}
	return r, nil
}

// nextWeek returns the next week row from i in direction dir, or i.
func (r *RoadmapScreen) nextWeek(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(r.rows); j += dir {
		if r.rows[j].week != nil {
			return j
		}
	}
	return i
}

func (r *RoadmapScreen) View(width, height int) string {
	lines := make([]string, len(r.rows))
	barWidth := min(width-44, 40)

	for i, rw := range r.rows {
		if rw.phase != nil {
			lines[i] = theme.Heading.Render(rw.phase.Title)
			continue
		}
		w := rw.week
		label := fmt.Sprintf("Week %-2d %s", w.ID, truncate(w.Title, 30))

		style := theme.Unselected
		prefix := "   "
		if i == r.cursor {
			style = theme.Selected
			prefix = " ▸ "
		}
		line := style.Render(prefix + label)
		pad := max(38-lipgloss.Width(line), 1)
		line += strings.Repeat(" ", pad)

		done, total := skills.WeekProgress(*w, r.env.Tracker.IsCompleted)
		if total == 0 {
			line += theme.Hint.Render("plan coming soon")
		} else {
			bar := components.NewProgressBar("", 100*float64(done)/float64(total), barWidth)
			line += bar.View() + theme.Subtitle.Render(fmt.Sprintf("  %d/%d", done, total))
		}
		lines[i] = line
	}

	start, end := layout.Window(len(lines), r.cursor, r.offset, height-4)
	r.offset = start

	var b strings.Builder
	b.WriteString(strings.Join(lines[start:end], "\n"))

	sel := r.Selected()
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(truncate(sel.Summary, width-2)))
	return b.String()
}

func truncate(s string, n int) string {
	if n <= 1 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}
