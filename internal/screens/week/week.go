package week

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/screens/note"
	tutorscreen "github.com/abhisek/quantpath/internal/screens/tutor"
	"github.com/abhisek/quantpath/internal/skills"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

type rowKind int

const (
	rowConcept rowKind = iota
	rowDay
	rowBlock
	rowTask
)

type row struct {
	kind    rowKind
	concept string
	day     int
	block   curriculum.Block
	task    string
}

// WeekScreen shows one week: its concepts and, per day, the three time
// blocks with their task checklists.
type WeekScreen struct {
	env    screen.Env
	week   curriculum.Week
	rows   []row
	cursor int
	offset int
	status string
}

var _ screen.Screen = (*WeekScreen)(nil)
var _ screen.KeyHintProvider = (*WeekScreen)(nil)

// New creates a WeekScreen for w.
func New(env screen.Env, w curriculum.Week) *WeekScreen {
	s := &WeekScreen{env: env, week: w}
	for _, c := range w.Concepts {
		s.rows = append(s.rows, row{kind: rowConcept, concept: c})
	}
	for di, d := range w.Days {
		s.rows = append(s.rows, row{kind: rowDay, day: di})
		for _, b := range curriculum.Blocks() {
			s.rows = append(s.rows, row{kind: rowBlock, day: di, block: b})
			for _, t := range d.Block(b).Tasks {
				s.rows = append(s.rows, row{kind: rowTask, day: di, block: b, task: t})
			}
		}
	}
	// Start on the first task when there is one.
	for i, r := range s.rows {
		if r.kind == rowTask {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *WeekScreen) Init() tea.Cmd {
	return nil
}

func (s *WeekScreen) Title() string {
	return fmt.Sprintf("Week %d", s.week.ID)
}

func (s *WeekScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Toggle"},
		{Key: "n", Description: "Task note"},
		{Key: "b", Description: "Block note"},
		{Key: "e", Description: "Explain"},
		{Key: "s", Description: "Recap"},
		{Key: "[ ]", Description: "Week"},
		{Key: "Esc", Description: "Back"},
	}
}

// Week returns the week shown.
func (s *WeekScreen) Week() curriculum.Week {
	return s.week
}

func (s *WeekScreen) current() (row, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return row{}, false
	}
	return s.rows[s.cursor], true
}

func (s *WeekScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	s.status = ""
	switch kmsg.String() {
	case "up", "k":
		s.cursor = max(s.cursor-1, 0)
	case "down", "j":
		s.cursor = min(s.cursor+1, max(len(s.rows)-1, 0))
	case "space", "enter", "x":
		return s, s.activate()
	case "n":
		return s, s.editTaskNote()
	case "b":
		return s, s.editBlockNote()
	case "e":
		return s, s.explain()
	case "s":
		return s, s.recap()
	case "[":
		return s, s.jump(-1)
	case "]":
		return s, s.jump(1)
	}
	return s, nil
}

// activate toggles a task, or explains a concept row.
func (s *WeekScreen) activate() tea.Cmd {
	r, ok := s.current()
	if !ok {
		return nil
	}
	switch r.kind {
	case rowTask:
		if _, err := s.env.Tracker.Toggle(s.env.Ctx, r.task); err != nil {
			s.status = "Saved in memory only: " + err.Error()
		}
	case rowConcept:
		return s.explain()
	}
	return nil
}

func (s *WeekScreen) editTaskNote() tea.Cmd {
	r, ok := s.current()
	if !ok || r.kind != rowTask {
		s.status = "Select a task to edit its note."
		return nil
	}
	tracker, label := s.env.Tracker, r.task
	return router.Push(note.New(s.env.Ctx, "Task Note", label, tracker.TaskNote(label),
		func(ctx context.Context, content string) error {
			return tracker.SetTaskNote(ctx, label, content)
		}))
}

func (s *WeekScreen) editBlockNote() tea.Cmd {
	r, ok := s.current()
	if !ok || (r.kind != rowBlock && r.kind != rowTask) {
		s.status = "Select a block or one of its tasks to edit the block note."
		return nil
	}
	day := s.week.Days[r.day]
	block := r.block
	tracker := s.env.Tracker
	heading := fmt.Sprintf("%s · %s: %s", day.Title, block.DisplayName(), day.Block(block).Topic)
	return router.Push(note.New(s.env.Ctx, "Block Note", heading, tracker.BlockNote(day.ID, block),
		func(ctx context.Context, content string) error {
			return tracker.SetBlockNote(ctx, day.ID, block, content)
		}))
}

func (s *WeekScreen) explain() tea.Cmd {
	r, ok := s.current()
	if !ok || r.kind != rowConcept {
		s.status = "Select a concept to explain."
		return nil
	}
	background := fmt.Sprintf("Week %d: %s", s.week.ID, s.week.Title)
	return router.Push(tutorscreen.NewExplain(s.env, r.concept, background))
}

func (s *WeekScreen) recap() tea.Cmd {
	r, ok := s.current()
	if !ok || r.kind == rowConcept {
		s.status = "Select a day to summarize."
		return nil
	}
	return router.Push(tutorscreen.NewRecap(s.env, s.week.Days[r.day]))
}

// jump replaces this screen with the neighbouring week.
func (s *WeekScreen) jump(dir int) tea.Cmd {
	w, err := curriculum.WeekByID(s.week.ID + dir)
	if err != nil {
		return nil
	}
	return router.Replace(New(s.env, w))
}

func (s *WeekScreen) View(width, height int) string {
	var head strings.Builder
	head.WriteString(theme.Heading.Render(fmt.Sprintf("Week %d · %s", s.week.ID, s.week.Title)))
	head.WriteString("\n")
	head.WriteString(theme.Subtitle.Render(s.week.Summary))
	head.WriteString("\n")

	done, total := skills.WeekProgress(s.week, s.env.Tracker.IsCompleted)
	if total > 0 {
		bar := components.NewProgressBar("Progress", 100*float64(done)/float64(total), min(width-4, 60))
		head.WriteString(bar.View())
		head.WriteString("\n")
	}
	if s.status != "" {
		head.WriteString(theme.Warning.Render(s.status))
		head.WriteString("\n")
	}

	lines := make([]string, 0, len(s.rows)+1)
	for i, r := range s.rows {
		lines = append(lines, s.renderRow(r, i == s.cursor, width))
	}
	if len(s.week.Days) == 0 {
		lines = append(lines, "", theme.Hint.Render("Daily plans for this week are not written yet."))
	}

	used := strings.Count(head.String(), "\n") + 1
	start, end := layout.Window(len(lines), s.cursor, s.offset, height-used)
	s.offset = start

	return head.String() + "\n" + strings.Join(lines[start:end], "\n")
}

func (s *WeekScreen) renderRow(r row, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	style := theme.Unselected
	if selected {
		style = theme.Selected
	}

	var line string
	switch r.kind {
	case rowConcept:
		line = style.Render(prefix+"◇ ") + style.Render(r.concept)
	case rowDay:
		d := s.week.Days[r.day]
		line = theme.Heading.Render(prefix+d.Title) + "  " + theme.Hint.Render(d.Focus)
	case rowBlock:
		d := s.week.Days[r.day]
		tb := d.Block(r.block)
		label := fmt.Sprintf("  %s · %s", r.block.DisplayName(), tb.Topic)
		line = style.Render(prefix + label)
		if strings.TrimSpace(s.env.Tracker.BlockNote(d.ID, r.block)) != "" {
			line += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("✎")
		}
	case rowTask:
		box := "[ ]"
		taskStyle := style
		if s.env.Tracker.IsCompleted(r.task) {
			box = "[x]"
			if !selected {
				taskStyle = theme.Done
			}
		}
		line = taskStyle.Render(prefix + "    " + box + " " + r.task)
		if s.env.Tracker.HasTaskNote(r.task) {
			line += " " + lipgloss.NewStyle().Foreground(theme.Accent).Render("✎")
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
