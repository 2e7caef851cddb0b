// Package tutor holds the AI study-aid screens: concept explanation,
// interview questions and the daily recap.
package tutor

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	tutorsvc "github.com/abhisek/quantpath/internal/tutor"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// request tracks one in-flight gateway call for a screen. A second start
// while busy is rejected and reported through status.
type request struct {
	gate    tutorsvc.Gate
	spinner spinner.Model
	status  string
}

func newRequest() request {
	return request{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
}

// start runs call in the background unless a call is already running.
func (r *request) start(call tea.Cmd) tea.Cmd {
	if !r.gate.TryAcquire() {
		r.status = tutorsvc.MsgBusy
		return nil
	}
	r.status = ""
	return tea.Batch(r.spinner.Tick, call)
}

func (r *request) finish() {
	r.gate.Release()
}

func (r *request) loading() bool {
	return r.gate.Busy()
}

// update animates the spinner while loading.
func (r *request) update(msg spinner.TickMsg) tea.Cmd {
	if !r.loading() {
		return nil
	}
	var cmd tea.Cmd
	r.spinner, cmd = r.spinner.Update(msg)
	return cmd
}

func (r *request) view(label string) string {
	var b strings.Builder
	if r.loading() {
		b.WriteString(r.spinner.View() + " " + theme.Hint.Render(label))
	}
	if r.status != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Warning.Render(r.status))
	}
	return b.String()
}

// scroller shows a window of wrapped text.
type scroller struct {
	offset int
}

func (s *scroller) reset() { s.offset = 0 }

func (s *scroller) key(k string) bool {
	switch k {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown":
		s.offset += 10
	default:
		return false
	}
	return true
}

func (s *scroller) view(text string, width, height int) string {
	if height <= 0 {
		return ""
	}
	wrapped := lipgloss.NewStyle().Width(max(width, 10)).Render(text)
	lines := strings.Split(wrapped, "\n")
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}
