// Package skillradar shows the five skill percentages as a character radar
// chart next to per-skill bars.
package skillradar

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/radar"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/skills"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// SkillsScreen renders the skill radar. Percentages are recomputed from the
// tracker on every render.
type SkillsScreen struct {
	env screen.Env
}

var _ screen.Screen = (*SkillsScreen)(nil)
var _ screen.KeyHintProvider = (*SkillsScreen)(nil)

// New creates a new SkillsScreen.
func New(env screen.Env) *SkillsScreen {
	return &SkillsScreen{env: env}
}

func (s *SkillsScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillsScreen) Title() string {
	return "Skill Radar"
}

func (s *SkillsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillsScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *SkillsScreen) View(width, height int) string {
	totals := skills.Compute(curriculum.Weeks(), s.env.Tracker.IsCompleted)
	pct := skills.Percentages(totals)

	chartW := min(width-2, 64)
	chartH := max(height-2, 5)
	if !layout.IsCompactWidth(width) {
		chartW = min(width/2, 64)
	}
	chart := radar.RenderText(radar.SkillChart(pct), chartW, min(chartH, 21))
	chart = lipgloss.NewStyle().Foreground(theme.Primary).Render(chart)

	var bars strings.Builder
	bars.WriteString(theme.Heading.Render("Skills"))
	bars.WriteString("\n\n")
	barWidth := 44
	for i, sk := range curriculum.Axes() {
		bar := components.NewProgressBar(sk.DisplayName(), pct[sk], barWidth)
		bar.LabelWidth = 14
		bar.Color = theme.SkillColor(i)
		bars.WriteString(bar.View())
		bars.WriteString("\n")
	}
	bars.WriteString("\n")
	bars.WriteString(theme.Body.Render(fmt.Sprintf("Overall  %.0f%%", skills.Overall(totals))))
	bars.WriteString("\n")
	bars.WriteString(theme.Hint.Render(fmt.Sprintf("%.0f of %.0f weighted points earned",
		sum(totals.Earned), sum(totals.Possible))))

	if layout.IsCompactWidth(width) {
		return bars.String() + "\n\n" + chart
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, chart, "    ", bars.String())
}

func sum(m map[curriculum.Skill]float64) float64 {
	var t float64
	for _, v := range m {
		t += v
	}
	return t
}
