package web

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/skills"
)

//go:embed templates/index.html
var indexHTML string

func parsePage() (*template.Template, error) {
	funcs := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	}
	tpl, err := template.New("index").Funcs(funcs).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return tpl, nil
}

type pageData struct {
	Phases       []phaseView
	Active       weekView
	Radar        template.HTML
	Skills       []skillView
	Overall      float64
	AIConfigured bool
	Model        string
}

type phaseView struct {
	Phase curriculum.Phase
	Weeks []weekSummary
}

type weekSummary struct {
	ID     int
	Title  string
	Done   int
	Total  int
	Active bool
}

type weekView struct {
	Week curriculum.Week
	Done int
	Days []dayView
}

type dayView struct {
	Day    curriculum.DailyTask
	Blocks []blockView
}

type blockView struct {
	Block curriculum.Block
	Name  string
	Topic string
	Note  string
	Tasks []taskView
}

type taskView struct {
	Label   string
	Done    bool
	HasNote bool
	Note    string
}

type skillView struct {
	Name string
	Pct  float64
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	activeID := c.QueryInt("week", 1)
	active, err := curriculum.WeekByID(activeID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown week")
	}

	snap := s.tracker.Snapshot()
	data := pageData{
		Active:       buildWeekView(active, snap),
		AIConfigured: s.gateway.HasKey(),
		Model:        s.gateway.ModelID(),
	}

	for _, p := range curriculum.Phases() {
		pv := phaseView{Phase: p}
		for _, w := range curriculum.WeeksInPhase(p.ID) {
			done, total := skills.WeekProgress(w, snap.IsCompleted)
			pv.Weeks = append(pv.Weeks, weekSummary{
				ID: w.ID, Title: w.Title, Done: done, Total: total, Active: w.ID == active.ID,
			})
		}
		data.Phases = append(data.Phases, pv)
	}

	totals := skills.Compute(curriculum.Weeks(), snap.IsCompleted)
	pct := skills.Percentages(totals)
	for _, sk := range curriculum.Axes() {
		data.Skills = append(data.Skills, skillView{Name: sk.DisplayName(), Pct: pct[sk]})
	}
	data.Overall = skills.Overall(totals)

	svg, err := s.radarSVG(320)
	if err != nil {
		return err
	}
	data.Radar = template.HTML(svg)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return s.page.Execute(c.Response().BodyWriter(), data)
}

func buildWeekView(w curriculum.Week, snap progress.Snapshot) weekView {
	wv := weekView{Week: w}
	for _, d := range w.Days {
		dv := dayView{Day: d}
		for _, b := range curriculum.Blocks() {
			tb := d.Block(b)
			bv := blockView{
				Block: b,
				Name:  b.DisplayName(),
				Topic: tb.Topic,
				Note:  snap.BlockNotes[progress.BlockKey(d.ID, b)],
			}
			for _, label := range tb.Tasks {
				note := snap.TaskNotes[label]
				done := snap.IsCompleted(label)
				if done {
					wv.Done++
				}
				bv.Tasks = append(bv.Tasks, taskView{
					Label:   label,
					Done:    done,
					HasNote: hasText(note),
					Note:    note,
				})
			}
			dv.Blocks = append(dv.Blocks, bv)
		}
		wv.Days = append(wv.Days, dv)
	}
	return wv
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
