package web

import (
	"bytes"
	"maps"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/radar"
	"github.com/abhisek/quantpath/internal/skills"
	"github.com/abhisek/quantpath/internal/tutor"
)

type stateResponse struct {
	Completed    []string          `json:"completed"`
	BlockNotes   map[string]string `json:"blockNotes"`
	TaskNotes    map[string]string `json:"taskNotes"`
	AIConfigured bool              `json:"aiConfigured"`
}

func (s *Server) handleState(c *fiber.Ctx) error {
	snap := s.tracker.Snapshot()
	return c.JSON(stateResponse{
		Completed:    completedLabels(snap),
		BlockNotes:   snap.BlockNotes,
		TaskNotes:    snap.TaskNotes,
		AIConfigured: s.gateway.HasKey(),
	})
}

// completedLabels lists the checked labels of snap in sorted order, never nil.
func completedLabels(snap progress.Snapshot) []string {
	out := slices.Sorted(maps.Keys(snap.Completed))
	if out == nil {
		out = []string{}
	}
	return out
}

type toggleRequest struct {
	Label string `json:"label" form:"label"`
}

type toggleResponse struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

func (s *Server) handleToggle(c *fiber.Ctx) error {
	var req toggleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !curriculum.IsTask(req.Label) {
		return fiber.NewError(fiber.StatusNotFound, "unknown task")
	}

	done, err := s.tracker.Toggle(c.UserContext(), req.Label)
	if err != nil {
		return err
	}
	return c.JSON(toggleResponse{Label: req.Label, Completed: done})
}

type blockNoteRequest struct {
	Day     string `json:"day" form:"day"`
	Block   string `json:"block" form:"block"`
	Content string `json:"content" form:"content"`
}

func (s *Server) handleBlockNote(c *fiber.Ctx) error {
	var req blockNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if _, _, err := curriculum.DayByID(req.Day); err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown day")
	}
	block, ok := curriculum.ParseBlock(req.Block)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "block must be morning, afternoon or night")
	}

	if err := s.tracker.SetBlockNote(c.UserContext(), req.Day, block, req.Content); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type taskNoteRequest struct {
	Label   string `json:"label" form:"label"`
	Content string `json:"content" form:"content"`
}

func (s *Server) handleTaskNote(c *fiber.Ctx) error {
	var req taskNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !curriculum.IsTask(req.Label) {
		return fiber.NewError(fiber.StatusNotFound, "unknown task")
	}

	if err := s.tracker.SetTaskNote(c.UserContext(), req.Label, req.Content); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type skillsResponse struct {
	Percentages map[curriculum.Skill]float64 `json:"percentages"`
	Possible    map[curriculum.Skill]float64 `json:"possible"`
	Earned      map[curriculum.Skill]float64 `json:"earned"`
	Overall     float64                      `json:"overall"`
}

func (s *Server) totals() skills.Totals {
	return skills.Compute(curriculum.Weeks(), s.tracker.IsCompleted)
}

func (s *Server) handleSkills(c *fiber.Ctx) error {
	t := s.totals()
	return c.JSON(skillsResponse{
		Percentages: skills.Percentages(t),
		Possible:    t.Possible,
		Earned:      t.Earned,
		Overall:     skills.Overall(t),
	})
}

func (s *Server) radarSVG(size int) (string, error) {
	var buf bytes.Buffer
	chart := radar.SkillChart(skills.Percentages(s.totals()))
	if err := radar.RenderSVG(&buf, chart, size); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Server) handleRadar(c *fiber.Ctx) error {
	svg, err := s.radarSVG(c.QueryInt("size", 360))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.SendString(svg)
}

type keyRequest struct {
	Key string `json:"key" form:"key"`
}

type keyResponse struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model,omitempty"`
}

func (s *Server) keyStatus() keyResponse {
	return keyResponse{Configured: s.gateway.HasKey(), Model: s.gateway.ModelID()}
}

func (s *Server) handleKeyStatus(c *fiber.Ctx) error {
	return c.JSON(s.keyStatus())
}

func (s *Server) handleSetKey(c *fiber.Ctx) error {
	var req keyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Key) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "key must not be empty")
	}
	if err := s.gateway.SetAPIKey(c.UserContext(), req.Key); err != nil {
		return err
	}
	return c.JSON(s.keyStatus())
}

func (s *Server) handleClearKey(c *fiber.Ctx) error {
	if err := s.gateway.SetAPIKey(c.UserContext(), ""); err != nil {
		return err
	}
	return c.JSON(s.keyStatus())
}

// withGate rejects the request while another one holding g is in flight.
func withGate(g *tutor.Gate, fn func() error) error {
	if !g.TryAcquire() {
		return fiber.NewError(fiber.StatusConflict, tutor.MsgBusy)
	}
	defer g.Release()
	return fn()
}

type explainRequest struct {
	Concept string `json:"concept" form:"concept"`
	Context string `json:"context" form:"context"`
}

type textResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleExplain(c *fiber.Ctx) error {
	var req explainRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Concept) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "concept is required")
	}

	return withGate(&s.explainGate, func() error {
		text := s.gateway.ExplainConcept(c.UserContext(), req.Concept, req.Context)
		return c.JSON(textResponse{Text: text})
	})
}

func (s *Server) handleQuestion(c *fiber.Ctx) error {
	return withGate(&s.questionGate, func() error {
		return c.JSON(s.gateway.GenerateInterviewQuestion(c.UserContext()))
	})
}

type summarizeRequest struct {
	Day string `json:"day" form:"day"`
}

type summaryResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

func (s *Server) handleSummarize(c *fiber.Ctx) error {
	var req summarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	day, _, err := curriculum.DayByID(req.Day)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "unknown day")
	}

	return withGate(&s.summaryGate, func() error {
		md := s.gateway.SummarizeDailyLogs(c.UserContext(), s.tracker.DayLogs(day), day.Title)
		return c.JSON(summaryResponse{Markdown: md, HTML: string(RenderMarkdown(md))})
	})
}
