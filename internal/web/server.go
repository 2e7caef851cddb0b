// Package web serves the study tracker as a local web page plus a small
// JSON API over the same tracker and tutor the terminal UI uses.
package web

import (
	"errors"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/tutor"
)

// DefaultAddr is where the server listens unless told otherwise.
const DefaultAddr = "127.0.0.1:8420"

// Server is the HTTP front end.
type Server struct {
	app     *fiber.App
	tracker *progress.Tracker
	gateway *tutor.Gateway
	logger  *slog.Logger
	page    *template.Template

	explainGate  tutor.Gate
	questionGate tutor.Gate
	summaryGate  tutor.Gate
}

// New builds the server and registers every route.
func New(tracker *progress.Tracker, gateway *tutor.Gateway, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	page, err := parsePage()
	if err != nil {
		return nil, err
	}

	s := &Server{
		tracker: tracker,
		gateway: gateway,
		logger:  logger,
		page:    page,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "quantpath",
		DisableStartupMessage: true,
		// Parsed bodies are kept as tracker keys, so they must not alias
		// fasthttp's reused request buffers.
		Immutable:    true,
		ErrorHandler: s.handleError,
	})
	s.app.Use(RequestLogger(logger))
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.app.Get("/", s.handleIndex)
	s.app.Get("/radar.svg", s.handleRadar)

	api := s.app.Group("/api")
	api.Get("/state", s.handleState)
	api.Post("/tasks/toggle", s.handleToggle)
	api.Put("/notes/block", s.handleBlockNote)
	api.Put("/notes/task", s.handleTaskNote)
	api.Get("/skills", s.handleSkills)
	api.Get("/key", s.handleKeyStatus)
	api.Put("/key", s.handleSetKey)
	api.Delete("/key", s.handleClearKey)

	ai := api.Group("/ai")
	ai.Post("/explain", s.handleExplain)
	ai.Post("/question", s.handleQuestion)
	ai.Post("/summarize", s.handleSummarize)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	s.logger.Info("web server listening", "addr", "http://"+addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(errorResponse{Error: msg})
}
