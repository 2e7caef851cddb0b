// Package tutor wraps an LLM provider for the three study aids: concept
// explanation, interview question generation and daily-log summaries.
//
// Every operation returns displayable text. Missing credentials and provider
// failures are turned into fixed messages instead of errors, so callers can
// show the result as-is.
package tutor

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
)

// Fixed messages shown in place of a generated result.
const (
	MsgNoKey          = "Set your Gemini API key first: press k on the home screen or run `quantpath key set`."
	MsgExplainFailed  = "The AI service returned an error. Check that the API key is valid and has quota left."
	MsgExplainEmpty   = "Could not generate an explanation, please try again later."
	MsgQuestionNoKey  = "Set an API key first."
	MsgQuestionFailed = "Failed to generate a question. Check the API key."
	MsgNoAnswer       = "No answer available."
	MsgSummaryNoKey   = "Set an API key to use daily summaries."
	MsgSummaryFailed  = "Summary failed. Check the API key and network connection."
	MsgSummaryEmpty   = "Could not generate a summary."
	MsgNoNotes        = "No notes for this day yet. Write some block or task notes first."
	MsgBusy           = "A request is already in progress."
)

// LLM purposes recorded with each request.
const (
	PurposeExplain   = "explain"
	PurposeQuestion  = "interview-question"
	PurposeSummarize = "daily-summary"
)

// Client is either Unconfigured or Ready.
type Client interface {
	isClient()
}

// Unconfigured means no credential is available; no request is ever sent.
type Unconfigured struct{}

// Ready holds a provider built from the current credential.
type Ready struct {
	Provider llm.Provider
}

func (Unconfigured) isClient() {}
func (Ready) isClient()        {}

// Credentials persists the API key.
type Credentials interface {
	APIKey(ctx context.Context) (string, error)
	SetAPIKey(ctx context.Context, key string) error
}

// ProviderFactory builds a provider for an API key.
type ProviderFactory func(ctx context.Context, apiKey string) (llm.Provider, error)

// InterviewQuestion is a generated question and its worked answer.
type InterviewQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Gateway is the entry point for all tutor requests. It is safe for
// concurrent use.
type Gateway struct {
	creds   Credentials
	factory ProviderFactory
	cfg     Config
	logger  *slog.Logger

	mu     sync.RWMutex
	stored string
	client Client
}

// New loads the stored credential and builds the client. Failures leave the
// gateway Unconfigured and are logged.
func New(ctx context.Context, creds Credentials, factory ProviderFactory, cfg Config, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		creds:   creds,
		factory: factory,
		cfg:     cfg,
		logger:  logger,
		client:  Unconfigured{},
	}

	key, err := creds.APIKey(ctx)
	if err != nil {
		logger.Warn("failed to load API key", "error", err)
	}
	g.mu.Lock()
	g.stored = key
	g.rebuildLocked(ctx)
	g.mu.Unlock()

	return g
}

// SetAPIKey persists key and rebuilds the client. An empty key clears the
// credential.
func (g *Gateway) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if err := g.creds.SetAPIKey(ctx, key); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.stored = key
	g.rebuildLocked(ctx)
	return nil
}

// APIKey returns the stored credential.
func (g *Gateway) APIKey() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stored
}

// HasKey reports whether the gateway can send requests.
func (g *Gateway) HasKey() bool {
	_, ok := g.Client().(Ready)
	return ok
}

// Client returns the current client state.
func (g *Gateway) Client() Client {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.client
}

// ModelID returns the model in use, or "" when unconfigured.
func (g *Gateway) ModelID() string {
	if r, ok := g.Client().(Ready); ok {
		return r.Provider.ModelID()
	}
	return ""
}

func (g *Gateway) rebuildLocked(ctx context.Context) {
	key := g.stored
	if key == "" {
		key = g.cfg.EnvAPIKey
	}
	if key == "" {
		g.client = Unconfigured{}
		return
	}

	p, err := g.factory(ctx, key)
	if err != nil {
		g.logger.Warn("failed to build LLM provider", "error", err)
		g.client = Unconfigured{}
		return
	}
	g.client = Ready{Provider: p}
}

func (g *Gateway) provider() (llm.Provider, bool) {
	r, ok := g.Client().(Ready)
	if !ok {
		return nil, false
	}
	return r.Provider, true
}

// ExplainConcept asks for a short explanation of concept, given background
// such as the week it belongs to.
func (g *Gateway) ExplainConcept(ctx context.Context, concept, background string) string {
	p, ok := g.provider()
	if !ok {
		return MsgNoKey
	}

	resp, err := p.Generate(llm.WithPurpose(ctx, PurposeExplain), llm.Request{
		System:      explainSystemPrompt,
		Prompt:      buildExplainMessage(concept, background, g.cfg.Language),
		MaxTokens:   g.cfg.ExplainMaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		g.logger.Error("explain concept failed", "concept", concept, "error", err)
		return MsgExplainFailed
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text
	}
	return MsgExplainEmpty
}

// GenerateInterviewQuestion asks for one interview question and its answer.
func (g *Gateway) GenerateInterviewQuestion(ctx context.Context) InterviewQuestion {
	p, ok := g.provider()
	if !ok {
		return InterviewQuestion{Question: MsgQuestionNoKey}
	}

	failed := InterviewQuestion{Question: MsgQuestionFailed, Answer: MsgNoAnswer}

	resp, err := p.Generate(llm.WithPurpose(ctx, PurposeQuestion), llm.Request{
		System:      questionSystemPrompt,
		Prompt:      buildQuestionMessage(g.cfg.Language),
		Schema:      InterviewQuestionSchema,
		MaxTokens:   g.cfg.QuestionMaxTokens,
		Temperature: g.cfg.QuestionTemperature,
	})
	if err != nil {
		g.logger.Error("interview question failed", "error", err)
		return failed
	}

	var q InterviewQuestion
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		g.logger.Error("parse interview question", "error", err)
		return failed
	}
	if strings.TrimSpace(q.Question) == "" {
		return failed
	}
	return q
}

// SummarizeDailyLogs turns a day's notes into a Markdown recap.
func (g *Gateway) SummarizeDailyLogs(ctx context.Context, logs []progress.LogEntry, dayTitle string) string {
	p, ok := g.provider()
	if !ok {
		return MsgSummaryNoKey
	}
	if len(logs) == 0 {
		return MsgNoNotes
	}

	resp, err := p.Generate(llm.WithPurpose(ctx, PurposeSummarize), llm.Request{
		System:      summarySystemPrompt,
		Prompt:      buildSummaryMessage(logs, dayTitle, g.cfg.Language),
		MaxTokens:   g.cfg.SummaryMaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		g.logger.Error("daily summary failed", "day", dayTitle, "error", err)
		return MsgSummaryFailed
	}

	if text := strings.TrimSpace(resp.Text()); text != "" {
		return text
	}
	return MsgSummaryEmpty
}
