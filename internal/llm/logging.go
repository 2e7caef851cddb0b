package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quantpath/internal/store"
)

type purposeKey struct{}

// WithPurpose tags ctx with what a request is for ("explain",
// "interview-question", "daily-summary"). The tag ends up in the request
// log and in per-purpose usage stats.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// LoggingProvider records every request it forwards as an LLM request event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps p. providerName is the configured backend ("gemini",
// "openai", ...). A nil repo only logs.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		RequestID:   uuid.NewString(),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text()
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}

	log := l.logger.With(
		"request_id", ev.RequestID,
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", "error", err)
	} else {
		log.Debug("llm request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	if l.eventRepo != nil {
		// Recording is best effort; the caller still gets its reply.
		if recErr := l.eventRepo.AppendLLMRequest(ctx, ev); recErr != nil {
			log.Warn("failed to record llm request event", "error", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders req the way `quantpath llm view` shows it.
func serializeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString("[system]\n" + req.System + "\n\n")
	}
	b.WriteString("[prompt]\n" + req.Prompt + "\n")
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition()); err == nil {
			b.WriteString("\n[schema: " + req.Schema.Name + "]\n")
			b.Write(def)
			b.WriteString("\n")
		}
	}
	return b.String()
}
