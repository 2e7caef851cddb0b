package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quantpath/internal/store"
)

// questionSchema mirrors the tutor's interview question shape.
func questionSchema() *Schema {
	return &Schema{
		Name:        "interview-question",
		Description: "A quant interview question with a worked solution",
		Fields: []Field{
			{Name: "question", Description: "The question"},
			{Name: "answer", Description: "The derivation"},
		},
	}
}

func TestMockProvider_ExplainAndSummaryReplies(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Content: []byte("A martingale is a fair game."), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		Reply("## Key Concepts\n- Bayes"),
	)
	ctx := context.Background()

	resp, err := mock.Generate(WithPurpose(ctx, "explain"), Request{System: "tutor", Prompt: "Explain: Martingale"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "A martingale is a fair game." {
		t.Errorf("Text() = %q", resp.Text())
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
	if resp.StopReason != StopEnd || resp.Model != "mock" {
		t.Errorf("stop=%q model=%q", resp.StopReason, resp.Model)
	}

	resp, err = mock.Generate(WithPurpose(ctx, "daily-summary"), Request{Prompt: "[MORNING] Bayes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(resp.Text(), "## Key Concepts") {
		t.Errorf("Text() = %q", resp.Text())
	}

	calls := mock.Calls()
	if len(calls) != 2 || mock.CallCount() != 2 {
		t.Fatalf("calls = %d", len(calls))
	}
	if calls[0].Purpose != "explain" || calls[0].Request.System != "tutor" || calls[0].Request.Prompt != "Explain: Martingale" {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].Purpose != "daily-summary" {
		t.Errorf("second purpose = %q", calls[1].Purpose)
	}
}

func TestMockProvider_QuestionReplyIsValidated(t *testing.T) {
	mock := NewMockProvider(
		ReplyJSON(map[string]string{"question": "Expected rolls to see a six?", "answer": "6"}),
		Reply("```json\n{\"question\":\"Variance of a die?\",\"answer\":\"35/12\"}\n```"),
		ReplyJSON(map[string]string{"question": "No answer given"}),
	)
	req := Request{Prompt: "Ask one question.", Schema: questionSchema()}

	resp, err := mock.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Text(), "Expected rolls") {
		t.Errorf("Text() = %q", resp.Text())
	}

	resp, err = mock.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("fenced reply: %v", err)
	}
	if resp.Text() != `{"question":"Variance of a die?","answer":"35/12"}` {
		t.Errorf("fence not stripped: %q", resp.Text())
	}

	_, err = mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("missing answer: expected ErrInvalidResponse, got %T", err)
	}
}

func TestMockProvider_FailAndEmptyQueue(t *testing.T) {
	mock := NewMockProvider(Fail(&ErrRateLimit{}))

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got %T", err)
	}

	mock.AddReply(Reply("late"))
	if resp, err := mock.Generate(context.Background(), Request{}); err != nil || resp.Text() != "late" {
		t.Fatalf("AddReply: %v %v", resp, err)
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID = %q", mock.ModelID())
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if p := PurposeFrom(context.Background()); p != "unknown" {
		t.Fatalf("PurposeFrom = %q, want unknown", p)
	}
	if p := PurposeFrom(WithPurpose(context.Background(), "")); p != "unknown" {
		t.Fatalf("empty purpose = %q, want unknown", p)
	}
}

func TestFinish_TruncatedStructuredReply(t *testing.T) {
	structured := Request{Schema: questionSchema()}
	_, err := finish(structured, []byte(`{"question":"cut`), StopMaxTokens, "m", Usage{})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}

	// A recap cut short is still shown.
	resp, err := finish(Request{}, []byte("## Recap\n- Ba"), StopMaxTokens, "m", Usage{})
	if err != nil || resp.StopReason != StopMaxTokens {
		t.Fatalf("free text: resp=%+v err=%v", resp, err)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name   string
		models map[string]string
		want   string
	}{
		{"gemini-flash", geminiModels, "gemini-2.5-flash"},
		{"gemini-pro", geminiModels, "gemini-2.5-pro"},
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"gpt-4o-mini", openaiModels, "gpt-4o-mini"},
		{"gemini-2.5-flash-lite", geminiModels, "gemini-2.5-flash-lite"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "AIza-test"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"negative timeout", Config{Provider: "mock", Timeout: -time.Second}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "gemini" {
		t.Errorf("default provider = %q, want gemini", cfg.Provider)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("default gemini model = %q", cfg.Gemini.Model)
	}
	if cfg.Timeout != 0 {
		t.Errorf("default timeout = %v, want none", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QUANTPATH_LLM_PROVIDER", "OpenAI")
	t.Setenv("QUANTPATH_LLM_MODEL", "gpt-4.1-mini")
	t.Setenv("QUANTPATH_LLM_TIMEOUT", "45s")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Errorf("model = %q", cfg.OpenAI.Model)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.APIKey() != "sk-env" {
		t.Errorf("api key = %q", cfg.APIKey())
	}
}

func TestConfig_WithAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "from-env"

	if got := cfg.WithAPIKey("").APIKey(); got != "from-env" {
		t.Errorf("empty key should keep existing, got %q", got)
	}
	stored := cfg.WithAPIKey("stored")
	if stored.APIKey() != "stored" {
		t.Errorf("stored key should win, got %q", stored.APIKey())
	}
	if cfg.APIKey() != "from-env" {
		t.Error("WithAPIKey must not mutate the receiver")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "gemini"}, nil, nil); err == nil {
		t.Fatal("expected error without API key")
	}

	p, err = NewProvider(context.Background(), Config{
		Provider:   "openrouter",
		OpenRouter: OpenRouterConfig{APIKey: "sk-or", Model: "google/gemini-2.5-flash"},
	}, nil, nil)
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("openrouter model should pass through, got %q", p.ModelID())
	}
}

type recordingEventRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	mock := NewMockProvider(
		MockReply{Content: []byte(`{"question":"Q?","answer":"A."}`), Usage: Usage{InputTokens: 12, OutputTokens: 3}},
		Fail(errors.New("boom")),
	)
	repo := &recordingEventRepo{}
	p := WithLogging(mock, "gemini", repo, slog.New(slog.DiscardHandler))

	ctx := WithPurpose(context.Background(), "interview-question")
	req := Request{System: "coach", Prompt: "Ask one probability question.", Schema: questionSchema()}

	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error on second call")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "interview-question" || ok.Provider != "gemini" || ok.InputTokens != 12 {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if ok.RequestID == "" || ok.RequestID == failed.RequestID {
		t.Errorf("request IDs should be unique and non-empty: %q %q", ok.RequestID, failed.RequestID)
	}
	for _, want := range []string{"[system]\ncoach", "[prompt]\nAsk one probability question.", "[schema: interview-question]", `"required":["question","answer"]`} {
		if !strings.Contains(ok.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ok.RequestBody)
		}
	}
	if ok.ResponseBody != `{"question":"Q?","answer":"A."}` {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Errorf("unexpected failure event: %+v", failed)
	}
}

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for the default model")
	}
	if got := c.Cost(1_000_000, 0); got != c.InputPerMTok {
		t.Errorf("Cost = %v, want %v", got, c.InputPerMTok)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
