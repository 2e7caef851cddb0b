package tutor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/store"
)

type fixture struct {
	gw       *Gateway
	mock     *llm.MockProvider
	kv       *store.MemoryKV
	builtFor []string
}

func newFixture(t *testing.T, cfg Config, replies ...llm.MockReply) *fixture {
	t.Helper()
	f := &fixture{
		mock: llm.NewMockProvider(replies...),
		kv:   store.NewMemoryKV(),
	}
	factory := func(_ context.Context, key string) (llm.Provider, error) {
		f.builtFor = append(f.builtFor, key)
		return f.mock, nil
	}
	f.gw = New(t.Context(), store.NewCredentialRepo(f.kv), factory, cfg, slog.New(slog.DiscardHandler))
	return f
}

func TestNoKey_ShortCircuits(t *testing.T) {
	f := newFixture(t, DefaultConfig(), llm.Reply("should never be used"))
	ctx := t.Context()

	if f.gw.HasKey() {
		t.Fatal("gateway should start unconfigured")
	}
	if _, ok := f.gw.Client().(Unconfigured); !ok {
		t.Fatalf("client = %T, want Unconfigured", f.gw.Client())
	}

	if got := f.gw.ExplainConcept(ctx, "Bayes' theorem", "week 1"); got != MsgNoKey {
		t.Errorf("ExplainConcept = %q, want %q", got, MsgNoKey)
	}
	if q := f.gw.GenerateInterviewQuestion(ctx); q.Question != MsgQuestionNoKey || q.Answer != "" {
		t.Errorf("GenerateInterviewQuestion = %+v", q)
	}
	logs := []progress.LogEntry{{Type: "morning", Content: "x"}}
	if got := f.gw.SummarizeDailyLogs(ctx, logs, "day"); got != MsgSummaryNoKey {
		t.Errorf("SummarizeDailyLogs = %q", got)
	}

	if f.mock.CallCount() != 0 {
		t.Errorf("expected no provider calls, got %d", f.mock.CallCount())
	}
	if len(f.builtFor) != 0 {
		t.Errorf("no provider should be built without a key")
	}
}

func TestSetAPIKey(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	ctx := t.Context()

	if err := f.gw.SetAPIKey(ctx, "  AIza-test  "); err != nil {
		t.Fatalf("SetAPIKey: %v", err)
	}
	if !f.gw.HasKey() || f.gw.APIKey() != "AIza-test" {
		t.Fatalf("HasKey=%v APIKey=%q", f.gw.HasKey(), f.gw.APIKey())
	}
	if f.kv.Dump()[store.KeyAPIKey] != "AIza-test" {
		t.Error("credential not persisted")
	}
	if len(f.builtFor) != 1 || f.builtFor[0] != "AIza-test" {
		t.Errorf("provider built for %v", f.builtFor)
	}
	if f.gw.ModelID() != "mock" {
		t.Errorf("ModelID = %q", f.gw.ModelID())
	}

	if err := f.gw.SetAPIKey(ctx, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if f.gw.HasKey() {
		t.Error("clearing the key should leave the gateway unconfigured")
	}
	if _, ok := f.kv.Dump()[store.KeyAPIKey]; ok {
		t.Error("cleared credential should be deleted")
	}
}

func TestStoredKeyLoadedAtStartup(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Set(context.Background(), store.KeyAPIKey, "stored")

	var built string
	gw := New(t.Context(), store.NewCredentialRepo(kv), func(_ context.Context, key string) (llm.Provider, error) {
		built = key
		return llm.NewMockProvider(), nil
	}, Config{EnvAPIKey: "env"}, nil)

	if !gw.HasKey() || built != "stored" {
		t.Errorf("stored key should win over env key, built for %q", built)
	}
}

func TestEnvKeyFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnvAPIKey = "from-env"
	f := newFixture(t, cfg)

	if !f.gw.HasKey() {
		t.Fatal("env key should configure the gateway")
	}
	if f.gw.APIKey() != "" {
		t.Error("APIKey reports only the stored credential")
	}
}

func TestFactoryErrorLeavesUnconfigured(t *testing.T) {
	gw := New(t.Context(), store.NewCredentialRepo(store.NewMemoryKV()),
		func(context.Context, string) (llm.Provider, error) { return nil, errors.New("bad key") },
		DefaultConfig(), slog.New(slog.DiscardHandler))

	if err := gw.SetAPIKey(t.Context(), "k"); err != nil {
		t.Fatal(err)
	}
	if gw.HasKey() {
		t.Error("failed build should leave the gateway unconfigured")
	}
}

func TestExplainConcept(t *testing.T) {
	f := newFixture(t, Config{Language: "English"}, llm.Reply("  A martingale is a fair game.  "), llm.Reply("   "), llm.Fail(errors.New("quota")))
	ctx := t.Context()
	f.gw.SetAPIKey(ctx, "k")

	if got := f.gw.ExplainConcept(ctx, "Martingale", "Week 2"); got != "A martingale is a fair game." {
		t.Errorf("ExplainConcept = %q", got)
	}
	call := f.mock.Calls()[0]
	if call.Purpose != PurposeExplain || call.Request.Schema != nil {
		t.Errorf("explain call = purpose %q schema %v", call.Purpose, call.Request.Schema)
	}
	prompt := call.Request.Prompt
	for _, want := range []string{"Martingale", "Week 2", "English", "LaTeX"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	if got := f.gw.ExplainConcept(ctx, "x", "y"); got != MsgExplainEmpty {
		t.Errorf("empty response = %q, want %q", got, MsgExplainEmpty)
	}
	if got := f.gw.ExplainConcept(ctx, "x", "y"); got != MsgExplainFailed {
		t.Errorf("provider error = %q, want %q", got, MsgExplainFailed)
	}
}

func TestGenerateInterviewQuestion(t *testing.T) {
	f := newFixture(t, DefaultConfig(),
		llm.Reply(`{"question":"Expected rolls to see a six?","answer":"6, geometric with p=1/6"}`),
		llm.Reply(`{not json`),
		llm.ReplyJSON(map[string]string{"question": "Price a digital option."}),
		llm.Fail(&llm.ErrInvalidResponse{Err: errors.New("schema")}),
	)
	ctx := t.Context()
	f.gw.SetAPIKey(ctx, "k")

	q := f.gw.GenerateInterviewQuestion(ctx)
	if q.Question != "Expected rolls to see a six?" || !strings.HasPrefix(q.Answer, "6") {
		t.Errorf("unexpected question: %+v", q)
	}
	if call := f.mock.Calls()[0]; call.Request.Schema != InterviewQuestionSchema || call.Purpose != PurposeQuestion {
		t.Errorf("question call = purpose %q schema %v", call.Purpose, call.Request.Schema)
	}

	failed := InterviewQuestion{Question: MsgQuestionFailed, Answer: MsgNoAnswer}
	if q := f.gw.GenerateInterviewQuestion(ctx); q != failed {
		t.Errorf("malformed JSON = %+v", q)
	}
	if q := f.gw.GenerateInterviewQuestion(ctx); q != failed {
		t.Errorf("missing answer = %+v", q)
	}
	if q := f.gw.GenerateInterviewQuestion(ctx); q != failed {
		t.Errorf("provider error = %+v", q)
	}
}

func TestSummarizeDailyLogs_FailureLeavesTrackerUnchanged(t *testing.T) {
	f := newFixture(t, DefaultConfig(), llm.Fail(&llm.ErrProviderUnavailable{}))
	ctx := t.Context()
	f.gw.SetAPIKey(ctx, "k")

	tracker := progress.Open(ctx, store.NewStateRepo(store.NewMemoryKV()), slog.New(slog.DiscardHandler))
	day, _, err := curriculum.DayByID("w1d1")
	if err != nil {
		t.Fatal(err)
	}
	label := day.Morning.Tasks[0]
	tracker.Toggle(ctx, label)
	tracker.SetBlockNote(ctx, day.ID, curriculum.BlockMorning, "counting")
	before := tracker.Snapshot()

	got := f.gw.SummarizeDailyLogs(ctx, tracker.DayLogs(day), day.Title)
	if got != MsgSummaryFailed {
		t.Errorf("SummarizeDailyLogs = %q, want %q", got, MsgSummaryFailed)
	}

	after := tracker.Snapshot()
	if !after.IsCompleted(label) || len(after.Completed) != len(before.Completed) {
		t.Error("completion set changed")
	}
	if after.BlockNotes[progress.BlockKey(day.ID, curriculum.BlockMorning)] != "counting" {
		t.Error("notes changed")
	}
}

func TestSummarizeDailyLogs(t *testing.T) {
	f := newFixture(t, DefaultConfig(), llm.Reply("## Daily Recap"))
	ctx := t.Context()
	f.gw.SetAPIKey(ctx, "k")

	if got := f.gw.SummarizeDailyLogs(ctx, nil, "Day 1"); got != MsgNoNotes {
		t.Errorf("no notes = %q", got)
	}
	if f.mock.CallCount() != 0 {
		t.Error("no request should be sent without notes")
	}

	logs := []progress.LogEntry{
		{Type: "morning", Content: "Bayes"},
		{Type: "task", Content: "Simulate: used numpy"},
	}
	if got := f.gw.SummarizeDailyLogs(ctx, logs, "Conditional Probability"); got != "## Daily Recap" {
		t.Errorf("SummarizeDailyLogs = %q", got)
	}
	call := f.mock.Calls()[0]
	if call.Purpose != PurposeSummarize {
		t.Errorf("purpose = %q, want %q", call.Purpose, PurposeSummarize)
	}
	prompt := call.Request.Prompt
	if !strings.Contains(prompt, "[MORNING] Bayes\n[TASK] Simulate: used numpy") {
		t.Errorf("logs not formatted into prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"Conditional Probability"`) {
		t.Errorf("day title missing from prompt")
	}
}

func TestFormatLogs(t *testing.T) {
	got := FormatLogs([]progress.LogEntry{{Type: "night", Content: "review"}, {Type: "afternoon", Content: "code"}})
	want := "[NIGHT] review\n[AFTERNOON] code"
	if got != want {
		t.Errorf("FormatLogs = %q, want %q", got, want)
	}
}

func TestGate(t *testing.T) {
	var g Gate
	if !g.TryAcquire() {
		t.Fatal("first acquire should succeed")
	}
	if g.TryAcquire() {
		t.Error("second acquire should be rejected while busy")
	}
	if !g.Busy() {
		t.Error("expected busy")
	}
	g.Release()
	if g.Busy() || !g.TryAcquire() {
		t.Error("gate should be free after release")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QUANTPATH_AI_LANGUAGE", "English")
	if got := ConfigFromEnv().Language; got != "English" {
		t.Errorf("Language = %q", got)
	}
}
