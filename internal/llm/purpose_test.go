package llm_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/store"
	"github.com/abhisek/quantpath/internal/tutor"
)

type purposeRecorder struct {
	store.EventRepo
	purposes []string
}

func (r *purposeRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.purposes = append(r.purposes, data.Purpose)
	return nil
}

func TestWithPurpose_TutorPurposesReachEventLog(t *testing.T) {
	purposes := []string{tutor.PurposeExplain, tutor.PurposeQuestion, tutor.PurposeSummarize}

	mock := llm.NewMockProvider(
		llm.Reply("Kelly sizes bets by edge over odds."),
		llm.ReplyJSON(tutor.InterviewQuestion{Question: "Variance of a fair die?", Answer: "35/12"}),
		llm.Reply("## Key Concepts\n- Bayes"),
	)
	repo := &purposeRecorder{}
	p := llm.WithLogging(mock, llm.ProviderMock, repo, slog.New(slog.DiscardHandler))

	for _, purpose := range purposes {
		ctx := llm.WithPurpose(context.Background(), purpose)
		if got := llm.PurposeFrom(ctx); got != purpose {
			t.Fatalf("PurposeFrom = %q, want %q", got, purpose)
		}
		req := llm.Request{Prompt: purpose}
		if purpose == tutor.PurposeQuestion {
			req.Schema = tutor.InterviewQuestionSchema
		}
		if _, err := p.Generate(ctx, req); err != nil {
			t.Fatalf("%s: %v", purpose, err)
		}
	}

	if len(repo.purposes) != len(purposes) {
		t.Fatalf("recorded %v", repo.purposes)
	}
	for i, call := range mock.Calls() {
		if call.Purpose != purposes[i] || repo.purposes[i] != purposes[i] {
			t.Errorf("call %d: mock saw %q, log saw %q, want %q", i, call.Purpose, repo.purposes[i], purposes[i])
		}
	}
}
