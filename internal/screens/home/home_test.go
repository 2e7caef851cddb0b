package home

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/screens/week"
	"github.com/abhisek/quantpath/internal/store"
	"github.com/abhisek/quantpath/internal/tutor"
)

func testEnv(t *testing.T) screen.Env {
	t.Helper()
	ctx := t.Context()
	logger := slog.New(slog.DiscardHandler)
	kv := store.NewMemoryKV()
	return screen.Env{
		Ctx:     ctx,
		Tracker: progress.Open(ctx, store.NewStateRepo(kv), logger),
		Gateway: tutor.New(ctx, store.NewCredentialRepo(kv),
			func(context.Context, string) (llm.Provider, error) { return llm.NewMockProvider(), nil },
			tutor.DefaultConfig(), logger),
		Logger: logger,
	}
}

func TestHome_ContinueOpensFirstUnfinishedWeek(t *testing.T) {
	env := testEnv(t)
	w1, _ := curriculum.WeekByID(1)
	for _, label := range curriculum.WeekTasks(w1) {
		if _, err := env.Tracker.Toggle(env.Ctx, label); err != nil {
			t.Fatal(err)
		}
	}

	h := New(env)
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.(*week.WeekScreen).Week().ID; got != 2 {
		t.Errorf("continue opened week %d, want 2", got)
	}
}

func TestHome_ViewShowsKeyState(t *testing.T) {
	env := testEnv(t)
	h := New(env)
	if !strings.Contains(h.View(100, 30), "No API key set") {
		t.Error("expected the missing-key hint")
	}

	if err := env.Gateway.SetAPIKey(env.Ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(h.View(100, 30), "AI ready") {
		t.Error("expected the ready state once a key is set")
	}
}

func TestHome_QuitItem(t *testing.T) {
	h := New(testEnv(t))
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("x should quit")
	}
}
