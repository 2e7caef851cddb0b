package apikey

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/store"
	"github.com/abhisek/quantpath/internal/tutor"
)

func testEnv(t *testing.T, factoryErr error) (screen.Env, *store.MemoryKV) {
	t.Helper()
	ctx := t.Context()
	logger := slog.New(slog.DiscardHandler)
	kv := store.NewMemoryKV()
	factory := func(context.Context, string) (llm.Provider, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		return llm.NewMockProvider(), nil
	}
	return screen.Env{
		Ctx:     ctx,
		Tracker: progress.Open(ctx, store.NewStateRepo(kv), logger),
		Gateway: tutor.New(ctx, store.NewCredentialRepo(kv), factory, tutor.DefaultConfig(), logger),
		Logger:  logger,
	}, kv
}

func typeKey(k *KeyScreen, s string) {
	for _, r := range s {
		k.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestKeyScreen_SaveAndPop(t *testing.T) {
	env, kv := testEnv(t, nil)
	k := New(env)
	typeKey(k, "AIza-test")

	if strings.Contains(k.View(100, 30), "AIza-test") {
		t.Error("key must be masked while typing")
	}

	_, cmd := k.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("a working key should close the screen")
	}
	if !env.Gateway.HasKey() || kv.Dump()[store.KeyAPIKey] != "AIza-test" {
		t.Error("key should be stored and the client ready")
	}
}

func TestKeyScreen_EmptyClears(t *testing.T) {
	env, _ := testEnv(t, nil)
	if err := env.Gateway.SetAPIKey(env.Ctx, "old"); err != nil {
		t.Fatal(err)
	}
	k := New(env)

	_, cmd := k.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("clearing should stay on the screen")
	}
	if env.Gateway.HasKey() {
		t.Error("empty submission should clear the key")
	}
	if !strings.Contains(k.View(100, 30), "API key cleared.") {
		t.Error("expected a confirmation")
	}
}

func TestKeyScreen_FactoryFailure(t *testing.T) {
	env, _ := testEnv(t, errors.New("bad key"))
	k := New(env)
	typeKey(k, "nope")

	_, cmd := k.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("screen should stay open when the client cannot be built")
	}
	if !strings.Contains(k.View(100, 30), "could not be built") {
		t.Error("expected a build failure message")
	}
}
