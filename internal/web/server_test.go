package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quantpath/internal/curriculum"
	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/progress"
	"github.com/abhisek/quantpath/internal/store"
	"github.com/abhisek/quantpath/internal/tutor"
)

type testEnv struct {
	srv     *Server
	tracker *progress.Tracker
	mock    *llm.MockProvider
}

func newTestEnv(t *testing.T, withKey bool, replies ...llm.MockReply) *testEnv {
	t.Helper()
	ctx := t.Context()
	logger := slog.New(slog.DiscardHandler)
	kv := store.NewMemoryKV()

	mock := llm.NewMockProvider(replies...)
	tracker := progress.Open(ctx, store.NewStateRepo(kv), logger)
	gw := tutor.New(ctx, store.NewCredentialRepo(kv),
		func(context.Context, string) (llm.Provider, error) { return mock, nil },
		tutor.DefaultConfig(), logger)
	if withKey {
		require.NoError(t, gw.SetAPIKey(ctx, "test-key"))
	}

	srv, err := New(tracker, gw, logger)
	require.NoError(t, err)
	return &testEnv{srv: srv, tracker: tracker, mock: mock}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestToggleTask(t *testing.T) {
	env := newTestEnv(t, false)
	label := curriculum.AllTasks()[0]

	resp, body := env.do(t, http.MethodPost, "/api/tasks/toggle", map[string]string{"label": label})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var got toggleResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Completed)
	assert.True(t, env.tracker.IsCompleted(label))

	_, body = env.do(t, http.MethodPost, "/api/tasks/toggle", map[string]string{"label": label})
	require.NoError(t, json.Unmarshal(body, &got))
	assert.False(t, got.Completed)
}

func (e *testEnv) doForm(t *testing.T, method, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestFormBodiesKeepStoredLabels(t *testing.T) {
	env := newTestEnv(t, false)
	tasks := curriculum.AllTasks()
	require.Greater(t, len(tasks), 10)
	first := tasks[0]

	resp := env.doForm(t, http.MethodPost, "/api/tasks/toggle", url.Values{"label": {first}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.doForm(t, http.MethodPut, "/api/notes/task", url.Values{"label": {first}, "content": {"card"}})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Later requests reuse the request buffers; each pair cancels out.
	for _, label := range tasks[1:min(len(tasks), 40)] {
		for range 2 {
			resp := env.doForm(t, http.MethodPost, "/api/tasks/toggle", url.Values{"label": {label}})
			require.Equal(t, http.StatusOK, resp.StatusCode)
		}
	}

	assert.Equal(t, []string{first}, env.tracker.Completed())
	assert.True(t, env.tracker.IsCompleted(first))
	assert.Equal(t, "card", env.tracker.TaskNote(first))
	assert.Equal(t, map[string]string{first: "card"}, env.tracker.Snapshot().TaskNotes)
}

func TestStateListsCompletedFromOneSnapshot(t *testing.T) {
	env := newTestEnv(t, false)

	_, body := env.do(t, http.MethodGet, "/api/state", nil)
	assert.Contains(t, string(body), `"completed":[]`)

	tasks := curriculum.AllTasks()
	for _, label := range []string{tasks[2], tasks[0]} {
		_, err := env.tracker.Toggle(t.Context(), label)
		require.NoError(t, err)
	}
	_, body = env.do(t, http.MethodGet, "/api/state", nil)
	var st stateResponse
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, env.tracker.Completed(), st.Completed)
	assert.Len(t, st.Completed, 2)
}

func TestToggleUnknownTask(t *testing.T) {
	env := newTestEnv(t, false)

	resp, body := env.do(t, http.MethodPost, "/api/tasks/toggle", map[string]string{"label": "not a task"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"unknown task"}`, string(body))
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t, false)
	label := curriculum.AllTasks()[1]

	resp, _ := env.do(t, http.MethodPut, "/api/notes/block",
		map[string]string{"day": "w1d1", "block": "night", "content": "recap"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/notes/task",
		map[string]string{"label": label, "content": "card"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/notes/block",
		map[string]string{"day": "w1d1", "block": "evening", "content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodPut, "/api/notes/block",
		map[string]string{"day": "w9d9", "block": "night", "content": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body := env.do(t, http.MethodGet, "/api/state", nil)
	var st stateResponse
	require.NoError(t, json.Unmarshal(body, &st))
	assert.Equal(t, "recap", st.BlockNotes["w1d1-night"])
	assert.Equal(t, "card", st.TaskNotes[label])
	assert.False(t, st.AIConfigured)
}

func TestSkillsAndRadar(t *testing.T) {
	env := newTestEnv(t, false)
	w1, _ := curriculum.WeekByID(1)
	for _, l := range curriculum.WeekTasks(w1) {
		_, err := env.tracker.Toggle(t.Context(), l)
		require.NoError(t, err)
	}

	_, body := env.do(t, http.MethodGet, "/api/skills", nil)
	var sk skillsResponse
	require.NoError(t, json.Unmarshal(body, &sk))
	for s, p := range sk.Percentages {
		assert.GreaterOrEqual(t, p, 0.0, s)
		assert.LessOrEqual(t, p, 100.0, s)
	}
	assert.Greater(t, sk.Percentages[curriculum.SkillMath], 0.0)

	resp, body := env.do(t, http.MethodGet, "/radar.svg", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `class="data"`)
}

func TestIndexPage(t *testing.T) {
	env := newTestEnv(t, false)

	resp, body := env.do(t, http.MethodGet, "/?week=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := string(body)
	assert.Contains(t, html, "Probability &amp; Python Toolkit")
	assert.Contains(t, html, "<svg")
	assert.Contains(t, html, `data-day="w1d1"`)
	assert.Contains(t, html, "Set API key")

	resp, body = env.do(t, http.MethodGet, "/?week=12", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "not written yet")

	resp, _ = env.do(t, http.MethodGet, "/?week=99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestKeyEndpoints(t *testing.T) {
	env := newTestEnv(t, false)

	resp, _ := env.do(t, http.MethodPut, "/api/key", map[string]string{"key": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body := env.do(t, http.MethodPut, "/api/key", map[string]string{"key": "AIza"})
	assert.JSONEq(t, `{"configured":true,"model":"mock"}`, string(body))

	_, body = env.do(t, http.MethodDelete, "/api/key", nil)
	assert.JSONEq(t, `{"configured":false}`, string(body))
}

func TestExplain_NoKey(t *testing.T) {
	env := newTestEnv(t, false)

	_, body := env.do(t, http.MethodPost, "/api/ai/explain", map[string]string{"concept": "Bayes"})
	var got textResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, tutor.MsgNoKey, got.Text)
	assert.Zero(t, env.mock.CallCount())
}

func TestExplain_RequiresConcept(t *testing.T) {
	env := newTestEnv(t, true)
	resp, _ := env.do(t, http.MethodPost, "/api/ai/explain", map[string]string{"concept": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuestion(t *testing.T) {
	env := newTestEnv(t, true, llm.Reply(`{"question":"Q?","answer":"A."}`))

	_, body := env.do(t, http.MethodPost, "/api/ai/question", nil)
	assert.JSONEq(t, `{"question":"Q?","answer":"A."}`, string(body))
}

func TestSummarize(t *testing.T) {
	env := newTestEnv(t, true,
		llm.Reply("## Key Concepts\n<script>x</script>"),
		llm.Fail(errors.New("network down")),
	)
	require.NoError(t, env.tracker.SetBlockNote(t.Context(), "w1d1", curriculum.BlockMorning, "counting"))

	_, body := env.do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"day": "w1d1"})
	var got summaryResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Contains(t, got.HTML, "<h2>Key Concepts</h2>")
	assert.NotContains(t, got.HTML, "<script>")

	before := env.tracker.Snapshot()
	_, body = env.do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"day": "w1d1"})
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, tutor.MsgSummaryFailed, got.Markdown)
	assert.Equal(t, before, env.tracker.Snapshot())

	resp, _ := env.do(t, http.MethodPost, "/api/ai/summarize", map[string]string{"day": "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBusyGateRejects(t *testing.T) {
	env := newTestEnv(t, true)
	require.True(t, env.srv.questionGate.TryAcquire())
	defer env.srv.questionGate.Release()

	resp, body := env.do(t, http.MethodPost, "/api/ai/question", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.JSONEq(t, `{"error":"`+tutor.MsgBusy+`"}`, string(body))
	assert.Zero(t, env.mock.CallCount())
}

func TestRenderMarkdown_EscapesRawHTML(t *testing.T) {
	out := string(RenderMarkdown("**bold** <img src=x onerror=alert(1)>"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<img")
}
