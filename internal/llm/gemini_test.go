package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhisek/quantpath/internal/llm"
	"github.com/abhisek/quantpath/internal/tutor"
)

type geminiRequest struct {
	SystemInstruction struct {
		Parts []struct{ Text string } `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Parts []struct{ Text string } `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"responseMimeType"`
		MaxOutputTokens  int    `json:"maxOutputTokens"`
		ResponseSchema   struct {
			Required   []string                   `json:"required"`
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"responseSchema"`
	} `json:"generationConfig"`
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     40,
			"candidatesTokenCount": 25,
			"totalTokenCount":      65,
		},
		"modelVersion": "gemini-2.5-flash",
	}
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *llm.GeminiProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := llm.NewGeminiProvider(context.Background(), llm.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: srv.URL + "/",
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p
}

func questionRequest() llm.Request {
	return llm.Request{
		System:      "You are a quant interview coach.",
		Prompt:      "Ask one probability question.",
		Schema:      tutor.InterviewQuestionSchema,
		MaxTokens:   512,
		Temperature: 0.9,
	}
}

func TestGemini_InterviewQuestionJSONMode(t *testing.T) {
	var got geminiRequest
	var path string
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(`{"question":"Expected rolls to see a six?","answer":"6, geometric with p=1/6"}`, "STOP"))
	})

	resp, err := p.Generate(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("path = %q", path)
	}
	cfg := got.GenerationConfig
	if cfg.ResponseMimeType != "application/json" || cfg.MaxOutputTokens != 512 {
		t.Errorf("generation config = %+v", cfg)
	}
	if strings.Join(cfg.ResponseSchema.Required, ",") != "question,answer" || len(cfg.ResponseSchema.Properties) != 2 {
		t.Errorf("response schema = %+v", cfg.ResponseSchema)
	}
	if len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != "You are a quant interview coach." {
		t.Errorf("system instruction = %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || got.Contents[0].Parts[0].Text != "Ask one probability question." {
		t.Errorf("contents = %+v", got.Contents)
	}

	var q tutor.InterviewQuestion
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		t.Fatalf("content is not a question: %v", err)
	}
	if q.Question != "Expected rolls to see a six?" {
		t.Errorf("question = %+v", q)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.TotalTokens != 65 || resp.Model != "gemini-2.5-flash" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGemini_RejectsMalformedQuestion(t *testing.T) {
	replies := []map[string]any{
		geminiReply(`{"question":"Price a digital option."}`, "STOP"),
		geminiReply(`{"question":"Price a dig`, "MAX_TOKENS"),
	}
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(replies[0])
		replies = replies[1:]
	})

	_, err := p.Generate(context.Background(), questionRequest())
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("missing answer: expected ErrInvalidResponse, got %T (%v)", err, err)
	}

	_, err = p.Generate(context.Background(), questionRequest())
	var mt *llm.ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("truncated: expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestGemini_ExplainIsFreeText(t *testing.T) {
	var got geminiRequest
	p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("A martingale is a **fair game**: $E[X_{n+1}|F_n]=X_n$.", "STOP"))
	})

	resp, err := p.Generate(context.Background(), llm.Request{Prompt: "Explain: Martingale"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.GenerationConfig.ResponseMimeType != "" {
		t.Errorf("free text should not request JSON, got %q", got.GenerationConfig.ResponseMimeType)
	}
	if !strings.Contains(resp.Text(), "fair game") {
		t.Errorf("Text() = %q", resp.Text())
	}
}

func TestGemini_ErrorStatus(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool { var e *llm.ErrRateLimit; return errors.As(err, &e) }},
		{http.StatusServiceUnavailable, func(err error) bool { var e *llm.ErrProviderUnavailable; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		p := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": tt.status, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
			})
		})
		_, err := p.Generate(context.Background(), llm.Request{Prompt: "x"})
		if !tt.check(err) {
			t.Errorf("status %d: got %T (%v)", tt.status, err, err)
		}
	}
}
