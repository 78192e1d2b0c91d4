package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCompleteSingleObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"response":"a weekly digest","done":true}`))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "test-model")
	resp, err := o.Complete(context.Background(), "summarize")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "a weekly digest" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Provider != "ollama" {
		t.Errorf("Provider = %q", resp.Provider)
	}
}

func TestCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"- bullet one"}` + "\n"))
		w.Write([]byte(`{"response":"\n- bullet two"}` + "\n"))
		w.Write([]byte(`{"response":"","done":true}` + "\n"))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "test-model")
	resp, err := o.Complete(context.Background(), "highlights")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	want := "- bullet one\n- bullet two"
	if resp.Content != want {
		t.Errorf("Content = %q, want %q", resp.Content, want)
	}
}

func TestCompleteMissingDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"partial"}` + "\n"))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "test-model")
	_, err := o.Complete(context.Background(), "summarize")
	if err == nil {
		t.Fatal("expected error for stream without done marker")
	}
	if !strings.Contains(err.Error(), "done") {
		t.Errorf("error = %v, want mention of done marker", err)
	}
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "test-model")
	if _, err := o.Complete(context.Background(), "summarize"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestCompleteInBandError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"out of memory"}`))
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "test-model")
	_, err := o.Complete(context.Background(), "summarize")
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("error = %v, want in-band ollama error", err)
	}
}

func TestCompleteUnreachable(t *testing.T) {
	o := NewOllama("http://127.0.0.1:1", "test-model")
	if _, err := o.Complete(context.Background(), "summarize"); err == nil {
		t.Fatal("expected network error")
	}
}

func TestMockClient(t *testing.T) {
	mock := &MockClient{Response: &Response{Content: "ok", Provider: "mock"}}

	resp, err := mock.Complete(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "ok" {
		t.Errorf("Content = %q", resp.Content)
	}
	if len(mock.Calls) != 1 || mock.Calls[0] != "p1" {
		t.Errorf("Calls = %v", mock.Calls)
	}
}

func TestPromptsCarryInputs(t *testing.T) {
	p := ConsolidationPrompt("2025-W01", []string{"[IMPORTANT] 2025-01-01.md#Plan: decision"}, "## 2025-01-01.md\nbody")
	for _, want := range []string{"2025-W01", "High-importance sections to preserve", "## 2025-01-01.md"} {
		if !strings.Contains(p, want) {
			t.Errorf("ConsolidationPrompt missing %q", want)
		}
	}

	p = ConsolidationPrompt("2025-W02", nil, "doc")
	if strings.Contains(p, "High-importance") {
		t.Error("ConsolidationPrompt should omit hint block when no hints")
	}

	if !strings.Contains(HighlightsPrompt("the log"), "max 5 bullet points") {
		t.Error("HighlightsPrompt missing bullet cap")
	}

	p = DailyDigestPrompt("2025-01-01", "Wednesday", "log body")
	for _, want := range []string{"2025-01-01", "Wednesday", "STRICT JSON", "log body"} {
		if !strings.Contains(p, want) {
			t.Errorf("DailyDigestPrompt missing %q", want)
		}
	}
}
